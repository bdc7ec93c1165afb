// Package cookie writes and reads plain HTTP cookies with shared defaults.
// The service uses it for the theme preference, which is neither secret nor
// trusted, so values are stored as is.
package cookie
