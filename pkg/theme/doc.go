// Package theme resolves the light or dark color scheme.
//
// The saved preference (key "medcare-theme") wins over the system one.
// Toggle flips the active theme, saves the result and announces
// "Switched to <theme> mode".
package theme
