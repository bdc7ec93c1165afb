package handler

import "net/http"

// Empty writes only a status code.
func Empty(status int) Response {
	return ResponseFunc(func(w http.ResponseWriter, _ *http.Request) error {
		w.WriteHeader(status)
		return nil
	})
}

// Redirect sends the client to url. Datastar actions are redirected through
// the event stream, plain requests with 303 See Other.
func Redirect(url string) Response {
	return ResponseFunc(func(w http.ResponseWriter, r *http.Request) error {
		if IsDataStar(r) {
			return NewSSE(w, r).Redirect(url)
		}
		http.Redirect(w, r, url, http.StatusSeeOther)
		return nil
	})
}
