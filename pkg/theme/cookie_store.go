package theme

import (
	"net/http"

	"github.com/medcare-web/medcare/pkg/cookie"
)

// CookieStore keeps the preference in a cookie of the current request.
// Create one per request.
type CookieStore struct {
	cookies *cookie.Manager
	w       http.ResponseWriter
	r       *http.Request
	// written holds values set during this request; the request does not see them.
	written map[string]string
}

func NewCookieStore(cookies *cookie.Manager, w http.ResponseWriter, r *http.Request) *CookieStore {
	if cookies == nil {
		cookies = cookie.New()
	}
	return &CookieStore{cookies: cookies, w: w, r: r, written: map[string]string{}}
}

func (s *CookieStore) Get(key string) (string, bool) {
	if v, ok := s.written[key]; ok {
		return v, true
	}
	v, err := s.cookies.Get(s.r, key)
	if err != nil {
		return "", false
	}
	return v, true
}

func (s *CookieStore) Set(key, value string) error {
	s.cookies.Set(s.w, key, value)
	s.written[key] = value
	return nil
}

// SystemPreference reads the Sec-CH-Prefers-Color-Scheme client hint.
// It returns Light when the hint is absent.
func SystemPreference(r *http.Request) Theme {
	if t, ok := Parse(r.Header.Get("Sec-CH-Prefers-Color-Scheme")); ok {
		return t
	}
	return Light
}
