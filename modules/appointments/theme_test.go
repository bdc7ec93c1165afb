package appointments_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medcare-web/medcare/pkg/theme"
)

func themeCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == theme.StorageKey {
			return c
		}
	}
	return nil
}

func TestToggleTheme(t *testing.T) {
	t.Parallel()
	h, _ := newSite(t)

	t.Run("light to dark", func(t *testing.T) {
		t.Parallel()
		rec := serve(h, action(http.MethodPost, "/theme/toggle", nil))

		body := rec.Body.String()
		assert.Contains(t, body, `{"theme":"dark"}`)
		assert.Contains(t, body, "Switched to dark mode")
		assert.Contains(t, body, `id="theme-toggle"`)
		assert.Contains(t, body, "Switch to light mode")

		c := themeCookie(rec)
		require.NotNil(t, c)
		assert.Equal(t, "dark", c.Value)
		assert.True(t, c.HttpOnly)
	})

	t.Run("saved preference wins over the system", func(t *testing.T) {
		t.Parallel()
		r := action(http.MethodPost, "/theme/toggle", nil)
		r.Header.Set("Sec-CH-Prefers-Color-Scheme", "light")
		r.AddCookie(&http.Cookie{Name: theme.StorageKey, Value: "dark"})
		rec := serve(h, r)
		assert.Contains(t, rec.Body.String(), "Switched to light mode")
		assert.Equal(t, "light", themeCookie(rec).Value)
	})

	t.Run("plain post goes back", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/theme/toggle", nil)
		r.Header.Set("Referer", "/doctors")
		rec := serve(h, r)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/doctors", rec.Header().Get("Location"))
		assert.NotNil(t, themeCookie(rec))
	})

	t.Run("page renders the saved theme", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/contact", nil)
		r.AddCookie(&http.Cookie{Name: theme.StorageKey, Value: "dark"})
		assert.Contains(t, serve(h, r).Body.String(), `data-theme="dark"`)
	})

	t.Run("page follows the client hint", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Sec-CH-Prefers-Color-Scheme", "dark")
		assert.Contains(t, serve(h, r).Body.String(), `data-theme="dark"`)
	})
}

func TestSystemTheme(t *testing.T) {
	t.Parallel()
	h, _ := newSite(t)

	t.Run("switches while nothing is saved", func(t *testing.T) {
		t.Parallel()
		rec := serve(h, action(http.MethodPost, "/theme/system?scheme=dark", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `{"theme":"dark"}`)
		assert.Nil(t, themeCookie(rec))
	})

	t.Run("same scheme changes nothing", func(t *testing.T) {
		t.Parallel()
		rec := serve(h, action(http.MethodPost, "/theme/system?scheme=light", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("saved preference ignores the system", func(t *testing.T) {
		t.Parallel()
		r := action(http.MethodPost, "/theme/system?scheme=dark", nil)
		r.AddCookie(&http.Cookie{Name: theme.StorageKey, Value: "light"})
		assert.Equal(t, http.StatusNoContent, serve(h, r).Code)
	})

	t.Run("unknown scheme", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/theme/system?scheme=sepia", nil)
		r.Header.Set("Accept", "application/json")
		assert.Equal(t, http.StatusBadRequest, serve(h, r).Code)
	})
}
