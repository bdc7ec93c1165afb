package theme_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medcare-web/medcare/pkg/announce"
	"github.com/medcare-web/medcare/pkg/cookie"
	"github.com/medcare-web/medcare/pkg/theme"
)

type failingStore struct{ theme.MemoryStore }

func (*failingStore) Set(string, string) error { return errors.New("quota exceeded") }

func TestController(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("defaults to system preference", func(t *testing.T) {
		t.Parallel()
		c := theme.New(nil, theme.WithSystemPreference(theme.Dark))
		assert.Equal(t, theme.Dark, c.Current())
		assert.False(t, c.Saved())
		assert.Equal(t, "Switch to light mode", c.Current().ToggleLabel())
	})

	t.Run("toggle saves and announces", func(t *testing.T) {
		t.Parallel()
		store := &theme.MemoryStore{}
		collector := &announce.Collector{}
		c := theme.New(store, theme.WithAnnouncer(collector))

		next, err := c.Toggle(ctx)
		require.NoError(t, err)
		assert.Equal(t, theme.Dark, next)
		v, _ := store.Get(theme.StorageKey)
		assert.Equal(t, "dark", v)

		next, err = c.Toggle(ctx)
		require.NoError(t, err)
		assert.Equal(t, theme.Light, next)
		assert.Equal(t, []string{"Switched to dark mode", "Switched to light mode"}, collector.Messages())
	})

	t.Run("system changes only apply without a saved preference", func(t *testing.T) {
		t.Parallel()
		c := theme.New(nil)
		assert.True(t, c.SystemChanged(theme.Dark))
		assert.Equal(t, theme.Dark, c.Current())

		_, err := c.Toggle(ctx)
		require.NoError(t, err)
		assert.False(t, c.SystemChanged(theme.Dark))
		assert.Equal(t, theme.Light, c.Current())
	})

	t.Run("invalid saved value is ignored", func(t *testing.T) {
		t.Parallel()
		store := &theme.MemoryStore{}
		require.NoError(t, store.Set(theme.StorageKey, "sepia"))
		c := theme.New(store, theme.WithSystemPreference(theme.Dark))
		assert.Equal(t, theme.Dark, c.Current())
	})

	t.Run("store failure", func(t *testing.T) {
		t.Parallel()
		collector := &announce.Collector{}
		c := theme.New(&failingStore{}, theme.WithAnnouncer(collector))
		_, err := c.Toggle(ctx)
		require.Error(t, err)
		assert.Empty(t, collector.Messages())
	})
}

func TestCookieStore(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/theme", nil)
	req.AddCookie(&http.Cookie{Name: theme.StorageKey, Value: "dark"})
	req.Header.Set("Sec-CH-Prefers-Color-Scheme", "light")
	rec := httptest.NewRecorder()

	store := theme.NewCookieStore(cookie.New(), rec, req)
	c := theme.New(store, theme.WithSystemPreference(theme.SystemPreference(req)))
	assert.Equal(t, theme.Dark, c.Current())

	next, err := c.Toggle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, theme.Light, next)
	assert.Equal(t, theme.Light, c.Current(), "value written in this request is visible")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "light", cookies[0].Value)
}

func TestSystemPreference(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, theme.Light, theme.SystemPreference(req))
	req.Header.Set("Sec-CH-Prefers-Color-Scheme", "dark")
	assert.Equal(t, theme.Dark, theme.SystemPreference(req))
}
