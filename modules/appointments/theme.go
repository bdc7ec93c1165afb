package appointments

import (
	"net/http"

	"github.com/medcare-web/medcare/handler"
	"github.com/medcare-web/medcare/pkg/announce"
	"github.com/medcare-web/medcare/pkg/theme"
)

// SystemThemeRequest reports the color scheme of the viewer's system.
type SystemThemeRequest struct {
	Scheme string `query:"scheme"`
}

// themeFor builds the theme controller of one request from its cookie and
// client hint.
func (s *Service) themeFor(ctx handler.Context, a announce.Announcer) *theme.Controller {
	r := ctx.Request()
	return theme.New(
		theme.NewCookieStore(s.cookies, ctx.ResponseWriter(), r),
		theme.WithSystemPreference(theme.SystemPreference(r)),
		theme.WithAnnouncer(a),
	)
}

func (s *Service) home(ctx handler.Context, _ struct{}) handler.Response {
	t := s.themeFor(ctx, nil).Current()
	return handler.Templ(s.views.Page(PageParams{Title: "Home", Theme: t, Body: s.views.Home(t)}))
}

func (s *Service) toggleTheme(ctx handler.Context, _ struct{}) handler.Response {
	collector := &announce.Collector{}
	next, err := s.themeFor(ctx, collector).Toggle(ctx)
	if err != nil {
		return handler.Error(err)
	}

	r := ctx.Request()
	if !handler.IsDataStar(r) {
		back := r.Referer()
		if back == "" {
			back = "/"
		}
		return handler.Redirect(back)
	}
	return handler.TemplSignals(map[string]any{"theme": next},
		handler.Patch(s.views.ThemeToggle(ThemeToggleParams{Theme: next})),
		handler.Patch(s.views.Announcement(collector.Last())),
	)
}

// systemTheme follows a change of the system color scheme while no
// preference is saved.
func (s *Service) systemTheme(ctx handler.Context, req SystemThemeRequest) handler.Response {
	t, ok := theme.Parse(req.Scheme)
	if !ok {
		return handler.Error(handler.ErrBadRequest)
	}
	ctrl := s.themeFor(ctx, nil)
	if !ctrl.SystemChanged(t) {
		return handler.Empty(http.StatusNoContent)
	}
	current := ctrl.Current()
	return handler.TemplSignals(map[string]any{"theme": current},
		handler.Patch(s.views.ThemeToggle(ThemeToggleParams{Theme: current})),
	)
}
