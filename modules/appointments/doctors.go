package appointments

import (
	"github.com/medcare-web/medcare/handler"
	"github.com/medcare-web/medcare/pkg/announce"
	"github.com/medcare-web/medcare/pkg/directory"
)

// SearchRequest carries the directory filters. Signals are present on
// Datastar actions, query parameters on plain page loads.
type SearchRequest struct {
	Search     string `json:"search" query:"search"`
	Department string `json:"department" query:"department"`
	Location   string `json:"location" query:"location"`
	// Action "clear" drops every filter.
	Action string `json:"-" query:"action"`
}

func (r SearchRequest) filter() directory.Filter {
	return directory.Filter{Search: r.Search, Department: r.Department, Location: r.Location}
}

// DoctorRequest names one doctor of the directory.
type DoctorRequest struct {
	ID string `path:"id"`
}

func (s *Service) directoryParams(f directory.Filter, doctors []directory.Doctor) DirectoryParams {
	dir := s.catalog.Directory
	return DirectoryParams{
		Filter:      f,
		Doctors:     doctors,
		Departments: s.catalog.Table.Departments(),
		Locations:   dir.Locations(),
		LocationOf:  dir.LocationLabel,
	}
}

func (s *Service) directoryPage(ctx handler.Context, req SearchRequest) handler.Response {
	f := req.filter()
	page := s.views.Page(PageParams{
		Title: "Find a Doctor",
		Theme: s.themeFor(ctx, nil).Current(),
		Body:  s.views.Directory(s.directoryParams(f, s.catalog.Directory.Filter(f))),
	})
	return handler.Templ(page)
}

// search applies the filters of a Datastar action. The client debounces
// typing, so each request is an immediate search.
func (s *Service) search(ctx handler.Context, req SearchRequest) handler.Response {
	collector := &announce.Collector{}
	live := directory.NewLiveSearch(s.catalog.Directory, nil,
		directory.WithDebounce(s.cfg.SearchDebounce),
		directory.WithAnnouncer(collector),
	)

	var doctors []directory.Doctor
	if req.Action == "clear" {
		doctors = live.Clear(ctx)
	} else {
		live.SetDepartment(ctx, req.Department)
		live.SetLocation(ctx, req.Location)
		doctors = live.SearchNow(ctx, req.Search)
	}

	f := live.Filter()
	p := s.directoryParams(f, doctors)
	return handler.TemplSignals(
		map[string]any{"search": f.Search, "department": f.Department, "location": f.Location},
		handler.Patch(s.views.DoctorsGrid(p)),
		handler.Patch(s.views.ResultsCount(len(doctors))),
		handler.Patch(s.views.Announcement(collector.Last())),
	)
}

func (s *Service) doctorProfile(_ handler.Context, req DoctorRequest) handler.Response {
	doc, err := s.catalog.Directory.Get(req.ID)
	if err != nil {
		return handler.Error(err)
	}
	return handler.Templ(s.views.DoctorProfile(doc, s.catalog.Directory.LocationLabel(doc.Location)))
}
