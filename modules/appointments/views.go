package appointments

import (
	"github.com/a-h/templ"

	"github.com/medcare-web/medcare/handler"
	"github.com/medcare-web/medcare/pkg/directory"
	"github.com/medcare-web/medcare/pkg/forms"
	"github.com/medcare-web/medcare/pkg/submission"
	"github.com/medcare-web/medcare/pkg/theme"
)

// Element ids shared by the views and the handlers that patch them.
const (
	AnnouncerID      = "announcer"
	ThemeToggleID    = "theme-toggle"
	DoctorsGridID    = "doctors-grid"
	ResultsCountID   = "results-count"
	DoctorProfileID  = "doctor-modal-content"
	TestimonialID    = "testimonial"
	ToastContainerID = "toast-container"
)

func groupID(formID, field string) string { return formID + "-" + field + "-group" }
func bannerID(formID string) string { return formID + "-banner" }
func successID(formID string) string { return formID + "-success" }
func wrapperID(formID string) string { return formID + "-wrapper" }

// PageParams wraps a page body in the site layout.
type PageParams struct {
	Title string
	Theme theme.Theme
	Body  templ.Component
}

// FormParams renders a whole form.
type FormParams struct {
	Form   *forms.Form
	Path   string
	Submit string
	Banner string
	// Success replaces the empty success container when set.
	Success *SuccessParams
}

// FieldParams renders one field group.
type FieldParams struct {
	FormID string
	Path   string
	Field  forms.Field
}

// SuccessParams renders the confirmation shown after a submission.
type SuccessParams struct {
	FormID  string
	Message string
	Outcome submission.Outcome
}

// BannerParams renders the failure banner. An empty message renders the
// empty container.
type BannerParams struct {
	FormID  string
	Message string
}

// DirectoryParams renders the doctor directory.
type DirectoryParams struct {
	Filter      directory.Filter
	Doctors     []directory.Doctor
	Departments []directory.Department
	Locations   []directory.Location
	LocationOf  func(key string) string
}

// ThemeToggleParams renders the theme switch.
type ThemeToggleParams struct {
	Theme theme.Theme
}

// TestimonialParams renders the visible testimonial and its position.
type TestimonialParams struct {
	Viewer      string
	Index       int
	Total       int
	Testimonial Testimonial
}

// Views are the components the service renders. DefaultViews provides a
// complete set; callers may replace any of them.
type Views struct {
	Page          func(PageParams) templ.Component
	Home          func(theme.Theme) templ.Component
	Form          func(FormParams) templ.Component
	Field         func(FieldParams) templ.Component
	Success       func(SuccessParams) templ.Component
	Banner        func(BannerParams) templ.Component
	Announcement  func(message string) templ.Component
	Directory     func(DirectoryParams) templ.Component
	DoctorsGrid   func(DirectoryParams) templ.Component
	ResultsCount  func(n int) templ.Component
	DoctorProfile func(directory.Doctor, string) templ.Component
	ThemeToggle   func(ThemeToggleParams) templ.Component
	Testimonial   func(TestimonialParams) templ.Component
	ErrorPage     func(handler.ErrorPageParams) templ.Component
	ErrorToast    func(handler.ErrorToastParams) templ.Component
}

func (v *Views) withDefaults() *Views {
	d := DefaultViews()
	if v == nil {
		return d
	}
	out := *v
	if out.Page == nil {
		out.Page = d.Page
	}
	if out.Home == nil {
		out.Home = d.Home
	}
	if out.Form == nil {
		out.Form = d.Form
	}
	if out.Field == nil {
		out.Field = d.Field
	}
	if out.Success == nil {
		out.Success = d.Success
	}
	if out.Banner == nil {
		out.Banner = d.Banner
	}
	if out.Announcement == nil {
		out.Announcement = d.Announcement
	}
	if out.Directory == nil {
		out.Directory = d.Directory
	}
	if out.DoctorsGrid == nil {
		out.DoctorsGrid = d.DoctorsGrid
	}
	if out.ResultsCount == nil {
		out.ResultsCount = d.ResultsCount
	}
	if out.DoctorProfile == nil {
		out.DoctorProfile = d.DoctorProfile
	}
	if out.ThemeToggle == nil {
		out.ThemeToggle = d.ThemeToggle
	}
	if out.Testimonial == nil {
		out.Testimonial = d.Testimonial
	}
	if out.ErrorPage == nil {
		out.ErrorPage = d.ErrorPage
	}
	if out.ErrorToast == nil {
		out.ErrorToast = d.ErrorToast
	}
	return &out
}
