package appointments

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/medcare-web/medcare/handler"
	"github.com/medcare-web/medcare/pkg/directory"
	"github.com/medcare-web/medcare/pkg/forms"
	"github.com/medcare-web/medcare/pkg/theme"
)

// DefaultViews returns the built-in markup of the MedCare site.
func DefaultViews() *Views {
	return &Views{
		Page:          pageView,
		Home:          homeView,
		Form:          formView,
		Field:         fieldView,
		Success:       successView,
		Banner:        bannerView,
		Announcement:  announcementView,
		Directory:     directoryView,
		DoctorsGrid:   doctorsGridView,
		ResultsCount:  resultsCountView,
		DoctorProfile: doctorProfileView,
		ThemeToggle:   themeToggleView,
		Testimonial:   testimonialView,
		ErrorPage:     errorPageView,
		ErrorToast:    errorToastView,
	}
}

func pageView(p PageParams) templ.Component {
	return component(func(m *markup) {
		m.raw(`<!DOCTYPE html>`)
		m.f(`<html lang="en" data-theme="%s">`, string(p.Theme))
		m.f(`<head><meta charset="utf-8"><title>%s | MedCare</title>`, p.Title)
		m.raw(`<script type="module" src="https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.5/bundles/datastar.js"></script></head>`)
		m.raw(`<body data-attr-data-theme="$theme"`)
		m.signalsAttr(map[string]any{"theme": p.Theme})
		m.raw(` data-on-load="@post('/theme/system?scheme=' + (window.matchMedia('(prefers-color-scheme: dark)').matches ? 'dark' : 'light'))">`)
		m.raw(`<header class="site-header"><a href="/" class="logo">MedCare</a><nav>`)
		m.raw(`<a href="/appointments">Book Appointment</a><a href="/doctors">Find a Doctor</a><a href="/contact">Contact</a>`)
		m.raw(`</nav>`)
		m.component(themeToggleView(ThemeToggleParams{Theme: p.Theme}))
		m.raw(`</header>`)
		m.f(`<div id="%s" aria-live="polite"></div>`, ToastContainerID)
		m.raw(`<main>`)
		m.component(p.Body)
		m.raw(`</main>`)
		m.component(announcementView(""))
		m.raw(`</body></html>`)
	})
}

func homeView(theme.Theme) templ.Component {
	return component(func(m *markup) {
		m.raw(`<section class="hero"><h1>Care that puts you first</h1>`)
		m.raw(`<a class="btn btn--primary" href="/appointments">Book an appointment</a></section>`)
		m.raw(`<section class="testimonials" aria-roledescription="carousel" aria-label="Patient testimonials"`)
		m.raw(` data-on-load="@get('/testimonials/stream')">`)
		m.f(`<div id="%s"></div>`, TestimonialID)
		m.raw(`</section>`)
	})
}

func formView(p FormParams) templ.Component {
	return component(func(m *markup) {
		form := p.Form
		values := make(map[string]string)
		for _, f := range form.Fields() {
			values[f.Name] = f.Value
		}

		m.f(`<div id="%s" class="form-wrapper"`, wrapperID(form.ID))
		m.signalsAttr(map[string]any{"fields": values, "submitting": false})
		m.raw(`>`)
		if p.Success != nil {
			m.component(successView(*p.Success))
		} else {
			m.f(`<div id="%s"></div>`, successID(form.ID))
		}
		m.f(`<form id="%s" action="%s" method="post" novalidate data-on-submit="@post('%s')">`, form.ID, p.Path, p.Path)
		m.component(bannerView(BannerParams{FormID: form.ID, Message: p.Banner}))
		for _, f := range form.Fields() {
			m.component(fieldView(FieldParams{FormID: form.ID, Path: p.Path, Field: f}))
		}
		m.raw(`<div class="form-actions">`)
		m.raw(`<button type="submit" class="btn btn--primary" data-attr-disabled="$submitting" data-attr-aria-busy="$submitting">`)
		m.f(`<span class="btn__text" data-show="!$submitting">%s</span>`, p.Submit)
		m.raw(`<span class="btn__loader" data-show="$submitting" style="display:none" aria-hidden="true"></span></button>`)
		m.f(`<button type="button" class="btn btn--secondary" data-on-click="@post('%s/reset')">Reset</button>`, p.Path)
		m.raw(`</div></form></div>`)
	})
}

func fieldView(p FieldParams) templ.Component {
	return component(func(m *markup) {
		f := p.Field
		class := "form-group"
		if f.Invalid {
			class += " form-group--error"
		}
		describedBy := f.Name + "-error"
		if f.Help != "" {
			describedBy = f.Name + "-help " + describedBy
		}

		m.f(`<div id="%s" class="%s">`, groupID(p.FormID, f.Name), class)
		m.f(`<label for="%s">%s</label>`, f.Name, f.Label)

		common := func() {
			m.f(` id="%s" name="%s" data-bind="fields.%s" aria-describedby="%s"`, f.Name, f.Name, f.Name, describedBy)
			m.f(` aria-invalid="%s"`, strconv.FormatBool(f.Invalid))
			m.attrIf(f.Required, "required")
			m.attrIf(f.Disabled, "disabled")
			m.f(` data-on-blur="@post('%s/validate/%s')"`, p.Path, f.Name)
		}

		switch f.Kind {
		case forms.KindSelect:
			m.raw(`<select`)
			common()
			if f.Name == forms.FieldDepartment {
				m.f(` data-on-change="@post('%s/department')"`, p.Path)
			}
			m.raw(`>`)
			for _, c := range f.Choices {
				m.f(`<option value="%s"`, c.Value)
				m.attrIf(c.Value == f.Value, "selected")
				m.f(`>%s</option>`, c.Label)
			}
			m.raw(`</select>`)
		case forms.KindTextarea:
			m.raw(`<textarea rows="4"`)
			common()
			m.f(`>%s</textarea>`, f.Value)
		default:
			m.f(`<input type="%s" value="%s"`, string(f.Kind), f.Value)
			common()
			if f.Kind == forms.KindTel {
				m.f(` placeholder="(555) 123-4567" data-on-input="@post('%s/phone/%s')"`, p.Path, f.Name)
			}
			m.raw(`>`)
		}

		if f.Help != "" {
			m.f(`<div id="%s-help" class="form-help">%s</div>`, f.Name, f.Help)
		}
		m.f(`<div id="%s-error" class="form-error" role="alert">%s</div>`, f.Name, f.Error)
		m.raw(`</div>`)
	})
}

func successView(p SuccessParams) templ.Component {
	return component(func(m *markup) {
		m.f(`<div id="%s" class="success-modal" role="dialog" aria-modal="true" aria-labelledby="%s-title">`, successID(p.FormID), p.FormID)
		m.f(`<h2 id="%s-title">%s</h2>`, p.FormID, p.Message)
		if s := p.Outcome.Summary; s != nil {
			m.raw(`<div class="appointment-summary"><h3>Appointment Details</h3>`)
			for _, line := range s.Lines() {
				label, value, _ := strings.Cut(line, ": ")
				m.f(`<p><strong>%s:</strong> %s</p>`, label, value)
			}
			m.raw(`</div>`)
		}
		if id := p.Outcome.Receipt.ID; id != "" {
			m.f(`<p class="receipt">Reference: %s</p>`, id)
		}
		m.f(`<button type="button" class="btn" data-on-click="el.closest('#%s').remove()">Close</button>`, successID(p.FormID))
		m.raw(`</div>`)
	})
}

func bannerView(p BannerParams) templ.Component {
	return component(func(m *markup) {
		if p.Message == "" {
			m.f(`<div id="%s"></div>`, bannerID(p.FormID))
			return
		}
		m.f(`<div id="%s" class="alert alert--error" role="alert">%s</div>`, bannerID(p.FormID), p.Message)
	})
}

func announcementView(message string) templ.Component {
	return component(func(m *markup) {
		m.f(`<div id="%s" class="sr-only" aria-live="polite" aria-atomic="true">%s</div>`, AnnouncerID, message)
	})
}

func directoryView(p DirectoryParams) templ.Component {
	return component(func(m *markup) {
		m.raw(`<section class="doctors"`)
		m.signalsAttr(p.Filter)
		m.raw(`><h1>Find a Doctor</h1><div class="filters">`)
		m.raw(`<input type="search" id="doctor-search" aria-label="Search doctors" data-bind="search"`)
		m.f(` value="%s" data-on-input__debounce.%dms="@post('/doctors/search')">`, p.Filter.Search, directory.DefaultSearchDebounce.Milliseconds())
		m.raw(`<select id="department-filter" aria-label="Department" data-bind="department" data-on-change="@post('/doctors/search')">`)
		m.raw(`<option value="">All Departments</option>`)
		for _, d := range p.Departments {
			m.f(`<option value="%s"`, d.Key)
			m.attrIf(d.Key == p.Filter.Department, "selected")
			m.f(`>%s</option>`, d.Label)
		}
		m.raw(`</select>`)
		m.raw(`<select id="location-filter" aria-label="Location" data-bind="location" data-on-change="@post('/doctors/search')">`)
		m.raw(`<option value="">All Locations</option>`)
		for _, l := range p.Locations {
			m.f(`<option value="%s"`, l.Key)
			m.attrIf(l.Key == p.Filter.Location, "selected")
			m.f(`>%s</option>`, l.Label)
		}
		m.raw(`</select>`)
		m.raw(`<button type="button" class="btn btn--secondary" data-on-click="@post('/doctors/search?action=clear')">Clear Filters</button>`)
		m.raw(`</div>`)
		m.component(resultsCountView(len(p.Doctors)))
		m.component(doctorsGridView(p))
		m.f(`<div id="doctor-modal" role="dialog" aria-modal="true"><div id="%s"></div></div>`, DoctorProfileID)
		m.raw(`</section>`)
	})
}

func doctorsGridView(p DirectoryParams) templ.Component {
	return component(func(m *markup) {
		m.f(`<div id="%s" class="doctors-grid">`, DoctorsGridID)
		if len(p.Doctors) == 0 {
			m.raw(`<p class="no-results">No doctors match your search.</p>`)
		}
		for _, d := range p.Doctors {
			location := d.Location
			if p.LocationOf != nil {
				location = p.LocationOf(d.Location)
			}
			m.f(`<article class="doctor-card"><h3>%s</h3><p class="specialty">%s</p><p class="location">%s</p>`, d.Name, d.Specialty, location)
			m.f(`<button type="button" class="btn" data-on-click="@get('/doctors/%s')">View Profile</button>`, d.ID)
			m.f(`<a class="btn btn--primary" href="/appointments?department=%s&amp;doctor=%s">Book</a></article>`, d.Department, d.ID)
		}
		m.raw(`</div>`)
	})
}

func resultsCountView(n int) templ.Component {
	return component(func(m *markup) {
		m.f(`<p id="%s" class="results-count">%s</p>`, ResultsCountID, directory.CountText(n))
	})
}

func doctorProfileView(d directory.Doctor, location string) templ.Component {
	return component(func(m *markup) {
		m.f(`<div id="%s" class="doctor-profile"><h2>%s - Profile</h2>`, DoctorProfileID, d.Name)
		m.f(`<p class="specialty">%s</p><p>%s</p>`, d.Specialty, d.Description)
		list := func(title string, items []string) {
			if len(items) == 0 {
				return
			}
			m.f(`<h3>%s</h3><ul>`, title)
			for _, it := range items {
				m.f(`<li>%s</li>`, it)
			}
			m.raw(`</ul>`)
		}
		list("Credentials", d.Credentials)
		list("Specialties", d.Specialties)
		list("Languages", d.Languages)
		for _, row := range [][2]string{
			{"Education", d.Education}, {"Residency", d.Residency}, {"Fellowship", d.Fellowship},
			{"Location", location}, {"Phone", d.Phone}, {"Email", d.Email},
		} {
			if row[1] != "" {
				m.f(`<p><strong>%s:</strong> %s</p>`, row[0], row[1])
			}
		}
		m.f(`<a class="btn btn--primary" href="/appointments?department=%s&amp;doctor=%s">Book Appointment</a>`, d.Department, d.ID)
		m.raw(`</div>`)
	})
}

func themeToggleView(p ThemeToggleParams) templ.Component {
	return component(func(m *markup) {
		m.f(`<button type="button" id="%s" class="theme-toggle" aria-label="%s" data-on-click="@post('/theme/toggle')">`, ThemeToggleID, p.Theme.ToggleLabel())
		icon := "moon"
		if p.Theme == theme.Dark {
			icon = "sun"
		}
		m.f(`<span class="icon icon--%s" aria-hidden="true"></span></button>`, icon)
	})
}

func testimonialView(p TestimonialParams) templ.Component {
	return component(func(m *markup) {
		t := p.Testimonial
		m.f(`<div id="%s" class="testimonial" data-on-mouseenter="@post('/testimonials/%s/pause')" data-on-mouseleave="@post('/testimonials/%s/resume')">`, TestimonialID, p.Viewer, p.Viewer)
		m.f(`<blockquote><p>%s</p><footer><cite>%s</cite>`, t.Quote, t.Author)
		if t.Role != "" {
			m.f(`<span class="role">%s</span>`, t.Role)
		}
		m.raw(`</footer></blockquote><div class="carousel-controls">`)
		m.f(`<button type="button" aria-label="Previous testimonial" data-on-click="@post('/testimonials/%s/prev')">&lsaquo;</button>`, p.Viewer)
		for i := range p.Total {
			m.f(`<button type="button" class="dot" aria-label="Go to testimonial %d"`, i+1)
			m.attrIf(i == p.Index, `aria-current="true"`)
			m.f(` data-on-click="@post('/testimonials/%s/goto?index=%d')"></button>`, p.Viewer, i)
		}
		m.f(`<button type="button" aria-label="Next testimonial" data-on-click="@post('/testimonials/%s/next')">&rsaquo;</button>`, p.Viewer)
		m.raw(`</div></div>`)
	})
}

func errorPageView(p handler.ErrorPageParams) templ.Component {
	return pageView(PageParams{
		Title: fmt.Sprintf("Error %d", p.StatusCode),
		Theme: theme.Light,
		Body: component(func(m *markup) {
			m.f(`<section class="error-page"><h1>%d</h1><p>%s</p>`, p.StatusCode, p.Error)
			if p.RequestID != "" {
				m.f(`<p class="request-id">Request ID: %s</p>`, p.RequestID)
			}
			m.f(`<a class="btn" href="%s">Try again</a></section>`, p.RetryURL)
		}),
	})
}

func errorToastView(p handler.ErrorToastParams) templ.Component {
	return component(func(m *markup) {
		m.f(`<div class="toast toast--%s" role="alert">%s</div>`, p.Type, p.Message)
	})
}
