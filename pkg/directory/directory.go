package directory

import (
	"fmt"
	"strings"

	"github.com/medcare-web/medcare/pkg/sanitizer"
)

// Doctor is a profile in the doctor directory.
type Doctor struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Specialty   string   `yaml:"specialty" json:"specialty"`
	Department  string   `yaml:"department" json:"department"`
	Location    string   `yaml:"location" json:"location"`
	Description string   `yaml:"description" json:"description"`
	Credentials []string `yaml:"credentials" json:"credentials"`
	Languages   []string `yaml:"languages" json:"languages"`
	Specialties []string `yaml:"specialties" json:"specialties"`
	Education   string   `yaml:"education" json:"education"`
	Residency   string   `yaml:"residency" json:"residency"`
	Fellowship  string   `yaml:"fellowship" json:"fellowship"`
	Phone       string   `yaml:"phone" json:"phone"`
	Email       string   `yaml:"email" json:"email"`
}

// Location is a hospital campus or clinic.
type Location struct {
	Key   string `yaml:"key" json:"key"`
	Label string `yaml:"label" json:"label"`
}

// Filter narrows the directory listing. Zero fields match everything.
type Filter struct {
	// Search matches a case-insensitive substring of name, specialty or department key.
	Search string `json:"search"`
	// Department matches the doctor's department key exactly.
	Department string `json:"department"`
	// Location matches the doctor's location key exactly.
	Location string `json:"location"`
}

// IsZero reports whether the filter matches every doctor.
func (f Filter) IsZero() bool {
	return sanitizer.SearchTerm(f.Search) == "" && f.Department == "" && f.Location == ""
}

// Directory is the immutable doctor listing.
type Directory struct {
	doctors   []Doctor
	byID      map[string]int
	locations []Location
	locByKey  map[string]string
}

func newDirectory(doctors []Doctor, locations []Location, table *Table) (*Directory, error) {
	d := &Directory{
		byID:     make(map[string]int, len(doctors)),
		locByKey: make(map[string]string, len(locations)),
	}
	for _, l := range locations {
		d.locByKey[l.Key] = l.Label
		d.locations = append(d.locations, l)
	}
	for i, doc := range doctors {
		if doc.ID == "" {
			return nil, fmt.Errorf("%w: doctor without id", ErrInvalidCatalog)
		}
		if _, dup := d.byID[doc.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate doctor %q", ErrInvalidCatalog, doc.ID)
		}
		if table != nil && !table.Has(doc.Department) {
			return nil, fmt.Errorf("%w: doctor %q has unknown department %q", ErrInvalidCatalog, doc.ID, doc.Department)
		}
		if _, ok := d.locByKey[doc.Location]; !ok {
			return nil, fmt.Errorf("%w: doctor %q has unknown location %q", ErrInvalidCatalog, doc.ID, doc.Location)
		}
		d.byID[doc.ID] = i
		d.doctors = append(d.doctors, doc)
	}
	return d, nil
}

// All returns every doctor in listing order.
func (d *Directory) All() []Doctor {
	return d.Filter(Filter{})
}

// Get returns the doctor with the given id.
func (d *Directory) Get(id string) (Doctor, error) {
	i, ok := d.byID[id]
	if !ok {
		return Doctor{}, fmt.Errorf("%w: %q", ErrUnknownDoctor, id)
	}
	return clone(d.doctors[i]), nil
}

// Filter returns the doctors matching every set field of f, in listing order.
func (d *Directory) Filter(f Filter) []Doctor {
	term := sanitizer.SearchTerm(f.Search)
	out := make([]Doctor, 0, len(d.doctors))
	for _, doc := range d.doctors {
		if term != "" && !matchesSearch(doc, term) {
			continue
		}
		if f.Department != "" && doc.Department != f.Department {
			continue
		}
		if f.Location != "" && doc.Location != f.Location {
			continue
		}
		out = append(out, clone(doc))
	}
	return out
}

// Locations returns the known locations in listing order.
func (d *Directory) Locations() []Location {
	return append([]Location(nil), d.locations...)
}

// LocationLabel returns the display label of a location, or the key itself when unknown.
func (d *Directory) LocationLabel(key string) string {
	if label, ok := d.locByKey[key]; ok {
		return label
	}
	return key
}

func matchesSearch(doc Doctor, term string) bool {
	return strings.Contains(strings.ToLower(doc.Name), term) ||
		strings.Contains(strings.ToLower(doc.Specialty), term) ||
		strings.Contains(strings.ToLower(doc.Department), term)
}

func clone(doc Doctor) Doctor {
	doc.Credentials = append([]string(nil), doc.Credentials...)
	doc.Languages = append([]string(nil), doc.Languages...)
	doc.Specialties = append([]string(nil), doc.Specialties...)
	return doc
}

// CountText is the results counter shown above the listing.
func CountText(n int) string {
	if n == 1 {
		return "Showing 1 doctor"
	}
	return fmt.Sprintf("Showing %d doctors", n)
}

// ResultsAnnouncement is the screen reader message after a search.
func ResultsAnnouncement(n int) string {
	switch n {
	case 0:
		return "No doctors found"
	case 1:
		return "1 doctor found"
	default:
		return fmt.Sprintf("%d doctors found", n)
	}
}
