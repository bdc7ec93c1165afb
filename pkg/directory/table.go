package directory

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Entry is a doctor offered for a department in the appointment form.
type Entry struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
}

// Department is one row of the department table.
type Department struct {
	Key     string  `yaml:"key" json:"key"`
	Label   string  `yaml:"label" json:"label"`
	Doctors []Entry `yaml:"doctors" json:"doctors"`
}

// Table maps department keys to their ordered doctor lists.
// It is immutable after loading; accessors return copies.
type Table struct {
	order []string
	byKey map[string]Department
}

func newTable(departments []Department) (*Table, error) {
	t := &Table{byKey: make(map[string]Department, len(departments))}
	for _, d := range departments {
		if d.Key == "" {
			return nil, fmt.Errorf("%w: department without key", ErrInvalidCatalog)
		}
		if _, dup := t.byKey[d.Key]; dup {
			return nil, fmt.Errorf("%w: duplicate department %q", ErrInvalidCatalog, d.Key)
		}
		if len(d.Doctors) == 0 {
			return nil, fmt.Errorf("%w: department %q has no doctors", ErrInvalidCatalog, d.Key)
		}
		d.Doctors = append([]Entry(nil), d.Doctors...)
		t.byKey[d.Key] = d
		t.order = append(t.order, d.Key)
	}
	return t, nil
}

// Has reports whether key names a department.
func (t *Table) Has(key string) bool {
	_, ok := t.byKey[key]
	return ok
}

// Doctors returns the department's doctors in table order.
func (t *Table) Doctors(key string) ([]Entry, bool) {
	d, ok := t.byKey[key]
	if !ok {
		return nil, false
	}
	return append([]Entry(nil), d.Doctors...), true
}

// Departments returns every department in table order.
func (t *Table) Departments() []Department {
	out := make([]Department, 0, len(t.order))
	for _, key := range t.order {
		d := t.byKey[key]
		d.Doctors = append([]Entry(nil), d.Doctors...)
		out = append(out, d)
	}
	return out
}

// Keys returns department keys in table order.
func (t *Table) Keys() []string {
	return append([]string(nil), t.order...)
}

// Label returns the display label of a department. Unknown keys are
// humanized ("sports-medicine" becomes "Sports Medicine").
func (t *Table) Label(key string) string {
	if d, ok := t.byKey[key]; ok && d.Label != "" {
		return d.Label
	}
	return Humanize(key)
}

// DoctorName returns the display name of a doctor offered by the department.
func (t *Table) DoctorName(department, id string) (string, bool) {
	d, ok := t.byKey[department]
	if !ok {
		return "", false
	}
	for _, e := range d.Doctors {
		if e.ID == id {
			return e.Name, true
		}
	}
	return "", false
}

// Offers reports whether the department lists the doctor.
func (t *Table) Offers(department, id string) bool {
	_, ok := t.DoctorName(department, id)
	return ok
}

// Humanize turns a key such as "internal-medicine" into "Internal Medicine".
func Humanize(key string) string {
	words := strings.Fields(strings.NewReplacer("-", " ", "_", " ").Replace(key))
	return cases.Title(language.English).String(strings.Join(words, " "))
}
