package appointments

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/medcare-web/medcare/pkg/carousel"
)

//go:embed data/testimonials.yaml
var defaultTestimonials []byte

// Testimonial is one patient quote shown on the home page.
type Testimonial struct {
	Quote  string `yaml:"quote"`
	Author string `yaml:"author"`
	Role   string `yaml:"role"`
}

func describeTestimonial(t Testimonial) string {
	return "testimonial from " + t.Author
}

// LoadTestimonials parses a YAML list of testimonials.
func LoadTestimonials(r io.Reader) ([]Testimonial, error) {
	var out []Testimonial
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTestimonials, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: empty list", ErrInvalidTestimonials)
	}
	for i, t := range out {
		if t.Quote == "" || t.Author == "" {
			return nil, fmt.Errorf("%w: entry %d needs a quote and an author", ErrInvalidTestimonials, i)
		}
	}
	return out, nil
}

// DefaultTestimonials returns the embedded testimonials.
func DefaultTestimonials() []Testimonial {
	out, err := LoadTestimonials(bytes.NewReader(defaultTestimonials))
	if err != nil {
		panic(fmt.Sprintf("appointments: embedded testimonials: %v", err))
	}
	return out
}

// viewers tracks the carousel of every open testimonial stream.
type viewers struct {
	mu sync.Mutex
	m  map[string]*carousel.Rotator[Testimonial]
}

func newViewers() *viewers {
	return &viewers{m: make(map[string]*carousel.Rotator[Testimonial])}
}

func (v *viewers) add(id string, r *carousel.Rotator[Testimonial]) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.m[id] = r
}

func (v *viewers) remove(id string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.m, id)
}

func (v *viewers) get(id string) (*carousel.Rotator[Testimonial], bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	r, ok := v.m[id]
	return r, ok
}

func (v *viewers) len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.m)
}
