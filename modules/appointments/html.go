package appointments

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// markup accumulates HTML, keeping the first write error.
type markup struct {
	ctx context.Context
	w   io.Writer
	err error
}

func (m *markup) raw(s string) {
	if m.err == nil {
		_, m.err = io.WriteString(m.w, s)
	}
}

// f writes a formatted fragment. String arguments are escaped; pass
// trusted markup through raw.
func (m *markup) f(format string, args ...any) {
	for i, a := range args {
		if s, ok := a.(string); ok {
			args[i] = templ.EscapeString(s)
		}
	}
	m.raw(fmt.Sprintf(format, args...))
}

func (m *markup) component(c templ.Component) {
	if m.err == nil && c != nil {
		m.err = c.Render(m.ctx, m.w)
	}
}

func (m *markup) attrIf(cond bool, attr string) {
	if cond {
		m.raw(" " + attr)
	}
}

// signalsAttr renders a data-signals attribute value.
func (m *markup) signalsAttr(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		m.err = err
		return
	}
	m.f(` data-signals="%s"`, string(data))
}

func component(fn func(m *markup)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := &markup{ctx: ctx, w: w}
		fn(m)
		return m.err
	})
}
