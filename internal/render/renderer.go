package render

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/couchcryptid/methane-report-service/internal/domain"
)

// Renderer renders records with fixed brand strings and zone label. It holds
// no mutable state and is safe for concurrent use.
type Renderer struct {
	brand     domain.Brand
	zoneLabel string
}

// NewRenderer returns a Renderer.
func NewRenderer(brand domain.Brand, zoneLabel string) *Renderer {
	return &Renderer{brand: brand, zoneLabel: zoneLabel}
}

// Render fills every slot d references from rec and executes the template.
// generatedAt is the only input that is not part of the record. On error no
// bytes are returned.
func (r *Renderer) Render(rec domain.Record, generatedAt time.Time, d *Descriptor) ([]byte, error) {
	view := NewView(rec, r.brand, r.zoneLabel, generatedAt)

	values := make(map[string]any, len(d.refs))
	for _, name := range d.refs {
		v, ok := d.slots[name](view)
		if !ok {
			return nil, fmt.Errorf("render %s: slot %q: %w", d.name, name, ErrUnfilledSlot)
		}
		values[name] = v
	}

	tmpl, err := d.tmpl.Clone()
	if err != nil {
		return nil, fmt.Errorf("render %s: clone template: %w", d.name, err)
	}
	tmpl.Funcs(template.FuncMap{
		slotFunc: func(name string) (any, error) {
			v, ok := values[name]
			if !ok {
				return nil, fmt.Errorf("slot %q: %w", name, ErrUnknownSlot)
			}
			return v, nil
		},
	})

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, nil); err != nil {
		return nil, fmt.Errorf("render %s: %w", d.name, err)
	}
	return buf.Bytes(), nil
}
