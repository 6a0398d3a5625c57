package render

import (
	"fmt"
	"sort"
)

// Standard layout names.
const (
	LayoutSingle    = "single"
	LayoutSplit     = "split"
	LayoutComposite = "composite"
	LayoutSlide     = "slide"
	LayoutSidebar   = "sidebar"
)

var layoutTemplates = map[string]string{
	LayoutSingle:    singleTemplate,
	LayoutSplit:     splitTemplate,
	LayoutComposite: compositeTemplate,
	LayoutSlide:     slideTemplate,
	LayoutSidebar:   sidebarTemplate,
}

// Layouts is an immutable set of descriptors keyed by name.
type Layouts struct {
	byName map[string]*Descriptor
	names  []string
}

// NewLayouts builds the layout set from descriptors.
func NewLayouts(ds ...*Descriptor) *Layouts {
	l := &Layouts{byName: make(map[string]*Descriptor, len(ds))}
	for _, d := range ds {
		if _, dup := l.byName[d.Name()]; !dup {
			l.names = append(l.names, d.Name())
		}
		l.byName[d.Name()] = d
	}
	sort.Strings(l.names)
	return l
}

// StandardLayouts builds every built-in layout against slots.
func StandardLayouts(slots Slots) (*Layouts, error) {
	ds := make([]*Descriptor, 0, len(layoutTemplates))
	for name, body := range layoutTemplates {
		d, err := NewDescriptor(name, body+sharedTemplate, slots)
		if err != nil {
			return nil, err
		}
		ds = append(ds, d)
	}
	return NewLayouts(ds...), nil
}

// Get returns the descriptor named name.
func (l *Layouts) Get(name string) (*Descriptor, error) {
	d, ok := l.byName[name]
	if !ok {
		return nil, fmt.Errorf("layout %q: %w", name, ErrUnknownLayout)
	}
	return d, nil
}

// Names returns the sorted layout names.
func (l *Layouts) Names() []string {
	return append([]string(nil), l.names...)
}

// SharedFragments returns the fragment definitions the built-in layouts use,
// for custom descriptors that want the same head, panel and scripts.
func SharedFragments() string {
	return sharedTemplate
}
