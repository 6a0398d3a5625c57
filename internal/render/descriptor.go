package render

import (
	"errors"
	"fmt"
	"html/template"
	"sort"
	"text/template/parse"
)

const slotFunc = "slot"

// Descriptor is a parsed template bound to its slot providers.
type Descriptor struct {
	name  string
	tmpl  *template.Template
	slots Slots
	refs  []string
}

// NewDescriptor parses text and checks that every slot reachable from the
// root template has a provider in slots. Providers the template never
// references are ignored.
func NewDescriptor(name, text string, slots Slots) (*Descriptor, error) {
	tmpl, err := template.New(name).Funcs(template.FuncMap{
		slotFunc: func(string) (any, error) {
			return nil, errors.New("slot called outside Render")
		},
	}).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}

	refs, err := referencedSlots(tmpl)
	if err != nil {
		return nil, fmt.Errorf("descriptor %s: %w", name, err)
	}

	bound := make(Slots, len(refs))
	for _, ref := range refs {
		p, ok := slots[ref]
		if !ok || p == nil {
			return nil, fmt.Errorf("descriptor %s: slot %q: %w", name, ref, ErrUnknownSlot)
		}
		bound[ref] = p
	}

	return &Descriptor{name: name, tmpl: tmpl, slots: bound, refs: refs}, nil
}

// Name returns the descriptor name.
func (d *Descriptor) Name() string { return d.name }

// Slots returns the sorted names of every slot the template references.
func (d *Descriptor) Slots() []string {
	return append([]string(nil), d.refs...)
}

// referencedSlots walks the parse trees reachable from the root template and
// collects the literal names passed to slot.
func referencedSlots(root *template.Template) ([]string, error) {
	w := &slotWalker{root: root, seen: map[string]bool{}, visited: map[string]bool{}}
	if err := w.template(root.Name()); err != nil {
		return nil, err
	}
	refs := make([]string, 0, len(w.seen))
	for name := range w.seen {
		refs = append(refs, name)
	}
	sort.Strings(refs)
	return refs, nil
}

type slotWalker struct {
	root    *template.Template
	seen    map[string]bool
	visited map[string]bool
}

func (w *slotWalker) template(name string) error {
	if w.visited[name] {
		return nil
	}
	w.visited[name] = true
	t := w.root.Lookup(name)
	if t == nil || t.Tree == nil {
		return fmt.Errorf("template %q is not defined", name)
	}
	return w.node(t.Tree.Root)
}

func (w *slotWalker) node(n parse.Node) error {
	switch n := n.(type) {
	case *parse.ListNode:
		if n == nil {
			return nil
		}
		for _, c := range n.Nodes {
			if err := w.node(c); err != nil {
				return err
			}
		}
	case *parse.ActionNode:
		return w.pipe(n.Pipe)
	case *parse.IfNode:
		return w.branch(&n.BranchNode)
	case *parse.RangeNode:
		return w.branch(&n.BranchNode)
	case *parse.WithNode:
		return w.branch(&n.BranchNode)
	case *parse.TemplateNode:
		if err := w.pipe(n.Pipe); err != nil {
			return err
		}
		return w.template(n.Name)
	case *parse.PipeNode:
		return w.pipe(n)
	case *parse.ChainNode:
		return w.node(n.Node)
	}
	return nil
}

func (w *slotWalker) branch(b *parse.BranchNode) error {
	if err := w.pipe(b.Pipe); err != nil {
		return err
	}
	if err := w.node(b.List); err != nil {
		return err
	}
	return w.node(b.ElseList)
}

func (w *slotWalker) pipe(p *parse.PipeNode) error {
	if p == nil {
		return nil
	}
	for _, cmd := range p.Cmds {
		if err := w.command(cmd); err != nil {
			return err
		}
	}
	return nil
}

func (w *slotWalker) command(cmd *parse.CommandNode) error {
	if len(cmd.Args) == 0 {
		return nil
	}
	if id, ok := cmd.Args[0].(*parse.IdentifierNode); ok && id.Ident == slotFunc {
		if len(cmd.Args) != 2 {
			return fmt.Errorf("slot takes exactly one name (offset %d)", cmd.Position())
		}
		name, ok := cmd.Args[1].(*parse.StringNode)
		if !ok {
			return fmt.Errorf("slot name must be a string literal (offset %d)", cmd.Position())
		}
		w.seen[name.Text] = true
		return nil
	}
	for _, arg := range cmd.Args {
		if err := w.node(arg); err != nil {
			return err
		}
	}
	return nil
}
