package render

import (
	"sort"
	"strings"

	"github.com/goliatone/go-picturegroup/pkg/resolver"
)

// Element types produced by formatters.
const (
	TypeContainer = "container"
	TypeMarkup    = "markup"
)

// Attributes are HTML attributes keyed by name. The class attribute is kept
// as a space separated list.
type Attributes map[string]string

// Attribute is a single name/value pair in render order.
type Attribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// AddClass appends classes, skipping blanks and duplicates.
func (a Attributes) AddClass(classes ...string) {
	existing := strings.Fields(a["class"])
	seen := make(map[string]struct{}, len(existing))
	for _, cls := range existing {
		seen[cls] = struct{}{}
	}
	for _, cls := range classes {
		for _, token := range strings.Fields(cls) {
			if _, dup := seen[token]; dup {
				continue
			}
			seen[token] = struct{}{}
			existing = append(existing, token)
		}
	}
	if len(existing) == 0 {
		delete(a, "class")
		return
	}
	a["class"] = strings.Join(existing, " ")
}

// Ordered returns the attributes with id first, class second and the rest
// sorted by name, dropping empty values.
func (a Attributes) Ordered() []Attribute {
	names := make([]string, 0, len(a))
	for name := range a {
		if name == "id" || name == "class" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	names = append([]string{"id", "class"}, names...)

	out := make([]Attribute, 0, len(names))
	for _, name := range names {
		value := strings.TrimSpace(a[name])
		if value == "" {
			continue
		}
		out = append(out, Attribute{Name: name, Value: value})
	}
	return out
}

// Element is a node of the render tree handed to formatters. Children keep
// insertion order; hidden children are skipped by renderers.
type Element struct {
	Name       string
	Type       string
	Attributes Attributes
	Children   []*Element
	Hidden     bool
	Weight     int
	// Markup carries already rendered output for leaf children.
	Markup string
	// Picture is populated by the responsive image formatter.
	Picture *resolver.RenderContext
}

// NewElement creates an element with initialised attributes.
func NewElement(name string) *Element {
	return &Element{Name: name, Attributes: Attributes{}}
}

// AddChild appends child and returns it.
func (e *Element) AddChild(child *Element) *Element {
	e.Children = append(e.Children, child)
	return child
}

// Child returns the first direct child named name.
func (e *Element) Child(name string) (*Element, bool) {
	if e == nil {
		return nil, false
	}
	for _, child := range e.Children {
		if child != nil && child.Name == name {
			return child, true
		}
	}
	return nil, false
}

// VisibleChildren returns the children that are not hidden, ordered by weight
// and then insertion order.
func (e *Element) VisibleChildren() []*Element {
	if e == nil {
		return nil
	}
	out := make([]*Element, 0, len(e.Children))
	for _, child := range e.Children {
		if child == nil || child.Hidden {
			continue
		}
		out = append(out, child)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Weight < out[j].Weight
	})
	return out
}
