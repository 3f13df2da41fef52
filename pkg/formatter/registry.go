package formatter

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Context names in which a formatter may be used.
const (
	ContextView = "view"
	ContextForm = "form"
)

// Factory builds a formatter for a group.
type Factory func(group Group, deps Dependencies) (Formatter, error)

// Definition describes a formatter plugin.
type Definition struct {
	ID                string
	Label             string
	Description       string
	SupportedContexts []string
	Factory           Factory
}

// Supports reports whether the plugin can be used in context.
func (d Definition) Supports(context string) bool {
	return slices.Contains(d.SupportedContexts, context)
}

// Registry tracks formatter plugins by id.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]Definition
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{plugins: make(map[string]Definition)}
}

// NewDefaultRegistry returns a registry with the built-in formatters.
func NewDefaultRegistry() *Registry {
	registry := NewRegistry()
	registry.MustRegister(ResponsiveImageDefinition())
	return registry
}

// Register adds a plugin. Duplicate ids return an error.
func (r *Registry) Register(def Definition) error {
	id := strings.TrimSpace(def.ID)
	if id == "" {
		return errors.New("formatter: plugin id is required")
	}
	if def.Factory == nil {
		return fmt.Errorf("formatter: plugin %q has no factory", id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.plugins[id]; exists {
		return fmt.Errorf("formatter: plugin %q already registered", id)
	}
	def.ID = id
	def.SupportedContexts = slices.Clone(def.SupportedContexts)
	r.plugins[id] = def
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(def Definition) {
	if err := r.Register(def); err != nil {
		panic(err)
	}
}

// Definition returns the plugin registered under id.
func (r *Registry) Definition(id string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.plugins[id]
	return def, ok
}

// List returns the plugin ids, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.plugins))
	for id := range r.plugins {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// New instantiates the formatter for group.FormatType.
func (r *Registry) New(group Group, deps Dependencies) (Formatter, error) {
	def, ok := r.Definition(group.FormatType)
	if !ok {
		return nil, fmt.Errorf("formatter: plugin %q not found", group.FormatType)
	}
	return def.Factory(group, deps)
}
