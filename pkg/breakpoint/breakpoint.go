// Package breakpoint models theme breakpoints (a media query plus the pixel
// density multipliers it supports) and provides a YAML backed provider that
// reads `<group>.breakpoints.yml` documents.
package breakpoint

import (
	"context"
	"sort"
)

// DefaultMultiplier is applied when a breakpoint declares no multipliers.
const DefaultMultiplier = "1x"

// Breakpoint is a named responsive threshold. It is read-only to consumers.
type Breakpoint struct {
	ID          string   `json:"id" yaml:"id"`
	Label       string   `json:"label" yaml:"label"`
	MediaQuery  string   `json:"mediaQuery" yaml:"mediaQuery"`
	Multipliers []string `json:"multipliers" yaml:"multipliers"`
	Weight      int      `json:"weight" yaml:"weight"`
	Group       string   `json:"group" yaml:"group"`
}

// Provider enumerates the breakpoints defined for a group, usually the active
// theme name. Implementations return breakpoints in display order.
type Provider interface {
	BreakpointsByGroup(ctx context.Context, group string) ([]Breakpoint, error)
}

// ProviderFunc adapts a function into a Provider.
type ProviderFunc func(ctx context.Context, group string) ([]Breakpoint, error)

// BreakpointsByGroup calls f.
func (f ProviderFunc) BreakpointsByGroup(ctx context.Context, group string) ([]Breakpoint, error) {
	return f(ctx, group)
}

// Static serves a fixed list regardless of the group requested.
type Static []Breakpoint

// BreakpointsByGroup returns a copy of the static list.
func (s Static) BreakpointsByGroup(_ context.Context, _ string) ([]Breakpoint, error) {
	return cloneAll(s), nil
}

// Sort orders breakpoints by weight, keeping definition order for ties.
func Sort(bps []Breakpoint) {
	sort.SliceStable(bps, func(i, j int) bool {
		return bps[i].Weight < bps[j].Weight
	})
}

func clone(bp Breakpoint) Breakpoint {
	out := bp
	out.Multipliers = append([]string(nil), bp.Multipliers...)
	return out
}

func cloneAll(in []Breakpoint) []Breakpoint {
	if len(in) == 0 {
		return nil
	}
	out := make([]Breakpoint, len(in))
	for i, bp := range in {
		out[i] = clone(bp)
	}
	return out
}
