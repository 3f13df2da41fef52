package breakpoint

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const fileSuffix = ".breakpoints.yml"

// Store keeps breakpoints grouped by name. It is safe for concurrent readers
// once LoadFS returns.
type Store struct {
	groups map[string][]Breakpoint
}

var _ Provider = (*Store)(nil)

type entryFile struct {
	Label       string   `yaml:"label"`
	MediaQuery  string   `yaml:"mediaQuery"`
	Weight      int      `yaml:"weight"`
	Multipliers []string `yaml:"multipliers"`
	Group       string   `yaml:"group"`
}

// LoadFS walks fsys for `*.breakpoints.yml` files. The group of each entry
// defaults to the file name prefix (`olivero.breakpoints.yml` -> `olivero`).
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{groups: make(map[string][]Breakpoint)}
	if fsys == nil {
		return store, nil
	}

	seen := make(map[string]string)
	err := fs.WalkDir(fsys, ".", func(p string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !strings.HasSuffix(p, fileSuffix) {
			return nil
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("breakpoint: read %s: %w", p, err)
		}

		group := strings.TrimSuffix(path.Base(p), fileSuffix)
		bps, err := Parse(data, group)
		if err != nil {
			return fmt.Errorf("breakpoint: parse %s: %w", p, err)
		}
		for _, bp := range bps {
			if prev, exists := seen[bp.ID]; exists {
				return fmt.Errorf("breakpoint: duplicate breakpoint %q (files %s and %s)", bp.ID, prev, p)
			}
			seen[bp.ID] = p
			store.groups[bp.Group] = append(store.groups[bp.Group], bp)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for group := range store.groups {
		Sort(store.groups[group])
	}
	return store, nil
}

// Parse decodes a single breakpoints document. Entries keep their document
// order so equal weights stay stable.
func Parse(data []byte, defaultGroup string) ([]Breakpoint, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected a mapping of breakpoint ids, got %s", root.Tag)
	}

	out := make([]Breakpoint, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		id := strings.TrimSpace(root.Content[i].Value)
		if id == "" {
			return nil, fmt.Errorf("line %d: empty breakpoint id", root.Content[i].Line)
		}

		var raw entryFile
		if err := root.Content[i+1].Decode(&raw); err != nil {
			return nil, fmt.Errorf("breakpoint %q: %w", id, err)
		}

		group := strings.TrimSpace(raw.Group)
		if group == "" {
			group = defaultGroup
		}
		multipliers := normaliseMultipliers(raw.Multipliers)
		if len(multipliers) == 0 {
			multipliers = []string{DefaultMultiplier}
		}

		out = append(out, Breakpoint{
			ID:          id,
			Label:       strings.TrimSpace(raw.Label),
			MediaQuery:  strings.TrimSpace(raw.MediaQuery),
			Multipliers: multipliers,
			Weight:      raw.Weight,
			Group:       group,
		})
	}
	return out, nil
}

// BreakpointsByGroup returns the sorted breakpoints for group. Unknown groups
// produce an empty result.
func (s *Store) BreakpointsByGroup(_ context.Context, group string) ([]Breakpoint, error) {
	if s == nil {
		return nil, nil
	}
	return cloneAll(s.groups[group]), nil
}

// Groups lists the loaded group names.
func (s *Store) Groups() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.groups))
	for name := range s.groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normaliseMultipliers(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, m := range in {
		trimmed := strings.TrimSpace(m)
		if trimmed == "" {
			continue
		}
		if _, dup := seen[trimmed]; dup {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}
