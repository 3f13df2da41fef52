package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-picturegroup/pkg/breakpoint"
)

const (
	// FallbackKey stores the field used for the flat fallback image.
	FallbackKey = "image_fallback"
	// IDKey stores the optional HTML id of the group container.
	IDKey = "id"
	// ClassesKey stores space separated CSS classes for the group container.
	ClassesKey = "classes"

	keyPrefix = "image"
)

// Settings is the flat string mapping persisted per field group instance.
type Settings map[string]string

// Key derives the settings key for a breakpoint/multiplier pair.
func Key(breakpointID, multiplier string) string {
	key := strings.Join([]string{keyPrefix, breakpointID, multiplier}, "_")
	return strings.ReplaceAll(key, ".", "_")
}

// Get returns the stored value for key, or "" when unset.
func (s Settings) Get(key string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(s[key])
}

// Clone returns a shallow copy so callers can mutate without affecting the
// stored snapshot.
func (s Settings) Clone() Settings {
	if s == nil {
		return nil
	}
	out := make(Settings, len(s))
	for key, value := range s {
		out[key] = value
	}
	return out
}

// Keys returns the stored keys sorted lexically.
func (s Settings) Keys() []string {
	keys := make([]string, 0, len(s))
	for key := range s {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Selection is a configured breakpoint/multiplier pair with its field.
type Selection struct {
	Key        string
	Breakpoint breakpoint.Breakpoint
	Multiplier string
	Field      string
}

// Configured enumerates every breakpoint/multiplier pair with a non-empty field
// in breakpoint order, then multiplier order.
func Configured(breakpoints []breakpoint.Breakpoint, s Settings) []Selection {
	var out []Selection
	for _, bp := range breakpoints {
		for _, multiplier := range bp.Multipliers {
			key := Key(bp.ID, multiplier)
			field := s.Get(key)
			if field == "" {
				continue
			}
			out = append(out, Selection{
				Key:        key,
				Breakpoint: bp,
				Multiplier: multiplier,
				Field:      field,
			})
		}
	}
	return out
}

// ByBreakpoint splits Configured output into one run per breakpoint, keeping
// breakpoint order. Breakpoints with nothing configured have no run.
func ByBreakpoint(selections []Selection) [][]Selection {
	var out [][]Selection
	for _, sel := range selections {
		if n := len(out); n > 0 && out[n-1][0].Breakpoint.ID == sel.Breakpoint.ID {
			out[n-1] = append(out[n-1], sel)
			continue
		}
		out = append(out, []Selection{sel})
	}
	return out
}

// Decode parses a JSON or YAML settings document. Non-string scalar values are
// stringified; nested values are rejected because the stored layout is flat.
func Decode(data []byte) (Settings, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Settings{}, nil
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		raw = nil
		if yerr := yaml.Unmarshal(data, &raw); yerr != nil {
			return nil, errors.New("settings: invalid JSON or YAML document")
		}
	}

	out := make(Settings, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case nil:
			out[key] = ""
		case string:
			out[key] = v
		case bool, int, int64, float64:
			out[key] = fmt.Sprint(v)
		default:
			return nil, fmt.Errorf("settings: key %q holds a nested value", key)
		}
	}
	return out, nil
}

// EncodeYAML writes the settings as a flat YAML mapping with sorted keys.
func EncodeYAML(s Settings) ([]byte, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, key := range s.Keys() {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: key},
			&yaml.Node{Kind: yaml.ScalarNode, Value: s[key], Tag: "!!str"},
		)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil, fmt.Errorf("settings: encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("settings: encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}
