package gotemplate

import (
	"fmt"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	gotemplatepkg "github.com/goliatone/go-template"
)

// SrcsetFilter is the name templates use to join candidates into a srcset
// attribute value: {{ source.candidates|srcset }}.
const SrcsetFilter = "srcset"

var (
	filtersOnce sync.Once
	filtersErr  error
)

func registerFilters(renderer *gotemplatepkg.Engine) error {
	filtersOnce.Do(func() {
		if pongo2.FilterExists(SrcsetFilter) {
			return
		}
		filtersErr = renderer.RegisterFilter(SrcsetFilter, srcset)
	})
	return filtersErr
}

// srcset joins {url, multiplier} candidates, skipping candidates without a
// url. Strings pass through trimmed.
func srcset(input, _ any) (any, error) {
	items, ok := input.([]any)
	if !ok {
		if input == nil {
			return "", nil
		}
		return strings.TrimSpace(fmt.Sprint(input)), nil
	}

	parts := make([]string, 0, len(items))
	for _, item := range items {
		candidate, ok := item.(map[string]any)
		if !ok || candidate["url"] == nil {
			continue
		}
		entry := strings.TrimSpace(fmt.Sprint(candidate["url"]))
		if entry == "" {
			continue
		}
		if mult, _ := candidate["multiplier"].(string); strings.TrimSpace(mult) != "" {
			entry += " " + strings.TrimSpace(mult)
		}
		parts = append(parts, entry)
	}
	return strings.Join(parts, ", "), nil
}
