package resolver

import "strings"

// Candidate is a single srcset entry.
type Candidate struct {
	URL        string `json:"url"`
	Multiplier string `json:"multiplier"`
}

// Source is one `<source>` element: a srcset for a breakpoint media query.
type Source struct {
	Srcset     string      `json:"srcset"`
	Media      string      `json:"media"`
	Breakpoint string      `json:"breakpoint"`
	Candidates []Candidate `json:"candidates"`
}

// Image describes the flat fallback image.
type Image struct {
	URI string `json:"uri"`
	URL string `json:"url"`
	Alt string `json:"alt"`
}

// RenderContext is the data handed to the picture template.
type RenderContext struct {
	Sources []Source `json:"sources"`
	// OutputImageTag is true when no responsive source resolved and only the
	// fallback image should be emitted.
	OutputImageTag bool   `json:"output_image_tag"`
	Fallback       *Image `json:"img_element,omitempty"`
}

// JoinSrcset joins candidates as "<url> <multiplier>" pairs separated by ", ".
func JoinSrcset(candidates []Candidate) string {
	parts := make([]string, 0, len(candidates))
	for _, c := range candidates {
		parts = append(parts, c.URL+" "+c.Multiplier)
	}
	return strings.Join(parts, ", ")
}
