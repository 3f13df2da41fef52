package picture

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

// Policy returns the output policy used by WithSanitizer(nil). It keeps the
// container div and the picture, source and img elements with the attributes
// the templates emit.
func Policy() *bluemonday.Policy {
	policyOnce.Do(func() {
		p := bluemonday.StrictPolicy()
		p.AllowElements("div", "picture", "source", "img")
		p.AllowNoAttrs().OnElements("div", "picture")

		p.AllowAttrs("id", "class").OnElements("div")
		p.AllowAttrs("srcset", "media", "sizes", "type").OnElements("source")
		p.AllowAttrs("src", "srcset", "alt", "width", "height", "loading").OnElements("img")

		policy = p
	})
	return policy
}
