package formatter

import (
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/goliatone/go-picturegroup/pkg/render"
	"github.com/goliatone/go-picturegroup/pkg/settings"
)

var (
	idInvalidChars = regexp.MustCompile(`[^A-Za-z0-9\-_]`)
	idHyphenRuns   = regexp.MustCompile(`-+`)
	validClassList = regexp.MustCompile(`^[A-Za-z0-9\-_ ]+$`)
	validID        = regexp.MustCompile(`^[A-Za-z0-9\-_]+$`)
	idReplacer     = strings.NewReplacer(" ", "-", "_", "-", "[", "-", "]", "")
)

// HideChildren marks every visible child of element as hidden; the group
// renders its own markup instead of its member fields.
func HideChildren(element *render.Element) {
	if element == nil {
		return
	}
	for _, child := range element.VisibleChildren() {
		child.Hidden = true
	}
}

// CleanID lowercases id and reduces it to characters valid in an HTML id.
// It does not make the id unique on the page; use HTMLIDs for that.
func CleanID(id string) string {
	id = idReplacer.Replace(strings.ToLower(strings.TrimSpace(id)))
	id = idInvalidChars.ReplaceAllString(id, "")
	return idHyphenRuns.ReplaceAllString(id, "-")
}

// HTMLIDs hands out ids that are unique within one page. The first use of
// an id keeps it, repeats get a "--N" suffix: hero, hero--2, hero--3.
type HTMLIDs struct {
	mu   sync.Mutex
	seen map[string]int
}

// NewHTMLIDs returns an empty id set for a page render.
func NewHTMLIDs() *HTMLIDs {
	return &HTMLIDs{seen: map[string]int{}}
}

// Unique cleans id and suffixes it if it was already handed out.
func (u *HTMLIDs) Unique(id string) string {
	id = CleanID(id)
	if u == nil || id == "" {
		return id
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	if u.seen == nil {
		u.seen = map[string]int{}
	}
	n, ok := u.seen[id]
	if !ok {
		u.seen[id] = 1
		return id
	}
	n++
	u.seen[id] = n
	return id + "--" + strconv.Itoa(n)
}

// Classes returns the extra CSS classes configured on the group.
func Classes(stored settings.Settings) []string {
	return strings.Fields(stored.Get(settings.ClassesKey))
}

// BuildAttributes returns the container attributes for the group settings.
func BuildAttributes(stored settings.Settings) render.Attributes {
	attrs := render.Attributes{}
	if id := stored.Get(settings.IDKey); id != "" {
		if cleaned := CleanID(id); cleaned != "" {
			attrs["id"] = cleaned
		}
	}
	attrs.AddClass(Classes(stored)...)
	return attrs
}
