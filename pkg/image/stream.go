package image

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrUnknownScheme is returned when a URI uses a scheme with no base URL.
var ErrUnknownScheme = errors.New("image: unknown stream wrapper scheme")

// URLGenerator converts a stored URI (`public://a.png`) into an absolute URL.
type URLGenerator interface {
	PublicURL(uri string) (string, error)
}

// StreamWrappers maps URI schemes to absolute base URLs, e.g.
// `public` -> `https://example.com/sites/default/files`.
type StreamWrappers map[string]string

var _ URLGenerator = StreamWrappers(nil)

// SplitURI separates `scheme://target`. URIs without a scheme return an empty
// scheme and the raw value as target.
func SplitURI(uri string) (scheme, target string) {
	idx := strings.Index(uri, "://")
	if idx <= 0 {
		return "", uri
	}
	return uri[:idx], uri[idx+3:]
}

// PublicURL resolves uri against the configured base URLs. http(s) URIs and
// protocol-relative URIs are returned untouched.
func (w StreamWrappers) PublicURL(uri string) (string, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return "", errors.New("image: uri is required")
	}
	if strings.HasPrefix(uri, "//") {
		return uri, nil
	}

	scheme, target := SplitURI(uri)
	switch strings.ToLower(scheme) {
	case "http", "https":
		return uri, nil
	case "":
		return "/" + encodePath(strings.TrimPrefix(target, "/")), nil
	}

	base, ok := w[scheme]
	if !ok || strings.TrimSpace(base) == "" {
		return "", fmt.Errorf("%w: %q", ErrUnknownScheme, scheme)
	}
	return joinURL(base, encodePath(target)), nil
}

func encodePath(p string) string {
	segments := strings.Split(p, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}

func joinURL(base, rel string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(rel, "/")
}
