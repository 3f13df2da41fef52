package image

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/purell"
)

const normaliseFlags = purell.FlagsSafe | purell.FlagRemoveDotSegments | purell.FlagRemoveDuplicateSlashes

// MakeRelative normalises raw and strips the scheme and host when they match
// baseURL. URLs on other hosts become protocol-relative. Values that are
// already relative are only normalised.
func MakeRelative(raw, baseURL string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	normalised, err := purell.NormalizeURLString(raw, normaliseFlags)
	if err != nil {
		return raw
	}

	parsed, err := url.Parse(normalised)
	if err != nil || parsed.Host == "" {
		return normalised
	}

	relative := parsed.EscapedPath()
	if relative == "" {
		relative = "/"
	}
	if parsed.RawQuery != "" {
		relative += "?" + parsed.RawQuery
	}
	if parsed.Fragment != "" {
		relative += "#" + parsed.EscapedFragment()
	}

	if sameHost(parsed, baseURL) {
		return relative
	}
	return "//" + parsed.Host + relative
}

func sameHost(target *url.URL, baseURL string) bool {
	if strings.TrimSpace(baseURL) == "" {
		return false
	}
	normalisedBase, err := purell.NormalizeURLString(baseURL, purell.FlagsSafe)
	if err != nil {
		return false
	}
	base, err := url.Parse(normalisedBase)
	if err != nil {
		return false
	}
	return strings.EqualFold(base.Host, target.Host)
}
