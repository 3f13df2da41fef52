package image

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-picturegroup/pkg/entity"
)

// Materializer converts file entities into embeddable URLs.
type Materializer struct {
	Generator URLGenerator
	Builder   DerivativeURLBuilder
	// BaseURL is the site URL used to decide which URLs can be made relative.
	BaseURL string
}

// URL returns the relative URL for file. An empty style uses the original
// file; a named style delegates to the derivative builder.
func (m Materializer) URL(ctx context.Context, file entity.File, style string) (string, error) {
	if strings.TrimSpace(file.URI) == "" {
		return "", errors.New("image: file uri is required")
	}

	var (
		absolute string
		err      error
	)
	if style = strings.TrimSpace(style); style == "" {
		if m.Generator == nil {
			return "", errors.New("image: url generator is not configured")
		}
		absolute, err = m.Generator.PublicURL(file.URI)
	} else {
		if m.Builder == nil {
			return "", fmt.Errorf("%w: %q (no derivative builder configured)", ErrUnknownStyle, style)
		}
		absolute, err = m.Builder.BuildURL(ctx, style, file.URI)
	}
	if err != nil {
		return "", err
	}
	return MakeRelative(absolute, m.BaseURL), nil
}
