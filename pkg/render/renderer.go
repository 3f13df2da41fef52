package render

import (
	"context"
)

// Renderer converts a populated field group element into markup.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, element *Element, options RenderOptions) ([]byte, error)
}
