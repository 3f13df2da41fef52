package resolver

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-picturegroup/pkg/entity"
)

// Options configures a Resolver.
type Options struct {
	Logger         logrus.FieldLogger
	ThumbnailField string
	// FallbackStyle optionally renders the fallback image through a named
	// image style. Empty uses the original file.
	FallbackStyle string
}

// OptionFn mutates Options.
type OptionFn func(*Options)

// DefaultOptions returns the resolver defaults: a discarding logger and the
// conventional thumbnail field name.
func DefaultOptions() Options {
	return Options{
		Logger:         discardLogger(),
		ThumbnailField: entity.ThumbnailField,
	}
}

// NewOptions applies fns over the defaults.
func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = discardLogger()
	}
	if opts.ThumbnailField == "" {
		opts.ThumbnailField = entity.ThumbnailField
	}
	return opts
}

// WithLogger routes debug output about dropped candidates to logger.
func WithLogger(logger logrus.FieldLogger) OptionFn {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithThumbnailField overrides the media field skipped during the image scan.
func WithThumbnailField(name string) OptionFn {
	return func(o *Options) {
		o.ThumbnailField = name
	}
}

// WithFallbackStyle renders the fallback image through style.
func WithFallbackStyle(style string) OptionFn {
	return func(o *Options) {
		o.FallbackStyle = style
	}
}

func discardLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
