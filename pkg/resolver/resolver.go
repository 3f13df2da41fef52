package resolver

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-picturegroup/pkg/breakpoint"
	"github.com/goliatone/go-picturegroup/pkg/entity"
	"github.com/goliatone/go-picturegroup/pkg/settings"
)

// URLMaterializer turns a file into an embeddable URL, optionally through a
// named image style. image.Materializer satisfies it.
type URLMaterializer interface {
	URL(ctx context.Context, file entity.File, style string) (string, error)
}

// Resolver maps configured fields to files and URLs. It holds no mutable state
// and may be shared between renders.
type Resolver struct {
	files  entity.FileLoader
	media  entity.MediaLoader
	urls   URLMaterializer
	logger logrus.FieldLogger
	opts   Options
}

// New constructs a Resolver. files and urls are required; media may be nil
// when the site has no media items, in which case media references never
// resolve.
func New(files entity.FileLoader, media entity.MediaLoader, urls URLMaterializer, fns ...OptionFn) (*Resolver, error) {
	if files == nil {
		return nil, errors.New("resolver: file loader is required")
	}
	if urls == nil {
		return nil, errors.New("resolver: url materializer is required")
	}
	opts := NewOptions(fns...)
	return &Resolver{
		files:  files,
		media:  media,
		urls:   urls,
		logger: opts.Logger,
		opts:   opts,
	}, nil
}

// Resolve builds the render context for view from the stored settings and the
// active breakpoints. Absent configuration never produces an error; only host
// failures (storage, unknown styles) are returned.
func (r *Resolver) Resolve(ctx context.Context, view entity.View, stored settings.Settings, breakpoints []breakpoint.Breakpoint) (RenderContext, error) {
	out := RenderContext{}

	for _, selected := range settings.ByBreakpoint(settings.Configured(breakpoints, stored)) {
		bp := selected[0].Breakpoint
		source, ok, err := r.buildSource(ctx, view, bp, selected)
		if err != nil {
			return RenderContext{}, err
		}
		if !ok {
			r.logger.WithField("breakpoint", bp.ID).Debug("resolver: no candidate resolved, source omitted")
			continue
		}
		out.Sources = append(out.Sources, source)
	}

	out.OutputImageTag = len(out.Sources) == 0

	fallback, err := r.fallback(ctx, view, stored.Get(settings.FallbackKey))
	if err != nil {
		return RenderContext{}, err
	}
	out.Fallback = fallback

	return out, nil
}

// buildSource returns ok=false when no multiplier of bp resolved, so callers
// omit the breakpoint instead of emitting an empty source.
func (r *Resolver) buildSource(ctx context.Context, view entity.View, bp breakpoint.Breakpoint, selected []settings.Selection) (Source, bool, error) {
	candidates := make([]Candidate, 0, len(selected))
	for _, sel := range selected {
		url, ok, err := r.ImageURL(ctx, view, sel.Field, "")
		if err != nil {
			return Source{}, false, fmt.Errorf("resolver: breakpoint %q multiplier %q: %w", bp.ID, sel.Multiplier, err)
		}
		if !ok {
			r.logger.WithFields(logrus.Fields{
				"breakpoint": bp.ID,
				"multiplier": sel.Multiplier,
				"field":      sel.Field,
			}).Debug("resolver: field did not resolve to a file")
			continue
		}
		candidates = append(candidates, Candidate{URL: url, Multiplier: sel.Multiplier})
	}

	if len(candidates) == 0 {
		return Source{}, false, nil
	}
	return Source{
		Srcset:     JoinSrcset(candidates),
		Media:      bp.MediaQuery,
		Breakpoint: bp.ID,
		Candidates: candidates,
	}, true, nil
}

func (r *Resolver) fallback(ctx context.Context, view entity.View, field string) (*Image, error) {
	if field == "" {
		return nil, nil
	}
	file, ok, err := r.ResolveFile(ctx, view, field)
	if err != nil {
		return nil, fmt.Errorf("resolver: fallback image: %w", err)
	}
	if !ok {
		return nil, nil
	}
	url, err := r.urls.URL(ctx, file, r.opts.FallbackStyle)
	if err != nil {
		return nil, fmt.Errorf("resolver: fallback image: %w", err)
	}
	return &Image{URI: file.URI, URL: url, Alt: file.Filename}, nil
}

// ImageURL resolves field on view to a relative URL. ok is false when the
// field does not lead to a file.
func (r *Resolver) ImageURL(ctx context.Context, view entity.View, field, style string) (string, bool, error) {
	file, ok, err := r.ResolveFile(ctx, view, field)
	if err != nil || !ok {
		return "", false, err
	}
	url, err := r.urls.URL(ctx, file, style)
	if err != nil {
		return "", false, err
	}
	return url, true, nil
}

// ResolveFile follows field on view to its image file:
//
//  1. no entity, no value or no definition: not found;
//  2. media reference: load the media item and take the first image field
//     that is not the thumbnail, in definition order;
//  3. otherwise: load the file by the stored target id.
func (r *Resolver) ResolveFile(ctx context.Context, view entity.View, field string) (entity.File, bool, error) {
	if view == nil || field == "" {
		return entity.File{}, false, nil
	}

	value, ok := view.FieldValue(field)
	if !ok {
		return entity.File{}, false, nil
	}
	targetID, ok := value.Target()
	if !ok {
		return entity.File{}, false, nil
	}
	def, ok := view.FieldDefinition(field)
	if !ok {
		return entity.File{}, false, nil
	}

	if def.IsMediaReference() {
		return r.resolveMedia(ctx, targetID)
	}
	return r.files.LoadFile(ctx, targetID)
}

func (r *Resolver) resolveMedia(ctx context.Context, mediaID string) (entity.File, bool, error) {
	if r.media == nil {
		return entity.File{}, false, nil
	}
	media, ok, err := r.media.LoadMedia(ctx, mediaID)
	if err != nil || !ok || media == nil {
		return entity.File{}, false, err
	}

	for _, def := range media.FieldDefinitions() {
		if !def.IsImage() || def.Name == r.opts.ThumbnailField {
			continue
		}
		value, ok := media.FieldValue(def.Name)
		if !ok {
			return entity.File{}, false, nil
		}
		fileID, ok := value.Target()
		if !ok {
			return entity.File{}, false, nil
		}
		return r.files.LoadFile(ctx, fileID)
	}
	return entity.File{}, false, nil
}
