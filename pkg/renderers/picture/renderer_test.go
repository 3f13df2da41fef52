package picture_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html"

	"github.com/goliatone/go-picturegroup/pkg/render"
	"github.com/goliatone/go-picturegroup/pkg/renderers/picture"
	"github.com/goliatone/go-picturegroup/pkg/resolver"
)

type node struct {
	Tag   string
	Attrs map[string]string
}

// elements parses markup and returns every element in document order, minus
// the html/head/body wrappers the parser adds.
func elements(t *testing.T, markup []byte) []node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(string(markup)))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	var out []node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "html", "head", "body":
			default:
				attrs := map[string]string{}
				for _, a := range n.Attr {
					attrs[a.Key] = a.Val
				}
				out = append(out, node{Tag: n.Data, Attrs: attrs})
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return out
}

func pictureElement(pic resolver.RenderContext) *render.Element {
	el := render.NewElement("group_hero")
	el.Type = render.TypeContainer
	el.Attributes = render.Attributes{"id": "hero", "class": "hero wide"}
	hidden := el.AddChild(render.NewElement("field_image"))
	hidden.Hidden = true
	hidden.Markup = "<p>hidden</p>"
	child := el.AddChild(render.NewElement("picture"))
	child.Picture = &pic
	return el
}

func responsive() resolver.RenderContext {
	return resolver.RenderContext{
		Sources: []resolver.Source{
			{
				Srcset: "/files/m.jpg 1x, /files/m2.jpg 2x",
				Media:  "(max-width: 599px)",
				Candidates: []resolver.Candidate{
					{URL: "/files/m.jpg", Multiplier: "1x"},
					{URL: "/files/m2.jpg", Multiplier: "2x"},
				},
			},
			{
				Srcset:     "/files/w.jpg 1x",
				Media:      "(min-width: 600px)",
				Candidates: []resolver.Candidate{{URL: "/files/w.jpg", Multiplier: "1x"}},
			},
		},
		Fallback: &resolver.Image{URI: "public://f.jpg", URL: "/files/f.jpg", Alt: "f.jpg"},
	}
}

func newRenderer(t *testing.T, opts ...picture.Option) *picture.Renderer {
	t.Helper()
	r, err := picture.New(opts...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func TestRender_PictureWithSources(t *testing.T) {
	r := newRenderer(t)

	out, err := r.Render(context.Background(), pictureElement(responsive()), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := []node{
		{Tag: "div", Attrs: map[string]string{"id": "hero", "class": "hero wide"}},
		{Tag: "picture", Attrs: map[string]string{}},
		{Tag: "source", Attrs: map[string]string{"srcset": "/files/m.jpg 1x, /files/m2.jpg 2x", "media": "(max-width: 599px)"}},
		{Tag: "source", Attrs: map[string]string{"srcset": "/files/w.jpg 1x", "media": "(min-width: 600px)"}},
		{Tag: "img", Attrs: map[string]string{"src": "/files/f.jpg", "alt": "f.jpg"}},
	}
	if diff := cmp.Diff(want, elements(t, out)); diff != "" {
		t.Fatalf("markup mismatch (-want +got):\n%s\n%s", diff, out)
	}
	if strings.Contains(string(out), "hidden") {
		t.Fatalf("hidden child rendered: %s", out)
	}
}

func TestRenderPicture_SrcsetComesFromCandidates(t *testing.T) {
	r := newRenderer(t)
	pic := resolver.RenderContext{
		Sources: []resolver.Source{{
			Media: "(min-width: 600px)",
			Candidates: []resolver.Candidate{
				{URL: "/files/w.jpg", Multiplier: "1x"},
				{URL: "", Multiplier: "1.5x"},
				{URL: "/files/w2.jpg", Multiplier: "2x"},
			},
		}},
	}

	out, err := r.RenderPicture(pic, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render picture: %v", err)
	}

	want := []node{
		{Tag: "picture", Attrs: map[string]string{}},
		{Tag: "source", Attrs: map[string]string{"srcset": "/files/w.jpg 1x, /files/w2.jpg 2x", "media": "(min-width: 600px)"}},
	}
	if diff := cmp.Diff(want, elements(t, []byte(out))); diff != "" {
		t.Fatalf("markup mismatch (-want +got):\n%s\n%s", diff, out)
	}
}

func TestRender_OutputImageTagOnly(t *testing.T) {
	r := newRenderer(t)
	pic := resolver.RenderContext{
		OutputImageTag: true,
		Fallback:       &resolver.Image{URL: "/files/f.jpg", Alt: `a "quoted" <name>`},
	}

	out, err := r.Render(context.Background(), pictureElement(pic), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := []node{
		{Tag: "div", Attrs: map[string]string{"id": "hero", "class": "hero wide"}},
		{Tag: "img", Attrs: map[string]string{"src": "/files/f.jpg", "alt": `a "quoted" <name>`}},
	}
	if diff := cmp.Diff(want, elements(t, out)); diff != "" {
		t.Fatalf("markup mismatch (-want +got):\n%s\n%s", diff, out)
	}
}

func TestRender_NoSourcesNoFallbackRendersEmptyContainer(t *testing.T) {
	r := newRenderer(t)

	out, err := r.Render(context.Background(), pictureElement(resolver.RenderContext{OutputImageTag: true}), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := []node{{Tag: "div", Attrs: map[string]string{"id": "hero", "class": "hero wide"}}}
	if diff := cmp.Diff(want, elements(t, out)); diff != "" {
		t.Fatalf("markup mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_ThemePartialOverride(t *testing.T) {
	funcs := render.TemplateI18nFuncs(render.TranslatorFunc(func(locale, key string, _ ...any) (string, error) {
		if locale == "es" && key == "Hero" {
			return "Portada", nil
		}
		return "", errors.New("missing")
	}), render.TemplateI18nConfig{})

	r := newRenderer(t,
		picture.WithTemplatesFS(os.DirFS("testdata/theme")),
		picture.WithTemplateFuncs(funcs),
	)
	opts := render.RenderOptions{
		Locale:   "es",
		Partials: map[string]string{picture.PartialResponsiveImage: "themes/olivero/picture"},
	}

	// The parent is not a container, so only the child markup renders.
	parent := render.NewElement("group")
	parent.AddChild(render.NewElement("picture")).Picture = ptr(responsive())
	out, err := r.Render(context.Background(), parent, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := []node{
		{Tag: "figure", Attrs: map[string]string{"class": "theme-picture"}},
		{Tag: "picture", Attrs: map[string]string{}},
		{Tag: "source", Attrs: map[string]string{"srcset": "/files/m.jpg 1x, /files/m2.jpg 2x", "media": "(max-width: 599px)"}},
		{Tag: "source", Attrs: map[string]string{"srcset": "/files/w.jpg 1x", "media": "(min-width: 600px)"}},
	}
	if diff := cmp.Diff(want, elements(t, out)); diff != "" {
		t.Fatalf("markup mismatch (-want +got):\n%s\n%s", diff, out)
	}

	fallback := resolver.RenderContext{OutputImageTag: true, Fallback: &resolver.Image{URL: "/f.jpg"}}
	fallbackParent := render.NewElement("group")
	fallbackParent.AddChild(render.NewElement("picture")).Picture = &fallback
	out, err = r.Render(context.Background(), fallbackParent, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want = []node{
		{Tag: "figure", Attrs: map[string]string{"class": "theme-picture"}},
		{Tag: "img", Attrs: map[string]string{"src": "/f.jpg", "alt": "Portada"}},
	}
	if diff := cmp.Diff(want, elements(t, out)); diff != "" {
		t.Fatalf("markup mismatch (-want +got):\n%s\n%s", diff, out)
	}
}

func TestRender_Sanitizer(t *testing.T) {
	r := newRenderer(t, picture.WithSanitizer(nil))

	el := pictureElement(responsive())
	el.AddChild(render.NewElement("extra")).Markup = `<script>alert(1)</script><img src="/x.jpg" onerror="alert(1)">`

	out, err := r.Render(context.Background(), el, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	markup := string(out)
	if strings.Contains(markup, "script") || strings.Contains(markup, "onerror") {
		t.Fatalf("expected unsafe markup removed, got %s", markup)
	}

	var tags []string
	for _, n := range elements(t, out) {
		tags = append(tags, n.Tag)
	}
	if diff := cmp.Diff([]string{"div", "picture", "source", "source", "img", "img"}, tags); diff != "" {
		t.Fatalf("tags mismatch (-want +got):\n%s\n%s", diff, markup)
	}
}

func TestRender_NilElement(t *testing.T) {
	r := newRenderer(t)
	if _, err := r.Render(context.Background(), nil, render.RenderOptions{}); err == nil {
		t.Fatalf("expected error for nil element")
	}
}

func TestRenderer_Metadata(t *testing.T) {
	r := newRenderer(t)
	if r.Name() != picture.Name || r.ContentType() != "text/html; charset=utf-8" {
		t.Fatalf("unexpected metadata %q %q", r.Name(), r.ContentType())
	}
	registry := render.NewRegistry()
	registry.MustRegister(r)
	if !registry.Has(picture.Name) {
		t.Fatalf("expected renderer registered")
	}
}

func ptr[T any](v T) *T {
	return &v
}
