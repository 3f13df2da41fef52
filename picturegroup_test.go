package picturegroup_test

import (
	"io/fs"
	"strings"
	"testing"

	picturegroup "github.com/goliatone/go-picturegroup"
	"github.com/goliatone/go-picturegroup/pkg/breakpoint"
	"github.com/goliatone/go-picturegroup/pkg/entity"
	"github.com/goliatone/go-picturegroup/pkg/orchestrator"
	"github.com/goliatone/go-picturegroup/pkg/resolver"
	"github.com/goliatone/go-picturegroup/pkg/testsupport"
)

func TestGenerateHTML_FallbackOnly(t *testing.T) {
	files := testsupport.Files{}.Add("42", "public://hero.jpg", "hero.jpg")
	res, err := resolver.New(files, testsupport.Media{}, testsupport.Materializer(t))
	if err != nil {
		t.Fatalf("resolver: %v", err)
	}
	article := entity.NewRecord("1", "node", "article", testsupport.ArticleDefinitions()...).
		Set("field_image", entity.Reference("42", entity.TargetTypeFile))

	html, err := picturegroup.GenerateHTML(testsupport.Context(), picturegroup.Group{
		Name:       "group_hero",
		EntityType: "node",
		Bundle:     "article",
		Settings:   picturegroup.Settings{"image_fallback": "field_image"},
	}, article,
		orchestrator.WithBreakpoints(breakpoint.Static(testsupport.Breakpoints())),
		orchestrator.WithFieldMetadata(testsupport.Bundles{"node.article": testsupport.ArticleDefinitions()}),
		orchestrator.WithResolver(res),
		orchestrator.WithDefaultTheme("fixture", ""),
	)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(html), `<img src="/sites/default/files/hero.jpg" alt="hero.jpg">`) {
		t.Fatalf("expected fallback image, got:\n%s", html)
	}
	if strings.Contains(string(html), "<picture>") {
		t.Fatalf("expected no picture element without sources, got:\n%s", html)
	}
}

func TestSettingsKey(t *testing.T) {
	if got := picturegroup.SettingsKey("olivero.lg", "1.5x"); got != "image_olivero_lg_1_5x" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	for _, name := range []string{"templates/field-group-picture.tpl", "templates/responsive-image.tpl"} {
		if _, err := fs.Stat(picturegroup.EmbeddedTemplates(), name); err != nil {
			t.Fatalf("expected %s: %v", name, err)
		}
	}
}
