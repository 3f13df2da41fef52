package site_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-picturegroup/pkg/entity"
	"github.com/goliatone/go-picturegroup/pkg/resolver"
	"github.com/goliatone/go-picturegroup/pkg/settings"
	"github.com/goliatone/go-picturegroup/pkg/site"
)

func loadSite(t *testing.T) *site.Site {
	t.Helper()
	s, err := site.Load(filepath.Join("testdata", "site.yml"))
	if err != nil {
		t.Fatalf("load site: %v", err)
	}
	return s
}

func TestLoad_BuildsHost(t *testing.T) {
	s := loadSite(t)
	ctx := context.Background()

	if s.BaseURL != "https://example.com" {
		t.Fatalf("expected trailing slash trimmed, got %q", s.BaseURL)
	}

	defs, err := s.FieldDefinitions(ctx, "media", "image")
	if err != nil {
		t.Fatalf("field definitions: %v", err)
	}
	var names []string
	for _, def := range defs {
		names = append(names, def.Name)
	}
	if diff := cmp.Diff([]string{"thumbnail", "field_media_image"}, names); diff != "" {
		t.Fatalf("definition order mismatch (-want +got):\n%s", diff)
	}

	file, ok, err := s.LoadFile(ctx, "42")
	if err != nil || !ok {
		t.Fatalf("load file: ok=%v err=%v", ok, err)
	}
	if diff := cmp.Diff(entity.File{ID: "42", URI: "public://hero.jpg", Filename: "hero.jpg"}, file); diff != "" {
		t.Fatalf("file mismatch (-want +got):\n%s", diff)
	}

	article, ok := s.Entity("node/1")
	if !ok {
		t.Fatalf("expected node/1, have %v", s.EntityKeys())
	}
	if article.ID != "1" {
		t.Fatalf("expected id 1, got %q", article.ID)
	}
	media, _ := article.FieldValue("field_media")
	if diff := cmp.Diff(entity.Reference("7", entity.TargetTypeMedia), media); diff != "" {
		t.Fatalf("media reference mismatch (-want +got):\n%s", diff)
	}
	title, _ := article.FieldValue("title")
	if diff := cmp.Diff(entity.Scalar("Hello"), title); diff != "" {
		t.Fatalf("title mismatch (-want +got):\n%s", diff)
	}

	group, ok := s.Group("group_hero")
	if !ok {
		t.Fatalf("expected group_hero")
	}
	if group.Settings.Get(settings.Key("fixture.wide", "1x")) != "field_media" {
		t.Fatalf("unexpected group settings %v", group.Settings)
	}

	bps, err := s.Breakpoints.BreakpointsByGroup(ctx, "fixture")
	if err != nil {
		t.Fatalf("breakpoints: %v", err)
	}
	if len(bps) != 2 || bps[0].ID != "fixture.mobile" {
		t.Fatalf("unexpected breakpoints %+v", bps)
	}
}

func TestSite_ResolvesThroughResolver(t *testing.T) {
	s := loadSite(t)
	ctx := context.Background()

	res, err := resolver.New(s, s, s.Materializer())
	if err != nil {
		t.Fatalf("resolver: %v", err)
	}
	article, _ := s.Entity("node/1")

	url, ok, err := res.ImageURL(ctx, article, "field_media", "")
	if err != nil || !ok {
		t.Fatalf("image url: ok=%v err=%v", ok, err)
	}
	if url != "/sites/default/files/body.png" {
		t.Fatalf("expected media source image, got %q", url)
	}

	styled, ok, err := res.ImageURL(ctx, article, "field_image", "wide")
	if err != nil || !ok {
		t.Fatalf("styled url: ok=%v err=%v", ok, err)
	}
	want, err := s.Styles.BuildURL(ctx, "wide", "public://hero.jpg")
	if err != nil {
		t.Fatalf("build url: %v", err)
	}
	if styled != want[len(s.BaseURL):] {
		t.Fatalf("expected %q, got %q", want[len(s.BaseURL):], styled)
	}
}

func TestSite_Select(t *testing.T) {
	s := loadSite(t)

	sel, err := s.Select("", "dark")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if sel.Theme != "fixture" || sel.Variant != "dark" || sel.Manifest == nil {
		t.Fatalf("unexpected selection %+v", sel)
	}
	if sel.Manifest.Variants["dark"].Templates["picture.responsive_image"] != "themes/fixture/dark/picture" {
		t.Fatalf("variant templates not loaded: %+v", sel.Manifest.Variants)
	}

	sel, err = s.Select("fixture", "sepia")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if sel.Variant != "" {
		t.Fatalf("expected unknown variant to fall back to base, got %q", sel.Variant)
	}

	if _, err := s.Select("missing", ""); !errors.Is(err, site.ErrUnknownTheme) {
		t.Fatalf("expected ErrUnknownTheme, got %v", err)
	}
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]string{
		"empty":          "",
		"no base url":    "itok_key: x\n",
		"bad bundle key": "base_url: https://example.com\nbundles:\n  article: []\n",
		"unknown bundle": "base_url: https://example.com\nentities:\n  node/1:\n    type: node\n    bundle: page\n",
		"unknown field":  "base_url: https://example.com\nbundles:\n  node.page: []\nentities:\n  node/1:\n    type: node\n    bundle: page\n    fields:\n      body: x\n",
	}
	for name, doc := range cases {
		if _, err := site.Parse([]byte(doc)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}
