package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-picturegroup/pkg/formatter"
	"github.com/goliatone/go-picturegroup/pkg/prompt"
	"github.com/goliatone/go-picturegroup/pkg/settings"
)

const siteDocument = `base_url: https://example.com/
streams:
  public: https://example.com/sites/default/files
breakpoints_dir: breakpoints
theme:
  default: fixture
bundles:
  node.article:
    - name: title
      label: Title
      type: string
    - name: field_image
      label: Image
      type: image
    - name: field_media
      label: Hero media
      type: entity_reference
      target_type: media
  media.image:
    - name: thumbnail
      label: Thumbnail
      type: image
    - name: field_media_image
      label: Image
      type: image
files:
  "42":
    uri: public://hero.jpg
    filename: hero.jpg
  "50":
    uri: public://thumb.png
    filename: thumb.png
  "51":
    uri: public://body.png
    filename: body.png
media:
  "7":
    bundle: image
    fields:
      thumbnail: "50"
      field_media_image: "51"
entities:
  node/1:
    type: node
    bundle: article
    fields:
      title: Hello
      field_image: "42"
      field_media: "7"
groups:
  - group_name: group_hero
    label: Hero
    entity_type: node
    bundle: article
    format_type: responsive_image
    children:
      - field_image
      - field_media
    format_settings:
      id: hero
      image_fixture_mobile_1x: field_image
      image_fixture_wide_1x: field_media
      image_fallback: field_image
  - group_name: group_stale
    entity_type: node
    bundle: article
    format_settings:
      image_fixture_mobile_1x: field_gone
`

const breakpointsDocument = `fixture.mobile:
  label: Mobile
  mediaQuery: '(max-width: 599px)'
  weight: 0
  multipliers:
    - 1x
    - 2x
fixture.wide:
  label: Wide
  mediaQuery: '(min-width: 600px)'
  weight: 1
  multipliers:
    - 1x
`

func writeSite(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "breakpoints"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "breakpoints", "fixture.breakpoints.yml"), []byte(breakpointsDocument), 0o644); err != nil {
		t.Fatalf("write breakpoints: %v", err)
	}
	path := filepath.Join(dir, "site.yml")
	if err := os.WriteFile(path, []byte(siteDocument), 0o644); err != nil {
		t.Fatalf("write site: %v", err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRenderCommand(t *testing.T) {
	path := writeSite(t)

	out, err := run(t, "render", "group_hero", "node/1", "--site", path)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, want := range []string{
		`<div id="hero">`,
		`<source srcset="/sites/default/files/hero.jpg 1x" media="(max-width: 599px)">`,
		`<source srcset="/sites/default/files/body.png 1x" media="(min-width: 600px)">`,
		`<img src="/sites/default/files/hero.jpg" alt="hero.jpg">`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRenderCommand_WritesFile(t *testing.T) {
	path := writeSite(t)
	target := filepath.Join(t.TempDir(), "hero.html")

	out, err := run(t, "render", "group_hero", "node/1", "--site", path, "-o", target, "--sanitize")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "" {
		t.Fatalf("expected nothing on stdout, got %q", out)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), "<picture>") {
		t.Fatalf("expected picture markup, got:\n%s", data)
	}
}

func TestRenderCommand_UnknownInputs(t *testing.T) {
	path := writeSite(t)

	if _, err := run(t, "render", "group_missing", "node/1", "--site", path); err == nil || !strings.Contains(err.Error(), "group_missing") {
		t.Fatalf("expected unknown group error, got %v", err)
	}
	if _, err := run(t, "render", "group_hero", "node/9", "--site", path); err == nil || !strings.Contains(err.Error(), "node/9") {
		t.Fatalf("expected unknown entity error, got %v", err)
	}
	if _, err := run(t, "render", "group_hero", "node/1", "--site", path, "--theme", "olivero"); err == nil {
		t.Fatal("expected unknown theme error")
	}
}

func TestSummaryCommand(t *testing.T) {
	path := writeSite(t)

	out, err := run(t, "summary", "group_hero", "--site", path)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	want := "Image (Mobile : 1x - (max-width: 599px)) : Image\n" +
		"Image (Wide : 1x - (min-width: 600px)) : Hero media\n" +
		"Image fallback: Image\n"
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestSummaryCommand_StaleReference(t *testing.T) {
	path := writeSite(t)

	_, err := run(t, "summary", "group_stale", "--site", path)
	if !errors.Is(err, formatter.ErrStaleReference) {
		t.Fatalf("expected stale reference error, got %v", err)
	}
}

func TestKeysCommand(t *testing.T) {
	path := writeSite(t)

	out, err := run(t, "keys", "--site", path)
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	var keys []string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n")[1:] {
		keys = append(keys, strings.Fields(line)[0])
	}
	want := []string{
		"image_fixture_mobile_1x",
		"image_fixture_mobile_2x",
		"image_fixture_wide_1x",
		settings.FallbackKey,
	}
	if diff := cmp.Diff(want, keys); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
}

type defaultsDriver struct {
	inputs map[string]string
}

func (d defaultsDriver) Input(_ context.Context, cfg prompt.InputConfig) (string, error) {
	if value, ok := d.inputs[cfg.Message]; ok {
		return value, nil
	}
	return cfg.Default, nil
}

func (defaultsDriver) Confirm(_ context.Context, cfg prompt.ConfirmConfig) (bool, error) {
	return cfg.Default, nil
}

func (defaultsDriver) Select(_ context.Context, cfg prompt.SelectConfig) (int, error) {
	return cfg.DefaultIndex, nil
}

func (defaultsDriver) Info(context.Context, string) error { return nil }

func TestConfigureCommand(t *testing.T) {
	path := writeSite(t)

	previous := newDriver
	newDriver = func(*cobra.Command) prompt.Driver {
		return defaultsDriver{inputs: map[string]string{"Extra CSS classes": "banner wide"}}
	}
	t.Cleanup(func() { newDriver = previous })

	out, err := run(t, "configure", "group_hero", "--site", path)
	if err != nil {
		t.Fatalf("configure: %v", err)
	}
	got, err := settings.Decode([]byte(out))
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	want := settings.Settings{
		"id":                      "hero",
		"classes":                 "banner wide",
		"image_fixture_mobile_1x": "field_image",
		"image_fixture_wide_1x":   "field_media",
		"image_fallback":          "field_image",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("settings mismatch (-want +got):\n%s", diff)
	}
}

func TestRootCommand_InvalidLogLevel(t *testing.T) {
	path := writeSite(t)

	if _, err := run(t, "keys", "--site", path, "--log-level", "loud"); err == nil {
		t.Fatal("expected log level error")
	}
}
