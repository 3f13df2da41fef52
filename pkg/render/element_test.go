package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-picturegroup/pkg/render"
)

func TestAttributes_AddClassDeduplicates(t *testing.T) {
	attrs := render.Attributes{}
	attrs.AddClass("hero  banner", "banner", "")
	attrs.AddClass("wide")
	if attrs["class"] != "hero banner wide" {
		t.Fatalf("unexpected class list %q", attrs["class"])
	}
}

func TestAttributes_Ordered(t *testing.T) {
	attrs := render.Attributes{"data-b": "2", "class": "x", "id": "group", "data-a": "1", "title": " "}
	want := []render.Attribute{
		{Name: "id", Value: "group"},
		{Name: "class", Value: "x"},
		{Name: "data-a", Value: "1"},
		{Name: "data-b", Value: "2"},
	}
	if diff := cmp.Diff(want, attrs.Ordered()); diff != "" {
		t.Fatalf("ordered attributes mismatch (-want +got):\n%s", diff)
	}
}

func TestElement_VisibleChildren(t *testing.T) {
	root := render.NewElement("group")
	root.AddChild(&render.Element{Name: "b", Weight: 2})
	root.AddChild(&render.Element{Name: "hidden", Hidden: true})
	root.AddChild(&render.Element{Name: "a", Weight: 1})

	var names []string
	for _, child := range root.VisibleChildren() {
		names = append(names, child.Name)
	}
	if diff := cmp.Diff([]string{"a", "b"}, names); diff != "" {
		t.Fatalf("visible children mismatch (-want +got):\n%s", diff)
	}
	if _, ok := root.Child("hidden"); !ok {
		t.Fatalf("expected hidden child to remain addressable")
	}
}
