package breakpoint_test

import (
	"context"
	"os"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-picturegroup/pkg/breakpoint"
)

func TestLoadFS_OrdersByWeightAndGroups(t *testing.T) {
	store, err := breakpoint.LoadFS(os.DirFS("testdata"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	got, err := store.BreakpointsByGroup(context.Background(), "olivero")
	if err != nil {
		t.Fatalf("breakpoints: %v", err)
	}

	want := []breakpoint.Breakpoint{
		{ID: "olivero.sm", Label: "sm", MediaQuery: "all and (min-width: 500px)", Multipliers: []string{"1x", "2x"}, Weight: 0, Group: "olivero"},
		{ID: "olivero.md", Label: "md", MediaQuery: "all and (min-width: 750px)", Multipliers: []string{"1x"}, Weight: 1, Group: "olivero"},
		{ID: "olivero.lg", Label: "lg", MediaQuery: "all and (min-width: 1000px)", Multipliers: []string{"1x", "2x"}, Weight: 2, Group: "olivero"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("breakpoints mismatch (-want +got):\n%s", diff)
	}

	grid, _ := store.BreakpointsByGroup(context.Background(), "olivero.grid")
	if len(grid) != 1 || len(grid[0].Multipliers) != 1 {
		t.Fatalf("expected explicit group with deduplicated multipliers, got %+v", grid)
	}

	if diff := cmp.Diff([]string{"olivero", "olivero.grid"}, store.Groups()); diff != "" {
		t.Fatalf("groups mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFS_UnknownGroupIsEmpty(t *testing.T) {
	store, err := breakpoint.LoadFS(os.DirFS("testdata"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	got, err := store.BreakpointsByGroup(context.Background(), "claro")
	if err != nil {
		t.Fatalf("breakpoints: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}
}

func TestLoadFS_DuplicateIDs(t *testing.T) {
	fsys := fstest.MapFS{
		"a.breakpoints.yml": {Data: []byte("shared.one:\n  label: one\n")},
		"b.breakpoints.yml": {Data: []byte("shared.one:\n  label: again\n")},
	}
	if _, err := breakpoint.LoadFS(fsys); err == nil {
		t.Fatalf("expected duplicate id error")
	}
}

func TestStore_ReturnsCopies(t *testing.T) {
	store, err := breakpoint.LoadFS(os.DirFS("testdata"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	first, _ := store.BreakpointsByGroup(context.Background(), "olivero")
	first[0].Multipliers[0] = "mutated"

	second, _ := store.BreakpointsByGroup(context.Background(), "olivero")
	if second[0].Multipliers[0] != "1x" {
		t.Fatalf("store mutated through returned slice: %+v", second[0])
	}
}

func TestParse_RejectsSequences(t *testing.T) {
	if _, err := breakpoint.Parse([]byte("- one\n- two\n"), "g"); err == nil {
		t.Fatalf("expected error for sequence document")
	}
}
