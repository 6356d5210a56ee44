package cli

import (
	"context"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/filemerge/filemerge/pkg/history"
)

func TestHistoryRecordedByMerge(t *testing.T) {
	setTestHome(t)
	dir := t.TempDir()

	a := filepath.Join(dir, "a.png")
	b := filepath.Join(dir, "b.png")
	writePNG(t, a, 10, 10, color.NRGBA{R: 255, A: 255})
	writePNG(t, b, 10, 10, color.NRGBA{B: 255, A: 255})
	out := filepath.Join(dir, "strip.png")

	root := newTestRoot(t)
	root.SetArgs([]string{"merge", "images", a, b, "-o", out, "--layout", "horizontal", "--spacing", "0"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("merge images: %v", err)
	}

	store, err := history.NewFileStore("", history.DefaultLimit)
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	entries, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("list history: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("history has %d entries, want 1", len(entries))
	}

	e := entries[0]
	if e.Category != "image" {
		t.Errorf("category = %q, want image", e.Category)
	}
	if e.Inputs != 2 {
		t.Errorf("inputs = %d, want 2", e.Inputs)
	}
	if e.Output != out {
		t.Errorf("output = %q, want %q", e.Output, out)
	}
	if e.Width != 20 || e.Height != 10 {
		t.Errorf("canvas = %dx%d, want 20x10", e.Width, e.Height)
	}
	if e.Duration <= 0 {
		t.Errorf("duration = %v, want > 0", e.Duration)
	}
}

func TestHistoryClearCommand(t *testing.T) {
	setTestHome(t)

	store, err := history.NewFileStore("", history.DefaultLimit)
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	if err := store.Append(context.Background(), history.Entry{Category: "text", Inputs: 3, Output: "all.txt"}); err != nil {
		t.Fatalf("seed history: %v", err)
	}

	root := newTestRoot(t)
	root.SetArgs([]string{"history", "clear"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("history clear: %v", err)
	}

	entries, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("list history: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("history has %d entries after clear, want 0", len(entries))
	}
}
