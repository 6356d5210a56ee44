package history

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T, limit int) *FileStore {
	t.Helper()
	s, err := NewFileStore(filepath.Join(t.TempDir(), "history.json"), limit)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	return s
}

func TestAppendAndList(t *testing.T) {
	s := newTestStore(t, 0)
	ctx := context.Background()

	first := Entry{Category: "image", Inputs: 3, Output: "merged.png", Width: 320, Height: 100, Duration: 42 * time.Millisecond}
	second := Entry{Category: "text", Inputs: 2, Output: "merged.txt"}
	if err := s.Append(ctx, first); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := s.Append(ctx, second); err != nil {
		t.Fatalf("Append: %v", err)
	}

	entries, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Category != "text" || entries[1].Category != "image" {
		t.Errorf("order = %s, %s; want most recent first", entries[0].Category, entries[1].Category)
	}
	if entries[1].Width != 320 || entries[1].Height != 100 {
		t.Errorf("canvas = %dx%d, want 320x100", entries[1].Width, entries[1].Height)
	}
}

func TestAppendStampsIDAndTime(t *testing.T) {
	s := newTestStore(t, 0)
	ctx := context.Background()

	if err := s.Append(ctx, Entry{Category: "image", Output: "out.png"}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	entries, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	e := entries[0]
	if e.ID == "" {
		t.Error("entry has no ID")
	}
	if e.Timestamp.IsZero() {
		t.Error("entry has no timestamp")
	}
}

func TestAppendEvictsOldest(t *testing.T) {
	s := newTestStore(t, 3)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		e := Entry{Category: "image", Output: fmt.Sprintf("out%d.png", i)}
		if err := s.Append(ctx, e); err != nil {
			t.Fatalf("Append %d: %v", i, err)
		}
	}

	entries, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if entries[0].Output != "out5.png" || entries[2].Output != "out3.png" {
		t.Errorf("kept %s..%s, want out5.png..out3.png", entries[0].Output, entries[2].Output)
	}
}

func TestListEmptyStore(t *testing.T) {
	s := newTestStore(t, 0)

	entries, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("got %d entries, want none", len(entries))
	}
}

func TestClear(t *testing.T) {
	s := newTestStore(t, 0)
	ctx := context.Background()

	if err := s.Append(ctx, Entry{Category: "image", Output: "out.png"}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear on empty store: %v", err)
	}

	entries, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("got %d entries after clear, want none", len(entries))
	}
}

func TestCorruptFileYieldsEmptyHistory(t *testing.T) {
	s := newTestStore(t, 0)
	if err := os.MkdirAll(filepath.Dir(s.Path()), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(s.Path(), []byte("{not json"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	entries, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("got %d entries from corrupt file, want none", len(entries))
	}

	// Appending over the corrupt file starts a fresh history.
	if err := s.Append(context.Background(), Entry{Category: "text", Output: "out.txt"}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	entries, err = s.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("got %d entries, want 1", len(entries))
	}
}

func TestDefaultPathUsesXDGDataHome(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/data")

	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath: %v", err)
	}
	if want := filepath.Join("/tmp/data", "filemerge", "history.json"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
}
