package cli

import (
	"context"
	"testing"

	"github.com/filemerge/filemerge/pkg/errors"
	"github.com/filemerge/filemerge/pkg/settings"
)

func loadSettingsFile(t *testing.T) settings.Settings {
	t.Helper()
	m, err := settings.NewManager("")
	if err != nil {
		t.Fatalf("settings manager: %v", err)
	}
	cfg, err := m.Load()
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	return cfg
}

func TestSettingsSetCommand(t *testing.T) {
	setTestHome(t)

	root := newTestRoot(t)
	root.SetArgs([]string{"settings", "set", "image.layout", "grid"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("settings set: %v", err)
	}

	if got := loadSettingsFile(t).Image.Layout; got != "grid" {
		t.Errorf("layout = %q, want grid", got)
	}
}

func TestSettingsSetRejectsBadValue(t *testing.T) {
	setTestHome(t)

	root := newTestRoot(t)
	root.SetArgs([]string{"settings", "set", "image.layout", "mosaic"})

	err := root.ExecuteContext(context.Background())
	if err == nil {
		t.Fatal("expected error for unknown layout")
	}
	if !errors.Is(err, errors.ErrCodeUnsupportedLayout) {
		t.Errorf("code = %q, want %q", errors.GetCode(err), errors.ErrCodeUnsupportedLayout)
	}

	// Nothing must have been written.
	if got := loadSettingsFile(t).Image.Layout; got != settings.Default().Image.Layout {
		t.Errorf("layout = %q, want untouched default", got)
	}
}

func TestSettingsSetRejectsUnknownKey(t *testing.T) {
	setTestHome(t)

	root := newTestRoot(t)
	root.SetArgs([]string{"settings", "set", "image.rotation", "90"})

	if err := root.ExecuteContext(context.Background()); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidConfig)
	}
}

func TestSettingsResetCommand(t *testing.T) {
	setTestHome(t)

	root := newTestRoot(t)
	root.SetArgs([]string{"settings", "set", "image.spacing", "42"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("settings set: %v", err)
	}

	root = newTestRoot(t)
	root.SetArgs([]string{"settings", "reset"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("settings reset: %v", err)
	}

	if got := loadSettingsFile(t).Image.Spacing; got != settings.Default().Image.Spacing {
		t.Errorf("spacing = %d, want default %d", got, settings.Default().Image.Spacing)
	}
}
