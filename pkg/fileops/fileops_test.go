package fileops

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/filemerge/filemerge/pkg/errors"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func writeTestPNG(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		path string
		want Category
	}{
		{"photo.png", CategoryImage},
		{"photo.JPG", CategoryImage},
		{"scan.tiff", CategoryImage},
		{"anim.webp", CategoryImage},
		{"notes.txt", CategoryText},
		{"README.md", CategoryText},
		{"data.csv", CategoryText},
		{"conf.yaml", CategoryText},
		{"archive.zip", CategoryOther},
		{"binary", CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := CategoryOf(tt.path); got != tt.want {
				t.Errorf("CategoryOf(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestDetectCategory(t *testing.T) {
	tests := []struct {
		name    string
		paths   []string
		want    Category
		wantErr errors.Code
	}{
		{"all images", []string{"a.png", "b.jpg"}, CategoryImage, ""},
		{"all text", []string{"a.txt", "b.md"}, CategoryText, ""},
		{"mixed", []string{"a.png", "b.txt"}, "", errors.ErrCodeMixedCategory},
		{"unknown kind", []string{"a.zip"}, "", errors.ErrCodeMixedCategory},
		{"unknown in middle", []string{"a.png", "b.zip"}, "", errors.ErrCodeMixedCategory},
		{"empty", nil, "", errors.ErrCodeEmptyInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectCategory(tt.paths)
			if tt.wantErr != "" {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want code %s", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("DetectCategory: %v", err)
			}
			if got != tt.want {
				t.Errorf("category = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "a.txt")
	writeFile(t, existing, "hello")

	if err := Validate([]string{existing}); err != nil {
		t.Errorf("Validate existing file: %v", err)
	}

	err := Validate([]string{filepath.Join(dir, "missing.txt")})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}

	err = Validate([]string{dir})
	if !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("directory error = %v, want INVALID_PATH", err)
	}
}

func TestUniquePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.png")

	// Free path is returned as-is
	if got := UniquePath(path); got != path {
		t.Errorf("UniquePath = %q, want %q", got, path)
	}

	writeFile(t, path, "x")
	got := UniquePath(path)
	if got != filepath.Join(dir, "out_1.png") {
		t.Errorf("UniquePath = %q, want out_1.png", got)
	}

	writeFile(t, got, "x")
	if got := UniquePath(path); got != filepath.Join(dir, "out_2.png") {
		t.Errorf("UniquePath = %q, want out_2.png", got)
	}
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.txt"), "b")
	writeFile(t, filepath.Join(dir, "a.txt"), "a")
	writeFile(t, filepath.Join(dir, "c.png"), "not a real png")
	writeFile(t, filepath.Join(dir, "skip.zip"), "zip")
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0755); err != nil {
		t.Fatal(err)
	}

	texts, err := ScanDir(dir, CategoryText)
	if err != nil {
		t.Fatalf("ScanDir: %v", err)
	}
	want := []string{filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.txt")}
	if len(texts) != 2 || texts[0] != want[0] || texts[1] != want[1] {
		t.Errorf("ScanDir text = %v, want %v", texts, want)
	}

	images, err := ScanDir(dir, CategoryImage)
	if err != nil {
		t.Fatalf("ScanDir: %v", err)
	}
	if len(images) != 1 || images[0] != filepath.Join(dir, "c.png") {
		t.Errorf("ScanDir image = %v", images)
	}

	_, err = ScanDir(filepath.Join(dir, "missing"), CategoryText)
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing dir error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestBackup(t *testing.T) {
	restore := timestamp
	timestamp = func() string { return "20250102_030405" }
	defer func() { timestamp = restore }()

	dir := t.TempDir()
	src := filepath.Join(dir, "notes.txt")
	writeFile(t, src, "important")

	backup, err := Backup(src)
	if err != nil {
		t.Fatalf("Backup: %v", err)
	}
	if filepath.Base(backup) != "notes_backup_20250102_030405.txt" {
		t.Errorf("backup name = %q", filepath.Base(backup))
	}

	data, err := os.ReadFile(backup)
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if string(data) != "important" {
		t.Errorf("backup content = %q", data)
	}

	// Second backup with the same timestamp gets a numeric suffix
	backup2, err := Backup(src)
	if err != nil {
		t.Fatalf("second Backup: %v", err)
	}
	if backup2 == backup {
		t.Error("second backup should get a distinct name")
	}
	if !strings.Contains(filepath.Base(backup2), "_1") {
		t.Errorf("second backup name = %q, want _1 suffix", filepath.Base(backup2))
	}
}

func TestCollectCopy(t *testing.T) {
	restore := timestamp
	timestamp = func() string { return "20250102_030405" }
	defer func() { timestamp = restore }()

	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	writeFile(t, a, "one")
	writeFile(t, b, "two")

	dest := filepath.Join(dir, "dest")
	folder, collected, err := Collect([]string{a, b}, dest, false)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if filepath.Base(folder) != "collected_text_20250102_030405" {
		t.Errorf("folder = %q", filepath.Base(folder))
	}
	if len(collected) != 2 {
		t.Fatalf("collected %d files, want 2", len(collected))
	}

	// Copy keeps the originals
	if _, err := os.Stat(a); err != nil {
		t.Error("copy should keep the original")
	}
	data, _ := os.ReadFile(collected[0])
	if string(data) != "one" {
		t.Errorf("collected content = %q", data)
	}
}

func TestCollectMove(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.png")
	writeFile(t, a, "img")

	_, collected, err := Collect([]string{a}, filepath.Join(dir, "dest"), true)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if _, err := os.Stat(a); !os.IsNotExist(err) {
		t.Error("move should remove the original")
	}
	if _, err := os.Stat(collected[0]); err != nil {
		t.Errorf("moved file missing: %v", err)
	}
}

func TestCollectRejectsMixed(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.png")
	b := filepath.Join(dir, "b.txt")
	writeFile(t, a, "img")
	writeFile(t, b, "txt")

	_, _, err := Collect([]string{a, b}, filepath.Join(dir, "dest"), false)
	if !errors.Is(err, errors.ErrCodeMixedCategory) {
		t.Errorf("error = %v, want MIXED_CATEGORY", err)
	}
}

func TestAtomicWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.bin")

	if err := AtomicWrite(path, []byte("payload")); err != nil {
		t.Fatalf("AtomicWrite: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "payload" {
		t.Errorf("content = %q", data)
	}

	// Overwrite works and leaves no temp files behind
	if err := AtomicWrite(path, []byte("replaced")); err != nil {
		t.Fatalf("AtomicWrite overwrite: %v", err)
	}
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want 1 (no temp leftovers)", len(entries))
	}
}

func TestInfo(t *testing.T) {
	dir := t.TempDir()

	textPath := filepath.Join(dir, "notes.txt")
	writeFile(t, textPath, "hello world")

	info, err := Info(textPath)
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	if info.Category != CategoryText {
		t.Errorf("category = %q, want text", info.Category)
	}
	if info.Size != 11 {
		t.Errorf("size = %d, want 11", info.Size)
	}
	if info.Width != 0 || info.Height != 0 {
		t.Error("text file should have no dimensions")
	}

	imgPath := filepath.Join(dir, "pic.png")
	writeTestPNG(t, imgPath, 32, 16)

	info, err = Info(imgPath)
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	if info.Category != CategoryImage {
		t.Errorf("category = %q, want image", info.Category)
	}
	if info.Width != 32 || info.Height != 16 {
		t.Errorf("dimensions = %dx%d, want 32x16", info.Width, info.Height)
	}

	_, err = Info(filepath.Join(dir, "missing.txt"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v", err)
	}
}
