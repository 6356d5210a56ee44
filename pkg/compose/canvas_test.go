package compose

import (
	"image"
	"image/color"
	"testing"

	"github.com/filemerge/filemerge/pkg/errors"
)

var (
	red   = color.NRGBA{R: 255, A: 255}
	green = color.NRGBA{G: 255, A: 255}
	blue  = color.NRGBA{B: 255, A: 255}
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

func TestComposeHorizontalScenario(t *testing.T) {
	// Three 100x100 solids with spacing 10 produce a 320x100 canvas with the
	// assets at x = 0, 110, 220 and white gaps between them.
	assets := []*image.NRGBA{
		solid(100, 100, red),
		solid(100, 100, green),
		solid(100, 100, blue),
	}
	plan, err := PlanLayout(sizesOf(100, 100, 100, 100, 100, 100), LayoutHorizontal, 0, 10)
	if err != nil {
		t.Fatalf("PlanLayout: %v", err)
	}

	canvas, err := Compose(plan, assets, nil)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if got := canvas.Bounds().Size(); got.X != 320 || got.Y != 100 {
		t.Fatalf("canvas = %dx%d, want 320x100", got.X, got.Y)
	}

	checks := []struct {
		x, y int
		want color.NRGBA
	}{
		{0, 0, red},
		{99, 99, red},
		{105, 50, white}, // gap shows the default background
		{110, 0, green},
		{215, 50, white},
		{220, 50, blue},
		{319, 99, blue},
	}
	for _, c := range checks {
		if got := canvas.NRGBAAt(c.x, c.y); got != c.want {
			t.Errorf("pixel (%d,%d) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestComposeCustomBackground(t *testing.T) {
	// The second asset is narrower than the canvas, so the letterbox margins
	// show the configured background.
	assets := []*image.NRGBA{solid(10, 4, red), solid(4, 4, green)}
	plan, err := PlanLayout(sizesOf(10, 4, 4, 4), LayoutVertical, 0, 0)
	if err != nil {
		t.Fatalf("PlanLayout: %v", err)
	}

	bg := color.NRGBA{B: 128, A: 255}
	canvas, err := Compose(plan, assets, bg)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if got := canvas.NRGBAAt(0, 6); got != bg {
		t.Errorf("margin pixel = %v, want background %v", got, bg)
	}
	if got := canvas.NRGBAAt(5, 6); got != green {
		t.Errorf("centered asset pixel = %v, want green", got)
	}
}

func TestComposeGridLeavesEmptyCellBackground(t *testing.T) {
	assets := []*image.NRGBA{solid(10, 10, red), solid(10, 10, green), solid(10, 10, blue)}
	plan, err := PlanLayout(sizesOf(10, 10, 10, 10, 10, 10), LayoutGrid, 2, 0)
	if err != nil {
		t.Fatalf("PlanLayout: %v", err)
	}

	bg := color.NRGBA{R: 1, G: 2, B: 3, A: 255}
	canvas, err := Compose(plan, assets, bg)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	// Fourth cell (bottom right) has no asset.
	if got := canvas.NRGBAAt(15, 15); got != bg {
		t.Errorf("empty cell pixel = %v, want background %v", got, bg)
	}
	if got := canvas.NRGBAAt(5, 15); got != blue {
		t.Errorf("third asset pixel = %v, want blue", got)
	}
}

func TestComposePlacementCountMismatch(t *testing.T) {
	plan := Plan{Width: 100, Height: 100, Placements: []Placement{{X: 0, Y: 0, W: 10, H: 10}}}
	_, err := Compose(plan, nil, nil)
	if !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("error = %v, want INTERNAL_ERROR", err)
	}
}

func TestComposeOverflowDetected(t *testing.T) {
	asset := solid(10, 10, red)

	tests := []struct {
		name string
		plan Plan
	}{
		{"past right edge", Plan{Width: 15, Height: 20, Placements: []Placement{{X: 10, Y: 0, W: 10, H: 10}}}},
		{"past bottom edge", Plan{Width: 20, Height: 15, Placements: []Placement{{X: 0, Y: 10, W: 10, H: 10}}}},
		{"negative origin", Plan{Width: 20, Height: 20, Placements: []Placement{{X: -1, Y: 0, W: 10, H: 10}}}},
		{"size mismatch", Plan{Width: 20, Height: 20, Placements: []Placement{{X: 0, Y: 0, W: 5, H: 5}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compose(tt.plan, []*image.NRGBA{asset}, nil)
			if !errors.Is(err, errors.ErrCodeLayoutOverflow) {
				t.Errorf("error = %v, want LAYOUT_OVERFLOW", err)
			}
		})
	}
}

func TestComposeDefaultBackgroundIsWhite(t *testing.T) {
	plan, err := PlanLayout(sizesOf(5, 5, 5, 5), LayoutVertical, 0, 4)
	if err != nil {
		t.Fatalf("PlanLayout: %v", err)
	}
	canvas, err := Compose(plan, []*image.NRGBA{solid(5, 5, red), solid(5, 5, blue)}, nil)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if got := canvas.NRGBAAt(2, 7); got != white {
		t.Errorf("gap pixel = %v, want white", got)
	}
}
