// Package pipeline provides the core merge pipeline for filemerge.
//
// This package implements the complete load → transform → assemble → encode
// pipeline that can be used by CLI and API alike. Centralizing it keeps
// behavior identical across entry points and puts the caching logic in one
// place.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Load: decode each input file, skipping files that fail
//  2. Transform: per-asset resize and filter
//  3. Assemble: plan the layout, composite the canvas, draw the watermark
//  4. Encode: serialize the canvas and write it atomically to the output path
//
// Load and transform run per asset on a bounded worker pool; assemble and
// encode consume the joined results. Per-asset failures are recorded and
// skipped, never aborting the batch; every other failure aborts the run
// before any partial output is written.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Inputs: []string{"a.png", "b.jpg"},
//	    Output: "merged.png",
//	    Layout: compose.LayoutGrid,
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.OutputPath, result.Width, result.Height)
package pipeline

import (
	"image/color"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/filemerge/filemerge/pkg/cache"
	"github.com/filemerge/filemerge/pkg/compose"
	"github.com/filemerge/filemerge/pkg/errors"
	"github.com/filemerge/filemerge/pkg/raster"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultSpacing is the default gap between adjacent assets in pixels.
	DefaultSpacing = 10

	// DefaultOutput is the output filename offered by interactive front-ends.
	DefaultOutput = "merged_images.png"
)

// DefaultLayout is the default arrangement.
const DefaultLayout = compose.LayoutVertical

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one merge.
// The struct supports JSON serialization for API requests.
type Options struct {
	// Input and output
	Inputs []string `json:"inputs"`
	Output string   `json:"output"`

	// Layout options
	Layout  compose.Layout `json:"layout,omitempty"`
	Columns int            `json:"columns,omitempty"` // grid only; 0 picks ceil(sqrt(n))
	Spacing int            `json:"spacing,omitempty"`

	// Per-asset transform options
	Resize compose.ResizeMode `json:"resize,omitempty"`
	Width  int                `json:"width,omitempty"`  // target width, required unless Resize is none
	Height int                `json:"height,omitempty"` // target height, required unless Resize is none
	Filter compose.Filter     `json:"filter,omitempty"`

	// Overlay and canvas options
	Watermark     string `json:"watermark,omitempty"`
	WatermarkFont string `json:"watermark_font,omitempty"` // system font name; empty uses the embedded face
	Background    string `json:"background,omitempty"`     // hex like "#rrggbb"; empty means white

	// Execution options
	Workers int  `json:"workers,omitempty"` // worker pool size; 0 means NumCPU
	Refresh bool `json:"refresh,omitempty"` // bypass cached assets and artifacts

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// Populated by ValidateAndSetDefaults.
	background color.NRGBA
	format     raster.Format
	validated  bool
}

// ValidateAndSetDefaults checks all options and applies defaults, failing
// fast before any pixel work. The method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if len(o.Inputs) == 0 {
		return errors.New(errors.ErrCodeEmptyInput, "no input files")
	}
	for _, path := range o.Inputs {
		if err := errors.ValidatePath(path); err != nil {
			return err
		}
	}
	if err := errors.ValidateOutputPath(o.Output); err != nil {
		return err
	}

	// Resolving the output format here surfaces unsupported extensions
	// before any file is read.
	format, err := raster.FormatFromPath(o.Output)
	if err != nil {
		return err
	}
	o.format = format

	if o.Layout == "" {
		o.Layout = DefaultLayout
	}
	if !compose.ValidLayouts[o.Layout] {
		return errors.New(errors.ErrCodeUnsupportedLayout, "unsupported layout %q", o.Layout)
	}
	if o.Columns < 0 {
		return errors.New(errors.ErrCodeUnsupportedLayout, "grid layout needs a positive column count, got %d", o.Columns)
	}
	if o.Spacing < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "spacing must be >= 0, got %d", o.Spacing)
	}

	if o.Resize == "" {
		o.Resize = compose.ResizeNone
	}
	if !compose.ValidResizeModes[o.Resize] {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid resize mode %q", o.Resize)
	}
	if o.Resize != compose.ResizeNone && (o.Width <= 0 || o.Height <= 0) {
		return errors.New(errors.ErrCodeInvalidTarget,
			"resize mode %q needs a positive target size, got %dx%d", o.Resize, o.Width, o.Height)
	}

	if o.Filter == "" {
		o.Filter = compose.FilterNone
	}
	if !compose.ValidFilters[o.Filter] {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid filter %q", o.Filter)
	}

	if err := errors.ValidateWatermarkText(o.Watermark); err != nil {
		return err
	}

	bg, err := compose.ParseColor(o.Background)
	if err != nil {
		return err
	}
	o.background = bg

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// Format returns the output format resolved from the output path.
// Valid after ValidateAndSetDefaults.
func (o *Options) Format() raster.Format {
	return o.format
}

// AssetKeyOpts returns cache key options for the per-asset transform stage.
func (o *Options) AssetKeyOpts() cache.AssetKeyOpts {
	return cache.AssetKeyOpts{
		Resize: string(o.Resize),
		Width:  o.Width,
		Height: o.Height,
		Filter: string(o.Filter),
	}
}

// ArtifactKeyOpts returns cache key options for the final artifact.
func (o *Options) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Layout:     string(o.Layout),
		Columns:    o.Columns,
		Spacing:    o.Spacing,
		Resize:     string(o.Resize),
		Width:      o.Width,
		Height:     o.Height,
		Filter:     string(o.Filter),
		Watermark:  o.Watermark,
		Background: o.Background,
		Format:     string(o.format),
	}
}

// =============================================================================
// Result - Pipeline Outputs
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// OutputPath is where the artifact was written.
	OutputPath string `json:"output_path"`

	// Format is the encoded output format.
	Format raster.Format `json:"format"`

	// Width and Height are the canvas dimensions.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Assets reports the outcome for every input, in input order.
	Assets []AssetOutcome `json:"assets"`

	// Stats contains timing and size information.
	Stats Stats `json:"stats"`

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo `json:"cache_info"`
}

// AssetOutcome is the per-input outcome of the load and transform stages.
type AssetOutcome struct {
	Path string `json:"path"`

	// Loaded reports whether the asset made it onto the canvas.
	Loaded bool `json:"loaded"`

	// Reason explains a skip; empty for loaded assets.
	Reason string `json:"reason,omitempty"`

	// Width and Height are the post-transform dimensions of loaded assets.
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	LoadedCount   int           `json:"loaded_count"`
	SkippedCount  int           `json:"skipped_count"`
	TransformTime time.Duration `json:"transform_time"`
	AssembleTime  time.Duration `json:"assemble_time"`
	EncodeTime    time.Duration `json:"encode_time"`
	OutputBytes   int           `json:"output_bytes"`
}

// CacheInfo tracks cache hits for the cacheable stages.
type CacheInfo struct {
	// AssetHits counts loaded assets whose transform came from the cache.
	AssetHits int `json:"asset_hits"`

	// ArtifactHit reports whether the final artifact came from the cache,
	// skipping assembly and encoding entirely.
	ArtifactHit bool `json:"artifact_hit"`
}

// Skipped returns the outcomes for inputs that failed to load.
func (r *Result) Skipped() []AssetOutcome {
	var skipped []AssetOutcome
	for _, a := range r.Assets {
		if !a.Loaded {
			skipped = append(skipped, a)
		}
	}
	return skipped
}
