package pipeline

import (
	"context"
	"image"
	"time"

	"github.com/charmbracelet/log"

	"github.com/filemerge/filemerge/pkg/cache"
	"github.com/filemerge/filemerge/pkg/compose"
	"github.com/filemerge/filemerge/pkg/errors"
	"github.com/filemerge/filemerge/pkg/fileops"
	"github.com/filemerge/filemerge/pkg/fonts"
	"github.com/filemerge/filemerge/pkg/observability"
	"github.com/filemerge/filemerge/pkg/raster"
)

// Runner encapsulates pipeline execution with caching.
// CLI and API both use it to avoid duplicating the caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't store
// pipeline results. Multiple goroutines can safely share one Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → transform → assemble → encode pipeline.
//
// Inputs that fail to load are skipped and reported on the Result; every
// other failure aborts the run, and no partial output file is ever written.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{
		OutputPath: opts.Output,
		Format:     opts.Format(),
	}

	// Stage 1+2: load and transform each asset on the worker pool.
	transformStart := time.Now()
	observability.Pipeline().OnLoadStart(ctx, len(opts.Inputs))
	loaded, err := r.transformAll(ctx, opts, result)
	result.Stats.TransformTime = time.Since(transformStart)
	observability.Pipeline().OnLoadComplete(ctx,
		result.Stats.LoadedCount, result.Stats.SkippedCount, result.Stats.TransformTime, err)
	if err != nil {
		return nil, err
	}

	opts.Logger.Info("loaded assets",
		"loaded", result.Stats.LoadedCount,
		"skipped", result.Stats.SkippedCount,
		"duration", result.Stats.TransformTime)

	// The final artifact is keyed by the surviving inputs and the full merge
	// configuration; a hit skips assembly and encoding.
	artifactKey := r.Keyer.ArtifactKey(combinedHash(loaded), opts.ArtifactKeyOpts())
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, artifactKey); err == nil && hit {
			if w, h, _, err := raster.DecodeConfigBytes(data); err == nil {
				if err := writeOutput(opts.Output, data); err != nil {
					return nil, err
				}
				result.Width = w
				result.Height = h
				result.Stats.OutputBytes = len(data)
				result.CacheInfo.ArtifactHit = true
				observability.Cache().OnCacheHit(ctx, "artifact")
				opts.Logger.Info("artifact from cache", "path", opts.Output, "bytes", len(data))
				return result, nil
			}
			_ = r.Cache.Delete(ctx, artifactKey)
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	// Stage 3: assemble plan → canvas → watermark.
	assembleStart := time.Now()
	observability.Pipeline().OnComposeStart(ctx, string(opts.Layout), len(loaded))
	canvas, err := r.assemble(loaded, opts)
	result.Stats.AssembleTime = time.Since(assembleStart)
	if err != nil {
		observability.Pipeline().OnComposeComplete(ctx,
			string(opts.Layout), 0, 0, result.Stats.AssembleTime, err)
		return nil, err
	}
	size := canvas.Bounds().Size()
	result.Width = size.X
	result.Height = size.Y
	observability.Pipeline().OnComposeComplete(ctx,
		string(opts.Layout), size.X, size.Y, result.Stats.AssembleTime, nil)

	opts.Logger.Info("composed canvas",
		"layout", opts.Layout,
		"width", size.X,
		"height", size.Y,
		"duration", result.Stats.AssembleTime)

	// Stage 4: encode and write atomically.
	encodeStart := time.Now()
	observability.Pipeline().OnEncodeStart(ctx, string(opts.Format()))
	data, err := raster.EncodeBytes(canvas, opts.Format())
	if err == nil {
		err = writeOutput(opts.Output, data)
	}
	result.Stats.EncodeTime = time.Since(encodeStart)
	observability.Pipeline().OnEncodeComplete(ctx,
		string(opts.Format()), len(data), result.Stats.EncodeTime, err)
	if err != nil {
		return nil, err
	}
	result.Stats.OutputBytes = len(data)

	_ = r.Cache.Set(ctx, artifactKey, data, cache.TTLArtifact)
	observability.Cache().OnCacheSet(ctx, "artifact", len(data))

	opts.Logger.Info("encoded output",
		"format", opts.Format(),
		"path", opts.Output,
		"bytes", len(data),
		"duration", result.Stats.EncodeTime)

	return result, nil
}

// assemble plans the layout over post-transform sizes, composites the canvas
// and draws the watermark.
func (r *Runner) assemble(assets []*raster.Asset, opts Options) (*image.NRGBA, error) {
	sizes := make([]image.Point, len(assets))
	images := make([]*image.NRGBA, len(assets))
	for i, a := range assets {
		sizes[i] = a.Image.Bounds().Size()
		images[i] = a.Image
	}

	plan, err := compose.PlanLayout(sizes, opts.Layout, opts.Columns, opts.Spacing)
	if err != nil {
		return nil, err
	}
	canvas, err := compose.Compose(plan, images, opts.background)
	if err != nil {
		return nil, err
	}
	if opts.Watermark == "" {
		return canvas, nil
	}

	f, err := fonts.Resolve(opts.WatermarkFont)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "resolve watermark font")
	}
	return compose.Watermark(canvas, opts.Watermark, fonts.Face(f, compose.WatermarkFontSize))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// combinedHash folds the content hashes of the surviving assets, in input
// order, into one inputs hash for the artifact key.
func combinedHash(assets []*raster.Asset) string {
	hashes := make([]string, len(assets))
	for i, a := range assets {
		hashes[i] = a.Hash
	}
	return cache.CombineHashes(hashes)
}

// writeOutput lands the artifact atomically so a failed run never leaves a
// partial file behind.
func writeOutput(path string, data []byte) error {
	if err := fileops.AtomicWrite(path, data); err != nil {
		return errors.Wrap(errors.ErrCodeEncode, err, "write %s", path)
	}
	return nil
}
