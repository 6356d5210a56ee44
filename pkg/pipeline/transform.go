package pipeline

import (
	"context"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/filemerge/filemerge/pkg/cache"
	"github.com/filemerge/filemerge/pkg/compose"
	"github.com/filemerge/filemerge/pkg/errors"
	"github.com/filemerge/filemerge/pkg/observability"
	"github.com/filemerge/filemerge/pkg/raster"
)

// transformAll loads and transforms every input on a bounded worker pool.
// Load failures are recorded on the result and skipped; any other per-asset
// failure aborts the run. The returned assets keep input order. An empty
// survivor set is EMPTY_INPUT.
func (r *Runner) transformAll(ctx context.Context, opts Options, result *Result) ([]*raster.Asset, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	type outcome struct {
		asset *raster.Asset
		hit   bool
		err   error
	}
	outcomes := make([]outcome, len(opts.Inputs))

	// With no resize and no filter each source file already is its
	// transformed form, so this is a plain batch load with nothing to cache.
	if opts.Resize == compose.ResizeNone && opts.Filter == compose.FilterNone {
		for i, res := range raster.LoadAll(ctx, opts.Inputs, workers) {
			outcomes[i] = outcome{asset: res.Asset, err: res.Err}
		}
	} else {
		var g errgroup.Group
		g.SetLimit(workers)
		for i, path := range opts.Inputs {
			i, path := i, path
			g.Go(func() error {
				asset, hit, err := r.transformAsset(ctx, path, opts)
				outcomes[i] = outcome{asset: asset, hit: hit, err: err}
				return nil
			})
		}
		// Workers record failures instead of returning them; Wait only joins.
		_ = g.Wait()
	}

	result.Assets = make([]AssetOutcome, len(opts.Inputs))
	var loaded []*raster.Asset
	for i, path := range opts.Inputs {
		oc := outcomes[i]
		if oc.err != nil {
			if !recoverable(oc.err) {
				return nil, oc.err
			}
			result.Assets[i] = AssetOutcome{Path: path, Reason: oc.err.Error()}
			result.Stats.SkippedCount++
			opts.Logger.Warn("skipping input", "path", path, "reason", oc.err.Error())
			continue
		}
		size := oc.asset.Image.Bounds().Size()
		result.Assets[i] = AssetOutcome{Path: path, Loaded: true, Width: size.X, Height: size.Y}
		result.Stats.LoadedCount++
		if oc.hit {
			result.CacheInfo.AssetHits++
		}
		loaded = append(loaded, oc.asset)
	}

	if len(loaded) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyInput,
			"none of the %d input files could be loaded", len(opts.Inputs))
	}
	return loaded, nil
}

// recoverable reports whether a per-asset failure is skipped rather than
// aborting the run. Only load failures (missing or undecodable files) are
// recovered; transform failures mean the whole configuration is bad.
func recoverable(err error) bool {
	return errors.Is(err, errors.ErrCodeFileNotFound) || errors.Is(err, errors.ErrCodeDecode)
}

// transformAsset produces one ready-to-place asset: decoded, resized and
// filtered. The transformed raster is cached as PNG, keyed by source content
// hash plus transform options, so unchanged inputs skip decoding entirely on
// repeat runs.
func (r *Runner) transformAsset(ctx context.Context, path string, opts Options) (*raster.Asset, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, errors.Wrap(errors.ErrCodeFileNotFound, err, "open input")
		}
		return nil, false, errors.Wrap(errors.ErrCodeDecode, err, "read input")
	}

	hash := cache.Hash(data)
	key := r.Keyer.AssetKey(hash, opts.AssetKeyOpts())

	if !opts.Refresh {
		if cached, hit, cerr := r.Cache.Get(ctx, key); cerr == nil && hit {
			if img, _, derr := raster.DecodeBytes(cached); derr == nil {
				observability.Cache().OnCacheHit(ctx, "asset")
				_, _, format, _ := raster.DecodeConfigBytes(data)
				return &raster.Asset{Path: path, Image: img, Hash: hash, SourceFormat: format}, true, nil
			}
			// Corrupt cached raster: drop it and recompute.
			_ = r.Cache.Delete(ctx, key)
		}
		observability.Cache().OnCacheMiss(ctx, "asset")
	}

	img, format, err := raster.DecodeBytes(data)
	if err != nil {
		return nil, false, err
	}

	resized, err := compose.Resize(img, opts.Resize, opts.Width, opts.Height)
	if err != nil {
		return nil, false, err
	}
	filtered, err := compose.ApplyFilter(resized, opts.Filter)
	if err != nil {
		return nil, false, err
	}

	if pngData, perr := raster.EncodeBytes(filtered, raster.FormatPNG); perr == nil {
		_ = r.Cache.Set(ctx, key, pngData, cache.TTLAsset)
		observability.Cache().OnCacheSet(ctx, "asset", len(pngData))
	}

	return &raster.Asset{Path: path, Image: filtered, Hash: hash, SourceFormat: format}, false, nil
}
