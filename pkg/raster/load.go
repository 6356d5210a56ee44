package raster

import (
	"bytes"
	"context"
	"image"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/filemerge/filemerge/pkg/cache"
	"github.com/filemerge/filemerge/pkg/errors"
)

// Asset is a decoded input image ready for composition.
type Asset struct {
	// Path is the source file path.
	Path string

	// Image is the decoded raster.
	Image *image.NRGBA

	// Hash is the SHA-256 of the source file bytes, used for cache keys.
	Hash string

	// SourceFormat is the sniffed input format ("png", "jpeg", ...).
	SourceFormat string
}

// Result is the outcome of loading one input file. Exactly one of Asset and
// Err is set.
type Result struct {
	Path  string
	Asset *Asset
	Err   error
}

// Load decodes the image at path into an Asset.
func Load(ctx context.Context, path string) (*Asset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "read %s", path)
	}

	img, format, err := decodeNRGBA(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "decode %s", path)
	}

	return &Asset{
		Path:         path,
		Image:        img,
		Hash:         cache.Hash(data),
		SourceFormat: format,
	}, nil
}

// LoadAll decodes the given files with at most workers goroutines.
// Results keep the input order. A file that fails to load is reported in its
// Result and never aborts or cancels the other loads.
func LoadAll(ctx context.Context, paths []string, workers int) []Result {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]Result, len(paths))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			asset, err := Load(ctx, path)
			results[i] = Result{Path: path, Asset: asset, Err: err}
			return nil
		})
	}
	// Workers never return errors; Wait only joins them.
	_ = g.Wait()

	return results
}
