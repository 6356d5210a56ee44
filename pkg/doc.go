// Package pkg provides the core libraries for Filemerge file merging.
//
// # Overview
//
// Filemerge combines a set of files of one category into a single output:
// images are composited onto a shared canvas, text files are concatenated
// into one document. The pkg directory is organized into three main areas:
//
//  1. Domain logic (raster, compose, textmerge, fileops, fonts)
//  2. Orchestration (pipeline)
//  3. Infrastructure (cache, settings, history, errors, observability)
//
// # Architecture
//
// The image flow through Filemerge:
//
//	Input files
//	     ↓
//	[raster] package (decode + normalize to NRGBA)
//	     ↓
//	[compose] package (resize, filter, layout, composite, watermark)
//	     ↓
//	[raster] package (encode PNG/JPEG/GIF/BMP/TIFF)
//	     ↓
//	Output file
//
// # Quick Start
//
// Merge images through the pipeline:
//
//	import (
//	    "context"
//
//	    "github.com/filemerge/filemerge/pkg/compose"
//	    "github.com/filemerge/filemerge/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	defer runner.Close()
//
//	result, _ := runner.Execute(context.Background(), pipeline.Options{
//	    Inputs:  []string{"a.png", "b.png", "c.png"},
//	    Output:  "contact.png",
//	    Layout:  compose.LayoutGrid,
//	    Columns: 2,
//	})
//
// # Main Packages
//
// ## Domain Logic
//
// [raster] - Image decoding and encoding. Every decodable input becomes an
// *image.NRGBA asset with a content hash; outputs are encoded by extension
// (PNG, JPEG, GIF, BMP, TIFF).
//
// [compose] - Pure image operations: per-asset resizing (fit, fill,
// stretch), filters (grayscale, sepia, blur, sharpen), layout plans
// (vertical, horizontal, grid), canvas compositing, and text watermarks.
//
// [textmerge] - Text concatenation with separator styles, optional line
// numbers, per-file timestamps, whitespace stripping, and markdown output.
// Handles non-UTF-8 inputs with single-byte fallbacks.
//
// [fileops] - File plumbing shared by merges: category detection,
// validation, directory scanning, metadata, backups, and collection into
// timestamped folders.
//
// [fonts] - System font discovery for watermark rendering.
//
// ## Orchestration
//
// [pipeline] - The complete image merge (load → transform → compose →
// encode) used by CLI and API. Bounded worker parallelism, two-tier
// caching of transformed assets and final artifacts, and one Result with
// per-input outcomes.
//
// ## Infrastructure
//
// [cache] - Content-addressed cache with file, Redis, and null backends;
// keys derive from content hashes plus the options that shaped the result.
//
// [settings] - Persisted user preferences as TOML under the user config
// directory, with dotted-key access for the CLI.
//
// [history] - Records of completed merges in a capped JSON file under the
// user data directory.
//
// [errors] - Coded errors (EMPTY_INPUT, DECODE_FAILURE, ...) carrying a
// user-facing message, shared by CLI exit paths and API JSON bodies.
//
// [observability] - Optional hook points on pipeline stages for metrics
// and tracing integrations.
//
// # Common Workflows
//
// Merge text files:
//
//	result, _ := textmerge.Merge(ctx, textmerge.Options{
//	    Inputs:    []string{"a.txt", "b.txt"},
//	    Output:    "combined.txt",
//	    Separator: textmerge.SeparatorFancy,
//	})
//
// Inspect a file before merging:
//
//	info, _ := fileops.Info("photo.jpg")
//	fmt.Println(info.Category, info.Width, info.Height)
//
// Cache merge results between runs:
//
//	store, _ := cache.NewFileCache(dir)
//	runner := pipeline.NewRunner(store, nil, logger)
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/compose/...  # Specific package
//
// [raster]: https://pkg.go.dev/github.com/filemerge/filemerge/pkg/raster
// [compose]: https://pkg.go.dev/github.com/filemerge/filemerge/pkg/compose
// [textmerge]: https://pkg.go.dev/github.com/filemerge/filemerge/pkg/textmerge
// [fileops]: https://pkg.go.dev/github.com/filemerge/filemerge/pkg/fileops
// [fonts]: https://pkg.go.dev/github.com/filemerge/filemerge/pkg/fonts
// [pipeline]: https://pkg.go.dev/github.com/filemerge/filemerge/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/filemerge/filemerge/pkg/cache
// [settings]: https://pkg.go.dev/github.com/filemerge/filemerge/pkg/settings
// [history]: https://pkg.go.dev/github.com/filemerge/filemerge/pkg/history
// [errors]: https://pkg.go.dev/github.com/filemerge/filemerge/pkg/errors
// [observability]: https://pkg.go.dev/github.com/filemerge/filemerge/pkg/observability
package pkg
