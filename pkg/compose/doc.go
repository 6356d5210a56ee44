// Package compose implements the image composition engine for filemerge.
//
// The engine turns N decoded rasters plus a configuration (layout, resize
// policy, filter, watermark, spacing, background) into one composited canvas.
// Every stage is a pure function of its inputs, so identical inputs always
// produce identical pixels.
//
// # Stages
//
//  1. Resize: transform one raster per the resize mode and target size
//  2. Filter: apply a single named pixel transform
//  3. Plan: compute canvas size and per-asset placements from dimensions only
//  4. Compose: allocate the canvas and paste each raster at its placement
//  5. Watermark: draw optional text near the bottom-right corner
//
// # Usage
//
//	resized, err := compose.Resize(img, compose.ResizeFit, 800, 600)
//	filtered, err := compose.ApplyFilter(resized, compose.FilterGrayscale)
//
//	plan, err := compose.PlanLayout(sizes, compose.LayoutGrid, 0, 10)
//	canvas, err := compose.Compose(plan, assets, nil)
//	canvas, err = compose.Watermark(canvas, "© 2026", nil)
//
// Rasters are *image.NRGBA throughout (row-major, top-left origin). Stages
// never mutate their input; they either return it unchanged (identity cases)
// or allocate a new raster.
package compose
