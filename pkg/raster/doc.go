// Package raster decodes and encodes the image assets handled by the merge
// pipeline.
//
// All decoded images are normalized to *image.NRGBA with a top-left origin,
// which is what the composition layer operates on. Decoding sniffs the
// actual file content, so a mislabeled extension does not matter; encoding
// selects its codec from the output extension.
//
// Supported decode formats: PNG, JPEG, GIF (first frame), BMP, TIFF, WEBP.
// Supported encode formats: PNG, JPEG, GIF, BMP, TIFF. WEBP is decode-only.
package raster
