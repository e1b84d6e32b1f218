// Package imaging provides the pixel-level stages of HUD text extraction.
//
// This package implements the operations the frame pipeline runs before OCR:
// loading frames, cropping fixed HUD rectangles, locating a delimiter icon by
// template matching, nearest-neighbor upscaling and binarization. It also
// carries the diagnostic helpers used while tuning a layout (region color
// summaries, layout overlays and debug image dumps).
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For rectangles, (X0,Y0) is inclusive (top-left), (X1,Y1) is exclusive (bottom-right)
//
// Cropped images are always re-based so their bounds start at (0,0).
//
// # Thread Safety
//
// Every function is stateless. Inputs are only read, so the same frame or
// reference icon may be shared by any number of goroutines.
//
// # Binarization
//
// Binarize does not produce a strict two-tone image. Dark pixels (channel mean
// below the luminance threshold) become 255 and every other pixel becomes
// 255 minus its channel mean. The formula was tuned against one game's HUD
// color scheme and must be reproduced exactly.
//
// # Error Handling
//
// Functions return errors for:
//   - Rectangles outside the image bounds or with no area
//   - Templates larger than the region they are matched against
//   - File I/O and decoding errors during loading
//   - Encoding errors while writing debug images
package imaging
