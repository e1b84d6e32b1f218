package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Rect is a fixed HUD rectangle in frame coordinates.
//
// (X0, Y0) is inclusive and (X1, Y1) is exclusive, so the rectangle is
// X1-X0 pixels wide and Y1-Y0 pixels tall.
type Rect struct {
	X0 int `json:"x0" mapstructure:"x0"`
	Y0 int `json:"y0" mapstructure:"y0"`
	X1 int `json:"x1" mapstructure:"x1"`
	Y1 int `json:"y1" mapstructure:"y1"`
}

// Image converts the rectangle to an image.Rectangle.
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.X0, r.Y0, r.X1, r.Y1)
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.X0 >= r.X1 || r.Y0 >= r.Y1
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.X0, r.Y0, r.X1, r.Y1)
}

// Crop extracts a HUD rectangle from a frame.
//
// The rectangle must lie within the frame. HUD rectangles are fixed per game
// resolution, so a rectangle outside the frame is a layout error and is
// reported rather than clamped.
func Crop(img image.Image, r Rect) (*image.NRGBA, error) {
	bounds := img.Bounds()

	if r.X0 < bounds.Min.X || r.Y0 < bounds.Min.Y || r.X1 > bounds.Max.X || r.Y1 > bounds.Max.Y {
		return nil, fmt.Errorf("crop region %s outside image bounds (%d,%d)-(%d,%d)",
			r, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	if r.Empty() {
		return nil, fmt.Errorf("invalid crop region %s: x0 must be < x1, y0 must be < y1", r)
	}

	return imaging.Crop(img, r.Image()), nil
}

// CropLeft keeps the columns of a region left of x, preserving its full height.
//
// It is used to cut text off at the delimiter icon. A non-positive x yields
// nil since nothing lies left of the delimiter.
func CropLeft(img image.Image, x int) *image.NRGBA {
	bounds := img.Bounds()
	if x <= 0 {
		return nil
	}
	if x > bounds.Dx() {
		x = bounds.Dx()
	}
	return imaging.Crop(img, image.Rect(bounds.Min.X, bounds.Min.Y, bounds.Min.X+x, bounds.Max.Y))
}

// Upscale enlarges an image by an integer factor on each axis using
// nearest-neighbor sampling, so every source pixel becomes a factor×factor
// block. Smoothing filters would blend anti-aliased HUD edges into gray halos
// that OCR reads poorly.
func Upscale(img image.Image, factor int) *image.NRGBA {
	if factor <= 1 {
		return imaging.Clone(img)
	}
	bounds := img.Bounds()
	return imaging.Resize(img, bounds.Dx()*factor, bounds.Dy()*factor, imaging.NearestNeighbor)
}
