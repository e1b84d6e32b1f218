package imaging

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// DefaultLuminanceThreshold is the fraction of full intensity below which a
// pixel's channel mean counts as text.
const DefaultLuminanceThreshold = 0.4

// LuminanceCutoff converts a threshold fraction to the 8-bit cutoff the
// binarizer compares channel means against (0.4 -> 102).
func LuminanceCutoff(threshold float64) int {
	return int(threshold * 255)
}

// Binarize turns a HUD crop into black-text-on-white for OCR.
//
// For each pixel the mean of its R, G and B channels is computed. A mean
// below the cutoff emits 255; anything else emits 255 minus the mean,
// truncated toward zero. Every output value is therefore in [0,255]. Alpha is
// ignored.
//
// The output has the same dimensions as the input with bounds starting at
// (0,0).
func Binarize(img image.Image, threshold float64) *image.Gray {
	// mean < cutoff  <=>  sum < 3*cutoff, which keeps the comparison in integers
	cutoff := 3 * LuminanceCutoff(threshold)

	adjusted := imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		sum := int(c.R) + int(c.G) + int(c.B)
		v := uint8(255)
		if sum >= cutoff {
			v = uint8((3*255 - sum) / 3)
		}
		return color.NRGBA{R: v, G: v, B: v, A: 255}
	})

	// R, G and B are equal, so one channel is the gray level
	out := image.NewGray(adjusted.Bounds())
	for i := range out.Pix {
		out.Pix[i] = adjusted.Pix[i*4]
	}
	return out
}

// PrepareForOCR upscales a text crop by factor and binarizes it.
func PrepareForOCR(img image.Image, factor int, threshold float64) *image.Gray {
	return Binarize(Upscale(img, factor), threshold)
}
