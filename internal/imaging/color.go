package imaging

import (
	"image"
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RegionColor summarizes the average color of a region.
//
// It is logged when the delimiter icon cannot be found, which is usually the
// quickest way to tell a missing HUD (loading screen, spectator view, menu)
// from a mistuned rectangle.
type RegionColor struct {
	Hex       string  `json:"hex"`       // Hex format "#rrggbb"
	Lightness float64 `json:"lightness"` // HSL lightness, 0-1
}

// MeanColor returns the average R, G and B of every pixel in img.
//
// An empty image returns black.
func MeanColor(img image.Image) colorful.Color {
	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()
	if total <= 0 {
		return colorful.Color{}
	}

	var r, g, b float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			r += float64(c.R)
			g += float64(c.G)
			b += float64(c.B)
		}
	}

	n := float64(total) * 255
	return colorful.Color{R: r / n, G: g / n, B: b / n}
}

// DescribeRegion returns the mean color of img as hex plus HSL lightness.
func DescribeRegion(img image.Image) RegionColor {
	c := MeanColor(img).Clamped()
	_, _, l := c.Hsl()
	return RegionColor{
		Hex:       c.Hex(),
		Lightness: math.Round(l*1000) / 1000,
	}
}

// Palette returns n visually distinct, fully saturated colors spaced evenly
// around the hue wheel.
func Palette(n int) []color.NRGBA {
	out := make([]color.NRGBA, 0, n)
	for i := 0; i < n; i++ {
		c := colorful.Hsv(float64(i)*360/float64(n), 0.9, 1.0)
		r, g, b := c.RGB255()
		out = append(out, color.NRGBA{R: r, G: g, B: b, A: 255})
	}
	return out
}
