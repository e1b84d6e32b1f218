package imaging

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// LabeledRect is a HUD rectangle with the field name drawn beside it.
type LabeledRect struct {
	Label string
	Rect  Rect
}

// DrawLayout returns a copy of img with each rectangle outlined in its own
// color and labeled above its top-left corner.
//
// Rectangles may extend past the image; the parts outside are not drawn, so
// the overlay also shows a layout that does not fit the frame.
func DrawLayout(img image.Image, rects []LabeledRect) *image.NRGBA {
	out := imaging.Clone(img)
	colors := Palette(len(rects))

	for i, lr := range rects {
		c := colors[i]
		r := lr.Rect

		// Outline, 2px wide so it survives viewer downscaling
		for t := 0; t < 2; t++ {
			for x := r.X0 - 1 - t; x <= r.X1+t; x++ {
				setIn(out, x, r.Y0-1-t, c)
				setIn(out, x, r.Y1+t, c)
			}
			for y := r.Y0 - 1 - t; y <= r.Y1+t; y++ {
				setIn(out, r.X0-1-t, y, c)
				setIn(out, r.X1+t, y, c)
			}
		}

		drawLabel(out, r.X0, r.Y0-4, lr.Label, c)
	}

	return out
}

// drawLabel draws text with its baseline at (x, y) on a black backing box.
func drawLabel(img *image.NRGBA, x, y int, text string, fg color.NRGBA) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, text).Ceil()
	metrics := face.Metrics()

	box := image.Rect(x-1, y-metrics.Ascent.Ceil()-1, x+width+1, y+metrics.Descent.Ceil()+1)
	draw.Draw(img, box.Intersect(img.Bounds()), image.NewUniform(color.NRGBA{0, 0, 0, 180}), image.Point{}, draw.Over)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(fg),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}

func setIn(img *image.NRGBA, x, y int, c color.NRGBA) {
	if (image.Point{X: x, Y: y}).In(img.Bounds()) {
		img.SetNRGBA(x, y, c)
	}
}
