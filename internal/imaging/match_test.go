package imaging

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"testing"
)

// createIcon builds a small icon whose channels vary independently, so no
// gray background window can correlate perfectly with it.
func createIcon() *image.NRGBA {
	icon := image.NewNRGBA(image.Rect(0, 0, 6, 6))
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			var r, g, b uint8 = 20, 40, 60
			if (x+y)%2 == 0 {
				r = 230
			}
			if x == y || x == 5-y {
				g = 250
			}
			if y < 3 {
				b = 200
			}
			icon.SetNRGBA(x, y, color.NRGBA{r, g, b, 255})
		}
	}
	return icon
}

// createBackground fills an image with a deterministic gray texture.
func createBackground(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8((x*37 + y*11) % 256)
			img.SetNRGBA(x, y, color.NRGBA{v, v, v, 255})
		}
	}
	return img
}

func TestMatchTemplate_FindsIcon(t *testing.T) {
	icon := createIcon()

	tests := []struct {
		name string
		at   image.Point
	}{
		{"left edge", image.Pt(0, 3)},
		{"middle", image.Pt(40, 10)},
		{"bottom right corner", image.Pt(74, 24)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bg := createBackground(80, 30)
			draw.Draw(bg, icon.Bounds().Add(tt.at), icon, image.Point{}, draw.Src)

			got, err := MatchTemplate(bg, icon)
			if err != nil {
				t.Fatalf("MatchTemplate failed: %v", err)
			}
			if got.Offset.X != tt.at.X || got.Offset.Y != tt.at.Y {
				t.Errorf("offset: got (%d,%d), want (%d,%d)", got.Offset.X, got.Offset.Y, tt.at.X, tt.at.Y)
			}
			if got.Confidence < 0.999 {
				t.Errorf("confidence: got %v, want ~1", got.Confidence)
			}
		})
	}
}

func TestMatchTemplate_BrightnessShift(t *testing.T) {
	icon := createIcon()

	// Same icon at half intensity: correlation coefficient is unaffected
	shifted := image.NewNRGBA(icon.Bounds())
	for i := 0; i < len(icon.Pix); i += 4 {
		shifted.Pix[i] = icon.Pix[i] / 2
		shifted.Pix[i+1] = icon.Pix[i+1] / 2
		shifted.Pix[i+2] = icon.Pix[i+2] / 2
		shifted.Pix[i+3] = 255
	}

	bg := createBackground(50, 20)
	draw.Draw(bg, shifted.Bounds().Add(image.Pt(20, 7)), shifted, image.Point{}, draw.Src)

	got, err := MatchTemplate(bg, icon)
	if err != nil {
		t.Fatalf("MatchTemplate failed: %v", err)
	}
	if got.Offset.X != 20 || got.Offset.Y != 7 {
		t.Errorf("offset: got (%d,%d), want (20,7)", got.Offset.X, got.Offset.Y)
	}
	if got.Confidence < 0.99 {
		t.Errorf("confidence: got %v, want >= 0.99", got.Confidence)
	}
}

func TestMatchTemplate_FlatRegion(t *testing.T) {
	img := createInMemoryImage(30, 10, color.RGBA{90, 90, 90, 255})

	got, err := MatchTemplate(img, createIcon())
	if err != nil {
		t.Fatalf("MatchTemplate failed: %v", err)
	}
	if got.Confidence != 0 {
		t.Errorf("flat region confidence: got %v, want 0", got.Confidence)
	}
	if got.Offset.X != 0 || got.Offset.Y != 0 {
		t.Errorf("flat region offset: got (%d,%d), want first alignment (0,0)", got.Offset.X, got.Offset.Y)
	}
}

func TestMatchTemplate_ConfidenceRange(t *testing.T) {
	bg := createBackground(40, 12)

	got, err := MatchTemplate(bg, createIcon())
	if err != nil {
		t.Fatalf("MatchTemplate failed: %v", err)
	}
	if got.Confidence < 0 || got.Confidence > 1 {
		t.Errorf("confidence %v outside [0,1]", got.Confidence)
	}
}

func TestMatchTemplate_TemplateTooLarge(t *testing.T) {
	small := createInMemoryImage(4, 4, color.White)

	tests := []struct {
		name string
		tmpl image.Image
	}{
		{"wider", createInMemoryImage(5, 2, color.Black)},
		{"taller", createInMemoryImage(2, 5, color.Black)},
		{"empty", image.NewRGBA(image.Rect(0, 0, 0, 0))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MatchTemplate(small, tt.tmpl)
			if !errors.Is(err, ErrTemplateTooLarge) {
				t.Errorf("got %v, want ErrTemplateTooLarge", err)
			}
		})
	}
}

func TestMatchTemplate_OffsetRelativeToBounds(t *testing.T) {
	icon := createIcon()
	bg := createBackground(60, 20)
	draw.Draw(bg, icon.Bounds().Add(image.Pt(33, 4)), icon, image.Point{}, draw.Src)

	// A sub-image keeps the parent's coordinates; the offset must not
	sub := bg.SubImage(image.Rect(10, 2, 60, 20))

	got, err := MatchTemplate(sub, icon)
	if err != nil {
		t.Fatalf("MatchTemplate failed: %v", err)
	}
	if got.Offset.X != 23 || got.Offset.Y != 2 {
		t.Errorf("offset: got (%d,%d), want (23,2)", got.Offset.X, got.Offset.Y)
	}
}
