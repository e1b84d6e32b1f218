package imaging

import (
	"image/color"
	"testing"
)

func TestDrawLayout(t *testing.T) {
	bg := color.RGBA{10, 10, 10, 255}
	img := createInMemoryImage(200, 100, bg)
	rects := []LabeledRect{
		{Label: "player", Rect: Rect{20, 40, 120, 60}},
		{Label: "weapon 1", Rect: Rect{130, 70, 190, 90}},
	}

	out := DrawLayout(img, rects)
	if out.Bounds() != img.Bounds() {
		t.Fatalf("bounds: got %v, want %v", out.Bounds(), img.Bounds())
	}

	palette := Palette(len(rects))

	// Outline sits just outside the rectangle
	if got := out.NRGBAAt(60, 60); got != palette[0] {
		t.Errorf("bottom edge of player rect: got %v, want %v", got, palette[0])
	}
	if got := out.NRGBAAt(190, 80); got != palette[1] {
		t.Errorf("right edge of weapon rect: got %v, want %v", got, palette[1])
	}

	// Interior is untouched
	want := color.NRGBA{10, 10, 10, 255}
	if got := out.NRGBAAt(70, 50); got != want {
		t.Errorf("interior pixel changed: got %v, want %v", got, want)
	}

	// Source is not modified
	r, _, _, _ := img.At(60, 60).RGBA()
	if uint8(r>>8) != 10 {
		t.Error("DrawLayout modified the source image")
	}
}

func TestDrawLayout_OutOfBounds(t *testing.T) {
	img := createInMemoryImage(50, 50, color.White)

	// Must not panic when the rectangle leaves the frame
	out := DrawLayout(img, []LabeledRect{{Label: "off", Rect: Rect{30, 30, 90, 90}}})
	if out.Bounds().Dx() != 50 {
		t.Errorf("width: got %d, want 50", out.Bounds().Dx())
	}
}
