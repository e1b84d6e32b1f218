package imaging

import (
	"image"
	"image/color"
	"testing"
)

// createInMemoryImage creates an in-memory test image
func createInMemoryImage(width, height int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createPatternImage creates an image with different colors in each quadrant
func createPatternImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.Color
			if x < width/2 && y < height/2 {
				c = color.RGBA{255, 0, 0, 255} // Red top-left
			} else if x >= width/2 && y < height/2 {
				c = color.RGBA{0, 255, 0, 255} // Green top-right
			} else if x < width/2 && y >= height/2 {
				c = color.RGBA{0, 0, 255, 255} // Blue bottom-left
			} else {
				c = color.RGBA{255, 255, 255, 255} // White bottom-right
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func TestDescribeRegion_Solid(t *testing.T) {
	img := createInMemoryImage(20, 10, color.RGBA{255, 128, 64, 255})

	got := DescribeRegion(img)
	if got.Hex != "#ff8040" {
		t.Errorf("Hex: got %s, want #ff8040", got.Hex)
	}
	if got.Lightness <= 0 || got.Lightness >= 1 {
		t.Errorf("Lightness: got %v, want in (0,1)", got.Lightness)
	}
}

func TestDescribeRegion_Pattern(t *testing.T) {
	img := createPatternImage(100, 100)

	got := DescribeRegion(img)
	if got.Hex != "#808080" {
		t.Errorf("Hex: got %s, want #808080", got.Hex)
	}
	if got.Lightness != 0.5 {
		t.Errorf("Lightness: got %v, want 0.5", got.Lightness)
	}
}

func TestDescribeRegion_Extremes(t *testing.T) {
	tests := []struct {
		name      string
		c         color.Color
		wantHex   string
		wantLight float64
	}{
		{"black", color.RGBA{0, 0, 0, 255}, "#000000", 0},
		{"white", color.RGBA{255, 255, 255, 255}, "#ffffff", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DescribeRegion(createInMemoryImage(5, 5, tt.c))
			if got.Hex != tt.wantHex {
				t.Errorf("Hex: got %s, want %s", got.Hex, tt.wantHex)
			}
			if got.Lightness != tt.wantLight {
				t.Errorf("Lightness: got %v, want %v", got.Lightness, tt.wantLight)
			}
		})
	}
}

func TestMeanColor_Empty(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 0, 0))
	c := MeanColor(img)
	if c.R != 0 || c.G != 0 || c.B != 0 {
		t.Errorf("empty image mean: got %+v, want black", c)
	}
}

func TestPalette(t *testing.T) {
	colors := Palette(3)
	if len(colors) != 3 {
		t.Fatalf("Palette(3) returned %d colors", len(colors))
	}

	seen := make(map[color.NRGBA]bool)
	for _, c := range colors {
		if c.A != 255 {
			t.Errorf("palette color %v is not opaque", c)
		}
		if seen[c] {
			t.Errorf("palette color %v repeated", c)
		}
		seen[c] = true
	}

	if len(Palette(0)) != 0 {
		t.Error("Palette(0) should be empty")
	}
}
