package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
)

// FrameFilename returns the file name of a frame: its zero-padded six-digit
// index with a .png extension (e.g. 835 -> "000835.png").
func FrameFilename(index int) string {
	return fmt.Sprintf("%06d.png", index)
}

// FramePath joins a frame folder and the frame's file name.
func FramePath(folder string, index int) string {
	return filepath.Join(folder, FrameFilename(index))
}

// Load opens and decodes an image file.
//
// Supported formats are PNG, JPEG, and GIF. The returned image keeps the
// concrete type chosen by the decoder (e.g. *image.RGBA, *image.NRGBA).
//
// # Errors
//
//   - Returns error if the file does not exist or cannot be read
//   - Returns error if the file is not a valid PNG, JPEG, or GIF image
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	return img, nil
}

// LoadFrame loads the frame with the given index from a frame folder.
func LoadFrame(folder string, index int) (image.Image, error) {
	return Load(FramePath(folder, index))
}

// LoadIcon loads the reference icon used by the delimiter locator.
//
// The icon is loaded once per run and shared read-only by every frame, so an
// empty icon is rejected here instead of failing on every frame later.
func LoadIcon(path string) (image.Image, error) {
	img, err := Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load reference icon: %w", err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("reference icon %s has no pixels", path)
	}
	return img, nil
}
