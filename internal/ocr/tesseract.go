package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// DefaultLanguage is the Tesseract language used when none is configured.
const DefaultLanguage = "eng"

// Tesseract recognizes text in images with default Tesseract settings.
type Tesseract struct {
	language       string
	tessdataPrefix string
}

// NewTesseract returns a recognizer for the given language.
//
// Parameters:
//   - language: Tesseract language code; empty selects DefaultLanguage.
//   - tessdataPrefix: directory holding the traineddata files; empty keeps
//     the engine's compiled-in default.
func NewTesseract(language, tessdataPrefix string) *Tesseract {
	if language == "" {
		language = DefaultLanguage
	}
	return &Tesseract{
		language:       language,
		tessdataPrefix: tessdataPrefix,
	}
}

// Recognize runs OCR over img and returns the trimmed text.
//
// The image is PNG-encoded in memory and passed to Tesseract as bytes, so no
// temporary files are written.
func (t *Tesseract) Recognize(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode image for OCR: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if t.tessdataPrefix != "" {
		if err := client.SetTessdataPrefix(t.tessdataPrefix); err != nil {
			return "", fmt.Errorf("failed to set tessdata path: %w", err)
		}
	}

	if err := client.SetLanguage(t.language); err != nil {
		return "", fmt.Errorf("failed to set language: %w", err)
	}

	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}

	return TrimOutput(text), nil
}

// TrimOutput strips the trailing carriage returns, newlines and form feeds
// Tesseract appends to its output. Leading text and inner whitespace are kept.
func TrimOutput(text string) string {
	return strings.TrimRight(text, "\r\n\x0c")
}

// Version returns the linked Tesseract version.
func Version() string {
	client := gosseract.NewClient()
	defer client.Close()
	return client.Version()
}
