// Package ocr recognizes HUD text using Tesseract.
//
// This package wraps the Tesseract OCR engine (via gosseract/v2). The frame
// pipeline hands it an already binarized, upscaled crop and expects back the
// bare text with Tesseract's trailing line breaks and form feed removed.
//
// # Prerequisites
//
// Tesseract and its English language data must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng libtesseract-dev
//   - macOS: brew install tesseract
//
// A non-default tessdata directory can be selected with the tessdata prefix
// option (HUDSCAN_TESSDATA_PREFIX).
//
// # Concurrency
//
// A gosseract client is not safe for concurrent use, so Tesseract creates a
// fresh client for every Recognize call. A single Tesseract value can be shared
// by all frame workers.
//
// # Empty Results
//
// An empty string after trimming is a normal outcome meaning "nothing
// recognized". Errors are reserved for engine failures (missing language data,
// images Tesseract cannot read).
package ocr
