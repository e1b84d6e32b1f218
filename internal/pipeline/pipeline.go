// Package pipeline turns one HUD frame into a Record.
//
// Every field runs the same sequence:
//
//	crop rectangle -> locate delimiter (optional) -> crop to delimiter ->
//	upscale + binarize -> OCR -> reconcile against vocabulary (optional)
//
// A field that fails at any step (icon not found, nothing recognized, no
// close vocabulary entry) is left blank; the remaining fields still run.
// Only configuration problems and OCR engine failures are returned as errors.
package pipeline

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"
	"path/filepath"

	"github.com/ironsheep/hudscan/internal/imaging"
	"github.com/ironsheep/hudscan/internal/vocab"
)

// Recognizer extracts text from a binarized image.
//
// Implementations must trim trailing line breaks and may be called from
// several goroutines at once.
type Recognizer interface {
	Recognize(img image.Image) (string, error)
}

// Status is the terminal state of one field.
type Status int

const (
	// StatusRecognized: the text is a vocabulary member, or the field has
	// no vocabulary.
	StatusRecognized Status = iota
	// StatusCorrected: the text was replaced by its nearest vocabulary entry.
	StatusCorrected
	// StatusDelimiterNotFound: the reference icon was not found in the region.
	StatusDelimiterNotFound
	// StatusEmpty: OCR found no text, or nothing was left of the delimiter.
	StatusEmpty
	// StatusUnknown: no vocabulary entry was close enough.
	StatusUnknown
)

func (s Status) String() string {
	switch s {
	case StatusRecognized:
		return "recognized"
	case StatusCorrected:
		return "corrected"
	case StatusDelimiterNotFound:
		return "delimiter_not_found"
	case StatusEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// FieldResult is the outcome of one field of one frame.
type FieldResult struct {
	Field  string
	Status Status

	// Raw is the trimmed OCR text, if OCR ran.
	Raw string

	// Value is the field's output; empty unless Status is StatusRecognized
	// or StatusCorrected.
	Value string

	// Confidence is the delimiter match confidence for delimited fields.
	Confidence float64

	// Distance is the normalized edit distance to the nearest vocabulary
	// entry when a vocabulary was consulted.
	Distance float64
}

// Config holds everything a Pipeline needs. Every value is treated as
// read-only after New.
type Config struct {
	Layout Layout

	// Icon is the delimiter reference icon. Required when any field has
	// Delimiter set.
	Icon image.Image

	// Players and Weapons are required when a field uses them.
	Players *vocab.Vocabulary
	Weapons *vocab.Vocabulary

	Recognizer Recognizer

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// DebugDir, when set, receives every binarized field image as
	// <frame>-<field>.png.
	DebugDir string
}

// Pipeline extracts Records from frames. It holds no mutable state and is
// safe for concurrent use.
type Pipeline struct {
	layout     Layout
	icon       image.Image
	vocabs     map[string]*vocab.Vocabulary
	recognizer Recognizer
	logger     *slog.Logger
	debugDir   string
}

// New validates cfg and returns a Pipeline.
func New(cfg Config) (*Pipeline, error) {
	if err := cfg.Layout.Validate(); err != nil {
		return nil, err
	}
	if cfg.Recognizer == nil {
		return nil, errors.New("pipeline: recognizer is required")
	}
	if cfg.Layout.UsesDelimiter() && cfg.Icon == nil {
		return nil, errors.New("pipeline: layout uses a delimiter but no reference icon was given")
	}
	if cfg.Layout.UsesVocabulary(VocabularyPlayers) && cfg.Players == nil {
		return nil, errors.New("pipeline: layout uses the players vocabulary but none was given")
	}
	if cfg.Layout.UsesVocabulary(VocabularyWeapons) && cfg.Weapons == nil {
		return nil, errors.New("pipeline: layout uses the weapons vocabulary but none was given")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Pipeline{
		layout: cfg.Layout,
		icon:   cfg.Icon,
		vocabs: map[string]*vocab.Vocabulary{
			VocabularyPlayers: cfg.Players,
			VocabularyWeapons: cfg.Weapons,
		},
		recognizer: cfg.Recognizer,
		logger:     logger,
		debugDir:   cfg.DebugDir,
	}, nil
}

// Layout returns the layout the pipeline was built with.
func (p *Pipeline) Layout() Layout {
	return p.layout
}

// Process extracts every configured field from frame.
//
// The player field runs first. If it does not resolve and the layout sets
// AbortFrameOnUnknownPlayer, the record is marked Suppressed and the weapon
// fields are not evaluated.
// Unresolved weapons are omitted: with CompactWeapons the resolved ones fill
// the weapon columns from the left, otherwise each keeps its own column.
func (p *Pipeline) Process(index int, frame image.Image) (Record, error) {
	rec := Record{Frame: index}

	player, err := p.Extract(index, frame, p.layout.Player)
	if err != nil {
		return rec, err
	}
	rec.Fields = append(rec.Fields, player)

	if player.Value == "" && p.layout.AbortFrameOnUnknownPlayer {
		rec.Suppressed = true
		p.logger.Debug("frame suppressed", "frame", index, "reason", player.Status.String())
		return rec, nil
	}
	rec.PlayerName = player.Value

	resolved := 0
	for i, f := range p.layout.Weapons {
		r, err := p.Extract(index, frame, f)
		if err != nil {
			return rec, err
		}
		rec.Fields = append(rec.Fields, r)
		if r.Value == "" {
			continue
		}

		slot := i
		if p.layout.CompactWeapons {
			slot = resolved
		}
		rec.Weapons[slot] = r.Value
		resolved++
	}

	return rec, nil
}

// Extract runs one field through the pipeline.
//
// # Errors
//
//   - The field rectangle lies outside the frame (layout error)
//   - The OCR engine fails
func (p *Pipeline) Extract(index int, frame image.Image, f Field) (FieldResult, error) {
	log := p.logger.With("frame", index, "field", f.Name)
	res := FieldResult{Field: f.Name}

	region, err := imaging.Crop(frame, f.Rect)
	if err != nil {
		return res, fmt.Errorf("frame %d field %s: %w", index, f.Name, err)
	}

	var text image.Image = region
	if f.Delimiter {
		match, err := imaging.MatchTemplate(region, p.icon)
		if err != nil && !errors.Is(err, imaging.ErrTemplateTooLarge) {
			return res, fmt.Errorf("frame %d field %s: %w", index, f.Name, err)
		}
		if match != nil {
			res.Confidence = match.Confidence
		}
		if match == nil || match.Confidence < p.layout.MatchThreshold {
			res.Status = StatusDelimiterNotFound
			c := imaging.DescribeRegion(region)
			log.Info("delimiter not found",
				"confidence", round2(res.Confidence),
				"region_color", c.Hex,
				"region_lightness", c.Lightness)
			return res, nil
		}

		cropped := imaging.CropLeft(region, match.Offset.X)
		if cropped == nil {
			res.Status = StatusEmpty
			log.Debug("delimiter at left edge, no text")
			return res, nil
		}
		text = cropped
	}

	bin := imaging.PrepareForOCR(text, p.layout.Scale, p.layout.LuminanceThreshold)
	p.dump(index, f, bin, log)

	raw, err := p.recognizer.Recognize(bin)
	if err != nil {
		return res, fmt.Errorf("frame %d field %s: %w", index, f.Name, err)
	}
	res.Raw = raw
	if raw == "" {
		res.Status = StatusEmpty
		log.Debug("nothing recognized")
		return res, nil
	}

	v := p.vocabs[f.Vocabulary]
	if v == nil {
		res.Status = StatusRecognized
		res.Value = raw
		log.Info("recognized", "value", raw)
		return res, nil
	}

	m := v.Match(raw, p.layout.DistanceThreshold)
	res.Distance = m.Distance
	switch m.Outcome {
	case vocab.Exact:
		res.Status = StatusRecognized
		res.Value = m.Value
		log.Info("recognized", "value", m.Value)
	case vocab.Corrected:
		res.Status = StatusCorrected
		res.Value = m.Value
		log.Info("corrected", "raw", raw, "value", m.Value, "distance", round2(m.Distance))
	default:
		res.Status = StatusUnknown
		log.Info("unknown value", "raw", raw, "best_guess", m.Best, "distance", round2(m.Distance))
	}
	return res, nil
}

// dump writes a binarized field image to the debug directory. Failures are
// logged and otherwise ignored.
func (p *Pipeline) dump(index int, f Field, img image.Image, log *slog.Logger) {
	if p.debugDir == "" {
		return
	}
	path := filepath.Join(p.debugDir, fmt.Sprintf("%06d-%s.png", index, f.Name))
	if err := imaging.SavePNG(path, img); err != nil {
		log.Warn("debug dump failed", "path", path, "error", err)
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
