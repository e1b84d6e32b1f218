package pipeline

import (
	"errors"
	"fmt"

	"github.com/ironsheep/hudscan/internal/imaging"
	"github.com/ironsheep/hudscan/internal/vocab"
)

// MaxWeaponSlots is the number of weapon columns in a Record.
const MaxWeaponSlots = 2

// DefaultMatchThreshold is the minimum template-match confidence for the
// delimiter icon to count as found.
const DefaultMatchThreshold = 0.8

// DefaultScale is the nearest-neighbor upscale factor applied before OCR.
const DefaultScale = 4

// Vocabulary names a field can be reconciled against.
const (
	VocabularyPlayers = "players"
	VocabularyWeapons = "weapons"
	VocabularyNone    = "none"
)

// ErrInvalidLayout wraps every layout validation failure.
var ErrInvalidLayout = errors.New("invalid layout")

// Field describes one HUD text field.
type Field struct {
	// Name identifies the field in logs and debug dumps.
	Name string `json:"name" mapstructure:"name"`

	// Rect is the field's fixed rectangle in frame coordinates.
	Rect imaging.Rect `json:"rect" mapstructure:"rect"`

	// Delimiter crops the text at the reference icon when set. A field whose
	// icon is not found yields no value.
	Delimiter bool `json:"delimiter" mapstructure:"delimiter"`

	// Vocabulary selects the known-value set: "players", "weapons" or "none".
	// With "none" the OCR text is used as-is.
	Vocabulary string `json:"vocabulary" mapstructure:"vocabulary"`
}

// Layout is the complete, per-game-build configuration of the frame pipeline.
type Layout struct {
	Player  Field   `json:"player" mapstructure:"player"`
	Weapons []Field `json:"weapons" mapstructure:"weapons"`

	MatchThreshold     float64 `json:"match_threshold" mapstructure:"match_threshold"`
	DistanceThreshold  float64 `json:"distance_threshold" mapstructure:"distance_threshold"`
	LuminanceThreshold float64 `json:"luminance_threshold" mapstructure:"luminance_threshold"`
	Scale              int     `json:"scale" mapstructure:"scale"`

	// AbortFrameOnUnknownPlayer drops the whole row of a frame whose player
	// name cannot be resolved; weapons are then not evaluated. With the flag
	// set a run writes fewer rows than frames. Clear it to get exactly one row
	// per readable frame, with a blank player column where needed.
	AbortFrameOnUnknownPlayer bool `json:"abort_frame_on_unknown_player" mapstructure:"abort_frame_on_unknown_player"`

	// CompactWeapons shifts resolved weapons left so unresolved slots pad the
	// end of the row. When false each weapon keeps its own column.
	CompactWeapons bool `json:"compact_weapons" mapstructure:"compact_weapons"`
}

// DefaultLayout returns the layout tuned for 1920x1080 captures of the
// original game build.
func DefaultLayout() Layout {
	return Layout{
		Player: Field{
			Name:       "player",
			Rect:       imaging.Rect{X0: 169, Y0: 960, X1: 400, Y1: 990},
			Delimiter:  true,
			Vocabulary: VocabularyPlayers,
		},
		Weapons: []Field{
			{
				Name:       "weapon1",
				Rect:       imaging.Rect{X0: 1554, Y0: 1035, X1: 1660, Y1: 1054},
				Vocabulary: VocabularyWeapons,
			},
			{
				Name:       "weapon2",
				Rect:       imaging.Rect{X0: 1710, Y0: 1035, X1: 1815, Y1: 1055},
				Vocabulary: VocabularyWeapons,
			},
		},
		MatchThreshold:            DefaultMatchThreshold,
		DistanceThreshold:         vocab.DefaultMaxDistance,
		LuminanceThreshold:        imaging.DefaultLuminanceThreshold,
		Scale:                     DefaultScale,
		AbortFrameOnUnknownPlayer: true,
		CompactWeapons:            true,
	}
}

// Fields returns the player field followed by the weapon fields.
func (l Layout) Fields() []Field {
	return append([]Field{l.Player}, l.Weapons...)
}

// UsesVocabulary reports whether any field reconciles against name.
func (l Layout) UsesVocabulary(name string) bool {
	for _, f := range l.Fields() {
		if f.Vocabulary == name {
			return true
		}
	}
	return false
}

// UsesDelimiter reports whether any field needs the reference icon.
func (l Layout) UsesDelimiter() bool {
	for _, f := range l.Fields() {
		if f.Delimiter {
			return true
		}
	}
	return false
}

// Validate checks the layout for configuration errors.
func (l Layout) Validate() error {
	if len(l.Weapons) > MaxWeaponSlots {
		return fmt.Errorf("%w: %d weapon fields, at most %d supported", ErrInvalidLayout, len(l.Weapons), MaxWeaponSlots)
	}

	seen := make(map[string]bool)
	for _, f := range l.Fields() {
		if f.Name == "" {
			return fmt.Errorf("%w: field without a name", ErrInvalidLayout)
		}
		if seen[f.Name] {
			return fmt.Errorf("%w: duplicate field name %q", ErrInvalidLayout, f.Name)
		}
		seen[f.Name] = true

		if f.Rect.Empty() || f.Rect.X0 < 0 || f.Rect.Y0 < 0 {
			return fmt.Errorf("%w: field %q has invalid rectangle %s", ErrInvalidLayout, f.Name, f.Rect)
		}
		switch f.Vocabulary {
		case VocabularyPlayers, VocabularyWeapons, VocabularyNone:
		default:
			return fmt.Errorf("%w: field %q has unknown vocabulary %q", ErrInvalidLayout, f.Name, f.Vocabulary)
		}
	}

	if l.MatchThreshold <= 0 || l.MatchThreshold > 1 {
		return fmt.Errorf("%w: match_threshold %v must be in (0,1]", ErrInvalidLayout, l.MatchThreshold)
	}
	if l.DistanceThreshold <= 0 || l.DistanceThreshold > 1 {
		return fmt.Errorf("%w: distance_threshold %v must be in (0,1]", ErrInvalidLayout, l.DistanceThreshold)
	}
	if l.LuminanceThreshold <= 0 || l.LuminanceThreshold > 1 {
		return fmt.Errorf("%w: luminance_threshold %v must be in (0,1]", ErrInvalidLayout, l.LuminanceThreshold)
	}
	if l.Scale < 1 {
		return fmt.Errorf("%w: scale %d must be at least 1", ErrInvalidLayout, l.Scale)
	}
	return nil
}
