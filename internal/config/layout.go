package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/ironsheep/hudscan/internal/pipeline"
)

// LoadLayout reads a layout file. The format follows the file extension
// (.yaml, .yml, .json, .toml). An empty path returns the default layout.
//
// Scalar keys missing from the file keep their default values. The player
// field and the weapons list are replaced as a whole when present.
func LoadLayout(path string) (pipeline.Layout, error) {
	if path == "" {
		return pipeline.DefaultLayout(), nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return pipeline.Layout{}, fmt.Errorf("read layout %s: %w", path, err)
	}

	l, err := decodeLayout(v)
	if err != nil {
		return pipeline.Layout{}, fmt.Errorf("layout %s: %w", path, err)
	}
	return l, nil
}

func decodeLayout(v *viper.Viper) (pipeline.Layout, error) {
	def := pipeline.DefaultLayout()
	v.SetDefault("match_threshold", def.MatchThreshold)
	v.SetDefault("distance_threshold", def.DistanceThreshold)
	v.SetDefault("luminance_threshold", def.LuminanceThreshold)
	v.SetDefault("scale", def.Scale)
	v.SetDefault("abort_frame_on_unknown_player", def.AbortFrameOnUnknownPlayer)
	v.SetDefault("compact_weapons", def.CompactWeapons)

	var l pipeline.Layout
	if err := v.Unmarshal(&l); err != nil {
		return l, fmt.Errorf("%w: %v", pipeline.ErrInvalidLayout, err)
	}

	if !v.IsSet("player") {
		l.Player = def.Player
	}
	if !v.IsSet("weapons") {
		l.Weapons = def.Weapons
	}

	if err := l.Validate(); err != nil {
		return l, err
	}
	return l, nil
}
