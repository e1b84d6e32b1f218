// Package config loads hudscan's environment settings and HUD layouts.
//
// Environment settings come from HUDSCAN_* variables, optionally seeded from
// a .env file. Layouts come from a YAML, JSON or TOML file whose missing keys
// fall back to pipeline.DefaultLayout.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "HUDSCAN"

// DefaultDotenv is the file LoadEnv reads when present.
const DefaultDotenv = ".env"

// Env holds settings taken from the process environment.
type Env struct {
	// LogLevel is HUDSCAN_LOG_LEVEL: debug, info, warn or error.
	LogLevel slog.Level

	// Language is HUDSCAN_LANGUAGE, the Tesseract language code. Empty
	// leaves the choice to the recognizer's default.
	Language string

	// TessdataPrefix is HUDSCAN_TESSDATA_PREFIX. Empty leaves Tesseract's
	// own lookup in place.
	TessdataPrefix string
}

// LoadEnv reads dotenv into the process environment, then resolves the
// HUDSCAN_* variables. Variables already set in the environment win over the
// file. A missing dotenv file is not an error; pass "" to skip it.
func LoadEnv(dotenv string) (Env, error) {
	if dotenv != "" {
		if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Env{}, fmt.Errorf("load %s: %w", dotenv, err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetDefault("log_level", "info")
	v.SetDefault("language", "")
	v.SetDefault("tessdata_prefix", "")

	var level slog.Level
	if err := level.UnmarshalText([]byte(v.GetString("log_level"))); err != nil {
		return Env{}, fmt.Errorf("%s_LOG_LEVEL: %w", EnvPrefix, err)
	}

	return Env{
		LogLevel:       level,
		Language:       v.GetString("language"),
		TessdataPrefix: v.GetString("tessdata_prefix"),
	}, nil
}
