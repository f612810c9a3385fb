// Package config loads host process configuration from the
// environment, plus optional settings presets from a YAML file.
package config

import (
	"fmt"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/Sheepposu/bombparty/letters"
)

// Config is everything the host process reads from the environment.
// Unset variables keep their defaults; letter table overrides and the
// presets path are optional.
type Config struct {
	Channel  string `env:"BOMBPARTY_CHANNEL,default=local"`
	LogLevel string `env:"BOMBPARTY_LOG_LEVEL,default=info"`

	// Seed fixes the game RNG for reproducible runs; 0 means seed
	// from the clock.
	Seed int64 `env:"BOMBPARTY_SEED"`

	PresetsPath string `env:"BOMBPARTY_PRESETS"`

	// Paths to frequency tables overriding the embedded letter data.
	// Both must be set together.
	TwoLetterPath   string `env:"BOMBPARTY_TWO_LETTERS"`
	ThreeLetterPath string `env:"BOMBPARTY_THREE_LETTERS"`
}

// Load reads a .env file if one exists, then decodes the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode environment: %w", err)
	}
	return cfg, nil
}

// LetterPool builds the letter pool from the configured table files,
// falling back to the embedded tables.
func (c Config) LetterPool() (*letters.Pool, error) {
	switch {
	case c.TwoLetterPath != "" && c.ThreeLetterPath != "":
		return letters.NewPoolFromFiles(c.TwoLetterPath, c.ThreeLetterPath)
	case c.TwoLetterPath != "" || c.ThreeLetterPath != "":
		return nil, fmt.Errorf("letter table overrides must be set together")
	default:
		return letters.Default()
	}
}
