// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	engine "github.com/Kgervais7/MooseInTheHouse/engine"
)

// Config holds every setting of a game process.
type Config struct {
	Players      int     `env:"MOOSE_PLAYERS" envDefault:"4"`
	Seed         uint64  `env:"MOOSE_SEED" envDefault:"0"` // 0 = derive from the clock
	HandSize     int     `env:"MOOSE_HAND_SIZE" envDefault:"4"`
	DrawPerTurn  int     `env:"MOOSE_DRAW_PER_TURN" envDefault:"1"`
	Jokers       uint8   `env:"MOOSE_JOKERS" envDefault:"0"`
	MaxRounds    int     `env:"MOOSE_MAX_ROUNDS" envDefault:"500"`
	HumanSeat    int     `env:"MOOSE_HUMAN_SEAT" envDefault:"-1"` // -1 = bots only
	HumanName    string  `env:"MOOSE_HUMAN_NAME" envDefault:"you"`
	BotHouseRate float64 `env:"MOOSE_BOT_HOUSE_RATE" envDefault:"0.25"`

	LogLevel  string `env:"MOOSE_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"MOOSE_LOG_FORMAT" envDefault:"text"`

	RedisAddr     string `env:"MOOSE_REDIS_ADDR"`
	RedisPassword string `env:"MOOSE_REDIS_PASSWORD"`
	RedisDB       int    `env:"MOOSE_REDIS_DB" envDefault:"0"`

	SpectatorAddr string `env:"MOOSE_SPECTATOR_ADDR"`

	OTLPEndpoint string `env:"MOOSE_OTLP_ENDPOINT"`
	ServiceName  string `env:"MOOSE_SERVICE_NAME" envDefault:"moose"`
}

// Load reads an optional .env file from the working directory (or the given
// files), then parses the environment into a Config and validates it.
// Variables already set in the environment win over .env entries.
func Load(dotenv ...string) (Config, error) {
	if err := godotenv.Load(dotenv...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

// Parse builds a Config from the current environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges the engine would otherwise reject later.
func (c Config) Validate() error {
	var errs []error
	if c.Players < engine.MinPlayers {
		errs = append(errs, fmt.Errorf("MOOSE_PLAYERS must be at least %d, got %d", engine.MinPlayers, c.Players))
	}
	if c.HandSize < 0 {
		errs = append(errs, fmt.Errorf("MOOSE_HAND_SIZE must not be negative, got %d", c.HandSize))
	}
	if c.DrawPerTurn < 0 {
		errs = append(errs, fmt.Errorf("MOOSE_DRAW_PER_TURN must not be negative, got %d", c.DrawPerTurn))
	}
	if c.Jokers > 2 {
		errs = append(errs, fmt.Errorf("MOOSE_JOKERS must be 0, 1 or 2, got %d", c.Jokers))
	}
	if c.MaxRounds < 0 {
		errs = append(errs, fmt.Errorf("MOOSE_MAX_ROUNDS must not be negative, got %d", c.MaxRounds))
	}
	if c.HumanSeat < -1 || c.HumanSeat >= c.Players {
		errs = append(errs, fmt.Errorf("MOOSE_HUMAN_SEAT must be -1 or a seat below %d, got %d", c.Players, c.HumanSeat))
	}
	if c.BotHouseRate < 0 || c.BotHouseRate > 1 {
		errs = append(errs, fmt.Errorf("MOOSE_BOT_HOUSE_RATE must be within [0,1], got %g", c.BotHouseRate))
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("MOOSE_LOG_FORMAT must be text or json, got %q", c.LogFormat))
	}
	return errors.Join(errs...)
}

// HouseRules maps the configuration onto engine rules.
func (c Config) HouseRules() engine.HouseRules {
	return engine.HouseRules{
		HandSize:    c.HandSize,
		DrawPerTurn: c.DrawPerTurn,
		NumJokers:   c.Jokers,
		MaxRounds:   c.MaxRounds,
	}
}
