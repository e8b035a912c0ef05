// Package config loads server settings from an optional JSON file with
// defaults for every key. Settings the binaries need before the file is
// located (ADDR/PORT) also honour environment variables.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"spearhunt/server/application"
	"spearhunt/server/domain"
)

const configName = "spearhunt.cfg.json"

// Load reads configuration from JSON file and sets default values.
// A missing config file is not an error; defaults apply.
func Load(configDir string) error {
	viper.SetDefault("logLevel", "info")

	viper.SetDefault("server.addr", "localhost")
	viper.SetDefault("server.port", "9090")
	viper.SetDefault("server.pingIntervalSec", 5)
	viper.SetDefault("server.idleCheckIntervalSec", 1)
	viper.SetDefault("server.idleTimeoutSec", 30)

	viper.SetDefault("game.tickRate", 60)
	viper.SetDefault("game.firePolicy", "hand-raise")
	viper.SetDefault("game.arrivalPolicy", "score-only")
	viper.SetDefault("game.cooldownTicks", 90)
	viper.SetDefault("game.seed", 0)

	viper.SetConfigName(configName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

var (
	ErrUnknownFirePolicy    = errors.New("unknown fire policy")
	ErrUnknownArrivalPolicy = errors.New("unknown arrival policy")
)

// KeepaliveConfig assembles the per-connection liveness intervals.
func KeepaliveConfig() domain.Keepalive {
	return domain.Keepalive{
		PingInterval:      time.Duration(viper.GetInt("server.pingIntervalSec")) * time.Second,
		IdleCheckInterval: time.Duration(viper.GetInt("server.idleCheckIntervalSec")) * time.Second,
		IdleTimeout:       time.Duration(viper.GetInt("server.idleTimeoutSec")) * time.Second,
	}
}

// GameConfig assembles the simulation settings from the loaded configuration.
func GameConfig() (application.GameConfig, error) {
	var cfg application.GameConfig

	switch v := viper.GetString("game.firePolicy"); v {
	case "hand-raise":
		cfg.FirePolicy = application.PolicyHandRaise
	case "fist-palm":
		cfg.FirePolicy = application.PolicyFistPalm
	default:
		return cfg, fmt.Errorf("%w: %q", ErrUnknownFirePolicy, v)
	}

	switch v := viper.GetString("game.arrivalPolicy"); v {
	case "score-only":
		cfg.ArrivalPolicy = application.ArrivalScoreOnly
	case "player-health":
		cfg.ArrivalPolicy = application.ArrivalPlayerHealth
	default:
		return cfg, fmt.Errorf("%w: %q", ErrUnknownArrivalPolicy, v)
	}

	cfg.TickRate = viper.GetInt("game.tickRate")
	cfg.CooldownTicks = viper.GetUint64("game.cooldownTicks")
	cfg.Seed = viper.GetUint64("game.seed")
	return cfg, nil
}
