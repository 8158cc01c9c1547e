// Package config loads the service configuration: a YAML file with
// environment-variable overrides.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v2"
)

type ServerConfig struct {
	Port int `yaml:"port" env:"COSTBOT_PORT"`
}

type PredictorConfig struct {
	// Kind selects the trend predictor: "least_squares",
	// "moving_average" or "none".
	Kind   string `yaml:"kind" env:"COSTBOT_PREDICTOR"`
	Window int    `yaml:"window" env:"COSTBOT_PREDICTOR_WINDOW"`
}

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Predictor PredictorConfig `yaml:"predictor"`
	// TopN is the list size for mover rankings in reports.
	TopN int `yaml:"top_n" env:"COSTBOT_TOP_N"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Server:    ServerConfig{Port: 8080},
		Predictor: PredictorConfig{Kind: "least_squares", Window: 3},
		TopN:      5,
	}
}

// Load reads the YAML file at path (skipped when path is empty or the
// file does not exist) and applies environment overrides on top of the
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// fall through to env overrides
		case err != nil:
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
