// Package config loads the optional YAML settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"chatty/visual"
)

type Config struct {
	Model    string `yaml:"model"`
	Language string `yaml:"language"`
	Device   string `yaml:"device"`
	Visual   string `yaml:"visual"`
	AutoType bool   `yaml:"auto_type"`
	Debug    bool   `yaml:"debug"`
	Beep     bool   `yaml:"beep"`
}

func Default() Config {
	return Config{
		Language: "en",
		Visual:   "dots",
		AutoType: true,
		Beep:     true,
	}
}

// DefaultPath is $XDG_CONFIG_HOME/chatty/config.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "chatty", "config.yaml"), nil
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	applyEnvOverrides(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v, ok := os.LookupEnv("CHATTY_MODEL"); ok && strings.TrimSpace(v) != "" {
		cfg.Model = v
	}
}

// Validate checks values that flags may have overridden after Load.
func (c Config) Validate() error {
	if _, err := visual.ParseMode(c.Visual); err != nil {
		return err
	}
	if strings.TrimSpace(c.Language) == "" {
		return errors.New("language must not be empty (use \"auto\" to detect)")
	}
	return nil
}

// Mode is the configured visual mode; callers validate first.
func (c Config) Mode() visual.Mode {
	m, _ := visual.ParseMode(c.Visual)
	return m
}
