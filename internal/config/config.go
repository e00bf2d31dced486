package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	StopWordsPath string `toml:"stop_words_path"`
	DBPath        string `toml:"db_path" validate:"required"`
	ExportsDir    string `toml:"exports_dir"`
	LogLevel      string `toml:"log_level" validate:"oneof=trace debug info warn warning error"`
	LogFormat     string `toml:"log_format" validate:"oneof=text json"`
	Output        string `toml:"output" validate:"oneof=text json yaml"`
}

// env overrides, applied after the config file
var envVars = map[string]func(*Config, string){
	"CHATSTAT_STOP_WORDS":  func(c *Config, v string) { c.StopWordsPath = v },
	"CHATSTAT_DB":          func(c *Config, v string) { c.DBPath = v },
	"CHATSTAT_EXPORTS_DIR": func(c *Config, v string) { c.ExportsDir = v },
	"CHATSTAT_LOG_LEVEL":   func(c *Config, v string) { c.LogLevel = v },
	"CHATSTAT_LOG_FORMAT":  func(c *Config, v string) { c.LogFormat = v },
	"CHATSTAT_OUTPUT":      func(c *Config, v string) { c.Output = v },
}

var validate = validator.New()

// Load builds the config from defaults, ~/.config/chatstat/config.toml (or
// $CHATSTAT_CONFIG), a .env file in the working directory and CHATSTAT_*
// variables, in that order.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		StopWordsPath: filepath.Join(home, ".config", "chatstat", "stop_words.txt"),
		DBPath:        filepath.Join(home, ".config", "chatstat", "chatstat.db"),
		ExportsDir:    filepath.Join(home, "Downloads"),
		LogLevel:      "info",
		LogFormat:     "text",
		Output:        "text",
	}

	cfgPath := os.Getenv("CHATSTAT_CONFIG")
	if cfgPath == "" {
		cfgPath = filepath.Join(home, ".config", "chatstat", "config.toml")
	}
	if _, err := os.Stat(cfgPath); err == nil {
		if _, err := toml.DecodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	}

	// .env never overrides variables already set in the environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	for name, set := range envVars {
		if v, ok := os.LookupEnv(name); ok {
			set(cfg, v)
		}
	}

	// expand ~ in paths
	cfg.StopWordsPath = expandHome(cfg.StopWordsPath, home)
	cfg.DBPath = expandHome(cfg.DBPath, home)
	cfg.ExportsDir = expandHome(cfg.ExportsDir, home)

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
