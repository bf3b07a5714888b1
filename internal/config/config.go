package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/penwyp/go-claude-statusline/internal/util"
)

// Color modes for statusline output.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

const defaultConcurrency = 4

// Config holds user settings. Fields left empty fall back to defaults in
// Validate.
type Config struct {
	ClaudeDirs  []string `koanf:"claude_dirs"`
	Timezone    string   `koanf:"timezone"`
	Concurrency int      `koanf:"concurrency"`
	PricingFile string   `koanf:"pricing_file"`
	FullHistory bool     `koanf:"full_history"`
	Color       string   `koanf:"color"`
	LogLevel    string   `koanf:"log_level"`
	LogFile     string   `koanf:"log_file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Timezone:    "Local",
		Concurrency: defaultConcurrency,
		Color:       ColorAuto,
		LogLevel:    "info",
		LogFile:     util.DefaultLogFile(),
	}
}

// Load reads path over the defaults and applies CLAUDE_CONFIG_DIR. A missing
// file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", path, err)
		}
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// loadFile parses a YAML file into target, silently skipping missing files.
func loadFile(path string, target any) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return err
	}
	return k.Unmarshal("", target)
}

// ApplyEnv lets CLAUDE_CONFIG_DIR replace the configured data directories.
func (c *Config) ApplyEnv() {
	if env := os.Getenv(util.ConfigDirEnv); strings.TrimSpace(env) != "" {
		c.ClaudeDirs = util.SplitDirList(env)
	}
}

// DataDirs returns the candidate Claude data directories.
func (c *Config) DataDirs() []string {
	if len(c.ClaudeDirs) > 0 {
		dirs := make([]string, len(c.ClaudeDirs))
		for i, d := range c.ClaudeDirs {
			dirs[i] = util.ExpandPath(d)
		}
		return dirs
	}
	return util.CandidateDataDirs()
}

// Validate fills defaults for empty fields and rejects invalid values.
func (c *Config) Validate() error {
	if c.Timezone == "" {
		c.Timezone = "Local"
	}
	if c.Timezone != "Local" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
		}
	}
	if c.Concurrency == 0 {
		c.Concurrency = defaultConcurrency
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must be positive, got %d", c.Concurrency)
	}
	if c.Color == "" {
		c.Color = ColorAuto
	}
	c.Color = strings.ToLower(c.Color)
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color mode %q (want auto, always or never)", c.Color)
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.PricingFile != "" {
		c.PricingFile = util.ExpandPath(c.PricingFile)
	}
	return nil
}
