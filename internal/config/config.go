// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all rolodex configuration.
type Config struct {
	Book Book `yaml:"book"`
	UI   UI   `yaml:"ui"`
}

// Book holds contact book storage settings.
type Book struct {
	Path string `yaml:"path"`
}

// UI holds terminal presentation settings.
type UI struct {
	Color  string `yaml:"color"`  // "auto" | "always" | "never"
	Prompt string `yaml:"prompt"` // Prompt shown by the interactive assistant.
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Book: Book{
			Path: ".rolodex/book.json",
		},
		UI: UI{
			Color:  "auto",
			Prompt: "Enter a command: ",
		},
	}
}

// Load reads a single YAML config file at path and returns a Config.
// For merging multiple config sources, use LoadLayered instead.
// If the file does not exist, defaults are returned without error.
// If the file contains invalid YAML or unknown fields, an error is returned.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return &cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &cfg, nil
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	if c.Book.Path == "" {
		return errors.New("config: book.path cannot be empty")
	}
	if !validColor(c.UI.Color) {
		return fmt.Errorf("config: ui.color must be \"auto\", \"always\", or \"never\", got %q", c.UI.Color)
	}
	return nil
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: ROLODEX_BOOK, ROLODEX_COLOR, ROLODEX_PROMPT.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("ROLODEX_BOOK"); v != "" {
		c.Book.Path = v
	}
	if v := os.Getenv("ROLODEX_COLOR"); v != "" {
		if !validColor(v) {
			return fmt.Errorf("config: invalid ROLODEX_COLOR %q: must be auto, always, or never", v)
		}
		c.UI.Color = v
	}
	if v := os.Getenv("ROLODEX_PROMPT"); v != "" {
		c.UI.Prompt = v
	}
	return nil
}

// validColor reports whether v is an accepted color mode. The empty string
// is accepted and treated as auto.
func validColor(v string) bool {
	switch v {
	case "", "auto", "always", "never":
		return true
	}
	return false
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	Book *rawBook `yaml:"book"`
	UI   *rawUI   `yaml:"ui"`
}

type rawBook struct {
	Path *string `yaml:"path"`
}

type rawUI struct {
	Color  *string `yaml:"color"`
	Prompt *string `yaml:"prompt"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if layer.Book != nil {
		if layer.Book.Path != nil {
			c.Book.Path = *layer.Book.Path
		}
	}
	if layer.UI != nil {
		if layer.UI.Color != nil {
			c.UI.Color = *layer.UI.Color
		}
		if layer.UI.Prompt != nil {
			c.UI.Prompt = *layer.UI.Prompt
		}
	}
}
