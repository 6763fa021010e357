package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when no --config flag is given
const DefaultPath = "stickerkit.yaml"

// Background removal modes
const (
	BackgroundNone     = "none"
	BackgroundColorKey = "colorkey"
	BackgroundCommand  = "command"
)

// Key colour strategies for the colorkey mode
const (
	KeyDominant = "dominant"
	KeyKMeans   = "kmeans"
)

// Config represents the application configuration
type Config struct {
	OutputDir  string           `yaml:"output_dir"`
	Background BackgroundConfig `yaml:"background"`
	Gemini     GeminiConfig     `yaml:"gemini"`
	OpenAI     OpenAIConfig     `yaml:"openai"`
	Watch      WatchConfig      `yaml:"watch"`
}

type BackgroundConfig struct {
	Mode string `yaml:"mode"`
	// Tolerance is the CIE-Lab distance under which a pixel counts as background.
	Tolerance float64  `yaml:"tolerance"`
	Key       string   `yaml:"key"`
	Command   []string `yaml:"command"`
}

type GeminiConfig struct {
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
}

type OpenAIConfig struct {
	Model string `yaml:"model"`
}

type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		OutputDir: "data/output",
		Background: BackgroundConfig{
			Mode:      BackgroundNone,
			Tolerance: 0.12,
			Key:       KeyDominant,
			Command:   []string{"rembg", "i", "-", "-"},
		},
		Gemini: GeminiConfig{
			Model:       "gemini-3-pro-image-preview",
			Temperature: 1.0,
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-image-1",
		},
		Watch: WatchConfig{
			Debounce: 500 * time.Millisecond,
		},
	}
}

// Load reads the configuration file, applies environment overrides and
// validates the result. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			slog.Debug("Config file not found, using defaults", "path", path)
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("STICKERKIT_OUTPUT_DIR"); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv("STICKERKIT_BACKGROUND"); v != "" {
		c.Background.Mode = strings.ToLower(v)
	}
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		c.Gemini.Model = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		c.OpenAI.Model = v
	}
}

// Validate checks if required configuration fields are set
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}

	switch c.Background.Mode {
	case BackgroundNone:
	case BackgroundColorKey:
		if c.Background.Tolerance <= 0 {
			return fmt.Errorf("background.tolerance must be positive")
		}
		if c.Background.Key != KeyDominant && c.Background.Key != KeyKMeans {
			return fmt.Errorf("background.key must be %q or %q, got %q", KeyDominant, KeyKMeans, c.Background.Key)
		}
	case BackgroundCommand:
		if len(c.Background.Command) == 0 || c.Background.Command[0] == "" {
			return fmt.Errorf("background.command is required for mode %q", BackgroundCommand)
		}
	default:
		return fmt.Errorf("unknown background.mode %q", c.Background.Mode)
	}

	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative")
	}

	return nil
}
