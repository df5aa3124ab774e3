package shared

import (
	_ "embed"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Timer    TimerConfig    `toml:"timer"`
	Tone     ToneConfig     `toml:"tone"`
	Server   ServerConfig   `toml:"server"`
	Log      LogConfig      `toml:"log"`
	Quotes   QuotesConfig   `toml:"quotes"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// TimerConfig holds the fixed duration options offered by the countdown.
type TimerConfig struct {
	Durations      []int `toml:"durations"`
	DefaultMinutes int   `toml:"default_minutes"`
}

// ToneConfig controls the completion tone.
type ToneConfig struct {
	Enabled    bool    `toml:"enabled"`
	Frequency  float64 `toml:"frequency"`
	DurationMS int     `toml:"duration_ms"`
	Player     string  `toml:"player"`
}

// Duration returns the tone length as a [time.Duration].
func (t ToneConfig) Duration() time.Duration {
	return time.Duration(t.DurationMS) * time.Millisecond
}

// ServerConfig contains local dashboard server settings.
type ServerConfig struct {
	Host      string  `toml:"host"`
	Port      int     `toml:"port"`
	RateLimit float64 `toml:"rate_limit"`
	Burst     int     `toml:"burst"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level"`
	Path  string `toml:"path"`
}

// QuotesConfig overrides the built-in quote pool when non-empty.
type QuotesConfig struct {
	Pool []string `toml:"pool"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Values missing from the file keep the embedded defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadOrDefault loads path when it exists and falls back to [DefaultConfig] otherwise.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return DefaultConfig(), nil
	}
	return LoadConfig(path)
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks the timer options and server settings.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("%w: database.path is empty", ErrInvalidConfig)
	}
	if len(c.Timer.Durations) == 0 {
		return fmt.Errorf("%w: timer.durations is empty", ErrInvalidConfig)
	}
	for _, d := range c.Timer.Durations {
		if d <= 0 {
			return fmt.Errorf("%w: timer duration %d must be positive", ErrInvalidConfig, d)
		}
	}
	if !slices.Contains(c.Timer.Durations, c.Timer.DefaultMinutes) {
		return fmt.Errorf("%w: timer.default_minutes %d is not one of %v", ErrInvalidConfig, c.Timer.DefaultMinutes, c.Timer.Durations)
	}
	if c.Tone.Enabled && (c.Tone.Frequency <= 0 || c.Tone.DurationMS <= 0) {
		return fmt.Errorf("%w: tone frequency and duration must be positive", ErrInvalidConfig)
	}
	switch c.Tone.Player {
	case "", "auto", "bell", "none":
	default:
		return fmt.Errorf("%w: tone.player %q must be auto, bell or none", ErrInvalidConfig, c.Tone.Player)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port %d out of range", ErrInvalidConfig, c.Server.Port)
	}
	return nil
}
