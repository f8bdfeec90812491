package config

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vango-dev/mvvm/internal/errors"
	"github.com/vango-dev/mvvm/pkg/reactive"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "mvvm.json"

	// DefaultLogLevel is the default slog level name.
	DefaultLogLevel = "info"

	// DefaultLogFormat is the default log output format.
	DefaultLogFormat = "text"

	// DefaultMetricsNamespace is the default Prometheus namespace.
	DefaultMetricsNamespace = "mvvm"
)

// Config represents the complete mvvm.json configuration.
type Config struct {
	// Log configures the slog logger.
	Log LogConfig `json:"log,omitempty"`

	// Reactive configures the observer and watchers.
	Reactive ReactiveConfig `json:"reactive,omitempty"`

	// Metrics configures the Prometheus recorder.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty"`

	// Format is text or json.
	Format string `json:"format,omitempty"`
}

// ReactiveConfig configures the reactive core.
type ReactiveConfig struct {
	// AlwaysNotify notifies subscribers even when the written value is
	// identical to the stored one.
	AlwaysNotify bool `json:"alwaysNotify,omitempty"`

	// Recover makes watchers recover and log callback panics.
	Recover bool `json:"recover,omitempty"`

	// MaxNotifyDepth bounds nested notifications. 0 means unlimited.
	MaxNotifyDepth int `json:"maxNotifyDepth,omitempty"`

	// OnExceeded is "throttle" (default) or "panic".
	OnExceeded string `json:"onExceeded,omitempty"`

	// Debug enables debug records for registrations, notifications and
	// watcher updates.
	Debug bool `json:"debug,omitempty"`
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	// Enabled turns on metric collection.
	Enabled bool `json:"enabled,omitempty"`

	// Namespace is the metric namespace.
	Namespace string `json:"namespace,omitempty"`
}

// New returns a configuration with default values.
func New() *Config {
	return &Config{
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Reactive: ReactiveConfig{
			OnExceeded: reactive.BudgetModeThrottle.String(),
		},
		Metrics: MetricsConfig{
			Namespace: DefaultMetricsNamespace,
		},
	}
}

// Load loads mvvm.json from dir.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadOrDefault loads mvvm.json from dir, or returns the defaults when the
// file does not exist.
func LoadOrDefault(dir string) (*Config, error) {
	path := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return New(), nil
	}
	return LoadFile(path)
}

// LoadFile loads and validates a configuration file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E302").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		e := errors.New("E302").
			WithDetail("Failed to parse " + ConfigFileName + ": " + err.Error()).
			WithSuggestion("Check that " + ConfigFileName + " is valid JSON")
		if se, ok := err.(*json.SyntaxError); ok {
			line, col := position(data, se.Offset)
			e.WithLocation(path, line, col)
		}
		return nil, e
	}

	cfg.configPath = path
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// position converts a byte offset into a 1-based line and column.
func position(data []byte, offset int64) (int, int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	before := data[:offset]
	line := strings.Count(string(before), "\n") + 1
	col := int(offset) - strings.LastIndex(string(before), "\n")
	return line, col
}

// Path returns the path the config was loaded from, or "".
func (c *Config) Path() string {
	return c.configPath
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
	if c.Reactive.OnExceeded == "" {
		c.Reactive.OnExceeded = reactive.BudgetModeThrottle.String()
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultMetricsNamespace
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if _, err := c.LogLevel(); err != nil {
		return errors.New("E302").WithDetail("log.level: " + err.Error()).
			WithSuggestion("Use one of debug, info, warn, error")
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return errors.New("E302").WithDetail("log.format must be text or json, got " + strconv.Quote(c.Log.Format))
	}
	if c.Reactive.MaxNotifyDepth < 0 {
		return errors.New("E302").WithDetail("reactive.maxNotifyDepth must not be negative")
	}
	if _, err := reactive.ParseBudgetMode(c.Reactive.OnExceeded); err != nil {
		return errors.New("E302").WithDetail("reactive.onExceeded: " + err.Error()).
			WithSuggestion("Use throttle or panic")
	}
	return nil
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(c.Log.Level))
	return level, err
}

// Logger builds the slog logger described by Log, writing to w.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level, err := c.LogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// NotifyBudget returns the configured notify budget.
func (c *Config) NotifyBudget() reactive.NotifyBudget {
	mode, _ := reactive.ParseBudgetMode(c.Reactive.OnExceeded)
	return reactive.NotifyBudget{MaxDepth: c.Reactive.MaxNotifyDepth, OnExceeded: mode}
}

// ObserverOptions translates the configuration into observer options.
func (c *Config) ObserverOptions(logger *slog.Logger) []reactive.Option {
	opts := []reactive.Option{
		reactive.WithLogger(logger),
		reactive.WithNotifyBudget(c.NotifyBudget()),
	}
	if c.Reactive.AlwaysNotify {
		opts = append(opts, reactive.WithAlwaysNotify())
	}
	return opts
}

// WatcherOptions translates the configuration into watcher options.
func (c *Config) WatcherOptions(logger *slog.Logger) []reactive.WatcherOption {
	opts := []reactive.WatcherOption{reactive.WithWatcherLogger(logger)}
	if c.Reactive.Recover {
		opts = append(opts, reactive.WithRecover())
	}
	return opts
}

// DebugConfig returns the reactive debug switches.
func (c *Config) DebugConfig() reactive.DebugConfig {
	if !c.Reactive.Debug {
		return reactive.DefaultDebugConfig()
	}
	return reactive.DebugConfig{
		LogRegistrations:  true,
		LogNotifications:  true,
		LogWatcherUpdates: true,
	}
}

// Exists reports whether dir contains mvvm.json.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}
