// Package config loads the objfeat configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/philipparndt/objfeat/internal/history"
	"github.com/philipparndt/objfeat/pkg/analysis"
)

// ErrUnsupportedFormat is returned for files that are neither YAML nor TOML.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Defaults.
const (
	DefaultDebounce          = 200 * time.Millisecond
	DefaultClassifierTimeout = 30 * time.Second
)

// Config is the on-disk configuration. Durations are written as Go
// duration strings ("250ms", "1m").
type Config struct {
	HistoryFile string                      `yaml:"history_file" toml:"history_file"`
	Watch       WatchConfig                 `yaml:"watch" toml:"watch"`
	Classifier  ClassifierConfig            `yaml:"classifier" toml:"classifier"`
	Profile     analysis.RequirementProfile `yaml:"profile" toml:"profile"`

	debounce time.Duration
	timeout  time.Duration
}

// WatchConfig configures `objfeat watch`.
type WatchConfig struct {
	Debounce string `yaml:"debounce" toml:"debounce"`
}

// ClassifierConfig names the external classifier program.
type ClassifierConfig struct {
	Command string   `yaml:"command" toml:"command"`
	Args    []string `yaml:"args" toml:"args"`
	WorkDir string   `yaml:"work_dir" toml:"work_dir"`
	Timeout string   `yaml:"timeout" toml:"timeout"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Watch:      WatchConfig{Debounce: DefaultDebounce.String()},
		Classifier: ClassifierConfig{Timeout: DefaultClassifierTimeout.String()},
		debounce:   DefaultDebounce,
		timeout:    DefaultClassifierTimeout,
	}
}

// Load reads path over the defaults. An empty path returns Default().
// The format is chosen by extension: .yaml, .yml or .toml.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case ".toml":
		meta, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("failed to parse %s: unknown key %s", path, undecoded[0])
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	if err := cfg.resolve(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) resolve() error {
	d, err := parseDuration("watch.debounce", c.Watch.Debounce, DefaultDebounce)
	if err != nil {
		return err
	}
	c.debounce = d

	t, err := parseDuration("classifier.timeout", c.Classifier.Timeout, DefaultClassifierTimeout)
	if err != nil {
		return err
	}
	c.timeout = t
	return nil
}

func parseDuration(key, value string, fallback time.Duration) (time.Duration, error) {
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s: negative duration %s", key, value)
	}
	return d, nil
}

// Debounce returns the parsed watch debounce.
func (c *Config) Debounce() time.Duration {
	return c.debounce
}

// ClassifierTimeout returns the parsed classifier timeout. Zero means no
// limit.
func (c *Config) ClassifierTimeout() time.Duration {
	return c.timeout
}

// HistoryPath returns the configured history file or the default location.
func (c *Config) HistoryPath() (string, error) {
	if c.HistoryFile != "" {
		return expandHome(c.HistoryFile)
	}
	return history.DefaultPath()
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to expand %s: %w", path, err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
