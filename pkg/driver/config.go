package driver

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix namespaces the environment overrides, e.g. XSLANG_MAX_DEPTH.
const EnvPrefix = "XSLANG_"

// ColorMode selects when diagnostics are coloured.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Config holds the settings of one run, read from xslang.yml and the
// environment.
type Config struct {
	Path     string    `yaml:"-"`
	Lazy     bool      `yaml:"lazy"`
	MaxDepth int       `yaml:"max_depth"`
	MaxSteps int       `yaml:"max_steps"`
	LogLevel string    `yaml:"log_level"`
	Color    ColorMode `yaml:"color"`
	Programs []string  `yaml:"programs"`
}

// ValidationError aggregates configuration failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel: "warn",
		Color:    ColorAuto,
	}
}

// LoadConfig parses a YAML config file on top of the defaults. Unknown keys
// are rejected. Relative program paths are resolved against the file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	cfg := DefaultConfig()
	if err := decoder.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("config: %s is empty", absPath)
		}
		return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
	}
	cfg.Path = absPath
	base := filepath.Dir(absPath)
	for i, program := range cfg.Programs {
		if program != "" && !filepath.IsAbs(program) {
			cfg.Programs[i] = filepath.Join(base, program)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set. A missing file is not
// an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("config: load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields from XSLANG_* variables. lookup defaults to
// os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	var errs ValidationError
	if v, ok := lookup(EnvPrefix + "LAZY"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs.Issues = append(errs.Issues, fmt.Sprintf("%sLAZY: %v", EnvPrefix, err))
		} else {
			c.Lazy = b
		}
	}
	for _, field := range []struct {
		name string
		dst  *int
	}{
		{"MAX_DEPTH", &c.MaxDepth},
		{"MAX_STEPS", &c.MaxSteps},
	} {
		v, ok := lookup(EnvPrefix + field.name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			errs.Issues = append(errs.Issues, fmt.Sprintf("%s%s: %v", EnvPrefix, field.name, err))
			continue
		}
		*field.dst = n
	}
	if v, ok := lookup(EnvPrefix + "LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvPrefix + "COLOR"); ok {
		c.Color = ColorMode(strings.ToLower(v))
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return c.Validate()
}

func (c *Config) Validate() error {
	var errs ValidationError
	if c.MaxDepth < 0 {
		errs.Issues = append(errs.Issues, "max_depth must not be negative")
	}
	if c.MaxSteps < 0 {
		errs.Issues = append(errs.Issues, "max_steps must not be negative")
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		errs.Issues = append(errs.Issues, err.Error())
	}
	switch c.Color {
	case "", ColorAuto, ColorAlways, ColorNever:
	default:
		errs.Issues = append(errs.Issues, fmt.Sprintf("color must be one of auto, always, never (got %q)", c.Color))
	}
	for i, program := range c.Programs {
		if strings.TrimSpace(program) == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("programs[%d] must be a non-empty path", i))
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// SlogLevel converts LogLevel for a slog handler.
func (c *Config) SlogLevel() slog.Level {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelWarn
	}
	return level
}

func parseLevel(name string) (slog.Level, error) {
	if name == "" {
		return slog.LevelWarn, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("log_level %q is not one of debug, info, warn, error", name)
	}
	return level, nil
}
