package config

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/modules"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "vtree.json"

	// DefaultAddr is the default live server address.
	DefaultAddr = "localhost:7070"

	// DefaultTitle is the default live page title.
	DefaultTitle = "vtree"

	// DefaultMetricsPath is the default metrics endpoint.
	DefaultMetricsPath = "/metrics"

	// DefaultMetricsNamespace is the default Prometheus namespace.
	DefaultMetricsNamespace = "vtree"
)

var (
	logLevels = map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	logFormats = []string{"text", "json"}
)

// Config represents the complete vtree.json configuration.
type Config struct {
	// Addr is the live server listen address.
	Addr string `json:"addr,omitempty"`

	// Title is the live page title.
	Title string `json:"title,omitempty"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `json:"logLevel,omitempty"`

	// LogFormat is text or json.
	LogFormat string `json:"logFormat,omitempty"`

	// Modules lists the reconciler modules in hook order.
	Modules []string `json:"modules,omitempty"`

	// Watch lists tree files the live server reloads on change.
	Watch []string `json:"watch,omitempty"`

	// Metrics configures the Prometheus endpoint.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// MetricsConfig configures the metrics module and endpoint.
type MetricsConfig struct {
	// Namespace is the Prometheus metric namespace.
	Namespace string `json:"namespace,omitempty"`

	// Path is the HTTP path serving the metrics. Empty disables it.
	Path string `json:"path,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads vtree.json from dir. A directory without one yields the
// defaults.
func Load(dir string) (*Config, error) {
	if !Exists(dir) {
		return New(), nil
	}
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E203").
				WithLocation(path, 0, 0).
				WithSuggestion("Create " + ConfigFileName + " or omit --config to use the defaults")
		}
		return nil, errors.New("E200").WithLocation(path, 0, 0).Wrap(err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E200").
			WithLocation(path, 0, 0).
			WithDetail("Failed to parse " + ConfigFileName + ": " + err.Error()).
			WithSuggestion("Check that " + ConfigFileName + " is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// LoadFromDir walks up from startDir to the first directory holding
// vtree.json and loads it. Defaults are returned when none is found.
func LoadFromDir(startDir string) (*Config, error) {
	root, err := FindProjectRoot(startDir)
	if err != nil {
		return New(), nil
	}
	return Load(root)
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E200").Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.New("E301").WithLocation(path, 0, 0).Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.Title == "" {
		c.Title = DefaultTitle
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}
	if len(c.Modules) == 0 {
		c.Modules = append([]string(nil), modules.DefaultNames...)
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultMetricsNamespace
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, ok := logLevels[strings.ToLower(c.LogLevel)]; !ok {
		return c.invalid("logLevel", c.LogLevel, "debug, info, warn or error")
	}
	if !contains(logFormats, strings.ToLower(c.LogFormat)) {
		return c.invalid("logFormat", c.LogFormat, "text or json")
	}
	if !strings.HasPrefix(c.Metrics.Path, "/") {
		return c.invalid("metrics.path", c.Metrics.Path, "a path starting with /")
	}

	seen := make(map[string]bool, len(c.Modules))
	for _, name := range c.Modules {
		if !modules.Known(name) {
			return errors.New("E201").
				WithLocation(c.configPath, 0, 0).
				WithDetail("Module " + quote(name) + " is not provided by vtree.").
				WithSuggestion("Use one of: " + strings.Join(modules.Names(), ", "))
		}
		if seen[name] {
			return c.invalid("modules", name, "each module at most once")
		}
		seen[name] = true
	}
	return nil
}

func (c *Config) invalid(field, value, allowed string) error {
	err := errors.New("E202").
		WithDetail(field + " is " + quote(value) + ".").
		WithSuggestion("Set " + field + " to " + allowed)
	if c.configPath != "" {
		err.WithLocation(c.configPath, 0, 0)
	}
	return err
}

// SlogLevel returns the configured log level.
func (c *Config) SlogLevel() slog.Level {
	if level, ok := logLevels[strings.ToLower(c.LogLevel)]; ok {
		return level
	}
	return slog.LevelInfo
}

// Logger builds a logger writing to w in the configured format.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.SlogLevel()}
	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// WatchPaths returns the watched files, relative ones resolved against the
// config directory.
func (c *Config) WatchPaths() []string {
	paths := make([]string, 0, len(c.Watch))
	for _, p := range c.Watch {
		if !filepath.IsAbs(p) && c.Dir() != "" {
			p = filepath.Join(c.Dir(), p)
		}
		paths = append(paths, p)
	}
	return paths
}

// HasModule reports whether name is among the configured modules.
func (c *Config) HasModule(name string) bool {
	return contains(c.Modules, name)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing vtree.json, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E203").
				WithDetail("No " + ConfigFileName + " found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func quote(s string) string {
	return `"` + s + `"`
}
