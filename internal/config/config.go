package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file looked up when --config is not given.
const DefaultPath = "mdstream.yaml"

// Config represents the application configuration.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Render  RenderConfig  `yaml:"render"`
	Output  OutputConfig  `yaml:"output"`
	Metrics MetricsConfig `yaml:"metrics"`
	Watch   WatchConfig   `yaml:"watch"`

	// EnvFiles lists the .env files Load found, for logging once the
	// logger exists.
	EnvFiles []EnvFile `yaml:"-"`
}

// LoggingConfig controls the process logger.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// RenderConfig selects how documents are converted.
type RenderConfig struct {
	Engine   Engine   `yaml:"engine"`
	Encoding Encoding `yaml:"encoding"`
}

// OutputConfig represents output configuration. An empty path means stdout.
type OutputConfig struct {
	Path string `yaml:"path,omitempty"`
}

// MetricsConfig enables the Prometheus text file dump when Path is set.
type MetricsConfig struct {
	Path string `yaml:"path,omitempty"`
}

// WatchConfig configures the watch command.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load loads configuration from the specified file. A missing file is not an
// error: the defaults are returned instead. Environment variables from .env
// files are loaded first and ${VAR} references in the file are expanded.
func Load(configPath string) (*Config, error) {
	envFiles := loadEnvFiles()

	data, err := os.ReadFile(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		cfg := Default()
		cfg.EnvFiles = envFiles
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	cfg.EnvFiles = envFiles
	return cfg, nil
}

// Parse decodes a YAML document, expands environment variables, applies
// defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	cfg.Logging.Level = NormalizeLogLevel(string(cfg.Logging.Level))
	cfg.Logging.Format = NormalizeLogFormat(string(cfg.Logging.Format))
	cfg.Render.Engine = NormalizeEngine(string(cfg.Render.Engine))
	if cfg.Render.Engine == "" {
		cfg.Render.Engine = EngineFSM
	}
	cfg.Render.Encoding = NormalizeEncoding(string(cfg.Render.Encoding))
	if cfg.Render.Encoding == "" {
		cfg.Render.Encoding = EncodingAuto
	}
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultDebounce
	}
}
