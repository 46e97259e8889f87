// Package config provides loading and validation of the indexschema tool
// configuration.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/syssam/indexschema"
	"github.com/syssam/indexschema/compiler/gen"
)

// Config is the root configuration structure.
type Config struct {
	// Schemas lists the schema files to compile.
	Schemas      []string           `yaml:"schemas"`
	Output       OutputConfig       `yaml:"output"`
	Placeholders PlaceholdersConfig `yaml:"placeholders"`
	Database     DatabaseConfig     `yaml:"database"`
	Logging      LoggingConfig      `yaml:"logging"`
}

// OutputConfig configures the compile outputs.
type OutputConfig struct {
	Dir     string `yaml:"dir"`
	Format  string `yaml:"format"`  // "json" or "msgpack"
	Package string `yaml:"package"` // Go binding package name
	Header  string `yaml:"header,omitempty"`
	// Bindings enables the generated Go binding file.
	Bindings bool `yaml:"bindings"`
}

// PlaceholdersConfig sets the sample literals of string and id defaults.
type PlaceholdersConfig struct {
	String string `yaml:"string"`
	ID     string `yaml:"id"`
}

// DatabaseConfig configures the PostgreSQL database used by migrate.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "console"
}

// Load reads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, indexschema.WrapError(indexschema.CodeReadFile, "read config "+path, err)
	}

	// Expand environment variables
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, indexschema.WrapError(indexschema.CodeInvalidConfig, "parse config "+path, err)
	}
	return finish(&cfg)
}

// LoadFromEnv creates configuration entirely from environment variables.
//
// Environment variables:
//
//	INDEXSCHEMA_SCHEMAS         - Comma separated schema files
//	INDEXSCHEMA_OUTPUT_DIR      - Output directory (default: generated)
//	INDEXSCHEMA_OUTPUT_FORMAT   - Graph encoding: json or msgpack (default: json)
//	INDEXSCHEMA_OUTPUT_PACKAGE  - Go binding package (default: bindings)
//	INDEXSCHEMA_OUTPUT_BINDINGS - Generate Go bindings (default: false)
//	INDEXSCHEMA_DATABASE_DSN    - PostgreSQL connection string
//	INDEXSCHEMA_LOG_LEVEL       - Log level: debug, info, warn, error (default: info)
//	INDEXSCHEMA_LOG_FORMAT      - Log format: json or console (default: console)
func LoadFromEnv() (*Config, error) {
	return finish(&Config{})
}

// LoadWithFallback loads the file at path if it exists, and the environment
// otherwise.
func LoadWithFallback(path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return LoadFromEnv()
}

func finish(cfg *Config) (*Config, error) {
	applyEnvOverrides(cfg)
	setDefaults(cfg)
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies INDEXSCHEMA_* environment variables to the config.
// Environment variables always override file-based configuration.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("INDEXSCHEMA_SCHEMAS"); v != "" {
		cfg.Schemas = nil
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.Schemas = append(cfg.Schemas, p)
			}
		}
	}

	// Output configuration
	if v := os.Getenv("INDEXSCHEMA_OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("INDEXSCHEMA_OUTPUT_FORMAT"); v != "" {
		cfg.Output.Format = v
	}
	if v := os.Getenv("INDEXSCHEMA_OUTPUT_PACKAGE"); v != "" {
		cfg.Output.Package = v
	}
	if v := os.Getenv("INDEXSCHEMA_OUTPUT_BINDINGS"); v != "" {
		cfg.Output.Bindings = parseBool(v)
	}

	if v := os.Getenv("INDEXSCHEMA_DATABASE_DSN"); v != "" {
		cfg.Database.DSN = v
	}

	// Logging configuration
	if v := os.Getenv("INDEXSCHEMA_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("INDEXSCHEMA_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}

// parseBool parses a boolean from common string values.
func parseBool(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "true" || v == "1" || v == "yes" || v == "on"
}

func setDefaults(cfg *Config) {
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "generated"
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = string(gen.FormatJSON)
	}
	if cfg.Output.Package == "" {
		cfg.Output.Package = gen.DefaultPackage
	}
	if cfg.Placeholders.String == "" {
		cfg.Placeholders.String = gen.DefaultPlaceholders.String
	}
	if cfg.Placeholders.ID == "" {
		cfg.Placeholders.ID = gen.DefaultPlaceholders.ID
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
}

func validate(cfg *Config) error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, indexschema.Errorf(indexschema.CodeInvalidConfig, format, args...))
	}
	for i, p := range cfg.Schemas {
		if strings.TrimSpace(p) == "" {
			invalid("schemas[%d] is empty", i)
		}
	}
	if _, err := gen.ParseFormat(cfg.Output.Format); err != nil {
		invalid("output.format must be 'json' or 'msgpack', got %q", cfg.Output.Format)
	}
	if _, err := zerolog.ParseLevel(cfg.Logging.Level); err != nil {
		invalid("logging.level %q is invalid", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" && cfg.Logging.Format != "console" {
		invalid("logging.format must be 'json' or 'console', got %q", cfg.Logging.Format)
	}
	if _, err := gen.NewConfig(cfg.GenOptions()...); err != nil {
		invalid("%v", err)
	}
	return indexschema.NewAggregateError(errs...)
}

// GenOptions returns the graph options of the configuration.
func (c *Config) GenOptions() []gen.Option {
	opts := []gen.Option{
		gen.WithPackage(c.Output.Package),
		gen.WithPlaceholders(c.Placeholders.String, c.Placeholders.ID),
	}
	if c.Output.Header != "" {
		opts = append(opts, gen.WithHeader(c.Output.Header))
	}
	return opts
}

// Format returns the graph encoding of the output.
func (c *Config) Format() gen.Format {
	return gen.Format(c.Output.Format)
}

// Logger returns a stderr logger per the logging configuration.
func (c *Config) Logger() zerolog.Logger {
	level, err := zerolog.ParseLevel(c.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	var logger zerolog.Logger
	if c.Logging.Format == "json" {
		logger = zerolog.New(os.Stderr)
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return logger.Level(level).With().Timestamp().Logger()
}

// String returns the configuration as YAML.
func (c *Config) String() string {
	out, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("%+v", *c)
	}
	return string(out)
}
