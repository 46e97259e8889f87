package gen

import (
	"errors"
	"go/token"
)

// Config holds the generator configuration shared by the graph types.
type Config struct {
	// Package is the name of the generated Go binding package.
	Package string
	// Header is an optional comment written at the top of generated files.
	Header string
	// Placeholders are the sample literals of string and id defaults.
	Placeholders Placeholders
}

// DefaultPackage is the package name of generated Go bindings.
const DefaultPackage = "bindings"

// Option configures code generation.
type Option func(*Config) error

// WithPackage sets the package name of the generated Go bindings.
func WithPackage(pkg string) Option {
	return func(c *Config) error {
		if !token.IsIdentifier(pkg) {
			return NewConfigError("Package", pkg, "package must be a valid Go identifier")
		}
		c.Package = pkg
		return nil
	}
}

// WithHeader sets the file header comment.
// The header is added at the top of each generated file.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithPlaceholders sets the sample literals used as defaults of string
// and id values.
func WithPlaceholders(str, id string) Option {
	return func(c *Config) error {
		if str == "" || id == "" {
			return NewConfigError("Placeholders", nil, "placeholders cannot be empty")
		}
		c.Placeholders = Placeholders{String: str, ID: id}
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{
		Package:      DefaultPackage,
		Placeholders: DefaultPlaceholders,
	}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}
