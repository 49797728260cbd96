// Package config loads the docfill settings file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by the CLI and the web server. Zero
// values in a loaded file keep their defaults.
type Config struct {
	Listen      string   `yaml:"listen" validate:"required"`
	OutputDir   string   `yaml:"outputDir" validate:"required"`
	Sheet       string   `yaml:"sheet" validate:"required"`
	Column      string   `yaml:"column" validate:"required,alpha,max=3"`
	Reader      string   `yaml:"reader" validate:"oneof=unioffice excelize"`
	MaxUploadMB int64    `yaml:"maxUploadMB" validate:"min=1,max=1024"`
	LogLevel    string   `yaml:"logLevel" validate:"oneof=debug info warn error"`
	S3          S3Config `yaml:"s3"`
}

// S3Config enables uploading results to a bucket in addition to the local
// output directory. An empty Bucket disables it.
type S3Config struct {
	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix" validate:"excluded_without=Bucket"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Listen:      ":8080",
		OutputDir:   ".",
		Sheet:       "Заявка",
		Column:      "B",
		Reader:      "unioffice",
		MaxUploadMB: 32,
		LogLevel:    "info",
	}
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks every field and reports all failures at once.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed on '%s' (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return errors.New(strings.Join(msgs, "; "))
}

// SlogLevel maps LogLevel to a slog level. Unknown values map to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// MaxUploadBytes is MaxUploadMB in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}
