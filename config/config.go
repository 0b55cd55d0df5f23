package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

type Config struct {
	Reference Reference `yaml:"reference"`
	HTTP      HTTP      `yaml:"http"`
	Log       Log       `yaml:"log"`
	Samples   Samples   `yaml:"samples"`
	Logging   Logging   `yaml:"logging"`
}

type Reference struct {
	// Name labels reference values in the reports.
	Name      string `yaml:"name" validate:"required"`
	URL       string `yaml:"url" validate:"required,url"`
	UserAgent string `yaml:"user_agent"`
}

type HTTP struct {
	// Timeout of 0 leaves the client without a deadline.
	Timeout time.Duration `yaml:"timeout" validate:"gte=0s"`
}

type Log struct {
	Path string `yaml:"path" validate:"required"`
}

type Samples struct {
	Week  int `yaml:"week" validate:"gte=1"`
	Month int `yaml:"month" validate:"gte=1"`
}

type Logging struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
	File  string `yaml:"file"`
}

// Load decodes raw yaml and applies WEATHERLOG_* environment overrides,
// reading a .env file from the working directory first when one exists.
// The result is not validated; call Validate once every override is in.
func Load(raw []byte, envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{}

	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.Reference.URL = getenvDefault("WEATHERLOG_REFERENCE_URL", cfg.Reference.URL)
	cfg.Reference.UserAgent = getenvDefault("WEATHERLOG_USER_AGENT", cfg.Reference.UserAgent)
	cfg.Log.Path = getenvDefault("WEATHERLOG_LOG_PATH", cfg.Log.Path)
	cfg.Logging.Level = getenvDefault("WEATHERLOG_LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.File = getenvDefault("WEATHERLOG_LOG_FILE", cfg.Logging.File)

	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
