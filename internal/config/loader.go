package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Loader reads the tagloader config file.
type Loader struct {
	v         *viper.Viper
	validator *Validator
}

// NewLoader creates a new configuration loader.
func NewLoader() (*Loader, error) {
	validator, err := NewValidator()
	if err != nil {
		return nil, err
	}
	return &Loader{v: viper.New(), validator: validator}, nil
}

// Load reads, validates and decodes the config file at configFile.
// A missing file is not an error: an empty Config is returned.
// Environment variables are applied later by the resolver so each value's
// source can be reported.
func (l *Loader) Load(configFile string) (*Config, error) {
	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return nil, fmt.Errorf("expanding config path: %w", err)
	}

	data, err := os.ReadFile(expandedPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := l.validator.Validate(data, expandedPath); err != nil {
		return nil, err
	}

	l.v.SetConfigType("yaml")
	if err := l.v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	rules, err := ParseRules(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", expandedPath, err)
	}
	cfg.Rules = rules

	return &cfg, nil
}

// LoadDotEnv loads .env files (default: ./.env) into the process environment
// without overriding variables that are already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

// ConfigFileExists checks if the config file exists.
func ConfigFileExists(configFile string) (bool, error) {
	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(expandedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}
