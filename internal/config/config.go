// Package config loads linter settings from an optional .zuulint.yaml
// file, ZUULINT_* environment variables and built-in defaults. Flags on
// the command line take precedence over everything here.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds every setting a .zuulint.yaml file can carry.
type Config struct {
	// Schema is the path to a JSON schema file; empty selects the
	// embedded default schema.
	Schema string `mapstructure:"schema"`

	// CheckPlaybookPaths enables the playbook path existence check.
	CheckPlaybookPaths bool `mapstructure:"check_playbook_paths"`

	// IgnoreWarnings suppresses warning output.
	IgnoreWarnings bool `mapstructure:"ignore_warnings"`

	// WarningsAsErrors promotes warnings to errors and takes precedence
	// over IgnoreWarnings.
	WarningsAsErrors bool `mapstructure:"warnings_as_errors"`

	// Exclude lists doublestar patterns of files to skip during
	// discovery.
	Exclude []string `mapstructure:"exclude"`
}

// Load reads configuration from the given file, or from .zuulint.yaml in
// dir when file is empty. A missing config file is not an error; an
// unreadable or malformed one is.
func Load(file, dir string) (*Config, error) {
	v := viper.New()
	v.SetDefault("schema", "")
	v.SetDefault("check_playbook_paths", false)
	v.SetDefault("ignore_warnings", false)
	v.SetDefault("warnings_as_errors", false)
	v.SetDefault("exclude", []string{})

	v.SetEnvPrefix("zuulint")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(".zuulint")
		v.SetConfigType("yaml")
		if dir == "" {
			dir = "."
		}
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// An explicit --config that cannot be read is always an error;
		// the implicit .zuulint.yaml is optional.
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("cannot read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
