// Package config loads the settings of the fin command: defaults, then an
// optional configuration file, then FIN_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables read by Load, e.g. FIN_DATA_DIR.
const EnvPrefix = "FIN"

// Keys, as written in configuration files.
const (
	KeyDataDir    = "data_dir"
	KeyReportsDir = "reports_dir"
	KeyLogLevel   = "log_level"
)

// Config holds the fin settings.
type Config struct {
	DataDir    string // folder of the users index and the account records
	ReportsDir string // folder where report files are saved
	LogLevel   string // debug, info, warn or error
	File       string // configuration file used, "" if none
}

// Load builds the configuration. If file is empty, "fin.{yaml,json,toml,env}"
// is looked up in the working directory then in $HOME/.config/fin, and a
// missing file is not an error.
func Load(file string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("fin")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "fin"))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("could not read configuration file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv() // FIN_DATA_DIR overrides data_dir

	cfg := &Config{
		DataDir:    v.GetString(KeyDataDir),
		ReportsDir: v.GetString(KeyReportsDir),
		LogLevel:   strings.ToLower(v.GetString(KeyLogLevel)),
		File:       v.ConfigFileUsed(),
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyDataDir, "data")
	v.SetDefault(KeyReportsDir, "reports")
	v.SetDefault(KeyLogLevel, "warn")
}

// Validate checks every setting and reports all the problems at once.
func (c *Config) Validate() error {
	var errs []error
	if c.DataDir == "" {
		errs = append(errs, errors.New(KeyDataDir+" is required"))
	}
	if c.ReportsDir == "" {
		errs = append(errs, errors.New(KeyReportsDir+" is required"))
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("%s %q must be one of debug, info, warn, error", KeyLogLevel, c.LogLevel))
	}
	return errors.Join(errs...)
}
