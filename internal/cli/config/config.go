/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package config loads facadectl settings from facadectl.yaml, FACADECTL_*
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// Config represents the facadectl configuration.
type Config struct {
	// Model is the path of the YAML model document to inspect.
	Model string `mapstructure:"model"`
	// LogLevel is a zap level name: debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`
	// NoColor disables ANSI colors in output.
	NoColor bool `mapstructure:"no_color"`
	// NonPublic includes non-public and static members when listing.
	NonPublic bool `mapstructure:"non_public"`
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Load reads the configuration. file may be empty, in which case
// facadectl.yaml is searched for in the working directory and its absence is
// not an error. flags, when non-nil, override file and environment values
// for the flags the user actually set.
func Load(file string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("model", "model.yaml")
	v.SetDefault("log_level", "warn")
	v.SetDefault("no_color", false)
	v.SetDefault("non_public", false)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("facadectl")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("FACADECTL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for _, key := range []string{"model", "log-level", "no-color", "non-public"} {
			if f := flags.Lookup(key); f != nil {
				if err := v.BindPFlag(strings.ReplaceAll(key, "-", "_"), f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", key, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Level returns the parsed log level.
func (c *Config) Level() zapcore.Level {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return zapcore.WarnLevel
	}
	return lvl
}

func validate(cfg *Config) error {
	if strings.TrimSpace(cfg.Model) == "" {
		return fmt.Errorf("%w: model must not be empty", ErrInvalid)
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return fmt.Errorf("%w: log_level %q: %w", ErrInvalid, cfg.LogLevel, err)
	}
	return nil
}
