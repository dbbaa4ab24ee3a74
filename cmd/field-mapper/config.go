package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"field-mapper/options"
)

// Config is the CLI configuration read from fieldmapper.yaml, FIELDMAPPER_*
// environment variables and global flags, in increasing priority.
type Config struct {
	Profile  string         `mapstructure:"profile"`
	NoColor  bool           `mapstructure:"no_color"`
	Verbose  bool           `mapstructure:"verbose"`
	Defaults DefaultsConfig `mapstructure:"defaults"`
}

// DefaultsConfig holds behavior flags added to every plan.
type DefaultsConfig struct {
	SkipNull bool `mapstructure:"skip_null"`
	Coerce   bool `mapstructure:"coerce"`
	Unsafe   bool `mapstructure:"unsafe"`
}

// Flags converts the configured defaults into behavior flags.
func (d DefaultsConfig) Flags() options.Flag {
	var f options.Flag

	if d.SkipNull {
		f = f.With(options.SkipNull)
	}

	if d.Coerce {
		f = f.With(options.CoerceNullable)
	}

	if d.Unsafe {
		f = f.With(options.IgnoreTypeConflicts)
	}

	return f
}

// loadConfig reads path, or fieldmapper.yaml in the working directory when
// path is empty. A missing default file is not an error.
func loadConfig(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("profile", "")
	v.SetDefault("no_color", false)
	v.SetDefault("verbose", false)
	v.SetDefault("defaults.skip_null", false)
	v.SetDefault("defaults.coerce", false)
	v.SetDefault("defaults.unsafe", false)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("fieldmapper")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("FIELDMAPPER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range map[string]string{"profile": "profile", "no_color": "no-color", "verbose": "verbose"} {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
