// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/viper"

	"github.com/iwvelando/loss-mitigation/pkg/constants"
	"github.com/iwvelando/loss-mitigation/pkg/validation"
)

// Configuration holds all configuration for loss-mitigation.
type Configuration struct {
	Logging   LoggingConfig   `mapstructure:"logging" yaml:"logging,omitempty"`
	Output    OutputConfig    `mapstructure:"output" yaml:"output,omitempty"`
	Server    ServerConfig    `mapstructure:"server" yaml:"server,omitempty"`
	Facts     FactsConfig     `mapstructure:"facts" yaml:"facts,omitempty"`
	Composite CompositeConfig `mapstructure:"composite" yaml:"composite,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level,omitempty"`           // debug, info, warn, error
	Format     string `mapstructure:"format" yaml:"format,omitempty"`         // json, console
	OutputFile string `mapstructure:"outputFile" yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format,omitempty"` // pretty, csv, json
}

// ServerConfig holds HTTP server options
type ServerConfig struct {
	Address     string `mapstructure:"address" yaml:"address,omitempty"`
	MaxBodySize string `mapstructure:"maxBodySize" yaml:"maxBodySize,omitempty"` // e.g. 256K, 1M
}

// FactsConfig selects where default borrower facts are read from.
type FactsConfig struct {
	Backend        string `mapstructure:"backend" yaml:"backend,omitempty"` // none, file, redis
	Directory      string `mapstructure:"directory" yaml:"directory,omitempty"`
	RedisAddress   string `mapstructure:"redisAddress" yaml:"redisAddress,omitempty"`
	RedisPassword  string `mapstructure:"redisPassword" yaml:"redisPassword,omitempty"`
	RedisDB        int    `mapstructure:"redisDB" yaml:"redisDB,omitempty"`
	RedisKeyPrefix string `mapstructure:"redisKeyPrefix" yaml:"redisKeyPrefix,omitempty"`
}

// CompositeConfig tunes workout evaluations.
type CompositeConfig struct {
	Parallel bool `mapstructure:"parallel" yaml:"parallel"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("server.address", constants.DefaultServerAddress)
	v.SetDefault("server.maxBodySize", fmt.Sprintf("%d", constants.DefaultMaxBodySizeBytes))
	v.SetDefault("facts.backend", constants.FactBackendNone)
	v.SetDefault("facts.directory", "")
	v.SetDefault("facts.redisAddress", "")
	v.SetDefault("facts.redisPassword", "")
	v.SetDefault("facts.redisDB", 0)
	v.SetDefault("facts.redisKeyPrefix", constants.DefaultRedisKeyPrefix)
	v.SetDefault("composite.parallel", true)
	return v
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. An empty path yields the defaults with environment
// overrides applied.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file, %s", err)
		}
	}
	return unmarshal(v)
}

// LoadConfigurationFromReader loads YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config, %s", err)
	}
	return unmarshal(v)
}

func unmarshal(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		warnings = append(warnings, fmt.Sprintf("unknown logging level %q", c.Logging.Level))
	}

	if c.Output.Format != "" {
		if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
			warnings = append(warnings, err.Error())
		}
	}

	switch c.Facts.Backend {
	case "", constants.FactBackendNone:
	case constants.FactBackendFile:
		if c.Facts.Directory == "" {
			warnings = append(warnings, "facts backend is file but no facts directory is set; evaluations will use request values only")
		}
	case constants.FactBackendRedis:
		if c.Facts.RedisAddress == "" {
			warnings = append(warnings, "facts backend is redis but no redis address is set; evaluations will use request values only")
		}
	default:
		warnings = append(warnings, fmt.Sprintf("unknown facts backend %q; the fact source cannot be created and evaluating commands will fail to start", c.Facts.Backend))
	}

	return warnings
}
