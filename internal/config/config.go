// Package config defines the data structures of a diet problem file and
// includes functions for loading, validating and converting it into solver
// input.
package config

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variables that override file values, e.g.
// DIET_OUTPUT_FORMAT=csv.
const EnvPrefix = "DIET"

// DefaultScenarioName names the implicit scenario of a file without any.
const DefaultScenarioName = "default"

// Configuration holds a complete diet problem definition.
type Configuration struct {
	Logging    LoggingConfig     `yaml:"logging,omitempty" mapstructure:"logging"`
	Output     OutputConfig      `yaml:"output,omitempty" mapstructure:"output"`
	Goods      []GoodConfig      `yaml:"goods" mapstructure:"goods" validate:"required,min=1,dive"`
	Attributes []AttributeConfig `yaml:"attributes" mapstructure:"attributes" validate:"dive"`
	Scenarios  []Scenario        `yaml:"scenarios,omitempty" mapstructure:"scenarios" validate:"dive"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" mapstructure:"level"`           // debug, info, warn, error
	Format     string `yaml:"format,omitempty" mapstructure:"format"`         // json, console
	OutputFile string `yaml:"outputFile,omitempty" mapstructure:"outputFile"` // optional file output
	MaxSizeMB  int    `yaml:"maxSizeMB,omitempty" mapstructure:"maxSizeMB"`
	MaxBackups int    `yaml:"maxBackups,omitempty" mapstructure:"maxBackups"`
	MaxAgeDays int    `yaml:"maxAgeDays,omitempty" mapstructure:"maxAgeDays"`
	Compress   bool   `yaml:"compress,omitempty" mapstructure:"compress"`
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty" mapstructure:"format"` // pretty, csv, json
}

// GoodConfig is one purchasable good with its unit cost and per-unit
// attribute yields.
type GoodConfig struct {
	Name   string             `yaml:"name" mapstructure:"name" validate:"required"`
	Cost   float64            `yaml:"cost" mapstructure:"cost"`
	Yields map[string]float64 `yaml:"yields,omitempty" mapstructure:"yields"`
}

// AttributeConfig declares an attribute and its optional bounds.
type AttributeConfig struct {
	Name string   `yaml:"name" mapstructure:"name" validate:"required"`
	Min  *float64 `yaml:"min,omitempty" mapstructure:"min"`
	Max  *float64 `yaml:"max,omitempty" mapstructure:"max"`
}

// BoundOverride replaces one or both bounds of an attribute in a scenario.
type BoundOverride struct {
	Min *float64 `yaml:"min,omitempty" mapstructure:"min"`
	Max *float64 `yaml:"max,omitempty" mapstructure:"max"`
}

// Scenario is a variation of the base problem.
type Scenario struct {
	Name         string                   `yaml:"name" mapstructure:"name" validate:"required"`
	Active       bool                     `yaml:"active" mapstructure:"active"`
	Bounds       map[string]BoundOverride `yaml:"bounds,omitempty" mapstructure:"bounds"`
	ClearMin     []string                 `yaml:"clearMin,omitempty" mapstructure:"clearMin"`
	ClearMax     []string                 `yaml:"clearMax,omitempty" mapstructure:"clearMax"`
	ExcludeGoods []string                 `yaml:"excludeGoods,omitempty" mapstructure:"excludeGoods"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// problem definition there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads a YAML (or JSON) problem definition from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("error reading config data, document is empty")
	}

	v := newViper()
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	if err := configuration.Validate(); err != nil {
		return nil, err
	}
	return &configuration, nil
}

// Validate checks the structural requirements of the configuration. Numeric
// checks on costs, yields and bounds are left to the model builder.
func (c *Configuration) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// ActiveScenarios returns the scenarios to solve, in file order. A file with
// no scenarios yields a single default scenario.
func (c *Configuration) ActiveScenarios() []Scenario {
	if len(c.Scenarios) == 0 {
		return []Scenario{{Name: DefaultScenarioName, Active: true}}
	}
	var active []Scenario
	for _, s := range c.Scenarios {
		if s.Active {
			active = append(active, s)
		}
	}
	return active
}

// AttributeNames returns the declared attribute names in file order.
func (c *Configuration) AttributeNames() []string {
	names := make([]string, len(c.Attributes))
	for i, a := range c.Attributes {
		names[i] = a.Name
	}
	return names
}
