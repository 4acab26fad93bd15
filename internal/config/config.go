package config

import (
	"fmt"
	"os"

	"github.com/samber/do/v2"
	"github.com/willie68/go_globetiler/configs"
	"github.com/willie68/go_globetiler/internal/generator"
	"github.com/willie68/go_globetiler/internal/journal"
	"github.com/willie68/go_globetiler/internal/logging"
	"github.com/willie68/go_globetiler/internal/tilestore"
	"go.yaml.in/yaml/v3"
)

type Config struct {
	Port        int              `yaml:"port"`
	MaxPlanZoom int              `yaml:"maxplanzoom"`
	Metrics     bool             `yaml:"metrics"`
	Generator   generator.Config `yaml:"generator"`
	Journal     journal.Config   `yaml:"journal"`
	Logging     logging.Config   `yaml:"logging"`
}

var (
	config Config
)

// Option changes a loaded config, e.g. with values from the command line
type Option func(c *Config)

func Get() *Config {
	return &config
}

func JSON() string {
	js, err := config.JSON()
	if err != nil {
		return ""
	}
	return js
}

// Load loads the config
func Load(file string) error {
	_, err := os.Stat(file)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("can't load config file: %w", err)
	}
	return parse(data)
}

// LoadDefault loads the embedded default config
func LoadDefault() error {
	return parse([]byte(configs.ConfigFile))
}

func parse(data []byte) error {
	c := Config{
		MaxPlanZoom: 10,
		Generator:   generator.DefaultConfig(),
	}
	err := yaml.Unmarshal(data, &c)
	if err != nil {
		return fmt.Errorf("can't unmarshal config file: %w", err)
	}
	config = c
	return nil
}

// SetParameter applies the options to the loaded config
func SetParameter(opts ...Option) {
	for _, opt := range opts {
		opt(&config)
	}
}

// WithPort overwrites the port, if p > 0
func WithPort(p int) Option {
	return func(c *Config) {
		if p > 0 {
			c.Port = p
		}
	}
}

// WithZoom overwrites the zoom levels, if z is not empty
func WithZoom(z string) Option {
	return func(c *Config) {
		if z != "" {
			c.Generator.Zoom = z
		}
	}
}

// WithTimed switches the time prefix on, if set
func WithTimed(t bool) Option {
	return func(c *Config) {
		if t {
			c.Generator.Timed = true
		}
	}
}

// WithSkipExisting switches the skipping of rendered tiles on, if set
func WithSkipExisting(s bool) Option {
	return func(c *Config) {
		if s {
			c.Generator.SkipExisting = true
		}
	}
}

func Init(inj do.Injector) {
	do.ProvideValue(inj, &config)
	do.ProvideValue(inj, &config.Generator)
	do.ProvideValue(inj, &config.Journal)
	do.ProvideValue(inj, &config.Logging)
	do.ProvideValue(inj, &tilestore.Config{
		Path:   config.Generator.Output,
		Active: config.Generator.SkipExisting,
	})

	ver := NewVersion()
	do.ProvideValue(inj, *ver)
}

// PlanZoomLimit the highest zoom level the http server serves plans for
func (c *Config) PlanZoomLimit() int {
	return c.MaxPlanZoom
}

func (c *Config) MetricsActive() bool {
	return c.Metrics
}

func (c *Config) JSON() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("can't marshal config to json: %w", err)
	}
	return string(data), nil
}
