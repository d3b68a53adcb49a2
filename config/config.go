// Package config holds the settings for a test run: where each site lives, how requests are
// made, and how quarantined tests are treated.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Sites holds the base URL of every site under test. Overriding one makes it possible to check
// a staging deployment, or a local stub, instead of the live site.
type Sites struct {
	Registry     string `yaml:"registry"`
	RegistryAPI  string `yaml:"registry_api"`
	Dashboard    string `yaml:"dashboard"`
	Standard     string `yaml:"standard"`
	DatastoreAPI string `yaml:"datastore_api"`
	QueryBuilder string `yaml:"query_builder"`
	Validator    string `yaml:"validator"`
}

// Config holds all configuration for a run
type Config struct {
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
	Strict    bool          `yaml:"strict"`
	Sites     Sites         `yaml:"sites"`
}

// Flags holds command-line overrides. Zero values mean "not specified".
type Flags struct {
	ConfigPath string
	Timeout    time.Duration
	Strict     bool
}

// New creates a Config with defaults
func New() *Config {
	return &Config{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
		Sites: Sites{
			Registry:     DefaultRegistryURL,
			RegistryAPI:  DefaultRegistryURL,
			Dashboard:    DefaultDashboardURL,
			Standard:     DefaultStandardURL,
			DatastoreAPI: DefaultDatastoreAPIURL,
			QueryBuilder: DefaultQueryBuilderURL,
			Validator:    DefaultValidatorURL,
		},
	}
}

// Load creates a config from defaults, then the YAML file named in flags (if any), then the
// flags themselves.
func Load(flags Flags) (*Config, error) {
	cfg := New()
	if flags.ConfigPath != "" {
		data, err := os.ReadFile(flags.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file '%s': %w", flags.ConfigPath, err)
		}
		if err := cfg.merge(data); err != nil {
			return nil, fmt.Errorf("failed to parse config file '%s': %w", flags.ConfigPath, err)
		}
	}
	if flags.Timeout > 0 {
		cfg.Timeout = flags.Timeout
	}
	if flags.Strict {
		cfg.Strict = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// merge applies YAML data on top of the current values. Keys absent from the YAML, or present
// with empty values, leave the current values alone.
func (c *Config) merge(data []byte) error {
	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return err
	}
	if file.Timeout > 0 {
		c.Timeout = file.Timeout
	}
	if file.UserAgent != "" {
		c.UserAgent = file.UserAgent
	}
	if file.Strict {
		c.Strict = true
	}
	override := func(dest *string, value string) {
		if value != "" {
			*dest = strings.TrimSuffix(value, "/")
		}
	}
	override(&c.Sites.Registry, file.Sites.Registry)
	override(&c.Sites.RegistryAPI, file.Sites.RegistryAPI)
	override(&c.Sites.Dashboard, file.Sites.Dashboard)
	override(&c.Sites.Standard, file.Sites.Standard)
	override(&c.Sites.DatastoreAPI, file.Sites.DatastoreAPI)
	override(&c.Sites.QueryBuilder, file.Sites.QueryBuilder)
	override(&c.Sites.Validator, file.Sites.Validator)
	return nil
}

// Validate checks that every site URL is absolute and the timeout is positive.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	for name, value := range c.Sites.byName() {
		u, err := url.Parse(value)
		if err != nil {
			return fmt.Errorf("invalid URL for site %s: %w", name, err)
		}
		if !u.IsAbs() || u.Host == "" {
			return fmt.Errorf("URL for site %s must be absolute, got %q", name, value)
		}
	}
	return nil
}

func (s Sites) byName() map[string]string {
	return map[string]string{
		"registry":      s.Registry,
		"registry_api":  s.RegistryAPI,
		"dashboard":     s.Dashboard,
		"standard":      s.Standard,
		"datastore_api": s.DatastoreAPI,
		"query_builder": s.QueryBuilder,
		"validator":     s.Validator,
	}
}
