package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/fr4nk3nst1ner/langsalary/internal/scraper"
	"github.com/fr4nk3nst1ner/langsalary/internal/stats"
	"github.com/fr4nk3nst1ner/langsalary/internal/utils"
)

// Config holds settings read from the environment
type Config struct {
	// SuperJobKey is the application secret sent as X-Api-App-Id.
	// Only required when the SuperJob source is selected.
	SuperJobKey string `envconfig:"SUPERJOB_SECRET_KEY"`

	HeadHunterURL string `envconfig:"HH_BASE_URL" default:"https://api.hh.ru"`
	SuperJobURL   string `envconfig:"SUPERJOB_BASE_URL" default:"https://api.superjob.ru/2.0"`
	UserAgent     string `envconfig:"USER_AGENT"`
	Proxy         string `envconfig:"PROXY"`

	MaxPages       int           `envconfig:"MAX_PAGES" default:"100"`
	Workers        int           `envconfig:"WORKERS" default:"1"`
	RateLimit      time.Duration `envconfig:"RATE_LIMIT" default:"250ms"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`
	RetryCount     int           `envconfig:"RETRY_COUNT" default:"3"`
	RetryWait      time.Duration `envconfig:"RETRY_WAIT" default:"500ms"`

	Search SearchFile `ignored:"true"`
}

// SearchFile is the optional YAML file describing what to search for
type SearchFile struct {
	Languages  []string         `yaml:"languages"`
	HeadHunter HeadHunterSearch `yaml:"headhunter"`
	SuperJob   SuperJobSearch   `yaml:"superjob"`
}

// HeadHunterSearch overrides HeadHunter facets; zero values keep the defaults
type HeadHunterSearch struct {
	Area             int `yaml:"area"`
	ProfessionalRole int `yaml:"professional_role"`
	Period           int `yaml:"period"`
	PerPage          int `yaml:"per_page"`
}

// SuperJobSearch overrides SuperJob facets; zero values keep the defaults
type SuperJobSearch struct {
	Town      int `yaml:"town"`
	Catalogue int `yaml:"catalogue"`
	Period    int `yaml:"period"`
	PerPage   int `yaml:"per_page"`
}

// ConfigError reports a missing or invalid setting
type ConfigError struct {
	Setting string
	Reason  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Setting, e.Reason)
}

// Load processes environment variables, after loading a .env file when one
// exists, and then the optional YAML search file
func Load(searchPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if _, statErr := os.Stat(".env"); statErr == nil {
			slog.Warn(".env file found but could not be loaded", "err", err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, &ConfigError{Setting: "environment", Reason: err.Error()}
	}

	if searchPath != "" {
		search, err := LoadSearchFile(searchPath)
		if err != nil {
			return nil, err
		}
		cfg.Search = *search
	}
	return &cfg, nil
}

// LoadSearchFile reads a YAML search file
func LoadSearchFile(path string) (*SearchFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Setting: "config file", Reason: err.Error()}
	}

	var search SearchFile
	if err := yaml.Unmarshal(data, &search); err != nil {
		return nil, &ConfigError{Setting: "config file", Reason: fmt.Sprintf("failed to parse %s: %v", path, err)}
	}
	return &search, nil
}

// Validate checks the settings needed for the selected sources before any
// request is made
func (c *Config) Validate(sources []string) error {
	for _, s := range sources {
		if s == scraper.SuperJobName && c.SuperJobKey == "" {
			return &ConfigError{
				Setting: "SUPERJOB_SECRET_KEY",
				Reason:  "required for the superjob source; register an application at https://api.superjob.ru",
			}
		}
	}
	if c.MaxPages < 1 {
		return &ConfigError{Setting: "MAX_PAGES", Reason: "must be at least 1"}
	}
	if c.Workers < 1 {
		return &ConfigError{Setting: "WORKERS", Reason: "must be at least 1"}
	}
	if c.RetryCount < 0 {
		return &ConfigError{Setting: "RETRY_COUNT", Reason: "must not be negative"}
	}
	return nil
}

// Languages returns the languages to search: explicit ones win over the
// search file, which wins over the built-in list
func (c *Config) Languages(explicit []string) []string {
	if l := utils.NormalizeLanguages(explicit); len(l) > 0 {
		return l
	}
	if l := utils.NormalizeLanguages(c.Search.Languages); len(l) > 0 {
		return l
	}
	return append([]string(nil), utils.DefaultLanguages...)
}

// HeadHunterFacets merges the search file over the default HeadHunter filters
func (c *Config) HeadHunterFacets() scraper.HeadHunterFacets {
	f := scraper.DefaultHeadHunterFacets()
	s := c.Search.HeadHunter
	override(&f.Area, s.Area)
	override(&f.ProfessionalRole, s.ProfessionalRole)
	override(&f.Period, s.Period)
	override(&f.PerPage, s.PerPage)
	return f
}

// SuperJobFacets merges the search file over the default SuperJob filters
func (c *Config) SuperJobFacets() scraper.SuperJobFacets {
	f := scraper.DefaultSuperJobFacets()
	s := c.Search.SuperJob
	override(&f.Town, s.Town)
	override(&f.Catalogue, s.Catalogue)
	override(&f.Period, s.Period)
	override(&f.PerPage, s.PerPage)
	return f
}

// Aggregator builds the aggregator for the configured page cap
func (c *Config) Aggregator(logger *slog.Logger) *stats.Aggregator {
	return &stats.Aggregator{MaxPages: c.MaxPages, Logger: logger}
}

// IsConfigError reports whether err is a configuration problem
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

func override(dst *int, v int) {
	if v > 0 {
		*dst = v
	}
}
