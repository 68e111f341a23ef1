// Package config defines the tool configuration and its loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers an optional YAML file and environment variables on top.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
)

// DefaultIndexName is the persisted index filename inside the competitions directory.
const DefaultIndexName = "participants.json"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error. Unknown levels
	// fall back to info when applied.
	LogLevel string `koanf:"log_level"`

	// CompetitionsDir holds the fetched competition documents.
	CompetitionsDir string `koanf:"competitions_dir" validate:"required"`

	// IndexFile overrides the persisted index path. Empty means
	// CompetitionsDir/participants.json.
	IndexFile string `koanf:"index_file"`

	// ReportDir receives the per-discipline CSV files.
	ReportDir string `koanf:"report_dir" validate:"required"`

	// CalendarURL lists the competitions to fetch.
	CalendarURL string `koanf:"calendar_url" validate:"required,url"`

	// JSONURL is the document endpoint; competition parameters are appended.
	JSONURL string `koanf:"json_url" validate:"required,url"`

	// FetchRatePerSec and FetchBurst pace requests to the results service.
	FetchRatePerSec float64 `koanf:"fetch_rate_per_sec" validate:"gt=0"`
	FetchBurst      int     `koanf:"fetch_burst" validate:"min=1"`

	// HTTPTimeoutMS bounds a single request.
	HTTPTimeoutMS int `koanf:"http_timeout_ms" validate:"min=1"`

	// MetricsFile, when set, receives the Prometheus textfile after a run.
	MetricsFile string `koanf:"metrics_file"`

	// Names are "firstname:lastname" queries used when none are given on the command line.
	Names []string `koanf:"names" validate:"dive,contains=:"`

	// SuggestDistance is the maximum edit distance for name hints. Zero disables hints.
	SuggestDistance int `koanf:"suggest_distance" validate:"min=0"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		CompetitionsDir: "competitions",
		ReportDir:       "reports",
		CalendarURL:     "https://www.digitalrock.de/dav_calendar.php?no_dav=1&year=2019",
		JSONURL:         "https://www.digitalrock.de/egroupware/ranking/json.php?",
		FetchRatePerSec: 2,
		FetchBurst:      1,
		HTTPTimeoutMS:   30_000,
		SuggestDistance: 2,
	}
}

// IndexPath returns the effective persisted index path.
func (c *Config) IndexPath() string {
	if c.IndexFile != "" {
		return c.IndexFile
	}
	return filepath.Join(c.CompetitionsDir, DefaultIndexName)
}

// HTTPTimeout returns HTTPTimeoutMS as a duration.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutMS) * time.Millisecond
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
