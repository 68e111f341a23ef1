package config_test

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/crux/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.CompetitionsDir, convey.ShouldEqual, "competitions")
			convey.So(cfg.ReportDir, convey.ShouldEqual, "reports")
			convey.So(cfg.FetchRatePerSec, convey.ShouldEqual, 2)
			convey.So(cfg.FetchBurst, convey.ShouldEqual, 1)
			convey.So(cfg.SuggestDistance, convey.ShouldEqual, 2)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("When the log level is not recognized", func() {
			cfg.LogLevel = "verbose"

			convey.Convey("Then validation leaves it to the logger fallback", func() {
				convey.So(cfg.Validate(), convey.ShouldBeNil)
			})
		})

		convey.Convey("Then derived values follow the defaults", func() {
			convey.So(cfg.IndexPath(), convey.ShouldEqual, filepath.Join("competitions", "participants.json"))
			convey.So(cfg.HTTPTimeout(), convey.ShouldEqual, 30*time.Second)
		})

		convey.Convey("When an explicit index file is set", func() {
			cfg.IndexFile = "/tmp/index.json"

			convey.Convey("Then it takes precedence", func() {
				convey.So(cfg.IndexPath(), convey.ShouldEqual, "/tmp/index.json")
			})
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs violating constraints", t, func() {
		cases := []struct {
			name   string
			mutate func(*config.Config)
		}{
			{"dir", func(c *config.Config) { c.CompetitionsDir = "" }},
			{"calendar", func(c *config.Config) { c.CalendarURL = "not a url" }},
			{"rate", func(c *config.Config) { c.FetchRatePerSec = 0 }},
			{"burst", func(c *config.Config) { c.FetchBurst = 0 }},
			{"timeout", func(c *config.Config) { c.HTTPTimeoutMS = 0 }},
			{"names", func(c *config.Config) { c.Names = []string{"Anna Wolf"} }},
			{"suggestions", func(c *config.Config) { c.SuggestDistance = -1 }},
		}

		for _, tc := range cases {
			cfg := config.New()
			tc.mutate(cfg)

			convey.Convey("Then validation fails for "+tc.name, func() {
				err := cfg.Validate()
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		}
	})
}
