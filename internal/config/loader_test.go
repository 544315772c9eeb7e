package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/creditgen/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.CustomersPath, convey.ShouldEqual, "data/sample/customers_sample.csv")
				convey.So(cfg.IncludeHistorical, convey.ShouldBeTrue)
				convey.So(cfg.MonthsBack, convey.ShouldEqual, 24)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("CREDITGEN_OUTPUT_DIR", "/tmp/out")
			_ = os.Setenv("CREDITGEN_INCLUDE_HISTORICAL", "false")
			_ = os.Setenv("CREDITGEN_MONTHS_BACK", "12")
			_ = os.Setenv("CREDITGEN_SEED", "42")
			_ = os.Setenv("CREDITGEN_WORKER_COUNT", "3")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.OutputDir, convey.ShouldEqual, "/tmp/out")
				convey.So(cfg.IncludeHistorical, convey.ShouldBeFalse)
				convey.So(cfg.MonthsBack, convey.ShouldEqual, 12)
				convey.So(cfg.Seed, convey.ShouldEqual, 42)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 3)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
# fixture run
customers_path: "fixtures/customers.csv"
output_dir: "out"
months_back: 6
max_events: 50
sqlite_path: "out/credit.db"
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("CREDITGEN_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file and keep other defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.CustomersPath, convey.ShouldEqual, "fixtures/customers.csv")
				convey.So(cfg.OutputDir, convey.ShouldEqual, "out")
				convey.So(cfg.MonthsBack, convey.ShouldEqual, 6)
				convey.So(cfg.MaxEvents, convey.ShouldEqual, 50)
				convey.So(cfg.SQLitePath, convey.ShouldEqual, "out/credit.db")
				convey.So(cfg.EventRatio, convey.ShouldEqual, 10)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile("output_dir: \"from-file\"\nmonths_back: 6\n")
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("CREDITGEN_CONFIG", tmpFile)
			_ = os.Setenv("CREDITGEN_MONTHS_BACK", "18")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.OutputDir, convey.ShouldEqual, "from-file")
				convey.So(cfg.MonthsBack, convey.ShouldEqual, 18)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("CREDITGEN_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("CREDITGEN_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an invalid months_back", func() {
			_ = os.Setenv("CREDITGEN_MONTHS_BACK", "0")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "months_back")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When reading config with an invalid months_back", func() {
			_ = os.Setenv("CREDITGEN_MONTHS_BACK", "0")
			defer clearConfigEnvVars()

			cfg, err := config.Read(ctx)

			convey.Convey("Then the value is returned for the caller to override", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.MonthsBack, convey.ShouldEqual, 0)
				convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)

				cfg.MonthsBack = 24
				convey.So(cfg.Validate(), convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-numeric environment variables", func() {
			_ = os.Setenv("CREDITGEN_MONTHS_BACK", "many")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"CREDITGEN_CONFIG",
		"CREDITGEN_OUTPUT_DIR",
		"CREDITGEN_INCLUDE_HISTORICAL",
		"CREDITGEN_MONTHS_BACK",
		"CREDITGEN_SEED",
		"CREDITGEN_WORKER_COUNT",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "creditgen-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
