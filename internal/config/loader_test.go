package config_test

import (
	"context"
	"os"
	"runtime"
	"testing"

	"github.com/hirelens/hirelens/internal/config"
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
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.QueueSize, convey.ShouldEqual, 10_000)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU()*2)
				convey.So(cfg.ResultStore, convey.ShouldEqual, config.StoreMemory)
				convey.So(cfg.SweepSchedule, convey.ShouldEqual, "@hourly")
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("HIRELENS_ADDR", ":8080")
			_ = os.Setenv("HIRELENS_QUEUE_SIZE", "500")
			_ = os.Setenv("HIRELENS_WORKER_COUNT", "16")
			_ = os.Setenv("HIRELENS_RESULT_TTL_MINUTES", "60")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.QueueSize, convey.ShouldEqual, 500)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 16)
				convey.So(cfg.ResultTTLMinutes, convey.ShouldEqual, 60)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
addr: ":9090"
queue_size: 300
worker_count: 24
result_store: "sqlite"
sqlite_path: "/tmp/hirelens-test.db"
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("HIRELENS_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.QueueSize, convey.ShouldEqual, 300)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 24)
				convey.So(cfg.ResultStore, convey.ShouldEqual, config.StoreSQLite)
				convey.So(cfg.SQLitePath, convey.ShouldEqual, "/tmp/hirelens-test.db")
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
addr: ":9090"
queue_size: 300
worker_count: 24
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("HIRELENS_CONFIG", tmpFile)
			_ = os.Setenv("HIRELENS_ADDR", ":8080")
			_ = os.Setenv("HIRELENS_WORKER_COUNT", "32")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")   // Overridden by env
				convey.So(cfg.QueueSize, convey.ShouldEqual, 300)  // From file
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 32) // Overridden by env
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			invalidYaml := `invalid: yaml: content: [`
			tmpFile := createTempConfigFile(invalidYaml)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("HIRELENS_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("HIRELENS_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("HIRELENS_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an unknown result store", func() {
			_ = os.Setenv("HIRELENS_RESULT_STORE", "postgres")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "result_store")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with weights that do not sum to one", func() {
			_ = os.Setenv("HIRELENS_VIDEO_WEIGHT", "0.5")
			_ = os.Setenv("HIRELENS_AUDIO_WEIGHT", "0.5")
			_ = os.Setenv("HIRELENS_TEXT_WEIGHT", "0.5")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "sum to 1.0")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with a negative weight", func() {
			_ = os.Setenv("HIRELENS_VIDEO_WEIGHT", "-0.2")
			_ = os.Setenv("HIRELENS_AUDIO_WEIGHT", "0.6")
			_ = os.Setenv("HIRELENS_TEXT_WEIGHT", "0.6")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "non-negative")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with a negative retention TTL", func() {
			_ = os.Setenv("HIRELENS_RESULT_TTL_MINUTES", "-5")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "result_ttl_minutes")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("HIRELENS_QUEUE_SIZE", "invalid")
			_ = os.Setenv("HIRELENS_WORKER_COUNT", "not_a_number")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with a partial YAML file", func() {
			yamlContent := `
addr: ":9090"
worker_count: 16
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("HIRELENS_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should merge with defaults for missing fields", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")      // From file
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 16)    // From file
				convey.So(cfg.QueueSize, convey.ShouldEqual, 10_000)  // From defaults
				convey.So(cfg.VideoWeight, convey.ShouldEqual, 0.40)  // From defaults
				convey.So(cfg.SilenceEnergyThreshold, convey.ShouldEqual, 0.01)
			})
		})
	})
}

func clearConfigEnvVars() {
	for _, key := range []string{
		"HIRELENS_CONFIG",
		"HIRELENS_LOG_LEVEL",
		"HIRELENS_ADDR",
		"HIRELENS_QUEUE_SIZE",
		"HIRELENS_WORKER_COUNT",
		"HIRELENS_RESULT_STORE",
		"HIRELENS_SQLITE_PATH",
		"HIRELENS_RESULT_TTL_MINUTES",
		"HIRELENS_SWEEP_SCHEDULE",
		"HIRELENS_VIDEO_WEIGHT",
		"HIRELENS_AUDIO_WEIGHT",
		"HIRELENS_TEXT_WEIGHT",
		"HIRELENS_SILENCE_ENERGY_THRESHOLD",
		"HIRELENS_MIN_PAUSE_SECONDS",
	} {
		_ = os.Unsetenv(key)
	}
}

func createTempConfigFile(content string) string {
	f, err := os.CreateTemp("", "hirelens-config-*.yaml")
	if err != nil {
		panic(err)
	}
	if _, err := f.WriteString(content); err != nil {
		panic(err)
	}
	_ = f.Close()
	return f.Name()
}
