// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
	"runtime"
)

// Store backend names accepted by ResultStore.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory evaluation queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of evaluation workers.
	WorkerCount int `koanf:"worker_count"`

	// ResultStore selects the result store backing: memory or sqlite.
	ResultStore string `koanf:"result_store"`

	// SQLitePath locates the sqlite database file when ResultStore is sqlite.
	SQLitePath string `koanf:"sqlite_path"`

	// ResultTTLMinutes sets how long completed evaluations are retained.
	// Zero disables the retention sweeper.
	ResultTTLMinutes int `koanf:"result_ttl_minutes"`

	// SweepSchedule is the cron expression for the retention sweeper.
	SweepSchedule string `koanf:"sweep_schedule"`

	// VideoWeight, AudioWeight and TextWeight form the cumulative weight
	// vector. They must be non-negative and sum to 1.0.
	VideoWeight float64 `koanf:"video_weight"`
	AudioWeight float64 `koanf:"audio_weight"`
	TextWeight  float64 `koanf:"text_weight"`

	// SilenceEnergyThreshold is the RMS energy below which an audio frame
	// counts as silent.
	SilenceEnergyThreshold float64 `koanf:"silence_energy_threshold"`

	// MinPauseSeconds is the minimum silent-interval duration that counts
	// as hesitation rather than a natural speech pause.
	MinPauseSeconds float64 `koanf:"min_pause_seconds"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention; it is reserved for future use and currently
// unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:               "info",
		Addr:                   ":9080",
		QueueSize:              10_000,
		WorkerCount:            runtime.NumCPU() * 2,
		ResultStore:            StoreMemory,
		SQLitePath:             "hirelens.db",
		ResultTTLMinutes:       0,
		SweepSchedule:          "@hourly",
		VideoWeight:            0.40,
		AudioWeight:            0.30,
		TextWeight:             0.30,
		SilenceEnergyThreshold: 0.01,
		MinPauseSeconds:        3.0,
	}
}
