package testsupport

import (
	"path/filepath"
	"testing"

	"siteforge/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.OutputDir = filepath.Join(base, "out")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")

	cfg := &cfgVal
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithOverwrite sets the overwrite_existing flag on the test config.
func WithOverwrite(overwrite bool) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Export.OverwriteExisting = overwrite
	}
}

// WithQuality overrides the WebP quality on the test config.
func WithQuality(quality float64) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Imaging.Quality = quality
	}
}
