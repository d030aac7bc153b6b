package testsupport

import (
	"path/filepath"
	"testing"

	"backline/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.OutputDir = filepath.Join(base, "riders")
	cfgVal.Band.Name = "Test Band"
	cfgVal.Rider.OpenAfterExport = false
	cfgVal.Lookup.Enabled = false

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithBandName sets the band name printed on riders.
func WithBandName(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Band.Name = name
	}
}

// WithIconDir points icon overrides at a directory under the test base dir
// and returns nothing; use BaseDir to locate it.
func WithIconDir() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.IconDir = filepath.Join(b.baseDir, "icons")
	}
}

// WithDepthBands overrides the stage grid depth.
func WithDepthBands(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Stage.DepthBands = n
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
