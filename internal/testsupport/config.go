package testsupport

import (
	"path/filepath"
	"testing"

	"turndown/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The remote store is disabled so gateways open offline; tests exercising
// live behavior inject a fake database handle instead.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Database.Offline = true
	cfgVal.Facility.Code = "main"
	cfgVal.Facility.Operator = "tester"

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

// WithDSN points the test config at a remote store and re-enables live mode.
func WithDSN(dsn string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Database.DSN = dsn
		b.cfg.Database.Offline = false
	}
}

// WithFacility overrides the facility code on the test config.
func WithFacility(code string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Facility.Code = code
	}
}

// WithCooldownMinutes overrides the anti-ghost cooldown on the test config.
func WithCooldownMinutes(minutes int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Housekeeping.CooldownMinutes = minutes
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
