package testsupport

import (
	"context"
	"testing"

	"turndown/internal/config"
	"turndown/internal/gateway"
	"turndown/internal/logging"
)

// MustOpenGateway opens a gateway for tests and registers cleanup. With the
// default test config the gateway starts in offline mode backed by the
// built-in datasets.
func MustOpenGateway(t testing.TB, cfg *config.Config) *gateway.Gateway {
	t.Helper()

	g, err := gateway.Open(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("open gateway: %v", err)
	}
	t.Cleanup(func() {
		if err := g.Close(); err != nil {
			t.Errorf("close gateway: %v", err)
		}
	})
	return g
}
