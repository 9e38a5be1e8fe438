package api

import (
	"context"
	"fmt"
	"log/slog"

	"turndown/internal/config"
	"turndown/internal/gateway"
	"turndown/internal/inventory"
)

type InventoryVarianceRequest struct {
	Config *config.Config
	Logger *slog.Logger
}

// InventoryVariance compares each item's counted stock against the standard
// demand implied by the room inventory. Shortages sort first.
func InventoryVariance(ctx context.Context, req InventoryVarianceRequest) (*VarianceReport, error) {
	cfg := req.Config
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}

	g, err := gateway.Open(ctx, cfg, requestLogger(req.Logger))
	if err != nil {
		return nil, fmt.Errorf("open gateway: %w", err)
	}
	defer g.Close()

	rooms, err := g.Rooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("read rooms: %w", err)
	}
	recipes, err := g.Recipes(ctx)
	if err != nil {
		return nil, fmt.Errorf("read recipes: %w", err)
	}
	items, err := g.Items(ctx)
	if err != nil {
		return nil, fmt.Errorf("read items: %w", err)
	}

	lines := inventory.Variance(rooms, recipes, items)
	return &VarianceReport{Lines: FromVariance(lines), Session: sessionOf(g)}, nil
}
