package gateway

import (
	"context"
	"database/sql"
	"fmt"

	"turndown/internal/hotel"
	"turndown/internal/logging"
)

// Items returns every item definition with its stock counters.
func (g *Gateway) Items(ctx context.Context) ([]hotel.Item, error) {
	switch g.Mode() {
	case ModeDegraded:
		return fallbackItems(), nil
	case ModeOffline:
		return g.cachedItems(ctx), nil
	}

	items, err := g.queryItems(ctx)
	if err != nil {
		if isUndefinedTable(err) {
			g.enterDegraded(err)
			return fallbackItems(), nil
		}
		if isConnectivity(err) {
			g.enterOffline(err)
			return g.cachedItems(ctx), nil
		}
		return nil, fmt.Errorf("read items: %w", err)
	}

	if err := g.cache.store(ctx, tableItems, items); err != nil {
		g.logger.Warn("snapshot refresh failed", logging.String("entity", tableItems), logging.Error(err))
	}
	return items, nil
}

// ItemsByID returns the item catalog keyed by identity.
func (g *Gateway) ItemsByID(ctx context.Context) (map[string]hotel.Item, error) {
	items, err := g.Items(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[string]hotel.Item, len(items))
	for _, item := range items {
		index[item.ID] = item
	}
	return index, nil
}

func (g *Gateway) cachedItems(ctx context.Context) []hotel.Item {
	var items []hotel.Item
	ok, err := g.cache.load(ctx, tableItems, &items)
	if err != nil {
		g.logger.Warn("snapshot read failed", logging.String("entity", tableItems), logging.Error(err))
	}
	if err != nil || !ok {
		return fallbackItems()
	}
	return items
}

func (g *Gateway) queryItems(ctx context.Context) ([]hotel.Item, error) {
	includeExtended := g.extendedEnabled()
	query := "SELECT " + selectColumns(itemFields, includeExtended) + " FROM " + tableItems +
		" ORDER BY item_name"
	rows, err := g.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []hotel.Item
	for rows.Next() {
		var (
			id, name    string
			unit        sql.NullString
			categoryRaw string
			onHand      sql.NullInt64
			circulating sql.NullInt64
			laundry     sql.NullInt64
			vendorHeld  sql.NullInt64
			totalAssets sql.NullInt64
		)
		dest := []any{&id, &name, &unit, &categoryRaw, &onHand, &circulating, &laundry}
		if includeExtended {
			dest = append(dest, &vendorHeld)
		}
		dest = append(dest, &totalAssets)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		category, ok := hotel.ParseItemCategory(categoryRaw)
		if !ok {
			g.logger.Warn("item has unknown category, skipped",
				logging.String(logging.FieldItem, id),
				logging.String("category", categoryRaw))
			continue
		}
		items = append(items, hotel.Item{
			ID:       id,
			Name:     name,
			Unit:     unit.String,
			Category: category,
			Stock: hotel.Stock{
				OnHand:        int(onHand.Int64),
				InCirculation: int(circulating.Int64),
				InLaundry:     int(laundry.Int64),
				VendorHeld:    int(vendorHeld.Int64),
				TotalAssets:   int(totalAssets.Int64),
			},
		})
	}
	return items, rows.Err()
}

// Recipes returns the room-type load-outs keyed by room type, with line
// order preserved.
func (g *Gateway) Recipes(ctx context.Context) (map[string]hotel.Recipe, error) {
	switch g.Mode() {
	case ModeDegraded:
		return fallbackRecipes(), nil
	case ModeOffline:
		return g.cachedRecipes(ctx), nil
	}

	recipes, err := g.queryRecipes(ctx)
	if err != nil {
		if isUndefinedTable(err) {
			g.enterDegraded(err)
			return fallbackRecipes(), nil
		}
		if isConnectivity(err) {
			g.enterOffline(err)
			return g.cachedRecipes(ctx), nil
		}
		return nil, fmt.Errorf("read recipes: %w", err)
	}

	if err := g.cache.store(ctx, tableRecipes, recipes); err != nil {
		g.logger.Warn("snapshot refresh failed", logging.String("entity", tableRecipes), logging.Error(err))
	}
	return recipes, nil
}

func (g *Gateway) cachedRecipes(ctx context.Context) map[string]hotel.Recipe {
	var recipes map[string]hotel.Recipe
	ok, err := g.cache.load(ctx, tableRecipes, &recipes)
	if err != nil {
		g.logger.Warn("snapshot read failed", logging.String("entity", tableRecipes), logging.Error(err))
	}
	if err != nil || !ok {
		return fallbackRecipes()
	}
	return recipes
}

func (g *Gateway) queryRecipes(ctx context.Context) (map[string]hotel.Recipe, error) {
	query := "SELECT " + selectColumns(recipeFields, true) + " FROM " + tableRecipes +
		" ORDER BY room_type, position"
	rows, err := g.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recipes := make(map[string]hotel.Recipe)
	for rows.Next() {
		var (
			roomType, itemID string
			quantity         int
			position         sql.NullInt64
		)
		if err := rows.Scan(&roomType, &itemID, &quantity, &position); err != nil {
			return nil, err
		}
		recipe := recipes[roomType]
		recipe.RoomType = roomType
		recipe.Lines = append(recipe.Lines, hotel.RecipeLine{ItemID: itemID, Quantity: quantity})
		recipes[roomType] = recipe
	}
	return recipes, rows.Err()
}
