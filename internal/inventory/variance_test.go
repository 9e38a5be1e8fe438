package inventory_test

import (
	"testing"

	"turndown/internal/hotel"
	"turndown/internal/inventory"
)

func TestVarianceSumsDemandAcrossRooms(t *testing.T) {
	rooms := []hotel.Room{
		{ID: "R1", Facility: "main", Code: "101", RoomType: "1GM8"},
		{ID: "R2", Facility: "main", Code: "102", RoomType: "1GM8"},
		{ID: "R3", Facility: "main", Code: "201", RoomType: "UNKNOWN"},
	}
	recipes := map[string]hotel.Recipe{
		"1GM8": {RoomType: "1GM8", Lines: []hotel.RecipeLine{
			{ItemID: "L_GA18", Quantity: 1},
			{ItemID: "M_NUOC", Quantity: 2},
		}},
	}
	items := []hotel.Item{
		{ID: "L_GA18", Name: "Ga Trải 1m8", Category: hotel.CategoryLinen,
			Stock: hotel.Stock{OnHand: 1, InCirculation: 2, InLaundry: 1}},
		{ID: "M_NUOC", Name: "Nước Suối", Category: hotel.CategoryMinibar,
			Stock: hotel.Stock{OnHand: 10, InCirculation: 4}},
	}

	lines := inventory.Variance(rooms, recipes, items)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}

	// Two rooms of the same type double the demand; the unknown room type
	// contributes nothing.
	sheet := lines[0]
	if sheet.ItemID != "L_GA18" {
		t.Fatalf("expected the smallest variance first, got %+v", lines)
	}
	if sheet.Required != 2 {
		t.Fatalf("expected required 2, got %d", sheet.Required)
	}
	if sheet.Actual != 4 {
		t.Fatalf("cyclable stock counts all pools, got %d", sheet.Actual)
	}
	if sheet.Variance != 2 {
		t.Fatalf("unexpected variance %d", sheet.Variance)
	}

	water := lines[1]
	if water.Actual != 10 {
		t.Fatalf("consumable stock counts on-hand only, got %d", water.Actual)
	}
	if water.Variance != 6 {
		t.Fatalf("unexpected variance %d", water.Variance)
	}
}

func TestVarianceSortsShortagesFirst(t *testing.T) {
	rooms := []hotel.Room{{ID: "R1", Facility: "main", RoomType: "1GM8"}}
	recipes := map[string]hotel.Recipe{
		"1GM8": {RoomType: "1GM8", Lines: []hotel.RecipeLine{
			{ItemID: "A", Quantity: 5},
			{ItemID: "B", Quantity: 1},
		}},
	}
	items := []hotel.Item{
		{ID: "B", Name: "B", Category: hotel.CategoryAmenity, Stock: hotel.Stock{OnHand: 4}},
		{ID: "A", Name: "A", Category: hotel.CategoryAmenity, Stock: hotel.Stock{OnHand: 1}},
	}

	lines := inventory.Variance(rooms, recipes, items)
	if lines[0].ItemID != "A" || lines[0].Variance != -4 {
		t.Fatalf("expected the deepest shortage first, got %+v", lines)
	}
	if lines[1].Variance != 3 {
		t.Fatalf("unexpected second line %+v", lines[1])
	}
}
