package inventory_test

import (
	"strings"
	"testing"
	"time"

	"turndown/internal/hotel"
	"turndown/internal/inventory"
)

func catalog() map[string]hotel.Item {
	return map[string]hotel.Item{
		"L_GA18":  {ID: "L_GA18", Name: "Ga Trải 1m8", Category: hotel.CategoryLinen},
		"L_GOI":   {ID: "L_GOI", Name: "Vỏ Gối", Category: hotel.CategoryLinen},
		"L_KHAN":  {ID: "L_KHAN", Name: "Khăn Tắm", Category: hotel.CategoryLinen},
		"A_AMCS":  {ID: "A_AMCS", Name: "Ấm Siêu Tốc", Category: hotel.CategoryAsset},
		"M_NUOC":  {ID: "M_NUOC", Name: "Nước Suối", Category: hotel.CategoryMinibar},
		"AM_KDR":  {ID: "AM_KDR", Name: "Kem Đánh Răng", Category: hotel.CategoryAmenity},
		"SV_GIAT": {ID: "SV_GIAT", Name: "Giặt Ủi", Category: hotel.CategoryService},
	}
}

func standardRecipe() hotel.Recipe {
	return hotel.Recipe{
		RoomType: "1GM8",
		Lines: []hotel.RecipeLine{
			{ItemID: "L_GA18", Quantity: 1},
			{ItemID: "L_GOI", Quantity: 2},
			{ItemID: "M_NUOC", Quantity: 2},
		},
	}
}

func TestReconcileClassifiesByCategory(t *testing.T) {
	result := inventory.Reconcile(inventory.Input{
		Entered: map[string]int{
			"M_NUOC":  2,
			"AM_KDR":  1,
			"SV_GIAT": 1,
			"L_KHAN":  3,
		},
		Items: catalog(),
	})

	if len(result.Consumed) != 3 {
		t.Fatalf("expected 3 consumptions, got %d: %+v", len(result.Consumed), result.Consumed)
	}
	if len(result.Cycled) != 1 {
		t.Fatalf("expected 1 cycle, got %d: %+v", len(result.Cycled), result.Cycled)
	}
	cycle := result.Cycled[0]
	if cycle.ItemID != "L_KHAN" || cycle.DirtyReturn != 3 || cycle.CleanRestock != 3 {
		t.Fatalf("expected matched 3/3 towel cycle, got %+v", cycle)
	}
	if result.ShortageNote != "" {
		t.Fatalf("unexpected shortage note %q", result.ShortageNote)
	}
	if result.LinenExchanged != 3 {
		t.Fatalf("expected 3 linen exchanged, got %d", result.LinenExchanged)
	}
}

func TestReconcileSkipsUnknownItemsAndClampsNegatives(t *testing.T) {
	result := inventory.Reconcile(inventory.Input{
		Entered: map[string]int{
			"GHOST":  5,
			"M_NUOC": -2,
		},
		Items: catalog(),
	})
	if len(result.Consumed) != 0 || len(result.Cycled) != 0 {
		t.Fatalf("expected empty result, got %+v", result)
	}
}

func TestReconcileCheckoutShortage(t *testing.T) {
	result := inventory.Reconcile(inventory.Input{
		Checkout: true,
		Returned: map[string]int{"L_GA18": 0},
		Recipe:   standardRecipe(),
		Items:    catalog(),
	})

	var sheet *inventory.Cycle
	for i := range result.Cycled {
		if result.Cycled[i].ItemID == "L_GA18" {
			sheet = &result.Cycled[i]
		}
	}
	if sheet == nil {
		t.Fatalf("expected a cycle for the bed sheet, got %+v", result.Cycled)
	}
	if sheet.DirtyReturn != 0 {
		t.Fatalf("expected zero dirty return, got %d", sheet.DirtyReturn)
	}
	if sheet.CleanRestock != 1 {
		t.Fatalf("restock must follow the recipe regardless of the shortage, got %d", sheet.CleanRestock)
	}
	if result.ShortageNote != "Ga Trải 1m8 x1" {
		t.Fatalf("unexpected shortage note %q", result.ShortageNote)
	}
}

func TestReconcileCheckoutDefaultsReturnsToExpected(t *testing.T) {
	result := inventory.Reconcile(inventory.Input{
		Checkout: true,
		Recipe:   standardRecipe(),
		Items:    catalog(),
	})

	for _, cycle := range result.Cycled {
		if cycle.DirtyReturn != cycle.CleanRestock {
			t.Fatalf("untouched return list should balance, got %+v", cycle)
		}
	}
	if result.ShortageNote != "" {
		t.Fatalf("unexpected shortage note %q", result.ShortageNote)
	}
	// The recipe carries one sheet and two pillow cases; minibar water is not
	// cyclable and never enters the return list.
	if result.LinenExchanged != 3 {
		t.Fatalf("expected 3 linen exchanged, got %d", result.LinenExchanged)
	}
}

func TestReconcileCheckoutMergesLendings(t *testing.T) {
	result := inventory.Reconcile(inventory.Input{
		Checkout: true,
		Recipe:   standardRecipe(),
		Lendings: []hotel.LendingRecord{
			{ItemID: "L_GOI", Quantity: 1},
			{ItemID: "L_KHAN", Quantity: 2},
			{ItemID: "SV_GIAT", Quantity: 1},
		},
		Items: catalog(),
	})

	byItem := map[string]inventory.Cycle{}
	for _, cycle := range result.Cycled {
		byItem[cycle.ItemID] = cycle
	}

	pillow, ok := byItem["L_GOI"]
	if !ok {
		t.Fatal("expected pillow case cycle")
	}
	if pillow.DirtyReturn != 3 {
		t.Fatalf("expected lending merged into expected return, got %+v", pillow)
	}
	if pillow.CleanRestock != 2 {
		t.Fatalf("restock must stay at the recipe quantity, got %+v", pillow)
	}

	towel, ok := byItem["L_KHAN"]
	if !ok {
		t.Fatal("expected towel cycle for lent-only item")
	}
	if towel.DirtyReturn != 2 || towel.CleanRestock != 0 {
		t.Fatalf("lent-only items are returned but not restocked, got %+v", towel)
	}

	if _, ok := byItem["SV_GIAT"]; ok {
		t.Fatal("service lendings must not enter the return list")
	}
}

func TestStockDeltasConserveTotalAssets(t *testing.T) {
	result := inventory.Reconcile(inventory.Input{
		Checkout: true,
		Returned: map[string]int{"L_GA18": 0},
		Recipe:   standardRecipe(),
		Entered:  map[string]int{"M_NUOC": 2},
		Items:    catalog(),
	})

	for _, delta := range result.StockDeltas() {
		if delta.ItemID == "M_NUOC" {
			if delta.OnHand != -2 || delta.InCirculation != 0 || delta.InLaundry != 0 {
				t.Fatalf("consumption must only deplete on-hand, got %+v", delta)
			}
			continue
		}
		if sum := delta.OnHand + delta.InCirculation + delta.InLaundry; sum != 0 {
			t.Fatalf("cycle delta for %s must sum to zero, got %+v", delta.ItemID, delta)
		}
	}
}

func TestTransactionsCarryTaskReference(t *testing.T) {
	result := inventory.Reconcile(inventory.Input{
		Entered: map[string]int{"M_NUOC": 1, "L_KHAN": 2},
		Items:   catalog(),
	})

	seq := 0
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	txns := result.Transactions(
		inventory.Ref{TaskID: "t1", RoomID: "R1", Facility: "main"},
		now,
		func() string { seq++; return "txn-" + strings.Repeat("x", seq) },
	)

	if len(txns) != 3 {
		t.Fatalf("expected consumed + paired cycle entries, got %d", len(txns))
	}
	reasons := map[inventory.TransactionReason]int{}
	for _, txn := range txns {
		if txn.TaskID != "t1" || txn.RoomID != "R1" || txn.Facility != "main" {
			t.Fatalf("transaction lost its reference: %+v", txn)
		}
		if !txn.CreatedAt.Equal(now) {
			t.Fatalf("unexpected timestamp %v", txn.CreatedAt)
		}
		reasons[txn.Reason]++
	}
	if reasons[inventory.ReasonConsumed] != 1 ||
		reasons[inventory.ReasonDirtyReturn] != 1 ||
		reasons[inventory.ReasonCleanRestock] != 1 {
		t.Fatalf("unexpected reason distribution %v", reasons)
	}
}
