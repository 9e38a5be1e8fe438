package inventory

import (
	"fmt"
	"sort"
	"strings"

	"turndown/internal/hotel"
)

// Consumption is a stock-depleting instruction for a consumable item. The
// quantity is attributable to guest charges; charge computation itself is
// owned by a billing collaborator.
type Consumption struct {
	ItemID   string
	Quantity int
}

// Cycle is a matched dirty-out/clean-in instruction for a cyclable item.
// Dirty return and clean restock are applied as a pair so total assets never
// drift; the two quantities are tracked independently and are not required to
// be equal.
type Cycle struct {
	ItemID       string
	DirtyReturn  int
	CleanRestock int
}

// Result is the outcome of reconciling one task completion.
type Result struct {
	Consumed       []Consumption
	Cycled         []Cycle
	ShortageNote   string
	LinenExchanged int
}

// Input carries everything reconciliation needs. Entered holds the operator's
// consumed/used quantities keyed by item id; Returned holds the actual
// returned-dirty counts for checkout return-list entries, where a missing key
// means the operator left the expected default untouched.
type Input struct {
	Checkout bool
	Entered  map[string]int
	Returned map[string]int
	Recipe   hotel.Recipe
	Lendings []hotel.LendingRecord
	Items    map[string]hotel.Item
}

// Reconcile classifies entered quantities into consumed and cycled
// instructions and, for checkout tasks, nets the return list out against the
// room-type recipe and any lending records. Quantities clamp at zero; items
// missing from the catalog cannot be classified and are skipped.
func Reconcile(in Input) Result {
	var result Result

	for _, itemID := range sortedKeys(in.Entered) {
		quantity := clampQuantity(in.Entered[itemID])
		if quantity == 0 {
			continue
		}
		item, ok := in.Items[itemID]
		if !ok {
			continue
		}
		if item.Category.Cyclable() {
			// On checkout the return list below governs cyclables; elsewhere
			// a cycled entry is a pure swap with equal quantities.
			if !in.Checkout {
				result.Cycled = append(result.Cycled, Cycle{
					ItemID:       itemID,
					DirtyReturn:  quantity,
					CleanRestock: quantity,
				})
			}
			continue
		}
		result.Consumed = append(result.Consumed, Consumption{ItemID: itemID, Quantity: quantity})
	}

	if in.Checkout {
		cycled, note := reconcileReturnList(in)
		result.Cycled = append(result.Cycled, cycled...)
		result.ShortageNote = note
	}

	for _, cycle := range result.Cycled {
		result.LinenExchanged += cycle.CleanRestock
	}
	return result
}

// returnEntry is one line of the checkout return list: the recipe's standard
// quantity seeded first, lending quantities merged on top.
type returnEntry struct {
	itemID   string
	expected int
	restock  int
}

func reconcileReturnList(in Input) ([]Cycle, string) {
	entries := make([]returnEntry, 0, len(in.Recipe.Lines)+len(in.Lendings))
	position := make(map[string]int)

	for _, line := range in.Recipe.Lines {
		item, ok := in.Items[line.ItemID]
		if !ok || !item.Category.Cyclable() {
			continue
		}
		position[line.ItemID] = len(entries)
		entries = append(entries, returnEntry{
			itemID:   line.ItemID,
			expected: clampQuantity(line.Quantity),
			restock:  clampQuantity(line.Quantity),
		})
	}

	for _, lending := range in.Lendings {
		item, ok := in.Items[lending.ItemID]
		if !ok || !item.Category.Cyclable() {
			continue
		}
		quantity := clampQuantity(lending.Quantity)
		if quantity == 0 {
			continue
		}
		if idx, ok := position[lending.ItemID]; ok {
			entries[idx].expected += quantity
			continue
		}
		// Lent items are not automatically replenished; only standard
		// recipe stock is restocked.
		position[lending.ItemID] = len(entries)
		entries = append(entries, returnEntry{itemID: lending.ItemID, expected: quantity})
	}

	cycles := make([]Cycle, 0, len(entries))
	var shortages []string
	for _, entry := range entries {
		returned := entry.expected
		if value, ok := in.Returned[entry.itemID]; ok {
			returned = clampQuantity(value)
		}
		cycles = append(cycles, Cycle{
			ItemID:       entry.itemID,
			DirtyReturn:  returned,
			CleanRestock: entry.restock,
		})
		if returned < entry.expected {
			shortages = append(shortages, fmt.Sprintf("%s x%d", in.Items[entry.itemID].Name, entry.expected-returned))
		}
	}
	return cycles, strings.Join(shortages, ", ")
}

func clampQuantity(quantity int) int {
	if quantity < 0 {
		return 0
	}
	return quantity
}

func sortedKeys(quantities map[string]int) []string {
	keys := make([]string, 0, len(quantities))
	for key := range quantities {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
