package inventory

import (
	"sort"

	"turndown/internal/hotel"
)

// VarianceLine is the required-versus-actual position of one item.
type VarianceLine struct {
	ItemID   string
	Name     string
	Unit     string
	Required int
	Actual   int
	Variance int
}

// Variance reports the stock position per item against the standard demand
// implied by the room inventory. Required sums the recipe quantity of every
// room's type; actual counts on-hand plus circulating plus laundry stock for
// cyclable categories and on-hand only for consumables, since circulating
// consumables are already sold. Lines sort ascending by variance so
// shortages surface first.
func Variance(rooms []hotel.Room, recipes map[string]hotel.Recipe, items []hotel.Item) []VarianceLine {
	required := make(map[string]int)
	for _, room := range rooms {
		recipe, ok := recipes[room.RoomType]
		if !ok {
			continue
		}
		for _, line := range recipe.Lines {
			required[line.ItemID] += line.Quantity
		}
	}

	lines := make([]VarianceLine, 0, len(items))
	for _, item := range items {
		actual := item.Stock.OnHand
		if item.Category.Cyclable() {
			actual += item.Stock.InCirculation + item.Stock.InLaundry
		}
		lines = append(lines, VarianceLine{
			ItemID:   item.ID,
			Name:     item.Name,
			Unit:     item.Unit,
			Required: required[item.ID],
			Actual:   actual,
			Variance: actual - required[item.ID],
		})
	}

	sort.SliceStable(lines, func(i, j int) bool {
		if lines[i].Variance != lines[j].Variance {
			return lines[i].Variance < lines[j].Variance
		}
		return lines[i].Name < lines[j].Name
	})
	return lines
}
