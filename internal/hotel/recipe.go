package hotel

// RecipeLine is one (item, quantity) pair of a room-type load-out.
type RecipeLine struct {
	ItemID   string
	Quantity int
}

// Recipe is the standard per-room-type list of required item quantities.
// Read-only to the housekeeping core; edited by configuration flows. Line
// order is meaningful and preserved from the wire.
type Recipe struct {
	RoomType string
	Lines    []RecipeLine
}

// Quantity returns the required quantity for an item, or zero when the item
// is not part of the recipe.
func (r Recipe) Quantity(itemID string) int {
	for _, line := range r.Lines {
		if line.ItemID == itemID {
			return line.Quantity
		}
	}
	return 0
}

// Contains reports whether the recipe includes the item.
func (r Recipe) Contains(itemID string) bool {
	for _, line := range r.Lines {
		if line.ItemID == itemID {
			return true
		}
	}
	return false
}
