package hotel

import "strings"

// ItemCategory classifies an item definition for reconciliation purposes.
type ItemCategory string

const (
	CategoryLinen   ItemCategory = "linen"
	CategoryAsset   ItemCategory = "asset"
	CategoryMinibar ItemCategory = "minibar"
	CategoryAmenity ItemCategory = "amenity"
	CategoryService ItemCategory = "service"
	CategoryVoucher ItemCategory = "voucher"
)

var itemCategoryAliases = map[string]ItemCategory{
	"linen":    CategoryLinen,
	"đồ vải":   CategoryLinen,
	"do vai":   CategoryLinen,
	"asset":    CategoryAsset,
	"tài sản":  CategoryAsset,
	"tai san":  CategoryAsset,
	"minibar":  CategoryMinibar,
	"amenity":  CategoryAmenity,
	"vật dụng": CategoryAmenity,
	"vat dung": CategoryAmenity,
	"service":  CategoryService,
	"dịch vụ":  CategoryService,
	"dich vu":  CategoryService,
	"voucher":  CategoryVoucher,
}

// ParseItemCategory maps a wire value onto an ItemCategory.
func ParseItemCategory(value string) (ItemCategory, bool) {
	category, ok := itemCategoryAliases[strings.ToLower(strings.TrimSpace(value))]
	return category, ok
}

// Cyclable reports whether goods of this category move between dirty and
// clean pools with no net stock change on a normal turnover. Everything else
// is depleted on use or sale.
func (c ItemCategory) Cyclable() bool {
	return c == CategoryLinen || c == CategoryAsset
}

// Stock holds the per-item counters maintained by the reconciliation engine.
// TotalAssets is fixed for durable goods and is never mutated by this core.
type Stock struct {
	OnHand        int
	InCirculation int
	InLaundry     int
	VendorHeld    int
	TotalAssets   int
}

// Item is an inventory item definition. Created and edited by inventory
// management flows; only the stock counters are mutated here.
type Item struct {
	ID       string
	Name     string
	Unit     string
	Category ItemCategory
	Stock    Stock
}
