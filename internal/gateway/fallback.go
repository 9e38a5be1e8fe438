package gateway

import (
	"time"

	"turndown/internal/hotel"
)

// Built-in fallback datasets model a small demonstration property so the
// application stays usable for training when the remote store is gone
// entirely. Item and type codes mirror the legacy operator data.

func fallbackRooms(facility string) []hotel.Room {
	return []hotel.Room{
		{ID: "R1", Facility: facility, Code: "101", Status: hotel.RoomDirty, RoomType: "1GM8"},
		{ID: "R2", Facility: facility, Code: "102", Status: hotel.RoomClean, RoomType: "1GM8"},
		{ID: "R3", Facility: facility, Code: "103", Status: hotel.RoomClean, RoomType: "2GM6"},
		{ID: "R4", Facility: facility, Code: "201", Status: hotel.RoomDirty, RoomType: "2GM6"},
		{ID: "R5", Facility: facility, Code: "202", Status: hotel.RoomOutOfService, RoomType: "1GM8", Note: "Sửa điều hòa"},
	}
}

func fallbackStays(facility string, now time.Time) []hotel.Stay {
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)
	return []hotel.Stay{
		{
			ID:       "S1",
			Facility: facility,
			RoomID:   "R3",
			Status:   hotel.StayCheckedIn,
			CheckIn:  yesterday,
			CheckOut: tomorrow,
			Lendings: []hotel.LendingRecord{
				{ItemID: "L_GOI", Quantity: 1, BorrowedAt: yesterday},
			},
		},
		{
			ID:       "S2",
			Facility: facility,
			RoomID:   "R1",
			Status:   hotel.StayCheckedOut,
			CheckIn:  now.AddDate(0, 0, -3),
			CheckOut: now,
		},
	}
}

func fallbackItems() []hotel.Item {
	return []hotel.Item{
		{ID: "L_GA18", Name: "Ga Trải 1m8", Unit: "cái", Category: hotel.CategoryLinen,
			Stock: hotel.Stock{OnHand: 20, InCirculation: 10, InLaundry: 4, TotalAssets: 34}},
		{ID: "L_GA16", Name: "Ga Trải 1m6", Unit: "cái", Category: hotel.CategoryLinen,
			Stock: hotel.Stock{OnHand: 16, InCirculation: 8, InLaundry: 2, TotalAssets: 26}},
		{ID: "L_GOI", Name: "Vỏ Gối", Unit: "cái", Category: hotel.CategoryLinen,
			Stock: hotel.Stock{OnHand: 40, InCirculation: 20, InLaundry: 6, TotalAssets: 66}},
		{ID: "L_KHAN", Name: "Khăn Tắm", Unit: "cái", Category: hotel.CategoryLinen,
			Stock: hotel.Stock{OnHand: 30, InCirculation: 15, InLaundry: 5, TotalAssets: 50}},
		{ID: "A_AMCS", Name: "Ấm Siêu Tốc", Unit: "cái", Category: hotel.CategoryAsset,
			Stock: hotel.Stock{OnHand: 2, InCirculation: 5, TotalAssets: 7}},
		{ID: "M_NUOC", Name: "Nước Suối", Unit: "chai", Category: hotel.CategoryMinibar,
			Stock: hotel.Stock{OnHand: 48}},
		{ID: "M_BIA", Name: "Bia 333", Unit: "lon", Category: hotel.CategoryMinibar,
			Stock: hotel.Stock{OnHand: 24}},
		{ID: "AM_KDR", Name: "Kem Đánh Răng", Unit: "tuýp", Category: hotel.CategoryAmenity,
			Stock: hotel.Stock{OnHand: 60}},
		{ID: "SV_GIAT", Name: "Giặt Ủi", Unit: "lần", Category: hotel.CategoryService,
			Stock: hotel.Stock{}},
	}
}

func fallbackRecipes() map[string]hotel.Recipe {
	return map[string]hotel.Recipe{
		"1GM8": {
			RoomType: "1GM8",
			Lines: []hotel.RecipeLine{
				{ItemID: "L_GA18", Quantity: 1},
				{ItemID: "L_GOI", Quantity: 2},
				{ItemID: "L_KHAN", Quantity: 2},
				{ItemID: "M_NUOC", Quantity: 2},
				{ItemID: "AM_KDR", Quantity: 2},
			},
		},
		"2GM6": {
			RoomType: "2GM6",
			Lines: []hotel.RecipeLine{
				{ItemID: "L_GA16", Quantity: 2},
				{ItemID: "L_GOI", Quantity: 4},
				{ItemID: "L_KHAN", Quantity: 4},
				{ItemID: "M_NUOC", Quantity: 4},
				{ItemID: "AM_KDR", Quantity: 4},
			},
		},
	}
}
