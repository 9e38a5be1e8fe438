package hotel

import "strings"

// RoomStatus represents the live state of a room.
type RoomStatus string

const (
	RoomClean        RoomStatus = "clean"
	RoomDirty        RoomStatus = "dirty"
	RoomCleaning     RoomStatus = "cleaning"
	RoomOutOfService RoomStatus = "out_of_service"
)

var roomStatusAliases = map[string]RoomStatus{
	"clean":          RoomClean,
	"sạch":           RoomClean,
	"sach":           RoomClean,
	"dirty":          RoomDirty,
	"bẩn":            RoomDirty,
	"ban":            RoomDirty,
	"cleaning":       RoomCleaning,
	"đang dọn":       RoomCleaning,
	"dang don":       RoomCleaning,
	"out_of_service": RoomOutOfService,
	"out of service": RoomOutOfService,
	"bảo trì":        RoomOutOfService,
	"bao tri":        RoomOutOfService,
}

// ParseRoomStatus maps a wire value onto a RoomStatus. Legacy exports carry
// localized labels, so matching is case-insensitive over a fixed alias table.
func ParseRoomStatus(value string) (RoomStatus, bool) {
	status, ok := roomStatusAliases[strings.ToLower(strings.TrimSpace(value))]
	return status, ok
}

// Room is a physical unit within a facility. The housekeeping core owns only
// the Status field; type, price, and notes belong to room-management flows.
type Room struct {
	ID       string
	Facility string
	Code     string
	Status   RoomStatus
	RoomType string
	Note     string
}

// Key returns the (facility, room) identity used to index tasks and stays.
func (r Room) Key() string {
	return r.Facility + "/" + r.ID
}
