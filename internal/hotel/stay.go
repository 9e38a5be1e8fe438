package hotel

import (
	"strings"
	"time"
)

// StayStatus represents the booking lifecycle of a stay.
type StayStatus string

const (
	StayConfirmed  StayStatus = "confirmed"
	StayCheckedIn  StayStatus = "checked_in"
	StayCheckedOut StayStatus = "checked_out"
	StayCancelled  StayStatus = "cancelled"
)

var stayStatusAliases = map[string]StayStatus{
	"confirmed":   StayConfirmed,
	"đã đặt":      StayConfirmed,
	"da dat":      StayConfirmed,
	"checked_in":  StayCheckedIn,
	"checked in":  StayCheckedIn,
	"đã nhận":     StayCheckedIn,
	"da nhan":     StayCheckedIn,
	"checked_out": StayCheckedOut,
	"checked out": StayCheckedOut,
	"đã trả":      StayCheckedOut,
	"da tra":      StayCheckedOut,
	"cancelled":   StayCancelled,
	"canceled":    StayCancelled,
	"đã hủy":      StayCancelled,
	"da huy":      StayCancelled,
}

// ParseStayStatus maps a wire value onto a StayStatus.
func ParseStayStatus(value string) (StayStatus, bool) {
	status, ok := stayStatusAliases[strings.ToLower(strings.TrimSpace(value))]
	return status, ok
}

// LendingRecord is a guest-attributable loan of an item beyond the room's
// standard load-out, carried on the stay it belongs to.
type LendingRecord struct {
	ItemID     string
	Quantity   int
	BorrowedAt time.Time
}

// Stay is a booking. Read-only to the housekeeping core; created and mutated
// by booking flows.
type Stay struct {
	ID             string
	Facility       string
	RoomID         string
	Status         StayStatus
	CheckIn        time.Time
	CheckOut       time.Time
	ActualCheckIn  *time.Time
	ActualCheckOut *time.Time
	Lendings       []LendingRecord
}

// RoomKey returns the (facility, room) identity the stay occupies.
func (s Stay) RoomKey() string {
	return s.Facility + "/" + s.RoomID
}

// SpansDay reports whether the stay is checked in with a check-in date
// strictly before day and a check-out date strictly after day. Zero
// timestamps are treated as invalid and never satisfy the comparison.
func (s Stay) SpansDay(day time.Time) bool {
	if s.Status != StayCheckedIn {
		return false
	}
	if s.CheckIn.IsZero() || s.CheckOut.IsZero() {
		return false
	}
	d := truncateToDay(day)
	return truncateToDay(s.CheckIn).Before(d) && truncateToDay(s.CheckOut).After(d)
}

func truncateToDay(t time.Time) time.Time {
	year, month, dayOfMonth := t.Date()
	return time.Date(year, month, dayOfMonth, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two timestamps fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	if a.IsZero() || b.IsZero() {
		return false
	}
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
