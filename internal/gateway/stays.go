package gateway

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"turndown/internal/hotel"
	"turndown/internal/logging"
)

// lendingWire is the JSON shape lending records take inside the stays table.
type lendingWire struct {
	ItemID     string    `json:"item_id"`
	Quantity   int       `json:"quantity"`
	BorrowedAt time.Time `json:"borrowed_at"`
}

// Stays returns the facility's stays, including their embedded lending
// records. Read-only to this core.
func (g *Gateway) Stays(ctx context.Context) ([]hotel.Stay, error) {
	switch g.Mode() {
	case ModeDegraded:
		return fallbackStays(g.facility, g.clock()), nil
	case ModeOffline:
		return g.cachedStays(ctx), nil
	}

	stays, err := g.queryStays(ctx)
	if err != nil {
		if isUndefinedTable(err) {
			g.enterDegraded(err)
			return fallbackStays(g.facility, g.clock()), nil
		}
		if isConnectivity(err) {
			g.enterOffline(err)
			return g.cachedStays(ctx), nil
		}
		return nil, fmt.Errorf("read stays: %w", err)
	}

	if err := g.cache.store(ctx, tableStays, stays); err != nil {
		g.logger.Warn("snapshot refresh failed", logging.String("entity", tableStays), logging.Error(err))
	}
	return stays, nil
}

func (g *Gateway) cachedStays(ctx context.Context) []hotel.Stay {
	var stays []hotel.Stay
	ok, err := g.cache.load(ctx, tableStays, &stays)
	if err != nil {
		g.logger.Warn("snapshot read failed", logging.String("entity", tableStays), logging.Error(err))
	}
	if err != nil || !ok {
		return fallbackStays(g.facility, g.clock())
	}
	return stays
}

func (g *Gateway) queryStays(ctx context.Context) ([]hotel.Stay, error) {
	query := "SELECT " + selectColumns(stayFields, true) + " FROM " + tableStays +
		" WHERE facility = $1 ORDER BY checkin_date"
	rows, err := g.db.QueryContext(ctx, query, g.facility)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stays []hotel.Stay
	for rows.Next() {
		var (
			id, facility, roomID string
			statusRaw            string
			checkIn, checkOut    sql.NullTime
			actualIn, actualOut  sql.NullTime
			lendings             sql.NullString
		)
		if err := rows.Scan(&id, &facility, &roomID, &statusRaw, &checkIn, &checkOut, &actualIn, &actualOut, &lendings); err != nil {
			return nil, err
		}
		status, ok := hotel.ParseStayStatus(statusRaw)
		if !ok {
			g.logger.Warn("stay has unknown status, skipped",
				logging.String("stay_id", id),
				logging.String("status", statusRaw))
			continue
		}
		stay := hotel.Stay{
			ID:       id,
			Facility: facility,
			RoomID:   roomID,
			Status:   status,
			CheckIn:  checkIn.Time,
			CheckOut: checkOut.Time,
		}
		if actualIn.Valid {
			t := actualIn.Time
			stay.ActualCheckIn = &t
		}
		if actualOut.Valid {
			t := actualOut.Time
			stay.ActualCheckOut = &t
		}
		if lendings.Valid && lendings.String != "" {
			var wire []lendingWire
			if err := json.Unmarshal([]byte(lendings.String), &wire); err != nil {
				g.logger.Warn("stay has malformed lending records, ignored",
					logging.String("stay_id", id), logging.Error(err))
			} else {
				for _, record := range wire {
					stay.Lendings = append(stay.Lendings, hotel.LendingRecord{
						ItemID:     record.ItemID,
						Quantity:   record.Quantity,
						BorrowedAt: record.BorrowedAt,
					})
				}
			}
		}
		stays = append(stays, stay)
	}
	return stays, rows.Err()
}
