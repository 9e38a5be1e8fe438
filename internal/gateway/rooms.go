package gateway

import (
	"context"
	"database/sql"
	"fmt"

	"turndown/internal/hotel"
	"turndown/internal/logging"
)

// Rooms returns the facility's rooms. Offline sessions serve the snapshot
// cache and fall back to the built-in dataset; degraded sessions serve the
// built-in dataset only.
func (g *Gateway) Rooms(ctx context.Context) ([]hotel.Room, error) {
	switch g.Mode() {
	case ModeDegraded:
		return fallbackRooms(g.facility), nil
	case ModeOffline:
		return g.cachedRooms(ctx), nil
	}

	rooms, err := g.queryRooms(ctx)
	if err != nil {
		if isUndefinedTable(err) {
			g.enterDegraded(err)
			return fallbackRooms(g.facility), nil
		}
		if isConnectivity(err) {
			g.enterOffline(err)
			return g.cachedRooms(ctx), nil
		}
		return nil, fmt.Errorf("read rooms: %w", err)
	}

	if err := g.cache.store(ctx, tableRooms, rooms); err != nil {
		g.logger.Warn("snapshot refresh failed", logging.String("entity", tableRooms), logging.Error(err))
	}
	return rooms, nil
}

func (g *Gateway) cachedRooms(ctx context.Context) []hotel.Room {
	var rooms []hotel.Room
	ok, err := g.cache.load(ctx, tableRooms, &rooms)
	if err != nil {
		g.logger.Warn("snapshot read failed", logging.String("entity", tableRooms), logging.Error(err))
	}
	if err != nil || !ok {
		return fallbackRooms(g.facility)
	}
	return rooms
}

func (g *Gateway) queryRooms(ctx context.Context) ([]hotel.Room, error) {
	query := "SELECT " + selectColumns(roomFields, true) + " FROM " + tableRooms +
		" WHERE facility = $1 ORDER BY room_code"
	rows, err := g.db.QueryContext(ctx, query, g.facility)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []hotel.Room
	for rows.Next() {
		var (
			id, facility, code string
			statusRaw          string
			roomType           sql.NullString
			note               sql.NullString
		)
		if err := rows.Scan(&id, &facility, &code, &statusRaw, &roomType, &note); err != nil {
			return nil, err
		}
		status, ok := hotel.ParseRoomStatus(statusRaw)
		if !ok {
			g.logger.Warn("room has unknown status, skipped",
				logging.String(logging.FieldRoom, code),
				logging.String("status", statusRaw))
			continue
		}
		rooms = append(rooms, hotel.Room{
			ID:       id,
			Facility: facility,
			Code:     code,
			Status:   status,
			RoomType: roomType.String,
			Note:     note.String,
		})
	}
	return rooms, rows.Err()
}

// UpdateRoomStatus writes the one room field this core owns. Dropped with a
// log entry when the session is not live.
func (g *Gateway) UpdateRoomStatus(ctx context.Context, facility, roomID string, status hotel.RoomStatus) error {
	switch g.Mode() {
	case ModeDegraded, ModeOffline:
		g.logger.Warn("room update dropped",
			logging.String(logging.FieldMode, string(g.Mode())),
			logging.String(logging.FieldRoom, roomID),
			logging.String("status", string(status)))
		return nil
	}

	query := "UPDATE " + tableRooms + " SET status = $1 WHERE facility = $2 AND id = $3"
	if _, err := g.db.ExecContext(ctx, query, string(status), facility, roomID); err != nil {
		if isUndefinedTable(err) {
			g.enterDegraded(err)
			return nil
		}
		if isConnectivity(err) {
			g.enterOffline(err)
			g.logger.Warn("room update dropped while going offline", logging.String(logging.FieldRoom, roomID))
			return nil
		}
		return fmt.Errorf("update room status: %w", err)
	}
	return nil
}
