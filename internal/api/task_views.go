package api

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"turndown/internal/config"
	"turndown/internal/gateway"
	"turndown/internal/hotel"
	"turndown/internal/housekeeping"
	"turndown/internal/logging"
)

type DerivedTasksRequest struct {
	Config *config.Config
	Logger *slog.Logger
}

// DerivedTasks computes the current work list for the configured facility.
func DerivedTasks(ctx context.Context, req DerivedTasksRequest) (*TaskBoard, error) {
	cfg := req.Config
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}

	g, err := gateway.Open(ctx, cfg, requestLogger(req.Logger))
	if err != nil {
		return nil, fmt.Errorf("open gateway: %w", err)
	}
	defer g.Close()

	board, err := loadBoard(ctx, cfg, g, time.Now())
	if err != nil {
		return nil, err
	}

	views := make([]TaskView, 0, len(board.tasks))
	for _, task := range board.tasks {
		views = append(views, FromTask(task))
	}
	return &TaskBoard{Tasks: views, Session: sessionOf(g)}, nil
}

// boardState is one derivation pass plus the snapshots it was computed from.
// Lifecycle operations reuse the snapshots to resolve rooms and lendings.
type boardState struct {
	rooms []hotel.Room
	stays []hotel.Stay
	tasks []housekeeping.Task
}

// loadBoard gathers the three snapshots and runs derivation with the
// configured cooldown.
func loadBoard(ctx context.Context, cfg *config.Config, g *gateway.Gateway, now time.Time) (*boardState, error) {
	rooms, err := g.Rooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("read rooms: %w", err)
	}
	stays, err := g.Stays(ctx)
	if err != nil {
		return nil, fmt.Errorf("read stays: %w", err)
	}
	persisted, err := g.Tasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("read tasks: %w", err)
	}

	cooldown := housekeeping.AntiGhostCooldown
	if cfg.Housekeeping.CooldownMinutes > 0 {
		cooldown = time.Duration(cfg.Housekeeping.CooldownMinutes) * time.Minute
	}
	return &boardState{
		rooms: rooms,
		stays: stays,
		tasks: housekeeping.DeriveWithCooldown(rooms, stays, persisted, now, cooldown),
	}, nil
}

// findTask locates a derived task by id, virtual identities included.
func findTask(tasks []housekeeping.Task, id string) (*housekeeping.Task, bool) {
	for i := range tasks {
		if tasks[i].ID == id {
			return &tasks[i], true
		}
	}
	return nil, false
}

// findRoom locates the room a task refers to.
func findRoom(rooms []hotel.Room, task *housekeeping.Task) (hotel.Room, bool) {
	for _, room := range rooms {
		if room.Facility == task.Facility && room.ID == task.RoomID {
			return room, true
		}
	}
	return hotel.Room{}, false
}

func requestLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return logging.NewNop()
	}
	return logger
}
