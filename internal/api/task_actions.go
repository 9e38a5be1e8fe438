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
)

type StartTaskRequest struct {
	Config *config.Config
	Logger *slog.Logger
	TaskID string
	// Assignee overrides the configured operator for this task.
	Assignee string
}

// StartTask moves a pending task to in-progress. Virtual identities of the
// form "virtual:<facility>:<room>" are accepted and promoted to durable ids.
func StartTask(ctx context.Context, req StartTaskRequest) (*TaskResult, error) {
	cfg := req.Config
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if req.TaskID == "" {
		return nil, fmt.Errorf("task id is required")
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
	task, ok := findTask(board.tasks, req.TaskID)
	if !ok {
		return nil, housekeeping.Wrap(housekeeping.ErrNotFound, "start", "task "+req.TaskID+" not found", nil)
	}
	if req.Assignee != "" {
		task.Assignee = req.Assignee
	}
	room, _ := findRoom(board.rooms, task)

	manager := housekeeping.NewManager(g, requestLogger(req.Logger), cfg.Facility.Operator)
	if err := manager.Start(ctx, task, room); err != nil {
		return nil, err
	}
	return &TaskResult{Task: FromTask(*task), Session: sessionOf(g)}, nil
}

type CompleteTaskRequest struct {
	Config *config.Config
	Logger *slog.Logger
	TaskID string
	// Checklist is the operator's final checklist state.
	Checklist []ChecklistItem
	// Consumed holds the entered per-item quantities keyed by item id.
	Consumed map[string]int
	// Returned holds per-item dirty return counts for checkout tasks.
	// Items absent from the map default to their expected quantity.
	Returned map[string]int
	// PhotoRefs are opaque references to completion photos.
	PhotoRefs []string
	Note      string
}

// CompleteTask reconciles inventory and moves an in-progress task to done.
// The stock mutation, the task write, and the room update are independent;
// a partial failure is returned so the operator can retry the completion.
func CompleteTask(ctx context.Context, req CompleteTaskRequest) (*TaskResult, error) {
	cfg := req.Config
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if req.TaskID == "" {
		return nil, fmt.Errorf("task id is required")
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
	task, ok := findTask(board.tasks, req.TaskID)
	if !ok {
		return nil, housekeeping.Wrap(housekeeping.ErrNotFound, "complete", "task "+req.TaskID+" not found", nil)
	}

	recipes, err := g.Recipes(ctx)
	if err != nil {
		return nil, fmt.Errorf("read recipes: %w", err)
	}
	items, err := g.ItemsByID(ctx)
	if err != nil {
		return nil, fmt.Errorf("read items: %w", err)
	}

	var recipe hotel.Recipe
	if room, ok := findRoom(board.rooms, task); ok {
		recipe = recipes[room.RoomType]
	}

	if len(req.PhotoRefs) > 0 {
		task.PhotoRefs = append(task.PhotoRefs, req.PhotoRefs...)
	}
	if req.Note != "" {
		task.Note = req.Note
	}

	checklist := make([]housekeeping.ChecklistItem, 0, len(req.Checklist))
	for _, item := range req.Checklist {
		checklist = append(checklist, housekeeping.ChecklistItem{Text: item.Text, Done: item.Done})
	}

	manager := housekeeping.NewManager(g, requestLogger(req.Logger), cfg.Facility.Operator)
	err = manager.Complete(ctx, task, housekeeping.CompleteInput{
		Checklist: checklist,
		Entered:   req.Consumed,
		Returned:  req.Returned,
		Recipe:    recipe,
		Items:     items,
		Lendings:  roomLendings(board.stays, task),
	})
	if err != nil {
		return nil, err
	}
	return &TaskResult{Task: FromTask(*task), Session: sessionOf(g)}, nil
}

// roomLendings collects the loans charged against the task's room. Checked-in
// stays win; otherwise the most recently checked-out stay is still settling
// its loans and counts.
func roomLendings(stays []hotel.Stay, task *housekeeping.Task) []hotel.LendingRecord {
	var fallback *hotel.Stay
	for i, stay := range stays {
		if stay.RoomKey() != task.RoomKey() {
			continue
		}
		switch stay.Status {
		case hotel.StayCheckedIn:
			return stay.Lendings
		case hotel.StayCheckedOut:
			if fallback == nil || laterCheckout(stay, *fallback) {
				fallback = &stays[i]
			}
		}
	}
	if fallback != nil {
		return fallback.Lendings
	}
	return nil
}

func laterCheckout(a, b hotel.Stay) bool {
	at, bt := a.CheckOut, b.CheckOut
	if a.ActualCheckOut != nil {
		at = *a.ActualCheckOut
	}
	if b.ActualCheckOut != nil {
		bt = *b.ActualCheckOut
	}
	return at.After(bt)
}
