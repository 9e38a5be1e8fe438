package gateway

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"turndown/internal/housekeeping"
	"turndown/internal/logging"
)

// Tasks returns the facility's persisted housekeeping tasks. The built-in
// demonstration property starts with none, so degraded sessions return an
// empty list.
func (g *Gateway) Tasks(ctx context.Context) ([]housekeeping.Task, error) {
	switch g.Mode() {
	case ModeDegraded:
		return nil, nil
	case ModeOffline:
		return g.cachedTasks(ctx), nil
	}

	tasks, err := g.queryTasks(ctx)
	if err != nil {
		if isUndefinedTable(err) {
			g.enterDegraded(err)
			return nil, nil
		}
		if isConnectivity(err) {
			g.enterOffline(err)
			return g.cachedTasks(ctx), nil
		}
		return nil, fmt.Errorf("read tasks: %w", err)
	}

	if err := g.cache.store(ctx, tableTasks, tasks); err != nil {
		g.logger.Warn("snapshot refresh failed", logging.String("entity", tableTasks), logging.Error(err))
	}
	return tasks, nil
}

func (g *Gateway) cachedTasks(ctx context.Context) []housekeeping.Task {
	var tasks []housekeeping.Task
	ok, err := g.cache.load(ctx, tableTasks, &tasks)
	if err != nil {
		g.logger.Warn("snapshot read failed", logging.String("entity", tableTasks), logging.Error(err))
	}
	if err != nil || !ok {
		return nil
	}
	return tasks
}

func (g *Gateway) queryTasks(ctx context.Context) ([]housekeeping.Task, error) {
	includeExtended := g.extendedEnabled()
	query := "SELECT " + selectColumns(taskFields, includeExtended) + " FROM " + tableTasks +
		" WHERE facility = $1 ORDER BY created_at"
	rows, err := g.db.QueryContext(ctx, query, g.facility)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []housekeeping.Task
	for rows.Next() {
		task, err := g.scanTask(rows, includeExtended)
		if err != nil {
			return nil, err
		}
		if task != nil {
			tasks = append(tasks, *task)
		}
	}
	return tasks, rows.Err()
}

// scanTask reads one row in taskFields order. Rows with unknown enum values
// are skipped with a warning; derivation treats malformed timestamps as
// invalid rather than failing.
func (g *Gateway) scanTask(rows *sql.Rows, includeExtended bool) (*housekeeping.Task, error) {
	var (
		id, facility, roomID   string
		roomCode               sql.NullString
		kindRaw, statusRaw     string
		priority               sql.NullString
		assignee               sql.NullString
		points                 sql.NullInt64
		createdAt              sql.NullTime
		startedAt, completedAt sql.NullTime
		checklist              sql.NullString
		note                   sql.NullString
		photoRefs              sql.NullString
		linenExchanged         sql.NullInt64
	)
	dest := []any{
		&id, &facility, &roomID, &roomCode, &kindRaw, &statusRaw, &priority,
		&assignee, &points, &createdAt, &startedAt, &completedAt, &checklist, &note,
	}
	if includeExtended {
		dest = append(dest, &photoRefs, &linenExchanged)
	}
	if err := rows.Scan(dest...); err != nil {
		return nil, err
	}

	kind, ok := housekeeping.ParseKind(kindRaw)
	if !ok {
		g.logger.Warn("task has unknown kind, skipped",
			logging.String(logging.FieldTask, id), logging.String("kind", kindRaw))
		return nil, nil
	}
	status, ok := housekeeping.ParseStatus(statusRaw)
	if !ok {
		g.logger.Warn("task has unknown status, skipped",
			logging.String(logging.FieldTask, id), logging.String("status", statusRaw))
		return nil, nil
	}

	task := housekeeping.Task{
		ID:             id,
		Facility:       facility,
		RoomID:         roomID,
		RoomCode:       roomCode.String,
		Kind:           kind,
		Status:         status,
		Priority:       housekeeping.Priority(priority.String),
		Assignee:       assignee.String,
		Points:         int(points.Int64),
		CreatedAt:      createdAt.Time,
		Note:           note.String,
		LinenExchanged: int(linenExchanged.Int64),
	}
	if startedAt.Valid {
		t := startedAt.Time
		task.StartedAt = &t
	}
	if completedAt.Valid {
		t := completedAt.Time
		task.CompletedAt = &t
	}
	if checklist.Valid && checklist.String != "" {
		if err := json.Unmarshal([]byte(checklist.String), &task.Checklist); err != nil {
			g.logger.Warn("task has malformed checklist, ignored",
				logging.String(logging.FieldTask, id), logging.Error(err))
		}
	}
	if photoRefs.Valid && photoRefs.String != "" {
		if err := json.Unmarshal([]byte(photoRefs.String), &task.PhotoRefs); err != nil {
			g.logger.Warn("task has malformed photo references, ignored",
				logging.String(logging.FieldTask, id), logging.Error(err))
		}
	}
	return &task, nil
}
