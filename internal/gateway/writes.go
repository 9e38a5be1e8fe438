package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"turndown/internal/housekeeping"
	"turndown/internal/inventory"
	"turndown/internal/logging"
)

// SaveTask upserts a task. When the remote schema rejects the newer columns
// the write is retried once with the extended fields stripped; a drift hit
// also disables extended columns for the rest of the session.
func (g *Gateway) SaveTask(ctx context.Context, task *housekeeping.Task) error {
	switch g.Mode() {
	case ModeDegraded, ModeOffline:
		g.logger.Warn("task write dropped",
			logging.String(logging.FieldMode, string(g.Mode())),
			logging.String(logging.FieldTask, task.ID))
		return nil
	}

	values, err := taskValues(task)
	if err != nil {
		return err
	}

	execUpsert := func(includeExtended bool) error {
		query, args, err := buildUpsert(tableTasks, "id", taskFields, values, includeExtended)
		if err != nil {
			return err
		}
		_, err = g.db.ExecContext(ctx, query, args...)
		return err
	}

	err = execUpsert(g.extendedEnabled())
	if isUndefinedColumn(err) {
		g.logger.Warn("task write hit schema drift, retrying without newer fields",
			logging.String(logging.FieldTask, task.ID), logging.Error(err))
		g.disableExtended()
		err = execUpsert(false)
	}
	if err != nil {
		if isUndefinedTable(err) {
			g.enterDegraded(err)
			return nil
		}
		if isConnectivity(err) {
			g.enterOffline(err)
			g.logger.Warn("task write dropped while going offline", logging.String(logging.FieldTask, task.ID))
			return nil
		}
		return fmt.Errorf("save task: %w", err)
	}
	return nil
}

// ApplyReconciliation applies the stock counter deltas and appends the audit
// transactions produced by one completion. The two groups are issued
// sequentially without a surrounding transaction: completion sub-operations
// are independent by design and the caller retries on partial failure.
func (g *Gateway) ApplyReconciliation(ctx context.Context, deltas []inventory.StockDelta, txns []inventory.Transaction) error {
	switch g.Mode() {
	case ModeDegraded, ModeOffline:
		g.logger.Warn("stock mutation dropped",
			logging.String(logging.FieldMode, string(g.Mode())),
			logging.Int("deltas", len(deltas)))
		return nil
	}

	for _, delta := range deltas {
		query := "UPDATE " + tableItems + ` SET
            on_hand = on_hand + $1,
            in_circulation = in_circulation + $2,
            in_laundry = in_laundry + $3
            WHERE id = $4`
		if _, err := g.db.ExecContext(ctx, query, delta.OnHand, delta.InCirculation, delta.InLaundry, delta.ItemID); err != nil {
			if isUndefinedTable(err) {
				g.enterDegraded(err)
				return nil
			}
			if isConnectivity(err) {
				g.enterOffline(err)
				g.logger.Warn("stock mutation dropped while going offline", logging.String(logging.FieldItem, delta.ItemID))
				return nil
			}
			return fmt.Errorf("apply stock delta for %s: %w", delta.ItemID, err)
		}
	}

	for _, txn := range txns {
		values := map[string]any{
			"ID":        txn.ID,
			"ItemID":    txn.ItemID,
			"Delta":     txn.Delta,
			"Reason":    string(txn.Reason),
			"TaskID":    nullableString(txn.TaskID),
			"RoomID":    nullableString(txn.RoomID),
			"Facility":  nullableString(txn.Facility),
			"CreatedAt": txn.CreatedAt,
		}
		query, args, err := buildInsert(tableTransactions, transactionFields, values)
		if err != nil {
			return err
		}
		if _, err := g.db.ExecContext(ctx, query, args...); err != nil {
			if isUndefinedTable(err) {
				// The audit log is the one newer table older deployments
				// lack entirely; losing it does not block operation.
				g.logger.Warn("transaction log table missing, audit entry skipped", logging.Error(err))
				g.flagSchemaWarning()
				return nil
			}
			if isConnectivity(err) {
				g.enterOffline(err)
				return nil
			}
			return fmt.Errorf("append inventory transaction: %w", err)
		}
	}
	return nil
}

func taskValues(task *housekeeping.Task) (map[string]any, error) {
	checklistJSON, err := json.Marshal(task.Checklist)
	if err != nil {
		return nil, fmt.Errorf("encode checklist: %w", err)
	}
	var photoJSON []byte
	if len(task.PhotoRefs) > 0 {
		photoJSON, err = json.Marshal(task.PhotoRefs)
		if err != nil {
			return nil, fmt.Errorf("encode photo references: %w", err)
		}
	}

	return map[string]any{
		"ID":             task.ID,
		"Facility":       task.Facility,
		"RoomID":         task.RoomID,
		"RoomCode":       nullableString(task.RoomCode),
		"Kind":           string(task.Kind),
		"Status":         string(task.Status),
		"Priority":       nullableString(string(task.Priority)),
		"Assignee":       nullableString(task.Assignee),
		"Points":         task.Points,
		"CreatedAt":      task.CreatedAt,
		"StartedAt":      nullableTime(task.StartedAt),
		"CompletedAt":    nullableTime(task.CompletedAt),
		"Checklist":      nullableString(string(checklistJSON)),
		"Note":           nullableString(task.Note),
		"PhotoRefs":      nullableString(string(photoJSON)),
		"LinenExchanged": task.LinenExchanged,
	}, nil
}

func nullableString(value string) any {
	if value == "" || value == "null" {
		return nil
	}
	return value
}

func nullableTime(value *time.Time) any {
	if value == nil || value.IsZero() {
		return nil
	}
	return value.UTC()
}
