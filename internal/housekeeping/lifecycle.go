package housekeeping

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"turndown/internal/hotel"
	"turndown/internal/inventory"
	"turndown/internal/logging"
)

// Store is the slice of the storage gateway the lifecycle manager writes
// through. The gateway satisfies it; tests substitute fakes.
type Store interface {
	SaveTask(ctx context.Context, task *Task) error
	UpdateRoomStatus(ctx context.Context, facility, roomID string, status hotel.RoomStatus) error
	ApplyReconciliation(ctx context.Context, deltas []inventory.StockDelta, txns []inventory.Transaction) error
}

// Manager owns the Pending -> InProgress -> Done state machine for an
// individual task and the side effects each transition produces.
type Manager struct {
	store    Store
	logger   *slog.Logger
	operator string
	now      func() time.Time
	newID    func() string
}

// ManagerOption customizes a Manager.
type ManagerOption func(*Manager)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) { m.now = now }
}

// WithIDSource overrides durable id generation, for tests.
func WithIDSource(newID func() string) ManagerOption {
	return func(m *Manager) { m.newID = newID }
}

// NewManager constructs a lifecycle manager acting as the given operator.
func NewManager(store Store, logger *slog.Logger, operator string, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:    store,
		logger:   logging.NewComponentLogger(logger, "lifecycle"),
		operator: operator,
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start moves a Pending task to InProgress. A virtual task is promoted to a
// persisted one by minting a durable identity. The task write and the room
// status update are issued as one logical unit; a failure of either is
// returned for the caller to retry.
func (m *Manager) Start(ctx context.Context, task *Task, room hotel.Room) error {
	if task == nil {
		return Wrap(ErrValidation, "start", "task is required", nil)
	}
	if task.Status != StatusPending {
		return Wrap(ErrInvalidTransition, "start",
			"task is "+string(task.Status)+", only pending tasks can be started", nil)
	}

	now := m.now()
	if task.Virtual {
		task.ID = m.newID()
		task.Virtual = false
	}
	task.Status = StatusInProgress
	if task.StartedAt == nil {
		started := now
		task.StartedAt = &started
	}
	if task.Assignee == "" {
		task.Assignee = m.operator
	}
	task.Points = task.Kind.Points()

	if err := m.store.SaveTask(ctx, task); err != nil {
		return Wrap(nil, "start", "persist task", err)
	}
	if room.Status != hotel.RoomCleaning {
		if err := m.store.UpdateRoomStatus(ctx, task.Facility, task.RoomID, hotel.RoomCleaning); err != nil {
			return Wrap(nil, "start", "update room status", err)
		}
	}

	m.logger.Info("task started",
		logging.String(logging.FieldTask, task.ID),
		logging.String(logging.FieldFacility, task.Facility),
		logging.String(logging.FieldRoom, task.RoomCode),
		logging.String("kind", string(task.Kind)))
	return nil
}

// CompleteInput carries the operator payload and the reconciliation
// environment for one completion.
type CompleteInput struct {
	Checklist []ChecklistItem
	Entered   map[string]int
	Returned  map[string]int
	Recipe    hotel.Recipe
	Items     map[string]hotel.Item
	Lendings  []hotel.LendingRecord
}

// Complete moves an InProgress task to Done, runs inventory reconciliation,
// and issues the stock mutations, the task write, and the room status update.
//
// The three sub-operations are independent and no global rollback is
// attempted: a partial failure is returned so the operator can retry.
// Retrying recomputes stock deltas from the entered values, so the stock
// mutation is idempotent; the transaction log is append-only and gains a
// fresh set of audit entries on every retry.
func (m *Manager) Complete(ctx context.Context, task *Task, in CompleteInput) error {
	if task == nil {
		return Wrap(ErrValidation, "complete", "task is required", nil)
	}
	if task.Status != StatusInProgress {
		return Wrap(ErrInvalidTransition, "complete",
			"task is "+string(task.Status)+", only in-progress tasks can be completed", nil)
	}

	result := inventory.Reconcile(inventory.Input{
		Checkout: task.Kind == KindCheckout,
		Entered:  in.Entered,
		Returned: in.Returned,
		Recipe:   in.Recipe,
		Lendings: in.Lendings,
		Items:    in.Items,
	})

	now := m.now()
	task.Status = StatusDone
	if task.CompletedAt == nil {
		completed := now
		task.CompletedAt = &completed
	}
	task.Checklist = in.Checklist
	task.LinenExchanged = result.LinenExchanged
	task.Note = appendNote(task.Note, result.ShortageNote)

	ref := inventory.Ref{TaskID: task.ID, RoomID: task.RoomID, Facility: task.Facility}
	txns := result.Transactions(ref, now, m.newID)

	var failures []error
	if err := m.store.ApplyReconciliation(ctx, result.StockDeltas(), txns); err != nil {
		m.logger.Error("stock mutation failed", logging.String(logging.FieldTask, task.ID), logging.Error(err))
		failures = append(failures, Wrap(nil, "complete", "apply stock mutations", err))
	}
	if err := m.store.SaveTask(ctx, task); err != nil {
		m.logger.Error("task persistence failed", logging.String(logging.FieldTask, task.ID), logging.Error(err))
		failures = append(failures, Wrap(nil, "complete", "persist task", err))
	}
	if err := m.store.UpdateRoomStatus(ctx, task.Facility, task.RoomID, hotel.RoomClean); err != nil {
		m.logger.Error("room update failed", logging.String(logging.FieldTask, task.ID), logging.Error(err))
		failures = append(failures, Wrap(nil, "complete", "update room status", err))
	}
	if len(failures) > 0 {
		return errors.Join(failures...)
	}

	m.logger.Info("task completed",
		logging.String(logging.FieldTask, task.ID),
		logging.String(logging.FieldFacility, task.Facility),
		logging.String(logging.FieldRoom, task.RoomCode),
		logging.Int("linen_exchanged", task.LinenExchanged))
	return nil
}

func appendNote(note, shortage string) string {
	if shortage == "" {
		return note
	}
	annotation := "Thiếu: " + shortage
	if note == "" {
		return annotation
	}
	return note + "; " + annotation
}
