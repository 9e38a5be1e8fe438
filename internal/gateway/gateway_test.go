package gateway

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"turndown/internal/housekeeping"
	"turndown/internal/inventory"
	"turndown/internal/logging"
)

type execCall struct {
	query string
	args  []any
}

// fakeDB satisfies sqlDB for write-path tests. Read paths need real
// *sql.Rows and are covered through the offline and degraded modes instead.
type fakeDB struct {
	calls    []execCall
	execErrs []error
}

func (f *fakeDB) ExecContext(_ context.Context, query string, args ...any) (sql.Result, error) {
	f.calls = append(f.calls, execCall{query: query, args: args})
	if len(f.execErrs) > 0 {
		err := f.execErrs[0]
		f.execErrs = f.execErrs[1:]
		return nil, err
	}
	return driver.RowsAffected(1), nil
}

func (f *fakeDB) QueryContext(context.Context, string, ...any) (*sql.Rows, error) {
	return nil, driver.ErrBadConn
}

func (f *fakeDB) PingContext(context.Context) error { return nil }
func (f *fakeDB) Close() error                      { return nil }

func newTestGateway(db *fakeDB) *Gateway {
	return &Gateway{
		db:              db,
		logger:          logging.NewNop(),
		facility:        "main",
		clock:           time.Now,
		includeExtended: true,
		mode:            ModeLive,
	}
}

func sampleTask() *housekeeping.Task {
	return &housekeeping.Task{
		ID:        "t1",
		Facility:  "main",
		RoomID:    "R1",
		RoomCode:  "101",
		Kind:      housekeeping.KindCheckout,
		Status:    housekeeping.StatusInProgress,
		Priority:  housekeeping.PriorityHigh,
		Assignee:  "op-1",
		Points:    4,
		CreatedAt: time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC),
	}
}

func TestSaveTaskRetriesWithoutExtendedColumnsOnDrift(t *testing.T) {
	db := &fakeDB{execErrs: []error{&pgconn.PgError{Code: sqlstateUndefinedColumn}}}
	g := newTestGateway(db)

	if err := g.SaveTask(context.Background(), sampleTask()); err != nil {
		t.Fatalf("drift must be absorbed, got %v", err)
	}
	if len(db.calls) != 2 {
		t.Fatalf("expected one retry, got %d calls", len(db.calls))
	}
	if !strings.Contains(db.calls[0].query, "photo_refs") {
		t.Fatalf("first attempt must carry the newer columns: %q", db.calls[0].query)
	}
	if strings.Contains(db.calls[1].query, "photo_refs") {
		t.Fatalf("retry must strip the newer columns: %q", db.calls[1].query)
	}
	if !g.SchemaWarning() {
		t.Fatal("expected the schema warning flagged")
	}
	if g.extendedEnabled() {
		t.Fatal("expected extended columns disabled for the session")
	}
	if g.Mode() != ModeLive {
		t.Fatalf("drift must not change the mode, got %s", g.Mode())
	}
}

func TestSaveTaskEntersDegradedWhenTableMissing(t *testing.T) {
	db := &fakeDB{execErrs: []error{&pgconn.PgError{Code: sqlstateUndefinedTable}}}
	g := newTestGateway(db)

	if err := g.SaveTask(context.Background(), sampleTask()); err != nil {
		t.Fatalf("a missing table degrades instead of failing, got %v", err)
	}
	if g.Mode() != ModeDegraded {
		t.Fatalf("expected degraded mode, got %s", g.Mode())
	}

	// Later writes are dropped without touching the store.
	before := len(db.calls)
	if err := g.SaveTask(context.Background(), sampleTask()); err != nil {
		t.Fatalf("degraded writes are no-ops, got %v", err)
	}
	if len(db.calls) != before {
		t.Fatal("expected no further store calls in degraded mode")
	}
}

func TestSaveTaskGoesOfflineOnConnectivityFailure(t *testing.T) {
	db := &fakeDB{execErrs: []error{driver.ErrBadConn}}
	g := newTestGateway(db)

	if err := g.SaveTask(context.Background(), sampleTask()); err != nil {
		t.Fatalf("connectivity loss drops the write, got %v", err)
	}
	if g.Mode() != ModeOffline {
		t.Fatalf("expected offline mode, got %s", g.Mode())
	}
}

func TestUpdateRoomStatusDroppedWhenOffline(t *testing.T) {
	db := &fakeDB{}
	g := newTestGateway(db)
	g.mode = ModeOffline

	if err := g.UpdateRoomStatus(context.Background(), "main", "R1", "clean"); err != nil {
		t.Fatalf("offline room updates are dropped, got %v", err)
	}
	if len(db.calls) != 0 {
		t.Fatal("expected no store calls while offline")
	}
}

func TestApplyReconciliationIssuesDeltasAndAuditEntries(t *testing.T) {
	db := &fakeDB{}
	g := newTestGateway(db)

	deltas := []inventory.StockDelta{
		{ItemID: "L_GA18", OnHand: -1, InCirculation: 1},
		{ItemID: "M_NUOC", OnHand: -2},
	}
	txns := []inventory.Transaction{
		{ID: "x1", ItemID: "M_NUOC", Delta: -2, Reason: inventory.ReasonConsumed, CreatedAt: time.Now()},
	}
	if err := g.ApplyReconciliation(context.Background(), deltas, txns); err != nil {
		t.Fatalf("ApplyReconciliation returned error: %v", err)
	}
	if len(db.calls) != 3 {
		t.Fatalf("expected 2 updates and 1 insert, got %d calls", len(db.calls))
	}
	if !strings.HasPrefix(db.calls[0].query, "UPDATE items") {
		t.Fatalf("unexpected first query %q", db.calls[0].query)
	}
	if !strings.HasPrefix(db.calls[2].query, "INSERT INTO inventory_transactions") {
		t.Fatalf("unexpected final query %q", db.calls[2].query)
	}
}

func TestApplyReconciliationToleratesMissingAuditTable(t *testing.T) {
	db := &fakeDB{execErrs: []error{&pgconn.PgError{Code: sqlstateUndefinedTable}}}
	g := newTestGateway(db)

	err := g.ApplyReconciliation(context.Background(),
		nil,
		[]inventory.Transaction{{ID: "x1", ItemID: "M_NUOC", Delta: -1, Reason: inventory.ReasonConsumed, CreatedAt: time.Now()}},
	)
	if err != nil {
		t.Fatalf("a missing audit table must not fail the completion, got %v", err)
	}
	if !g.SchemaWarning() {
		t.Fatal("expected the schema warning flagged")
	}
	if g.Mode() != ModeLive {
		t.Fatalf("a missing audit table alone must not degrade, got %s", g.Mode())
	}
}

func TestDegradedModeIsSticky(t *testing.T) {
	g := newTestGateway(&fakeDB{})
	g.enterDegraded(ErrDegraded)
	g.enterOffline(ErrUnavailable)
	if g.Mode() != ModeDegraded {
		t.Fatalf("degraded must win over later transitions, got %s", g.Mode())
	}
}

func TestDegradedReadsServeBuiltinDatasets(t *testing.T) {
	g := newTestGateway(&fakeDB{})
	g.mode = ModeDegraded

	rooms, err := g.Rooms(context.Background())
	if err != nil {
		t.Fatalf("Rooms returned error: %v", err)
	}
	if len(rooms) == 0 {
		t.Fatal("expected built-in rooms")
	}

	items, err := g.Items(context.Background())
	if err != nil {
		t.Fatalf("Items returned error: %v", err)
	}
	if len(items) == 0 {
		t.Fatal("expected built-in items")
	}

	tasks, err := g.Tasks(context.Background())
	if err != nil {
		t.Fatalf("Tasks returned error: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("degraded sessions have no persisted tasks, got %+v", tasks)
	}
}

func TestOfflineReadsFallBackWithoutSnapshot(t *testing.T) {
	g := newTestGateway(&fakeDB{})
	g.mode = ModeOffline

	rooms, err := g.Rooms(context.Background())
	if err != nil {
		t.Fatalf("Rooms returned error: %v", err)
	}
	if len(rooms) == 0 {
		t.Fatal("expected the built-in fallback without a snapshot")
	}
}

func TestSnapshotCacheRoundTrip(t *testing.T) {
	cache, err := openSnapshotCache(t.TempDir())
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	defer cache.Close()

	stored := fallbackRooms("main")
	if err := cache.store(context.Background(), tableRooms, stored); err != nil {
		t.Fatalf("store snapshot: %v", err)
	}

	g := newTestGateway(&fakeDB{})
	g.cache = cache
	g.mode = ModeOffline

	rooms, err := g.Rooms(context.Background())
	if err != nil {
		t.Fatalf("Rooms returned error: %v", err)
	}
	if len(rooms) != len(stored) {
		t.Fatalf("expected the cached snapshot, got %d rooms", len(rooms))
	}
}
