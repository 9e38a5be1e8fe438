package housekeeping_test

import (
	"reflect"
	"testing"
	"time"

	"turndown/internal/hotel"
	"turndown/internal/housekeeping"
)

var noon = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func room(id, code string, status hotel.RoomStatus) hotel.Room {
	return hotel.Room{ID: id, Facility: "main", Code: code, Status: status, RoomType: "1GM8"}
}

func TestDeriveEmitsVirtualDirtyTask(t *testing.T) {
	tasks := housekeeping.Derive(
		[]hotel.Room{room("R1", "101", hotel.RoomDirty)},
		nil, nil, noon,
	)
	if len(tasks) != 1 {
		t.Fatalf("expected one task, got %d", len(tasks))
	}
	task := tasks[0]
	if !task.Virtual {
		t.Fatal("expected a virtual task")
	}
	if task.ID != housekeeping.VirtualID("main", "R1") {
		t.Fatalf("unexpected virtual id %q", task.ID)
	}
	if task.Kind != housekeeping.KindDirty || task.Priority != housekeeping.PriorityHigh {
		t.Fatalf("dirty rooms derive high-priority dirty tasks, got %+v", task)
	}
	if task.Status != housekeeping.StatusPending {
		t.Fatalf("unexpected status %s", task.Status)
	}
}

func TestDeriveIsIdempotent(t *testing.T) {
	rooms := []hotel.Room{
		room("R1", "101", hotel.RoomDirty),
		room("R2", "102", hotel.RoomClean),
		room("R3", "103", hotel.RoomDirty),
	}
	first := housekeeping.Derive(rooms, nil, nil, noon)
	second := housekeeping.Derive(rooms, nil, nil, noon)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("derivation must be stable:\n%+v\n%+v", first, second)
	}
}

func TestDeriveAntiGhostCooldown(t *testing.T) {
	rooms := []hotel.Room{room("R1", "101", hotel.RoomDirty)}
	completed := noon.Add(-housekeeping.AntiGhostCooldown)
	done := housekeeping.Task{
		ID:          "t1",
		Facility:    "main",
		RoomID:      "R1",
		RoomCode:    "101",
		Kind:        housekeeping.KindCheckout,
		Status:      housekeeping.StatusDone,
		CreatedAt:   noon.Add(-26 * time.Hour),
		CompletedAt: &completed,
	}

	// Exactly at the cooldown boundary the room is still suppressed.
	tasks := housekeeping.Derive(rooms, nil, []housekeeping.Task{done}, noon)
	if len(tasks) != 0 {
		t.Fatalf("expected suppression at the boundary, got %+v", tasks)
	}

	// One minute past the cooldown it reappears.
	tasks = housekeeping.Derive(rooms, nil, []housekeeping.Task{done}, noon.Add(time.Minute))
	if len(tasks) != 1 {
		t.Fatalf("expected the room back after the cooldown, got %+v", tasks)
	}
}

func TestDeriveKeepsSameDayDoneTasks(t *testing.T) {
	completed := noon.Add(-30 * time.Minute)
	done := housekeeping.Task{
		ID:          "t1",
		Facility:    "main",
		RoomID:      "R1",
		RoomCode:    "101",
		Kind:        housekeeping.KindDirty,
		Status:      housekeeping.StatusDone,
		CreatedAt:   noon.Add(-2 * time.Hour),
		CompletedAt: &completed,
	}
	tasks := housekeeping.Derive(
		[]hotel.Room{room("R1", "101", hotel.RoomClean)},
		nil, []housekeeping.Task{done}, noon,
	)
	if len(tasks) != 1 || tasks[0].ID != "t1" {
		t.Fatalf("same-day done tasks stay on the board, got %+v", tasks)
	}

	// The next day the history entry ages out.
	tasks = housekeeping.Derive(
		[]hotel.Room{room("R1", "101", hotel.RoomClean)},
		nil, []housekeeping.Task{done}, noon.Add(24*time.Hour),
	)
	if len(tasks) != 0 {
		t.Fatalf("stale history must age out, got %+v", tasks)
	}
}

func TestDeriveReconcilesCleaningRoomWithPendingTask(t *testing.T) {
	pending := housekeeping.Task{
		ID:        "t1",
		Facility:  "main",
		RoomID:    "R1",
		RoomCode:  "101",
		Kind:      housekeeping.KindCheckout,
		Status:    housekeeping.StatusPending,
		CreatedAt: noon.Add(-time.Hour),
	}
	tasks := housekeeping.Derive(
		[]hotel.Room{room("R1", "101", hotel.RoomCleaning)},
		nil, []housekeeping.Task{pending}, noon,
	)
	if len(tasks) != 1 {
		t.Fatalf("expected one task, got %d", len(tasks))
	}
	if tasks[0].Status != housekeeping.StatusInProgress {
		t.Fatalf("a cleaning room promotes its pending task for display, got %s", tasks[0].Status)
	}
}

func TestDeriveStayoverForSpanningStay(t *testing.T) {
	stay := hotel.Stay{
		ID:       "s1",
		Facility: "main",
		RoomID:   "R1",
		Status:   hotel.StayCheckedIn,
		CheckIn:  noon.Add(-24 * time.Hour),
		CheckOut: noon.Add(24 * time.Hour),
	}
	tasks := housekeeping.Derive(
		[]hotel.Room{room("R1", "101", hotel.RoomClean)},
		[]hotel.Stay{stay}, nil, noon,
	)
	if len(tasks) != 1 {
		t.Fatalf("expected a stayover task, got %+v", tasks)
	}
	if tasks[0].Kind != housekeeping.KindStayover || tasks[0].Priority != housekeeping.PriorityNormal {
		t.Fatalf("unexpected stayover task %+v", tasks[0])
	}

	// A stay checking out today is not a stayover.
	stay.CheckOut = noon
	tasks = housekeeping.Derive(
		[]hotel.Room{room("R1", "101", hotel.RoomClean)},
		[]hotel.Stay{stay}, nil, noon,
	)
	if len(tasks) != 0 {
		t.Fatalf("boundary stays must not derive stayovers, got %+v", tasks)
	}
}

func TestDeriveOrdersByStatusThenKind(t *testing.T) {
	inProgress := housekeeping.Task{
		ID: "t1", Facility: "main", RoomID: "R9", RoomCode: "901",
		Kind: housekeeping.KindStayover, Status: housekeeping.StatusInProgress,
		CreatedAt: noon.Add(-time.Hour),
	}
	pendingCheckout := housekeeping.Task{
		ID: "t2", Facility: "main", RoomID: "R8", RoomCode: "801",
		Kind: housekeeping.KindCheckout, Status: housekeeping.StatusPending,
		CreatedAt: noon.Add(-time.Hour),
	}
	rooms := []hotel.Room{
		room("R1", "101", hotel.RoomDirty),
		room("R8", "801", hotel.RoomClean),
		room("R9", "901", hotel.RoomClean),
	}
	tasks := housekeeping.Derive(rooms, nil, []housekeeping.Task{pendingCheckout, inProgress}, noon)

	if len(tasks) != 3 {
		t.Fatalf("expected three tasks, got %+v", tasks)
	}
	if tasks[0].ID != "t1" {
		t.Fatalf("in-progress work sorts first, got %+v", tasks)
	}
	if tasks[1].ID != "t2" {
		t.Fatalf("pending checkouts outrank pending dirty rooms, got %+v", tasks)
	}
	if tasks[2].Kind != housekeeping.KindDirty {
		t.Fatalf("unexpected final task %+v", tasks[2])
	}
}

func TestDeriveOrdersRoomCodesNumerically(t *testing.T) {
	rooms := []hotel.Room{
		room("Ra", "R10", hotel.RoomDirty),
		room("Rb", "R2", hotel.RoomDirty),
	}
	tasks := housekeeping.Derive(rooms, nil, nil, noon)
	if len(tasks) != 2 {
		t.Fatalf("expected two tasks, got %d", len(tasks))
	}
	if tasks[0].RoomCode != "R2" || tasks[1].RoomCode != "R10" {
		t.Fatalf("expected numeric room ordering, got %q then %q", tasks[0].RoomCode, tasks[1].RoomCode)
	}
}
