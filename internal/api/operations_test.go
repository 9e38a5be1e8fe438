package api_test

import (
	"context"
	"errors"
	"testing"

	"turndown/internal/api"
	"turndown/internal/housekeeping"
	"turndown/internal/testsupport"
)

func TestDerivedTasksServesDemonstrationProperty(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	board, err := api.DerivedTasks(context.Background(), api.DerivedTasksRequest{Config: cfg})
	if err != nil {
		t.Fatalf("DerivedTasks returned error: %v", err)
	}
	if board.Session.Mode != "offline" {
		t.Fatalf("expected an offline session, got %q", board.Session.Mode)
	}

	kinds := map[string]int{}
	for _, task := range board.Tasks {
		if !task.Virtual {
			t.Fatalf("offline derivation has no persisted tasks, got %+v", task)
		}
		kinds[task.Kind]++
	}
	if kinds["dirty"] != 2 {
		t.Fatalf("expected both dirty demo rooms derived, got %v", kinds)
	}
	if kinds["stayover"] != 1 {
		t.Fatalf("expected the occupied demo room derived, got %v", kinds)
	}
}

func TestStartTaskPromotesVirtualIdentity(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	result, err := api.StartTask(context.Background(), api.StartTaskRequest{
		Config: cfg,
		TaskID: housekeeping.VirtualID("main", "R1"),
	})
	if err != nil {
		t.Fatalf("StartTask returned error: %v", err)
	}
	if result.Task.Virtual {
		t.Fatal("expected promotion to a persisted task")
	}
	if housekeeping.IsVirtualID(result.Task.ID) {
		t.Fatalf("expected a durable id, got %q", result.Task.ID)
	}
	if result.Task.Status != "in_progress" {
		t.Fatalf("unexpected status %q", result.Task.Status)
	}
	if result.Task.Assignee != "tester" {
		t.Fatalf("expected the configured operator as assignee, got %q", result.Task.Assignee)
	}
	if result.Task.Points != 2 {
		t.Fatalf("dirty tasks award 2 points, got %d", result.Task.Points)
	}
}

func TestStartTaskRejectsUnknownID(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	_, err := api.StartTask(context.Background(), api.StartTaskRequest{
		Config: cfg,
		TaskID: "no-such-task",
	})
	if !errors.Is(err, housekeeping.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCompleteTaskRejectsPendingTask(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	_, err := api.CompleteTask(context.Background(), api.CompleteTaskRequest{
		Config: cfg,
		TaskID: housekeeping.VirtualID("main", "R1"),
	})
	if !errors.Is(err, housekeeping.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestInventoryVarianceSortsShortagesFirst(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	report, err := api.InventoryVariance(context.Background(), api.InventoryVarianceRequest{Config: cfg})
	if err != nil {
		t.Fatalf("InventoryVariance returned error: %v", err)
	}
	if len(report.Lines) == 0 {
		t.Fatal("expected variance lines for the demo property")
	}
	for i := 1; i < len(report.Lines); i++ {
		if report.Lines[i-1].Variance > report.Lines[i].Variance {
			t.Fatalf("lines must sort ascending by variance: %+v", report.Lines)
		}
	}
	for _, line := range report.Lines {
		if line.Variance != line.Actual-line.Required {
			t.Fatalf("inconsistent line %+v", line)
		}
	}
}
