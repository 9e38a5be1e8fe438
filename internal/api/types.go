package api

import (
	"time"

	"turndown/internal/gateway"
	"turndown/internal/housekeeping"
	"turndown/internal/inventory"
)

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Session reports how the gateway is operating so callers can surface
// offline or degraded operation.
type Session struct {
	Mode          string `json:"mode"`
	SchemaWarning bool   `json:"schemaWarning"`
}

// TaskView describes a housekeeping task in a transport-friendly format.
type TaskView struct {
	ID             string          `json:"id"`
	Virtual        bool            `json:"virtual"`
	Facility       string          `json:"facility"`
	RoomID         string          `json:"roomId"`
	RoomCode       string          `json:"roomCode"`
	Kind           string          `json:"kind"`
	Status         string          `json:"status"`
	Priority       string          `json:"priority,omitempty"`
	Assignee       string          `json:"assignee,omitempty"`
	Points         int             `json:"points"`
	CreatedAt      string          `json:"createdAt,omitempty"`
	StartedAt      string          `json:"startedAt,omitempty"`
	CompletedAt    string          `json:"completedAt,omitempty"`
	Checklist      []ChecklistItem `json:"checklist,omitempty"`
	Note           string          `json:"note,omitempty"`
	PhotoRefs      []string        `json:"photoRefs,omitempty"`
	LinenExchanged int             `json:"linenExchanged,omitempty"`
}

// ChecklistItem is one entry of a task's completion checklist.
type ChecklistItem struct {
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// TaskBoard is the derived work list plus session state.
type TaskBoard struct {
	Tasks   []TaskView `json:"tasks"`
	Session Session    `json:"session"`
}

// TaskResult is the outcome of a lifecycle transition.
type TaskResult struct {
	Task    TaskView `json:"task"`
	Session Session  `json:"session"`
}

// VarianceLine compares one item's counted stock against the full-house
// requirement.
type VarianceLine struct {
	ItemID   string `json:"itemId"`
	Name     string `json:"name"`
	Unit     string `json:"unit,omitempty"`
	Required int    `json:"required"`
	Actual   int    `json:"actual"`
	Variance int    `json:"variance"`
}

// VarianceReport is the variance listing plus session state.
type VarianceReport struct {
	Lines   []VarianceLine `json:"lines"`
	Session Session        `json:"session"`
}

// FromTask converts an internal task into its transport representation.
func FromTask(task housekeeping.Task) TaskView {
	view := TaskView{
		ID:             task.ID,
		Virtual:        task.Virtual,
		Facility:       task.Facility,
		RoomID:         task.RoomID,
		RoomCode:       task.RoomCode,
		Kind:           string(task.Kind),
		Status:         string(task.Status),
		Priority:       string(task.Priority),
		Assignee:       task.Assignee,
		Points:         task.Points,
		CreatedAt:      formatTime(task.CreatedAt),
		Note:           task.Note,
		PhotoRefs:      task.PhotoRefs,
		LinenExchanged: task.LinenExchanged,
	}
	if task.StartedAt != nil {
		view.StartedAt = formatTime(*task.StartedAt)
	}
	if task.CompletedAt != nil {
		view.CompletedAt = formatTime(*task.CompletedAt)
	}
	for _, item := range task.Checklist {
		view.Checklist = append(view.Checklist, ChecklistItem{Text: item.Text, Done: item.Done})
	}
	return view
}

// FromVariance converts variance lines into their transport representation.
func FromVariance(lines []inventory.VarianceLine) []VarianceLine {
	views := make([]VarianceLine, 0, len(lines))
	for _, line := range lines {
		views = append(views, VarianceLine{
			ItemID:   line.ItemID,
			Name:     line.Name,
			Unit:     line.Unit,
			Required: line.Required,
			Actual:   line.Actual,
			Variance: line.Variance,
		})
	}
	return views
}

func sessionOf(g *gateway.Gateway) Session {
	return Session{
		Mode:          string(g.Mode()),
		SchemaWarning: g.SchemaWarning(),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateTimeFormat)
}
