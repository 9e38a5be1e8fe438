package housekeeping

import (
	"strings"
	"time"
)

// Status represents the lifecycle of a housekeeping task.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

var statusRank = map[Status]int{
	StatusInProgress: 0,
	StatusPending:    1,
	StatusDone:       2,
}

// ParseStatus maps a wire value onto a Status.
func ParseStatus(value string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "pending", "chờ dọn", "cho don":
		return StatusPending, true
	case "in_progress", "in progress", "đang dọn", "dang don":
		return StatusInProgress, true
	case "done", "hoàn thành", "hoan thanh":
		return StatusDone, true
	default:
		return "", false
	}
}

// Kind classifies why a task exists.
type Kind string

const (
	KindCheckout Kind = "checkout"
	KindStayover Kind = "stayover"
	KindDirty    Kind = "dirty"
	KindVacant   Kind = "vacant"
)

var kindRank = map[Kind]int{
	KindCheckout: 0,
	KindDirty:    1,
	KindStayover: 2,
	KindVacant:   3,
}

// Points returns the workload credit awarded for completing a task of this
// kind.
func (k Kind) Points() int {
	switch k {
	case KindCheckout:
		return 4
	case KindDirty:
		return 2
	default:
		return 1
	}
}

// ParseKind maps a wire value onto a Kind.
func ParseKind(value string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "checkout", "trả phòng", "tra phong":
		return KindCheckout, true
	case "stayover", "lưu trú", "luu tru":
		return KindStayover, true
	case "dirty", "phòng bẩn", "phong ban":
		return KindDirty, true
	case "vacant", "phòng trống", "phong trong":
		return KindVacant, true
	default:
		return "", false
	}
}

// Priority orders tasks of equal status and kind for the operator.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityNormal Priority = "normal"
	PriorityLow    Priority = "low"
)

// ChecklistItem is one entry of a task's completion checklist.
type ChecklistItem struct {
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// Task is a unit of housekeeping work. Virtual tasks carry a synthetic
// identity of the form "virtual:<facility>:<room>" and are promoted to a
// durable uuid identity the moment they are started.
type Task struct {
	ID             string
	Virtual        bool
	Facility       string
	RoomID         string
	RoomCode       string
	Kind           Kind
	Status         Status
	Priority       Priority
	Assignee       string
	Points         int
	CreatedAt      time.Time
	StartedAt      *time.Time
	CompletedAt    *time.Time
	Checklist      []ChecklistItem
	Note           string
	PhotoRefs      []string
	LinenExchanged int
}

// RoomKey returns the (facility, room) identity the task belongs to.
func (t Task) RoomKey() string {
	return t.Facility + "/" + t.RoomID
}

// Active reports whether the task still demands work.
func (t Task) Active() bool {
	return t.Status == StatusPending || t.Status == StatusInProgress
}

const virtualIDPrefix = "virtual:"

// VirtualID builds the synthetic identity for a derived task. It is stable
// across derivations so the UI can address the task before it is started.
func VirtualID(facility, roomID string) string {
	return virtualIDPrefix + facility + ":" + roomID
}

// IsVirtualID reports whether an identity names a derived, not yet persisted
// task.
func IsVirtualID(id string) bool {
	return strings.HasPrefix(id, virtualIDPrefix)
}
