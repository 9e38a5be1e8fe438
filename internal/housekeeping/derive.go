package housekeeping

import (
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"turndown/internal/hotel"
)

// AntiGhostCooldown is the window after a task's completion during which the
// same room is suppressed from re-derivation as dirty. It absorbs stale
// live-status reads for rooms that were cleaned moments ago.
const AntiGhostCooldown = 120 * time.Minute

// roomCollator orders room codes numerically, so "R2" sorts before "R10".
var roomCollator = collate.New(language.Und, collate.Numeric)

// Derive computes the current work list from live room state, stays, and
// persisted tasks using the default anti-ghost cooldown.
//
// Derivation is pure and never fails: records with malformed (zero)
// timestamps are excluded from time comparisons rather than reported.
// Repeated calls over identical snapshots and the same now yield the same
// ordered list.
func Derive(rooms []hotel.Room, stays []hotel.Stay, persisted []Task, now time.Time) []Task {
	return DeriveWithCooldown(rooms, stays, persisted, now, AntiGhostCooldown)
}

// DeriveWithCooldown is Derive with an explicit anti-ghost cooldown.
func DeriveWithCooldown(rooms []hotel.Room, stays []hotel.Stay, persisted []Task, now time.Time, cooldown time.Duration) []Task {
	recentDone := recentCompletionIndex(persisted)
	activeToday := activeTodayIndex(persisted, now)
	staysByRoom := stayIndex(stays)

	ordered := make([]hotel.Room, len(rooms))
	copy(ordered, rooms)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Facility != ordered[j].Facility {
			return ordered[i].Facility < ordered[j].Facility
		}
		return roomCollator.CompareString(ordered[i].Code, ordered[j].Code) < 0
	})

	tasks := make([]Task, 0, len(ordered))
	for _, room := range ordered {
		key := room.Key()

		if task, ok := activeToday[key]; ok {
			// A concurrent process may have started cleaning through the
			// room entity without touching the task itself; reconcile the
			// stale Pending status for display.
			if room.Status == hotel.RoomCleaning && task.Status == StatusPending {
				task.Status = StatusInProgress
			}
			tasks = append(tasks, task)
			continue
		}

		blocked := completedWithin(recentDone, key, now, cooldown)

		if (room.Status == hotel.RoomDirty || room.Status == hotel.RoomCleaning) && !blocked {
			tasks = append(tasks, virtualTask(room, KindDirty, PriorityHigh, now))
			continue
		}

		if stay, ok := staysByRoom[key]; ok && stay.SpansDay(now) && !blocked {
			tasks = append(tasks, virtualTask(room, KindStayover, PriorityNormal, now))
		}
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		if statusRank[tasks[i].Status] != statusRank[tasks[j].Status] {
			return statusRank[tasks[i].Status] < statusRank[tasks[j].Status]
		}
		return kindRank[tasks[i].Kind] < kindRank[tasks[j].Kind]
	})
	return tasks
}

// recentCompletionIndex records the latest completion time per room for Done
// tasks, falling back to the creation time when the completion timestamp is
// absent or invalid.
func recentCompletionIndex(persisted []Task) map[string]time.Time {
	index := make(map[string]time.Time)
	for _, task := range persisted {
		if task.Status != StatusDone {
			continue
		}
		ts := task.CreatedAt
		if task.CompletedAt != nil && !task.CompletedAt.IsZero() {
			ts = *task.CompletedAt
		}
		if ts.IsZero() {
			continue
		}
		if existing, ok := index[task.RoomKey()]; !ok || ts.After(existing) {
			index[task.RoomKey()] = ts
		}
	}
	return index
}

// activeTodayIndex keeps every non-Done task plus Done tasks created on the
// current calendar day, so operators see same-day history without unbounded
// growth.
func activeTodayIndex(persisted []Task, now time.Time) map[string]Task {
	index := make(map[string]Task)
	for _, task := range persisted {
		if task.Status == StatusDone && !hotel.SameDay(task.CreatedAt, now) {
			continue
		}
		existing, ok := index[task.RoomKey()]
		if !ok {
			index[task.RoomKey()] = task
			continue
		}
		// Duplicate active tasks for one room are a derivation bug upstream;
		// active entries win over same-day history, later history wins over
		// earlier.
		if task.Active() && !existing.Active() {
			index[task.RoomKey()] = task
			continue
		}
		if !task.Active() && !existing.Active() && task.CreatedAt.After(existing.CreatedAt) {
			index[task.RoomKey()] = task
		}
	}
	return index
}

func stayIndex(stays []hotel.Stay) map[string]hotel.Stay {
	index := make(map[string]hotel.Stay)
	for _, stay := range stays {
		if stay.Status != hotel.StayCheckedIn {
			continue
		}
		index[stay.RoomKey()] = stay
	}
	return index
}

func completedWithin(recentDone map[string]time.Time, key string, now time.Time, cooldown time.Duration) bool {
	done, ok := recentDone[key]
	if !ok {
		return false
	}
	elapsed := now.Sub(done)
	return elapsed >= 0 && elapsed <= cooldown
}

func virtualTask(room hotel.Room, kind Kind, priority Priority, now time.Time) Task {
	return Task{
		ID:        VirtualID(room.Facility, room.ID),
		Virtual:   true,
		Facility:  room.Facility,
		RoomID:    room.ID,
		RoomCode:  room.Code,
		Kind:      kind,
		Status:    StatusPending,
		Priority:  priority,
		CreatedAt: now,
	}
}
