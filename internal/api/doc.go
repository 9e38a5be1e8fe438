// Package api exposes the housekeeping operations as self-contained
// functions over transport-friendly DTOs. Each operation opens the storage
// gateway for the duration of the call, so the CLI and any future HTTP
// surface share one code path and one session-mode story.
//
// # Operations
//
// DerivedTasks: derive the current work list from live rooms, stays, and
// persisted tasks.
//
// StartTask: move a pending task (virtual or persisted) to in-progress.
//
// CompleteTask: reconcile inventory and move an in-progress task to done.
//
// InventoryVariance: compare counted stock against the full-house requirement.
//
// # Design Notes
//
// DTOs use camelCase JSON tags. Internal enums are exposed as lowercase
// strings. Every response carries the gateway session state so callers can
// surface offline or degraded operation and schema warnings.
package api
