// Package housekeeping owns the task model, the derivation of work items from
// room and stay state, and the task lifecycle state machine.
//
// Tasks exist in two modes: persisted tasks carry a durable identity and
// survive across sessions, while virtual tasks are synthesized on read from
// live room and stay state and only gain a durable identity when started.
// Derivation is pure; the lifecycle manager performs the persistence and
// room-status side effects through a narrow store interface.
//
// Treat this package as the single source of truth for task semantics; when
// you add task kinds or statuses, update the rank tables alongside them so
// list ordering stays deterministic.
package housekeeping
