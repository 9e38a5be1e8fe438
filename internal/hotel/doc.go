// Package hotel defines the shared domain model for the housekeeping core:
// rooms, stays, item definitions, and room-type recipes.
//
// These entities are owned by collaborating flows (booking, room management,
// inventory configuration); the housekeeping core reads all of them and writes
// only the fields it owns, such as room status and item stock counters. Enum
// parsing is tolerant of the legacy wire vocabulary, including the Vietnamese
// status and category labels found in operator data.
package hotel
