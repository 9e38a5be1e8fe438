// Package gateway mediates all persistence for the housekeeping core against
// a remote property-management store that may be unreachable or may have
// drifted from the expected schema.
//
// The gateway owns connectivity state, schema-drift detection, and the
// bidirectional field mapping between wire columns and the domain model. It
// runs in one of three modes: live (remote PostgreSQL), offline (reads serve
// the local snapshot cache, falling back to built-in datasets; writes are
// dropped and logged), and degraded (a required table is missing entirely;
// reads serve built-in datasets and writes are no-ops). Offline and degraded
// are sticky for the remainder of the session; no automatic re-promotion to
// live is attempted.
//
// A write that fails because the remote schema lacks a newer column is
// retried once with the extended fields stripped, so the core keeps
// functioning against older deployments.
package gateway
