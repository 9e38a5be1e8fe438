package gateway

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrUnavailable marks a remote store that could not be reached.
	ErrUnavailable = errors.New("store unavailable")

	// ErrSchemaDrift marks a call that failed because the remote schema is
	// older than the one this build expects.
	ErrSchemaDrift = errors.New("schema drift")

	// ErrDegraded marks an operation refused because the session is in
	// degraded mode and persistence is disabled.
	ErrDegraded = errors.New("degraded mode")

	// ErrNotFound marks an entity lookup that came back empty.
	ErrNotFound = errors.New("not found")
)

const (
	sqlstateUndefinedColumn = "42703"
	sqlstateUndefinedTable  = "42P01"
)

func isUndefinedColumn(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == sqlstateUndefinedColumn
}

func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == sqlstateUndefinedTable
}

// isConnectivity reports whether an error means the remote store is
// unreachable rather than rejecting the request.
func isConnectivity(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "08") {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "failed to connect") ||
		strings.Contains(msg, "broken pipe")
}
