package gateway

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	_ "github.com/jackc/pgx/v5/stdlib"

	"turndown/internal/config"
	"turndown/internal/logging"
)

// sqlDB is the slice of *sql.DB the gateway uses. Narrowed to an interface
// so drift and connectivity behavior can be exercised without a server.
type sqlDB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	PingContext(ctx context.Context) error
	Close() error
}

// Gateway is the uniform read/write facade over the remote store.
type Gateway struct {
	db       sqlDB
	cache    *snapshotCache
	lock     *flock.Flock
	logger   *slog.Logger
	facility string
	clock    func() time.Time

	// includeExtended controls whether queries carry the newer columns.
	// Cleared when the startup probe finds an older schema.
	includeExtended bool

	mu            sync.Mutex
	mode          Mode
	schemaWarning bool
}

// Open connects to the remote store, probes the schema, and acquires the
// per-workstation session lock. Connection checks retry with fixed backoff up
// to the configured attempt count; when the store stays unreachable the
// gateway opens in offline mode rather than failing.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Gateway, error) {
	if cfg == nil {
		return nil, errors.New("gateway requires configuration")
	}
	if err := validateFieldMaps(); err != nil {
		return nil, err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	sessionLock := flock.New(filepath.Join(cfg.Paths.DataDir, "turndown.lock"))
	held, err := sessionLock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire session lock: %w", err)
	}
	if !held {
		return nil, errors.New("another turndown session is active for this data directory")
	}

	cache, err := openSnapshotCache(cfg.Paths.DataDir)
	if err != nil {
		_ = sessionLock.Unlock()
		return nil, err
	}

	g := &Gateway{
		cache:           cache,
		lock:            sessionLock,
		logger:          logging.NewComponentLogger(logger, "gateway"),
		facility:        cfg.Facility.Code,
		clock:           time.Now,
		includeExtended: true,
		mode:            ModeLive,
	}

	if cfg.Database.Offline {
		g.mode = ModeOffline
		g.logger.Info("offline mode configured, remote store skipped")
		return g, nil
	}

	db, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		_ = g.Close()
		return nil, fmt.Errorf("open remote store: %w", err)
	}
	g.db = db

	backoff := time.Duration(cfg.Database.ConnectBackoff) * time.Millisecond
	if err := pingWithBackoff(ctx, db, cfg.Database.ConnectAttempts, backoff); err != nil {
		g.mode = ModeOffline
		g.logger.Warn("remote store unreachable, working offline", logging.Error(err))
		return g, nil
	}

	g.probeSchema(ctx)
	return g, nil
}

// pingWithBackoff retries the connection check with a fixed delay between
// attempts. Individual reads and writes later on do not retry; only the
// session-opening check does.
func pingWithBackoff(ctx context.Context, db sqlDB, attempts int, backoff time.Duration) error {
	if attempts <= 0 {
		attempts = 1
	}
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		lastErr = db.PingContext(ctx)
		if lastErr == nil {
			return nil
		}
		if attempt == attempts-1 {
			break
		}
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, lastErr)
}

// probeSchema checks for the presence of the extended columns so the session
// can avoid issuing queries the remote schema cannot answer. A missing table
// escalates to degraded mode immediately.
func (g *Gateway) probeSchema(ctx context.Context) {
	for table, fields := range entityFields {
		for _, field := range fields {
			if !field.extended {
				continue
			}
			row := g.queryRow(
				ctx,
				`SELECT EXISTS (
                    SELECT 1 FROM information_schema.columns
                    WHERE table_name = $1 AND column_name = $2
                )`,
				table, field.wire,
			)
			if row == nil {
				return
			}
			var exists bool
			err := row.Scan(&exists)
			if err != nil {
				if isConnectivity(err) {
					g.enterOffline(err)
					return
				}
				g.logger.Warn("schema probe failed", logging.String("table", table), logging.Error(err))
				return
			}
			if !exists {
				g.logger.Warn("remote schema is missing newer columns",
					logging.String("table", table),
					logging.String("column", field.wire))
				g.disableExtended()
			}
		}
	}
}

// queryRow narrows to QueryRowContext when the underlying handle supports
// it. *sql.DB always does; a fake without row support skips single-row
// probes.
func (g *Gateway) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	type rowQuerier interface {
		QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	}
	if rq, ok := g.db.(rowQuerier); ok {
		return rq.QueryRowContext(ctx, query, args...)
	}
	return nil
}

// Close releases the session lock and closes the cache and store handles.
func (g *Gateway) Close() error {
	var errs []error
	if g.db != nil {
		if err := g.db.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := g.cache.Close(); err != nil {
		errs = append(errs, err)
	}
	if g.lock != nil {
		if err := g.lock.Unlock(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func logAttrError(err error) slog.Attr {
	return logging.Error(err)
}
