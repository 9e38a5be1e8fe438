package gateway

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// snapshotCache mirrors successful live reads into a local SQLite database so
// offline sessions can serve the last known data instead of only the built-in
// demonstration defaults.
type snapshotCache struct {
	db *sql.DB
}

func openSnapshotCache(dataDir string) (*snapshotCache, error) {
	path := filepath.Join(dataDir, "snapshot.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	schema := `CREATE TABLE IF NOT EXISTS snapshots (
        entity TEXT NOT NULL,
        data TEXT NOT NULL,
        refreshed_at TEXT NOT NULL,
        PRIMARY KEY (entity)
    )`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init snapshot schema: %w", err)
	}

	return &snapshotCache{db: db}, nil
}

func (c *snapshotCache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// store replaces the cached snapshot for an entity with a JSON encoding of
// the freshly read rows.
func (c *snapshotCache) store(ctx context.Context, entity string, rows any) error {
	if c == nil {
		return nil
	}
	data, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("encode %s snapshot: %w", entity, err)
	}
	_, err = c.db.ExecContext(
		ctx,
		`INSERT INTO snapshots (entity, data, refreshed_at) VALUES (?, ?, ?)
         ON CONFLICT (entity) DO UPDATE SET data = excluded.data, refreshed_at = excluded.refreshed_at`,
		entity,
		string(data),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("store %s snapshot: %w", entity, err)
	}
	return nil
}

// load decodes the cached snapshot for an entity into out. The second return
// is false when no snapshot exists.
func (c *snapshotCache) load(ctx context.Context, entity string, out any) (bool, error) {
	if c == nil {
		return false, nil
	}
	var data string
	err := c.db.QueryRowContext(
		ctx,
		`SELECT data FROM snapshots WHERE entity = ?`,
		entity,
	).Scan(&data)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load %s snapshot: %w", entity, err)
	}
	if err := json.Unmarshal([]byte(data), out); err != nil {
		return false, fmt.Errorf("decode %s snapshot: %w", entity, err)
	}
	return true, nil
}
