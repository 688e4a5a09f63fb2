package sqlite

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	// Import the pure-Go SQLite driver.
	_ "modernc.org/sqlite"

	"github.com/useadvisor/advisor/internal/profile"
	"github.com/useadvisor/advisor/store"
)

type DB struct {
	db      *sql.DB
	profile *profile.Profile
}

// NewDB opens a database specified by its database driver name and a
// driver-specific data source name, usually consisting of at least a
// database name and connection information.
func NewDB(profile *profile.Profile) (store.Driver, error) {
	if profile == nil {
		return nil, errors.New("profile is nil")
	}

	// Connect to the database with some sane settings:
	// - Single connection: avoids SQLITE_BUSY under concurrent writers.
	// - No shared cache: it is deprecated and nowadays is faster without it.
	sqliteDB, err := sql.Open("sqlite", profile.DSN+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open db with dsn: %s", profile.DSN)
	}
	sqliteDB.SetMaxOpenConns(1)

	driver := DB{db: sqliteDB, profile: profile}
	return &driver, nil
}

func (d *DB) GetDB() *sql.DB {
	return d.db
}

func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS consultant (
			id                 INTEGER PRIMARY KEY AUTOINCREMENT,
			consultant_id      TEXT NOT NULL UNIQUE,
			name               TEXT NOT NULL,
			system_instruction TEXT NOT NULL,
			topic_scope        TEXT NOT NULL DEFAULT '[]',
			is_active          INTEGER NOT NULL DEFAULT 1,
			created_ts         BIGINT NOT NULL DEFAULT (strftime('%s', 'now')),
			updated_ts         BIGINT NOT NULL DEFAULT (strftime('%s', 'now'))
		)`,
		`CREATE TABLE IF NOT EXISTS chat_record (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id    TEXT NOT NULL UNIQUE,
			consultant_id TEXT NOT NULL,
			created_ts    BIGINT NOT NULL DEFAULT (strftime('%s', 'now')),
			updated_ts    BIGINT NOT NULL DEFAULT (strftime('%s', 'now'))
		)`,
		`CREATE TABLE IF NOT EXISTS chat_turn (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			record_id  INTEGER NOT NULL REFERENCES chat_record(id) ON DELETE CASCADE,
			role       TEXT NOT NULL,
			text       TEXT NOT NULL,
			created_ts BIGINT NOT NULL DEFAULT (strftime('%s', 'now'))
		)`,
		`CREATE INDEX IF NOT EXISTS idx_chat_turn_record ON chat_turn(record_id)`,
	}
	for _, stmt := range stmts {
		if _, err := d.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
