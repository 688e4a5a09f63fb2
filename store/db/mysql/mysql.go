package mysql

import (
	"context"
	"database/sql"

	// Import the MySQL driver.
	_ "github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"

	"github.com/useadvisor/advisor/internal/profile"
	"github.com/useadvisor/advisor/store"
)

type DB struct {
	db      *sql.DB
	profile *profile.Profile
}

// NewDB opens a database specified by its database driver name and a
// driver-specific data source name.
func NewDB(profile *profile.Profile) (store.Driver, error) {
	if profile == nil {
		return nil, errors.New("profile is nil")
	}

	db, err := sql.Open("mysql", profile.DSN)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open db with dsn: %s", profile.DSN)
	}

	driver := DB{db: db, profile: profile}
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
		"CREATE TABLE IF NOT EXISTS `consultant` (" +
			"`id` INT NOT NULL AUTO_INCREMENT PRIMARY KEY, " +
			"`consultant_id` VARCHAR(256) NOT NULL UNIQUE, " +
			"`name` TEXT NOT NULL, " +
			"`system_instruction` TEXT NOT NULL, " +
			"`topic_scope` TEXT NOT NULL, " +
			"`is_active` BOOLEAN NOT NULL DEFAULT TRUE, " +
			"`created_ts` TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP, " +
			"`updated_ts` TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP)",
		"CREATE TABLE IF NOT EXISTS `chat_record` (" +
			"`id` INT NOT NULL AUTO_INCREMENT PRIMARY KEY, " +
			"`session_id` VARCHAR(256) NOT NULL UNIQUE, " +
			"`consultant_id` VARCHAR(256) NOT NULL, " +
			"`created_ts` TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP, " +
			"`updated_ts` TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP)",
		"CREATE TABLE IF NOT EXISTS `chat_turn` (" +
			"`id` INT NOT NULL AUTO_INCREMENT PRIMARY KEY, " +
			"`record_id` INT NOT NULL, " +
			"`role` VARCHAR(256) NOT NULL, " +
			"`text` TEXT NOT NULL, " +
			"`created_ts` TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP, " +
			"CONSTRAINT `fk_chat_turn_record` FOREIGN KEY (`record_id`) REFERENCES `chat_record`(`id`) ON DELETE CASCADE, " +
			"INDEX `idx_chat_turn_record` (`record_id`))",
	}
	for _, stmt := range stmts {
		if _, err := d.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
