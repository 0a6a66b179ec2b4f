package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alertmgr/backend/pkg/constants"
)

// Migration is one schema step. Statements are executed one at a time since
// the mysql driver rejects multi-statement strings by default.
type Migration struct {
	Version int
	MySQL   []string
	SQLite  []string
}

var migrations = []Migration{
	{
		Version: 1,
		MySQL: []string{`
CREATE TABLE IF NOT EXISTS ` + constants.TableAlert + ` (
	id VARCHAR(36) NOT NULL PRIMARY KEY,
	owner_id VARCHAR(64) NOT NULL,
	dashboard_id VARCHAR(64) NOT NULL DEFAULT '',
	dashboard_title VARCHAR(255) NOT NULL DEFAULT '',
	dashboard_url TEXT NOT NULL,
	query_slug VARCHAR(64) NOT NULL DEFAULT '',
	model VARCHAR(255) NOT NULL DEFAULT '',
	view_name VARCHAR(255) NOT NULL DEFAULT '',
	custom_title VARCHAR(255) NOT NULL DEFAULT '',
	comparison_type VARCHAR(32) NOT NULL,
	threshold DOUBLE NULL,
	cron VARCHAR(64) NOT NULL DEFAULT '',
	field JSON NOT NULL,
	applied_dashboard_filters JSON NOT NULL,
	destinations JSON NOT NULL,
	followers JSON NOT NULL,
	created_at VARCHAR(40) NOT NULL,
	updated_at VARCHAR(40) NOT NULL,
	KEY idx_am_alert_dashboard (dashboard_id),
	KEY idx_am_alert_owner (owner_id)
) DEFAULT CHARSET=utf8mb4`,
		},
		SQLite: []string{`
CREATE TABLE IF NOT EXISTS ` + constants.TableAlert + ` (
	id TEXT PRIMARY KEY,
	owner_id TEXT NOT NULL,
	dashboard_id TEXT NOT NULL DEFAULT '',
	dashboard_title TEXT NOT NULL DEFAULT '',
	dashboard_url TEXT NOT NULL DEFAULT '',
	query_slug TEXT NOT NULL DEFAULT '',
	model TEXT NOT NULL DEFAULT '',
	view_name TEXT NOT NULL DEFAULT '',
	custom_title TEXT NOT NULL DEFAULT '',
	comparison_type TEXT NOT NULL,
	threshold REAL,
	cron TEXT NOT NULL DEFAULT '',
	field TEXT NOT NULL,
	applied_dashboard_filters TEXT NOT NULL,
	destinations TEXT NOT NULL,
	followers TEXT NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
)`,
			`CREATE INDEX IF NOT EXISTS idx_am_alert_dashboard ON ` + constants.TableAlert + `(dashboard_id)`,
			`CREATE INDEX IF NOT EXISTS idx_am_alert_owner ON ` + constants.TableAlert + `(owner_id)`,
		},
	},
}

func (m Migration) statements(driver string) []string {
	if driver == DriverMySQL {
		return m.MySQL
	}
	return m.SQLite
}

// Migrate applies every migration not yet recorded in the migration table
func (c *Connection) Migrate(ctx context.Context) error {
	return applyMigrations(ctx, c.db, c.driver, migrations)
}

func applyMigrations(ctx context.Context, db *sql.DB, driver string, steps []Migration) error {
	createTracking := `CREATE TABLE IF NOT EXISTS ` + constants.TableSchemaMigration +
		`(version INTEGER PRIMARY KEY, applied_at VARCHAR(40) NOT NULL)`
	if _, err := db.ExecContext(ctx, createTracking); err != nil {
		return fmt.Errorf("create %s: %w", constants.TableSchemaMigration, err)
	}

	for _, m := range steps {
		var exists int
		err := db.QueryRowContext(ctx,
			`SELECT 1 FROM `+constants.TableSchemaMigration+` WHERE version = ?`, m.Version).Scan(&exists)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("check migration %d: %w", m.Version, err)
		}

		// DDL auto-commits on mysql, so statements run outside a transaction
		// and only the bookkeeping row marks the step as done.
		for _, stmt := range m.statements(driver) {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("apply migration %d: %w", m.Version, err)
			}
		}
		if _, err := db.ExecContext(ctx,
			`INSERT INTO `+constants.TableSchemaMigration+`(version, applied_at) VALUES (?, ?)`,
			m.Version, time.Now().UTC().Format(time.RFC3339)); err != nil {
			return fmt.Errorf("record migration %d: %w", m.Version, err)
		}
	}
	return nil
}

// SchemaVersion returns the highest applied migration, 0 when none
func (c *Connection) SchemaVersion(ctx context.Context) (int, error) {
	var version sql.NullInt64
	err := c.db.QueryRowContext(ctx, `SELECT MAX(version) FROM `+constants.TableSchemaMigration).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return int(version.Int64), nil
}

// Reset drops the alert tables and the migration history
func (c *Connection) Reset(ctx context.Context) error {
	for _, table := range []string{constants.TableAlert, constants.TableSchemaMigration} {
		if _, err := c.db.ExecContext(ctx, `DROP TABLE IF EXISTS `+table); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
	}
	return nil
}
