package db

import (
	"database/sql"
	"fmt"

	"github.com/stevenmcsorley/rn-kit/internal/model"
)

// schemaVersion gates which migrations have been applied. It is stored in
// PRAGMA user_version and only advanced after every step commits.
const schemaVersion = 4

// Migrations are additive only: columns are created but never dropped or
// renamed, so rows written under any older schema survive an upgrade with
// their original values intact. New columns default to NULL and are never
// backfilled.
const createItemsTable = `
CREATE TABLE IF NOT EXISTS items (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT,
  brand TEXT,
  calories REAL,
  barcode TEXT,
  protein REAL,
  carbs REAL,
  fat REAL,
  saturatedFat REAL,
  cholesterol REAL,
  sodium REAL,
  fiber REAL,
  sugar REAL,
  date TEXT,
  quantity REAL,
  unit TEXT,
  servingType TEXT
);`

const createSettingsTable = `
CREATE TABLE IF NOT EXISTS settings (
  key TEXT PRIMARY KEY,
  value REAL
);`

type column struct {
	name    string
	sqlType string
}

// Columns added after the first released schema, per table. A database
// created under an older version gets exactly the ones it is missing.
var addedColumns = map[string][]column{
	"items": {
		{"protein", "REAL"},
		{"carbs", "REAL"},
		{"fat", "REAL"},
		{"saturatedFat", "REAL"},
		{"cholesterol", "REAL"},
		{"sodium", "REAL"},
		{"fiber", "REAL"},
		{"sugar", "REAL"},
		{"date", "TEXT"},
		{"quantity", "REAL"},
		{"unit", "TEXT"},
		{"servingType", "TEXT"},
	},
	"settings": {},
}

// Migrate brings the database up to the current schema. It is a no-op when
// the stored version is already current, and safe to re-run: a failure rolls
// back the whole transaction, leaving schema and version untouched.
// Migration must complete before any repository operation is issued.
func Migrate(sqldb *sql.DB) error {
	var current int
	if err := sqldb.QueryRow(`PRAGMA user_version`).Scan(&current); err != nil {
		return &model.MigrationError{Version: schemaVersion, Err: fmt.Errorf("read user_version: %w", err)}
	}
	if current >= schemaVersion {
		return nil
	}

	// Foreign-key enforcement is suspended for the duration of the schema
	// change. The pragma is connection-scoped and cannot change inside a
	// transaction, so it brackets the transaction.
	if _, err := sqldb.Exec(`PRAGMA foreign_keys = OFF;`); err != nil {
		return &model.MigrationError{Version: schemaVersion, Err: fmt.Errorf("suspend foreign keys: %w", err)}
	}
	defer func() {
		_, _ = sqldb.Exec(`PRAGMA foreign_keys = ON;`)
	}()

	if err := migrateTx(sqldb, current); err != nil {
		return &model.MigrationError{Version: schemaVersion, Err: err}
	}
	return nil
}

func migrateTx(sqldb *sql.DB, current int) error {
	tx, err := sqldb.Begin()
	if err != nil {
		return fmt.Errorf("begin migration tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, stmt := range []string{createItemsTable, createSettingsTable} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}

	for table, columns := range addedColumns {
		existing, err := tableColumns(tx, table)
		if err != nil {
			return err
		}
		for _, col := range columns {
			if existing[col.name] {
				continue
			}
			stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s;", table, col.name, col.sqlType)
			if _, err := tx.Exec(stmt); err != nil {
				return fmt.Errorf("add column %s.%s: %w", table, col.name, err)
			}
		}
	}

	// Insert-if-absent: a user-set goal is never overwritten.
	if _, err := tx.Exec(
		`INSERT OR IGNORE INTO settings (key, value) VALUES (?, ?)`,
		model.SettingDailyCalorieGoal, model.DefaultDailyCalorieGoal,
	); err != nil {
		return fmt.Errorf("seed default settings: %w", err)
	}

	// user_version participates in the transaction, so the version advances
	// only if everything above commits.
	if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d;", schemaVersion)); err != nil {
		return fmt.Errorf("set user_version from %d to %d: %w", current, schemaVersion, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration: %w", err)
	}
	return nil
}

func tableColumns(tx *sql.Tx, table string) (map[string]bool, error) {
	rows, err := tx.Query(`SELECT name FROM pragma_table_info(?)`, table)
	if err != nil {
		return nil, fmt.Errorf("introspect table %s: %w", table, err)
	}
	defer rows.Close()

	columns := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan column name for %s: %w", table, err)
		}
		columns[name] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate columns for %s: %w", table, err)
	}
	return columns, nil
}
