package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/stevenmcsorley/rn-kit/internal/model"
)

// SQLite implements FoodRepository over the embedded diary database. It owns
// the only reads and writes issued against the connection; db.Migrate must
// have completed before the first call.
type SQLite struct {
	db *sql.DB
}

var _ FoodRepository = (*SQLite)(nil)

func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

const itemColumns = `id, name, brand, barcode, calories, protein, carbs, fat, saturatedFat, cholesterol, sodium, fiber, sugar, date, quantity, unit, servingType`

func (r *SQLite) GetAllItems(ctx context.Context) ([]model.FoodLogEntry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+itemColumns+` FROM items ORDER BY date DESC`)
	if err != nil {
		return nil, &model.StorageError{Op: "get all items", Err: err}
	}
	defer rows.Close()
	return scanEntries(rows, "get all items")
}

func (r *SQLite) GetItemsByDateRange(ctx context.Context, start, end time.Time) ([]model.FoodLogEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE date BETWEEN ? AND ? ORDER BY id DESC`,
		formatDate(start), formatDate(end),
	)
	if err != nil {
		return nil, &model.StorageError{Op: "get items by date range", Err: err}
	}
	defer rows.Close()
	return scanEntries(rows, "get items by date range")
}

func (r *SQLite) AddItem(ctx context.Context, entry model.FoodLogEntry) (int64, error) {
	entry = withDefaults(entry)
	res, err := r.db.ExecContext(ctx, `
INSERT INTO items (name, brand, barcode, calories, protein, carbs, fat, saturatedFat, cholesterol, sodium, fiber, sugar, date, quantity, unit, servingType)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`,
		entry.Name, entry.Brand, entry.Barcode,
		entry.Calories, entry.Protein, entry.Carbs, entry.Fat,
		entry.SaturatedFat, entry.Cholesterol, entry.Sodium, entry.Fiber, entry.Sugar,
		formatDate(entry.Date), entry.Quantity, entry.Unit, entry.ServingType,
	)
	if err != nil {
		return 0, &model.StorageError{Op: "add item", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, &model.StorageError{Op: "add item", Err: fmt.Errorf("resolve inserted id: %w", err)}
	}
	return id, nil
}

func (r *SQLite) GetItemByBarcode(ctx context.Context, barcode string) (*model.FoodLogEntry, error) {
	// A repeated barcode matches multiple rows; the most recent one is the
	// defined winner, with id as the tie-break within a timestamp.
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE barcode = ? ORDER BY date DESC, id DESC LIMIT 1`,
		barcode,
	)
	if err != nil {
		return nil, &model.StorageError{Op: "get item by barcode", Err: err}
	}
	defer rows.Close()
	entries, err := scanEntries(rows, "get item by barcode")
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}

func (r *SQLite) UpdateItem(ctx context.Context, entry model.FoodLogEntry) error {
	entry = withDefaults(entry)
	_, err := r.db.ExecContext(ctx, `
UPDATE items
SET name = ?, brand = ?, calories = ?, protein = ?, carbs = ?, fat = ?, saturatedFat = ?, cholesterol = ?, sodium = ?, fiber = ?, sugar = ?, date = ?, quantity = ?, unit = ?, servingType = ?
WHERE id = ?
`,
		entry.Name, entry.Brand,
		entry.Calories, entry.Protein, entry.Carbs, entry.Fat,
		entry.SaturatedFat, entry.Cholesterol, entry.Sodium, entry.Fiber, entry.Sugar,
		formatDate(entry.Date), entry.Quantity, entry.Unit, entry.ServingType,
		entry.ID,
	)
	if err != nil {
		return &model.StorageError{Op: "update item", Err: err}
	}
	return nil
}

func (r *SQLite) DeleteItem(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id); err != nil {
		return &model.StorageError{Op: "delete item", Err: err}
	}
	return nil
}

func (r *SQLite) GetDailyCalorieGoal(ctx context.Context) (float64, error) {
	var goal float64
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ? LIMIT 1`, model.SettingDailyCalorieGoal,
	).Scan(&goal)
	if err == sql.ErrNoRows {
		return model.DefaultDailyCalorieGoal, nil
	}
	if err != nil {
		return 0, &model.StorageError{Op: "get daily calorie goal", Err: err}
	}
	return goal, nil
}

func (r *SQLite) SetDailyCalorieGoal(ctx context.Context, goal float64) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO settings (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value
`, model.SettingDailyCalorieGoal, goal)
	if err != nil {
		return &model.StorageError{Op: "set daily calorie goal", Err: err}
	}
	return nil
}

// Dates are stored as ISO-8601 text in UTC so that lexical comparison in SQL
// matches chronological order regardless of the offset an entry was logged in.
func formatDate(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func withDefaults(entry model.FoodLogEntry) model.FoodLogEntry {
	if entry.Unit == "" {
		entry.Unit = "g"
	}
	if entry.ServingType == "" {
		entry.ServingType = model.ServingTypeFull
	}
	if entry.Date.IsZero() {
		entry.Date = time.Now()
	}
	return entry
}

func scanEntries(rows *sql.Rows, op string) ([]model.FoodLogEntry, error) {
	entries := make([]model.FoodLogEntry, 0)
	for rows.Next() {
		var (
			e                         model.FoodLogEntry
			name, brand, barcode      sql.NullString
			unit, servingType, date   sql.NullString
			calories, protein, carbs  sql.NullFloat64
			fat, saturatedFat         sql.NullFloat64
			cholesterol, sodium       sql.NullFloat64
			fiber, sugar, quantity    sql.NullFloat64
		)
		if err := rows.Scan(
			&e.ID, &name, &brand, &barcode,
			&calories, &protein, &carbs, &fat,
			&saturatedFat, &cholesterol, &sodium, &fiber, &sugar,
			&date, &quantity, &unit, &servingType,
		); err != nil {
			return nil, &model.StorageError{Op: op, Err: fmt.Errorf("scan entry: %w", err)}
		}
		e.Name = name.String
		e.Brand = brand.String
		e.Barcode = barcode.String
		e.Calories = nullableFloat(calories)
		e.Protein = nullableFloat(protein)
		e.Carbs = nullableFloat(carbs)
		e.Fat = nullableFloat(fat)
		e.SaturatedFat = nullableFloat(saturatedFat)
		e.Cholesterol = nullableFloat(cholesterol)
		e.Sodium = nullableFloat(sodium)
		e.Fiber = nullableFloat(fiber)
		e.Sugar = nullableFloat(sugar)
		e.Quantity = quantity.Float64
		e.Unit = unit.String
		e.ServingType = servingType.String
		if date.Valid && date.String != "" {
			parsed, err := time.Parse(time.RFC3339, date.String)
			if err != nil {
				return nil, &model.StorageError{Op: op, Err: fmt.Errorf("parse date for entry %d: %w", e.ID, err)}
			}
			e.Date = parsed
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, &model.StorageError{Op: op, Err: fmt.Errorf("iterate entries: %w", err)}
	}
	return entries, nil
}

func nullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
