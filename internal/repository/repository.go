// Package repository mediates all access to the persisted diary state.
package repository

import (
	"context"
	"time"

	"github.com/stevenmcsorley/rn-kit/internal/model"
)

// FoodRepository is the sole gateway to the items and settings tables. Each
// operation is a single atomic round trip; failures surface as
// *model.StorageError and leave stored data unchanged. Absence is never an
// error: lookups return nil, updates and deletes of missing rows are no-ops.
type FoodRepository interface {
	// GetAllItems returns every log entry, most recent first.
	GetAllItems(ctx context.Context) ([]model.FoodLogEntry, error)

	// GetItemsByDateRange returns entries whose date falls within
	// [start, end] inclusive, ordered by id descending.
	GetItemsByDateRange(ctx context.Context, start, end time.Time) ([]model.FoodLogEntry, error)

	// AddItem inserts a new entry and returns the storage-assigned id.
	// The entry's own ID field is ignored.
	AddItem(ctx context.Context, entry model.FoodLogEntry) (int64, error)

	// GetItemByBarcode returns the most recently logged entry with the
	// given barcode, or nil when none exists. Barcodes are not unique
	// across entries; the newest by (date, id) wins.
	GetItemByBarcode(ctx context.Context, barcode string) (*model.FoodLogEntry, error)

	// UpdateItem overwrites all mutable fields of the row with the
	// entry's id. Updating a missing row is a no-op.
	UpdateItem(ctx context.Context, entry model.FoodLogEntry) error

	// DeleteItem removes exactly the row with the given id, if present.
	DeleteItem(ctx context.Context, id int64) error

	// GetDailyCalorieGoal returns the configured goal, or the default
	// when the user has never set one.
	GetDailyCalorieGoal(ctx context.Context) (float64, error)

	// SetDailyCalorieGoal persists the goal, replacing any prior value.
	SetDailyCalorieGoal(ctx context.Context, goal float64) error
}
