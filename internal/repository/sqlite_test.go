package repository_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stevenmcsorley/rn-kit/internal/db"
	"github.com/stevenmcsorley/rn-kit/internal/model"
	"github.com/stevenmcsorley/rn-kit/internal/repository"
)

func newTestRepo(t *testing.T) *repository.SQLite {
	t.Helper()
	path := filepath.Join(t.TempDir(), "diary.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { sqldb.Close() })
	if err := db.Migrate(sqldb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return repository.NewSQLite(sqldb)
}

func testEntry(name, barcode string, logged time.Time) model.FoodLogEntry {
	return model.FoodLogEntry{
		Name:         name,
		Brand:        "TestBrand",
		Barcode:      barcode,
		Calories:     model.Float(250),
		Protein:      model.Float(12),
		Carbs:        model.Float(30),
		Fat:          model.Float(8),
		SaturatedFat: model.Float(2.5),
		Cholesterol:  model.Float(15),
		Sodium:       model.Float(300),
		Fiber:        model.Float(4),
		Sugar:        model.Float(9),
		Date:         logged,
		Quantity:     100,
		Unit:         "g",
		ServingType:  model.ServingTypeFull,
	}
}

func TestAddItemRoundTrip(t *testing.T) {
	t.Parallel()
	repo := newTestRepo(t)
	ctx := context.Background()

	logged := time.Date(2026, 8, 20, 12, 30, 0, 0, time.Local)
	want := testEntry("Granola", "5000001", logged)

	id, err := repo.AddItem(ctx, want)
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if id <= 0 {
		t.Fatalf("expected assigned id > 0, got %d", id)
	}

	items, err := repo.GetAllItems(ctx)
	if err != nil {
		t.Fatalf("get all items: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	got := items[0]
	if got.ID != id {
		t.Fatalf("expected id %d, got %d", id, got.ID)
	}
	if got.Name != want.Name || got.Brand != want.Brand || got.Barcode != want.Barcode {
		t.Fatalf("descriptive fields differ: %+v", got)
	}
	if model.Value(got.Calories) != 250 || model.Value(got.Protein) != 12 || model.Value(got.Sugar) != 9 {
		t.Fatalf("nutrition fields differ: %+v", got)
	}
	if !got.Date.Equal(logged) {
		t.Fatalf("expected date %v, got %v", logged, got.Date)
	}
	if got.Quantity != 100 || got.Unit != "g" || got.ServingType != model.ServingTypeFull {
		t.Fatalf("serving metadata differs: %+v", got)
	}
}

func TestAddItemKeepsUnknownNutritionNull(t *testing.T) {
	t.Parallel()
	repo := newTestRepo(t)
	ctx := context.Background()

	entry := model.FoodLogEntry{
		Name:     "Mystery snack",
		Calories: model.Float(120),
		Date:     time.Now(),
	}
	if _, err := repo.AddItem(ctx, entry); err != nil {
		t.Fatalf("add item: %v", err)
	}

	items, err := repo.GetAllItems(ctx)
	if err != nil {
		t.Fatalf("get all items: %v", err)
	}
	got := items[0]
	if got.Protein != nil || got.Carbs != nil || got.Fiber != nil {
		t.Fatalf("expected unknown nutrition to stay nil, got %+v", got)
	}
	if got.Unit != "g" || got.ServingType != model.ServingTypeFull {
		t.Fatalf("expected defaults applied, got unit=%q servingType=%q", got.Unit, got.ServingType)
	}
}

func TestGetAllItemsMostRecentFirst(t *testing.T) {
	t.Parallel()
	repo := newTestRepo(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 18, 9, 0, 0, 0, time.Local)
	for i, name := range []string{"first", "second", "third"} {
		if _, err := repo.AddItem(ctx, testEntry(name, "", base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
	}

	items, err := repo.GetAllItems(ctx)
	if err != nil {
		t.Fatalf("get all items: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].Name != "third" || items[2].Name != "first" {
		t.Fatalf("expected date-descending order, got %s..%s", items[0].Name, items[2].Name)
	}
}

func TestGetItemsByDateRangeInclusiveBounds(t *testing.T) {
	t.Parallel()
	repo := newTestRepo(t)
	ctx := context.Background()

	start := time.Date(2026, 8, 19, 0, 0, 0, 0, time.Local)
	end := time.Date(2026, 8, 19, 23, 59, 59, 0, time.Local)

	inside := []time.Time{start, start.Add(12 * time.Hour), end}
	outside := []time.Time{start.Add(-time.Second), end.Add(time.Second)}
	for i, ts := range inside {
		if _, err := repo.AddItem(ctx, testEntry("inside", "", ts)); err != nil {
			t.Fatalf("add inside %d: %v", i, err)
		}
	}
	for i, ts := range outside {
		if _, err := repo.AddItem(ctx, testEntry("outside", "", ts)); err != nil {
			t.Fatalf("add outside %d: %v", i, err)
		}
	}

	items, err := repo.GetItemsByDateRange(ctx, start, end)
	if err != nil {
		t.Fatalf("get items by date range: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items within inclusive bounds, got %d", len(items))
	}
	for _, e := range items {
		if e.Name != "inside" {
			t.Fatalf("unexpected out-of-range item: %+v", e)
		}
	}
	// Ordered by id descending.
	if items[0].ID < items[1].ID || items[1].ID < items[2].ID {
		t.Fatalf("expected id-descending order, got %d %d %d", items[0].ID, items[1].ID, items[2].ID)
	}
}

func TestGetItemByBarcodePrefersMostRecent(t *testing.T) {
	t.Parallel()
	repo := newTestRepo(t)
	ctx := context.Background()

	older := testEntry("Monday yogurt", "40111", time.Date(2026, 8, 17, 8, 0, 0, 0, time.Local))
	newer := testEntry("Friday yogurt", "40111", time.Date(2026, 8, 21, 8, 0, 0, 0, time.Local))
	if _, err := repo.AddItem(ctx, older); err != nil {
		t.Fatalf("add older: %v", err)
	}
	if _, err := repo.AddItem(ctx, newer); err != nil {
		t.Fatalf("add newer: %v", err)
	}

	got, err := repo.GetItemByBarcode(ctx, "40111")
	if err != nil {
		t.Fatalf("get item by barcode: %v", err)
	}
	if got == nil || got.Name != "Friday yogurt" {
		t.Fatalf("expected most recent match, got %+v", got)
	}

	missing, err := repo.GetItemByBarcode(ctx, "nope")
	if err != nil {
		t.Fatalf("get missing barcode: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown barcode, got %+v", missing)
	}
}

func TestUpdateItemKeyedByIDLeavesSiblingsAlone(t *testing.T) {
	t.Parallel()
	repo := newTestRepo(t)
	ctx := context.Background()

	// Two entries sharing a barcode, logged on different days. Only the
	// row named by id may change.
	first := testEntry("Yogurt", "40222", time.Date(2026, 8, 17, 8, 0, 0, 0, time.Local))
	second := testEntry("Yogurt", "40222", time.Date(2026, 8, 18, 8, 0, 0, 0, time.Local))
	firstID, err := repo.AddItem(ctx, first)
	if err != nil {
		t.Fatalf("add first: %v", err)
	}
	secondID, err := repo.AddItem(ctx, second)
	if err != nil {
		t.Fatalf("add second: %v", err)
	}

	updated := second
	updated.ID = secondID
	updated.Name = "Yogurt (large)"
	updated.Calories = model.Float(400)
	if err := repo.UpdateItem(ctx, updated); err != nil {
		t.Fatalf("update item: %v", err)
	}

	items, err := repo.GetAllItems(ctx)
	if err != nil {
		t.Fatalf("get all items: %v", err)
	}
	byID := make(map[int64]model.FoodLogEntry, len(items))
	for _, e := range items {
		byID[e.ID] = e
	}
	if byID[secondID].Name != "Yogurt (large)" || model.Value(byID[secondID].Calories) != 400 {
		t.Fatalf("expected updated row changed, got %+v", byID[secondID])
	}
	if byID[firstID].Name != "Yogurt" || model.Value(byID[firstID].Calories) != 250 {
		t.Fatalf("expected same-barcode sibling untouched, got %+v", byID[firstID])
	}
}

func TestUpdateMissingItemIsNoop(t *testing.T) {
	t.Parallel()
	repo := newTestRepo(t)
	ctx := context.Background()

	ghost := testEntry("Ghost", "", time.Now())
	ghost.ID = 9999
	if err := repo.UpdateItem(ctx, ghost); err != nil {
		t.Fatalf("expected no-op update, got %v", err)
	}
}

func TestDeleteItemRemovesExactlyOne(t *testing.T) {
	t.Parallel()
	repo := newTestRepo(t)
	ctx := context.Background()

	var ids []int64
	for _, name := range []string{"a", "b", "c"} {
		id, err := repo.AddItem(ctx, testEntry(name, "", time.Now()))
		if err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
		ids = append(ids, id)
	}

	if err := repo.DeleteItem(ctx, ids[1]); err != nil {
		t.Fatalf("delete item: %v", err)
	}
	items, err := repo.GetAllItems(ctx)
	if err != nil {
		t.Fatalf("get all items: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 remaining items, got %d", len(items))
	}
	for _, e := range items {
		if e.ID == ids[1] {
			t.Fatalf("deleted item still present: %+v", e)
		}
	}

	// Deleting an absent id is a no-op, not an error.
	if err := repo.DeleteItem(ctx, ids[1]); err != nil {
		t.Fatalf("expected no-op delete, got %v", err)
	}
}

func TestDailyCalorieGoalDefaultAndUpdate(t *testing.T) {
	t.Parallel()
	repo := newTestRepo(t)
	ctx := context.Background()

	goal, err := repo.GetDailyCalorieGoal(ctx)
	if err != nil {
		t.Fatalf("get default goal: %v", err)
	}
	if goal != model.DefaultDailyCalorieGoal {
		t.Fatalf("expected default goal %d on fresh db, got %v", model.DefaultDailyCalorieGoal, goal)
	}

	if err := repo.SetDailyCalorieGoal(ctx, 1750); err != nil {
		t.Fatalf("set goal: %v", err)
	}
	goal, err = repo.GetDailyCalorieGoal(ctx)
	if err != nil {
		t.Fatalf("get updated goal: %v", err)
	}
	if goal != 1750 {
		t.Fatalf("expected goal 1750, got %v", goal)
	}
}
