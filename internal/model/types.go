// Package model defines the food diary domain types and error taxonomy.
package model

import "time"

// ServingType records whether an entry's nutrition numbers describe the
// catalog's full reference amount or a user-adjusted serving.
const (
	ServingTypeFull    = "full"
	ServingTypeServing = "serving"
)

// Settings keys persisted in the settings table.
const (
	SettingDailyCalorieGoal = "dailyCalorieGoal"
)

// DefaultDailyCalorieGoal applies when the user has never set a goal.
const DefaultDailyCalorieGoal = 2000

// FoodLogEntry is one recorded instance of a consumed food. Nutrition fields
// are pointers because historical rows may predate the columns that hold
// them; a nil value means "unknown" and counts as zero in aggregation.
type FoodLogEntry struct {
	ID           int64
	Name         string
	Brand        string
	Barcode      string
	Calories     *float64
	Protein      *float64
	Carbs        *float64
	Fat          *float64
	SaturatedFat *float64
	Cholesterol  *float64
	Sodium       *float64
	Fiber        *float64
	Sugar        *float64
	Date         time.Time
	Quantity     float64
	Unit         string
	ServingType  string
}

// Float returns a pointer to v, for building entries literal-style.
func Float(v float64) *float64 {
	return &v
}

// Value reads a nullable nutrition field, treating absence as zero.
func Value(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
