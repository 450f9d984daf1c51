// Package diary computes derived view-model values from a flat list of log
// entries. Everything here is pure: no storage access, no hidden state, same
// input always yields the same output.
package diary

import (
	"time"

	"github.com/stevenmcsorley/rn-kit/internal/model"
)

// DayGroup is one calendar day's worth of entries.
type DayGroup struct {
	// Date is the local calendar day, formatted YYYY-MM-DD.
	Date    string
	Entries []model.FoodLogEntry
}

// MacroSummary holds field-wise sums over the nutrition fields of a set of
// entries. Missing values count as zero.
type MacroSummary struct {
	Protein      float64
	Carbs        float64
	Fat          float64
	SaturatedFat float64
	Cholesterol  float64
	Sodium       float64
	Fiber        float64
	Sugar        float64
}

// MacroGoals are gram targets derived from a calorie goal.
type MacroGoals struct {
	CarbGoal    float64
	ProteinGoal float64
	FatGoal     float64
}

// Fixed macro-split policy: 20% of calories from carbs, 30% from protein,
// 50% from fat, at 4/4/9 kcal per gram.
const (
	carbSplit    = 0.2
	proteinSplit = 0.3
	fatSplit     = 0.5
)

// GroupByDay buckets entries by the local calendar date of their timestamp.
// Days appear in first-encounter order and entries keep their input order
// within a day, so a list sorted most-recent-first groups naturally.
func GroupByDay(entries []model.FoodLogEntry) []DayGroup {
	groups := make([]DayGroup, 0)
	index := make(map[string]int)
	for _, e := range entries {
		day := LocalDay(e.Date)
		i, ok := index[day]
		if !ok {
			i = len(groups)
			index[day] = i
			groups = append(groups, DayGroup{Date: day})
		}
		groups[i].Entries = append(groups[i].Entries, e)
	}
	return groups
}

// LocalDay renders a timestamp as its local calendar date. Bucketing follows
// the device's current timezone at render time, not the offset the entry was
// logged under.
func LocalDay(t time.Time) string {
	return t.In(time.Local).Format("2006-01-02")
}

// SumMacros adds up the macro fields across entries, treating nil as zero.
func SumMacros(entries []model.FoodLogEntry) MacroSummary {
	var sum MacroSummary
	for _, e := range entries {
		sum.Protein += model.Value(e.Protein)
		sum.Carbs += model.Value(e.Carbs)
		sum.Fat += model.Value(e.Fat)
		sum.SaturatedFat += model.Value(e.SaturatedFat)
		sum.Cholesterol += model.Value(e.Cholesterol)
		sum.Sodium += model.Value(e.Sodium)
		sum.Fiber += model.Value(e.Fiber)
		sum.Sugar += model.Value(e.Sugar)
	}
	return sum
}

// SumCalories adds up calories across entries, treating nil as zero.
func SumCalories(entries []model.FoodLogEntry) float64 {
	var sum float64
	for _, e := range entries {
		sum += model.Value(e.Calories)
	}
	return sum
}

// HighestCarbEntry returns the entry with the most carbs, or nil for an
// empty input. Ties go to the first-encountered entry.
func HighestCarbEntry(entries []model.FoodLogEntry) *model.FoodLogEntry {
	var best *model.FoodLogEntry
	for i := range entries {
		if best == nil || model.Value(entries[i].Carbs) > model.Value(best.Carbs) {
			best = &entries[i]
		}
	}
	return best
}

// ComputeMacroGoals translates a daily calorie goal into gram-based
// sub-goals using the fixed macro split.
func ComputeMacroGoals(dailyCalorieGoal float64) MacroGoals {
	return MacroGoals{
		CarbGoal:    dailyCalorieGoal * carbSplit / 4,
		ProteinGoal: dailyCalorieGoal * proteinSplit / 4,
		FatGoal:     dailyCalorieGoal * fatSplit / 9,
	}
}
