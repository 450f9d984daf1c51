package rnkit

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/stevenmcsorley/rn-kit/internal/app"
	"github.com/stevenmcsorley/rn-kit/internal/db"
	"github.com/stevenmcsorley/rn-kit/internal/repository"
)

func resolveDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	return app.DefaultDBPath()
}

// withDB opens the diary database and runs migrations before handing the
// connection to run. Migration completing first is a hard precondition for
// every repository call.
func withDB(run func(*sql.DB) error) error {
	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := db.Migrate(sqldb); err != nil {
		return err
	}
	return run(sqldb)
}

func withRepo(run func(context.Context, repository.FoodRepository) error) error {
	return withDB(func(sqldb *sql.DB) error {
		return run(context.Background(), repository.NewSQLite(sqldb))
	})
}

func parseEntryID(value string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid entry id %q", value)
	}
	return id, nil
}

func parseDateTimeOrNow(date, timeStr string) (time.Time, error) {
	date = strings.TrimSpace(date)
	timeStr = strings.TrimSpace(timeStr)
	if date == "" && timeStr == "" {
		return time.Now(), nil
	}
	if date == "" {
		return time.Time{}, fmt.Errorf("--date is required when --time is set")
	}
	if timeStr == "" {
		t, err := time.ParseInLocation("2006-01-02", date, time.Local)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", date)
		}
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+timeStr, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date/--time (expected YYYY-MM-DD and HH:MM)")
	}
	return t, nil
}

// localDayBounds returns the inclusive start and end timestamps of the local
// calendar day containing t, for the repository's date-range query. The end is
// derived from the next calendar midnight rather than start+24h, since a local
// day is 23 or 25 hours when a DST transition falls inside it.
func localDayBounds(t time.Time) (time.Time, time.Time) {
	local := t.In(time.Local)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.Local)
	end := time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, time.Local).Add(-time.Nanosecond)
	return start, end
}
