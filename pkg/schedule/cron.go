package schedule

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Validate checks that expr is a standard 5-field cron expression
func Validate(expr string) error {
	if _, err := parser.Parse(expr); err != nil {
		return fmt.Errorf("invalid cron expression: %w", err)
	}
	return nil
}

// Location resolves a timezone name. Empty or unknown names resolve to UTC
// and report false.
func Location(timezone string) (*time.Location, bool) {
	if timezone == "" || timezone == "UTC" {
		return time.UTC, true
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return time.UTC, false
	}
	return loc, true
}

// NextRun returns the first activation of expr after the given instant,
// evaluated in timezone and returned in UTC
func NextRun(expr string, after time.Time, timezone string) (time.Time, error) {
	schedule, err := parser.Parse(expr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid cron expression: %w", err)
	}
	loc, _ := Location(timezone)
	return schedule.Next(after.In(loc)).UTC(), nil
}
