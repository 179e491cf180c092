package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// cronParser accepts five-field expressions with an optional leading seconds field.
var cronParser = cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// ParseSchedule validates a cron expression.
func ParseSchedule(expr string) (cron.Schedule, error) {
	schedule, err := cronParser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression: %w", err)
	}
	return schedule, nil
}

// CalculateNextFireTime returns the next occurrence of cronExpr after from,
// evaluated in timezone (UTC when empty) and returned in UTC.
func CalculateNextFireTime(cronExpr string, timezone string, from time.Time) (time.Time, error) {
	loc, err := resolveTimezone(timezone)
	if err != nil {
		return time.Time{}, err
	}
	schedule, err := ParseSchedule(cronExpr)
	if err != nil {
		return time.Time{}, err
	}
	return schedule.Next(from.In(loc)).UTC(), nil
}

// resolveTimezone resolves a timezone string to a time.Location.
// Empty string defaults to UTC.
func resolveTimezone(tz string) (*time.Location, error) {
	if tz == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %s: %w", tz, err)
	}
	return loc, nil
}
