package services

import (
	"errors"
	"strings"
	"time"

	"github.com/diegocrew/kidtracker/internal/models"
)

var ErrInvalidDateKey = errors.New("invalid date")

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// ParseDateKey parses a canonical YYYY-MM-DD key into a UTC midnight. Keys that
// parse but do not round-trip (for example "2024-1-5") are rejected.
func ParseDateKey(raw string) (time.Time, error) {
	day, err := time.ParseInLocation(models.DateKeyLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidDateKey
	}
	if day.Format(models.DateKeyLayout) != raw {
		return time.Time{}, ErrInvalidDateKey
	}
	return day, nil
}

func IsCanonicalDateKey(raw string) bool {
	_, err := ParseDateKey(raw)
	return err == nil
}

// DateKeyAt formats the calendar day of value as seen in location.
func DateKeyAt(value time.Time, location *time.Location) string {
	return DateAtLocation(value, location).Format(models.DateKeyLayout)
}

// DayLogHasContent reports whether any of the four content fields is set. A
// log without content is equivalent to no log at all.
func DayLogHasContent(entry models.DailyLog) bool {
	if len(entry.Symptoms) > 0 || len(entry.Temperatures) > 0 || len(entry.Medications) > 0 {
		return true
	}
	return strings.TrimSpace(entry.Notes) != ""
}
