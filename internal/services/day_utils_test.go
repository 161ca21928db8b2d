package services

import (
	"errors"
	"testing"
	"time"

	"github.com/diegocrew/kidtracker/internal/models"
)

func TestDayLogHasContent(t *testing.T) {
	tests := []struct {
		name  string
		entry models.DailyLog
		want  bool
	}{
		{name: "symptoms present", entry: models.DailyLog{Symptoms: []string{"Cough"}}, want: true},
		{name: "temperature present", entry: models.DailyLog{Temperatures: []models.TemperatureReading{{Time: "07:30", Value: 37.1}}}, want: true},
		{name: "medication present", entry: models.DailyLog{Medications: []models.Medication{{Name: "Ibuprofen"}}}, want: true},
		{name: "notes present", entry: models.DailyLog{Notes: "note"}, want: true},
		{name: "blank notes", entry: models.DailyLog{Notes: "   "}, want: false},
		{name: "empty entry", entry: models.DailyLog{}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DayLogHasContent(tt.entry); got != tt.want {
				t.Fatalf("DayLogHasContent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseDateKey(t *testing.T) {
	day, err := ParseDateKey("2024-02-29")
	if err != nil {
		t.Fatalf("ParseDateKey() unexpected error: %v", err)
	}
	if !day.Equal(time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected day %s", day)
	}

	for _, raw := range []string{"", "2024-1-5", "2023-02-29", "05.01.2024", "2024-01-05T00:00:00Z"} {
		if _, err := ParseDateKey(raw); !errors.Is(err, ErrInvalidDateKey) {
			t.Fatalf("ParseDateKey(%q) expected ErrInvalidDateKey, got %v", raw, err)
		}
		if IsCanonicalDateKey(raw) {
			t.Fatalf("IsCanonicalDateKey(%q) = true", raw)
		}
	}
}

func TestDateKeyAtUsesLocationCalendarDay(t *testing.T) {
	location, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	raw := time.Date(2026, 2, 1, 22, 35, 10, 0, time.UTC)
	if got := DateKeyAt(raw, location); got != "2026-02-02" {
		t.Fatalf("DateKeyAt() = %q, want 2026-02-02", got)
	}
	if got := DateKeyAt(raw, nil); got != "2026-02-01" {
		t.Fatalf("DateKeyAt() with nil location = %q, want 2026-02-01", got)
	}

	midnight := DateAtLocation(raw, location)
	if midnight.Hour() != 0 || midnight.Minute() != 0 || midnight.Location() != location {
		t.Fatalf("expected local midnight, got %s", midnight)
	}
}
