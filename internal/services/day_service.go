package services

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/diegocrew/kidtracker/internal/models"
)

var (
	ErrInvalidTemperature   = errors.New("invalid temperature reading")
	ErrInvalidMedication    = errors.New("invalid medication")
	ErrInvalidDateRange     = errors.New("invalid date range")
	ErrDayLogLoadFailed     = errors.New("load day log failed")
	ErrDayLogSaveFailed     = errors.New("save day log failed")
	ErrDayLogDeleteFailed   = errors.New("delete day log failed")
	ErrDemoDataImportFailed = errors.New("import demo data failed")
)

const (
	maxSymptomLabelLength = 80
	maxNotesLength        = 4000
)

type DayLogInput struct {
	Symptoms     []string
	Temperatures []models.TemperatureReading
	Medications  []models.Medication
	Notes        string
}

type DayLogRepository interface {
	ListByProfile(profileID string) ([]models.DailyLog, error)
	ListByProfileRange(profileID string, from *string, to *string) ([]models.DailyLog, error)
	FindByProfileAndDate(profileID string, date string) (models.DailyLog, bool, error)
	Create(entry *models.DailyLog) error
	Save(entry *models.DailyLog) error
	DeleteByProfileAndDate(profileID string, date string) error
	ReplaceDays(profileID string, upserts []models.DailyLog, deletes []string) error
}

type DayService struct {
	logs DayLogRepository
}

func NewDayService(logs DayLogRepository) *DayService {
	return &DayService{logs: logs}
}

func (service *DayService) FetchLogsForProfile(profileID string, from *string, to *string) ([]models.DailyLog, error) {
	if err := validateOptionalRange(from, to); err != nil {
		return nil, err
	}
	var (
		logs []models.DailyLog
		err  error
	)
	if from == nil && to == nil {
		logs, err = service.logs.ListByProfile(profileID)
	} else {
		logs, err = service.logs.ListByProfileRange(profileID, from, to)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDayLogLoadFailed, err)
	}
	return logs, nil
}

// FetchLogMap returns the immutable per-day snapshot the statistics engine
// consumes.
func (service *DayService) FetchLogMap(profileID string, from *string, to *string) (map[string]models.DailyLog, error) {
	logs, err := service.FetchLogsForProfile(profileID, from, to)
	if err != nil {
		return nil, err
	}
	return LogsByDate(logs), nil
}

// FetchDayLog returns the stored log or an empty one when nothing is stored.
func (service *DayService) FetchDayLog(profileID string, date string) (models.DailyLog, error) {
	if !IsCanonicalDateKey(date) {
		return models.DailyLog{}, ErrInvalidDateKey
	}
	entry, found, err := service.logs.FindByProfileAndDate(profileID, date)
	if err != nil {
		return models.DailyLog{}, fmt.Errorf("%w: %v", ErrDayLogLoadFailed, err)
	}
	if !found {
		return emptyDayLog(profileID, date), nil
	}
	return entry, nil
}

// UpsertDayLog stores the normalized input for a day. When the normalized
// input has no content the stored record is removed instead and deleted is
// reported as true.
func (service *DayService) UpsertDayLog(profileID string, date string, input DayLogInput) (models.DailyLog, bool, error) {
	if !IsCanonicalDateKey(date) {
		return models.DailyLog{}, false, ErrInvalidDateKey
	}
	normalized, err := NormalizeDayLogInput(input)
	if err != nil {
		return models.DailyLog{}, false, err
	}

	candidate := models.DailyLog{
		ProfileID:    profileID,
		Date:         date,
		Symptoms:     normalized.Symptoms,
		Temperatures: normalized.Temperatures,
		Medications:  normalized.Medications,
		Notes:        normalized.Notes,
	}
	if !DayLogHasContent(candidate) {
		if err := service.logs.DeleteByProfileAndDate(profileID, date); err != nil {
			return models.DailyLog{}, false, fmt.Errorf("%w: %v", ErrDayLogDeleteFailed, err)
		}
		return emptyDayLog(profileID, date), true, nil
	}

	entry, found, err := service.logs.FindByProfileAndDate(profileID, date)
	if err != nil {
		return models.DailyLog{}, false, fmt.Errorf("%w: %v", ErrDayLogLoadFailed, err)
	}
	if found {
		entry.Symptoms = candidate.Symptoms
		entry.Temperatures = candidate.Temperatures
		entry.Medications = candidate.Medications
		entry.Notes = candidate.Notes
		if err := service.logs.Save(&entry); err != nil {
			return models.DailyLog{}, false, fmt.Errorf("%w: %v", ErrDayLogSaveFailed, err)
		}
		return entry, false, nil
	}

	if err := service.logs.Create(&candidate); err != nil {
		return models.DailyLog{}, false, fmt.Errorf("%w: %v", ErrDayLogSaveFailed, err)
	}
	return candidate, false, nil
}

func (service *DayService) DeleteDayLog(profileID string, date string) error {
	if !IsCanonicalDateKey(date) {
		return ErrInvalidDateKey
	}
	if err := service.logs.DeleteByProfileAndDate(profileID, date); err != nil {
		return fmt.Errorf("%w: %v", ErrDayLogDeleteFailed, err)
	}
	return nil
}

// ImportDayLogs validates every entry first and then writes the whole batch in
// one transaction, overwriting logs stored for the same days. Entries without
// content remove the stored day. Either all days are written or none.
func (service *DayService) ImportDayLogs(profileID string, entries []models.DailyLog) (int, error) {
	upserts := make([]models.DailyLog, 0, len(entries))
	deletes := make([]string, 0)
	for _, entry := range entries {
		if !IsCanonicalDateKey(entry.Date) {
			return 0, fmt.Errorf("%w: %s: %v", ErrDemoDataImportFailed, entry.Date, ErrInvalidDateKey)
		}
		normalized, err := NormalizeDayLogInput(DayLogInput{
			Symptoms:     entry.Symptoms,
			Temperatures: entry.Temperatures,
			Medications:  entry.Medications,
			Notes:        entry.Notes,
		})
		if err != nil {
			return 0, fmt.Errorf("%w: %s: %v", ErrDemoDataImportFailed, entry.Date, err)
		}

		candidate := models.DailyLog{
			ProfileID:    profileID,
			Date:         entry.Date,
			Symptoms:     normalized.Symptoms,
			Temperatures: normalized.Temperatures,
			Medications:  normalized.Medications,
			Notes:        normalized.Notes,
		}
		if !DayLogHasContent(candidate) {
			deletes = append(deletes, entry.Date)
			continue
		}
		upserts = append(upserts, candidate)
	}

	if err := service.logs.ReplaceDays(profileID, upserts, deletes); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDemoDataImportFailed, err)
	}
	return len(upserts), nil
}

// NormalizeDayLogInput trims and de-duplicates symptom labels keeping their
// first-seen order, drops blank medications, validates temperature readings
// and sorts them by time of day.
func NormalizeDayLogInput(input DayLogInput) (DayLogInput, error) {
	normalized := DayLogInput{
		Symptoms:     []string{},
		Temperatures: []models.TemperatureReading{},
		Medications:  []models.Medication{},
		Notes:        strings.TrimSpace(input.Notes),
	}
	normalized.Notes = truncateRunes(normalized.Notes, maxNotesLength)

	seen := make(map[string]struct{}, len(input.Symptoms))
	for _, raw := range input.Symptoms {
		symptom := truncateRunes(strings.TrimSpace(raw), maxSymptomLabelLength)
		if symptom == "" {
			continue
		}
		if _, ok := seen[symptom]; ok {
			continue
		}
		seen[symptom] = struct{}{}
		normalized.Symptoms = append(normalized.Symptoms, symptom)
	}

	for _, medication := range input.Medications {
		name := strings.TrimSpace(medication.Name)
		dosage := strings.TrimSpace(medication.Dosage)
		if name == "" && dosage == "" {
			continue
		}
		if name == "" {
			return DayLogInput{}, ErrInvalidMedication
		}
		normalized.Medications = append(normalized.Medications, models.Medication{Name: name, Dosage: dosage})
	}

	for _, reading := range input.Temperatures {
		clock, err := normalizeTemperatureTime(reading.Time)
		if err != nil {
			return DayLogInput{}, err
		}
		if math.IsNaN(reading.Value) || math.IsInf(reading.Value, 0) || reading.Value <= 0 {
			return DayLogInput{}, ErrInvalidTemperature
		}
		normalized.Temperatures = append(normalized.Temperatures, models.TemperatureReading{Time: clock, Value: reading.Value})
	}
	sort.SliceStable(normalized.Temperatures, func(i, j int) bool {
		return normalized.Temperatures[i].Time < normalized.Temperatures[j].Time
	})

	return normalized, nil
}

// truncateRunes cuts value to at most limit runes, never inside a multi-byte
// sequence.
func truncateRunes(value string, limit int) string {
	if utf8.RuneCountInString(value) <= limit {
		return value
	}
	count := 0
	for index := range value {
		if count == limit {
			return strings.TrimSpace(value[:index])
		}
		count++
	}
	return value
}

func normalizeTemperatureTime(raw string) (string, error) {
	parsed, err := time.Parse(models.TemperatureTimeLayout, strings.TrimSpace(raw))
	if err != nil {
		return "", ErrInvalidTemperature
	}
	return parsed.Format(models.TemperatureTimeLayout), nil
}

func validateOptionalRange(from *string, to *string) error {
	if from != nil && !IsCanonicalDateKey(*from) {
		return ErrInvalidDateKey
	}
	if to != nil && !IsCanonicalDateKey(*to) {
		return ErrInvalidDateKey
	}
	if from != nil && to != nil && *from > *to {
		return ErrInvalidDateRange
	}
	return nil
}

func emptyDayLog(profileID string, date string) models.DailyLog {
	return models.DailyLog{
		ProfileID:    profileID,
		Date:         date,
		Symptoms:     []string{},
		Temperatures: []models.TemperatureReading{},
		Medications:  []models.Medication{},
	}
}
