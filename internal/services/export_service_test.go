package services

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/diegocrew/kidtracker/internal/models"
	"github.com/xuri/excelize/v2"
)

type stubExportDayReader struct {
	logs []models.DailyLog
	err  error
}

func (stub *stubExportDayReader) FetchLogsForProfile(string, *string, *string) ([]models.DailyLog, error) {
	return stub.logs, stub.err
}

func exportTestLogs() []models.DailyLog {
	return []models.DailyLog{
		{
			Date:         "2024-03-02",
			Symptoms:     []string{"Fever", "Cough"},
			Temperatures: []models.TemperatureReading{{Time: "09:00", Value: 38.5}},
			Medications:  []models.Medication{{Name: "Ibuprofen", Dosage: "5ml"}, {Name: "Honey"}},
			Notes:        "woke up, twice",
		},
		{Date: "2024-03-01", Notes: "tired"},
	}
}

func TestBuildExportEntriesSortsAndFlagsSickDays(t *testing.T) {
	entries := BuildExportEntries(exportTestLogs())
	if len(entries) != 2 || entries[0].Date != "2024-03-01" {
		t.Fatalf("expected entries sorted by date, got %#v", entries)
	}
	if entries[0].Sick || !entries[1].Sick {
		t.Fatalf("unexpected sick flags %#v", entries)
	}
	if entries[0].Symptoms == nil || entries[0].Temperatures == nil || entries[0].Medications == nil {
		t.Fatalf("expected non-nil collections, got %#v", entries[0])
	}

	summary := BuildExportSummary(entries)
	if !summary.HasData || summary.TotalEntries != 2 || summary.DateFrom != "2024-03-01" || summary.DateTo != "2024-03-02" {
		t.Fatalf("unexpected summary %#v", summary)
	}
	if empty := BuildExportSummary(nil); empty.HasData || empty.TotalEntries != 0 {
		t.Fatalf("unexpected empty summary %#v", empty)
	}
}

func TestBuildCSV(t *testing.T) {
	payload, err := BuildCSV(BuildExportEntries(exportTestLogs()))
	if err != nil {
		t.Fatalf("BuildCSV() unexpected error: %v", err)
	}

	rows, err := csv.NewReader(bytes.NewReader(payload)).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header and two rows, got %d", len(rows))
	}
	if rows[0][0] != "Date" || rows[0][5] != "Notes" {
		t.Fatalf("unexpected header %#v", rows[0])
	}
	want := []string{"2024-03-02", "Yes", "Fever; Cough", "09:00 38.5", "Ibuprofen (5ml); Honey", "woke up, twice"}
	for index, value := range want {
		if rows[2][index] != value {
			t.Fatalf("column %d = %q, want %q", index, rows[2][index], value)
		}
	}
	if rows[1][1] != "No" {
		t.Fatalf("expected healthy day flagged No, got %q", rows[1][1])
	}
}

func TestBuildWorkbook(t *testing.T) {
	service := NewExportService(&stubExportDayReader{logs: exportTestLogs()})
	entries, stats, err := service.LoadEntries("p1", nil, nil)
	if err != nil {
		t.Fatalf("LoadEntries() unexpected error: %v", err)
	}
	if stats.TotalSickDays != 1 {
		t.Fatalf("expected 1 sick day, got %d", stats.TotalSickDays)
	}

	payload, err := BuildWorkbook("Alex", entries, stats)
	if err != nil {
		t.Fatalf("BuildWorkbook() unexpected error: %v", err)
	}

	file, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer func() {
		_ = file.Close()
	}()

	sheets := file.GetSheetList()
	if len(sheets) != 2 || sheets[0] != exportLogsSheet || sheets[1] != exportSummarySheet {
		t.Fatalf("unexpected sheets %#v", sheets)
	}
	date, err := file.GetCellValue(exportLogsSheet, "A3")
	if err != nil || date != "2024-03-02" {
		t.Fatalf("expected 2024-03-02 in A3, got %q (%v)", date, err)
	}
	name, err := file.GetCellValue(exportSummarySheet, "B1")
	if err != nil || name != "Alex" {
		t.Fatalf("expected profile name in summary, got %q (%v)", name, err)
	}
	topSymptom, err := file.GetCellValue(exportSummarySheet, "B6")
	if err != nil || topSymptom != "Fever" {
		t.Fatalf("expected top symptom Fever, got %q (%v)", topSymptom, err)
	}
}

func TestLoadEntriesPropagatesError(t *testing.T) {
	service := NewExportService(&stubExportDayReader{err: ErrDayLogLoadFailed})
	if _, _, err := service.LoadEntries("p1", nil, nil); err != ErrDayLogLoadFailed {
		t.Fatalf("expected ErrDayLogLoadFailed, got %v", err)
	}
}
