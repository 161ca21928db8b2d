package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/diegocrew/kidtracker/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	exportLogsSheet    = "Logs"
	exportSummarySheet = "Summary"
)

var ExportCSVHeaders = []string{
	"Date",
	"Sick",
	"Symptoms",
	"Temperatures",
	"Medications",
	"Notes",
}

var exportColumnWidths = []float64{14, 8, 36, 28, 32, 48}

type ExportDayReader interface {
	FetchLogsForProfile(profileID string, from *string, to *string) ([]models.DailyLog, error)
}

type ExportService struct {
	days ExportDayReader
}

type ExportSummary struct {
	TotalEntries int    `json:"total_entries"`
	HasData      bool   `json:"has_data"`
	DateFrom     string `json:"date_from,omitempty"`
	DateTo       string `json:"date_to,omitempty"`
}

type ExportEntry struct {
	Date         string                      `json:"date"`
	Sick         bool                        `json:"sick"`
	Symptoms     []string                    `json:"symptoms"`
	Temperatures []models.TemperatureReading `json:"temperatures"`
	Medications  []models.Medication         `json:"medications"`
	Notes        string                      `json:"notes"`
}

func NewExportService(days ExportDayReader) *ExportService {
	return &ExportService{days: days}
}

func (service *ExportService) LoadEntries(profileID string, from *string, to *string) ([]ExportEntry, IllnessStats, error) {
	logs, err := service.days.FetchLogsForProfile(profileID, from, to)
	if err != nil {
		return nil, IllnessStats{}, err
	}
	return BuildExportEntries(logs), BuildIllnessStats(LogsByDate(logs)), nil
}

func BuildExportEntries(logs []models.DailyLog) []ExportEntry {
	sorted := make([]models.DailyLog, 0, len(logs))
	sorted = append(sorted, logs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})

	entries := make([]ExportEntry, 0, len(sorted))
	for index := range sorted {
		entry := sorted[index]
		entries = append(entries, ExportEntry{
			Date:         entry.Date,
			Sick:         IsSick(&entry),
			Symptoms:     nonNilStrings(entry.Symptoms),
			Temperatures: nonNilTemperatures(entry.Temperatures),
			Medications:  nonNilMedications(entry.Medications),
			Notes:        entry.Notes,
		})
	}
	return entries
}

func BuildExportSummary(entries []ExportEntry) ExportSummary {
	if len(entries) == 0 {
		return ExportSummary{}
	}
	return ExportSummary{
		TotalEntries: len(entries),
		HasData:      true,
		DateFrom:     entries[0].Date,
		DateTo:       entries[len(entries)-1].Date,
	}
}

func (entry ExportEntry) Columns() []string {
	return []string{
		entry.Date,
		csvYesNo(entry.Sick),
		strings.Join(entry.Symptoms, "; "),
		formatTemperatureColumn(entry.Temperatures),
		formatMedicationColumn(entry.Medications),
		entry.Notes,
	}
}

func BuildCSV(entries []ExportEntry) ([]byte, error) {
	var output bytes.Buffer
	writer := csv.NewWriter(&output)
	if err := writer.Write(ExportCSVHeaders); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, entry := range entries {
		if err := writer.Write(entry.Columns()); err != nil {
			return nil, fmt.Errorf("write csv row %s: %w", entry.Date, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return output.Bytes(), nil
}

// BuildWorkbook renders a two-sheet workbook: the raw logs and the derived
// illness statistics.
func BuildWorkbook(profileName string, entries []ExportEntry, stats IllnessStats) ([]byte, error) {
	file := excelize.NewFile()
	defer func() {
		_ = file.Close()
	}()

	if err := file.SetSheetName("Sheet1", exportLogsSheet); err != nil {
		return nil, fmt.Errorf("rename logs sheet: %w", err)
	}
	headerStyle, err := file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E7FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	for col, header := range ExportCSVHeaders {
		if err := setWorkbookCell(file, exportLogsSheet, col+1, 1, header); err != nil {
			return nil, err
		}
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, fmt.Errorf("column name: %w", err)
		}
		if err := file.SetColWidth(exportLogsSheet, name, name, exportColumnWidths[col]); err != nil {
			return nil, fmt.Errorf("set column width: %w", err)
		}
	}
	if err := file.SetCellStyle(exportLogsSheet, "A1", "F1", headerStyle); err != nil {
		return nil, fmt.Errorf("set header style: %w", err)
	}

	for rowIndex, entry := range entries {
		for col, value := range entry.Columns() {
			if value == "" {
				continue
			}
			if err := setWorkbookCell(file, exportLogsSheet, col+1, rowIndex+2, value); err != nil {
				return nil, err
			}
		}
	}

	if err := file.SetPanes(exportLogsSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("freeze header: %w", err)
	}

	if err := writeSummarySheet(file, profileName, stats, headerStyle); err != nil {
		return nil, err
	}

	var output bytes.Buffer
	if _, err := file.WriteTo(&output); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return output.Bytes(), nil
}

func writeSummarySheet(file *excelize.File, profileName string, stats IllnessStats, headerStyle int) error {
	if _, err := file.NewSheet(exportSummarySheet); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}

	rows := [][]any{
		{"Profile", profileName},
		{"Total sick days", stats.TotalSickDays},
		{"Episodes", stats.EpisodesCount},
		{"Average duration (days)", stats.AverageDuration},
		{"Mean time between illness (days)", stats.MeanTimeBetweenIllness},
		{"Most common symptom", stats.TopSymptom},
		{},
		{"Symptom", "Count"},
	}
	for _, symptom := range stats.SymptomRanking {
		rows = append(rows, []any{symptom.Name, symptom.Count})
	}

	for rowIndex, row := range rows {
		for col, value := range row {
			if err := setWorkbookCell(file, exportSummarySheet, col+1, rowIndex+1, value); err != nil {
				return err
			}
		}
	}

	symptomHeaderRow := strconv.Itoa(len(rows) - len(stats.SymptomRanking))
	if err := file.SetCellStyle(exportSummarySheet, "A"+symptomHeaderRow, "B"+symptomHeaderRow, headerStyle); err != nil {
		return fmt.Errorf("set summary header style: %w", err)
	}
	if err := file.SetColWidth(exportSummarySheet, "A", "A", 34); err != nil {
		return fmt.Errorf("set summary width: %w", err)
	}
	return nil
}

func setWorkbookCell(file *excelize.File, sheet string, col int, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	if err := file.SetCellValue(sheet, cell, value); err != nil {
		return fmt.Errorf("set cell %s!%s: %w", sheet, cell, err)
	}
	return nil
}

func formatTemperatureColumn(readings []models.TemperatureReading) string {
	parts := make([]string, 0, len(readings))
	for _, reading := range readings {
		parts = append(parts, reading.Time+" "+strconv.FormatFloat(reading.Value, 'f', -1, 64))
	}
	return strings.Join(parts, "; ")
}

func formatMedicationColumn(medications []models.Medication) string {
	parts := make([]string, 0, len(medications))
	for _, medication := range medications {
		if medication.Dosage == "" {
			parts = append(parts, medication.Name)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s (%s)", medication.Name, medication.Dosage))
	}
	return strings.Join(parts, "; ")
}

func csvYesNo(value bool) string {
	if value {
		return "Yes"
	}
	return "No"
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func nonNilTemperatures(values []models.TemperatureReading) []models.TemperatureReading {
	if values == nil {
		return []models.TemperatureReading{}
	}
	return values
}

func nonNilMedications(values []models.Medication) []models.Medication {
	if values == nil {
		return []models.Medication{}
	}
	return values
}
