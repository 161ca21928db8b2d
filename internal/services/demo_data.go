package services

import (
	"time"

	"github.com/diegocrew/kidtracker/internal/models"
)

type demoEpisode struct {
	start    time.Time
	duration int
	symptoms []string
}

// GenerateDemoLogs builds three illness episodes relative to today: five days
// of fever and cough four months ago, three days of runny nose two months ago
// and four days of fever and vomiting two weeks ago.
func GenerateDemoLogs(today time.Time) []models.DailyLog {
	day := DateAtLocation(today, today.Location())
	episodes := []demoEpisode{
		{start: day.AddDate(0, -4, 0), duration: 5, symptoms: []string{"Fever", "Cough"}},
		{start: day.AddDate(0, -2, 0), duration: 3, symptoms: []string{"Runny Nose"}},
		{start: day.AddDate(0, 0, -14), duration: 4, symptoms: []string{"Fever", "Vomiting"}},
	}

	logs := make([]models.DailyLog, 0, 12)
	for _, episode := range episodes {
		for offset := 0; offset < episode.duration; offset++ {
			date := episode.start.AddDate(0, 0, offset).Format(models.DateKeyLayout)
			logs = append(logs, models.DailyLog{
				Date:         date,
				Symptoms:     append([]string(nil), episode.symptoms...),
				Medications:  demoMedications(offset),
				Temperatures: demoTemperatures(offset),
			})
		}
	}
	return logs
}

func demoMedications(offset int) []models.Medication {
	if offset >= 3 {
		return []models.Medication{}
	}
	return []models.Medication{{Name: "Ibuprofen", Dosage: "5ml"}}
}

func demoTemperatures(offset int) []models.TemperatureReading {
	switch offset {
	case 0:
		return []models.TemperatureReading{
			{Time: "09:00", Value: 38.5},
			{Time: "14:00", Value: 39.1},
		}
	case 1:
		return []models.TemperatureReading{{Time: "10:00", Value: 37.8}}
	default:
		return []models.TemperatureReading{}
	}
}
