package services

import (
	"math"
	"sort"
	"time"

	"github.com/diegocrew/kidtracker/internal/models"
)

// maxEpisodeGapDays is the largest distance between two sick days that still
// keeps them in the same episode.
const maxEpisodeGapDays = 1

type Episode struct {
	Ordinal         int       `json:"ordinal"`
	Start           time.Time `json:"-"`
	StartDate       string    `json:"start_date"`
	EndDate         string    `json:"end_date"`
	Duration        int       `json:"duration"`
	Dates           []string  `json:"dates"`
	PeakTemperature float64   `json:"peak_temperature,omitempty"`
}

type SymptomCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type IllnessStats struct {
	TotalSickDays          int            `json:"total_sick_days"`
	EpisodesCount          int            `json:"episodes_count"`
	AverageDuration        float64        `json:"average_duration"`
	MeanTimeBetweenIllness int            `json:"mean_time_between_illness"`
	CommonSymptoms         map[string]int `json:"common_symptoms"`
	SymptomRanking         []SymptomCount `json:"symptom_ranking"`
	TopSymptom             string         `json:"top_symptom"`
	Episodes               []Episode      `json:"episodes"`
}

type datedLog struct {
	key   string
	day   time.Time
	entry models.DailyLog
}

type illnessScan struct {
	episodes      []Episode
	totalSickDays int
	symptomCounts map[string]int
	symptomOrder  []string
}

// IsSick reports whether a day log carries a sickness marker: at least one
// symptom or one temperature reading. Medications and notes alone do not count.
func IsSick(entry *models.DailyLog) bool {
	if entry == nil {
		return false
	}
	return len(entry.Symptoms) > 0 || len(entry.Temperatures) > 0
}

// SegmentEpisodes groups the sick days of a single profile into episodes.
// Sick days at most one calendar day apart share an episode. Duration counts
// the logged sick days of an episode, not its calendar span.
func SegmentEpisodes(logs map[string]models.DailyLog) []Episode {
	return scanIllness(logs).episodes
}

func BuildIllnessStats(logs map[string]models.DailyLog) IllnessStats {
	scan := scanIllness(logs)

	stats := IllnessStats{
		TotalSickDays:  scan.totalSickDays,
		EpisodesCount:  len(scan.episodes),
		CommonSymptoms: scan.symptomCounts,
		SymptomRanking: rankSymptoms(scan.symptomCounts, scan.symptomOrder),
		Episodes:       scan.episodes,
	}
	if len(stats.SymptomRanking) > 0 {
		stats.TopSymptom = stats.SymptomRanking[0].Name
	}

	if len(scan.episodes) > 0 {
		durations := make([]int, 0, len(scan.episodes))
		for _, episode := range scan.episodes {
			durations = append(durations, episode.Duration)
		}
		stats.AverageDuration = roundToTenth(averageInts(durations))
	}

	if len(scan.episodes) > 1 {
		gaps := make([]int, 0, len(scan.episodes)-1)
		for index := 1; index < len(scan.episodes); index++ {
			gaps = append(gaps, calendarDaysBetween(scan.episodes[index-1].Start, scan.episodes[index].Start))
		}
		stats.MeanTimeBetweenIllness = int(math.Round(averageInts(gaps)))
	}

	return stats
}

// LogsByDate indexes persisted rows by their day key. A later row wins when
// two rows share a key.
func LogsByDate(entries []models.DailyLog) map[string]models.DailyLog {
	indexed := make(map[string]models.DailyLog, len(entries))
	for _, entry := range entries {
		indexed[entry.Date] = entry
	}
	return indexed
}

func scanIllness(logs map[string]models.DailyLog) illnessScan {
	scan := illnessScan{
		episodes:      []Episode{},
		symptomCounts: map[string]int{},
		symptomOrder:  []string{},
	}

	var current *Episode
	var lastSickDay time.Time

	for _, item := range sortedDatedLogs(logs) {
		if !IsSick(&item.entry) {
			continue
		}
		scan.totalSickDays++

		for _, symptom := range item.entry.Symptoms {
			if _, seen := scan.symptomCounts[symptom]; !seen {
				scan.symptomOrder = append(scan.symptomOrder, symptom)
			}
			scan.symptomCounts[symptom]++
		}

		if current != nil && calendarDaysBetween(lastSickDay, item.day) > maxEpisodeGapDays {
			scan.episodes = append(scan.episodes, *current)
			current = nil
		}

		if current == nil {
			current = &Episode{
				Ordinal:   len(scan.episodes) + 1,
				Start:     item.day,
				StartDate: item.key,
				Dates:     []string{},
			}
		}
		current.Duration++
		current.EndDate = item.key
		current.Dates = append(current.Dates, item.key)
		for _, reading := range item.entry.Temperatures {
			if reading.Value > current.PeakTemperature {
				current.PeakTemperature = reading.Value
			}
		}

		lastSickDay = item.day
	}

	if current != nil {
		scan.episodes = append(scan.episodes, *current)
	}
	return scan
}

// sortedDatedLogs returns entries in ascending calendar order. Keys outside
// the canonical day layout are dropped.
func sortedDatedLogs(logs map[string]models.DailyLog) []datedLog {
	items := make([]datedLog, 0, len(logs))
	for key, entry := range logs {
		day, err := ParseDateKey(key)
		if err != nil {
			continue
		}
		items = append(items, datedLog{key: key, day: day, entry: entry})
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].day.Before(items[j].day)
	})
	return items
}

func rankSymptoms(counts map[string]int, order []string) []SymptomCount {
	ranking := make([]SymptomCount, 0, len(order))
	for _, name := range order {
		ranking = append(ranking, SymptomCount{Name: name, Count: counts[name]})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Count > ranking[j].Count
	})
	return ranking
}

func calendarDaysBetween(a time.Time, b time.Time) int {
	return int(math.Ceil(math.Abs(b.Sub(a).Hours()) / 24))
}

func averageInts(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	var total int
	for _, value := range values {
		total += value
	}
	return float64(total) / float64(len(values))
}

func roundToTenth(value float64) float64 {
	return math.Round(value*10) / 10
}
