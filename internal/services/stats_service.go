package services

import (
	"github.com/diegocrew/kidtracker/internal/models"
)

type StatsLogReader interface {
	FetchLogMap(profileID string, from *string, to *string) (map[string]models.DailyLog, error)
}

type StatsService struct {
	days StatsLogReader
}

func NewStatsService(days StatsLogReader) *StatsService {
	return &StatsService{days: days}
}

// BuildStatsForProfile loads one snapshot of the profile's logs and derives
// the illness statistics from it. An optional from/to window limits which
// days take part.
func (service *StatsService) BuildStatsForProfile(profileID string, from *string, to *string) (IllnessStats, error) {
	logs, err := service.days.FetchLogMap(profileID, from, to)
	if err != nil {
		return IllnessStats{}, err
	}
	return BuildIllnessStats(logs), nil
}

func (service *StatsService) BuildEpisodesForProfile(profileID string, from *string, to *string) ([]Episode, error) {
	logs, err := service.days.FetchLogMap(profileID, from, to)
	if err != nil {
		return nil, err
	}
	return SegmentEpisodes(logs), nil
}

// TrimTrailingEpisodes keeps the most recent episodes only.
func TrimTrailingEpisodes(episodes []Episode, maxEpisodes int) []Episode {
	if maxEpisodes <= 0 || len(episodes) <= maxEpisodes {
		return episodes
	}
	return episodes[len(episodes)-maxEpisodes:]
}
