package db

import (
	"errors"

	"github.com/diegocrew/kidtracker/internal/models"
	"gorm.io/gorm"
)

type DailyLogRepository struct {
	database *gorm.DB
}

func NewDailyLogRepository(database *gorm.DB) *DailyLogRepository {
	return &DailyLogRepository{database: database}
}

func (repo *DailyLogRepository) ListByProfile(profileID string) ([]models.DailyLog, error) {
	logs := make([]models.DailyLog, 0)
	if err := repo.database.Where("profile_id = ?", profileID).Order("date ASC, id ASC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// ListByProfileRange filters on inclusive day keys; canonical keys compare
// correctly as text.
func (repo *DailyLogRepository) ListByProfileRange(profileID string, from *string, to *string) ([]models.DailyLog, error) {
	query := repo.database.Model(&models.DailyLog{}).Where("profile_id = ?", profileID)
	if from != nil {
		query = query.Where("date >= ?", *from)
	}
	if to != nil {
		query = query.Where("date <= ?", *to)
	}

	logs := make([]models.DailyLog, 0)
	if err := query.Order("date ASC, id ASC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (repo *DailyLogRepository) FindByProfileAndDate(profileID string, date string) (models.DailyLog, bool, error) {
	entry := models.DailyLog{}
	if err := repo.database.Where("profile_id = ? AND date = ?", profileID, date).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.DailyLog{}, false, nil
		}
		return models.DailyLog{}, false, err
	}
	return entry, true, nil
}

func (repo *DailyLogRepository) Create(entry *models.DailyLog) error {
	return repo.database.Create(entry).Error
}

func (repo *DailyLogRepository) Save(entry *models.DailyLog) error {
	return repo.database.Save(entry).Error
}

func (repo *DailyLogRepository) DeleteByProfileAndDate(profileID string, date string) error {
	return repo.database.Where("profile_id = ? AND date = ?", profileID, date).Delete(&models.DailyLog{}).Error
}

// ReplaceDays deletes and upserts a batch of days for one profile inside a
// single transaction. An upsert overwrites the content of a stored day.
func (repo *DailyLogRepository) ReplaceDays(profileID string, upserts []models.DailyLog, deletes []string) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		scoped := &DailyLogRepository{database: tx}
		for _, date := range deletes {
			if err := scoped.DeleteByProfileAndDate(profileID, date); err != nil {
				return err
			}
		}

		for _, entry := range upserts {
			stored, found, err := scoped.FindByProfileAndDate(profileID, entry.Date)
			if err != nil {
				return err
			}
			if !found {
				entry.ProfileID = profileID
				if err := scoped.Create(&entry); err != nil {
					return err
				}
				continue
			}
			stored.Symptoms = entry.Symptoms
			stored.Temperatures = entry.Temperatures
			stored.Medications = entry.Medications
			stored.Notes = entry.Notes
			if err := scoped.Save(&stored); err != nil {
				return err
			}
		}
		return nil
	})
}
