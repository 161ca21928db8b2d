package db

import (
	"errors"

	"github.com/diegocrew/kidtracker/internal/models"
	"gorm.io/gorm"
)

type ProfileRepository struct {
	database *gorm.DB
}

func NewProfileRepository(database *gorm.DB) *ProfileRepository {
	return &ProfileRepository{database: database}
}

func (repo *ProfileRepository) ListByUser(userID uint) ([]models.Profile, error) {
	profiles := make([]models.Profile, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("position ASC, created_at ASC").
		Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (repo *ProfileRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.Profile{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *ProfileRepository) FindByIDForUser(profileID string, userID uint) (models.Profile, bool, error) {
	var profile models.Profile
	if err := repo.database.Where("id = ? AND user_id = ?", profileID, userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Profile{}, false, nil
		}
		return models.Profile{}, false, err
	}
	return profile, true, nil
}

func (repo *ProfileRepository) Create(profile *models.Profile) error {
	return repo.database.Create(profile).Error
}

func (repo *ProfileRepository) Save(profile *models.Profile) error {
	return repo.database.Save(profile).Error
}

// DeleteWithLogs removes the profile and its logs in one transaction; it does
// not rely on the foreign key cascade being enabled on the connection.
func (repo *ProfileRepository) DeleteWithLogs(profile *models.Profile) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("profile_id = ?", profile.ID).Delete(&models.DailyLog{}).Error; err != nil {
			return err
		}
		return tx.Delete(profile).Error
	})
}
