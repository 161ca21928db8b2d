package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/diegocrew/kidtracker/internal/models"
	"github.com/google/uuid"
)

var (
	ErrProfileLimitReached = errors.New("max profiles reached")
	ErrProfileNotFound     = errors.New("profile not found")
	ErrInvalidProfileName  = errors.New("invalid profile name")
	ErrInvalidAvatarColor  = errors.New("invalid avatar color")
	ErrInvalidDateOfBirth  = errors.New("invalid date of birth")
	ErrLastProfileDelete   = errors.New("last profile cannot be deleted")
	ErrProfileLoadFailed   = errors.New("load profile failed")
	ErrProfileCreateFailed = errors.New("create profile failed")
	ErrProfileUpdateFailed = errors.New("update profile failed")
	ErrProfileDeleteFailed = errors.New("delete profile failed")
)

const maxProfileNameLength = 60

type ProfileInput struct {
	Name        *string
	AvatarColor *string
	DateOfBirth *string
}

type ProfileRepository interface {
	ListByUser(userID uint) ([]models.Profile, error)
	CountByUser(userID uint) (int64, error)
	FindByIDForUser(profileID string, userID uint) (models.Profile, bool, error)
	Create(profile *models.Profile) error
	Save(profile *models.Profile) error
	DeleteWithLogs(profile *models.Profile) error
}

type ProfileService struct {
	profiles ProfileRepository
	now      func() time.Time
}

func NewProfileService(profiles ProfileRepository) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		now:      time.Now,
	}
}

func (service *ProfileService) ListProfiles(userID uint) ([]models.Profile, error) {
	profiles, err := service.profiles.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProfileLoadFailed, err)
	}
	return profiles, nil
}

func (service *ProfileService) FindProfileForUser(userID uint, profileID string) (models.Profile, error) {
	profile, found, err := service.profiles.FindByIDForUser(profileID, userID)
	if err != nil {
		return models.Profile{}, fmt.Errorf("%w: %v", ErrProfileLoadFailed, err)
	}
	if !found {
		return models.Profile{}, ErrProfileNotFound
	}
	return profile, nil
}

// EnsureDefaultProfile gives a fresh account its first profile.
func (service *ProfileService) EnsureDefaultProfile(userID uint) (models.Profile, error) {
	profiles, err := service.ListProfiles(userID)
	if err != nil {
		return models.Profile{}, err
	}
	if len(profiles) > 0 {
		return profiles[0], nil
	}

	profile := models.Profile{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        models.DefaultProfileName,
		AvatarColor: models.DefaultProfileAvatarColor,
		Position:    0,
		CreatedAt:   service.now(),
	}
	if err := service.profiles.Create(&profile); err != nil {
		return models.Profile{}, fmt.Errorf("%w: %v", ErrProfileCreateFailed, err)
	}
	return profile, nil
}

// CreateProfile adds a profile named "Child N" unless a name is given. The
// avatar color follows the position of the new profile.
func (service *ProfileService) CreateProfile(userID uint, input ProfileInput) (models.Profile, error) {
	count, err := service.profiles.CountByUser(userID)
	if err != nil {
		return models.Profile{}, fmt.Errorf("%w: %v", ErrProfileLoadFailed, err)
	}
	if count >= models.MaxProfilesPerUser {
		return models.Profile{}, ErrProfileLimitReached
	}

	position := int(count)
	profile := models.Profile{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        fmt.Sprintf("Child %d", position+1),
		AvatarColor: models.ProfileAvatarColors[position%len(models.ProfileAvatarColors)],
		Position:    position,
		CreatedAt:   service.now(),
	}
	if err := applyProfileInput(&profile, input); err != nil {
		return models.Profile{}, err
	}

	if err := service.profiles.Create(&profile); err != nil {
		return models.Profile{}, fmt.Errorf("%w: %v", ErrProfileCreateFailed, err)
	}
	return profile, nil
}

func (service *ProfileService) UpdateProfile(userID uint, profileID string, input ProfileInput) (models.Profile, error) {
	profile, err := service.FindProfileForUser(userID, profileID)
	if err != nil {
		return models.Profile{}, err
	}
	if err := applyProfileInput(&profile, input); err != nil {
		return models.Profile{}, err
	}
	if err := service.profiles.Save(&profile); err != nil {
		return models.Profile{}, fmt.Errorf("%w: %v", ErrProfileUpdateFailed, err)
	}
	return profile, nil
}

// DeleteProfile removes a profile together with its logs. An account always
// keeps at least one profile.
func (service *ProfileService) DeleteProfile(userID uint, profileID string) error {
	profile, err := service.FindProfileForUser(userID, profileID)
	if err != nil {
		return err
	}
	count, err := service.profiles.CountByUser(userID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProfileLoadFailed, err)
	}
	if count <= 1 {
		return ErrLastProfileDelete
	}
	if err := service.profiles.DeleteWithLogs(&profile); err != nil {
		return fmt.Errorf("%w: %v", ErrProfileDeleteFailed, err)
	}
	return nil
}

func applyProfileInput(profile *models.Profile, input ProfileInput) error {
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" || len([]rune(name)) > maxProfileNameLength {
			return ErrInvalidProfileName
		}
		profile.Name = name
	}

	if input.AvatarColor != nil {
		color := strings.TrimSpace(*input.AvatarColor)
		if !isProfileAvatarColor(color) {
			return ErrInvalidAvatarColor
		}
		profile.AvatarColor = color
	}

	if input.DateOfBirth != nil {
		raw := strings.TrimSpace(*input.DateOfBirth)
		if raw == "" {
			profile.DateOfBirth = nil
			return nil
		}
		if !IsCanonicalDateKey(raw) {
			return ErrInvalidDateOfBirth
		}
		profile.DateOfBirth = &raw
	}
	return nil
}

func isProfileAvatarColor(color string) bool {
	for _, candidate := range models.ProfileAvatarColors {
		if candidate == color {
			return true
		}
	}
	return false
}
