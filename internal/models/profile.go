package models

import "time"

const (
	DefaultProfileName        = "Alex"
	DefaultProfileAvatarColor = "bg-blue-400"
	MaxProfilesPerUser        = 4
)

// ProfileAvatarColors is the palette assigned to new profiles by position.
var ProfileAvatarColors = []string{
	"bg-blue-400",
	"bg-pink-400",
	"bg-green-400",
	"bg-yellow-400",
}

type Profile struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"-"`
	Name        string    `gorm:"not null" json:"name"`
	AvatarColor string    `gorm:"not null" json:"avatar_color"`
	DateOfBirth *string   `json:"date_of_birth,omitempty"`
	Position    int       `gorm:"not null;default:0" json:"position"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"-"`
}
