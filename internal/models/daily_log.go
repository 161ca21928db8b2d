package models

import "time"

// DateKeyLayout is the canonical, fixed-width day key. Lexicographic order of
// keys in this layout matches calendar order.
const DateKeyLayout = "2006-01-02"

// TemperatureTimeLayout is the time-of-day format of a temperature reading.
const TemperatureTimeLayout = "15:04"

type Medication struct {
	Name   string `json:"name"`
	Dosage string `json:"dosage"`
}

type TemperatureReading struct {
	Time  string  `json:"time"`
	Value float64 `json:"value"`
}

type DailyLog struct {
	ID           uint                 `gorm:"primaryKey" json:"-"`
	ProfileID    string               `gorm:"not null;uniqueIndex:uidx_profile_date" json:"-"`
	Date         string               `gorm:"not null;uniqueIndex:uidx_profile_date" json:"date"`
	Symptoms     []string             `gorm:"serializer:json" json:"symptoms"`
	Temperatures []TemperatureReading `gorm:"serializer:json" json:"temperatures"`
	Medications  []Medication         `gorm:"serializer:json" json:"medications"`
	Notes        string               `gorm:"not null;default:''" json:"notes"`
	CreatedAt    time.Time            `json:"-"`
	UpdatedAt    time.Time            `json:"-"`
}
