package models

import "time"

type Household struct {
	ID              string `gorm:"type:uuid;primaryKey"`
	HouseholdName   string `gorm:"size:255;not null;uniqueIndex"`
	HeadOfHousehold string `gorm:"size:255"`
	AddressLine     string `gorm:"size:500"`
	Mosque          string `gorm:"size:255"`
	TotalMembers    int    `gorm:"not null;default:0"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (Household) TableName() string {
	return "households"
}
