package models

import "time"

type Faithful struct {
	ID                string `gorm:"type:uuid;primaryKey"`
	FullName          string `gorm:"size:255;not null;index:idx_faithful_email_name,unique"`
	Email             string `gorm:"size:320;not null;index:idx_faithful_email_name,unique"`
	UserEmail         string `gorm:"size:320;index"`
	Phone             string `gorm:"size:32"`
	Gender            string `gorm:"size:20"`
	DateOfBirth       string `gorm:"size:32"`
	PlaceOfBirth      string `gorm:"size:255"`
	MaritalStatus     string `gorm:"size:32"`
	Occupation        string `gorm:"size:255"`
	Mosque            string `gorm:"size:255"`
	NationalIDNumber  string `gorm:"size:64"`
	ProfileImage      string `gorm:"type:text"`
	SpecialNeedsProof string `gorm:"type:text"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (Faithful) TableName() string {
	return "faithful_profiles"
}
