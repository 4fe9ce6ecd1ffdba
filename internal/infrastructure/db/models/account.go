package models

import "time"

type Account struct {
	ID           string `gorm:"type:uuid;primaryKey"`
	Email        string `gorm:"size:320;not null;uniqueIndex"`
	FullName     string `gorm:"size:255;not null"`
	PasswordHash string `gorm:"size:120;not null"`
	Role         string `gorm:"size:32;not null;default:member"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Account) TableName() string {
	return "accounts"
}
