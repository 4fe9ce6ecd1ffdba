package models

import "time"

type Mosque struct {
	ID              string `gorm:"type:uuid;primaryKey"`
	MosqueName      string `gorm:"size:255;not null;uniqueIndex"`
	Location        string `gorm:"size:500"`
	DateEstablished string `gorm:"size:32"`
	HeadImam        string `gorm:"size:255"`
	TotalCapacity   int    `gorm:"not null;default:0"`
	ContactEmail    string `gorm:"size:320"`
	ContactPhone    string `gorm:"size:32"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (Mosque) TableName() string {
	return "mosques"
}
