package models

import "time"

type Imam struct {
	ID                string              `gorm:"type:uuid;primaryKey"`
	Faithful          string              `gorm:"size:255;not null;uniqueIndex"`
	MosqueAssigned    string              `gorm:"size:255;not null"`
	DateAppointed     string              `gorm:"size:32;not null"`
	YearsOfExperience int                 `gorm:"not null;default:0"`
	RoleInMosque      string              `gorm:"size:120"`
	Status            string              `gorm:"size:32"`
	Certifications    []ImamCertification `gorm:"foreignKey:ImamID"`
	AssignmentLogs    []ImamAssignmentLog `gorm:"foreignKey:ImamID"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (Imam) TableName() string {
	return "imams"
}

type ImamCertification struct {
	ID                int64  `gorm:"primaryKey"`
	ImamID            string `gorm:"type:uuid;index;not null"`
	Idx               int    `gorm:"not null;default:0"`
	CertificationName string `gorm:"size:255;not null"`
	IssuingBody       string `gorm:"size:255"`
	DateAwarded       string `gorm:"size:32"`
	Attachment        string `gorm:"type:text"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (ImamCertification) TableName() string {
	return "imam_certifications"
}

type ImamAssignmentLog struct {
	ID        int64  `gorm:"primaryKey"`
	ImamID    string `gorm:"type:uuid;index;not null"`
	OldMosque string `gorm:"size:255"`
	NewMosque string `gorm:"size:255;not null"`
	Reason    string `gorm:"type:text"`
	MovedBy   string `gorm:"size:320"`
	MovedAt   time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ImamAssignmentLog) TableName() string {
	return "imam_assignment_logs"
}
