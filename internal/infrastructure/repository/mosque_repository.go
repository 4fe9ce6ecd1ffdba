package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/twaiba/faithful-registry/internal/domain/registry"
	"github.com/twaiba/faithful-registry/internal/infrastructure/db/models"
	"gorm.io/gorm"
)

type MosqueRepository struct {
	db *gorm.DB
}

func NewMosqueRepository(db *gorm.DB) *MosqueRepository {
	return &MosqueRepository{db: db}
}

func (r *MosqueRepository) Create(ctx context.Context, m registry.Mosque) (registry.Mosque, error) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	row := mosqueToModel(m)

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return registry.Mosque{}, registry.Duplicatef("a mosque with the same mosque_name already exists")
		}
		return registry.Mosque{}, fmt.Errorf("create mosque: %w", err)
	}

	return mosqueFromModel(row), nil
}

func (r *MosqueRepository) Get(ctx context.Context, id string) (registry.Mosque, error) {
	var row models.Mosque

	err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return registry.Mosque{}, registry.NotFoundf("mosque %s not found", id)
		}
		return registry.Mosque{}, fmt.Errorf("get mosque: %w", err)
	}

	return mosqueFromModel(row), nil
}

func (r *MosqueRepository) List(ctx context.Context) ([]registry.Mosque, error) {
	var rows []models.Mosque

	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list mosques: %w", err)
	}

	mosques := make([]registry.Mosque, 0, len(rows))
	for _, row := range rows {
		mosques = append(mosques, mosqueFromModel(row))
	}
	return mosques, nil
}

func (r *MosqueRepository) Update(ctx context.Context, m registry.Mosque) (registry.Mosque, error) {
	row := mosqueToModel(m)

	if err := r.db.WithContext(ctx).Save(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return registry.Mosque{}, registry.Duplicatef("a mosque with the same mosque_name already exists")
		}
		return registry.Mosque{}, fmt.Errorf("update mosque: %w", err)
	}

	return mosqueFromModel(row), nil
}

func (r *MosqueRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Mosque{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete mosque: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return registry.NotFoundf("mosque %s not found", id)
	}
	return nil
}

// DisplayName resolves a mosque id to its name for view enrichment.
func (r *MosqueRepository) DisplayName(ctx context.Context, id string) (string, error) {
	var row models.Mosque

	err := r.db.WithContext(ctx).Select("mosque_name").First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", registry.NotFoundf("mosque %s not found", id)
		}
		return "", fmt.Errorf("resolve mosque name: %w", err)
	}
	return row.MosqueName, nil
}

func mosqueToModel(m registry.Mosque) models.Mosque {
	return models.Mosque{
		ID:              m.ID,
		MosqueName:      m.MosqueName,
		Location:        m.Location,
		DateEstablished: m.DateEstablished,
		HeadImam:        m.HeadImam,
		TotalCapacity:   m.TotalCapacity,
		ContactEmail:    m.ContactEmail,
		ContactPhone:    m.ContactPhone,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func mosqueFromModel(row models.Mosque) registry.Mosque {
	return registry.Mosque{
		ID:              row.ID,
		MosqueName:      row.MosqueName,
		Location:        row.Location,
		DateEstablished: row.DateEstablished,
		HeadImam:        row.HeadImam,
		TotalCapacity:   row.TotalCapacity,
		ContactEmail:    row.ContactEmail,
		ContactPhone:    row.ContactPhone,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}
