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

type HouseholdRepository struct {
	db *gorm.DB
}

func NewHouseholdRepository(db *gorm.DB) *HouseholdRepository {
	return &HouseholdRepository{db: db}
}

func (r *HouseholdRepository) Create(ctx context.Context, h registry.Household) (registry.Household, error) {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	row := householdToModel(h)

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return registry.Household{}, registry.Duplicatef("a household with the same household_name already exists")
		}
		return registry.Household{}, fmt.Errorf("create household: %w", err)
	}

	return householdFromModel(row), nil
}

func (r *HouseholdRepository) Get(ctx context.Context, id string) (registry.Household, error) {
	var row models.Household

	err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return registry.Household{}, registry.NotFoundf("household %s not found", id)
		}
		return registry.Household{}, fmt.Errorf("get household: %w", err)
	}

	return householdFromModel(row), nil
}

func (r *HouseholdRepository) List(ctx context.Context) ([]registry.Household, error) {
	var rows []models.Household

	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list households: %w", err)
	}

	households := make([]registry.Household, 0, len(rows))
	for _, row := range rows {
		households = append(households, householdFromModel(row))
	}
	return households, nil
}

func (r *HouseholdRepository) Update(ctx context.Context, h registry.Household) (registry.Household, error) {
	row := householdToModel(h)

	if err := r.db.WithContext(ctx).Save(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return registry.Household{}, registry.Duplicatef("a household with the same household_name already exists")
		}
		return registry.Household{}, fmt.Errorf("update household: %w", err)
	}

	return householdFromModel(row), nil
}

func (r *HouseholdRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Household{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete household: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return registry.NotFoundf("household %s not found", id)
	}
	return nil
}

func householdToModel(h registry.Household) models.Household {
	return models.Household{
		ID:              h.ID,
		HouseholdName:   h.HouseholdName,
		HeadOfHousehold: h.HeadOfHousehold,
		AddressLine:     h.AddressLine,
		Mosque:          h.Mosque,
		TotalMembers:    h.TotalMembers,
		CreatedAt:       h.CreatedAt,
		UpdatedAt:       h.UpdatedAt,
	}
}

func householdFromModel(row models.Household) registry.Household {
	return registry.Household{
		ID:              row.ID,
		HouseholdName:   row.HouseholdName,
		HeadOfHousehold: row.HeadOfHousehold,
		AddressLine:     row.AddressLine,
		Mosque:          row.Mosque,
		TotalMembers:    row.TotalMembers,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}
