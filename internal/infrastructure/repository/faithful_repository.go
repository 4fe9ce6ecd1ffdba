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

type FaithfulRepository struct {
	db *gorm.DB
}

func NewFaithfulRepository(db *gorm.DB) *FaithfulRepository {
	return &FaithfulRepository{db: db}
}

func (r *FaithfulRepository) Create(ctx context.Context, f registry.Faithful) (registry.Faithful, error) {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	row := faithfulToModel(f)

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return registry.Faithful{}, registry.Duplicatef("a faithful with the same email and full_name already exists")
		}
		return registry.Faithful{}, fmt.Errorf("create faithful profile: %w", err)
	}

	return faithfulFromModel(row), nil
}

func (r *FaithfulRepository) Get(ctx context.Context, id string) (registry.Faithful, error) {
	var row models.Faithful

	err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return registry.Faithful{}, registry.NotFoundf("faithful profile %s not found", id)
		}
		return registry.Faithful{}, fmt.Errorf("get faithful profile: %w", err)
	}

	return faithfulFromModel(row), nil
}

func (r *FaithfulRepository) GetByUserEmail(ctx context.Context, userEmail string) (registry.Faithful, error) {
	var row models.Faithful

	err := r.db.WithContext(ctx).First(&row, "user_email = ?", userEmail).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return registry.Faithful{}, registry.NotFoundf("no faithful profile linked to %s", userEmail)
		}
		return registry.Faithful{}, fmt.Errorf("get faithful profile by user email: %w", err)
	}

	return faithfulFromModel(row), nil
}

func (r *FaithfulRepository) List(ctx context.Context) ([]registry.Faithful, error) {
	var rows []models.Faithful

	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list faithful profiles: %w", err)
	}

	profiles := make([]registry.Faithful, 0, len(rows))
	for _, row := range rows {
		profiles = append(profiles, faithfulFromModel(row))
	}
	return profiles, nil
}

func (r *FaithfulRepository) Update(ctx context.Context, f registry.Faithful) (registry.Faithful, error) {
	row := faithfulToModel(f)

	if err := r.db.WithContext(ctx).Save(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return registry.Faithful{}, registry.Duplicatef("a faithful with the same email and full_name already exists")
		}
		return registry.Faithful{}, fmt.Errorf("update faithful profile: %w", err)
	}

	return faithfulFromModel(row), nil
}

func (r *FaithfulRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Faithful{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete faithful profile: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return registry.NotFoundf("faithful profile %s not found", id)
	}
	return nil
}

func faithfulToModel(f registry.Faithful) models.Faithful {
	return models.Faithful{
		ID:                f.ID,
		FullName:          f.FullName,
		Email:             f.Email,
		UserEmail:         f.UserEmail,
		Phone:             f.Phone,
		Gender:            f.Gender,
		DateOfBirth:       f.DateOfBirth,
		PlaceOfBirth:      f.PlaceOfBirth,
		MaritalStatus:     f.MaritalStatus,
		Occupation:        f.Occupation,
		Mosque:            f.Mosque,
		NationalIDNumber:  f.NationalIDNumber,
		ProfileImage:      f.ProfileImage,
		SpecialNeedsProof: f.SpecialNeedsProof,
		CreatedAt:         f.CreatedAt,
		UpdatedAt:         f.UpdatedAt,
	}
}

func faithfulFromModel(row models.Faithful) registry.Faithful {
	return registry.Faithful{
		ID:                row.ID,
		FullName:          row.FullName,
		Email:             row.Email,
		UserEmail:         row.UserEmail,
		Phone:             row.Phone,
		Gender:            row.Gender,
		DateOfBirth:       row.DateOfBirth,
		PlaceOfBirth:      row.PlaceOfBirth,
		MaritalStatus:     row.MaritalStatus,
		Occupation:        row.Occupation,
		Mosque:            row.Mosque,
		NationalIDNumber:  row.NationalIDNumber,
		ProfileImage:      row.ProfileImage,
		SpecialNeedsProof: row.SpecialNeedsProof,
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}
}
