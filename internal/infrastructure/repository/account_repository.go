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

type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, a registry.Account) (registry.Account, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	row := models.Account{
		ID:           a.ID,
		Email:        a.Email,
		FullName:     a.FullName,
		PasswordHash: a.PasswordHash,
		Role:         a.Role,
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return registry.Account{}, registry.Duplicatef("an account for %s already exists", a.Email)
		}
		return registry.Account{}, fmt.Errorf("create account: %w", err)
	}

	return accountFromModel(row), nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (registry.Account, error) {
	var row models.Account

	err := r.db.WithContext(ctx).First(&row, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return registry.Account{}, registry.NotFoundf("no account for %s", email)
		}
		return registry.Account{}, fmt.Errorf("get account: %w", err)
	}

	return accountFromModel(row), nil
}

func (r *AccountRepository) Exists(ctx context.Context, email string) (bool, error) {
	var count int64

	err := r.db.WithContext(ctx).Model(&models.Account{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check account exists: %w", err)
	}
	return count > 0, nil
}

func (r *AccountRepository) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	res := r.db.WithContext(ctx).Model(&models.Account{}).
		Where("email = ?", email).
		Update("password_hash", passwordHash)
	if res.Error != nil {
		return fmt.Errorf("update password: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return registry.NotFoundf("no account for %s", email)
	}
	return nil
}

func accountFromModel(row models.Account) registry.Account {
	return registry.Account{
		ID:           row.ID,
		Email:        row.Email,
		FullName:     row.FullName,
		PasswordHash: row.PasswordHash,
		Role:         row.Role,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}
