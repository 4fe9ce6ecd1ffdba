package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/twaiba/faithful-registry/internal/domain/registry"
)

// HouseholdImportRepository serves the bulk import path over a pgx pool.
type HouseholdImportRepository struct {
	pool *pgxpool.Pool
}

func NewHouseholdImportRepository(pool *pgxpool.Pool) *HouseholdImportRepository {
	return &HouseholdImportRepository{pool: pool}
}

func (r *HouseholdImportRepository) ExistsByName(ctx context.Context, householdName string) (bool, error) {
	var exists bool

	err := r.pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM households WHERE household_name = $1)",
		householdName,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check household exists: %w", err)
	}
	return exists, nil
}

func (r *HouseholdImportRepository) Create(ctx context.Context, h registry.Household) (string, error) {
	id := uuid.NewString()

	_, err := r.pool.Exec(ctx, `
INSERT INTO households (id, household_name, head_of_household, address_line, mosque, total_members, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
`, id, h.HouseholdName, h.HeadOfHousehold, h.AddressLine, h.Mosque, h.TotalMembers)
	if err != nil {
		if isUniqueViolation(err) {
			return "", registry.Duplicatef("a household with the same household_name already exists")
		}
		return "", fmt.Errorf("insert household: %w", err)
	}

	return id, nil
}
