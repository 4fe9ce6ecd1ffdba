package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/twaiba/faithful-registry/internal/domain/registry"
)

// ImamImportRepository serves the bulk import path over a pgx pool.
type ImamImportRepository struct {
	pool *pgxpool.Pool
}

func NewImamImportRepository(pool *pgxpool.Pool) *ImamImportRepository {
	return &ImamImportRepository{pool: pool}
}

func (r *ImamImportRepository) ExistsByFaithful(ctx context.Context, faithfulID string) (bool, error) {
	var exists bool

	err := r.pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM imams WHERE faithful = $1)",
		faithfulID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check imam exists: %w", err)
	}
	return exists, nil
}

func (r *ImamImportRepository) Create(ctx context.Context, i registry.Imam) (string, error) {
	id := uuid.NewString()

	_, err := r.pool.Exec(ctx, `
INSERT INTO imams (id, faithful, mosque_assigned, date_appointed, years_of_experience, role_in_mosque, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
`, id, i.Faithful, i.MosqueAssigned, i.DateAppointed, i.YearsOfExperience, i.RoleInMosque, i.Status)
	if err != nil {
		if isUniqueViolation(err) {
			return "", registry.Duplicatef("an imam with the same faithful already exists")
		}
		return "", fmt.Errorf("insert imam: %w", err)
	}

	return id, nil
}
