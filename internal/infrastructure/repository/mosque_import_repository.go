package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/twaiba/faithful-registry/internal/domain/registry"
)

// MosqueImportRepository serves the bulk import path over a pgx pool. The
// reconciler hammers ExistsByName once per row, so it stays a bare indexed
// lookup instead of going through gorm.
type MosqueImportRepository struct {
	pool *pgxpool.Pool
}

func NewMosqueImportRepository(pool *pgxpool.Pool) *MosqueImportRepository {
	return &MosqueImportRepository{pool: pool}
}

func (r *MosqueImportRepository) ExistsByName(ctx context.Context, mosqueName string) (bool, error) {
	var exists bool

	err := r.pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM mosques WHERE mosque_name = $1)",
		mosqueName,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check mosque exists: %w", err)
	}
	return exists, nil
}

func (r *MosqueImportRepository) Create(ctx context.Context, m registry.Mosque) (string, error) {
	id := uuid.NewString()

	_, err := r.pool.Exec(ctx, `
INSERT INTO mosques (id, mosque_name, location, date_established, head_imam, total_capacity, contact_email, contact_phone, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
`, id, m.MosqueName, m.Location, m.DateEstablished, m.HeadImam, m.TotalCapacity, m.ContactEmail, m.ContactPhone)
	if err != nil {
		if isUniqueViolation(err) {
			return "", registry.Duplicatef("a mosque with the same mosque_name already exists")
		}
		return "", fmt.Errorf("insert mosque: %w", err)
	}

	return id, nil
}
