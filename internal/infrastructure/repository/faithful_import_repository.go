package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/twaiba/faithful-registry/internal/domain/registry"
)

// FaithfulImportRepository serves the bulk import path over a pgx pool.
// Profile and login account land in one transaction so a failed account
// insert never leaves an orphaned profile behind.
type FaithfulImportRepository struct {
	pool *pgxpool.Pool
}

func NewFaithfulImportRepository(pool *pgxpool.Pool) *FaithfulImportRepository {
	return &FaithfulImportRepository{pool: pool}
}

func (r *FaithfulImportRepository) ExistsByKey(ctx context.Context, email, fullName string) (bool, error) {
	var exists bool

	err := r.pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM faithful_profiles WHERE email = $1 AND full_name = $2)",
		email, fullName,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check faithful exists: %w", err)
	}
	return exists, nil
}

func (r *FaithfulImportRepository) CreateWithAccount(ctx context.Context, f registry.Faithful, a registry.Account) (string, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	profileID := uuid.NewString()
	accountID := uuid.NewString()

	_, err = tx.Exec(ctx, `
INSERT INTO faithful_profiles (id, full_name, email, user_email, phone, gender, date_of_birth, place_of_birth, marital_status, occupation, mosque, national_id_number, profile_image, special_needs_proof, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW())
`, profileID, f.FullName, f.Email, f.UserEmail, f.Phone, f.Gender, f.DateOfBirth, f.PlaceOfBirth,
		f.MaritalStatus, f.Occupation, f.Mosque, f.NationalIDNumber, f.ProfileImage, f.SpecialNeedsProof)
	if err != nil {
		if isUniqueViolation(err) {
			return "", registry.Duplicatef("a faithful with the same email and full_name already exists")
		}
		return "", fmt.Errorf("insert faithful profile: %w", err)
	}

	_, err = tx.Exec(ctx, `
INSERT INTO accounts (id, email, full_name, password_hash, role, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
`, accountID, a.Email, a.FullName, a.PasswordHash, a.Role)
	if err != nil {
		if isUniqueViolation(err) {
			return "", registry.Duplicatef("an account for %s already exists", a.Email)
		}
		return "", fmt.Errorf("insert account: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("commit faithful import: %w", err)
	}

	return profileID, nil
}
