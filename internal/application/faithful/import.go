package faithful

import (
	"context"
	"crypto/rand"
	"encoding/hex"

	"github.com/twaiba/faithful-registry/internal/application/importer"
	"github.com/twaiba/faithful-registry/internal/domain/registry"
)

// ImportRepository is the persistence port for the bulk import path.
// CreateWithAccount persists the profile and its login account in a single
// transaction: an account failure must roll the profile back rather than
// leave an orphaned record.
type ImportRepository interface {
	ExistsByKey(ctx context.Context, email, fullName string) (bool, error)
	CreateWithAccount(ctx context.Context, f registry.Faithful, a registry.Account) (string, error)
}

// AccountDirectory answers whether a login identity already occupies the
// email in the account namespace.
type AccountDirectory interface {
	Exists(ctx context.Context, email string) (bool, error)
}

// PasswordHasher turns a plaintext password into its stored hash.
type PasswordHasher func(password string) (string, error)

// ImportTarget adapts faithful profiles to the bulk import reconciler. Each
// created profile gets a provisioned account with a random temporary
// password; the member resets it through the forgot-password flow.
type ImportTarget struct {
	repo     ImportRepository
	accounts AccountDirectory
	hash     PasswordHasher
}

func NewImportTarget(repo ImportRepository, accounts AccountDirectory, hash PasswordHasher) *ImportTarget {
	return &ImportTarget{repo: repo, accounts: accounts, hash: hash}
}

func (t *ImportTarget) Entity() string { return "faithful" }

func (t *ImportTarget) RequiredColumns() []string { return []string{"full_name", "email"} }
func (t *ImportTarget) KeyColumns() []string      { return []string{"email", "full_name"} }

// Exists checks the profile store and the account namespace: an email that
// already carries a login is a duplicate even without a profile row.
func (t *ImportTarget) Exists(ctx context.Context, key map[string]string) (bool, error) {
	exists, err := t.repo.ExistsByKey(ctx, key["email"], key["full_name"])
	if err != nil || exists {
		return exists, err
	}
	return t.accounts.Exists(ctx, key["email"])
}

func (t *ImportTarget) Create(ctx context.Context, fields map[string]string) (string, error) {
	var f registry.Faithful
	if err := f.ApplyFields(importer.RowFields(fields)); err != nil {
		return "", err
	}
	if err := f.Validate(); err != nil {
		return "", err
	}

	password, err := tempPassword()
	if err != nil {
		return "", registry.Internal("generate temporary password", err)
	}
	hash, err := t.hash(password)
	if err != nil {
		return "", registry.Internal("hash temporary password", err)
	}
	account, err := registry.NewAccount(f.Email, f.FullName, hash)
	if err != nil {
		return "", err
	}
	f.UserEmail = account.Email

	return t.repo.CreateWithAccount(ctx, f, account)
}

func tempPassword() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
