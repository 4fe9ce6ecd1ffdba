package registry

import (
	"net/mail"
	"strings"
	"time"
)

// Account is a login identity. Profiles provisioned through bulk import get
// one created alongside them.
type Account struct {
	ID           string
	Email        string
	FullName     string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewAccount validates and normalizes the identity fields. The password hash
// is supplied by the caller; this package never sees plaintext passwords.
func NewAccount(email, fullName, passwordHash string) (Account, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil {
		return Account{}, Validationf("invalid account email %q", email)
	}
	if strings.TrimSpace(fullName) == "" {
		return Account{}, Validationf("missing required field: full_name")
	}
	if passwordHash == "" {
		return Account{}, Validationf("missing password hash")
	}
	return Account{
		Email:        strings.ToLower(addr.Address),
		FullName:     strings.TrimSpace(fullName),
		PasswordHash: passwordHash,
		Role:         "member",
	}, nil
}
