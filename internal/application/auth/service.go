package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/twaiba/faithful-registry/internal/domain/registry"
	"github.com/twaiba/faithful-registry/internal/infrastructure/email"
)

// CodeStore holds short-lived codes and tokens keyed by string, with TTL
// semantics. OTPs, cooldown markers and reset tokens all live here; no
// ambient global cache is involved.
type CodeStore interface {
	Set(key, value string, ttl time.Duration)
	Get(key string) (string, bool)
	Delete(key string)
}

// AccountRepository is the persistence port for login accounts.
type AccountRepository interface {
	GetByEmail(ctx context.Context, email string) (registry.Account, error)
	Exists(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}

// TokenIssuer signs access tokens for authenticated accounts.
type TokenIssuer interface {
	Issue(accountID, accountEmail, role string) (string, error)
}

// Config carries the auth flow timings and email settings.
type Config struct {
	OTPTTL       time.Duration
	OTPCooldown  time.Duration
	ResetTTL     time.Duration
	From         string
	ResetBaseURL string
}

type Service struct {
	codes    CodeStore
	accounts AccountRepository
	sender   email.Sender
	tokens   TokenIssuer
	cfg      Config

	newCode  func() string
	newToken func() string
}

func NewService(codes CodeStore, accounts AccountRepository, sender email.Sender, tokens TokenIssuer, cfg Config) *Service {
	if cfg.OTPTTL <= 0 {
		cfg.OTPTTL = 5 * time.Minute
	}
	if cfg.OTPCooldown <= 0 {
		cfg.OTPCooldown = time.Minute
	}
	if cfg.ResetTTL <= 0 {
		cfg.ResetTTL = 30 * time.Minute
	}
	return &Service{
		codes:    codes,
		accounts: accounts,
		sender:   sender,
		tokens:   tokens,
		cfg:      cfg,
		newCode:  randomOTP,
		newToken: uuid.NewString,
	}
}

// SendOTP emails a six-digit code valid for the configured TTL. A cooldown
// marker blocks a second send to the same address until it expires.
func (s *Service) SendOTP(ctx context.Context, address string) error {
	address = normalizeEmail(address)
	if address == "" {
		return registry.Validationf("missing required field: 'email'")
	}

	if _, onCooldown := s.codes.Get(cooldownKey(address)); onCooldown {
		return registry.Validationf("OTP already sent, please wait before requesting again")
	}

	code := s.newCode()
	s.codes.Set(otpKey(address), code, s.cfg.OTPTTL)
	s.codes.Set(cooldownKey(address), "1", s.cfg.OTPCooldown)

	body := fmt.Sprintf("<p>Your OTP is: <strong>%s</strong></p><p>This code expires in %d minutes.</p>",
		code, int(s.cfg.OTPTTL.Minutes()))

	if _, err := s.sender.Send(ctx, email.SendRequest{
		To:      []string{address},
		From:    s.cfg.From,
		Subject: "Your OTP Code",
		HTML:    body,
	}); err != nil {
		return registry.Internal("send otp email", err)
	}
	return nil
}

// VerifyOTP checks the code for the address and consumes it on success.
func (s *Service) VerifyOTP(ctx context.Context, address, code string) error {
	address = normalizeEmail(address)

	stored, ok := s.codes.Get(otpKey(address))
	if !ok {
		return registry.Validationf("OTP expired or not found")
	}
	if stored != strings.TrimSpace(code) {
		return registry.Validationf("invalid OTP")
	}

	s.codes.Delete(otpKey(address))
	return nil
}

// LoginResult is a successful authentication.
type LoginResult struct {
	AccountID string `json:"account_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Token     string `json:"token"`
}

// Login verifies the password and issues an access token. Unknown accounts
// and wrong passwords produce the same answer.
func (s *Service) Login(ctx context.Context, address, password string) (LoginResult, error) {
	address = normalizeEmail(address)
	if address == "" || password == "" {
		return LoginResult{}, registry.Validationf("missing email or password")
	}

	account, err := s.accounts.GetByEmail(ctx, address)
	if err != nil {
		if registry.IsKind(err, registry.KindNotFound) {
			return LoginResult{}, registry.Validationf("invalid email or password")
		}
		return LoginResult{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return LoginResult{}, registry.Validationf("invalid email or password")
	}

	token, err := s.tokens.Issue(account.ID, account.Email, account.Role)
	if err != nil {
		return LoginResult{}, registry.Internal("issue access token", err)
	}

	return LoginResult{
		AccountID: account.ID,
		Email:     account.Email,
		Role:      account.Role,
		Token:     token,
	}, nil
}

// ForgotPassword emails a reset link for a known account. Unknown addresses
// are reported as not found, matching the legacy behavior.
func (s *Service) ForgotPassword(ctx context.Context, address string) error {
	address = normalizeEmail(address)
	if address == "" {
		return registry.Validationf("missing required field: 'email'")
	}

	exists, err := s.accounts.Exists(ctx, address)
	if err != nil {
		return err
	}
	if !exists {
		return registry.NotFoundf("no user exists with email '%s'", address)
	}

	token := s.newToken()
	s.codes.Set(resetKey(token), address, s.cfg.ResetTTL)

	link := fmt.Sprintf("%s?token=%s", s.cfg.ResetBaseURL, token)
	body := fmt.Sprintf("<p>Follow this link to reset your password:</p><p><a href=%q>%s</a></p>", link, link)

	if _, err := s.sender.Send(ctx, email.SendRequest{
		To:      []string{address},
		From:    s.cfg.From,
		Subject: "Password Reset",
		HTML:    body,
	}); err != nil {
		return registry.Internal("send password reset email", err)
	}
	return nil
}

// ResetPassword consumes a reset token and stores the new password hash.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" || newPassword == "" {
		return registry.Validationf("missing token or new password")
	}

	address, ok := s.codes.Get(resetKey(token))
	if !ok {
		return registry.Validationf("reset token expired or not found")
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return registry.Internal("hash password", err)
	}
	if err := s.accounts.UpdatePassword(ctx, address, hash); err != nil {
		return err
	}

	s.codes.Delete(resetKey(token))
	return nil
}

// HashPassword produces a bcrypt hash at the default cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func otpKey(address string) string      { return "otp:" + address }
func cooldownKey(address string) string { return "otp_cooldown:" + address }
func resetKey(token string) string      { return "pwreset:" + token }

func normalizeEmail(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

func randomOTP() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// crypto/rand only fails when the platform source is broken.
		return "000000"
	}
	return fmt.Sprintf("%06d", n.Int64()+100000)
}
