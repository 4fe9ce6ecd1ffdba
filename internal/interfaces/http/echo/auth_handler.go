package echo

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/twaiba/faithful-registry/internal/application/auth"
	"github.com/twaiba/faithful-registry/internal/domain/registry"
)

// AuthService is the use-case surface the auth handler depends on.
type AuthService interface {
	SendOTP(ctx context.Context, address string) error
	VerifyOTP(ctx context.Context, address, code string) error
	Login(ctx context.Context, address, password string) (auth.LoginResult, error)
	ForgotPassword(ctx context.Context, address string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type AuthHandler struct {
	svc AuthService
}

func NewAuthHandler(svc AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) SendOTP(c echo.Context) error {
	fields, err := bindData(c)
	if err != nil {
		return respondError(c, err)
	}

	address, _ := fields["email"].(string)
	if err := h.svc.SendOTP(c.Request().Context(), address); err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "otp sent", map[string]string{"email": address})
}

func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	fields, err := bindData(c)
	if err != nil {
		return respondError(c, err)
	}

	address, _ := fields["email"].(string)
	code, _ := fields["otp"].(string)
	if err := h.svc.VerifyOTP(c.Request().Context(), address, code); err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "otp verified", map[string]string{"email": address})
}

func (h *AuthHandler) Login(c echo.Context) error {
	fields, err := bindData(c)
	if err != nil {
		return respondError(c, err)
	}

	address, _ := fields["email"].(string)
	password, _ := fields["password"].(string)
	if address == "" || password == "" {
		return respondError(c, registry.Validationf("email and password are required"))
	}

	result, err := h.svc.Login(c.Request().Context(), address, password)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "login successful", result)
}

func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	fields, err := bindData(c)
	if err != nil {
		return respondError(c, err)
	}

	address, _ := fields["email"].(string)
	if err := h.svc.ForgotPassword(c.Request().Context(), address); err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "reset link sent", map[string]string{"email": address})
}

func (h *AuthHandler) ResetPassword(c echo.Context) error {
	fields, err := bindData(c)
	if err != nil {
		return respondError(c, err)
	}

	token, _ := fields["token"].(string)
	password, _ := fields["new_password"].(string)
	if token == "" || password == "" {
		return respondError(c, registry.Validationf("token and new_password are required"))
	}

	if err := h.svc.ResetPassword(c.Request().Context(), token, password); err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "password reset", map[string]string{})
}
