package echo

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/twaiba/faithful-registry/internal/domain/registry"
)

// FaithfulService is the use-case surface the faithful handler depends on.
type FaithfulService interface {
	Register(ctx context.Context, fields map[string]any) (registry.Faithful, error)
	Get(ctx context.Context, id string) (registry.Faithful, error)
	List(ctx context.Context) ([]registry.Faithful, error)
	Update(ctx context.Context, id string, fields map[string]any) (registry.Faithful, error)
	Delete(ctx context.Context, id, userEmail string) (string, error)
}

type FaithfulHandler struct {
	svc FaithfulService
}

func NewFaithfulHandler(svc FaithfulService) *FaithfulHandler {
	return &FaithfulHandler{svc: svc}
}

type faithfulResponse struct {
	ID                string `json:"id"`
	FullName          string `json:"full_name"`
	Email             string `json:"email"`
	UserEmail         string `json:"user_email,omitempty"`
	Phone             string `json:"phone,omitempty"`
	Gender            string `json:"gender,omitempty"`
	DateOfBirth       string `json:"date_of_birth,omitempty"`
	PlaceOfBirth      string `json:"place_of_birth,omitempty"`
	MaritalStatus     string `json:"marital_status,omitempty"`
	Occupation        string `json:"occupation,omitempty"`
	Mosque            string `json:"mosque,omitempty"`
	NationalIDNumber  string `json:"national_id_number,omitempty"`
	ProfileImage      string `json:"profile_image,omitempty"`
	SpecialNeedsProof string `json:"special_needs_proof,omitempty"`
	CreatedAt         string `json:"created_at,omitempty"`
	UpdatedAt         string `json:"updated_at,omitempty"`
}

func (h *FaithfulHandler) Register(c echo.Context) error {
	fields, err := bindData(c)
	if err != nil {
		return respondError(c, err)
	}

	created, err := h.svc.Register(c.Request().Context(), fields)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusCreated, "faithful profile created", toFaithfulResponse(created))
}

func (h *FaithfulHandler) Get(c echo.Context) error {
	f, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "faithful profile", toFaithfulResponse(f))
}

func (h *FaithfulHandler) List(c echo.Context) error {
	profiles, err := h.svc.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}

	out := make([]faithfulResponse, 0, len(profiles))
	for _, f := range profiles {
		out = append(out, toFaithfulResponse(f))
	}
	return respond(c, http.StatusOK, "faithful profiles", out)
}

func (h *FaithfulHandler) Update(c echo.Context) error {
	fields, err := bindData(c)
	if err != nil {
		return respondError(c, err)
	}

	updated, err := h.svc.Update(c.Request().Context(), c.Param("id"), fields)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "faithful profile updated", toFaithfulResponse(updated))
}

// Delete accepts either the record id or the linked account email.
func (h *FaithfulHandler) Delete(c echo.Context) error {
	deletedID, err := h.svc.Delete(c.Request().Context(), c.QueryParam("id"), c.QueryParam("user_id"))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "faithful profile deleted", map[string]string{"id": deletedID})
}

func toFaithfulResponse(f registry.Faithful) faithfulResponse {
	return faithfulResponse{
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
		CreatedAt:         formatTime(f.CreatedAt),
		UpdatedAt:         formatTime(f.UpdatedAt),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
