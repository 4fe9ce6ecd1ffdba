package echo

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/twaiba/faithful-registry/internal/domain/registry"
)

// HouseholdService is the use-case surface the household handler depends on.
type HouseholdService interface {
	Register(ctx context.Context, fields map[string]any) (registry.Household, error)
	Get(ctx context.Context, id string) (registry.Household, error)
	List(ctx context.Context) ([]registry.Household, error)
	Update(ctx context.Context, id string, fields map[string]any) (registry.Household, error)
	Delete(ctx context.Context, id string) error
}

type HouseholdHandler struct {
	svc HouseholdService
}

func NewHouseholdHandler(svc HouseholdService) *HouseholdHandler {
	return &HouseholdHandler{svc: svc}
}

type householdResponse struct {
	ID              string `json:"id"`
	HouseholdName   string `json:"household_name"`
	HeadOfHousehold string `json:"head_of_household,omitempty"`
	AddressLine     string `json:"address_line,omitempty"`
	Mosque          string `json:"mosque,omitempty"`
	TotalMembers    int    `json:"total_members"`
	CreatedAt       string `json:"created_at,omitempty"`
	UpdatedAt       string `json:"updated_at,omitempty"`
}

func (h *HouseholdHandler) Register(c echo.Context) error {
	fields, err := bindData(c)
	if err != nil {
		return respondError(c, err)
	}

	created, err := h.svc.Register(c.Request().Context(), fields)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusCreated, "household created", toHouseholdResponse(created))
}

func (h *HouseholdHandler) Get(c echo.Context) error {
	hh, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "household", toHouseholdResponse(hh))
}

func (h *HouseholdHandler) List(c echo.Context) error {
	households, err := h.svc.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}

	out := make([]householdResponse, 0, len(households))
	for _, hh := range households {
		out = append(out, toHouseholdResponse(hh))
	}
	return respond(c, http.StatusOK, "households", out)
}

func (h *HouseholdHandler) Update(c echo.Context) error {
	fields, err := bindData(c)
	if err != nil {
		return respondError(c, err)
	}

	updated, err := h.svc.Update(c.Request().Context(), c.Param("id"), fields)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "household updated", toHouseholdResponse(updated))
}

func (h *HouseholdHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "household deleted", map[string]string{"id": id})
}

func toHouseholdResponse(h registry.Household) householdResponse {
	return householdResponse{
		ID:              h.ID,
		HouseholdName:   h.HouseholdName,
		HeadOfHousehold: h.HeadOfHousehold,
		AddressLine:     h.AddressLine,
		Mosque:          h.Mosque,
		TotalMembers:    h.TotalMembers,
		CreatedAt:       formatTime(h.CreatedAt),
		UpdatedAt:       formatTime(h.UpdatedAt),
	}
}
