package echo

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/twaiba/faithful-registry/internal/domain/registry"
)

// MosqueService is the use-case surface the mosque handler depends on.
type MosqueService interface {
	Register(ctx context.Context, fields map[string]any) (registry.Mosque, error)
	Get(ctx context.Context, id string) (registry.Mosque, error)
	List(ctx context.Context) ([]registry.Mosque, error)
	Update(ctx context.Context, id string, fields map[string]any) (registry.Mosque, error)
	Delete(ctx context.Context, id string) error
}

type MosqueHandler struct {
	svc MosqueService
}

func NewMosqueHandler(svc MosqueService) *MosqueHandler {
	return &MosqueHandler{svc: svc}
}

type mosqueResponse struct {
	ID              string `json:"id"`
	MosqueName      string `json:"mosque_name"`
	Location        string `json:"location,omitempty"`
	DateEstablished string `json:"date_established,omitempty"`
	HeadImam        string `json:"head_imam,omitempty"`
	TotalCapacity   int    `json:"total_capacity"`
	ContactEmail    string `json:"contact_email,omitempty"`
	ContactPhone    string `json:"contact_phone,omitempty"`
	CreatedAt       string `json:"created_at,omitempty"`
	UpdatedAt       string `json:"updated_at,omitempty"`
}

func (h *MosqueHandler) Register(c echo.Context) error {
	fields, err := bindData(c)
	if err != nil {
		return respondError(c, err)
	}

	created, err := h.svc.Register(c.Request().Context(), fields)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusCreated, "mosque created", toMosqueResponse(created))
}

func (h *MosqueHandler) Get(c echo.Context) error {
	m, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "mosque", toMosqueResponse(m))
}

func (h *MosqueHandler) List(c echo.Context) error {
	mosques, err := h.svc.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}

	out := make([]mosqueResponse, 0, len(mosques))
	for _, m := range mosques {
		out = append(out, toMosqueResponse(m))
	}
	return respond(c, http.StatusOK, "mosques", out)
}

func (h *MosqueHandler) Update(c echo.Context) error {
	fields, err := bindData(c)
	if err != nil {
		return respondError(c, err)
	}

	updated, err := h.svc.Update(c.Request().Context(), c.Param("id"), fields)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "mosque updated", toMosqueResponse(updated))
}

func (h *MosqueHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "mosque deleted", map[string]string{"id": id})
}

func toMosqueResponse(m registry.Mosque) mosqueResponse {
	return mosqueResponse{
		ID:              m.ID,
		MosqueName:      m.MosqueName,
		Location:        m.Location,
		DateEstablished: m.DateEstablished,
		HeadImam:        m.HeadImam,
		TotalCapacity:   m.TotalCapacity,
		ContactEmail:    m.ContactEmail,
		ContactPhone:    m.ContactPhone,
		CreatedAt:       formatTime(m.CreatedAt),
		UpdatedAt:       formatTime(m.UpdatedAt),
	}
}
