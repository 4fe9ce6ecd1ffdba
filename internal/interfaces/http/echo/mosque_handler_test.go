package echo_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/twaiba/faithful-registry/internal/domain/registry"
	httpecho "github.com/twaiba/faithful-registry/internal/interfaces/http/echo"
)

type fakeMosqueService struct {
	mosques map[string]registry.Mosque
}

func newFakeMosqueService() *fakeMosqueService {
	return &fakeMosqueService{mosques: map[string]registry.Mosque{}}
}

func (f *fakeMosqueService) Register(_ context.Context, fields map[string]any) (registry.Mosque, error) {
	var m registry.Mosque
	if err := m.ApplyFields(fields); err != nil {
		return registry.Mosque{}, err
	}
	if err := m.Validate(); err != nil {
		return registry.Mosque{}, err
	}
	m.ID = "mosque-1"
	f.mosques[m.ID] = m
	return m, nil
}

func (f *fakeMosqueService) Get(_ context.Context, id string) (registry.Mosque, error) {
	m, ok := f.mosques[id]
	if !ok {
		return registry.Mosque{}, registry.NotFoundf("mosque %s not found", id)
	}
	return m, nil
}

func (f *fakeMosqueService) List(_ context.Context) ([]registry.Mosque, error) {
	out := make([]registry.Mosque, 0, len(f.mosques))
	for _, m := range f.mosques {
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeMosqueService) Update(_ context.Context, id string, fields map[string]any) (registry.Mosque, error) {
	m, ok := f.mosques[id]
	if !ok {
		return registry.Mosque{}, registry.NotFoundf("mosque %s not found", id)
	}
	if err := m.ApplyFields(fields); err != nil {
		return registry.Mosque{}, err
	}
	f.mosques[id] = m
	return m, nil
}

func (f *fakeMosqueService) Delete(_ context.Context, id string) error {
	if _, ok := f.mosques[id]; !ok {
		return registry.NotFoundf("mosque %s not found", id)
	}
	delete(f.mosques, id)
	return nil
}

func newMosqueServer(svc *fakeMosqueService) *echo.Echo {
	e := echo.New()
	handler := httpecho.NewMosqueHandler(svc)
	e.POST("/api/v1/mosques", handler.Register)
	e.GET("/api/v1/mosques/:id", handler.Get)
	e.PUT("/api/v1/mosques/:id", handler.Update)
	e.DELETE("/api/v1/mosques/:id", handler.Delete)
	return e
}

func TestMosqueHandlerRegister(t *testing.T) {
	t.Parallel()

	e := newMosqueServer(newFakeMosqueService())

	body := []byte(`{"data":{"mosque_name":"Central Mosque","total_capacity":400}}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/mosques", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var got struct {
		Data struct {
			ID            string `json:"id"`
			MosqueName    string `json:"mosque_name"`
			TotalCapacity int    `json:"total_capacity"`
		} `json:"data"`
		Status string `json:"status"`
		Code   int    `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unexpected json: %v", err)
	}
	if got.Status != "success" || got.Code != http.StatusCreated {
		t.Fatalf("unexpected envelope: %+v", got)
	}
	if got.Data.MosqueName != "Central Mosque" || got.Data.TotalCapacity != 400 {
		t.Fatalf("unexpected data: %+v", got.Data)
	}
}

func TestMosqueHandlerRegisterUnknownField(t *testing.T) {
	t.Parallel()

	e := newMosqueServer(newFakeMosqueService())

	body := []byte(`{"data":{"mosque_name":"Central Mosque","minaret_count":2}}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/mosques", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestMosqueHandlerRegisterMissingEnvelope(t *testing.T) {
	t.Parallel()

	e := newMosqueServer(newFakeMosqueService())

	body := []byte(`{"mosque_name":"Central Mosque"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/mosques", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestMosqueHandlerGetNotFound(t *testing.T) {
	t.Parallel()

	e := newMosqueServer(newFakeMosqueService())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/mosques/missing", nil)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	var got struct {
		Status string `json:"status"`
		Errors struct {
			Description string `json:"description"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unexpected json: %v", err)
	}
	if got.Status != "error" || got.Errors.Description == "" {
		t.Fatalf("unexpected envelope: %+v", got)
	}
}

func TestMosqueHandlerUpdateAndDelete(t *testing.T) {
	t.Parallel()

	svc := newFakeMosqueService()
	e := newMosqueServer(svc)

	svc.mosques["mosque-1"] = registry.Mosque{ID: "mosque-1", MosqueName: "Central Mosque"}

	body := []byte(`{"data":{"location":"New Address"}}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/mosques/mosque-1", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.mosques["mosque-1"].Location != "New Address" {
		t.Fatalf("update not applied: %+v", svc.mosques["mosque-1"])
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/mosques/mosque-1", nil)
	rec = httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if _, ok := svc.mosques["mosque-1"]; ok {
		t.Fatal("expected mosque removed")
	}
}
