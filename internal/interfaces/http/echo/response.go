package echo

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/twaiba/faithful-registry/internal/domain/registry"
)

// envelope is the uniform response shape. Errors carry a description block;
// successes carry data. Both always carry status, code, message and meta.
type envelope struct {
	Data    any          `json:"data"`
	Status  string       `json:"status"`
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  *errorDetail `json:"errors,omitempty"`
	Meta    responseMeta `json:"meta"`
}

type errorDetail struct {
	Description string `json:"description"`
}

type responseMeta struct {
	RequestID string `json:"request_id"`
	Timestamp string `json:"timestamp"`
}

func respond(c echo.Context, code int, message string, data any) error {
	return c.JSON(code, envelope{
		Data:    data,
		Status:  "success",
		Code:    code,
		Message: message,
		Meta:    newMeta(c),
	})
}

// respondError translates tagged error kinds to HTTP at the boundary.
// Untagged errors count as internal.
func respondError(c echo.Context, err error) error {
	code := http.StatusInternalServerError
	message := "internal server error"

	switch registry.KindOf(err) {
	case registry.KindValidation:
		code = http.StatusBadRequest
		message = "validation failed"
	case registry.KindNotFound:
		code = http.StatusNotFound
		message = "not found"
	case registry.KindDuplicate:
		code = http.StatusConflict
		message = "duplicate record"
	}

	return c.JSON(code, envelope{
		Status:  "error",
		Code:    code,
		Message: message,
		Errors:  &errorDetail{Description: err.Error()},
		Meta:    newMeta(c),
	})
}

func respondUnauthorized(c echo.Context, description string) error {
	return c.JSON(http.StatusUnauthorized, envelope{
		Status:  "error",
		Code:    http.StatusUnauthorized,
		Message: "unauthorized",
		Errors:  &errorDetail{Description: description},
		Meta:    newMeta(c),
	})
}

func newMeta(c echo.Context) responseMeta {
	id := c.Response().Header().Get(echo.HeaderXRequestID)
	if id == "" {
		id = c.Request().Header.Get(echo.HeaderXRequestID)
	}
	if id == "" {
		id = uuid.NewString()
	}
	return responseMeta{
		RequestID: id,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// bindData unwraps the {"data": {...}} request payload.
func bindData(c echo.Context) (map[string]any, error) {
	var body struct {
		Data map[string]any `json:"data"`
	}
	if err := c.Bind(&body); err != nil {
		return nil, registry.Validationf("invalid request body")
	}
	if body.Data == nil {
		return nil, registry.Validationf("missing 'data' object in request body")
	}
	return body.Data, nil
}
