package echo

import (
	"context"
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"
	"github.com/twaiba/faithful-registry/internal/domain/registry"
)

// FileOpener resolves a stored file by its URL path.
type FileOpener interface {
	Open(ctx context.Context, urlPath string) (io.ReadCloser, error)
}

// FilesHandler streams files from the private tree, where failed-rows import
// reports land.
type FilesHandler struct {
	store FileOpener
}

func NewFilesHandler(store FileOpener) *FilesHandler {
	return &FilesHandler{store: store}
}

func (h *FilesHandler) Download(c echo.Context) error {
	name := filepath.Base(c.Param("name"))

	rc, err := h.store.Open(c.Request().Context(), "/private/files/"+name)
	if err != nil {
		return respondError(c, registry.NotFoundf("file %s not found", name))
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	return c.Stream(http.StatusOK, contentType, rc)
}
