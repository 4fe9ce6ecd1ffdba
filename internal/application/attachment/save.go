package attachment

import (
	"context"
	"encoding/base64"
	"fmt"
	"regexp"

	"github.com/google/uuid"
	"github.com/twaiba/faithful-registry/internal/domain/registry"
)

// FileStore persists decoded attachment bytes.
type FileStore interface {
	Store(ctx context.Context, data []byte, filename string, private bool) (string, error)
}

var dataURLPattern = regexp.MustCompile(`^data:(.*?);base64,(.*)$`)

// Extensions by accepted MIME type. Anything else is rejected before
// decoding completes.
var allowedMIME = map[string]string{
	"image/png":       "png",
	"image/jpeg":      "jpg",
	"image/webp":      "webp",
	"application/pdf": "pdf",
}

const defaultMaxSize = 5 << 20

// Saver decodes base64 data URLs and stores them as files.
type Saver struct {
	store   FileStore
	maxSize int
	newID   func() string
}

func NewSaver(store FileStore, maxSize int) *Saver {
	if maxSize <= 0 {
		maxSize = defaultMaxSize
	}
	return &Saver{store: store, maxSize: maxSize, newID: uuid.NewString}
}

// SaveDataURL validates and stores a `data:<mime>;base64,<payload>` URL and
// returns the stored file's URL. prefix becomes part of the filename so
// operators can tell attachments apart on disk.
func (s *Saver) SaveDataURL(ctx context.Context, dataURL, prefix string) (string, error) {
	match := dataURLPattern.FindStringSubmatch(dataURL)
	if match == nil {
		return "", registry.Validationf("invalid base64 attachment format")
	}

	mimeType, encoded := match[1], match[2]
	ext, ok := allowedMIME[mimeType]
	if !ok {
		return "", registry.Validationf("attachment type %q is not allowed", mimeType)
	}

	if base64.StdEncoding.DecodedLen(len(encoded)) > s.maxSize {
		return "", registry.Validationf("attachment exceeds maximum size of %d bytes", s.maxSize)
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", registry.Validationf("attachment is not valid base64: %v", err)
	}

	filename := fmt.Sprintf("%s_%s.%s", prefix, s.newID()[:8], ext)
	url, err := s.store.Store(ctx, data, filename, false)
	if err != nil {
		return "", registry.Internal("store attachment", err)
	}
	return url, nil
}
