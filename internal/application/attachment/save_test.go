package attachment

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/twaiba/faithful-registry/internal/domain/registry"
)

type fakeFileStore struct {
	stored   map[string][]byte
	storeErr error
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{stored: map[string][]byte{}}
}

func (f *fakeFileStore) Store(_ context.Context, data []byte, filename string, _ bool) (string, error) {
	if f.storeErr != nil {
		return "", f.storeErr
	}
	f.stored[filename] = data
	return "/files/" + filename, nil
}

func pngDataURL(payload string) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte(payload))
}

func TestSaveDataURLStoresDecodedPayload(t *testing.T) {
	t.Parallel()

	store := newFakeFileStore()
	saver := NewSaver(store, 0)

	url, err := saver.SaveDataURL(context.Background(), pngDataURL("fake png bytes"), "certification")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasPrefix(url, "/files/certification_") || !strings.HasSuffix(url, ".png") {
		t.Fatalf("unexpected url: %q", url)
	}
	if len(store.stored) != 1 {
		t.Fatalf("expected one stored file, got %d", len(store.stored))
	}
	for _, data := range store.stored {
		if string(data) != "fake png bytes" {
			t.Fatalf("unexpected stored payload: %q", data)
		}
	}
}

func TestSaveDataURLRejectsBadFormat(t *testing.T) {
	t.Parallel()

	saver := NewSaver(newFakeFileStore(), 0)

	_, err := saver.SaveDataURL(context.Background(), "not-a-data-url", "certification")
	if !registry.IsKind(err, registry.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSaveDataURLRejectsDisallowedMIME(t *testing.T) {
	t.Parallel()

	saver := NewSaver(newFakeFileStore(), 0)

	dataURL := "data:application/zip;base64," + base64.StdEncoding.EncodeToString([]byte("zip"))
	_, err := saver.SaveDataURL(context.Background(), dataURL, "certification")
	if !registry.IsKind(err, registry.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "not allowed") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestSaveDataURLRejectsOversizedPayload(t *testing.T) {
	t.Parallel()

	saver := NewSaver(newFakeFileStore(), 8)

	_, err := saver.SaveDataURL(context.Background(), pngDataURL("way more than eight bytes"), "certification")
	if !registry.IsKind(err, registry.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSaveDataURLStoreFailureIsInternal(t *testing.T) {
	t.Parallel()

	store := newFakeFileStore()
	store.storeErr = context.DeadlineExceeded
	saver := NewSaver(store, 0)

	_, err := saver.SaveDataURL(context.Background(), pngDataURL("x"), "certification")
	if !registry.IsKind(err, registry.KindInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
}
