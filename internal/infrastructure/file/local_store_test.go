package file

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestStoreAndOpenRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewLocalStore(t.TempDir())
	ctx := context.Background()

	url, err := store.Store(ctx, []byte("line,outcome\n"), "report.csv", true)
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	if url != "/private/files/report.csv" {
		t.Fatalf("unexpected url: %q", url)
	}

	rc, err := store.Open(ctx, url)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()

	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "line,outcome\n" {
		t.Fatalf("unexpected content: %q", got)
	}
}

func TestStorePublicFileServedFromPublicTree(t *testing.T) {
	t.Parallel()

	store := NewLocalStore(t.TempDir())

	url, err := store.Store(context.Background(), []byte("x"), "photo.png", false)
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	if url != "/files/photo.png" {
		t.Fatalf("unexpected url: %q", url)
	}
}

func TestOpenRejectsPathEscapingBaseDir(t *testing.T) {
	t.Parallel()

	store := NewLocalStore(t.TempDir())

	_, err := store.Open(context.Background(), "/private/files/../../../etc/passwd")
	if err == nil {
		t.Fatal("expected error for escaping path")
	}
	if !strings.Contains(err.Error(), "escapes base dir") {
		t.Fatalf("unexpected error: %v", err)
	}
}
