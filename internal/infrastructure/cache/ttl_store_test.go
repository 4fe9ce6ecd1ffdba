package cache

import (
	"testing"
	"time"
)

func TestTTLStoreSetGetDelete(t *testing.T) {
	t.Parallel()

	s := NewTTLStore()
	defer s.Close()

	s.Set("otp:a@example.com", "123456", time.Minute)

	got, ok := s.Get("otp:a@example.com")
	if !ok || got != "123456" {
		t.Fatalf("unexpected get: %q %v", got, ok)
	}

	s.Delete("otp:a@example.com")
	if _, ok := s.Get("otp:a@example.com"); ok {
		t.Fatal("expected key to be gone")
	}
}

func TestTTLStoreExpiry(t *testing.T) {
	t.Parallel()

	s := NewTTLStore()
	defer s.Close()

	base := time.Now()
	setClock(s, func() time.Time { return base })
	s.Set("k", "v", 10*time.Second)

	setClock(s, func() time.Time { return base.Add(11 * time.Second) })
	if _, ok := s.Get("k"); ok {
		t.Fatal("expected key to have expired")
	}
}

func TestTTLStoreSweep(t *testing.T) {
	t.Parallel()

	s := NewTTLStore()
	defer s.Close()

	base := time.Now()
	setClock(s, func() time.Time { return base })
	s.Set("k1", "v", time.Second)
	s.Set("k2", "v", time.Hour)

	setClock(s, func() time.Time { return base.Add(time.Minute) })
	s.sweep()

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries["k1"]; ok {
		t.Fatal("expected k1 swept")
	}
	if _, ok := s.entries["k2"]; !ok {
		t.Fatal("expected k2 kept")
	}
}

func setClock(s *TTLStore, now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}
