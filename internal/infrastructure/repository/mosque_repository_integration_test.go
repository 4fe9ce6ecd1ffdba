package repository_test

import (
	"context"
	"os"
	"testing"

	"github.com/twaiba/faithful-registry/internal/domain/registry"
	"github.com/twaiba/faithful-registry/internal/infrastructure/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestMosqueRepositoryCRUDIntegration(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect db: %v", err)
	}

	schemaSQL := `
    CREATE TABLE IF NOT EXISTS mosques (
      id UUID PRIMARY KEY,
      mosque_name VARCHAR(255) NOT NULL UNIQUE,
      location VARCHAR(500) NOT NULL DEFAULT '',
      date_established VARCHAR(32) NOT NULL DEFAULT '',
      head_imam VARCHAR(255) NOT NULL DEFAULT '',
      total_capacity INT NOT NULL DEFAULT 0,
      contact_email VARCHAR(320) NOT NULL DEFAULT '',
      contact_phone VARCHAR(32) NOT NULL DEFAULT '',
      created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
      updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    );
    `
	if err := db.Exec(schemaSQL).Error; err != nil {
		t.Fatalf("failed schema setup: %v", err)
	}

	mosqueName := "Integration Test Mosque"
	if err := db.Exec("DELETE FROM mosques WHERE mosque_name = ?", mosqueName).Error; err != nil {
		t.Fatalf("cleanup mosques failed: %v", err)
	}

	repo := repository.NewMosqueRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, registry.Mosque{
		MosqueName:    mosqueName,
		Location:      "12 Harbor Road",
		TotalCapacity: 400,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected generated id")
	}

	if _, err := repo.Create(ctx, registry.Mosque{MosqueName: mosqueName}); !registry.IsKind(err, registry.KindDuplicate) {
		t.Fatalf("expected duplicate error, got %v", err)
	}

	got, err := repo.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.MosqueName != mosqueName || got.TotalCapacity != 400 {
		t.Fatalf("unexpected row: %+v", got)
	}

	got.Location = "14 Harbor Road"
	updated, err := repo.Update(ctx, got)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Location != "14 Harbor Road" {
		t.Fatalf("update not applied: %+v", updated)
	}

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(ctx, created.ID); !registry.IsKind(err, registry.KindNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestMosqueRepositoryListNewestFirstIntegration(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect db: %v", err)
	}

	names := []string{"Ordering Test Mosque Old", "Ordering Test Mosque New"}
	if err := db.Exec("DELETE FROM mosques WHERE mosque_name IN ?", names).Error; err != nil {
		t.Fatalf("cleanup mosques failed: %v", err)
	}

	repo := repository.NewMosqueRepository(db)
	ctx := context.Background()

	older, err := repo.Create(ctx, registry.Mosque{MosqueName: names[0]})
	if err != nil {
		t.Fatalf("create older: %v", err)
	}
	if err := db.Exec("UPDATE mosques SET created_at = NOW() - INTERVAL '1 hour' WHERE id = ?", older.ID).Error; err != nil {
		t.Fatalf("backdate older: %v", err)
	}
	newer, err := repo.Create(ctx, registry.Mosque{MosqueName: names[1]})
	if err != nil {
		t.Fatalf("create newer: %v", err)
	}

	listed, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	olderIdx, newerIdx := -1, -1
	for i, m := range listed {
		switch m.ID {
		case older.ID:
			olderIdx = i
		case newer.ID:
			newerIdx = i
		}
	}
	if olderIdx == -1 || newerIdx == -1 {
		t.Fatalf("expected both mosques in list, got %d rows", len(listed))
	}
	if newerIdx > olderIdx {
		t.Fatalf("expected newest first, newer at %d, older at %d", newerIdx, olderIdx)
	}
}
