package imam

import (
	"context"

	"github.com/twaiba/faithful-registry/internal/application/importer"
	"github.com/twaiba/faithful-registry/internal/domain/registry"
)

// ImportRepository is the persistence port for the bulk import path. One
// profile holds at most one imam appointment, so the faithful reference is
// the uniqueness key.
type ImportRepository interface {
	ExistsByFaithful(ctx context.Context, faithfulID string) (bool, error)
	Create(ctx context.Context, i registry.Imam) (string, error)
}

// ImportTarget adapts imam appointments to the bulk import reconciler.
type ImportTarget struct {
	repo ImportRepository
}

func NewImportTarget(repo ImportRepository) *ImportTarget {
	return &ImportTarget{repo: repo}
}

func (t *ImportTarget) Entity() string { return "imam" }

func (t *ImportTarget) RequiredColumns() []string {
	return []string{"faithful", "mosque_assigned", "date_appointed"}
}

func (t *ImportTarget) KeyColumns() []string { return []string{"faithful"} }

func (t *ImportTarget) Exists(ctx context.Context, key map[string]string) (bool, error) {
	return t.repo.ExistsByFaithful(ctx, key["faithful"])
}

func (t *ImportTarget) Create(ctx context.Context, fields map[string]string) (string, error) {
	var i registry.Imam
	if err := i.ApplyFields(importer.RowFields(fields)); err != nil {
		return "", err
	}
	if err := i.Validate(); err != nil {
		return "", err
	}
	return t.repo.Create(ctx, i)
}
