package mosque

import (
	"context"

	"github.com/twaiba/faithful-registry/internal/application/importer"
	"github.com/twaiba/faithful-registry/internal/domain/registry"
)

// ImportRepository is the persistence port for the bulk import path. It is
// separate from Repository so the import reconciler can ride the indexed
// existence check without dragging the full CRUD surface along.
type ImportRepository interface {
	ExistsByName(ctx context.Context, mosqueName string) (bool, error)
	Create(ctx context.Context, m registry.Mosque) (string, error)
}

// ImportTarget adapts mosques to the bulk import reconciler.
type ImportTarget struct {
	repo ImportRepository
}

func NewImportTarget(repo ImportRepository) *ImportTarget {
	return &ImportTarget{repo: repo}
}

func (t *ImportTarget) Entity() string            { return "mosque" }
func (t *ImportTarget) RequiredColumns() []string { return []string{"mosque_name"} }
func (t *ImportTarget) KeyColumns() []string      { return []string{"mosque_name"} }

func (t *ImportTarget) Exists(ctx context.Context, key map[string]string) (bool, error) {
	return t.repo.ExistsByName(ctx, key["mosque_name"])
}

func (t *ImportTarget) Create(ctx context.Context, fields map[string]string) (string, error) {
	var m registry.Mosque
	if err := m.ApplyFields(importer.RowFields(fields)); err != nil {
		return "", err
	}
	if err := m.Validate(); err != nil {
		return "", err
	}
	return t.repo.Create(ctx, m)
}
