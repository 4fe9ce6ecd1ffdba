package household

import (
	"context"

	"github.com/twaiba/faithful-registry/internal/application/importer"
	"github.com/twaiba/faithful-registry/internal/domain/registry"
)

// ImportRepository is the persistence port for the bulk import path.
type ImportRepository interface {
	ExistsByName(ctx context.Context, householdName string) (bool, error)
	Create(ctx context.Context, h registry.Household) (string, error)
}

// ImportTarget adapts households to the bulk import reconciler.
type ImportTarget struct {
	repo ImportRepository
}

func NewImportTarget(repo ImportRepository) *ImportTarget {
	return &ImportTarget{repo: repo}
}

func (t *ImportTarget) Entity() string            { return "household" }
func (t *ImportTarget) RequiredColumns() []string { return []string{"household_name"} }
func (t *ImportTarget) KeyColumns() []string      { return []string{"household_name"} }

func (t *ImportTarget) Exists(ctx context.Context, key map[string]string) (bool, error) {
	return t.repo.ExistsByName(ctx, key["household_name"])
}

func (t *ImportTarget) Create(ctx context.Context, fields map[string]string) (string, error) {
	var h registry.Household
	if err := h.ApplyFields(importer.RowFields(fields)); err != nil {
		return "", err
	}
	if err := h.Validate(); err != nil {
		return "", err
	}
	return t.repo.Create(ctx, h)
}
