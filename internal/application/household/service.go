package household

import (
	"context"

	"github.com/twaiba/faithful-registry/internal/domain/registry"
)

// Repository is the persistence port for household CRUD.
type Repository interface {
	Create(ctx context.Context, h registry.Household) (registry.Household, error)
	Get(ctx context.Context, id string) (registry.Household, error)
	List(ctx context.Context) ([]registry.Household, error)
	Update(ctx context.Context, h registry.Household) (registry.Household, error)
	Delete(ctx context.Context, id string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Register(ctx context.Context, fields map[string]any) (registry.Household, error) {
	var h registry.Household
	if err := h.ApplyFields(fields); err != nil {
		return registry.Household{}, err
	}
	if err := h.Validate(); err != nil {
		return registry.Household{}, err
	}
	return s.repo.Create(ctx, h)
}

func (s *Service) Get(ctx context.Context, id string) (registry.Household, error) {
	if id == "" {
		return registry.Household{}, registry.Validationf("missing household id")
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]registry.Household, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, id string, fields map[string]any) (registry.Household, error) {
	if id == "" {
		return registry.Household{}, registry.Validationf("missing household id for update")
	}
	h, err := s.repo.Get(ctx, id)
	if err != nil {
		return registry.Household{}, err
	}
	if err := h.ApplyFields(fields); err != nil {
		return registry.Household{}, err
	}
	if err := h.Validate(); err != nil {
		return registry.Household{}, err
	}
	return s.repo.Update(ctx, h)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return registry.Validationf("you must provide 'id' to delete a household")
	}
	return s.repo.Delete(ctx, id)
}
