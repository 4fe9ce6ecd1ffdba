package mosque

import (
	"context"

	"github.com/twaiba/faithful-registry/internal/domain/registry"
)

// Repository is the persistence port for mosque CRUD.
type Repository interface {
	Create(ctx context.Context, m registry.Mosque) (registry.Mosque, error)
	Get(ctx context.Context, id string) (registry.Mosque, error)
	List(ctx context.Context) ([]registry.Mosque, error)
	Update(ctx context.Context, m registry.Mosque) (registry.Mosque, error)
	Delete(ctx context.Context, id string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register creates a mosque from an allow-listed payload merge.
func (s *Service) Register(ctx context.Context, fields map[string]any) (registry.Mosque, error) {
	var m registry.Mosque
	if err := m.ApplyFields(fields); err != nil {
		return registry.Mosque{}, err
	}
	if err := m.Validate(); err != nil {
		return registry.Mosque{}, err
	}
	return s.repo.Create(ctx, m)
}

func (s *Service) Get(ctx context.Context, id string) (registry.Mosque, error) {
	if id == "" {
		return registry.Mosque{}, registry.Validationf("missing mosque id")
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]registry.Mosque, error) {
	return s.repo.List(ctx)
}

// Update loads the mosque, merges the payload over it and saves. Unknown
// payload keys fail the call before any write.
func (s *Service) Update(ctx context.Context, id string, fields map[string]any) (registry.Mosque, error) {
	if id == "" {
		return registry.Mosque{}, registry.Validationf("missing mosque id for update")
	}
	m, err := s.repo.Get(ctx, id)
	if err != nil {
		return registry.Mosque{}, err
	}
	if err := m.ApplyFields(fields); err != nil {
		return registry.Mosque{}, err
	}
	if err := m.Validate(); err != nil {
		return registry.Mosque{}, err
	}
	return s.repo.Update(ctx, m)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return registry.Validationf("you must provide 'id' to delete a mosque")
	}
	return s.repo.Delete(ctx, id)
}
