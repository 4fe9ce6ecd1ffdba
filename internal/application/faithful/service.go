package faithful

import (
	"context"

	"github.com/twaiba/faithful-registry/internal/domain/registry"
)

// Repository is the persistence port for faithful profile CRUD.
type Repository interface {
	Create(ctx context.Context, f registry.Faithful) (registry.Faithful, error)
	Get(ctx context.Context, id string) (registry.Faithful, error)
	GetByUserEmail(ctx context.Context, userEmail string) (registry.Faithful, error)
	List(ctx context.Context) ([]registry.Faithful, error)
	Update(ctx context.Context, f registry.Faithful) (registry.Faithful, error)
	Delete(ctx context.Context, id string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Register(ctx context.Context, fields map[string]any) (registry.Faithful, error) {
	var f registry.Faithful
	if err := f.ApplyFields(fields); err != nil {
		return registry.Faithful{}, err
	}
	if err := f.Validate(); err != nil {
		return registry.Faithful{}, err
	}
	return s.repo.Create(ctx, f)
}

func (s *Service) Get(ctx context.Context, id string) (registry.Faithful, error) {
	if id == "" {
		return registry.Faithful{}, registry.Validationf("missing faithful profile id")
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]registry.Faithful, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, id string, fields map[string]any) (registry.Faithful, error) {
	if id == "" {
		return registry.Faithful{}, registry.Validationf("missing faithful profile id for update")
	}
	f, err := s.repo.Get(ctx, id)
	if err != nil {
		return registry.Faithful{}, err
	}
	if err := f.ApplyFields(fields); err != nil {
		return registry.Faithful{}, err
	}
	if err := f.Validate(); err != nil {
		return registry.Faithful{}, err
	}
	return s.repo.Update(ctx, f)
}

// Delete removes a profile addressed either by record id or by the linked
// account email, whichever the caller supplied.
func (s *Service) Delete(ctx context.Context, id, userEmail string) (string, error) {
	if id == "" && userEmail == "" {
		return "", registry.Validationf("you must provide either 'id' or 'user_id'")
	}

	target := id
	if target == "" {
		f, err := s.repo.GetByUserEmail(ctx, userEmail)
		if err != nil {
			return "", err
		}
		target = f.ID
	}

	if err := s.repo.Delete(ctx, target); err != nil {
		return "", err
	}
	return target, nil
}
