package statuses

import (
	"context"

	"github.com/pkg/errors"
	"github.com/silkway-cargo/silkway/internal/models"
)

type Repository interface {
	ListStatuses(ctx context.Context) ([]*models.Status, error)
	CreateStatus(ctx context.Context, in models.StatusInput) (*models.Status, error)
	UpdateStatus(ctx context.Context, id uint64, in models.StatusInput) (*models.Status, error)
	DeleteStatus(ctx context.Context, id uint64) error
}

type Service struct {
	repo Repository
}

func New(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]*models.Status, error) {
	return s.repo.ListStatuses(ctx)
}

func (s *Service) Create(ctx context.Context, in models.StatusInput) (*models.Status, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	if in.Color == "" {
		in.Color = "#6B7280"
	}
	return s.repo.CreateStatus(ctx, in)
}

func (s *Service) Update(ctx context.Context, id uint64, in models.StatusInput) (*models.Status, error) {
	if id == 0 {
		return nil, errors.New("id is required")
	}
	if err := validate(in); err != nil {
		return nil, err
	}
	return s.repo.UpdateStatus(ctx, id, in)
}

// Delete отдаёт pgcargo.ErrStatusInUse, пока на статус ссылается
// хоть один трек.
func (s *Service) Delete(ctx context.Context, id uint64) error {
	if id == 0 {
		return errors.New("id is required")
	}
	return s.repo.DeleteStatus(ctx, id)
}

func validate(in models.StatusInput) error {
	if in.Name == "" {
		return errors.New("name is required")
	}
	if in.Ord <= 0 {
		return errors.New("ord must be positive")
	}
	return nil
}
