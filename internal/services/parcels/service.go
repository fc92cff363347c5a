package parcels

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/silkway-cargo/silkway/internal/models"
)

type Repository interface {
	GetUserByID(ctx context.Context, id uint64) (*models.User, error)
	GetTrackByNumber(ctx context.Context, trackNumber string) (*models.Track, error)
	AddParcel(ctx context.Context, userID, trackID uint64) (*models.Parcel, error)
	ListParcels(ctx context.Context, userID uint64, archived bool) ([]*models.ParcelView, error)
	SetParcelArchived(ctx context.Context, userID, parcelID uint64, archived bool) error
	DeleteParcel(ctx context.Context, userID, parcelID uint64) error
}

// ErrBlocked — заблокированный пользователь не может привязывать посылки.
var ErrBlocked = errors.New("user is blocked")

type Service struct {
	repo Repository
}

func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Add привязывает существующий трек к пользователю по номеру.
// Повторная привязка — ошибка (pgcargo.ErrDuplicateLink), в отличие от
// импорта, где привязка идемпотентна и молчалива.
func (s *Service) Add(ctx context.Context, userID uint64, trackNumber string) (*models.Parcel, error) {
	trackNumber = strings.TrimSpace(trackNumber)
	if trackNumber == "" {
		return nil, errors.New("trackNumber is required")
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsBlocked {
		return nil, ErrBlocked
	}

	track, err := s.repo.GetTrackByNumber(ctx, trackNumber)
	if err != nil {
		return nil, err
	}
	return s.repo.AddParcel(ctx, userID, track.ID)
}

func (s *Service) List(ctx context.Context, userID uint64, archived bool) ([]*models.ParcelView, error) {
	return s.repo.ListParcels(ctx, userID, archived)
}

func (s *Service) SetArchived(ctx context.Context, userID, parcelID uint64, archived bool) error {
	if parcelID == 0 {
		return errors.New("parcelId is required")
	}
	return s.repo.SetParcelArchived(ctx, userID, parcelID, archived)
}

func (s *Service) Delete(ctx context.Context, userID, parcelID uint64) error {
	if parcelID == 0 {
		return errors.New("parcelId is required")
	}
	return s.repo.DeleteParcel(ctx, userID, parcelID)
}
