package tracks

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/silkway-cargo/silkway/internal/broker/messages"
	"github.com/silkway-cargo/silkway/internal/cache"
	"github.com/silkway-cargo/silkway/internal/models"
	"github.com/silkway-cargo/silkway/internal/storage/pgcargo"
	"go.uber.org/zap"
)

type Repository interface {
	CreateTrack(ctx context.Context, in models.TrackCreateInput) (*models.Track, error)
	GetTrackByID(ctx context.Context, id uint64) (*models.Track, error)
	GetTrackByNumber(ctx context.Context, trackNumber string) (*models.Track, error)
	ListTracks(ctx context.Context, f pgcargo.TrackFilter) ([]*models.Track, int64, error)
	ListTrackHistory(ctx context.Context, trackID uint64) ([]*models.TrackHistory, error)
	BulkSetStatus(ctx context.Context, trackIDs []uint64, statusID uint64, at time.Time) (int64, error)
	DeleteTracks(ctx context.Context, trackIDs []uint64) (int64, error)
	GetStats(ctx context.Context) (*models.Stats, error)
}

type Producer interface {
	Publish(ctx context.Context, topic string, key, value []byte) error
}

type Service struct {
	repo  Repository
	cache cache.BytesCache
	ttl   time.Duration

	producer Producer
	topic    string
}

func New(repo Repository, c cache.BytesCache, ttl time.Duration) *Service {
	return &Service{repo: repo, cache: c, ttl: ttl}
}

func (s *Service) WithProducer(p Producer, topic string) *Service {
	s.producer = p
	s.topic = topic
	return s
}

func (s *Service) CreateTrack(ctx context.Context, in models.TrackCreateInput) (*models.Track, error) {
	if in.TrackNumber == "" {
		return nil, errors.New("trackNumber is required")
	}
	if in.StatusID == 0 {
		return nil, errors.New("statusId is required")
	}
	return s.repo.CreateTrack(ctx, in)
}

func (s *Service) GetTrack(ctx context.Context, id uint64) (*models.Track, []*models.TrackHistory, error) {
	t, err := s.repo.GetTrackByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	history, err := s.repo.ListTrackHistory(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return t, history, nil
}

func (s *Service) ListTracks(ctx context.Context, f pgcargo.TrackFilter) ([]*models.Track, int64, error) {
	return s.repo.ListTracks(ctx, f)
}

// SearchByNumber — клиентский поиск по точному номеру. Текущее состояние
// кэшируется как JSON; кэш best effort.
func (s *Service) SearchByNumber(ctx context.Context, trackNumber string) (*models.Track, error) {
	if trackNumber == "" {
		return nil, errors.New("trackNumber is required")
	}

	key := cache.TrackKey(trackNumber)
	if s.cache != nil && s.ttl > 0 {
		if b, ok, err := s.cache.Get(ctx, key); err == nil && ok {
			var t models.Track
			if json.Unmarshal(b, &t) == nil {
				return &t, nil
			}
		}
	}

	t, err := s.repo.GetTrackByNumber(ctx, trackNumber)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && s.ttl > 0 {
		b, _ := json.Marshal(t)
		_ = s.cache.Set(ctx, key, b, s.ttl)
	}
	return t, nil
}

// BulkSetStatus массово переводит треки в статус, пишет историю каждому
// и публикует события переходов. Кэш задетых треков инвалидируется.
func (s *Service) BulkSetStatus(ctx context.Context, trackIDs []uint64, statusID uint64) (int64, error) {
	if len(trackIDs) == 0 {
		return 0, errors.New("trackIds are required")
	}
	if statusID == 0 {
		return 0, errors.New("statusId is required")
	}

	now := time.Now().UTC()
	n, err := s.repo.BulkSetStatus(ctx, trackIDs, statusID, now)
	if err != nil {
		return 0, err
	}

	for _, id := range trackIDs {
		t, err := s.repo.GetTrackByID(ctx, id)
		if err != nil {
			continue
		}
		if s.cache != nil {
			_ = s.cache.Del(ctx, cache.TrackKey(t.TrackNumber))
		}
		if s.producer == nil {
			continue
		}
		b, _ := json.Marshal(messages.TrackUpdated{
			TrackID:     t.ID,
			TrackNumber: t.TrackNumber,
			StatusID:    statusID,
			OccurredAt:  now,
		})
		if err := s.producer.Publish(ctx, s.topic, []byte(t.TrackNumber), b); err != nil {
			zap.S().Warnw("publish track.updated failed", "track", t.TrackNumber, "error", err)
		}
	}
	return n, nil
}

func (s *Service) DeleteTracks(ctx context.Context, trackIDs []uint64) (int64, error) {
	if len(trackIDs) == 0 {
		return 0, errors.New("trackIds are required")
	}

	// Номера нужны до удаления, чтобы снять кэш.
	var numbers []string
	if s.cache != nil {
		for _, id := range trackIDs {
			if t, err := s.repo.GetTrackByID(ctx, id); err == nil {
				numbers = append(numbers, t.TrackNumber)
			}
		}
	}

	n, err := s.repo.DeleteTracks(ctx, trackIDs)
	if err != nil {
		return 0, err
	}

	for _, num := range numbers {
		_ = s.cache.Del(ctx, cache.TrackKey(num))
	}
	return n, nil
}

func (s *Service) GetStats(ctx context.Context) (*models.Stats, error) {
	return s.repo.GetStats(ctx)
}
