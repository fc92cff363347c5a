package importer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/silkway-cargo/silkway/internal/broker/messages"
	"github.com/silkway-cargo/silkway/internal/cache"
	"github.com/silkway-cargo/silkway/internal/models"
	"github.com/silkway-cargo/silkway/internal/storage/pgcargo"
	"go.uber.org/zap"
)

const defaultChunkSize = 50

type Repository interface {
	ListStatuses(ctx context.Context) ([]*models.Status, error)
	WithinImportTx(ctx context.Context, fn func(tx pgcargo.ImportTx) error) error
}

type SheetDecoder interface {
	Decode(data []byte) ([]map[string]string, error)
}

type Producer interface {
	Publish(ctx context.Context, topic string, key, value []byte) error
}

// Summary — итог импорта. Частичный успех (0 создано, N ошибок) — это
// нормальный результат, а не ошибка операции.
type Summary struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Errors  []string `json:"errors"`
	Total   int      `json:"total"`
}

type Service struct {
	repo    Repository
	decoder SheetDecoder

	producer Producer
	topic    string
	cache    cache.BytesCache

	chunkSize int
	now       func() time.Time
}

func New(repo Repository, decoder SheetDecoder) *Service {
	return &Service{
		repo:      repo,
		decoder:   decoder,
		chunkSize: defaultChunkSize,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) WithProducer(p Producer, topic string) *Service {
	s.producer = p
	s.topic = topic
	return s
}

func (s *Service) WithCache(c cache.BytesCache) *Service {
	s.cache = c
	return s
}

func (s *Service) WithChunkSize(n int) *Service {
	if n > 0 {
		s.chunkSize = n
	}
	return s
}

// Import прогоняет файл выгрузки через нормализацию и сверку.
// Чанки обрабатываются последовательно, каждый в своей транзакции;
// ошибка строки не роняет прогон, инфраструктурная ошибка чанка — роняет
// (уже закоммиченные чанки остаются).
func (s *Service) Import(ctx context.Context, actor models.Actor, data []byte) (*Summary, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	runID := uuid.NewString()
	log := zap.S().With("import_id", runID)

	rawRows, err := s.decoder.Decode(data)
	if err != nil {
		return nil, errors.Wrap(err, "decode spreadsheet")
	}
	rows := NormalizeRows(rawRows)

	statuses, err := s.repo.ListStatuses(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load statuses")
	}
	dir, err := NewDirectory(statuses)
	if err != nil {
		log.Warnw("import aborted", "error", err)
		return &Summary{Errors: []string{err.Error()}}, nil
	}

	sum := &Summary{Errors: []string{}, Total: len(rows)}

	for start := 0; start < len(rows); start += s.chunkSize {
		end := min(start+s.chunkSize, len(rows))

		var committed []rowResult
		err := s.repo.WithinImportTx(ctx, func(tx pgcargo.ImportTx) error {
			for i := start; i < end; i++ {
				var res rowResult
				rowErr := tx.WithinRow(ctx, func() error {
					var err error
					res, err = s.reconcileRow(ctx, tx, dir, rows[i])
					return err
				})
				if rowErr != nil {
					// Лист нумеруется с 1 и начинается с заголовка.
					sum.Errors = append(sum.Errors, newRowError(i+2, rowErr).Error())
					continue
				}

				switch res.outcome {
				case OutcomeCreated:
					sum.Created++
				case OutcomeUpdated:
					sum.Updated++
				}
				committed = append(committed, res)
			}
			return nil
		})
		if err != nil {
			return nil, errors.Wrap(err, "import chunk")
		}

		s.afterChunk(ctx, runID, committed)
	}

	log.Infow("import finished",
		"total", sum.Total, "created", sum.Created, "updated", sum.Updated, "errors", len(sum.Errors))
	return sum, nil
}

// afterChunk — пост-коммит: инвалидация кэша и событие track.updated
// по каждому наблюдённому переходу. Best effort, импорт не роняет.
func (s *Service) afterChunk(ctx context.Context, runID string, results []rowResult) {
	for _, r := range results {
		if !r.transitioned {
			continue
		}

		if s.cache != nil {
			_ = s.cache.Del(ctx, cache.TrackKey(r.trackNumber))
		}

		if s.producer == nil {
			continue
		}
		msg := messages.TrackUpdated{
			ImportID:     runID,
			TrackID:      r.trackID,
			TrackNumber:  r.trackNumber,
			StatusID:     r.statusID,
			PrevStatusID: r.prevStatusID,
			OccurredAt:   s.now(),
		}
		b, _ := json.Marshal(msg)
		if err := s.producer.Publish(ctx, s.topic, []byte(r.trackNumber), b); err != nil {
			zap.S().Warnw("publish track.updated failed", "import_id", runID, "track", r.trackNumber, "error", err)
		}
	}
}
