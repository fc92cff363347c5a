package importer

import (
	"context"

	"github.com/pkg/errors"
	"github.com/silkway-cargo/silkway/internal/models"
	"github.com/silkway-cargo/silkway/internal/storage/pgcargo"
)

// Outcome — результат сверки одной строки.
type Outcome int

const (
	OutcomeCreated Outcome = iota
	OutcomeUpdated
	OutcomeFailed
)

type rowResult struct {
	outcome      Outcome
	trackID      uint64
	trackNumber  string
	statusID     uint64
	prevStatusID uint64 // 0 для созданных треков

	// transitioned — наблюдён переход статуса (создание или смена).
	// Повтор той же строки перехода не даёт: history не растёт.
	transitioned bool
}

// reconcileRow сверяет одну нормализованную строку с базой.
// Единственная жёсткая валидация — номер трека; остальные поля опциональны.
func (s *Service) reconcileRow(ctx context.Context, tx pgcargo.ImportTx, dir *Directory, row NormalizedRow) (rowResult, error) {
	if row.TrackNumber == "" {
		return rowResult{outcome: OutcomeFailed}, &fieldError{field: "trackNumber", err: errMissingTrackNumber}
	}

	status := dir.Resolve(row.StatusLabel)

	var batchID *uint64
	if row.BatchNumber != "" {
		batch, err := tx.UpsertBatch(ctx, row.BatchNumber)
		if err != nil {
			return rowResult{outcome: OutcomeFailed}, err
		}
		batchID = &batch.ID
	}

	track, err := tx.GetTrackByNumber(ctx, row.TrackNumber)
	if err != nil && !errors.Is(err, pgcargo.ErrNotFound) {
		return rowResult{outcome: OutcomeFailed}, err
	}

	res := rowResult{trackNumber: row.TrackNumber, statusID: status.ID}

	if track == nil {
		created, err := tx.CreateTrack(ctx, models.TrackCreateInput{
			TrackNumber: row.TrackNumber,
			StatusID:    status.ID,
			BatchID:     batchID,
		})
		if err != nil {
			return rowResult{outcome: OutcomeFailed}, err
		}
		eventDate, ok := parseLooseDate(row.AddedDate)
		if !ok {
			eventDate = s.now()
		}
		if err := tx.AppendHistory(ctx, created.ID, status.ID, eventDate); err != nil {
			return rowResult{outcome: OutcomeFailed}, err
		}
		res.outcome = OutcomeCreated
		res.trackID = created.ID
		res.transitioned = true
	} else {
		res.outcome = OutcomeUpdated
		res.trackID = track.ID
		res.prevStatusID = track.StatusID

		// История пишется только при фактической смене статуса: повторный
		// импорт той же строки не растит историю и не трогает updatedAt.
		if track.StatusID != status.ID {
			if err := tx.SetTrackStatus(ctx, track.ID, status.ID, batchID); err != nil {
				return rowResult{outcome: OutcomeFailed}, err
			}
			eventDate, ok := parseLooseDate(row.UpdatedDate)
			if !ok {
				eventDate = s.now()
			}
			if err := tx.AppendHistory(ctx, track.ID, status.ID, eventDate); err != nil {
				return rowResult{outcome: OutcomeFailed}, err
			}
			res.transitioned = true
		}
	}

	// Автопривязка к клиенту по коду. Код без зарегистрированного
	// пользователя — не ошибка: клиент мог ещё не зарегистрироваться.
	if row.ClientCode != "" {
		user, err := tx.GetUserByClientCode(ctx, row.ClientCode)
		if err != nil && !errors.Is(err, pgcargo.ErrNotFound) {
			return rowResult{outcome: OutcomeFailed}, err
		}
		if user != nil {
			if err := tx.UpsertParcel(ctx, user.ID, res.trackID); err != nil {
				return rowResult{outcome: OutcomeFailed}, err
			}
		}
	}

	return res, nil
}
