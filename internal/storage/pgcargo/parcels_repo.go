package pgcargo

import (
	"context"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/silkway-cargo/silkway/internal/models"
)

// AddParcel — строгая привязка по явному действию клиента: повтор
// возвращает ErrDuplicateLink (в отличие от upsert-а импортёра).
func (s *Storage) AddParcel(ctx context.Context, userID, trackID uint64) (*models.Parcel, error) {
	var p models.Parcel
	err := s.db.QueryRow(ctx, `
INSERT INTO parcels (user_id, track_id)
VALUES ($1,$2)
RETURNING id, user_id, track_id, is_archived, created_at
`, userID, trackID).Scan(&p.ID, &p.UserID, &p.TrackID, &p.IsArchived, &p.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, ErrDuplicateLink
		}
		return nil, errors.Wrap(err, "insert parcel")
	}
	return &p, nil
}

func (s *Storage) ListParcels(ctx context.Context, userID uint64, archived bool) ([]*models.ParcelView, error) {
	rows, err := s.db.Query(ctx, `
SELECT
  p.id, p.user_id, p.track_id, p.is_archived, p.created_at,
  t.id, t.track_number, t.status_id, t.batch_id, t.weight, t.description, t.created_at, t.updated_at,
  s.id, s.name, s.chinese_name, s.ord, s.color, s.is_final
FROM parcels p
JOIN tracks t ON t.id = p.track_id
JOIN statuses s ON s.id = t.status_id
WHERE p.user_id = $1 AND p.is_archived = $2
ORDER BY p.created_at DESC
`, userID, archived)
	if err != nil {
		return nil, errors.Wrap(err, "select parcels")
	}
	defer rows.Close()

	var out []*models.ParcelView
	for rows.Next() {
		var v models.ParcelView
		if err := rows.Scan(
			&v.Parcel.ID, &v.Parcel.UserID, &v.Parcel.TrackID, &v.Parcel.IsArchived, &v.Parcel.CreatedAt,
			&v.Track.ID, &v.Track.TrackNumber, &v.Track.StatusID, &v.Track.BatchID, &v.Track.Weight, &v.Track.Description, &v.Track.CreatedAt, &v.Track.UpdatedAt,
			&v.Status.ID, &v.Status.Name, &v.Status.ChineseName, &v.Status.Ord, &v.Status.Color, &v.Status.IsFinal,
		); err != nil {
			return nil, errors.Wrap(err, "scan parcel")
		}
		out = append(out, &v)
	}
	if rows.Err() != nil {
		return nil, errors.Wrap(rows.Err(), "rows")
	}
	return out, nil
}

// SetParcelArchived меняет флаг архива только у посылки владельца.
func (s *Storage) SetParcelArchived(ctx context.Context, userID, parcelID uint64, archived bool) error {
	tag, err := s.db.Exec(ctx, `
UPDATE parcels SET is_archived = $3 WHERE id = $2 AND user_id = $1
`, userID, parcelID, archived)
	if err != nil {
		return errors.Wrap(err, "archive parcel")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Storage) DeleteParcel(ctx context.Context, userID, parcelID uint64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM parcels WHERE id = $2 AND user_id = $1`, userID, parcelID)
	if err != nil {
		return errors.Wrap(err, "delete parcel")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
