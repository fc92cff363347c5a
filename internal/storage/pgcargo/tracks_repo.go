package pgcargo

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/silkway-cargo/silkway/internal/models"
)

const pgUniqueViolation = "23505"

const trackColumns = `id, track_number, status_id, batch_id, weight, description, created_at, updated_at`

type TrackFilter struct {
	Search    string
	StatusID  uint64
	Limit     int
	Offset    int
	SortBy    string // track_number | created_at | updated_at
	SortDesc  bool
}

func scanTrack(row pgx.Row) (*models.Track, error) {
	var t models.Track
	err := row.Scan(&t.ID, &t.TrackNumber, &t.StatusID, &t.BatchID, &t.Weight, &t.Description, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTrack создаёт трек и первую запись истории одной транзакцией.
func (s *Storage) CreateTrack(ctx context.Context, in models.TrackCreateInput) (*models.Track, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, errors.Wrap(err, "begin tx")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	t, err := scanTrack(tx.QueryRow(ctx, `
INSERT INTO tracks (track_number, status_id, batch_id, weight, description)
VALUES ($1,$2,$3,$4,$5)
RETURNING `+trackColumns,
		in.TrackNumber, in.StatusID, in.BatchID, in.Weight, in.Description))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, ErrDuplicateTrack
		}
		return nil, errors.Wrap(err, "insert track")
	}

	_, err = tx.Exec(ctx, `
INSERT INTO track_history (track_id, status_id, event_date)
VALUES ($1,$2,now())
`, t.ID, in.StatusID)
	if err != nil {
		return nil, errors.Wrap(err, "insert initial history")
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, errors.Wrap(err, "commit tx")
	}
	return t, nil
}

func (s *Storage) GetTrackByID(ctx context.Context, id uint64) (*models.Track, error) {
	t, err := scanTrack(s.db.QueryRow(ctx, `SELECT `+trackColumns+` FROM tracks WHERE id = $1`, id))
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "select track")
	}
	return t, nil
}

func (s *Storage) GetTrackByNumber(ctx context.Context, trackNumber string) (*models.Track, error) {
	t, err := scanTrack(s.db.QueryRow(ctx, `SELECT `+trackColumns+` FROM tracks WHERE track_number = $1`, trackNumber))
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "select track by number")
	}
	return t, nil
}

var trackSortColumns = map[string]string{
	"track_number": "track_number",
	"created_at":   "created_at",
	"updated_at":   "updated_at",
}

func (s *Storage) ListTracks(ctx context.Context, f TrackFilter) ([]*models.Track, int64, error) {
	if f.Limit <= 0 || f.Limit > 500 {
		f.Limit = 50
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	sortCol, ok := trackSortColumns[f.SortBy]
	if !ok {
		sortCol = "updated_at"
		f.SortDesc = true
	}
	dir := "ASC"
	if f.SortDesc {
		dir = "DESC"
	}

	where := `WHERE ($1 = '' OR track_number ILIKE '%' || $1 || '%') AND ($2 = 0 OR status_id = $2)`

	var total int64
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM tracks `+where, f.Search, f.StatusID).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, "count tracks")
	}

	q := fmt.Sprintf(`SELECT %s FROM tracks %s ORDER BY %s %s LIMIT $3 OFFSET $4`, trackColumns, where, sortCol, dir)
	rows, err := s.db.Query(ctx, q, f.Search, f.StatusID, f.Limit, f.Offset)
	if err != nil {
		return nil, 0, errors.Wrap(err, "select tracks")
	}
	defer rows.Close()

	var out []*models.Track
	for rows.Next() {
		t, err := scanTrack(rows)
		if err != nil {
			return nil, 0, errors.Wrap(err, "scan track")
		}
		out = append(out, t)
	}
	if rows.Err() != nil {
		return nil, 0, errors.Wrap(rows.Err(), "rows")
	}
	return out, total, nil
}

func (s *Storage) ListTrackHistory(ctx context.Context, trackID uint64) ([]*models.TrackHistory, error) {
	rows, err := s.db.Query(ctx, `
SELECT id, track_id, status_id, event_date, note, created_at
FROM track_history
WHERE track_id = $1
ORDER BY event_date DESC, id DESC
`, trackID)
	if err != nil {
		return nil, errors.Wrap(err, "select history")
	}
	defer rows.Close()

	var out []*models.TrackHistory
	for rows.Next() {
		var h models.TrackHistory
		if err := rows.Scan(&h.ID, &h.TrackID, &h.StatusID, &h.EventDate, &h.Note, &h.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scan history")
		}
		out = append(out, &h)
	}
	if rows.Err() != nil {
		return nil, errors.Wrap(rows.Err(), "rows")
	}
	return out, nil
}

// BulkSetStatus переводит все указанные треки в статус и пишет по записи
// истории каждому. Одна транзакция на всю пачку.
func (s *Storage) BulkSetStatus(ctx context.Context, trackIDs []uint64, statusID uint64, at time.Time) (int64, error) {
	if len(trackIDs) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, errors.Wrap(err, "begin tx")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
UPDATE tracks SET status_id = $2, updated_at = now() WHERE id = ANY($1)
`, trackIDs, statusID)
	if err != nil {
		return 0, errors.Wrap(err, "bulk update tracks")
	}

	_, err = tx.Exec(ctx, `
INSERT INTO track_history (track_id, status_id, event_date)
SELECT id, $2, $3 FROM tracks WHERE id = ANY($1)
`, trackIDs, statusID, at.UTC())
	if err != nil {
		return 0, errors.Wrap(err, "bulk insert history")
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, errors.Wrap(err, "commit tx")
	}
	return tag.RowsAffected(), nil
}

func (s *Storage) DeleteTracks(ctx context.Context, trackIDs []uint64) (int64, error) {
	if len(trackIDs) == 0 {
		return 0, nil
	}
	tag, err := s.db.Exec(ctx, `DELETE FROM tracks WHERE id = ANY($1)`, trackIDs)
	if err != nil {
		return 0, errors.Wrap(err, "delete tracks")
	}
	return tag.RowsAffected(), nil
}

func (s *Storage) GetStats(ctx context.Context) (*models.Stats, error) {
	var st models.Stats
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&st.TotalUsers); err != nil {
		return nil, errors.Wrap(err, "count users")
	}
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM tracks`).Scan(&st.TotalTracks); err != nil {
		return nil, errors.Wrap(err, "count tracks")
	}

	rows, err := s.db.Query(ctx, `
SELECT s.id, s.name, count(t.id)
FROM statuses s
LEFT JOIN tracks t ON t.status_id = s.id
GROUP BY s.id, s.name
ORDER BY s.ord ASC
`)
	if err != nil {
		return nil, errors.Wrap(err, "count tracks by status")
	}
	defer rows.Close()

	for rows.Next() {
		var c models.StatusCount
		if err := rows.Scan(&c.StatusID, &c.Name, &c.Count); err != nil {
			return nil, errors.Wrap(err, "scan status count")
		}
		st.TracksByStatus = append(st.TracksByStatus, c)
	}
	if rows.Err() != nil {
		return nil, errors.Wrap(rows.Err(), "rows")
	}
	return &st, nil
}
