package pgcargo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"github.com/silkway-cargo/silkway/internal/models"
)

// ImportTx — операции одного чанка импорта, выполняемые внутри общей
// транзакции. WithinRow оборачивает одну строку в savepoint, чтобы её
// ошибка не отравляла транзакцию чанка.
type ImportTx interface {
	WithinRow(ctx context.Context, fn func() error) error

	UpsertBatch(ctx context.Context, batchNumber string) (*models.Batch, error)
	GetTrackByNumber(ctx context.Context, trackNumber string) (*models.Track, error)
	CreateTrack(ctx context.Context, in models.TrackCreateInput) (*models.Track, error)
	SetTrackStatus(ctx context.Context, trackID, statusID uint64, batchID *uint64) error
	AppendHistory(ctx context.Context, trackID, statusID uint64, eventDate time.Time) error
	GetUserByClientCode(ctx context.Context, code string) (*models.User, error)
	UpsertParcel(ctx context.Context, userID, trackID uint64) error
}

type importTx struct {
	tx pgx.Tx
}

// WithinImportTx выполняет fn внутри одной транзакции: либо все мутации
// чанка коммитятся, либо всё откатывается.
func (s *Storage) WithinImportTx(ctx context.Context, fn func(tx ImportTx) error) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(&importTx{tx: tx}); err != nil {
		return err
	}

	return errors.Wrap(tx.Commit(ctx), "commit tx")
}

func (t *importTx) WithinRow(ctx context.Context, fn func() error) error {
	// pgx.Tx.Begin внутри транзакции — это savepoint.
	sp, err := t.tx.Begin(ctx)
	if err != nil {
		return errors.Wrap(err, "begin savepoint")
	}
	prev := t.tx
	t.tx = sp
	defer func() { t.tx = prev }()

	if err := fn(); err != nil {
		_ = sp.Rollback(ctx)
		return err
	}
	return errors.Wrap(sp.Commit(ctx), "release savepoint")
}

// UpsertBatch — create-if-absent по уникальному batch_number, без
// read-then-write: два прогона одного номера дают одну запись.
func (t *importTx) UpsertBatch(ctx context.Context, batchNumber string) (*models.Batch, error) {
	var b models.Batch
	err := t.tx.QueryRow(ctx, `
INSERT INTO batches (batch_number)
VALUES ($1)
ON CONFLICT (batch_number) DO UPDATE SET batch_number = batches.batch_number
RETURNING id, batch_number, created_at
`, batchNumber).Scan(&b.ID, &b.BatchNumber, &b.CreatedAt)
	if err != nil {
		return nil, errors.Wrap(err, "upsert batch")
	}
	return &b, nil
}

func (t *importTx) GetTrackByNumber(ctx context.Context, trackNumber string) (*models.Track, error) {
	tr, err := scanTrack(t.tx.QueryRow(ctx, `SELECT `+trackColumns+` FROM tracks WHERE track_number = $1`, trackNumber))
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "select track by number")
	}
	return tr, nil
}

func (t *importTx) CreateTrack(ctx context.Context, in models.TrackCreateInput) (*models.Track, error) {
	tr, err := scanTrack(t.tx.QueryRow(ctx, `
INSERT INTO tracks (track_number, status_id, batch_id, weight, description)
VALUES ($1,$2,$3,$4,$5)
RETURNING `+trackColumns,
		in.TrackNumber, in.StatusID, in.BatchID, in.Weight, in.Description))
	if err != nil {
		return nil, errors.Wrap(err, "insert track")
	}
	return tr, nil
}

// SetTrackStatus меняет статус трека; batchID != nil дополнительно
// перепривязывает batch (последняя строка выигрывает).
func (t *importTx) SetTrackStatus(ctx context.Context, trackID, statusID uint64, batchID *uint64) error {
	_, err := t.tx.Exec(ctx, `
UPDATE tracks
SET status_id = $2, batch_id = COALESCE($3, batch_id), updated_at = now()
WHERE id = $1
`, trackID, statusID, batchID)
	return errors.Wrap(err, "update track status")
}

func (t *importTx) AppendHistory(ctx context.Context, trackID, statusID uint64, eventDate time.Time) error {
	_, err := t.tx.Exec(ctx, `
INSERT INTO track_history (track_id, status_id, event_date)
VALUES ($1,$2,$3)
`, trackID, statusID, eventDate.UTC())
	return errors.Wrap(err, "insert history")
}

func (t *importTx) GetUserByClientCode(ctx context.Context, code string) (*models.User, error) {
	var u models.User
	err := t.tx.QueryRow(ctx, `
SELECT id, phone, password_hash, name, surname, role, client_code, is_blocked, created_at
FROM users
WHERE client_code = $1
`, code).Scan(&u.ID, &u.Phone, &u.PasswordHash, &u.Name, &u.Surname, &u.Role, &u.ClientCode, &u.IsBlocked, &u.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "select user by client code")
	}
	return &u, nil
}

func (t *importTx) UpsertParcel(ctx context.Context, userID, trackID uint64) error {
	_, err := t.tx.Exec(ctx, `
INSERT INTO parcels (user_id, track_id)
VALUES ($1,$2)
ON CONFLICT (user_id, track_id) DO NOTHING
`, userID, trackID)
	return errors.Wrap(err, "upsert parcel")
}
