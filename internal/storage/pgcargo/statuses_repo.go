package pgcargo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/silkway-cargo/silkway/internal/models"
)

const pgForeignKeyViolation = "23503"

func (s *Storage) ListStatuses(ctx context.Context) ([]*models.Status, error) {
	rows, err := s.db.Query(ctx, `
SELECT id, name, chinese_name, ord, color, is_final
FROM statuses
ORDER BY ord ASC
`)
	if err != nil {
		return nil, errors.Wrap(err, "select statuses")
	}
	defer rows.Close()

	var out []*models.Status
	for rows.Next() {
		var st models.Status
		if err := rows.Scan(&st.ID, &st.Name, &st.ChineseName, &st.Ord, &st.Color, &st.IsFinal); err != nil {
			return nil, errors.Wrap(err, "scan status")
		}
		out = append(out, &st)
	}
	if rows.Err() != nil {
		return nil, errors.Wrap(rows.Err(), "rows")
	}
	return out, nil
}

func (s *Storage) GetStatusByID(ctx context.Context, id uint64) (*models.Status, error) {
	var st models.Status
	err := s.db.QueryRow(ctx, `
SELECT id, name, chinese_name, ord, color, is_final
FROM statuses
WHERE id = $1
`, id).Scan(&st.ID, &st.Name, &st.ChineseName, &st.Ord, &st.Color, &st.IsFinal)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "select status")
	}
	return &st, nil
}

func (s *Storage) CreateStatus(ctx context.Context, in models.StatusInput) (*models.Status, error) {
	var id uint64
	err := s.db.QueryRow(ctx, `
INSERT INTO statuses (name, chinese_name, ord, color, is_final)
VALUES ($1,$2,$3,$4,$5)
RETURNING id
`, in.Name, in.ChineseName, in.Ord, in.Color, in.IsFinal).Scan(&id)
	if err != nil {
		return nil, errors.Wrap(err, "insert status")
	}
	return s.GetStatusByID(ctx, id)
}

func (s *Storage) UpdateStatus(ctx context.Context, id uint64, in models.StatusInput) (*models.Status, error) {
	tag, err := s.db.Exec(ctx, `
UPDATE statuses
SET name = $2, chinese_name = $3, ord = $4, color = $5, is_final = $6
WHERE id = $1
`, id, in.Name, in.ChineseName, in.Ord, in.Color, in.IsFinal)
	if err != nil {
		return nil, errors.Wrap(err, "update status")
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return s.GetStatusByID(ctx, id)
}

// DeleteStatus удаляет статус. Статус, на который ссылается хоть один трек
// или запись истории, защищён FK RESTRICT и возвращает ErrStatusInUse.
func (s *Storage) DeleteStatus(ctx context.Context, id uint64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM statuses WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return ErrStatusInUse
		}
		return errors.Wrap(err, "delete status")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
