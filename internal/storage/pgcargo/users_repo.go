package pgcargo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"github.com/silkway-cargo/silkway/internal/models"
)

func (s *Storage) GetUserByID(ctx context.Context, id uint64) (*models.User, error) {
	var u models.User
	err := s.db.QueryRow(ctx, `
SELECT id, phone, password_hash, name, surname, role, client_code, is_blocked, created_at
FROM users
WHERE id = $1
`, id).Scan(&u.ID, &u.Phone, &u.PasswordHash, &u.Name, &u.Surname, &u.Role, &u.ClientCode, &u.IsBlocked, &u.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "select user")
	}
	return &u, nil
}

// EnsureAdmin создаёт админа по телефону, если его ещё нет.
// Существующий пользователь не трогается (пароль не перезаписываем).
func (s *Storage) EnsureAdmin(ctx context.Context, phone, passwordHash string) error {
	_, err := s.db.Exec(ctx, `
INSERT INTO users (phone, password_hash, name, surname, role)
VALUES ($1,$2,'Admin','Admin',$3)
ON CONFLICT (phone) DO NOTHING
`, phone, passwordHash, models.RoleAdmin)
	return errors.Wrap(err, "ensure admin")
}
