package pgcargo

import (
	"context"

	"github.com/pkg/errors"
)

func (s *Storage) initSchema(ctx context.Context) error {
	stmts := []string{
		`
CREATE TABLE IF NOT EXISTS statuses (
  id BIGSERIAL PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  chinese_name TEXT NULL UNIQUE,
  ord INT NOT NULL,
  color TEXT NOT NULL DEFAULT '#6B7280',
  is_final BOOLEAN NOT NULL DEFAULT FALSE
)`,
		`
CREATE TABLE IF NOT EXISTS batches (
  id BIGSERIAL PRIMARY KEY,
  batch_number TEXT NOT NULL UNIQUE,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
		`
CREATE TABLE IF NOT EXISTS tracks (
  id BIGSERIAL PRIMARY KEY,
  track_number TEXT NOT NULL UNIQUE,
  status_id BIGINT NOT NULL REFERENCES statuses(id) ON DELETE RESTRICT,
  batch_id BIGINT NULL REFERENCES batches(id) ON DELETE SET NULL,
  weight DOUBLE PRECISION NULL,
  description TEXT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
		`CREATE INDEX IF NOT EXISTS idx_tracks_status_id ON tracks(status_id)`,
		`CREATE INDEX IF NOT EXISTS idx_tracks_updated_at ON tracks(updated_at DESC)`,
		`
CREATE TABLE IF NOT EXISTS track_history (
  id BIGSERIAL PRIMARY KEY,
  track_id BIGINT NOT NULL REFERENCES tracks(id) ON DELETE CASCADE,
  status_id BIGINT NOT NULL REFERENCES statuses(id) ON DELETE RESTRICT,
  event_date TIMESTAMPTZ NOT NULL DEFAULT now(),
  note TEXT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
		`CREATE INDEX IF NOT EXISTS idx_track_history_track_id_event_date ON track_history(track_id, event_date DESC)`,
		`
CREATE TABLE IF NOT EXISTS users (
  id BIGSERIAL PRIMARY KEY,
  phone TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  name TEXT NOT NULL DEFAULT '',
  surname TEXT NOT NULL DEFAULT '',
  role TEXT NOT NULL DEFAULT 'CLIENT',
  client_code TEXT NULL UNIQUE,
  is_blocked BOOLEAN NOT NULL DEFAULT FALSE,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
		`
CREATE TABLE IF NOT EXISTS parcels (
  id BIGSERIAL PRIMARY KEY,
  user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  track_id BIGINT NOT NULL REFERENCES tracks(id) ON DELETE CASCADE,
  is_archived BOOLEAN NOT NULL DEFAULT FALSE,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  UNIQUE (user_id, track_id)
)`,
		`
CREATE TABLE IF NOT EXISTS settings (
  id TEXT PRIMARY KEY,
  exchange_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
  price_per_kg DOUBLE PRECISION NOT NULL DEFAULT 0,
  china_address TEXT NOT NULL DEFAULT '',
  warehouse_address TEXT NOT NULL DEFAULT '',
  whatsapp_number TEXT NOT NULL DEFAULT '',
  about_text TEXT NOT NULL DEFAULT '',
  prohibited_items TEXT NOT NULL DEFAULT '',
  instruction_text TEXT NOT NULL DEFAULT ''
)`,
	}

	for _, q := range stmts {
		if _, err := s.db.Exec(ctx, q); err != nil {
			return errors.Wrap(err, "init schema")
		}
	}
	return nil
}
