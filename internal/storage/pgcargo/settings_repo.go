package pgcargo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"github.com/silkway-cargo/silkway/internal/models"
)

const settingsID = "main"

const settingsColumns = `exchange_rate, price_per_kg, china_address, warehouse_address, whatsapp_number, about_text, prohibited_items, instruction_text`

func (s *Storage) GetSettings(ctx context.Context) (*models.Settings, error) {
	var v models.Settings
	err := s.db.QueryRow(ctx, `SELECT `+settingsColumns+` FROM settings WHERE id = $1`, settingsID).Scan(
		&v.ExchangeRate, &v.PricePerKg, &v.ChinaAddress, &v.WarehouseAddress,
		&v.WhatsappNumber, &v.AboutText, &v.ProhibitedItems, &v.InstructionText,
	)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "select settings")
	}
	return &v, nil
}

func (s *Storage) UpdateSettings(ctx context.Context, v models.Settings) error {
	_, err := s.db.Exec(ctx, `
INSERT INTO settings (id, `+settingsColumns+`)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
ON CONFLICT (id) DO UPDATE SET
  exchange_rate = EXCLUDED.exchange_rate,
  price_per_kg = EXCLUDED.price_per_kg,
  china_address = EXCLUDED.china_address,
  warehouse_address = EXCLUDED.warehouse_address,
  whatsapp_number = EXCLUDED.whatsapp_number,
  about_text = EXCLUDED.about_text,
  prohibited_items = EXCLUDED.prohibited_items,
  instruction_text = EXCLUDED.instruction_text
`, settingsID, v.ExchangeRate, v.PricePerKg, v.ChinaAddress, v.WarehouseAddress,
		v.WhatsappNumber, v.AboutText, v.ProhibitedItems, v.InstructionText)
	return errors.Wrap(err, "upsert settings")
}
