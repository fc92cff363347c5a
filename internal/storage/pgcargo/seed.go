package pgcargo

import (
	"context"

	"github.com/pkg/errors"
	"github.com/silkway-cargo/silkway/internal/models"
)

func strptr(s string) *string { return &s }

// Пайплайн Китай → Казахстан. Китайские ярлыки — те же, что в выгрузках
// поставщика, по ним импортёр сопоставляет статусы.
var defaultStatuses = []models.StatusInput{
	{Name: "Ожидает", Ord: 1, Color: "#9CA3AF"},
	{Name: "На складе в Китае", ChineseName: strptr("已入库"), Ord: 2, Color: "#F59E0B"},
	{Name: "Отправлено из Китая", ChineseName: strptr("已出库"), Ord: 3, Color: "#3B82F6"},
	{Name: "В пути", ChineseName: strptr("运输中"), Ord: 4, Color: "#8B5CF6"},
	{Name: "На складе в Казахстане", ChineseName: strptr("已到达"), Ord: 5, Color: "#10B981"},
	{Name: "Готов к выдаче", ChineseName: strptr("待取件"), Ord: 6, Color: "#06B6D4"},
	{Name: "Выдан", ChineseName: strptr("已签收"), Ord: 7, Color: "#22C55E", IsFinal: true},
}

// SeedDefaults наполняет пустую базу: статусы пайплайна и строка настроек.
// Существующие записи не перезаписываются.
func (s *Storage) SeedDefaults(ctx context.Context) error {
	for _, st := range defaultStatuses {
		_, err := s.db.Exec(ctx, `
INSERT INTO statuses (name, chinese_name, ord, color, is_final)
VALUES ($1,$2,$3,$4,$5)
ON CONFLICT (name) DO NOTHING
`, st.Name, st.ChineseName, st.Ord, st.Color, st.IsFinal)
		if err != nil {
			return errors.Wrap(err, "seed status")
		}
	}

	_, err := s.db.Exec(ctx, `
INSERT INTO settings (id, exchange_rate, price_per_kg, warehouse_address)
VALUES ($1, 495, 3.5, 'Космическая 8/2')
ON CONFLICT (id) DO NOTHING
`, settingsID)
	return errors.Wrap(err, "seed settings")
}
