package importer

import (
	"github.com/silkway-cargo/silkway/internal/models"
)

// Directory — словарь статусов одного прогона импорта: китайский ярлык →
// статус. Загружается один раз на прогон; статусы в пределах прогона
// считаются неизменными.
type Directory struct {
	byLabel map[string]*models.Status
	def     *models.Status
}

// NewDirectory строит словарь. Статус "по умолчанию" — с минимальным Ord
// среди всех настроенных (не захардкоженный ранг: перенумерация
// переживается). Пустой список статусов — ошибка конфигурации.
func NewDirectory(statuses []*models.Status) (*Directory, error) {
	if len(statuses) == 0 {
		return nil, ErrNoStatuses
	}

	d := &Directory{byLabel: make(map[string]*models.Status, len(statuses))}
	for _, st := range statuses {
		if st.ChineseName != nil && *st.ChineseName != "" {
			d.byLabel[*st.ChineseName] = st
		}
		if d.def == nil || st.Ord < d.def.Ord {
			d.def = st
		}
	}
	return d, nil
}

// Resolve возвращает статус по ярлыку; пустой или неизвестный ярлык —
// статус по умолчанию, никогда не ошибка.
func (d *Directory) Resolve(label string) *models.Status {
	if label == "" {
		return d.def
	}
	if st, ok := d.byLabel[label]; ok {
		return st
	}
	return d.def
}

func (d *Directory) Default() *models.Status {
	return d.def
}
