package messages

import "time"

// TrackUpdated публикуется в track.updated на каждый наблюдённый переход
// статуса: импорт из выгрузки или массовое обновление админом.
type TrackUpdated struct {
	ImportID string `json:"import_id,omitempty"`

	TrackID      uint64 `json:"track_id"`
	TrackNumber  string `json:"track_number"`
	StatusID     uint64 `json:"status_id"`
	PrevStatusID uint64 `json:"prev_status_id,omitempty"`

	OccurredAt time.Time `json:"occurred_at"`
}
