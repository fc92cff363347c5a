package cache

import (
	"context"
	"fmt"
	"time"
)

// BytesCache — кэш "текущего состояния" как сырых байтов (JSON).
// Кэш best effort: промах и ошибка равнозначны.
type BytesCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// TrackKey — ключ текущего состояния трека по его номеру.
func TrackKey(trackNumber string) string {
	return fmt.Sprintf("track:%s:current", trackNumber)
}
