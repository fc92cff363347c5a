package main

import (
	"context"
	"encoding/json"

	"github.com/silkway-cargo/silkway/internal/broker/messages"
	"github.com/silkway-cargo/silkway/internal/cache"
	"go.uber.org/zap"
)

type kafkaConsumer interface {
	Consume(ctx context.Context, handler func(key, value []byte) error) error
}

type trackCache interface {
	Del(ctx context.Context, key string) error
}

// runNotifier читает события смены статуса и сбрасывает кеш текущего
// статуса, чтобы поисковые запросы не отдавали устаревшие данные.
func runNotifier(ctx context.Context, consumer kafkaConsumer, c trackCache) error {
	return consumer.Consume(ctx, func(_ []byte, value []byte) error {
		var m messages.TrackUpdated
		if err := json.Unmarshal(value, &m); err != nil {
			zap.L().Warn("skip malformed event", zap.Error(err))
			return nil
		}

		if err := c.Del(ctx, cache.TrackKey(m.TrackNumber)); err != nil {
			zap.L().Warn("cache invalidation failed",
				zap.String("trackNumber", m.TrackNumber), zap.Error(err))
			return err
		}

		zap.L().Info("track status changed",
			zap.String("importId", m.ImportID),
			zap.String("trackNumber", m.TrackNumber),
			zap.Uint64("statusId", m.StatusID),
		)
		return nil
	})
}
