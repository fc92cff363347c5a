package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/silkway-cargo/silkway/config"
	"github.com/silkway-cargo/silkway/internal/broker/kafka"
	"github.com/silkway-cargo/silkway/internal/cache/rediscache"
	"github.com/silkway-cargo/silkway/internal/logger"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig(os.Getenv("configPath"))
	if err != nil {
		panic(fmt.Sprintf("ошибка парсинга конфига, %v", err))
	}

	log := logger.New()
	defer func() { _ = log.Sync() }()

	httpAddr := cfg.Silkway.HTTPAddr
	if httpAddr == "" {
		httpAddr = ":8080"
	}
	topic := cfg.Kafka.TrackUpdatedTopicName
	if topic == "" {
		topic = "track.updated"
	}
	cacheTTL := time.Duration(cfg.Silkway.CurrentStatusTTLSeconds) * time.Second
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	st, err := bootstrapStorage(ctx, cfg)
	if err != nil {
		panic(err)
	}
	defer st.Close()

	redisAddr := fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
	rc := rediscache.New(redisAddr)

	brokers := []string{fmt.Sprintf("%s:%d", cfg.Kafka.Host, cfg.Kafka.Port)}
	producer := kafka.NewProducer(brokers)
	defer func() { _ = producer.Close() }()

	handler := buildRouter(cfg, st, rc, producer, topic, cacheTTL)

	if err := runCargoAPI(ctx, cargoAPIOpts{httpAddr: httpAddr}, handler); err != nil && err != context.Canceled {
		zap.L().Fatal("server stopped", zap.Error(err))
	}
}
