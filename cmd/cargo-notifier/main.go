package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

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

	topic := cfg.Kafka.TrackUpdatedTopicName
	if topic == "" {
		topic = "track.updated"
	}
	consumerGroup := cfg.Silkway.KafkaConsumerGroup
	if consumerGroup == "" {
		consumerGroup = "cargo-notifier"
	}

	brokers := []string{fmt.Sprintf("%s:%d", cfg.Kafka.Host, cfg.Kafka.Port)}
	consumer := kafka.NewConsumer(brokers, topic, consumerGroup)
	defer func() { _ = consumer.Close() }()

	redisAddr := fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
	rc := rediscache.New(redisAddr)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	zap.L().Info("notifier started", zap.String("topic", topic), zap.String("group", consumerGroup))
	if err := runNotifier(ctx, consumer, rc); err != nil && err != context.Canceled {
		zap.L().Fatal("notifier stopped", zap.Error(err))
	}
}
