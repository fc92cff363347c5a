package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/silkway-cargo/silkway/config"
	"github.com/silkway-cargo/silkway/internal/api/httpapi"
	"github.com/silkway-cargo/silkway/internal/broker/kafka"
	"github.com/silkway-cargo/silkway/internal/cache"
	"github.com/silkway-cargo/silkway/internal/services/importer"
	"github.com/silkway-cargo/silkway/internal/services/parcels"
	"github.com/silkway-cargo/silkway/internal/services/statuses"
	"github.com/silkway-cargo/silkway/internal/services/tracks"
	"github.com/silkway-cargo/silkway/internal/storage/pgcargo"
	"github.com/silkway-cargo/silkway/internal/xlsx"
	"go.uber.org/zap"
)

type cargoAPIOpts struct {
	httpAddr string

	onListen func(httpAddr string)
}

func buildRouter(cfg *config.Config, st *pgcargo.Storage, rc cache.BytesCache, producer *kafka.Producer, topic string, cacheTTL time.Duration) http.Handler {
	importSvc := importer.New(st, xlsx.NewDecoder()).
		WithProducer(producer, topic).
		WithCache(rc).
		WithChunkSize(cfg.Silkway.ImportChunkSize)

	tracksSvc := tracks.New(st, rc, cacheTTL).WithProducer(producer, topic)
	statusesSvc := statuses.New(st)
	parcelsSvc := parcels.New(st)

	srv := httpapi.New(importSvc, tracksSvc, statusesSvc, parcelsSvc, st)
	if cfg.Silkway.MaxUploadMB > 0 {
		srv = srv.WithMaxUploadBytes(int64(cfg.Silkway.MaxUploadMB) << 20)
	}
	if swaggerPath := os.Getenv("swaggerPath"); swaggerPath != "" {
		srv = srv.WithSwagger(swaggerPath)
	}
	return srv.Router()
}

func runCargoAPI(ctx context.Context, opts cargoAPIOpts, handler http.Handler) error {
	lis, err := net.Listen("tcp", opts.httpAddr)
	if err != nil {
		return err
	}

	if opts.onListen != nil {
		opts.onListen(lis.Addr().String())
	}

	srv := &http.Server{Handler: handler}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	zap.L().Info("HTTP server listening", zap.String("addr", lis.Addr().String()))
	if err := srv.Serve(lis); err != nil && err != http.ErrServerClosed {
		return err
	}
	return ctx.Err()
}
