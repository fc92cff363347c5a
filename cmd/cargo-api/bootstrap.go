package main

import (
	"context"
	"fmt"
	"time"

	"github.com/silkway-cargo/silkway/config"
	"github.com/silkway-cargo/silkway/internal/storage/pgcargo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// bootstrapStorage открывает постгрес с ретраями и при включённом
// seed_defaults наполняет пустую базу стартовыми справочниками.
func bootstrapStorage(ctx context.Context, cfg *config.Config) (*pgcargo.Storage, error) {
	st, err := openPostgresWithRetry(cfg.ConnString(), 60*time.Second)
	if err != nil {
		return nil, err
	}

	if cfg.Silkway.SeedDefaults {
		if err := st.SeedDefaults(ctx); err != nil {
			st.Close()
			return nil, err
		}
		if cfg.Silkway.SeedAdminPhone != "" && cfg.Silkway.SeedAdminPassword != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Silkway.SeedAdminPassword), bcrypt.DefaultCost)
			if err != nil {
				st.Close()
				return nil, err
			}
			if err := st.EnsureAdmin(ctx, cfg.Silkway.SeedAdminPhone, string(hash)); err != nil {
				st.Close()
				return nil, err
			}
			zap.L().Info("admin seeded", zap.String("phone", cfg.Silkway.SeedAdminPhone))
		}
	}

	return st, nil
}

func openPostgresWithRetry(connString string, wait time.Duration) (*pgcargo.Storage, error) {
	deadline := time.Now().Add(wait)
	var lastErr error
	for time.Now().Before(deadline) {
		st, err := pgcargo.New(connString)
		if err == nil {
			return st, nil
		}
		lastErr = err
		time.Sleep(1 * time.Second)
	}
	return nil, fmt.Errorf("postgres is not ready after %s: %v", wait, lastErr)
}
