package app

import (
	"context"
	"errors"

	"perform-assistant/internal/config"
	"perform-assistant/internal/db"
	"perform-assistant/internal/interaction"
	"perform-assistant/internal/logger"
	"perform-assistant/internal/redis"
	"perform-assistant/internal/session"
)

type Infra struct {
	DB       *db.DB        // nil without DATABASE_DSN
	Redis    *redis.Client // nil without REDIS_ADDR
	Sessions session.Store
	Recorder interaction.Recorder
}

func setupInfra(ctx context.Context, cfg config.Config) (*Infra, error) {
	infra := &Infra{}

	if cfg.RedisAddr != "" {
		redisClient, err := redis.New(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, err
		}
		infra.Redis = redisClient
		infra.Sessions = session.NewRedisStore(redisClient.Client)
		logger.Info("redis ready", map[string]any{"addr": cfg.RedisAddr})
	} else {
		infra.Sessions = session.NewMemoryStore()
		logger.Warn("REDIS_ADDR not set, sessions kept in memory", nil)
	}

	if cfg.DatabaseDSN != "" {
		database, err := db.Open(ctx, cfg.DatabaseDSN)
		if err != nil {
			_ = infra.Close()
			return nil, err
		}
		infra.DB = database

		if err := database.Migrate(ctx); err != nil {
			_ = infra.Close()
			return nil, err
		}
		infra.Recorder = interaction.NewPostgresRecorder(database)
		logger.Info("database ready", nil)
	} else {
		infra.Recorder = interaction.NewFileRecorder(cfg.InteractionLogPath)
		logger.Info("recording interactions to file", map[string]any{
			"path": cfg.InteractionLogPath,
		})
	}

	return infra, nil
}

func (i *Infra) Close() error {
	var errs []error
	if i.DB != nil {
		errs = append(errs, i.DB.Close())
	}
	if i.Redis != nil {
		errs = append(errs, i.Redis.Close())
	}
	return errors.Join(errs...)
}
