package store

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	config "github.com/phillip/venturelink/config"
)

// OpenBackend builds the backend named by cfg.Backend. A mongo backend that cannot be
// reached falls back to the local backend.
func OpenBackend(ctx context.Context, cfg *config.Config, log *zap.Logger) (Backend, error) {
	switch cfg.Backend {
	case "memory":
		return NewMemoryBackend(), nil
	case "local":
		return NewLocalBackend(cfg.LocalPath)
	case "mongo":
		cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		b, err := NewMongoBackend(cctx, cfg.MongoURI, cfg.DBName)
		if err == nil {
			log.Info("mongo connected", zap.String("db", cfg.DBName))
			return b, nil
		}
		log.Warn("mongo unavailable, falling back to local store",
			zap.String("path", cfg.LocalPath), zap.Error(err))
		return NewLocalBackend(cfg.LocalPath)
	case "postgres":
		return NewPostgresBackend(ctx, cfg.DatabaseURL)
	case "dynamo":
		return NewDynamoBackend(ctx, cfg.AWSRegion, cfg.DynamoTablePrefix)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// Open builds the backend and wraps it in a Store.
func Open(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Store, error) {
	b, err := OpenBackend(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	var opts []Option
	if cfg.SeedDemoData {
		opts = append(opts, WithDemoIdeas())
	}
	st := New(b, log, opts...)
	if err := st.Seed(ctx); err != nil {
		log.Warn("demo ideas not written", zap.Error(err))
	}
	return st, nil
}
