package repositories

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/mypage/internal/client/config"
	"github.com/dmitrijs2005/mypage/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/mypage/internal/filex"
	"github.com/redis/go-redis/v9"
)

// Store is a metadata repository that owns a connection.
type Store interface {
	metadata.Repository
	Close() error
}

// Open returns the store selected by cfg.StorageDriver. For sqlite the data
// directory is created and migrations are applied; for redis the server is
// pinged before returning.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.StorageDriver {
	case config.StorageSQLite:
		return openSQLite(ctx, cfg)
	case config.StorageRedis:
		return openRedis(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func openSQLite(ctx context.Context, cfg *config.Config) (Store, error) {
	if _, err := filex.EnsureDir(cfg.DataDir); err != nil {
		return nil, err
	}

	db, err := InitDatabase(ctx, cfg.DatabasePath())
	if err != nil {
		return nil, err
	}
	return metadata.NewSQLiteRepository(db), nil
}

func openRedis(ctx context.Context, cfg *config.Config) (Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis %s: %w", cfg.RedisAddr, err)
	}
	return metadata.NewRedisRepository(client, cfg.RedisKeyPrefix), nil
}
