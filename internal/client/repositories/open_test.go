package repositories

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/mypage/internal/client/config"
	"github.com/stretchr/testify/require"
)

func TestOpen_SQLiteCreatesDataDirAndPersists(t *testing.T) {
	ctx := context.Background()

	var cfg config.Config
	cfg.LoadDefaults()
	cfg.DataDir = filepath.Join(t.TempDir(), "data")

	store, err := Open(ctx, &cfg)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "session", []byte(`{}`)))
	require.NoError(t, store.Close())

	_, err = os.Stat(cfg.DatabasePath())
	require.NoError(t, err)

	reopened, err := Open(ctx, &cfg)
	require.NoError(t, err)
	defer reopened.Close()

	v, err := reopened.Get(ctx, "session")
	require.NoError(t, err)
	require.JSONEq(t, `{}`, string(v))
}

func TestOpen_UnknownDriver(t *testing.T) {
	cfg := config.Config{StorageDriver: "bolt"}

	_, err := Open(context.Background(), &cfg)
	require.Error(t, err)
}

func TestOpen_RedisUnreachable(t *testing.T) {
	var cfg config.Config
	cfg.LoadDefaults()
	cfg.StorageDriver = config.StorageRedis
	cfg.RedisAddr = "127.0.0.1:1"

	_, err := Open(context.Background(), &cfg)
	require.Error(t, err)
}
