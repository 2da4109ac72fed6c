package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8080", c.APIBaseURL)
	assert.Equal(t, 30*time.Second, c.HTTPTimeout)
	assert.Equal(t, StorageSQLite, c.StorageDriver)
	assert.Equal(t, 5, c.MaxRecentAccounts)
	assert.False(t, c.RecentAccountsFoldCase)
	assert.False(t, c.IsProduction())
	require.NoError(t, c.Validate())
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	cfg, err := LoadConfig(nil)
	require.NoError(t, err)
	require.NotNil(t, cfg, "LoadConfig must not return nil")

	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 5, cfg.MaxRecentAccounts)
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("MYPAGE_API_BASE_URL", "http://env.example")
	t.Setenv("MYPAGE_MAX_RECENT_ACCOUNTS", "3")

	cfg, err := LoadConfig([]string{"-a", "http://flag.example", "-unknown", "x"})
	require.NoError(t, err)

	assert.Equal(t, "http://flag.example", cfg.APIBaseURL)
	assert.Equal(t, 3, cfg.MaxRecentAccounts)
}

func TestLoadConfig_RejectsInvalid(t *testing.T) {
	_, err := LoadConfig([]string{"-storage", "postgres"})
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{name: "defaults", mutate: func(*Config) {}, ok: true},
		{name: "relative base url", mutate: func(c *Config) { c.APIBaseURL = "/api" }},
		{name: "zero timeout", mutate: func(c *Config) { c.HTTPTimeout = 0 }},
		{name: "redis without addr", mutate: func(c *Config) { c.StorageDriver = StorageRedis; c.RedisAddr = "" }},
		{name: "redis", mutate: func(c *Config) { c.StorageDriver = StorageRedis }, ok: true},
		{name: "unknown driver", mutate: func(c *Config) { c.StorageDriver = "bolt" }},
		{name: "ledger size zero", mutate: func(c *Config) { c.MaxRecentAccounts = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Config
			c.LoadDefaults()
			tt.mutate(&c)

			err := c.Validate()
			if tt.ok {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}

func TestDatabasePath(t *testing.T) {
	c := Config{DataDir: "data", DatabaseFile: "m.db"}
	assert.Equal(t, "data/m.db", c.DatabasePath())

	c.DatabaseFile = "/var/lib/mypage/m.db"
	assert.Equal(t, "/var/lib/mypage/m.db", c.DatabasePath())
}
