package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "127.0.0.1:8080", c.Addr)
	assert.Empty(t, c.SecretKey)
	assert.Equal(t, time.Hour, c.TokenTTL)
	assert.Empty(t, c.FixturesFile)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "json", c.LogFormat)
}

func TestLoadConfig_GeneratesSecret(t *testing.T) {
	c1, err := LoadConfig(nil)
	require.NoError(t, err)
	c2, err := LoadConfig(nil)
	require.NoError(t, err)

	assert.Len(t, c1.SecretKey, 64)
	assert.NotEqual(t, c1.SecretKey, c2.SecretKey)
}

func TestLoadConfig_Precedence(t *testing.T) {
	t.Setenv("MYPAGE_MOCK_ADDR", ":7000")
	t.Setenv("MYPAGE_MOCK_SECRET_KEY", "from-env")

	path := filepath.Join(t.TempDir(), "mock.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: \":7100\"\ntoken_ttl: 5m\n"), 0o600))

	c, err := LoadConfig([]string{"-config", path, "-t", "2m", "-unknown", "x"})
	require.NoError(t, err)

	assert.Equal(t, ":7100", c.Addr)
	assert.Equal(t, "from-env", c.SecretKey)
	assert.Equal(t, 2*time.Minute, c.TokenTTL)
}

func TestLoadConfig_JSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mock.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"secret_key":"k","fixtures_file":"f.yaml","log_format":"text"}`), 0o600))

	c, err := LoadConfig([]string{"-c", path})
	require.NoError(t, err)

	assert.Equal(t, "k", c.SecretKey)
	assert.Equal(t, "f.yaml", c.FixturesFile)
	assert.Equal(t, "text", c.LogFormat)
}

func TestLoadConfig_Errors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{ not json`), 0o600))

	tests := []struct {
		name string
		args []string
	}{
		{"missing file", []string{"-c", filepath.Join(dir, "nope.json")}},
		{"bad file", []string{"-c", bad}},
		{"bad duration", []string{"-t", "soon"}},
		{"non-positive ttl", []string{"-t", "0s"}},
		{"empty addr", []string{"-a="}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(tt.args)
			assert.Error(t, err)
		})
	}
}

func TestParseFlags(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	err := parseFlags(cfg, []string{"-a", ":9090", "-s", "secret", "-t", "15m", "-fixtures", "fx.yaml", "-log-level", "debug", "-log-format", "text"})
	require.NoError(t, err)

	expected := &Config{
		Addr:         ":9090",
		SecretKey:    "secret",
		TokenTTL:     15 * time.Minute,
		FixturesFile: "fx.yaml",
		LogLevel:     "debug",
		LogFormat:    "text",
	}
	assert.Empty(t, cmp.Diff(expected, cfg))
}
