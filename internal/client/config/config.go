package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"time"
)

const (
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"

	EnvProduction = "production"
)

// Config holds runtime settings for the mypage terminal client.
//
// Fields:
//   - APIBaseURL: absolute base URL of the portal API.
//   - HTTPTimeout: transport timeout for a single call; a call that hits it
//     is reported as a network failure.
//   - Environment: "production" disables the demo recent-account seed.
//   - StorageDriver: "sqlite" (on-device file) or "redis" (shared device).
//   - MaxRecentAccounts / RecentAccountsFoldCase: recent-accounts ledger policy.
type Config struct {
	APIBaseURL  string        `env:"API_BASE_URL"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT"`
	Environment string        `env:"ENV"`

	StorageDriver  string `env:"STORAGE_DRIVER"`
	DataDir        string `env:"DATA_DIR"`
	DatabaseFile   string `env:"DATABASE_FILE"`
	RedisAddr      string `env:"REDIS_ADDR"`
	RedisPassword  string `env:"REDIS_PASSWORD"`
	RedisDB        int    `env:"REDIS_DB"`
	RedisKeyPrefix string `env:"REDIS_KEY_PREFIX"`

	MaxRecentAccounts      int  `env:"MAX_RECENT_ACCOUNTS"`
	RecentAccountsFoldCase bool `env:"RECENT_ACCOUNTS_FOLD_CASE"`

	LogLevel  string `env:"LOG_LEVEL"`
	LogFormat string `env:"LOG_FORMAT"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080"
	c.HTTPTimeout = 30 * time.Second
	c.Environment = "development"
	c.StorageDriver = StorageSQLite
	c.DataDir = ".mypage"
	c.DatabaseFile = "mypage.db"
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisDB = 0
	c.RedisKeyPrefix = "mypage:"
	c.MaxRecentAccounts = 5
	c.RecentAccountsFoldCase = false
	c.LogLevel = "warn"
	c.LogFormat = "text"
}

// IsProduction reports whether demo data must be left out.
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// DatabasePath returns DatabaseFile, resolved against DataDir when relative.
func (c *Config) DatabasePath() string {
	if filepath.IsAbs(c.DatabaseFile) {
		return c.DatabaseFile
	}
	return filepath.Join(c.DataDir, c.DatabaseFile)
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api base url %q must be absolute", c.APIBaseURL)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be positive, got %s", c.HTTPTimeout)
	}
	switch c.StorageDriver {
	case StorageSQLite:
		if c.DatabaseFile == "" {
			return fmt.Errorf("database file must be set for the %s driver", StorageSQLite)
		}
	case StorageRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("redis address must be set for the %s driver", StorageRedis)
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.StorageDriver)
	}
	if c.MaxRecentAccounts < 1 {
		return fmt.Errorf("max recent accounts must be at least 1, got %d", c.MaxRecentAccounts)
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (and a .env file), a JSON or YAML file (if given) and
// command-line flags. Later sources take precedence over earlier ones.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg, ".env"); err != nil {
		return nil, fmt.Errorf("env: %w", err)
	}
	if err := parseFile(cfg, args); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
