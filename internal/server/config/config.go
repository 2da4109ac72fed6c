// Package config handles configuration for the mock portal API,
// including defaults, environment, a JSON or YAML overlay, and
// command-line flags.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/mypage/internal/common"
)

// Config holds runtime settings for the mock API.
//
// Fields:
//   - Addr: bind address of the HTTP listener.
//   - SecretKey: HMAC secret for signing access tokens (HS256). When unset a
//     random key is generated, so tokens do not survive a restart.
//   - TokenTTL: access token lifetime, reported to clients as expiresIn.
//   - FixturesFile: YAML fixtures to serve instead of the built-in set.
type Config struct {
	Addr         string        `env:"ADDR"`
	SecretKey    string        `env:"SECRET_KEY"`
	TokenTTL     time.Duration `env:"TOKEN_TTL"`
	FixturesFile string        `env:"FIXTURES_FILE"`
	LogLevel     string        `env:"LOG_LEVEL"`
	LogFormat    string        `env:"LOG_FORMAT"`
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.Addr = "127.0.0.1:8080"
	c.SecretKey = ""
	c.TokenTTL = time.Hour
	c.FixturesFile = ""
	c.LogLevel = "info"
	c.LogFormat = "json"
}

func (c *Config) Validate() error {
	if c.Addr == "" {
		return errors.New("listen address is empty")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("token ttl must be positive, got %s", c.TokenTTL)
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then the environment
// (MYPAGE_MOCK_ prefix), then an optional config file and finally
// command-line flags. A missing secret is replaced with a random one.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg); err != nil {
		return nil, fmt.Errorf("env: %w", err)
	}
	if err := parseFile(cfg, args); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}

	if cfg.SecretKey == "" {
		key, err := common.MakeRandHexString(32)
		if err != nil {
			return nil, fmt.Errorf("generate secret: %w", err)
		}
		cfg.SecretKey = key
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
