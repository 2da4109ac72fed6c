package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/mypage/internal/flagx"
	"github.com/dmitrijs2005/mypage/internal/timex"
	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk shape of the server config. Only keys present
// in the file override the current values.
type fileConfig struct {
	Addr         *string         `json:"addr" yaml:"addr"`
	SecretKey    *string         `json:"secret_key" yaml:"secret_key"`
	TokenTTL     *timex.Duration `json:"token_ttl" yaml:"token_ttl"`
	FixturesFile *string         `json:"fixtures_file" yaml:"fixtures_file"`
	LogLevel     *string         `json:"log_level" yaml:"log_level"`
	LogFormat    *string         `json:"log_format" yaml:"log_format"`
}

func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return err
	}

	if fc.Addr != nil {
		cfg.Addr = *fc.Addr
	}
	if fc.SecretKey != nil {
		cfg.SecretKey = *fc.SecretKey
	}
	if fc.TokenTTL != nil {
		cfg.TokenTTL = fc.TokenTTL.Duration
	}
	if fc.FixturesFile != nil {
		cfg.FixturesFile = *fc.FixturesFile
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
	if fc.LogFormat != nil {
		cfg.LogFormat = *fc.LogFormat
	}
	return nil
}
