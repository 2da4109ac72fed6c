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

// fileConfig is a DTO used exclusively for file unmarshalling. Pointer
// fields tell "absent" apart from a zero value, so a file only overrides the
// keys it names.
type fileConfig struct {
	APIBaseURL  *string         `json:"api_base_url" yaml:"api_base_url"`
	HTTPTimeout *timex.Duration `json:"http_timeout" yaml:"http_timeout"`
	Environment *string         `json:"environment" yaml:"environment"`

	StorageDriver  *string `json:"storage_driver" yaml:"storage_driver"`
	DataDir        *string `json:"data_dir" yaml:"data_dir"`
	DatabaseFile   *string `json:"database_file" yaml:"database_file"`
	RedisAddr      *string `json:"redis_addr" yaml:"redis_addr"`
	RedisPassword  *string `json:"redis_password" yaml:"redis_password"`
	RedisDB        *int    `json:"redis_db" yaml:"redis_db"`
	RedisKeyPrefix *string `json:"redis_key_prefix" yaml:"redis_key_prefix"`

	MaxRecentAccounts      *int  `json:"max_recent_accounts" yaml:"max_recent_accounts"`
	RecentAccountsFoldCase *bool `json:"recent_accounts_fold_case" yaml:"recent_accounts_fold_case"`

	LogLevel  *string `json:"log_level" yaml:"log_level"`
	LogFormat *string `json:"log_format" yaml:"log_format"`
}

// parseFile overlays cfg with the file named by -c/-config. Files ending in
// .yaml or .yml are read as YAML, everything else as JSON. Without the flag
// nothing changes.
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

	fc.apply(cfg)
	return nil
}

func (fc *fileConfig) apply(cfg *Config) {
	setIf(&cfg.APIBaseURL, fc.APIBaseURL)
	if fc.HTTPTimeout != nil {
		cfg.HTTPTimeout = fc.HTTPTimeout.Duration
	}
	setIf(&cfg.Environment, fc.Environment)
	setIf(&cfg.StorageDriver, fc.StorageDriver)
	setIf(&cfg.DataDir, fc.DataDir)
	setIf(&cfg.DatabaseFile, fc.DatabaseFile)
	setIf(&cfg.RedisAddr, fc.RedisAddr)
	setIf(&cfg.RedisPassword, fc.RedisPassword)
	setIf(&cfg.RedisDB, fc.RedisDB)
	setIf(&cfg.RedisKeyPrefix, fc.RedisKeyPrefix)
	setIf(&cfg.MaxRecentAccounts, fc.MaxRecentAccounts)
	setIf(&cfg.RecentAccountsFoldCase, fc.RecentAccountsFoldCase)
	setIf(&cfg.LogLevel, fc.LogLevel)
	setIf(&cfg.LogFormat, fc.LogFormat)
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
