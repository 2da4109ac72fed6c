package config

import (
	"errors"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const envPrefix = "MYPAGE_"

// parseEnv overlays cfg with MYPAGE_* environment variables. Variables from
// dotenvFile are loaded first without overriding ones already set; a missing
// file is not an error. Unset variables keep the current field values.
func parseEnv(cfg *Config, dotenvFile string) error {
	if dotenvFile != "" {
		if err := godotenv.Load(dotenvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	return env.ParseWithOptions(cfg, env.Options{Prefix: envPrefix})
}
