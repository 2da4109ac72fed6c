package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/mypage/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string         listen address (e.g. ":8080")
//	-s string         JWT HMAC secret key
//	-t duration       access token lifetime (e.g. 30m)
//	-fixtures string  YAML fixtures file
//	-log-level string
//	-log-format string
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-s", "-t", "-fixtures", "-log-level", "-log-format"})

	fs := flag.NewFlagSet("mockapi", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.Addr, "a", cfg.Addr, "address and port to run server")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "secret key")
	fs.DurationVar(&cfg.TokenTTL, "t", cfg.TokenTTL, "access token lifetime")
	fs.StringVar(&cfg.FixturesFile, "fixtures", cfg.FixturesFile, "fixtures file (yaml)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format (text|json)")

	return fs.Parse(args)
}
