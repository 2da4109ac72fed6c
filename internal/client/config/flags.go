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
//	-a string        portal API base URL
//	-t duration      HTTP timeout (e.g. 10s)
//	-env string      environment name
//	-storage string  sqlite | redis
//	-data-dir string directory for the sqlite file
//	-db string       sqlite file name or path
//	-redis-addr string
//	-redis-db int
//	-max-recent int  recent-accounts ledger size
//	-fold-case       treat recent-account emails case-insensitively
//	-log-level string
//	-log-format string
//
// args are filtered with flagx.FilterArgs first, so flags owned by other
// components do not make parsing fail.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{
		"-a", "-t", "-env", "-storage", "-data-dir", "-db",
		"-redis-addr", "-redis-db", "-max-recent", "-log-level", "-log-format",
	}, "-fold-case")

	fs := flag.NewFlagSet("mypage", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "portal API base URL")
	fs.DurationVar(&cfg.HTTPTimeout, "t", cfg.HTTPTimeout, "HTTP timeout")
	fs.StringVar(&cfg.Environment, "env", cfg.Environment, "environment name")
	fs.StringVar(&cfg.StorageDriver, "storage", cfg.StorageDriver, "storage driver (sqlite|redis)")
	fs.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "data directory")
	fs.StringVar(&cfg.DatabaseFile, "db", cfg.DatabaseFile, "sqlite database file")
	fs.StringVar(&cfg.RedisAddr, "redis-addr", cfg.RedisAddr, "redis address")
	fs.IntVar(&cfg.RedisDB, "redis-db", cfg.RedisDB, "redis database number")
	fs.IntVar(&cfg.MaxRecentAccounts, "max-recent", cfg.MaxRecentAccounts, "recent accounts to keep")
	fs.BoolVar(&cfg.RecentAccountsFoldCase, "fold-case", cfg.RecentAccountsFoldCase, "case-insensitive recent accounts")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format (text|json)")

	return fs.Parse(args)
}
