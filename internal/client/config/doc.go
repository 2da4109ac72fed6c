// Package config loads runtime configuration for the mypage terminal client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. MYPAGE_* environment variables, with a .env file in the working
//     directory loaded first when present.
//  3. Optional JSON or YAML file selected via -c or -config.
//  4. Command-line flags, which override earlier values.
//
// # File schema
//
// Durations use timex.Duration, so values can be strings like "10s" or
// integer nanoseconds:
//
//	api_base_url: http://127.0.0.1:8080
//	http_timeout: 10s
//	storage_driver: sqlite
//	data_dir: .mypage
//	max_recent_accounts: 5
//
// Primary API
//
//   - type Config
//   - func LoadConfig(args []string) (*Config, error)
//   - func (*Config) LoadDefaults()
//   - func (*Config) Validate() error
package config
