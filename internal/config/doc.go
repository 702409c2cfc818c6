// Package config loads octoscout's TOML configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/octoscout/config.toml
//  3. If the file doesn't exist, return Default()
//  4. If the file exists but fields are missing or blank, use defaults
//
// Command-line flags are layered on top with Config.Apply.
//
// # Default Values
//
//   - API base URL: https://api.github.com
//   - Log file: ~/.local/state/octoscout/octoscout.log
//   - Log level: info
//   - Request timeout: none (the HTTP transport's own behavior applies)
//
// # TOML Format
//
//	api_base_url = "https://api.github.com"
//	log_file = "~/.local/state/octoscout/octoscout.log"
//	log_level = "info"         # debug, info, warn, error
//	request_timeout = "10s"    # Go duration syntax
//
// # Path Expansion
//
// A leading "~" is replaced with the user's home directory and the result is
// made absolute.
package config
