// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.daylog/daylog.toml or OS-specific config directory)
// 3. Project config file (daylog.toml or .daylog.toml in the working directory)
// 4. A .env file in the working directory (never overrides the real environment)
// 5. Environment variables (DAYLOG_*)
// 6. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.daylog/daylog.toml (preferred)
// - Windows: %APPDATA%\daylog\daylog.toml
// - macOS: ~/Library/Application Support/daylog/daylog.toml
// - Linux/BSD: $XDG_CONFIG_HOME/daylog/daylog.toml or ~/.config/daylog/daylog.toml
package config
