package config

import "sort"

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// Default values.
const (
	DefaultTodoFile       = "todo.txt"
	DefaultSection        = "Todo"
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
	DefaultConfigFileName = "daylog.toml"
)

// Config holds the full configuration for daylog.
type Config struct {
	// Log file holding the days
	TodoFile string `toml:"todo_file"`

	// Section used by add when none is given
	DefaultSection string `toml:"default_section"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Working directory (computed)
	WorkDir string `toml:"-"`
}

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, lowest priority first.
	Files []string
}

// Fields returns the tracked field names in sorted order.
func (cws *ConfigWithSources) Fields() []string {
	fields := make([]string, 0, len(cws.Sources))
	for field := range cws.Sources {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		"todo_file",
		"default_section",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
	}
}

// Value returns the printable value of a tracked field.
func (c *Config) Value(field string) string {
	switch field {
	case "todo_file":
		return c.TodoFile
	case "default_section":
		return c.DefaultSection
	case "log_level":
		return c.LogLevel
	case "log_format":
		return c.LogFormat
	case "log_timestamps":
		return formatBool(c.LogTimestamps)
	case "log_caller":
		return formatBool(c.LogCaller)
	default:
		return ""
	}
}

func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
