package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# daylog configuration file
# Values can be overridden by DAYLOG_* environment variables or CLI flags

# Todo file (relative to the working directory, supports ~ and $VAR)
todo_file = "todo.txt"

# Section used by "daylog add" when -section is not given
default_section = "Todo"

# Logging: debug, info, warn, error
log_level = "info"

# Log format: text, json, logfmt
log_format = "text"

# Include timestamps and caller locations in log lines
log_timestamps = false
log_caller = false
`
}
