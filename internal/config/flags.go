package config

import (
	"flag"
)

// flagFields maps global flag names to config field names.
var flagFields = map[string]string{
	"file":           "todo_file",
	"section":        "default_section",
	"log-level":      "log_level",
	"log-format":     "log_format",
	"log-timestamps": "log_timestamps",
	"log-caller":     "log_caller",
}

// RegisterFlags defines the global flags on fs, bound to cfg.
// The current values of cfg become the flag defaults.
func RegisterFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.TodoFile, "file", cfg.TodoFile, "Path to the todo file")
	fs.StringVar(&cfg.DefaultSection, "section", cfg.DefaultSection, "Default section for add")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Include timestamps in log output")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Include caller location in log output")
}

// parseFlags registers and parses the global flags, updating source tracking
// for the flags that were set explicitly.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("daylog", flag.ContinueOnError)
	}
	RegisterFlags(fs, cfg)

	if err := fs.Parse(args); err != nil {
		return err
	}

	if sources != nil {
		fs.Visit(func(f *flag.Flag) {
			if field, ok := flagFields[f.Name]; ok {
				sources[field] = SourceFlag
			}
		})
	}
	return nil
}
