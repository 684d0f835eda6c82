package config

import (
	"fmt"
	"os"
	"strings"
)

// Environment variables read by loadFromEnv.
const (
	EnvTodoFile      = "DAYLOG_FILE"
	EnvSection       = "DAYLOG_SECTION"
	EnvLogLevel      = "DAYLOG_LOG_LEVEL"
	EnvLogFormat     = "DAYLOG_LOG_FORMAT"
	EnvLogTimestamps = "DAYLOG_LOG_TIMESTAMPS"
	EnvLogCaller     = "DAYLOG_LOG_CALLER"
)

type lookupFunc func(key string) (string, bool)

// envLookup reads the process environment, falling back to values from a
// .env file.
func envLookup(dotenv map[string]string) lookupFunc {
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
}

// loadFromEnv overrides config from environment variables.
func loadFromEnv(cfg *Config, lookup lookupFunc, sources map[string]ConfigSource) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	setSource := func(field string) {
		if sources != nil {
			sources[field] = SourceEnv
		}
	}

	stringVars := []struct {
		key    string
		field  string
		target *string
	}{
		{EnvTodoFile, "todo_file", &cfg.TodoFile},
		{EnvSection, "default_section", &cfg.DefaultSection},
		{EnvLogLevel, "log_level", &cfg.LogLevel},
		{EnvLogFormat, "log_format", &cfg.LogFormat},
	}
	for _, s := range stringVars {
		if v, ok := lookup(s.key); ok && v != "" {
			*s.target = v
			setSource(s.field)
		}
	}

	boolVars := []struct {
		key    string
		field  string
		target *bool
	}{
		{EnvLogTimestamps, "log_timestamps", &cfg.LogTimestamps},
		{EnvLogCaller, "log_caller", &cfg.LogCaller},
	}
	for _, b := range boolVars {
		v, ok := lookup(b.key)
		if !ok || v == "" {
			continue
		}
		parsed, err := boolFromString(v)
		if err != nil {
			return fmt.Errorf("%s: %w", b.key, err)
		}
		*b.target = parsed
		setSource(b.field)
	}
	return nil
}

// boolFromString parses the boolean spellings accepted in the environment.
func boolFromString(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean %q", v)
	}
}
