package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// DotEnvFile is the name of the optional env file read from the working directory.
const DotEnvFile = ".env"

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.daylog/daylog.toml or OS-specific config dir)
// 3. Project config file (daylog.toml or .daylog.toml in current directory)
// 4. .env file in the current directory
// 5. Environment variables
// 6. CLI flags
//
// The global flags are registered on fs and parsed from args; the remaining
// arguments are available through fs.Args().
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cws, err := LoadWithSources(fs, args)
	if err != nil {
		return nil, err
	}
	return cws.Config, nil
}

// LoadWithSources loads configuration and tracks the source of each value.
// Returns ConfigWithSources containing the config and a map of field names to their sources.
func LoadWithSources(fs *flag.FlagSet, args []string) (*ConfigWithSources, error) {
	sources := make(map[string]ConfigSource)
	cfg := &Config{}
	var files []string

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	cfg.WorkDir = wd

	// 1. Set defaults (all fields start with default source)
	setDefaults(cfg)
	for _, field := range configFields() {
		sources[field] = SourceDefault
	}

	// 2. Try to load from user config file
	if userConfigFile := findUserConfigFile(); userConfigFile != "" {
		if err := loadConfigFile(cfg, userConfigFile, sources, SourceUserFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", userConfigFile, err)
		}
		files = append(files, userConfigFile)
	}

	// 3. Try to load from project config file (overrides user config)
	if projectConfigFile := findProjectConfigFile(wd); projectConfigFile != "" {
		if err := loadConfigFile(cfg, projectConfigFile, sources, SourceProjFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", projectConfigFile, err)
		}
		files = append(files, projectConfigFile)
	}

	// 4. Read .env; the real environment still wins
	dotenv, err := readDotEnv(filepath.Join(wd, DotEnvFile))
	if err != nil {
		return nil, err
	}
	if dotenv != nil {
		files = append(files, filepath.Join(wd, DotEnvFile))
	}

	// 5. Override from environment
	if err := loadFromEnv(cfg, envLookup(dotenv), sources); err != nil {
		return nil, err
	}

	// 6. Parse CLI flags (they override everything)
	if err := parseFlags(cfg, fs, args, sources); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	// 7. Compute derived values
	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}

	return &ConfigWithSources{
		Config:  cfg,
		Sources: sources,
		Files:   files,
	}, nil
}

// loadConfigFile decodes TOML config over cfg and records which keys the file set.
func loadConfigFile(cfg *Config, path string, sources map[string]ConfigSource, source ConfigSource) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		sort.Strings(keys)
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}

	for _, field := range configFields() {
		if md.IsDefined(field) {
			sources[field] = source
		}
	}
	return nil
}

// readDotEnv reads an env file. A missing file yields a nil map.
func readDotEnv(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return values, nil
}

// finalizeConfig computes derived values and validates fields.
func finalizeConfig(cfg *Config) error {
	cfg.TodoFile = strings.TrimSpace(cfg.TodoFile)
	if cfg.TodoFile == "" {
		return errors.New("todo_file must not be empty")
	}

	// Expand ~ and environment references, then anchor relative paths
	cfg.TodoFile = resolvePath(cfg.TodoFile, cfg.WorkDir)

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if !validLogLevel(cfg.LogLevel) {
		return fmt.Errorf("invalid log_level %q", cfg.LogLevel)
	}
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))
	if !validLogFormat(cfg.LogFormat) {
		return fmt.Errorf("invalid log_format %q", cfg.LogFormat)
	}
	return nil
}

func validLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func validLogFormat(format string) bool {
	switch format {
	case "text", "json", "logfmt":
		return true
	default:
		return false
	}
}
