// Package cmd implements the CLI command structure for daylog.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/daylog/internal/config"
	"github.com/nibzard/daylog/internal/logging"
	"github.com/nibzard/daylog/internal/todo"
	"github.com/nibzard/daylog/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// ErrUnknownCommand is returned by Run for an unrecognized subcommand.
var ErrUnknownCommand = errors.New("unknown command")

// Output streams and the date source; tests replace them.
var (
	stdout io.Writer  = os.Stdout
	stderr io.Writer  = os.Stderr
	clock  todo.Clock = todo.Today
)

// Run executes the daylog CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("daylog", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := cws.Config
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	logger := logging.FromConfig(stderr, cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)
	logger.Debug("config loaded", "todo_file", cfg.TodoFile, "files", cws.Files)

	// Determine the subcommand
	// If no args or first arg is a flag, use "show" as default
	subcommand := "show"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 {
		if !strings.HasPrefix(remainingArgs[0], "-") {
			subcommand = remainingArgs[0]
			remainingArgs = remainingArgs[1:]
		}
	}

	// Execute the subcommand
	switch subcommand {
	case "init":
		return initCommand(cfg, logger, remainingArgs)
	case "parse":
		return parseCommand(cfg, logger, remainingArgs)
	case "add":
		return addCommand(cfg, logger, remainingArgs)
	case "show":
		return showCommand(cfg, logger, remainingArgs)
	case "export":
		return exportCommand(cfg, logger, remainingArgs)
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs)
	case "config":
		return configCommand(cws, remainingArgs)
	case "version":
		return versionCommand()
	case "help":
		printUsage(fs, stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, subcommand)
	}
}

// parseArgs parses subcommand flags. A help request is not an error.
func parseArgs(fs *flag.FlagSet, args []string) (bool, error) {
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// initCommand creates the todo file with an empty day for today.
func initCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("daylog init", flag.ContinueOnError)
	if ok, err := parseArgs(fs, args); !ok || err != nil {
		return err
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	if _, err := os.Stat(cfg.TodoFile); err == nil {
		return fmt.Errorf("todo file %s already exists", cfg.TodoFile)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking todo file: %w", err)
	}

	today := clock()
	t := todo.New(cfg.TodoFile)
	t.AdvanceToToday(today)
	if _, err := t.Save(today); err != nil {
		return fmt.Errorf("creating todo file: %w", err)
	}
	logger.Info("created todo file", "path", cfg.TodoFile, "date", today)
	return nil
}

// parseCommand loads and validates a todo file.
func parseCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("daylog parse", flag.ContinueOnError)
	if ok, err := parseArgs(fs, args); !ok || err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	todoPath := cfg.TodoFile
	if len(remaining) == 1 {
		todoPath = remaining[0]
	}

	t, err := todo.Load(todoPath, clock())
	if err != nil {
		return err
	}

	sections, tasks := 0, 0
	for _, day := range t.Days() {
		sections += len(day.Sections)
		for _, section := range day.Sections {
			tasks += len(section.Tasks)
		}
	}
	logger.Info("todo file is valid", "path", todoPath, "days", t.Len(), "sections", sections, "tasks", tasks)
	return nil
}

// addCommand appends a task to today's day and saves the file.
func addCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("daylog add", flag.ContinueOnError)
	section := fs.String("section", cfg.DefaultSection, "Section to add the task to (empty for the untitled section)")
	fs.StringVar(section, "s", cfg.DefaultSection, "Shorthand for -section")
	flagArgs, textArgs := splitTaskArgs(fs, args)
	if ok, err := parseArgs(fs, flagArgs); !ok || err != nil {
		return err
	}
	textArgs = append(fs.Args(), textArgs...)

	text := strings.TrimSpace(strings.Join(textArgs, " "))
	if text == "" {
		return errors.New("add requires task text")
	}

	today := clock()
	t, err := todo.Open(cfg.TodoFile, today)
	if err != nil {
		return err
	}
	if err := t.Add(text, *section, today); err != nil {
		return fmt.Errorf("adding task: %w", err)
	}

	result, err := t.Save(today)
	if err != nil {
		return fmt.Errorf("saving todo file: %w", err)
	}
	if result == todo.SaveUpToDate {
		logger.Info("todo file already up to date", "path", cfg.TodoFile)
		return nil
	}
	logger.Info("added task", "section", *section, "date", today, "path", cfg.TodoFile)
	return nil
}

// splitTaskArgs separates leading flags from task text so that text written
// with the "- " marker is not mistaken for a flag. Text starts at the first
// argument that is not a flag token, at "-" or "- ..." arguments, or after
// "--".
func splitTaskArgs(fs *flag.FlagSet, args []string) (flags, text []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return flags, args[i+1:]
		}
		if len(arg) < 2 || arg[0] != '-' || arg[1] == ' ' || arg[1] == '\t' {
			return flags, args[i:]
		}

		flags = append(flags, arg)
		name := strings.TrimLeft(arg, "-")
		if strings.Contains(name, "=") {
			continue
		}
		f := fs.Lookup(name)
		if f == nil || isBoolFlag(f) || i+1 >= len(args) {
			continue
		}
		i++
		flags = append(flags, args[i])
	}
	return flags, nil
}

func isBoolFlag(f *flag.Flag) bool {
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}

// showCommand prints the most recent days in file format.
func showCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("daylog show", flag.ContinueOnError)
	n := fs.Int("n", 1, "Number of days to show (0 = all)")
	if ok, err := parseArgs(fs, args); !ok || err != nil {
		return err
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if *n < 0 {
		return fmt.Errorf("invalid -n %d", *n)
	}

	t, err := todo.Open(cfg.TodoFile, clock())
	if err != nil {
		return err
	}

	days := t.Days()
	if len(days) == 0 {
		logger.Info("no days yet", "path", cfg.TodoFile)
		return nil
	}
	if *n > 0 && *n < len(days) {
		days = days[:*n]
	}

	texts := make([]string, len(days))
	for i, day := range days {
		texts[i] = day.String()
	}
	fmt.Fprintln(stdout, strings.Join(texts, "\n\n"))
	return nil
}

// exportCommand writes the log as structured JSON or YAML.
func exportCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("daylog export", flag.ContinueOnError)
	format := fs.String("format", "json", "Output format (json|yaml)")
	output := fs.String("o", "", "Write to file instead of stdout")
	if ok, err := parseArgs(fs, args); !ok || err != nil {
		return err
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	t, err := todo.Load(cfg.TodoFile, clock())
	if err != nil {
		return err
	}

	export := t.Export()
	var data []byte
	switch strings.ToLower(*format) {
	case "json":
		data, err = export.JSON()
	case "yaml", "yml":
		data, err = export.YAML()
	default:
		return fmt.Errorf("unknown export format: %s", *format)
	}
	if err != nil {
		return fmt.Errorf("exporting: %w", err)
	}

	if *output == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(*output, data, 0o644); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	logger.Info("exported todo file", "format", *format, "days", len(export.Days), "path", *output)
	return nil
}

// tuiCommand launches the TUI.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("daylog tui", flag.ContinueOnError)
	refresh := fs.Duration("refresh", ui.DefaultRefreshInterval, "Reload interval (0 disables)")
	if ok, err := parseArgs(fs, args); !ok || err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	todoPath := cfg.TodoFile
	if len(remaining) == 1 {
		todoPath = remaining[0]
	}

	return ui.RunTUI(ctx, todoPath, clock, ui.WithRefreshInterval(*refresh))
}

// configCommand prints the effective configuration and where each value came from.
func configCommand(cws *config.ConfigWithSources, args []string) error {
	fs := flag.NewFlagSet("daylog config", flag.ContinueOnError)
	example := fs.Bool("example", false, "Print an example config file")
	if ok, err := parseArgs(fs, args); !ok || err != nil {
		return err
	}

	if *example {
		fmt.Fprint(stdout, config.ExampleConfig())
		return nil
	}

	for _, field := range cws.Fields() {
		fmt.Fprintf(stdout, "%-16s %-24s (%s)\n", field, cws.Config.Value(field), cws.Sources[field])
	}
	for _, file := range cws.Files {
		fmt.Fprintf(stdout, "read %s\n", file)
	}
	return nil
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Fprintf(stdout, "daylog version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "daylog - a plain-text daily task log")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  daylog [options] [command] [command options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  show          Print the latest days (default command)")
	fmt.Fprintln(w, "  add <text>    Add a task to today's day")
	fmt.Fprintln(w, "  init          Create the todo file")
	fmt.Fprintln(w, "  parse [file]  Validate a todo file")
	fmt.Fprintln(w, "  export        Export the log as JSON or YAML")
	fmt.Fprintln(w, "  tui [file]    Browse the log in a terminal UI")
	fmt.Fprintln(w, "  config        Show the effective configuration")
	fmt.Fprintln(w, "  version       Show version information")
	fmt.Fprintln(w, "  help          Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fs.SetOutput(stderr)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Add Options:")
	fmt.Fprintln(w, "  -section, -s string")
	fmt.Fprintln(w, "        Section to add the task to (default from config)")
	fmt.Fprintln(w, "  Task text may start with \"- \"; use -- before text that looks like a flag.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Show Options:")
	fmt.Fprintln(w, "  -n int")
	fmt.Fprintln(w, "        Number of days to show, 0 for all (default 1)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Export Options:")
	fmt.Fprintln(w, "  -format string")
	fmt.Fprintln(w, "        Output format: json or yaml (default json)")
	fmt.Fprintln(w, "  -o string")
	fmt.Fprintln(w, "        Write to a file instead of stdout")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  DAYLOG_FILE, DAYLOG_SECTION, DAYLOG_LOG_LEVEL, DAYLOG_LOG_FORMAT,")
	fmt.Fprintln(w, "  DAYLOG_LOG_TIMESTAMPS, DAYLOG_LOG_CALLER (also read from .env)")
}
