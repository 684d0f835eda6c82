// Command daylog is the CLI entrypoint for the daily task log.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nibzard/daylog/cmd"
)

// Exit codes.
const (
	exitError       = 1
	exitUsage       = 2
	exitInterrupted = 130
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string) int {
	err := cmd.Run(ctx, args)
	switch {
	case err == nil:
		return 0
	case ctx.Err() != nil:
		fmt.Fprintln(os.Stderr, "\ndaylog: interrupted")
		return exitInterrupted
	case errors.Is(err, cmd.ErrUnknownCommand):
		fmt.Fprintf(os.Stderr, "daylog: %v\nRun 'daylog help' for usage.\n", err)
		return exitUsage
	default:
		fmt.Fprintf(os.Stderr, "daylog: %v\n", err)
		return exitError
	}
}
