// Package main provides the entry point for the difr CLI tool.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Sumatoshi-tech/difr/cmd/difr/commands"
	"github.com/Sumatoshi-tech/difr/internal/session"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := commands.NewRootCommand().ExecuteContext(ctx)

	stop()

	if err != nil {
		// A plain "files differ" outcome is reported through the exit status only.
		if !errors.Is(err, session.ErrFilesDiffer) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}

		os.Exit(1)
	}
}
