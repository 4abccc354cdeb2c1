// Package main is the entry point for the ppac package manager.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/ppac/cmd/ppac/commands"
	"go.trai.ch/ppac/internal/app"
	"go.trai.ch/ppac/internal/core/domain"
	_ "go.trai.ch/ppac/internal/wiring"
)

func main() {
	os.Exit(run())
}

func run(opts ...func(*commands.CLI)) int {
	// 0. Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 1. Initialize application components
	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		// Write directly to stderr
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}

	// 2. Interface - CLI
	cli := commands.New(components.App)
	for _, opt := range opts {
		opt(cli)
	}

	// 3. Execution
	if err := cli.Execute(ctx); err != nil {
		switch {
		case errors.Is(err, domain.ErrInstallAborted):
			components.Logger.Info("Installation aborted.")
			return 0
		case errors.Is(err, commands.ErrUsage):
			return 1
		}
		components.Logger.Error(err)
		return 1
	}
	return 0
}
