// Package main is the entry point for the spawn worker bundler.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/spawn/cmd/spawn/commands"
	"go.trai.ch/spawn/internal/app"
	"go.trai.ch/spawn/internal/core/domain"
	_ "go.trai.ch/spawn/internal/wiring"
)

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, error)

// jsonLogger is implemented by loggers that can switch to JSON output.
type jsonLogger interface {
	SetJSON(enable bool)
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, func(ctx context.Context) (*app.Components, error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx)
		return c, err
	}))
}

func run(
	ctx context.Context,
	args []string,
	stdout, stderr io.Writer,
	provider ComponentProvider,
) int {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, err := provider(ctx)
	if err != nil {
		// The logger is not available if initialization failed.
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return 1
	}

	var opts []commands.Option
	if l, ok := components.Logger.(jsonLogger); ok {
		opts = append(opts, commands.WithJSONSwitch(l.SetJSON))
	}

	cli := commands.New(components.App, opts...)
	cli.SetArgs(args)
	cli.SetOutput(stdout, stderr)

	if err := cli.Execute(ctx); err != nil {
		switch {
		case errors.Is(err, domain.ErrBuildFailed):
			// Already reported by the app.
		case errors.Is(err, context.Canceled):
			return 130
		default:
			components.Logger.Error(err)
		}
		return 1
	}
	return 0
}
