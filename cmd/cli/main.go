package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/specialistvlad/magflow/internal/app"
	"github.com/specialistvlad/magflow/internal/cli"
	"github.com/specialistvlad/magflow/internal/hcl_adapter"
)

// main is the entrypoint for the magflow application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Stdout, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			stop()
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, outW io.Writer, args []string) (err error) {
	inv, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// Static tables panic on programmer errors; report them as a failed run.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked | %v", r)
		}
	}()

	loader := hcl_adapter.NewLoaderWithEnv(inv.Environ)
	magflow := app.NewApp(outW, inv.Config, loader)
	defer func() {
		if closeErr := magflow.Close(ctx); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	switch inv.Command {
	case cli.Describe:
		return magflow.Describe(ctx)
	default:
		_, err = magflow.Run(ctx)
		return err
	}
}
