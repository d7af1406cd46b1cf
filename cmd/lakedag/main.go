// Command lakedag loads an HCL graph description and runs it once through
// the DAG task scheduler, printing each node's outcome.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/lakedag/internal/app"
	"github.com/vk/lakedag/internal/cli"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(outW io.Writer, args []string) error {
	cfg, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(outW, "a critical startup error occurred: %v\n", r)
			os.Exit(1)
		}
	}()

	lakedagApp := app.NewApp(outW, cfg)
	return lakedagApp.Run(context.Background(), cfg)
}
