package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/lakedag/internal/app"
)

// ExitError carries the process exit code a CLI failure should produce.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments into an app.Config. It returns a
// boolean indicating the process should exit cleanly (help was printed, or
// no graph path was given) rather than an error.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("cli parser started")
	flagSet := flag.NewFlagSet("lakedag", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
lakedag - a generic, concurrency-first DAG task scheduler.

Usage:
  lakedag [options] [GRAPH_PATH]

Arguments:
  GRAPH_PATH
    Path to an .hcl file describing the graph's node blocks.

Options:
`)
		flagSet.PrintDefaults()
	}

	graphFlag := flagSet.String("graph", "", "Path to the graph description file.")
	gFlag := flagSet.String("g", "", "Path to the graph description file (shorthand).")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	parallelismFlag := flagSet.Int("parallelism", 4, "Maximum number of node operations run concurrently.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("arguments parsed")

	path := ""
	switch {
	case *graphFlag != "":
		path = *graphFlag
	case *gFlag != "":
		path = *gFlag
	case flagSet.NArg() > 0:
		path = flagSet.Arg(0)
	}

	if path == "" {
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	config, err := app.NewConfig(app.Config{
		GraphPath:   path,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
		Parallelism: *parallelismFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("cli parser finished", "config", config)
	return config, false, nil
}
