// Package cli parses lakedag's command-line arguments into an app.Config
// using the standard library's flag.NewFlagSet, and reports usage and
// validation problems as a process-exit-code-carrying ExitError.
package cli
