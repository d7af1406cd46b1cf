// Package app wires the CLI's configuration into a running scheduler pass:
// it loads an HCL graph description, registers the built-in node
// operations, builds an internal/orchestrator.Orchestrator, and drives one
// exec phase over it (config -> registry -> graph -> orchestrator).
package app
