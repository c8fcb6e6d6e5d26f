// Package cli constructs the defbranch command-line interface, wiring the
// Cobra command hierarchy, configuration loader, and structured logging
// primitives around the default branch commands.
package cli
