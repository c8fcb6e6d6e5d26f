// Package execshell runs external command-line tools for defbranch.
//
// ShellExecutor wraps a CommandRunner with zap logging and lifecycle
// notifications, OSCommandRunner executes processes via os/exec, and
// CommandMessageFormatter renders the GitHub CLI invocations used by the
// hosting client as human-readable log messages.
package execshell
