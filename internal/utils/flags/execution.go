// Package flags provides helpers for binding standardized execution flags to Cobra commands.
package flags

import (
	"github.com/spf13/cobra"
)

const (
	// FixFlagName exposes the shared fix flag name.
	FixFlagName = "fix"
	// FixFlagUsage describes the shared fix flag purpose.
	FixFlagUsage = "Offer to repair non-compliant default branches"
	// AssumeYesFlagName exposes the shared assume-yes flag name.
	AssumeYesFlagName = "yes"
	// AssumeYesFlagShorthand provides the shorthand for the assume-yes flag.
	AssumeYesFlagShorthand = "y"
	// AssumeYesFlagUsage describes the shared assume-yes flag purpose.
	AssumeYesFlagUsage = "Skip the confirmation after choosing a new default branch"
)

// ExecutionDefaults describes default flag values shared across commands.
type ExecutionDefaults struct {
	Fix       bool
	AssumeYes bool
}

// ExecutionFlagDefinition captures a single flag's configuration.
type ExecutionFlagDefinition struct {
	Name      string
	Usage     string
	Shorthand string
	Enabled   bool
}

// ExecutionFlagDefinitions groups execution flag definitions.
type ExecutionFlagDefinitions struct {
	Fix       ExecutionFlagDefinition
	AssumeYes ExecutionFlagDefinition
}

// ExecutionFlagValues stores the parsed execution flag values.
type ExecutionFlagValues struct {
	Fix       bool
	AssumeYes bool
}

// DefaultExecutionFlagDefinitions enables the fix and assume-yes toggles with their shared names.
func DefaultExecutionFlagDefinitions() ExecutionFlagDefinitions {
	return ExecutionFlagDefinitions{
		Fix:       ExecutionFlagDefinition{Name: FixFlagName, Usage: FixFlagUsage, Enabled: true},
		AssumeYes: ExecutionFlagDefinition{Name: AssumeYesFlagName, Usage: AssumeYesFlagUsage, Shorthand: AssumeYesFlagShorthand, Enabled: true},
	}
}

// BindExecutionFlags attaches standardized execution toggles to the provided command.
func BindExecutionFlags(command *cobra.Command, defaults ExecutionDefaults, definitions ExecutionFlagDefinitions) *ExecutionFlagValues {
	values := &ExecutionFlagValues{Fix: defaults.Fix, AssumeYes: defaults.AssumeYes}
	if command == nil {
		return values
	}

	bindToggleFlag(command, &values.Fix, definitions.Fix, defaults.Fix)
	bindToggleFlag(command, &values.AssumeYes, definitions.AssumeYes, defaults.AssumeYes)

	return values
}

func bindToggleFlag(command *cobra.Command, target *bool, definition ExecutionFlagDefinition, defaultValue bool) {
	if !definition.Enabled {
		return
	}
	if len(definition.Name) == 0 {
		return
	}
	if command.Flags().Lookup(definition.Name) != nil {
		return
	}

	AddToggleFlag(command.Flags(), target, definition.Name, definition.Shorthand, defaultValue, definition.Usage)
}
