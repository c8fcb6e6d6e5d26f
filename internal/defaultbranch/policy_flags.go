package defaultbranch

import (
	"cmp"

	"github.com/spf13/cobra"

	"github.com/temirov/defbranch/internal/utils/flags"
)

const (
	flagCanonicalChannelNameConstant        = "canonical-channel"
	flagCanonicalChannelDescriptionConstant = "Channel the default branch must belong to"
	flagCompanionChannelNameConstant        = "companion-channel"
	flagCompanionChannelDescriptionConstant = "Channel that must have a branch at the default branch version (repeatable)"
	flagChannelPriorityNameConstant         = "channel-priority"
	flagChannelPriorityDescriptionConstant  = "Channel order used to rank suggestions after the canonical channel (repeatable)"
	flagReferenceVersionNameConstant        = "reference-version"
	flagReferenceVersionDescriptionConstant = "Version the default branch must be on"
	flagOutputNameConstant                  = "output"
	flagOutputDescriptionConstant           = "Report format"
)

func bindPolicyFlags(command *cobra.Command, defaults CommandConfiguration) {
	command.Flags().String(flagCanonicalChannelNameConstant, defaults.CanonicalChannel, flagCanonicalChannelDescriptionConstant)
	command.Flags().StringSlice(flagCompanionChannelNameConstant, defaults.CompanionChannels, flagCompanionChannelDescriptionConstant)
	command.Flags().StringSlice(flagChannelPriorityNameConstant, defaults.ChannelPriority, flagChannelPriorityDescriptionConstant)
	flags.AddChoiceFlag(
		command.Flags(),
		flagReferenceVersionNameConstant,
		defaults.ReferenceVersion,
		[]string{string(ReferenceVersionMostRecent), string(ReferenceVersionMostRecentRelease)},
		flagReferenceVersionDescriptionConstant,
	)
}

func bindOutputFlag(command *cobra.Command, defaults CommandConfiguration) {
	flags.AddChoiceFlag(
		command.Flags(),
		flagOutputNameConstant,
		defaults.Output,
		[]string{string(OutputFormatText), string(OutputFormatJSON), string(OutputFormatYAML)},
		flagOutputDescriptionConstant,
	)
}

// applyPolicyFlags overrides configured policy values with explicitly set flags.
func applyPolicyFlags(command *cobra.Command, configuration CommandConfiguration) CommandConfiguration {
	updated := configuration
	if command.Flags().Changed(flagCanonicalChannelNameConstant) {
		updated.CanonicalChannel, _ = command.Flags().GetString(flagCanonicalChannelNameConstant)
	}
	if command.Flags().Changed(flagCompanionChannelNameConstant) {
		updated.CompanionChannels, _ = command.Flags().GetStringSlice(flagCompanionChannelNameConstant)
	}
	if command.Flags().Changed(flagChannelPriorityNameConstant) {
		updated.ChannelPriority, _ = command.Flags().GetStringSlice(flagChannelPriorityNameConstant)
	}
	if command.Flags().Changed(flagReferenceVersionNameConstant) {
		updated.ReferenceVersion, _ = command.Flags().GetString(flagReferenceVersionNameConstant)
	}
	return updated
}

func applyOutputFlag(command *cobra.Command, configuration CommandConfiguration) CommandConfiguration {
	updated := configuration
	if command.Flags().Changed(flagOutputNameConstant) {
		updated.Output, _ = command.Flags().GetString(flagOutputNameConstant)
	}
	return updated
}

// buildPolicy converts sanitized configuration into a policy. An unset reference
// version falls back to the most recent release.
func buildPolicy(configuration CommandConfiguration) (PolicyConfiguration, error) {
	referenceMode, referenceError := ParseReferenceVersionMode(cmp.Or(configuration.ReferenceVersion, string(ReferenceVersionMostRecentRelease)))
	if referenceError != nil {
		return PolicyConfiguration{}, referenceError
	}

	return PolicyConfiguration{
		CanonicalChannel:  configuration.CanonicalChannel,
		CompanionChannels: configuration.CompanionChannels,
		ChannelPriority:   configuration.ChannelPriority,
		ReferenceVersion:  referenceMode,
	}, nil
}
