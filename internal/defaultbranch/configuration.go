package defaultbranch

import (
	"slices"
	"strings"
)

const (
	configurationOwnerKeyConstant             = "owner"
	configurationRepositoriesKeyConstant      = "repositories"
	configurationIncludeArchivedKeyConstant   = "include_archived"
	configurationCanonicalChannelKeyConstant  = "canonical_channel"
	configurationCompanionChannelsKeyConstant = "companion_channels"
	configurationChannelPriorityKeyConstant   = "channel_priority"
	configurationReferenceVersionKeyConstant  = "reference_version"
	configurationFixKeyConstant               = "fix"
	configurationAssumeYesKeyConstant         = "assume_yes"
	configurationPromptKeyConstant            = "prompt"
	configurationOutputKeyConstant            = "output"
	configurationParallelismKeyConstant       = "parallelism"
	configurationKeySeparatorConstant         = "."
	defaultCanonicalChannelConstant           = "testing"
	stableChannelConstant                     = "stable"
	testingChannelConstant                    = "testing"
)

// PromptStyle selects the interactive prompt implementation.
type PromptStyle string

// Supported prompt styles.
const (
	PromptStyleLine PromptStyle = "line"
	PromptStyleMenu PromptStyle = "menu"
)

// CommandConfiguration captures configuration values for the default-branch command.
type CommandConfiguration struct {
	Owner             string   `mapstructure:"owner"`
	Repositories      []string `mapstructure:"repositories"`
	IncludeArchived   bool     `mapstructure:"include_archived"`
	CanonicalChannel  string   `mapstructure:"canonical_channel"`
	CompanionChannels []string `mapstructure:"companion_channels"`
	ChannelPriority   []string `mapstructure:"channel_priority"`
	ReferenceVersion  string   `mapstructure:"reference_version"`
	Fix               bool     `mapstructure:"fix"`
	AssumeYes         bool     `mapstructure:"assume_yes"`
	Prompt            string   `mapstructure:"prompt"`
	Output            string   `mapstructure:"output"`
	Parallelism       int      `mapstructure:"parallelism"`
}

// DefaultCommandConfiguration provides the testing-channel policy used when nothing is configured.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Owner:             "",
		Repositories:      []string{},
		IncludeArchived:   false,
		CanonicalChannel:  defaultCanonicalChannelConstant,
		CompanionChannels: []string{stableChannelConstant, testingChannelConstant},
		ChannelPriority:   []string{testingChannelConstant, stableChannelConstant},
		ReferenceVersion:  string(ReferenceVersionMostRecentRelease),
		Fix:               false,
		AssumeYes:         false,
		Prompt:            string(PromptStyleLine),
		Output:            string(OutputFormatText),
		Parallelism:       defaultParallelismConstant,
	}
}

// DefaultConfigurationValues exposes the default configuration under rootKey for the configuration loader.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	qualify := func(key string) string {
		return rootKey + configurationKeySeparatorConstant + key
	}
	return map[string]any{
		qualify(configurationOwnerKeyConstant):             defaults.Owner,
		qualify(configurationRepositoriesKeyConstant):      defaults.Repositories,
		qualify(configurationIncludeArchivedKeyConstant):   defaults.IncludeArchived,
		qualify(configurationCanonicalChannelKeyConstant):  defaults.CanonicalChannel,
		qualify(configurationCompanionChannelsKeyConstant): defaults.CompanionChannels,
		qualify(configurationChannelPriorityKeyConstant):   defaults.ChannelPriority,
		qualify(configurationReferenceVersionKeyConstant):  defaults.ReferenceVersion,
		qualify(configurationFixKeyConstant):               defaults.Fix,
		qualify(configurationAssumeYesKeyConstant):         defaults.AssumeYes,
		qualify(configurationPromptKeyConstant):            defaults.Prompt,
		qualify(configurationOutputKeyConstant):            defaults.Output,
		qualify(configurationParallelismKeyConstant):       defaults.Parallelism,
	}
}

// sanitize trims configuration values without applying implicit defaults.
// The canonical channel is trimmed but may stay empty: an empty channel is a valid channel.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration

	sanitized.Owner = strings.TrimSpace(configuration.Owner)
	sanitized.Repositories = sanitizeValues(configuration.Repositories)
	sanitized.CanonicalChannel = strings.TrimSpace(configuration.CanonicalChannel)
	sanitized.CompanionChannels = sanitizeValues(configuration.CompanionChannels)
	sanitized.ChannelPriority = sanitizeValues(configuration.ChannelPriority)
	sanitized.ReferenceVersion = strings.ToLower(strings.TrimSpace(configuration.ReferenceVersion))
	sanitized.Prompt = strings.ToLower(strings.TrimSpace(configuration.Prompt))
	sanitized.Output = strings.ToLower(strings.TrimSpace(configuration.Output))

	return sanitized
}

// sanitizeValues trims values and drops blanks and repeats, keeping first occurrences.
func sanitizeValues(raw []string) []string {
	sanitized := make([]string, 0, len(raw))
	for _, candidate := range raw {
		trimmed := strings.TrimSpace(candidate)
		if len(trimmed) == 0 || slices.Contains(sanitized, trimmed) {
			continue
		}
		sanitized = append(sanitized, trimmed)
	}
	return sanitized
}
