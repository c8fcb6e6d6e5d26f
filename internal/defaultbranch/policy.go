package defaultbranch

import (
	"fmt"
	"slices"
	"strings"

	"github.com/temirov/defbranch/internal/branches"
	"github.com/temirov/defbranch/internal/versions"
)

const (
	noVersionsFoundMessageConstant           = "no versions found"
	unknownBranchesFoundTemplateConstant     = "non-conan branches found (%s)"
	defaultBranchFormatMessageConstant       = "default branch has not the channel/version format"
	defaultChannelTemplateConstant           = "default channel is not %s"
	missingCompanionTemplateConstant         = "default branch has no '%s' channel equivalent"
	prereleaseDefaultMessageConstant         = "version of default branch is a prerelease"
	staleDefaultVersionMessageConstant       = "default branch is not on most recent version"
	canonicalChannelBehindTemplateConstant   = "most recent version has no %s channel branch"
	nameListOpeningConstant                  = "["
	nameListClosingConstant                  = "]"
	nameListSeparatorConstant                = ", "
	singleQuoteConstant                      = "'"
	doubleQuoteConstant                      = `"`
	escapedSingleQuoteConstant               = `\'`
	backslashConstant                        = `\`
	escapedBackslashConstant                 = `\\`
	unsupportedReferenceModeTemplateConstant = "unsupported reference version %q"
)

// ReferenceVersionMode selects the version the default branch is expected to track.
type ReferenceVersionMode string

// Supported reference version modes.
const (
	ReferenceVersionMostRecent        ReferenceVersionMode = "most_recent"
	ReferenceVersionMostRecentRelease ReferenceVersionMode = "most_recent_release"
)

// ParseReferenceVersionMode validates a textual reference version mode.
func ParseReferenceVersionMode(value string) (ReferenceVersionMode, error) {
	switch mode := ReferenceVersionMode(strings.ToLower(strings.TrimSpace(value))); mode {
	case ReferenceVersionMostRecent, ReferenceVersionMostRecentRelease:
		return mode, nil
	default:
		return "", fmt.Errorf(unsupportedReferenceModeTemplateConstant, value)
	}
}

// PolicyConfiguration describes what a compliant default branch looks like.
type PolicyConfiguration struct {
	CanonicalChannel  string
	CompanionChannels []string
	ChannelPriority   []string
	ReferenceVersion  ReferenceVersionMode
}

// Evaluation is the outcome of checking one catalog against a policy.
type Evaluation struct {
	DefaultBranch string
	Diagnostics   []string
	Suggestions   []string
	NeedsChange   bool
}

// Compliant reports whether no diagnostics were produced.
func (evaluation Evaluation) Compliant() bool {
	return len(evaluation.Diagnostics) == 0
}

// Evaluate checks the catalog's default branch against configuration.
func Evaluate(catalog *branches.Catalog, configuration PolicyConfiguration) Evaluation {
	evaluation := Evaluation{
		DefaultBranch: catalog.DefaultBranch().Name(),
		Diagnostics:   []string{},
	}

	if !catalog.HasVersionedBranches() {
		evaluation.Diagnostics = append(evaluation.Diagnostics, noVersionsFoundMessageConstant)
	}

	if catalog.HasUnknownBranches() {
		unknownNames := make([]string, 0)
		for _, unknownBranch := range catalog.UnknownBranches() {
			unknownNames = append(unknownNames, unknownBranch.Name())
		}
		evaluation.Diagnostics = append(evaluation.Diagnostics, fmt.Sprintf(unknownBranchesFoundTemplateConstant, FormatNameList(unknownNames)))
	}

	defaultBranch, defaultIsVersioned := catalog.DefaultBranch().(branches.VersionedBranch)
	if !defaultIsVersioned {
		evaluation.Diagnostics = append(evaluation.Diagnostics, defaultBranchFormatMessageConstant)
		return evaluation
	}

	if defaultBranch.Channel() != configuration.CanonicalChannel {
		evaluation.Diagnostics = append(evaluation.Diagnostics, fmt.Sprintf(defaultChannelTemplateConstant, configuration.CanonicalChannel))
		evaluation.NeedsChange = true
	}

	siblingBranches := catalog.BranchesForVersion(defaultBranch.Version())
	for companionIndex, companionChannel := range configuration.CompanionChannels {
		if slices.Contains(configuration.CompanionChannels[:companionIndex], companionChannel) {
			continue
		}
		if !containsChannel(siblingBranches, companionChannel) {
			evaluation.Diagnostics = append(evaluation.Diagnostics, fmt.Sprintf(missingCompanionTemplateConstant, companionChannel))
		}
	}

	if defaultBranch.Version().IsPrerelease() {
		evaluation.Diagnostics = append(evaluation.Diagnostics, prereleaseDefaultMessageConstant)
	}

	referenceVersion, referenceFound := resolveReferenceVersion(catalog, configuration.ReferenceVersion)
	if !referenceFound || !referenceVersion.Equal(defaultBranch.Version()) {
		evaluation.Diagnostics = append(evaluation.Diagnostics, staleDefaultVersionMessageConstant)
		evaluation.NeedsChange = true
	}

	canonicalVersion, canonicalFound := catalog.MostRecentVersionForChannel(configuration.CanonicalChannel)
	overallVersion, overallFound := catalog.MostRecentVersion()
	if !sameOptionalVersion(canonicalVersion, canonicalFound, overallVersion, overallFound) {
		evaluation.Diagnostics = append(evaluation.Diagnostics, fmt.Sprintf(canonicalChannelBehindTemplateConstant, configuration.CanonicalChannel))
	}

	if evaluation.NeedsChange {
		evaluation.Suggestions = RankSuggestions(catalog, configuration)
	}

	return evaluation
}

func resolveReferenceVersion(catalog *branches.Catalog, mode ReferenceVersionMode) (versions.Version, bool) {
	if mode == ReferenceVersionMostRecent {
		return catalog.MostRecentVersion()
	}
	return catalog.MostRecentReleaseVersion()
}

func containsChannel(candidates []branches.VersionedBranch, channel string) bool {
	for _, candidate := range candidates {
		if candidate.Channel() == channel {
			return true
		}
	}
	return false
}

func sameOptionalVersion(first versions.Version, firstFound bool, second versions.Version, secondFound bool) bool {
	if firstFound != secondFound {
		return false
	}
	if !firstFound {
		return true
	}
	return first.Equal(second)
}

// FormatNameList renders names as a bracketed, quoted list such as ['gh-pages', 'master'].
func FormatNameList(names []string) string {
	quotedNames := make([]string, 0, len(names))
	for _, name := range names {
		quotedNames = append(quotedNames, quoteName(name))
	}
	return nameListOpeningConstant + strings.Join(quotedNames, nameListSeparatorConstant) + nameListClosingConstant
}

func quoteName(name string) string {
	if strings.Contains(name, singleQuoteConstant) && !strings.Contains(name, doubleQuoteConstant) {
		return doubleQuoteConstant + strings.ReplaceAll(name, backslashConstant, escapedBackslashConstant) + doubleQuoteConstant
	}
	escapedName := strings.ReplaceAll(name, backslashConstant, escapedBackslashConstant)
	escapedName = strings.ReplaceAll(escapedName, singleQuoteConstant, escapedSingleQuoteConstant)
	return singleQuoteConstant + escapedName + singleQuoteConstant
}
