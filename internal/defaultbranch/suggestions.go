package defaultbranch

import (
	"cmp"
	"slices"

	"github.com/temirov/defbranch/internal/branches"
)

const minimumSuggestionCountConstant = 2

type suggestionKey struct {
	versionRank int
	channelRank int
	name        string
}

func compareSuggestionKeys(first suggestionKey, second suggestionKey) int {
	return cmp.Or(
		cmp.Compare(first.versionRank, second.versionRank),
		cmp.Compare(first.channelRank, second.channelRank),
		cmp.Compare(first.name, second.name),
	)
}

// RankSuggestions orders every branch of the catalog as a default branch candidate.
// Versioned branches come first, newest version first, then by channel priority
// and name. Unknown branches follow in discovery order. Fewer than two
// candidates yield nil.
func RankSuggestions(catalog *branches.Catalog, configuration PolicyConfiguration) []string {
	versionGroups := catalog.VersionGroups()
	channelRanks := buildChannelRanks(versionGroups, configuration)

	keys := make([]suggestionKey, 0)
	for groupIndex, group := range versionGroups {
		for _, branch := range group.Branches {
			keys = append(keys, suggestionKey{
				versionRank: groupIndex,
				channelRank: channelRanks[branch.Channel()],
				name:        branch.Name(),
			})
		}
	}
	slices.SortStableFunc(keys, compareSuggestionKeys)

	suggestions := make([]string, 0, len(keys))
	for _, key := range keys {
		suggestions = append(suggestions, key.name)
	}
	for _, unknownBranch := range catalog.UnknownBranches() {
		suggestions = append(suggestions, unknownBranch.Name())
	}

	if len(suggestions) < minimumSuggestionCountConstant {
		return nil
	}
	return suggestions
}

// buildChannelRanks assigns the canonical channel rank zero, then the configured
// priority list, then every remaining channel in descending lexicographic order.
func buildChannelRanks(versionGroups []branches.VersionGroup, configuration PolicyConfiguration) map[string]int {
	channelRanks := map[string]int{}
	assignRank := func(channel string) {
		if _, ranked := channelRanks[channel]; ranked {
			return
		}
		channelRanks[channel] = len(channelRanks)
	}

	assignRank(configuration.CanonicalChannel)
	for _, channel := range configuration.ChannelPriority {
		assignRank(channel)
	}

	remainingChannels := make([]string, 0)
	for _, group := range versionGroups {
		for _, branch := range group.Branches {
			if _, ranked := channelRanks[branch.Channel()]; ranked {
				continue
			}
			if slices.Contains(remainingChannels, branch.Channel()) {
				continue
			}
			remainingChannels = append(remainingChannels, branch.Channel())
		}
	}
	slices.SortFunc(remainingChannels, func(first string, second string) int {
		return cmp.Compare(second, first)
	})
	for _, channel := range remainingChannels {
		assignRank(channel)
	}

	return channelRanks
}
