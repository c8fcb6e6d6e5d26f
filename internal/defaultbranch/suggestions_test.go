package defaultbranch_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/defbranch/internal/branches"
	"github.com/temirov/defbranch/internal/defaultbranch"
)

func TestRankSuggestionsOrdersUnlistedChannelsDescending(testInstance *testing.T) {
	catalog := branches.BuildCatalog(
		[]string{"alpha/1.0", "gh-pages", "stable/0.9", "beta/1.0", "stable/1.0", "zeta/1.0", "testing/1.0", "master"},
		"stable/0.9",
	)

	suggestions := defaultbranch.RankSuggestions(catalog, defaultTestPolicy())

	require.Equal(testInstance, []string{
		"testing/1.0",
		"stable/1.0",
		"zeta/1.0",
		"beta/1.0",
		"alpha/1.0",
		"stable/0.9",
		"gh-pages",
		"master",
	}, suggestions)
}

func TestRankSuggestionsBreaksTiesByName(testInstance *testing.T) {
	catalog := branches.BuildCatalog([]string{"testing/r2021a", "testing/2021.1", "stable/2021.1.0"}, "testing/r2021a")

	suggestions := defaultbranch.RankSuggestions(catalog, defaultTestPolicy())

	require.Equal(testInstance, []string{"testing/2021.1", "testing/r2021a", "stable/2021.1.0"}, suggestions)
}

func TestRankSuggestionsHonorsPriorityBeforeUnlistedChannels(testInstance *testing.T) {
	policy := defaultTestPolicy()
	policy.ChannelPriority = []string{"beta"}

	catalog := branches.BuildCatalog([]string{"stable/1.0", "zeta/1.0", "beta/1.0", "testing/1.0"}, "stable/1.0")

	suggestions := defaultbranch.RankSuggestions(catalog, policy)

	require.Equal(testInstance, []string{"testing/1.0", "beta/1.0", "zeta/1.0", "stable/1.0"}, suggestions)
}

func TestRankSuggestionsRequiresTwoCandidates(testInstance *testing.T) {
	require.Nil(testInstance, defaultbranch.RankSuggestions(branches.BuildCatalog(nil, "testing/1.0"), defaultTestPolicy()))
	require.Nil(testInstance, defaultbranch.RankSuggestions(branches.BuildCatalog([]string{"testing/1.0"}, "stable/1.0"), defaultTestPolicy()))
	require.Len(testInstance, defaultbranch.RankSuggestions(branches.BuildCatalog([]string{"testing/1.0", "main"}, "main"), defaultTestPolicy()), 2)
}
