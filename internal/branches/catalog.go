package branches

import (
	"slices"

	"github.com/temirov/defbranch/internal/versions"
)

// VersionGroup holds the branches that share one version, in discovery order.
type VersionGroup struct {
	Version  versions.Version
	Branches []VersionedBranch
}

// Catalog is an immutable snapshot of a repository's branches.
type Catalog struct {
	versionGroups   []VersionGroup
	unknownBranches []UnknownBranch
	defaultBranch   Branch
}

// BuildCatalog classifies every branch name and groups versioned branches by
// version in descending order. The default branch name is classified with the
// same rules and does not have to appear among branchNames.
func BuildCatalog(branchNames []string, defaultBranchName string) *Catalog {
	versionedBranches := make([]VersionedBranch, 0, len(branchNames))
	unknownBranches := make([]UnknownBranch, 0)

	for _, branchName := range branchNames {
		switch classifiedBranch := ClassifyBranch(branchName).(type) {
		case VersionedBranch:
			versionedBranches = append(versionedBranches, classifiedBranch)
		case UnknownBranch:
			unknownBranches = append(unknownBranches, classifiedBranch)
		}
	}

	slices.SortStableFunc(versionedBranches, func(first VersionedBranch, second VersionedBranch) int {
		return second.version.Compare(first.version)
	})

	versionGroups := make([]VersionGroup, 0)
	for _, versionedBranch := range versionedBranches {
		lastIndex := len(versionGroups) - 1
		if lastIndex >= 0 && versionGroups[lastIndex].Version.Equal(versionedBranch.version) {
			versionGroups[lastIndex].Branches = append(versionGroups[lastIndex].Branches, versionedBranch)
			continue
		}
		versionGroups = append(versionGroups, VersionGroup{
			Version:  versionedBranch.version,
			Branches: []VersionedBranch{versionedBranch},
		})
	}

	return &Catalog{
		versionGroups:   versionGroups,
		unknownBranches: unknownBranches,
		defaultBranch:   ClassifyBranch(defaultBranchName),
	}
}

// DefaultBranch returns the classified default branch.
func (catalog *Catalog) DefaultBranch() Branch {
	return catalog.defaultBranch
}

// VersionGroups returns the version groups in descending version order.
func (catalog *Catalog) VersionGroups() []VersionGroup {
	groups := make([]VersionGroup, 0, len(catalog.versionGroups))
	for _, group := range catalog.versionGroups {
		groups = append(groups, VersionGroup{Version: group.Version, Branches: slices.Clone(group.Branches)})
	}
	return groups
}

// VersionedBranches returns all versioned branches, descending by version.
func (catalog *Catalog) VersionedBranches() []VersionedBranch {
	versionedBranches := make([]VersionedBranch, 0)
	for _, group := range catalog.versionGroups {
		versionedBranches = append(versionedBranches, group.Branches...)
	}
	return versionedBranches
}

// MostRecentVersion returns the highest version.
func (catalog *Catalog) MostRecentVersion() (versions.Version, bool) {
	if len(catalog.versionGroups) == 0 {
		return versions.Version{}, false
	}
	return catalog.versionGroups[0].Version, true
}

// MostRecentReleaseVersion returns the highest version that is not a prerelease.
func (catalog *Catalog) MostRecentReleaseVersion() (versions.Version, bool) {
	for _, group := range catalog.versionGroups {
		if !group.Version.IsPrerelease() {
			return group.Version, true
		}
	}
	return versions.Version{}, false
}

// MostRecentVersionForChannel returns the highest version that has a branch on channel.
func (catalog *Catalog) MostRecentVersionForChannel(channel string) (versions.Version, bool) {
	for _, group := range catalog.versionGroups {
		for _, branch := range group.Branches {
			if branch.channel == channel {
				return group.Version, true
			}
		}
	}
	return versions.Version{}, false
}

// BranchesForVersion returns the branches whose version equals version.
func (catalog *Catalog) BranchesForVersion(version versions.Version) []VersionedBranch {
	for _, group := range catalog.versionGroups {
		if group.Version.Equal(version) {
			return slices.Clone(group.Branches)
		}
	}
	return nil
}

// BranchesForChannel returns the branches on channel, descending by version.
func (catalog *Catalog) BranchesForChannel(channel string) []VersionedBranch {
	channelBranches := make([]VersionedBranch, 0)
	for _, group := range catalog.versionGroups {
		for _, branch := range group.Branches {
			if branch.channel == channel {
				channelBranches = append(channelBranches, branch)
			}
		}
	}
	return channelBranches
}

// HasVersionedBranches reports whether any branch was classified as versioned.
func (catalog *Catalog) HasVersionedBranches() bool {
	return len(catalog.versionGroups) > 0
}

// HasUnknownBranches reports whether any branch could not be classified.
func (catalog *Catalog) HasUnknownBranches() bool {
	return len(catalog.unknownBranches) > 0
}

// UnknownBranches returns the unclassifiable branches in discovery order.
func (catalog *Catalog) UnknownBranches() []UnknownBranch {
	return slices.Clone(catalog.unknownBranches)
}
