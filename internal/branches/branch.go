package branches

import (
	"strings"

	"github.com/temirov/defbranch/internal/versions"
)

const channelVersionSeparatorConstant = "/"

// Branch is either a VersionedBranch or an UnknownBranch.
type Branch interface {
	Name() string
	isBranch()
}

// VersionedBranch is a branch whose name splits into a channel and a coercible version.
type VersionedBranch struct {
	name    string
	channel string
	version versions.Version
}

// UnknownBranch is a branch whose name or version could not be classified.
type UnknownBranch struct {
	name string
}

// ParseBranchName splits name on the first separator. The version part keeps
// any further separators.
func ParseBranchName(name string) (channel string, versionString string, parsed bool) {
	return strings.Cut(name, channelVersionSeparatorConstant)
}

// ClassifyBranch parses and coerces name. Failing either step yields an UnknownBranch.
func ClassifyBranch(name string) Branch {
	channel, versionString, parsed := ParseBranchName(name)
	if !parsed {
		return UnknownBranch{name: name}
	}

	version, coerced := versions.Coerce(versionString)
	if !coerced {
		return UnknownBranch{name: name}
	}

	return VersionedBranch{name: name, channel: channel, version: version}
}

// Name returns the raw branch name.
func (branch VersionedBranch) Name() string {
	return branch.name
}

// Channel returns the part of the name before the first separator.
func (branch VersionedBranch) Channel() string {
	return branch.channel
}

// Version returns the coerced version.
func (branch VersionedBranch) Version() versions.Version {
	return branch.version
}

func (VersionedBranch) isBranch() {}

// Name returns the raw branch name.
func (branch UnknownBranch) Name() string {
	return branch.name
}

func (UnknownBranch) isBranch() {}
