// Package branches classifies repository branch names of the form
// "channel/version" and aggregates them into a Catalog ordered by descending
// version.
//
// Branch is a closed variant: a VersionedBranch carries a channel and a
// coerced version, an UnknownBranch carries only its raw name. Classification
// never fails; anything that cannot be parsed becomes an UnknownBranch.
package branches
