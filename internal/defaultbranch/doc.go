// Package defaultbranch checks repository default branches against a channel/version policy.
//
// Evaluate inspects a branches.Catalog and reports diagnostics together with a
// ranked list of replacement candidates. Fixer walks the operator through
// choosing one of those candidates, and Service applies both steps to many
// GitHub repositories at once.
package defaultbranch
