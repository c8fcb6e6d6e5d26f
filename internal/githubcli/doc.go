// Package githubcli wraps the GitHub CLI for defbranch.
//
// It resolves repository metadata, lists branches and repositories, updates
// the default branch and identifies the authenticated user. Every call goes
// through execshell so the hosting side can be replaced with stubs in tests.
package githubcli
