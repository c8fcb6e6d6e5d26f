// Package gitrepo parses the ways a GitHub repository can be named on the
// command line: owner/name pairs and HTTPS or SSH remote URLs.
package gitrepo
