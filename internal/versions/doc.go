// Package versions converts the version part of a branch name into a totally
// ordered, prerelease-aware Version.
//
// Coerce tries the PEP 440 release grammar first and falls back to the
// date-coded "r<year><letter>" grammar used by some upstream projects.
package versions
