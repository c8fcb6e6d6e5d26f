// Package prompt asks the operator questions while defbranch repairs default branches.
//
// LinePrompter reads numbered answers from a line-oriented stream, MenuPrompter
// renders a cursor-driven terminal menu, and AssumeYesPrompter answers every
// confirmation affirmatively while delegating option selection.
package prompt
