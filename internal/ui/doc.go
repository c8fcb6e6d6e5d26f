// Package ui renders GitHub CLI activity for people watching the console.
//
// When defbranch runs with the console log format, ConsoleCommandEventLogger
// observes the shell executor and prints one line per hosting call, while the
// structured logger keeps the detailed fields.
package ui
