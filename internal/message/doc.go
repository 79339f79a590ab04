// Package message parses conventional commit messages.
//
// This package implements:
//   - The first-line grammar: <type>(<scope>)!: <subject>
//   - Body and footer classification for the lines after the blank separator
//   - An ordered registry of footer specifications with per-footer validators
//   - The built-in BREAKING CHANGE, Closes and Revert Hash footers
//
// A Parser is read-only after construction and may be shared between goroutines.
package message
