// Package model defines the domain types and value objects for the
// devtools CLI.
//
// This package contains pure data structures with no external dependencies.
// All values (ConfigKind, LintConfig, Invocation) live only for the duration
// of a single CLI run; nothing is persisted or cached between runs.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
