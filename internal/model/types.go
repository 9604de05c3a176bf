// Package model defines the domain types for the devtools CLI.
//
// These types are used throughout the application for passing resolved
// configuration and planned tool invocations between components.
package model

import (
	"fmt"
	"strings"
)

// ConfigKind identifies one of the configuration files devtools knows how
// to resolve. Each kind maps to a fixed filename which is looked up in the
// project root before falling back to the bundled default.
type ConfigKind string

const (
	// KindFormatter is the formatter configuration (black.toml).
	KindFormatter ConfigKind = "formatter"

	// KindChecker is the lint checker configuration (ruff.toml).
	KindChecker ConfigKind = "checker"

	// KindTypeChecker is the type checker configuration (mypy.ini).
	KindTypeChecker ConfigKind = "typechecker"
)

// AllKinds lists every ConfigKind in a stable order. The bundle installs
// and verifies defaults in this order, and the config command reports
// them in this order.
var AllKinds = []ConfigKind{KindChecker, KindFormatter, KindTypeChecker}

// String returns the string representation of ConfigKind.
func (k ConfigKind) String() string {
	return string(k)
}

// IsValid checks whether the ConfigKind value is one of the predefined kinds.
func (k ConfigKind) IsValid() bool {
	switch k {
	case KindFormatter, KindChecker, KindTypeChecker:
		return true
	default:
		return false
	}
}

// Filename returns the bare filename for the kind, e.g. "ruff.toml".
// It returns an empty string for an invalid kind.
func (k ConfigKind) Filename() string {
	switch k {
	case KindFormatter:
		return "black.toml"
	case KindChecker:
		return "ruff.toml"
	case KindTypeChecker:
		return "mypy.ini"
	default:
		return ""
	}
}

// ParseConfigKind converts a string to a ConfigKind.
// Returns an error if the string does not match any valid kind.
func ParseConfigKind(s string) (ConfigKind, error) {
	kind := ConfigKind(strings.ToLower(s))
	if !kind.IsValid() {
		return "", fmt.Errorf("invalid config kind: %q (valid: formatter, checker, typechecker)", s)
	}
	return kind, nil
}

// ConfigSource records where a resolved config path came from.
type ConfigSource string

const (
	// SourceProject means the file was found in the search root.
	SourceProject ConfigSource = "project"

	// SourceBundled means the search root had no such file and the
	// bundled default was used instead.
	SourceBundled ConfigSource = "bundled"

	// SourceFlag means the path was given explicitly on the command line.
	SourceFlag ConfigSource = "flag"
)

// ConfigReference is a config kind resolved to exactly one filesystem path.
type ConfigReference struct {
	Kind   ConfigKind   `json:"kind" yaml:"kind"`
	Path   string       `json:"path" yaml:"path"`
	Source ConfigSource `json:"source" yaml:"source"`
}

// LintConfig is the pair of config paths the lint group hands to its
// check and fix actions. Both paths are absolute.
type LintConfig struct {
	// CheckerConfig is the absolute path to ruff.toml.
	CheckerConfig string

	// FormatterConfig is the absolute path to black.toml.
	FormatterConfig string
}

// Invocation is a single external process call: the program name and its
// argument list. A leaf command is an ordered slice of invocations.
type Invocation struct {
	Name string
	Args []string
}

// String returns the command line as it would be typed in a shell,
// without any quoting.
func (i Invocation) String() string {
	if len(i.Args) == 0 {
		return i.Name
	}
	return i.Name + " " + strings.Join(i.Args, " ")
}

// ExitCode defines the CLI exit codes. Codes returned by external tools
// are passed through unchanged, so these only cover failures that
// devtools itself detects.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred,
	// including a missing or incomplete project manifest.
	ExitGeneralError ExitCode = 1

	// ExitUsage indicates invalid command-line input, such as an override
	// path that does not exist or an unknown log level.
	ExitUsage ExitCode = 2

	// ExitInstallError indicates a bundled default config could not be
	// installed or is missing. This is a broken installation.
	ExitInstallError ExitCode = 3

	// ExitLaunchFailed indicates an external tool could not be started,
	// most commonly because it is not on PATH.
	ExitLaunchFailed ExitCode = 127
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
