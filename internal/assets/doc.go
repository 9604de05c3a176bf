// Package assets ships the default configuration files that devtools falls
// back to when a project does not provide its own.
//
// The files are embedded into the binary with go:embed. External tools need
// a real path for their --config flag, so the Bundle installs the embedded
// files into a directory on disk (by default under the user cache dir) and
// verifies them before any command runs. A missing or unwritable default is
// an installation error, never a user error.
package assets
