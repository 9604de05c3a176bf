// Package runner executes external tools on behalf of devtools commands.
//
// Tools inherit the caller's standard streams: devtools never captures or
// parses their output. A non-zero exit is turned into a model.CLIError
// carrying the child's own exit code, so the CLI exits with exactly the
// code the tool reported.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/sirupsen/logrus"

	"github.com/shinji-kodama/devtools/internal/model"
)

// Runner runs a single external invocation to completion.
type Runner interface {
	Run(ctx context.Context, inv model.Invocation) error
}

// Exec runs invocations as child processes.
type Exec struct {
	// Log receives one info line per invocation. Nil disables logging.
	Log logrus.FieldLogger

	// Dir is the child's working directory. Empty means the current one.
	Dir string

	// Stdin, Stdout and Stderr default to the process's own streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewExec creates an Exec that inherits the process's standard streams.
func NewExec(log logrus.FieldLogger) *Exec {
	return &Exec{Log: log, Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run starts inv and waits for it. It returns nil on a zero exit status,
// a CLIError with the child's exit code on a non-zero status, and a
// CLIError with ExitLaunchFailed when the program could not be started.
//
// There is no timeout. Cancelling ctx kills the child.
func (e *Exec) Run(ctx context.Context, inv model.Invocation) error {
	if e.Log != nil {
		e.Log.Infof("Running command: %s", inv)
	}

	// #nosec G204 -- running user-configured developer tools is the point
	cmd := exec.CommandContext(ctx, inv.Name, inv.Args...)
	cmd.Dir = e.Dir
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code <= 0 {
			// Killed by a signal; ExitCode reports -1.
			return model.WrapCLIError(model.ExitGeneralError,
				fmt.Sprintf("%s terminated abnormally", inv.Name), err)
		}
		return model.NewCLIError(model.ExitCode(code),
			fmt.Sprintf("%s exited with status %d", inv.Name, code))
	}

	return model.WrapCLIError(model.ExitLaunchFailed,
		fmt.Sprintf("failed to start %s", inv.Name), err)
}

// RunAll runs invs in order and stops at the first failure, returning its
// error. Later invocations are not started.
func RunAll(ctx context.Context, r Runner, invs []model.Invocation) error {
	for _, inv := range invs {
		if err := r.Run(ctx, inv); err != nil {
			return err
		}
	}
	return nil
}
