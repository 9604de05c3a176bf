// Package cli implements the cobra-based CLI commands for devtools.
//
// Each command (lint, typecheck, config) is defined in its own file within
// this package. This file defines the root command, which owns the global
// flags and performs the one-time setup every command depends on: loading
// settings, building the logger, and installing the bundled defaults.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/shinji-kodama/devtools/internal/assets"
	"github.com/shinji-kodama/devtools/internal/logging"
	"github.com/shinji-kodama/devtools/internal/model"
	"github.com/shinji-kodama/devtools/internal/resolver"
	"github.com/shinji-kodama/devtools/internal/runner"
	"github.com/shinji-kodama/devtools/internal/settings"
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// app carries the state built once per invocation by the root pre-run and
// handed to every command. Nothing in here outlives a single run.
type app struct {
	// workDir is the project root. Empty means the current directory.
	workDir string

	// runner executes external tools. Left nil, setup creates an
	// exec-based runner wired to the command's output streams.
	runner runner.Runner

	logLevel  logLevel
	assetsDir string

	settings *settings.Settings
	log      *logrus.Logger
	bundle   *assets.Bundle
	resolver *resolver.Resolver
}

// NewRootCommand creates and configures the root cobra command with all
// subcommands registered.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&app{})
}

func newRootCommand(a *app) *cobra.Command {
	a.logLevel = "INFO"

	rootCmd := &cobra.Command{
		Use:   "devtools",
		Short: "Run the project's linters, formatter and type checker with shared defaults",
		Long: `devtools runs ruff, black and mypy with one consistent set of flags.

Each tool looks for its config file (ruff.toml, black.toml, mypy.ini) in the
current directory and falls back to the defaults bundled with devtools.`,

		// Run prints errors; usage is only shown for --help.
		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		Args: noSubcommand,
		RunE: showHelp,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Groups only print help and need none of the setup.
			if cmd.HasSubCommands() {
				return nil
			}
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().Var(&a.logLevel, "log-level", "Set the logging level (DEBUG, INFO, WARNING, ERROR, CRITICAL)")
	rootCmd.PersistentFlags().StringVar(&a.assetsDir, "assets-dir", "", "Directory to install the bundled default configs into (default: user cache dir)")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return model.WrapCLIError(model.ExitUsage, "invalid usage", err)
	})

	rootCmd.AddCommand(a.newLintCommand())
	rootCmd.AddCommand(a.newTypecheckCommand())
	rootCmd.AddCommand(a.newConfigCommand())

	return rootCmd
}

// setup loads settings, initializes logging and installs the bundled
// defaults. It runs before every subcommand; any failure here means no
// external tool is started.
func (a *app) setup(cmd *cobra.Command) error {
	root, err := a.root()
	if err != nil {
		return err
	}

	v := settings.New()
	if _, err := settings.ReadFile(v, root); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to load devtools settings", err)
	}
	if err := bindFlags(v, cmd); err != nil {
		return err
	}

	s, err := settings.Load(v)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to load devtools settings", err)
	}
	a.settings = s

	level, err := logging.ParseLevel(s.LogLevel)
	if err != nil {
		return model.WrapCLIError(model.ExitUsage, "invalid usage", err)
	}
	a.log = logging.New(cmd.ErrOrStderr(), level)
	a.log.Debug("Logging initialized.")

	dir := s.AssetsDir
	if dir == "" {
		if dir, err = assets.DefaultDir(Version); err != nil {
			return model.WrapCLIError(model.ExitInstallError, "cannot place bundled configs", err)
		}
	}
	a.bundle = assets.NewBundle(dir)
	if err := a.bundle.Install(); err != nil {
		return err
	}
	a.log.Debugf("Bundled configs installed in %s", dir)

	a.resolver = resolver.New(root, a.bundle)

	if a.runner == nil {
		e := runner.NewExec(a.log)
		e.Dir = a.workDir
		e.Stdout = cmd.OutOrStdout()
		e.Stderr = cmd.ErrOrStderr()
		a.runner = e
	}
	return nil
}

// bindFlags lets the global flags take precedence over env and file values.
func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for key, name := range map[string]string{
		settings.KeyLogLevel:  "log-level",
		settings.KeyAssetsDir: "assets-dir",
	} {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return fmt.Errorf("bind --%s: %w", name, err)
		}
	}
	return nil
}

// root returns the absolute search root.
func (a *app) root() (string, error) {
	if a.workDir != "" {
		return filepath.Abs(a.workDir)
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", model.WrapCLIError(model.ExitGeneralError, "cannot determine working directory", err)
	}
	return wd, nil
}

// manifestPath returns the configured manifest path, anchored at the
// search root when relative.
func (a *app) manifestPath() (string, error) {
	p := a.settings.Manifest
	if filepath.IsAbs(p) {
		return p, nil
	}
	root, err := a.root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, p), nil
}

// Execute runs the root command and exits the process with the resulting
// code. This is the only place devtools terminates the process.
func Execute(ctx context.Context, rootCmd *cobra.Command) {
	if code := Run(ctx, rootCmd); code != int(model.ExitSuccess) {
		os.Exit(code)
	}
}

// Run executes rootCmd with ctx and translates its error into an exit code.
// CLIError types carry their own exit codes; other errors map to 1.
// Cancelling ctx kills the running tool.
func Run(ctx context.Context, rootCmd *cobra.Command) int {
	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return int(model.ExitSuccess)
	}

	printError(rootCmd.ErrOrStderr(), err)

	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		return int(cliErr.Code)
	}
	return int(model.ExitGeneralError)
}

// printError writes "Error: <message>" to w.
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
}
