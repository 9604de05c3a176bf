// Package cli — lint.go implements the "devtools lint" command group.
//
// The group owns the --ruff-toml and --black-toml flags. Each action
// (check, fix) resolves them into a model.LintConfig and hands that value
// explicitly to its runner; there is no shared context object.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/devtools/internal/model"
	"github.com/shinji-kodama/devtools/internal/runner"
	"github.com/shinji-kodama/devtools/internal/settings"
)

// lintOptions holds the group-level flags shared by check and fix.
type lintOptions struct {
	ruffToml  existingFile
	blackToml existingFile
}

// newLintCommand creates the "lint" group with its check and fix actions.
func (a *app) newLintCommand() *cobra.Command {
	opts := &lintOptions{}

	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Check or fix lint and formatting",
		Long: `Run ruff and black over the whole project.

Config files are taken from --ruff-toml/--black-toml when given, then from
ruff.toml/black.toml in the current directory, then from the bundled defaults.`,
		Args: noSubcommand,
		RunE: showHelp,
	}

	// Persistent so that "lint --ruff-toml x check" parses on the leaf.
	cmd.PersistentFlags().Var(&opts.ruffToml, "ruff-toml", "ruff.toml configuration file")
	cmd.PersistentFlags().Var(&opts.blackToml, "black-toml", "black.toml configuration file")

	cmd.AddCommand(a.newLintActionCommand(opts, "check",
		"Run a lint check without fixing anything",
		`Run a lint check, WITHOUT fixing things. Exits non-zero if any lint check fails.

Examples:
  devtools lint check
  devtools lint --ruff-toml ci/ruff.toml check`,
		lintCheckInvocations))

	cmd.AddCommand(a.newLintActionCommand(opts, "fix",
		"Fix as many lint findings as possible",
		`Attempt to fix as many lint checks as possible, then reformat the project.

Examples:
  devtools lint fix`,
		lintFixInvocations))

	return cmd
}

// newLintActionCommand builds one lint leaf. plan turns the resolved
// LintConfig into the ordered tool invocations for that action.
func (a *app) newLintActionCommand(
	opts *lintOptions,
	use, short, long string,
	plan func(settings.Tools, model.LintConfig) []model.Invocation,
) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Long:  long,
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.lintConfig(opts)
			if err != nil {
				return err
			}
			return a.runLint(cmd.Context(), cfg, plan)
		},
	}
}

// lintConfig resolves the group flags into a LintConfig.
func (a *app) lintConfig(opts *lintOptions) (model.LintConfig, error) {
	cfg, err := a.resolver.Lint(opts.ruffToml.path, opts.blackToml.path)
	if err != nil {
		return model.LintConfig{}, model.WrapCLIError(model.ExitGeneralError, "failed to resolve lint configs", err)
	}
	a.log.Infof("Running lint with ruff at %s and black at %s", cfg.CheckerConfig, cfg.FormatterConfig)
	return cfg, nil
}

func (a *app) runLint(
	ctx context.Context,
	cfg model.LintConfig,
	plan func(settings.Tools, model.LintConfig) []model.Invocation,
) error {
	return runner.RunAll(ctx, a.runner, plan(a.settings.Tools, cfg))
}

// lintCheckInvocations is the non-mutating sequence: version probes, then
// ruff check, then black --check --diff.
func lintCheckInvocations(tools settings.Tools, cfg model.LintConfig) []model.Invocation {
	return []model.Invocation{
		{Name: tools.Formatter, Args: []string{"--version"}},
		{Name: tools.Checker, Args: []string{"--version"}},
		{Name: tools.Checker, Args: []string{"check", ".", "--config", cfg.CheckerConfig}},
		{Name: tools.Formatter, Args: []string{"--check", "--diff", ".", "--config", cfg.FormatterConfig}},
	}
}

// lintFixInvocations is the mutating sequence: version probes, then
// ruff check --fix, then black rewriting files in place.
func lintFixInvocations(tools settings.Tools, cfg model.LintConfig) []model.Invocation {
	return []model.Invocation{
		{Name: tools.Formatter, Args: []string{"--version"}},
		{Name: tools.Checker, Args: []string{"--version"}},
		{Name: tools.Checker, Args: []string{"check", ".", "--fix", "--config", cfg.CheckerConfig}},
		{Name: tools.Formatter, Args: []string{".", "--config", cfg.FormatterConfig}},
	}
}
