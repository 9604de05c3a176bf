// Package cli — typecheck.go implements the "devtools typecheck" command.
//
// The command type-checks the project's own package, whose name is read
// from the manifest ([project].name, or [tool.poetry].name as a fallback).
package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/devtools/internal/model"
	"github.com/shinji-kodama/devtools/internal/resolver"
	"github.com/shinji-kodama/devtools/internal/runner"
	"github.com/shinji-kodama/devtools/internal/settings"
)

// newTypecheckCommand creates the "typecheck" cobra command.
func (a *app) newTypecheckCommand() *cobra.Command {
	var mypyIni existingFile

	cmd := &cobra.Command{
		Use:   "typecheck",
		Short: "Type-check the project package with mypy",
		Long: `Run mypy over the package named in pyproject.toml.

Examples:
  devtools typecheck
  devtools typecheck --mypy-ini ci/mypy.ini`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := a.resolver.Resolve(model.KindTypeChecker, mypyIni.path)
			if err != nil {
				return model.WrapCLIError(model.ExitGeneralError, "failed to resolve mypy config", err)
			}

			pkg, err := a.packageName()
			if err != nil {
				return err
			}
			a.log.Infof("Type-checking package %s with mypy config at %s", pkg, ref.Path)

			return runner.RunAll(cmd.Context(), a.runner, typecheckInvocations(a.settings.Tools, pkg, ref.Path))
		},
	}

	cmd.Flags().Var(&mypyIni, "mypy-ini", "mypy.ini configuration file")

	return cmd
}

// packageName reads the package name from the manifest. Both failure
// modes are fatal: without a name there is nothing to check.
func (a *app) packageName() (string, error) {
	p, err := a.manifestPath()
	if err != nil {
		return "", err
	}

	name, err := resolver.PackageName(p)
	switch {
	case err == nil:
		return name, nil
	case errors.Is(err, resolver.ErrManifestNotFound):
		return "", model.WrapCLIError(model.ExitGeneralError, "project manifest not found", err)
	case errors.Is(err, resolver.ErrPackageNameMissing):
		return "", model.WrapCLIError(model.ExitGeneralError, "cannot determine package name", err)
	default:
		return "", model.WrapCLIError(model.ExitGeneralError, "failed to read project manifest", err)
	}
}

// typecheckInvocations probes the type checker version and then checks the
// package with namespace-package inference turned off.
func typecheckInvocations(tools settings.Tools, pkg, configPath string) []model.Invocation {
	return []model.Invocation{
		{Name: tools.TypeChecker, Args: []string{"--version"}},
		{Name: tools.TypeChecker, Args: []string{"-p", pkg, "--config-file", configPath, "--no-namespace-packages"}},
	}
}
