// Package cli — config.go implements the "devtools config" command.
//
// The config command reports which config file each tool would receive and
// where it came from, plus the package name typecheck would use. It never
// launches an external tool, so it is safe to run anywhere.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/devtools/internal/model"
	"github.com/shinji-kodama/devtools/internal/resolver"
)

// Output formats accepted by --format.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// configReport is the structured result of the config command.
type configReport struct {
	BundleDir string                  `json:"bundleDir" yaml:"bundleDir"`
	Configs   []model.ConfigReference `json:"configs" yaml:"configs"`
	Manifest  manifestReport          `json:"manifest" yaml:"manifest"`
}

// manifestReport describes the manifest lookup. Exactly one of Package or
// Error is set.
type manifestReport struct {
	Path    string `json:"path" yaml:"path"`
	Package string `json:"package,omitempty" yaml:"package,omitempty"`
	Source  string `json:"source,omitempty" yaml:"source,omitempty"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
}

// newConfigCommand creates the "config" cobra command.
func (a *app) newConfigCommand() *cobra.Command {
	var (
		format                       string
		kindNames                    []string
		ruffToml, blackToml, mypyIni existingFile
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the config files each tool would use",
		Long: `Show the resolved ruff, black and mypy config paths and the package name
read from the project manifest.

Examples:
  devtools config
  devtools config --format yaml
  devtools config --kind checker --kind formatter`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case formatText, formatJSON, formatYAML:
			default:
				return model.NewCLIError(model.ExitUsage,
					fmt.Sprintf("invalid usage: unknown format %q (valid: text, json, yaml)", format))
			}

			kinds, err := parseKinds(kindNames)
			if err != nil {
				return err
			}

			report, err := a.buildConfigReport(kinds, map[model.ConfigKind]string{
				model.KindChecker:     ruffToml.path,
				model.KindFormatter:   blackToml.path,
				model.KindTypeChecker: mypyIni.path,
			})
			if err != nil {
				return err
			}
			return writeConfigReport(cmd.OutOrStdout(), format, report)
		},
	}

	cmd.Flags().StringVar(&format, "format", formatText, "Output format (text, json, yaml)")
	cmd.Flags().StringSliceVar(&kindNames, "kind", nil, "Only report these config kinds (checker, formatter, typechecker)")
	cmd.Flags().Var(&ruffToml, "ruff-toml", "ruff.toml configuration file")
	cmd.Flags().Var(&blackToml, "black-toml", "black.toml configuration file")
	cmd.Flags().Var(&mypyIni, "mypy-ini", "mypy.ini configuration file")

	return cmd
}

// parseKinds turns --kind values into config kinds, keeping AllKinds order
// and dropping duplicates. No values means every kind.
func parseKinds(names []string) ([]model.ConfigKind, error) {
	if len(names) == 0 {
		return model.AllKinds, nil
	}

	wanted := make(map[model.ConfigKind]bool, len(names))
	for _, name := range names {
		kind, err := model.ParseConfigKind(name)
		if err != nil {
			return nil, model.WrapCLIError(model.ExitUsage, "invalid usage", err)
		}
		wanted[kind] = true
	}

	var kinds []model.ConfigKind
	for _, kind := range model.AllKinds {
		if wanted[kind] {
			kinds = append(kinds, kind)
		}
	}
	return kinds, nil
}

func (a *app) buildConfigReport(kinds []model.ConfigKind, overrides map[model.ConfigKind]string) (*configReport, error) {
	report := &configReport{BundleDir: a.bundle.Dir()}

	for _, kind := range kinds {
		ref, err := a.resolver.Resolve(kind, overrides[kind])
		if err != nil {
			return nil, model.WrapCLIError(model.ExitGeneralError,
				fmt.Sprintf("failed to resolve %s config", kind), err)
		}
		report.Configs = append(report.Configs, ref)
	}

	p, err := a.manifestPath()
	if err != nil {
		return nil, err
	}
	report.Manifest.Path = p

	// A missing manifest is reported, not fatal: lint does not need it.
	if res, err := resolver.LookupPackageName(p); err != nil {
		report.Manifest.Error = err.Error()
	} else {
		report.Manifest.Package = res.Name
		report.Manifest.Source = string(res.Source)
	}

	return report, nil
}

func writeConfigReport(w io.Writer, format string, report *configReport) error {
	switch format {
	case formatJSON:
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}
		return enc.Close()
	default:
		return writeConfigReportText(w, report)
	}
}

func writeConfigReportText(w io.Writer, report *configReport) error {
	var b strings.Builder
	for _, ref := range report.Configs {
		fmt.Fprintf(&b, "%-12s %-8s %s\n", ref.Kind, ref.Source, ref.Path)
	}
	if report.Manifest.Error != "" {
		fmt.Fprintf(&b, "%-12s %-8s %s\n", "package", "-", report.Manifest.Error)
	} else {
		fmt.Fprintf(&b, "%-12s %-8s %s\n", "package", report.Manifest.Source, report.Manifest.Package)
	}
	fmt.Fprintf(&b, "bundled defaults in %s\n", report.BundleDir)

	_, err := io.WriteString(w, b.String())
	return err
}
