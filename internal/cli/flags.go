package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/shinji-kodama/devtools/internal/logging"
	"github.com/shinji-kodama/devtools/internal/model"
)

// usageArgs turns a positional-argument check failure into a usage error.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return model.WrapCLIError(model.ExitUsage, "invalid usage", err)
		}
		return nil
	}
}

// noSubcommand rejects leftover arguments on a command group. Cobra only
// gets here when no subcommand matched, so any argument is an unknown
// command.
func noSubcommand(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return model.NewCLIError(model.ExitUsage,
			fmt.Sprintf("invalid usage: unknown command %q for %q", args[0], cmd.CommandPath()))
	}
	return nil
}

// showHelp is the RunE of command groups invoked without a subcommand.
func showHelp(cmd *cobra.Command, _ []string) error {
	return cmd.Help()
}

// existingFile is a flag value that only accepts a path to an existing
// regular file. Validation happens in Set, so a bad path fails flag
// parsing before any command logic runs.
type existingFile struct {
	path string
}

var _ pflag.Value = (*existingFile)(nil)

func (f *existingFile) String() string { return f.path }

func (f *existingFile) Type() string { return "path" }

func (f *existingFile) Set(s string) error {
	info, err := os.Stat(s)
	if err != nil {
		return fmt.Errorf("file %q does not exist", s)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("file %q is not a regular file", s)
	}
	f.path = s
	return nil
}

// logLevel is a flag value restricted to the supported level names,
// matched case-insensitively and stored upper-cased.
type logLevel string

var _ pflag.Value = (*logLevel)(nil)

func (l *logLevel) String() string { return string(*l) }

func (l *logLevel) Type() string { return "level" }

func (l *logLevel) Set(s string) error {
	if _, err := logging.ParseLevel(s); err != nil {
		return err
	}
	*l = logLevel(strings.ToUpper(s))
	return nil
}
