// Package cmd wires the autobarrel commands.
package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"autobarrel/pkg/errors"
	"autobarrel/pkg/logging"
	"autobarrel/pkg/notify"
	"autobarrel/pkg/version"
)

var (
	logger   = zap.NewNop()
	notifier notify.Notifier
)

// errReported marks errors the user has already been shown.
var errReported = errors.New("reported")

// RootCmd is the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "autobarrel",
	Short: "Generate barrel files for TypeScript and JavaScript folders",
	Long: `autobarrel scans a folder for source files and writes an index file
that re-exports them, so the folder can be imported as one module.

Examples:
  autobarrel create src/components    # write src/components/index.ts
  autobarrel update src/components/index.ts
  autobarrel preview src/utils        # print without writing
  autobarrel watch src                # regenerate on change`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		debug, err := cmd.Flags().GetBool("debug")
		if err != nil {
			return errors.Wrap(err, "error reading flags")
		}
		if debug {
			l, err := logging.Setup(true, version.Name, version.Version)
			if err != nil {
				return errors.Wrap(err, "failed to initialize logger")
			}
			logger = l
		}
		if notifier == nil {
			notifier = notify.NewTerminal(logger)
		}
		return nil
	},
}

func init() {
	RootCmd.PersistentFlags().String("config", "", "Config file (default: nearest .autobarrel.toml)")
	RootCmd.PersistentFlags().String("workspace", "", "Workspace root targets must live in (default: current directory)")
	RootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}

// Execute runs the root command with l as the base logger. Errors not
// yet shown to the user are reported before returning.
func Execute(l *zap.Logger) error {
	if l != nil {
		logger = l
	}

	err := RootCmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		n := notifier
		if n == nil {
			n = notify.NewTerminal(logger)
		}
		notify.Report(n, err)
	}
	return err
}

// reported marks err as already shown to the user.
func reported(err error) error {
	if err == nil {
		return nil
	}
	return errors.Mark(err, errReported)
}
