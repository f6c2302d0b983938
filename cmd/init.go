package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"autobarrel/pkg/config"
	"autobarrel/pkg/errors"
	"autobarrel/pkg/notify"
)

var initCmd = &cobra.Command{
	Use:   "init [folder]",
	Short: "Write a default " + config.DefaultFileName,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// The target must be an existing folder
		dir := targetArg(args)
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			return errors.Wrapf(errors.ErrInvalidTarget, "%s is not a folder", dir)
		}

		// Write the defaults, never replacing an existing config
		path, err := config.WriteDefault(dir)
		if err != nil {
			return err
		}
		notifier.Notify(notify.LevelSuccess, "Wrote "+path)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(initCmd)
}
