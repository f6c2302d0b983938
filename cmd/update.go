package cmd

import (
	"github.com/spf13/cobra"

	"autobarrel/pkg/errors"
)

// updateCmd regenerates a barrel addressed by file or by folder.
var updateCmd = &cobra.Command{
	Use:   "update [barrel-file]",
	Short: "Regenerate an existing barrel file",
	Long: `Update rebuilds a barrel from its parent folder and replaces its whole
content. Use --folder to name the folder instead of the file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Read the --folder flag
		folder, err := cmd.Flags().GetString("folder")
		if err != nil {
			return errors.Wrap(err, "error reading flags")
		}
		// A barrel file and a folder cannot both name the target
		if folder != "" && len(args) > 0 {
			return errors.WithHint(
				errors.Wrap(errors.ErrInvalidTarget, "both a barrel file and --folder were given"),
				"pass one or the other")
		}

		c, _, err := newController(cmd)
		if err != nil || c == nil {
			return err
		}

		// Without a file argument, look for the barrel inside the folder
		if len(args) == 0 {
			if folder == "" {
				folder = "."
			}
			_, err = c.UpdateBarrelInFolder(cmd.Context(), folder)
			return reported(err)
		}

		// Otherwise rebuild the named barrel file in place
		return reported(c.UpdateBarrel(cmd.Context(), args[0]))
	},
}

func init() {
	updateCmd.Flags().String("folder", "", "Update the barrel inside this folder")
	addBarrelFlags(updateCmd.Flags())
	RootCmd.AddCommand(updateCmd)
}
