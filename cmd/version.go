package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"autobarrel/pkg/errors"
	"autobarrel/pkg/version"
)

// versionCmd represents the version command.
// The --short flag prints only the version number.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the version of autobarrel",
	Long:  `Display the version, commit and build details of the autobarrel binary.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Read the --short flag
		short, err := cmd.Flags().GetBool("short")
		if err != nil {
			return errors.Wrap(err, "error reading flags")
		}

		// Collect build information
		v := version.Get()

		if short {
			// Version number only
			fmt.Fprintln(cmd.OutOrStdout(), v.Version)
		} else {
			// Full line with commit, build time and runtime
			fmt.Fprintln(cmd.OutOrStdout(), v.String())
		}
		return nil
	},
}

func init() {
	// Register the --short flag
	versionCmd.Flags().BoolP("short", "s", false, "Print the version number only")

	// Attach to the root command
	RootCmd.AddCommand(versionCmd)
}
