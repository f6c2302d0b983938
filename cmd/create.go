package cmd

import (
	"github.com/spf13/cobra"
)

// createCmd writes a new barrel and refuses to overwrite one.
var createCmd = &cobra.Command{
	Use:   "create [folder]",
	Short: "Create a barrel file in a folder",
	Long: `Create writes {default_filename}.ts (or .js) into the folder, re-exporting
every matching source file below it. An existing barrel is never overwritten.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Resolve settings; a nil controller means autobarrel is disabled
		c, _, err := newController(cmd)
		if err != nil || c == nil {
			return err
		}

		// The controller notifies the user of the outcome itself
		_, err = c.CreateBarrel(cmd.Context(), targetArg(args))
		return reported(err)
	},
}

func init() {
	addBarrelFlags(createCmd.Flags())
	RootCmd.AddCommand(createCmd)
}
