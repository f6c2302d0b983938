package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview [folder]",
	Short: "Print the barrel a folder would get without writing it",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := newController(cmd)
		if err != nil || c == nil {
			return err
		}

		// Build the barrel in memory only
		content, err := c.Preview(cmd.Context(), targetArg(args))
		if err != nil {
			return reported(err)
		}

		// Print it exactly as create would write it
		fmt.Fprint(cmd.OutOrStdout(), content)
		return nil
	},
}

func init() {
	addBarrelFlags(previewCmd.Flags())
	RootCmd.AddCommand(previewCmd)
}
