package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"autobarrel/pkg/errors"
)

var listCmd = &cobra.Command{
	Use:   "list [folder]",
	Short: "Show the files a barrel would re-export",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Read the --flat flag
		flat, err := cmd.Flags().GetBool("flat")
		if err != nil {
			return errors.Wrap(err, "error reading flags")
		}

		c, _, err := newController(cmd)
		if err != nil || c == nil {
			return err
		}

		// Discover the candidates a barrel would re-export
		tree, files, err := c.ListFiles(cmd.Context(), targetArg(args))
		if err != nil {
			return reported(err)
		}

		// One relative path per line for scripts, a tree otherwise
		if flat {
			for _, f := range files {
				fmt.Fprintln(cmd.OutOrStdout(), f.RelativePath)
			}
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), tree)
		return nil
	},
}

func init() {
	listCmd.Flags().Bool("flat", false, "Print one relative path per line instead of a tree")
	addBarrelFlags(listCmd.Flags())
	RootCmd.AddCommand(listCmd)
}
