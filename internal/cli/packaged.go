package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/extframework/extlaunch/internal/negotiate"
)

var packagedCmd = &cobra.Command{
	Use:   "packaged",
	Short: "List the dependencies the host already packages",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := packagedSet(negotiate.Default())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, key := range set.Keys() {
			fmt.Fprintln(out, key)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(packagedCmd)
}
