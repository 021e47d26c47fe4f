package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/extframework/extlaunch/internal/cache"
	"github.com/extframework/extlaunch/internal/descriptor"
)

var (
	pathKind       string
	pathClassifier string
	pathType       string
	pathPartition  string
)

var pathCmd = &cobra.Command{
	Use:   "path <descriptor>",
	Short: "Print where an artifact is cached",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := descriptor.Parse(descriptor.Kind(pathKind), args[0])
		if err != nil {
			return &UsageError{Msg: err.Error()}
		}
		if pathPartition != "" {
			d = descriptor.Partition(d, pathPartition)
		}

		dirs, err := installDirs()
		if err != nil {
			return err
		}
		p, err := cache.NewLayout(dirs).PathFor(d, pathClassifier, pathType)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), p)
		return nil
	},
}

func init() {
	pathCmd.Flags().StringVar(&pathKind, "kind", string(descriptor.KindExtension), "Artifact kind: extension or maven")
	pathCmd.Flags().StringVar(&pathClassifier, "classifier", "", "Artifact classifier")
	pathCmd.Flags().StringVar(&pathType, "type", cache.ArchiveType, "Artifact file type")
	pathCmd.Flags().StringVar(&pathPartition, "partition", "", "Partition of the extension")
	rootCmd.AddCommand(pathCmd)
}
