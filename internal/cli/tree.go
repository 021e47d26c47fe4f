package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/extframework/extlaunch/internal/archive"
	"github.com/extframework/extlaunch/internal/audit"
	"github.com/extframework/extlaunch/internal/descriptor"
)

var (
	treeExtension  string
	treeRepository string
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Show the resolved and audited tree of an extension",
	Long: `Resolve one extension and print its archive tree. Archives the host already
packages are marked, as are archives the repository does not hold. The
audited tree shows what would be loaded.`,
	RunE: runTree,
}

func init() {
	treeCmd.Flags().StringVarP(&treeExtension, "extension", "e", "", "Extension descriptor group:artifact:version")
	treeCmd.Flags().StringVarP(&treeRepository, "repository", "r", "", "Repository type@location")
	_ = treeCmd.MarkFlagRequired("extension")
	_ = treeCmd.MarkFlagRequired("repository")
	rootCmd.AddCommand(treeCmd)
}

func runTree(cmd *cobra.Command, args []string) error {
	exts, err := pairExtensions([]string{treeExtension}, []string{treeRepository})
	if err != nil {
		return err
	}
	l, err := newLauncher()
	if err != nil {
		return err
	}

	var pruned []descriptor.Descriptor
	resolved, audited, err := l.Tree(cmd.Context(), exts[0], audit.OnPrune(func(d descriptor.Descriptor) {
		pruned = append(pruned, d)
	}))
	if err != nil {
		return err
	}
	marked := treeLabels(resolved, audited, pruned)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Resolved from %s:\n", exts[0].Repository)
	archive.PrintTree(out, resolved, marked)
	fmt.Fprintf(out, "\nLoaded (%d of %d archives):\n", len(audited.Nodes()), len(resolved.Nodes()))
	archive.PrintTree(out, audited, nil)
	return nil
}

// treeLabels annotates the resolved tree: subtrees the host packages, the
// archives below them, versions replaced by another version of the same
// dependency, and archives the repository does not hold.
func treeLabels(resolved, audited archive.Tree, pruned []descriptor.Descriptor) map[descriptor.Descriptor]string {
	kept := make(map[descriptor.Descriptor]bool)
	audited.Walk(func(n *archive.Node, _ int) bool {
		kept[n.Descriptor] = true
		return true
	})
	packagedRoots := make(map[descriptor.Descriptor]bool, len(pruned))
	for _, d := range pruned {
		packagedRoots[d] = true
	}

	marked := make(map[descriptor.Descriptor]string)
	var label func(n *archive.Node, underPackaged bool)
	label = func(n *archive.Node, underPackaged bool) {
		switch {
		case packagedRoots[n.Descriptor]:
			marked[n.Descriptor] = "packaged"
			underPackaged = true
		case underPackaged:
			if _, ok := marked[n.Descriptor]; !ok {
				marked[n.Descriptor] = "under packaged"
			}
		case !kept[n.Descriptor]:
			if _, ok := marked[n.Descriptor]; !ok {
				marked[n.Descriptor] = "replaced"
			}
		case n.Source == "":
			marked[n.Descriptor] = "missing"
		}
		for _, c := range n.Children {
			label(c, underPackaged)
		}
	}
	if resolved.Root != nil {
		label(resolved.Root, false)
	}
	return marked
}
