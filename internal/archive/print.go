package archive

import (
	"fmt"
	"io"

	"github.com/extframework/extlaunch/internal/descriptor"
)

// PrintTree prints the tree with box-drawing characters. Descriptors in
// marked are printed with the given note, e.g. "(packaged)".
func PrintTree(w io.Writer, t Tree, marked map[descriptor.Descriptor]string) {
	printNode(w, t.Root, "", true, marked)
}

func printNode(w io.Writer, node *Node, prefix string, isLast bool, marked map[descriptor.Descriptor]string) {
	if node == nil {
		return
	}

	connector := "├── "
	if isLast {
		connector = "└── "
	}

	label := node.Descriptor.String()
	if note, ok := marked[node.Descriptor]; ok {
		label += " (" + note + ")"
	}

	// The root has no connector.
	if prefix == "" {
		fmt.Fprintf(w, "  %s\n", label)
	} else {
		fmt.Fprintf(w, "  %s%s%s\n", prefix, connector, label)
	}

	childPrefix := prefix
	if prefix == "" {
		childPrefix = " "
	} else if isLast {
		childPrefix += "    "
	} else {
		childPrefix += "│   "
	}

	for i, child := range node.Children {
		printNode(w, child, childPrefix, i == len(node.Children)-1, marked)
	}
}
