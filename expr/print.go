package expr

import (
	"fmt"
	"io"
)

func PrintTree(w io.Writer, node *Node) {
	printTree(w, node, "", "")
}

func printTree(w io.Writer, node *Node, ruledLine string, childRuledLinePrefix string) {
	if node == nil {
		return
	}

	if node.Kind == KindIdentifier {
		fmt.Fprintf(w, "%v%v %#v\n", ruledLine, node.Kind, node.Token)
		return
	}
	fmt.Fprintf(w, "%v%v\n", ruledLine, node.Kind)

	printTree(w, node.Left, childRuledLinePrefix+"├─ ", childRuledLinePrefix+"│  ")
	printTree(w, node.Right, childRuledLinePrefix+"└─ ", childRuledLinePrefix+"   ")
}
