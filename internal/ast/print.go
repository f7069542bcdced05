package ast

import "strings"

// Print returns an indented tree dump of the node, one node per line.
// Intended for debugging and test output, not for serialization.
func Print(node Node) string {
	var b strings.Builder
	printNode(&b, node, 0)
	return b.String()
}

func printNode(b *strings.Builder, node Node, depth int) {
	if node == nil {
		return
	}
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(node.String())
	b.WriteString("\n")
	for _, c := range Children(node) {
		printNode(b, c, depth+1)
	}
}
