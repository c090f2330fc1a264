package render

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
)

// Graph is the read surface render needs from a dependency graph.
type Graph interface {
	// Nodes returns all node IDs.
	Nodes() []string
	// Children returns the IDs a node depends on, in declaration order.
	Children(id string) []string
}

var quoteEscaper = strings.NewReplacer(`"`, `\"`)

// ToDOT converts a dependency graph to Graphviz DOT format.
//
// Output is deterministic: parents are emitted in sorted order, each parent's
// children in recorded (declaration) order. Exactly one edge statement is
// written per (parent, child) pair; nodes without dependencies contribute no
// statements of their own.
func ToDOT(g Graph) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("    node [shape=box];\n")

	parents := g.Nodes()
	slices.Sort(parents)
	for _, parent := range parents {
		for _, child := range g.Children(parent) {
			fmt.Fprintf(&buf, "    \"%s\" -> \"%s\";\n",
				quoteEscaper.Replace(parent), quoteEscaper.Replace(child))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}
