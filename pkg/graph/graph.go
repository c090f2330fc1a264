// Package graph provides the dependency graph accumulated during resolution.
package graph

import "slices"

// Graph is a directed "depends on" graph over Maven coordinate strings.
//
// Every coordinate that was visited during resolution appears as a node,
// even when its descriptor was unavailable or declared no qualifying
// dependencies. Edge targets are not automatically nodes: a dependency
// discovered beyond the depth limit shows up only in its parent's edge set.
//
// Per-node edge order is insertion order (declaration order in the POM) and
// duplicate edges are ignored. Graph is not safe for concurrent use; the
// resolver mutates it from a single goroutine.
type Graph struct {
	order []string
	edges map[string][]string
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{edges: make(map[string][]string)}
}

// Ensure adds id as a node with an empty edge set if it is not present.
func (g *Graph) Ensure(id string) {
	if _, ok := g.edges[id]; !ok {
		g.edges[id] = nil
		g.order = append(g.order, id)
	}
}

// AddEdge records that from depends on to, creating the from node if needed.
// Duplicate edges are dropped.
func (g *Graph) AddEdge(from, to string) {
	g.Ensure(from)
	if slices.Contains(g.edges[from], to) {
		return
	}
	g.edges[from] = append(g.edges[from], to)
}

// Has reports whether id is a node.
func (g *Graph) Has(id string) bool {
	_, ok := g.edges[id]
	return ok
}

// Nodes returns all node IDs in insertion order.
func (g *Graph) Nodes() []string {
	return slices.Clone(g.order)
}

// Children returns the coordinates that id depends on, in insertion order.
// The returned slice is a read-only view.
func (g *Graph) Children(id string) []string {
	return g.edges[id]
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.edges) }

// EdgeCount returns the total number of edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, children := range g.edges {
		n += len(children)
	}
	return n
}
