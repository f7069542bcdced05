package ast

// NodeIndex is an auxiliary arena over a parsed tree: a node array in
// pre-order plus a parent map. The AST itself stays a strict tree with
// no back-pointers; tooling that needs parent or position lookups builds
// this in a separate pass and discards it with the compilation unit.
type NodeIndex struct {
	nodes   []Node
	parents map[Node]Node
	ids     map[Node]int
}

// BuildIndex walks the tree once and records every node with its parent.
func BuildIndex(root Node) *NodeIndex {
	idx := &NodeIndex{
		parents: make(map[Node]Node),
		ids:     make(map[Node]int),
	}
	idx.record(root, nil)
	return idx
}

func (idx *NodeIndex) record(n Node, parent Node) {
	if n == nil {
		return
	}
	idx.ids[n] = len(idx.nodes)
	idx.nodes = append(idx.nodes, n)
	if parent != nil {
		idx.parents[n] = parent
	}
	for _, c := range Children(n) {
		idx.record(c, n)
	}
}

// Len returns the number of indexed nodes.
func (idx *NodeIndex) Len() int { return len(idx.nodes) }

// Nodes returns the indexed nodes in pre-order.
func (idx *NodeIndex) Nodes() []Node { return idx.nodes }

// Parent returns the parent of n, or nil for the root or an unknown
// node.
func (idx *NodeIndex) Parent(n Node) Node { return idx.parents[n] }

// ID returns the pre-order index of n, or -1 if n is not in the arena.
func (idx *NodeIndex) ID(n Node) int {
	if id, ok := idx.ids[n]; ok {
		return id
	}
	return -1
}

// At returns the innermost node whose span contains the given byte
// offset, or nil. Pre-order means later matches are deeper, so the last
// hit wins.
func (idx *NodeIndex) At(offset int) Node {
	var found Node
	for _, n := range idx.nodes {
		span := n.GetSpan()
		if span.Start.Offset <= offset && offset < span.End.Offset {
			found = n
		}
	}
	return found
}

// PathTo returns the chain of nodes from the root down to n inclusive,
// or nil if n is not indexed.
func (idx *NodeIndex) PathTo(n Node) []Node {
	if _, ok := idx.ids[n]; !ok {
		return nil
	}
	var path []Node
	for cur := n; cur != nil; cur = idx.parents[cur] {
		path = append(path, cur)
	}
	// Reverse into root-first order.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
