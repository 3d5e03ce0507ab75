// Package quadtree implements a quadtree over a 2D integer plane along with the rectangle
// and partitioning primitives shared by every quadtree variant in quadcompress.
package quadtree

// Each node in a point quadtree is either an internal node which links to exactly four
// children, or a leaf node holding up to Capacity points.
const (
	InternalNode = NodeType(iota)
	LeafNode
)

// Capacity is the number of points a leaf holds before it is split into quadrants.
const Capacity = 4

// Child positions within a subdivided node. Children are always stored and visited in
// this order.
const (
	NorthWest = iota
	NorthEast
	SouthWest
	SouthEast
)

// NodeType represents the possible types of nodes in a quadtree.
type NodeType uint8

// Node is the shape shared by every quadtree variant: a boundary, a depth counted from
// the root, and either no children (a leaf) or four children in NW, NE, SW, SE order.
type Node[N any] interface {
	Boundary() Rectangle
	Depth() int
	IsLeaf() bool
	Children() []N
}

// Walk visits n and all of its descendants in pre-order. Returning false from fn skips
// the children of the node it was called with.
func Walk[N Node[N]](n N, fn func(N) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.Children() {
		Walk(child, fn)
	}
}

// MaxDepth returns the depth of the deepest node beneath and including n.
func MaxDepth[N Node[N]](n N) int {
	deepest := 0
	Walk(n, func(node N) bool {
		if node.Depth() > deepest {
			deepest = node.Depth()
		}
		return true
	})
	return deepest
}
