package compressor

import (
	"context"
	"image"
	"image/color"

	"github.com/pkg/errors"

	"go.viam.com/quadcompress/quadtree"
	"go.viam.com/quadcompress/utils"
)

// ImageSource is where a compressing tree reads its pixels from.
type ImageSource interface {
	Bounds() image.Rectangle
	Crop(r quadtree.Rectangle) *image.NRGBA
}

// Node is a region of the image together with its average color and detail score.
// Nodes are either leaves or have exactly four children in NW, NE, SW, SE order.
type Node struct {
	boundary quadtree.Rectangle
	depth    int
	color    color.NRGBA
	detail   float64
	leaf     bool
	children []*Node
}

// NewNode returns a node with already computed statistics.
func NewNode(boundary quadtree.Rectangle, depth int, stats Stats) *Node {
	return &Node{
		boundary: boundary,
		depth:    depth,
		color:    stats.Color,
		detail:   stats.Detail,
	}
}

// newNodeFromSource crops boundary out of src and computes the node's statistics.
func newNodeFromSource(src ImageSource, boundary quadtree.Rectangle, depth int) *Node {
	return NewNode(boundary, depth, ComputeStats(src.Crop(boundary)))
}

// Boundary returns the region the node covers.
func (n *Node) Boundary() quadtree.Rectangle {
	return n.boundary
}

// Depth returns the node's distance from the root.
func (n *Node) Depth() int {
	return n.depth
}

// IsLeaf reports whether the builder stopped subdividing at this node.
func (n *Node) IsLeaf() bool {
	return n.leaf
}

// Children returns the node's four children, or nil.
func (n *Node) Children() []*Node {
	return n.children
}

// Color returns the average color of the region.
func (n *Node) Color() color.NRGBA {
	return n.color
}

// Detail returns the detail score of the region.
func (n *Node) Detail() float64 {
	return n.detail
}

// Subdivide splits the node into four quadrants and computes each child's statistics
// from src. The children are computed on pool and are all in place when Subdivide
// returns.
func (n *Node) Subdivide(ctx context.Context, src ImageSource, pool *utils.Pool) error {
	if n.children != nil {
		return errors.Errorf("node %v at depth %d is already subdivided", n.boundary, n.depth)
	}
	if n.leaf {
		return errors.Errorf("cannot subdivide leaf %v at depth %d", n.boundary, n.depth)
	}

	quadrants := n.boundary.Quadrants()
	children := make([]*Node, len(quadrants))
	fs := make([]utils.SimpleFunc, 0, len(quadrants))
	for i, quadrant := range quadrants {
		fs = append(fs, func(ctx context.Context) error {
			children[i] = newNodeFromSource(src, quadrant, n.depth+1)
			return nil
		})
	}
	if err := pool.ForkJoin(ctx, fs...); err != nil {
		return errors.Wrapf(err, "cannot subdivide %v", n.boundary)
	}
	n.children = children
	return nil
}

// Quadrant returns the node's region and color for rendering.
func (n *Node) Quadrant() Quadrant {
	return Quadrant{
		Boundary: n.boundary,
		Color:    n.color,
		Depth:    n.depth,
		Detail:   n.detail,
	}
}
