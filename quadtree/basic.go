package quadtree

import (
	"github.com/pkg/errors"

	"go.viam.com/quadcompress/logging"
)

// Point is an integer position in the plane.
type Point struct {
	X, Y int
}

// QuadTree is a point quadtree. Leaves hold up to Capacity distinct points; inserting
// into a full leaf splits it into four quadrants and pushes its points down.
type QuadTree struct {
	logger   logging.Logger
	boundary Rectangle
	depth    int
	node     quadNode
	size     int
}

// quadNode is either a leaf with points or an internal node with four children, never both.
type quadNode struct {
	nodeType NodeType
	points   []Point
	children []*QuadTree
}

// New creates an empty quadtree covering boundary.
func New(boundary Rectangle, logger logging.Logger) (*QuadTree, error) {
	if boundary.Width < 0 || boundary.Height < 0 {
		return nil, errors.Errorf("invalid boundary %v for quadtree", boundary)
	}
	return newQuadTree(boundary, 0, logger), nil
}

func newQuadTree(boundary Rectangle, depth int, logger logging.Logger) *QuadTree {
	return &QuadTree{
		logger:   logger,
		boundary: boundary,
		depth:    depth,
		node:     quadNode{nodeType: LeafNode},
	}
}

// Boundary returns the rectangle this node is responsible for.
func (qt *QuadTree) Boundary() Rectangle {
	return qt.boundary
}

// Depth returns the node's distance from the root.
func (qt *QuadTree) Depth() int {
	return qt.depth
}

// IsLeaf reports whether the node has not been subdivided.
func (qt *QuadTree) IsLeaf() bool {
	return qt.node.nodeType == LeafNode
}

// Children returns the NW, NE, SW, SE children, or nil for a leaf.
func (qt *QuadTree) Children() []*QuadTree {
	return qt.node.children
}

// Size returns the number of points stored beneath this node.
func (qt *QuadTree) Size() int {
	return qt.size
}

// Has reports whether (x, y) is stored in the tree.
func (qt *QuadTree) Has(x, y int) bool {
	if !qt.boundary.Contains(x, y) {
		return false
	}
	if qt.IsLeaf() {
		return indexOf(qt.node.points, Point{x, y}) >= 0
	}
	for _, child := range qt.node.children {
		if child.Has(x, y) {
			return true
		}
	}
	return false
}

// Insert adds (x, y) to the tree. It returns false when the point lies outside the
// boundary or is already stored.
func (qt *QuadTree) Insert(x, y int) bool {
	if !qt.boundary.Contains(x, y) || qt.Has(x, y) {
		return false
	}
	return qt.insert(Point{x, y})
}

func (qt *QuadTree) insert(p Point) bool {
	if !qt.boundary.Contains(p.X, p.Y) {
		return false
	}

	if qt.IsLeaf() && len(qt.node.points) < Capacity {
		qt.node.points = append(qt.node.points, p)
		qt.size++
		return true
	}

	if qt.IsLeaf() {
		qt.subdivide()
	}

	for _, child := range qt.node.children {
		if child.insert(p) {
			qt.size++
			return true
		}
	}
	return false
}

// Remove deletes (x, y) from the tree and reports whether it was present. Subdivided
// nodes stay subdivided.
func (qt *QuadTree) Remove(x, y int) bool {
	if !qt.boundary.Contains(x, y) {
		return false
	}

	if qt.IsLeaf() {
		idx := indexOf(qt.node.points, Point{x, y})
		if idx < 0 {
			return false
		}
		qt.node.points = append(qt.node.points[:idx], qt.node.points[idx+1:]...)
		qt.size--
		return true
	}

	for _, child := range qt.node.children {
		if child.Remove(x, y) {
			qt.size--
			return true
		}
	}
	return false
}

// subdivide turns a leaf into an internal node with four children and moves its points
// into them.
func (qt *QuadTree) subdivide() {
	quadrants := qt.boundary.Quadrants()
	children := make([]*QuadTree, 0, len(quadrants))
	for _, quadrant := range quadrants {
		children = append(children, newQuadTree(quadrant, qt.depth+1, qt.logger))
	}

	points := qt.node.points
	qt.node = quadNode{nodeType: InternalNode, children: children}

	for _, p := range points {
		for _, child := range children {
			if child.insert(p) {
				break
			}
		}
	}
	qt.logger.Debugw("subdivided quadtree node", "boundary", qt.boundary.String(), "depth", qt.depth)
}

// QueryRange returns every stored point inside bbox. The order of the result is
// unspecified.
func (qt *QuadTree) QueryRange(bbox Rectangle) []Point {
	var found []Point
	qt.queryRange(bbox, &found)
	return found
}

func (qt *QuadTree) queryRange(bbox Rectangle, found *[]Point) {
	if !qt.boundary.Intersects(bbox) {
		return
	}
	for _, p := range qt.node.points {
		if bbox.Contains(p.X, p.Y) {
			*found = append(*found, p)
		}
	}
	for _, child := range qt.node.children {
		child.queryRange(bbox, found)
	}
}

func indexOf(points []Point, p Point) int {
	for i, stored := range points {
		if stored == p {
			return i
		}
	}
	return -1
}
