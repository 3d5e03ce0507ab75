// Package compressor approximates an image with an adaptive quadtree. Regions whose
// color varies more than a threshold are split into quadrants until they are uniform
// enough or the tree reaches its maximum depth; each remaining region is drawn in its
// average color.
package compressor

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/atomic"

	"go.viam.com/quadcompress/logging"
	"go.viam.com/quadcompress/quadtree"
	"go.viam.com/quadcompress/rimage"
	"go.viam.com/quadcompress/utils"
)

// Quadrant is a region of the approximated image and the color it is drawn with.
type Quadrant struct {
	Boundary quadtree.Rectangle
	Color    color.NRGBA
	Depth    int
	Detail   float64
}

func (q Quadrant) String() string {
	return fmt.Sprintf("%v@%d %s detail=%.2f", q.Boundary, q.Depth, rimage.Hex(q.Color), q.Detail)
}

// Compressor owns a compressing tree built over a whole image.
type Compressor struct {
	logger logging.Logger
	cfg    Config
	pool   *utils.Pool

	width, height int
	root          *Node
	depth         atomic.Int32
}

// New builds a compressing tree over src. The build subdivides every node whose detail
// exceeds cfg.DetailThreshold until cfg.MaxDepth is reached.
func New(ctx context.Context, src ImageSource, cfg Config, logger logging.Logger) (*Compressor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	bounds := quadtree.RectangleFromImage(src.Bounds())
	c := &Compressor{
		logger: logger,
		cfg:    cfg,
		pool:   utils.NewPool(cfg.Concurrency),
		width:  bounds.Width,
		height: bounds.Height,
	}

	start := time.Now()
	logger.Debugw("building compressing tree",
		"bounds", bounds.String(),
		"max_depth", cfg.MaxDepth,
		"detail_threshold", cfg.DetailThreshold,
		"concurrency", c.pool.Size())

	c.root = newNodeFromSource(src, bounds, 0)
	if err := c.build(ctx, src, c.root); err != nil {
		return nil, errors.Wrap(err, "cannot build compressing tree")
	}

	summary := c.Summary()
	logger.Infow("built compressing tree",
		"depth", c.Depth(),
		"leaves", summary.Leaves,
		"mean_detail", summary.MeanDetail,
		"median_detail", summary.MedianDetail,
		"elapsed", time.Since(start))
	return c, nil
}

// build decides whether n is a leaf and otherwise subdivides it and builds its children.
func (c *Compressor) build(ctx context.Context, src ImageSource, n *Node) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if n.depth >= c.cfg.MaxDepth || n.detail <= c.cfg.DetailThreshold {
		n.leaf = true
		c.recordDepth(n.depth)
		return nil
	}

	if err := n.Subdivide(ctx, src, c.pool); err != nil {
		return err
	}

	fs := make([]utils.SimpleFunc, 0, len(n.children))
	for _, child := range n.children {
		fs = append(fs, func(ctx context.Context) error {
			return c.build(ctx, src, child)
		})
	}
	return c.pool.ForkJoin(ctx, fs...)
}

func (c *Compressor) recordDepth(depth int) {
	for {
		current := c.depth.Load()
		if int32(depth) <= current || c.depth.CompareAndSwap(current, int32(depth)) {
			return
		}
	}
}

// Depth returns the deepest level any leaf of the tree was built at.
func (c *Compressor) Depth() int {
	return int(c.depth.Load())
}

// Root returns the root of the tree.
func (c *Compressor) Root() *Node {
	return c.root
}

// Width returns the width of the compressed image.
func (c *Compressor) Width() int {
	return c.width
}

// Height returns the height of the compressed image.
func (c *Compressor) Height() int {
	return c.height
}

// Config returns the configuration the tree was built with.
func (c *Compressor) Config() Config {
	return c.cfg
}

// LeafQuadrants returns the quadrants that approximate the image at depth: every leaf
// above depth plus every node at exactly depth, in NW, NE, SW, SE pre-order. Asking for a
// depth outside [0, Depth()] returns ErrInvalidDepthQuery.
func (c *Compressor) LeafQuadrants(depth int) ([]Quadrant, error) {
	if depth < 0 || depth > c.Depth() {
		return nil, NewInvalidDepthQueryError(depth, c.Depth())
	}
	return c.leafQuadrants(depth), nil
}

func (c *Compressor) leafQuadrants(depth int) []Quadrant {
	var quadrants []Quadrant
	quadtree.Walk(c.root, func(n *Node) bool {
		if n.leaf || n.depth == depth {
			quadrants = append(quadrants, n.Quadrant())
			return false
		}
		return true
	})
	return quadrants
}

// Summary describes the leaves of a built tree.
type Summary struct {
	Depth        int
	Leaves       int
	Area         int
	MeanDetail   float64
	MedianDetail float64
	MaxDetail    float64
}

// Summary returns statistics over the tree's leaves.
func (c *Compressor) Summary() Summary {
	leaves := c.leafQuadrants(c.Depth())
	details := stats.Float64Data(lo.Map(leaves, func(q Quadrant, _ int) float64 {
		return q.Detail
	}))
	summary := Summary{
		Depth:  c.Depth(),
		Leaves: len(leaves),
		Area: lo.SumBy(leaves, func(q Quadrant) int {
			return q.Boundary.Area()
		}),
	}
	// the tree always has at least one leaf, so these cannot fail.
	summary.MeanDetail, _ = details.Mean()
	summary.MedianDetail, _ = details.Median()
	summary.MaxDetail, _ = details.Max()
	return summary
}
