package rebuild

import "github.com/cris-achiardi/figma-plugins-sub000/pkg/snapshot"

// relativeOffset computes a child's local position from the difference
// between its own and its parent's absolute bounding-box origins.
func relativeOffset(child, parent *snapshot.Rect) (x, y float64) {
	return child.X - parent.X, child.Y - parent.Y
}

// declaredSize returns the node's size, preferring the bounding box over the
// declared size attribute. ok is false when neither is present.
func declaredSize(n *snapshot.Node) (w, h float64, ok bool) {
	if bb := n.AbsoluteBoundingBox; bb != nil {
		return bb.Width, bb.Height, true
	}
	if n.Size != nil {
		return n.Size.X, n.Size.Y, true
	}
	return 0, 0, false
}

// extent is a running bounding extent over placed rectangles.
type extent struct {
	maxX, maxY float64
	any        bool
}

// include grows the extent to cover a rectangle at (x, y) with size (w, h).
func (e *extent) include(x, y, w, h float64) {
	if !e.any || x+w > e.maxX {
		e.maxX = x + w
	}
	if !e.any || y+h > e.maxY {
		e.maxY = y + h
	}
	e.any = true
}
