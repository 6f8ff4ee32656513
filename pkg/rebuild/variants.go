package rebuild

import (
	"context"

	"github.com/cris-achiardi/figma-plugins-sub000/pkg/host"
	"github.com/cris-achiardi/figma-plugins-sub000/pkg/snapshot"
)

// Spacing constants for variant layout inside a rebuilt component set.
const (
	variantInset   = 20.0
	variantSpacing = 16.0
)

// variantPair couples a built variant with its snapshot node so the
// positioning pass can read the original geometry.
type variantPair struct {
	sn   *snapshot.Node
	node host.Node
}

// buildComponentSet reconstructs a component set. Variants are built first,
// combined in a single host call, and then positioned: when every bounding
// box is known each variant keeps its original placement normalized to a
// fixed inset, otherwise the set falls back to a horizontal auto-layout
// flow.
//
// Degenerate arities never reach the combine call. An empty set becomes a
// plain frame and a single-variant set is just that variant renamed.
func (b *builder) buildComponentSet(ctx context.Context, sn *snapshot.Node, parent host.Node, parentSn *snapshot.Node) host.Node {
	var pairs []variantPair
	for _, child := range sn.Children {
		n := b.buildNode(ctx, child, parent, nil)
		if n != nil {
			pairs = append(pairs, variantPair{sn: child, node: n})
		}
	}

	switch len(pairs) {
	case 0:
		b.warnings.Addf("Component set %q has no buildable variants: rebuilt as plain frame", sn.Name)
		f := b.env.Doc.CreateFrame()
		parent.AppendChild(f)
		b.applyCommon(f, sn)
		return f
	case 1:
		v := pairs[0].node
		v.SetName(sn.Name)
		return v
	}

	nodes := make([]host.Node, len(pairs))
	for i, p := range pairs {
		nodes[i] = p.node
	}
	set, err := b.env.Doc.CombineAsVariants(nodes, parent)
	if err != nil {
		b.warnings.Addf("Combining variants failed for %q: %s", sn.Name, err)
		return nil
	}
	applyIdentity(set, sn)

	b.positionVariants(set, sn, pairs)
	return set
}

// positionVariants arranges combined variants inside their set. The manual
// strategy preserves the snapshot's relative placement, shifted so the
// top-left variant sits at the inset; it requires a bounding box on the set
// and on every variant.
func (b *builder) positionVariants(set host.FrameNode, sn *snapshot.Node, pairs []variantPair) {
	if !variantBoxesKnown(sn, pairs) {
		b.warnings.Addf("Component set %q is missing bounding boxes: arranging variants in a horizontal flow", sn.Name)
		set.SetLayoutMode("HORIZONTAL")
		set.SetPadding(variantInset, variantInset, variantInset, variantInset)
		set.SetItemSpacing(variantSpacing)
		set.SetPrimaryAxisSizingMode("AUTO")
		set.SetCounterAxisSizingMode("AUTO")
		return
	}

	minX, minY := 0.0, 0.0
	for i, p := range pairs {
		x, y := relativeOffset(p.sn.AbsoluteBoundingBox, sn.AbsoluteBoundingBox)
		if i == 0 || x < minX {
			minX = x
		}
		if i == 0 || y < minY {
			minY = y
		}
	}

	set.SetLayoutMode("NONE")
	var ext extent
	for _, p := range pairs {
		x, y := relativeOffset(p.sn.AbsoluteBoundingBox, sn.AbsoluteBoundingBox)
		x = x - minX + variantInset
		y = y - minY + variantInset
		p.node.SetPosition(x, y)
		w, h := p.node.Size()
		ext.include(x, y, w, h)
	}
	set.Resize(ext.maxX+variantInset, ext.maxY+variantInset)
}

func variantBoxesKnown(sn *snapshot.Node, pairs []variantPair) bool {
	if sn.AbsoluteBoundingBox == nil {
		return false
	}
	for _, p := range pairs {
		if p.sn.AbsoluteBoundingBox == nil {
			return false
		}
	}
	return true
}
