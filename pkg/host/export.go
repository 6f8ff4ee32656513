package host

import (
	"github.com/cris-achiardi/figma-plugins-sub000/pkg/errors"
	"github.com/cris-achiardi/figma-plugins-sub000/pkg/snapshot"
)

// Export serializes a live subtree of this memory host back into a snapshot
// node tree. This is the read-only export call the engine's round-trip
// verification relies on: node positions are converted back from
// parent-relative to absolute document coordinates.
func (m *Memory) Export(n Node) (*snapshot.Node, error) {
	mn, ok := n.(*MemNode)
	if !ok {
		return nil, errors.New(errors.ErrCodeNodeNotFound, "node does not belong to this document")
	}
	absX, absY := 0.0, 0.0
	for p := mn.parent; p != nil; p = p.parent {
		absX += p.x
		absY += p.y
	}
	return exportNode(mn, absX, absY), nil
}

func exportNode(n *MemNode, offX, offY float64) *snapshot.Node {
	out := &snapshot.Node{
		ID:   n.id,
		Name: n.name,
		Type: snapshot.NodeKind(n.kind),
		AbsoluteBoundingBox: &snapshot.Rect{
			X:      offX + n.x,
			Y:      offY + n.y,
			Width:  n.w,
			Height: n.h,
		},
		BlendMode:  n.blendMode,
		Characters: n.characters,
	}

	if !n.visible {
		v := false
		out.Visible = &v
	}
	if n.opacity != 1 {
		o := n.opacity
		out.Opacity = &o
	}

	out.Fills = exportPaints(n.fills)
	out.Strokes = exportPaints(n.strokes)
	if n.strokeWeight != 0 {
		w := n.strokeWeight
		out.StrokeWeight = &w
	}
	out.StrokeAlign = n.strokeAlign
	out.Effects = exportEffects(n.effects)

	if n.cornerRadius != 0 {
		r := n.cornerRadius
		out.CornerRadius = &r
	}
	if n.cornerRadii != nil {
		radii := *n.cornerRadii
		out.RectangleCornerRadii = &radii
	}

	if n.layoutMode != "" && n.layoutMode != "NONE" {
		out.LayoutMode = n.layoutMode
		out.PaddingTop = n.paddingTop
		out.PaddingRight = n.paddingRight
		out.PaddingBottom = n.paddingBottom
		out.PaddingLeft = n.paddingLeft
		out.ItemSpacing = n.itemSpacing
		out.PrimaryAxisSizingMode = n.primarySizing
		out.CounterAxisSizingMode = n.counterSizing
		out.PrimaryAxisAlignItems = n.primaryAlign
		out.CounterAxisAlignItems = n.counterAlign
	}

	if n.kind == "TEXT" {
		out.Style = &snapshot.TypeStyle{
			FontFamily:          n.font.Family,
			FontSize:            n.fontSize,
			TextAlignHorizontal: n.textAlign,
			TextDecoration:      n.decoration,
			TextCase:            n.textCase,
			TextAutoResize:      n.autoResize,
		}
		if n.letterSpacing != 0 {
			ls := n.letterSpacing
			out.Style.LetterSpacing = &ls
		}
		switch n.lineHeight.Unit {
		case "PIXELS":
			px := n.lineHeight.Value
			out.Style.LineHeightPx = &px
		case "PERCENT":
			pct := n.lineHeight.Value
			out.Style.LineHeightPercent = &pct
		}
	}

	for _, c := range n.children {
		mc, ok := c.(*MemNode)
		if !ok {
			continue
		}
		out.Children = append(out.Children, exportNode(mc, offX+n.x, offY+n.y))
	}
	return out
}

func exportPaints(paints []Paint) []snapshot.Paint {
	if len(paints) == 0 {
		return nil
	}
	out := make([]snapshot.Paint, 0, len(paints))
	for _, p := range paints {
		sp := snapshot.Paint{Type: p.Type}
		if !p.Visible {
			v := false
			sp.Visible = &v
		}
		if p.Opacity != 1 {
			o := p.Opacity
			sp.Opacity = &o
		}
		if p.Type == snapshot.PaintSolid {
			sp.Color = &snapshot.Color{R: p.Color.R, G: p.Color.G, B: p.Color.B, A: 1}
		}
		for _, s := range p.GradientStops {
			sp.GradientStops = append(sp.GradientStops, snapshot.ColorStop{
				Position: s.Position,
				Color:    snapshot.Color{R: s.Color.R, G: s.Color.G, B: s.Color.B, A: s.Color.A},
			})
		}
		out = append(out, sp)
	}
	return out
}

func exportEffects(effects []Effect) []snapshot.Effect {
	if len(effects) == 0 {
		return nil
	}
	out := make([]snapshot.Effect, 0, len(effects))
	for _, e := range effects {
		r := e.Radius
		se := snapshot.Effect{Type: e.Type, Radius: &r}
		if !e.Visible {
			v := false
			se.Visible = &v
		}
		switch e.Type {
		case snapshot.EffectDropShadow, snapshot.EffectInnerShadow:
			sp := e.Spread
			se.Spread = &sp
			se.Color = &snapshot.Color{R: e.Color.R, G: e.Color.G, B: e.Color.B, A: e.Color.A}
			se.Offset = &snapshot.Vec{X: e.OffsetX, Y: e.OffsetY}
		}
		out = append(out, se)
	}
	return out
}
