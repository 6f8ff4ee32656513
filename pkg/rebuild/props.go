package rebuild

import (
	"context"

	"github.com/cris-achiardi/figma-plugins-sub000/pkg/host"
	"github.com/cris-achiardi/figma-plugins-sub000/pkg/snapshot"
)

// =============================================================================
// Validated Enum Sets
// =============================================================================

// Property assignment is tolerant by construction: an enum value is only
// assigned when it lies in the property's legal set, otherwise the
// assignment is skipped silently. This is an input-range check, not
// exception suppression.

var validBlendModes = map[string]bool{
	"PASS_THROUGH": true, "NORMAL": true, "DARKEN": true, "MULTIPLY": true,
	"LINEAR_BURN": true, "COLOR_BURN": true, "LIGHTEN": true, "SCREEN": true,
	"LINEAR_DODGE": true, "COLOR_DODGE": true, "OVERLAY": true,
	"SOFT_LIGHT": true, "HARD_LIGHT": true, "DIFFERENCE": true,
	"EXCLUSION": true, "HUE": true, "SATURATION": true, "COLOR": true,
	"LUMINOSITY": true,
}

var validStrokeAligns = map[string]bool{
	"CENTER": true, "INSIDE": true, "OUTSIDE": true,
}

var validLayoutModes = map[string]bool{
	"HORIZONTAL": true, "VERTICAL": true,
}

var validAxisSizingModes = map[string]bool{
	"FIXED": true, "AUTO": true,
}

var validPrimaryAxisAligns = map[string]bool{
	"MIN": true, "CENTER": true, "MAX": true, "SPACE_BETWEEN": true,
}

var validCounterAxisAligns = map[string]bool{
	"MIN": true, "CENTER": true, "MAX": true, "BASELINE": true,
}

var validLayoutAligns = map[string]bool{
	"MIN": true, "CENTER": true, "MAX": true, "STRETCH": true, "INHERIT": true,
}

var validTextAligns = map[string]bool{
	"LEFT": true, "CENTER": true, "RIGHT": true, "JUSTIFIED": true,
}

var validTextDecorations = map[string]bool{
	"NONE": true, "UNDERLINE": true, "STRIKETHROUGH": true,
}

var validTextCases = map[string]bool{
	"ORIGINAL": true, "UPPER": true, "LOWER": true, "TITLE": true,
}

var validTextAutoResize = map[string]bool{
	"NONE": true, "WIDTH_AND_HEIGHT": true, "HEIGHT": true, "TRUNCATE": true,
}

var validLineHeightUnits = map[string]bool{
	"PIXELS": true, "PERCENT": true,
}

// =============================================================================
// Common Properties
// =============================================================================

// applyIdentity applies the identity properties shared by every node kind,
// including assembled containers that must not be resized or repainted.
func applyIdentity(n host.Node, sn *snapshot.Node) {
	n.SetName(sn.Name)
	if sn.Visible != nil {
		n.SetVisible(*sn.Visible)
	}
	if sn.Opacity != nil && *sn.Opacity >= 0 && *sn.Opacity <= 1 {
		n.SetOpacity(*sn.Opacity)
	}
	if validBlendModes[sn.BlendMode] {
		n.SetBlendMode(sn.BlendMode)
	}
}

// applyCommon applies the properties shared by every node kind. Size comes
// from the bounding box (or the declared size) and must be applied before
// any children are processed, so children can compute correct relative
// offsets against it.
func (b *builder) applyCommon(n host.Node, sn *snapshot.Node) {
	applyIdentity(n, sn)

	if w, h, ok := declaredSize(sn); ok && w > 0 && h > 0 {
		n.Resize(w, h)
	}

	if fills := b.convertPaints(sn.Fills, sn.Name); fills != nil {
		n.SetFills(fills)
	}
	if strokes := b.convertPaints(sn.Strokes, sn.Name); strokes != nil {
		n.SetStrokes(strokes)
	}
	if sn.StrokeWeight != nil && *sn.StrokeWeight >= 0 {
		n.SetStrokeWeight(*sn.StrokeWeight)
	}
	if validStrokeAligns[sn.StrokeAlign] {
		n.SetStrokeAlign(sn.StrokeAlign)
	}
	if effects := convertEffects(sn.Effects); effects != nil {
		n.SetEffects(effects)
	}
}

// applyCorners applies the uniform corner radius first, then any per-corner
// overrides.
func applyCorners(n host.Node, sn *snapshot.Node) {
	if sn.CornerRadius != nil && *sn.CornerRadius >= 0 {
		n.SetCornerRadius(*sn.CornerRadius)
	}
	if r := sn.RectangleCornerRadii; r != nil {
		n.SetCornerRadii(r[0], r[1], r[2], r[3])
	}
}

// applyLayout applies auto-layout container properties. The layout mode
// must be assigned before padding and spacing: the host rejects layout
// attributes on a node whose mode is still NONE.
func applyLayout(f host.FrameNode, sn *snapshot.Node) {
	if !validLayoutModes[sn.LayoutMode] {
		return
	}
	f.SetLayoutMode(sn.LayoutMode)
	f.SetPadding(sn.PaddingTop, sn.PaddingRight, sn.PaddingBottom, sn.PaddingLeft)
	f.SetItemSpacing(sn.ItemSpacing)
	if sn.CounterAxisSpacing != nil {
		f.SetCounterAxisSpacing(*sn.CounterAxisSpacing)
	}
	if validAxisSizingModes[sn.PrimaryAxisSizingMode] {
		f.SetPrimaryAxisSizingMode(sn.PrimaryAxisSizingMode)
	}
	if validAxisSizingModes[sn.CounterAxisSizingMode] {
		f.SetCounterAxisSizingMode(sn.CounterAxisSizingMode)
	}
	if validPrimaryAxisAligns[sn.PrimaryAxisAlignItems] {
		f.SetPrimaryAxisAlignItems(sn.PrimaryAxisAlignItems)
	}
	if validCounterAxisAligns[sn.CounterAxisAlignItems] {
		f.SetCounterAxisAlignItems(sn.CounterAxisAlignItems)
	}
}

// applyText assigns text styling. Font resolution must complete before the
// character content is assigned; everything after that is applied
// independently and tolerantly.
func (b *builder) applyText(ctx context.Context, t host.TextNode, sn *snapshot.Node) {
	style := sn.Style
	if style == nil {
		style = &snapshot.TypeStyle{}
	}

	font := b.resolveFont(ctx, style.FontFamily, style.FontWeight)
	t.SetFontName(font)
	t.SetCharacters(sn.Characters)

	if style.FontSize > 0 {
		t.SetFontSize(style.FontSize)
	}
	if validTextAligns[style.TextAlignHorizontal] {
		t.SetTextAlignHorizontal(style.TextAlignHorizontal)
	}
	if lh, ok := lineHeight(style); ok {
		t.SetLineHeight(lh)
	}
	if style.LetterSpacing != nil {
		t.SetLetterSpacing(*style.LetterSpacing)
	}
	if validTextDecorations[style.TextDecoration] {
		t.SetTextDecoration(style.TextDecoration)
	}
	if validTextCases[style.TextCase] {
		t.SetTextCase(style.TextCase)
	}
	if validTextAutoResize[style.TextAutoResize] {
		t.SetTextAutoResize(style.TextAutoResize)
	}
}

// lineHeight picks the absolute-pixel unit when present, otherwise percent.
func lineHeight(style *snapshot.TypeStyle) (host.LineHeight, bool) {
	if style.LineHeightPx != nil && *style.LineHeightPx > 0 {
		return host.LineHeight{Value: *style.LineHeightPx, Unit: "PIXELS"}, true
	}
	if style.LineHeightPercent != nil && *style.LineHeightPercent > 0 {
		return host.LineHeight{Value: *style.LineHeightPercent, Unit: "PERCENT"}, true
	}
	return host.LineHeight{}, false
}

// applyLayoutParticipation applies the child-side auto-layout attributes
// used instead of manual coordinates inside an auto-layout parent.
func applyLayoutParticipation(n host.Node, sn *snapshot.Node) {
	if sn.LayoutGrow != nil && *sn.LayoutGrow >= 0 {
		n.SetLayoutGrow(*sn.LayoutGrow)
	}
	if validLayoutAligns[sn.LayoutAlign] {
		n.SetLayoutAlign(sn.LayoutAlign)
	}
}
