// Package snapshot defines the serialized document schema consumed by the
// reconstruction engine.
//
// A snapshot is a hierarchical, read-only description of a visual document:
// every node carries its kind, geometry in absolute document coordinates,
// paint/effect/text/layout attributes, and its ordered children. Snapshots
// are produced by a single export call against a live document and travel as
// JSON; this package owns decoding and structural validation.
//
// The schema is deliberately tolerant: optional attributes are pointers so
// that "absent" and "zero" stay distinguishable, and unknown node kinds
// survive decoding (the engine downgrades them with a warning instead of
// rejecting the document).
package snapshot

// NodeKind identifies the type of a snapshot node.
type NodeKind string

// Node kinds understood by the engine. Unknown kinds decode fine and are
// handled by the walker's unsupported branch.
const (
	KindFrame        NodeKind = "FRAME"
	KindRectangle    NodeKind = "RECTANGLE"
	KindEllipse      NodeKind = "ELLIPSE"
	KindText         NodeKind = "TEXT"
	KindGroup        NodeKind = "GROUP"
	KindComponent    NodeKind = "COMPONENT"
	KindComponentSet NodeKind = "COMPONENT_SET"
	KindInstance     NodeKind = "INSTANCE"
	KindVector       NodeKind = "VECTOR"
	KindStar         NodeKind = "STAR"
	KindPolygon      NodeKind = "POLYGON"
	KindLine         NodeKind = "LINE"
	KindBoolean      NodeKind = "BOOLEAN_OPERATION"
)

// VectorLike reports whether the kind is one of the vector shape kinds that
// only reconstruct faithfully through vector-markup import.
func (k NodeKind) VectorLike() bool {
	switch k {
	case KindVector, KindStar, KindPolygon, KindLine, KindBoolean:
		return true
	}
	return false
}

// Rect is an axis-aligned bounding box in absolute document coordinates.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Vec is a 2D point or offset.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Color is an RGBA color with components in [0, 1].
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// ColorStop is a gradient stop.
type ColorStop struct {
	Position float64 `json:"position"`
	Color    Color   `json:"color"`
}

// Paint kinds.
const (
	PaintSolid           = "SOLID"
	PaintGradientLinear  = "GRADIENT_LINEAR"
	PaintGradientRadial  = "GRADIENT_RADIAL"
	PaintGradientAngular = "GRADIENT_ANGULAR"
	PaintGradientDiamond = "GRADIENT_DIAMOND"
	PaintImage           = "IMAGE"
)

// Paint describes one fill or stroke layer.
type Paint struct {
	Type    string   `json:"type"`
	Visible *bool    `json:"visible,omitempty"`
	Opacity *float64 `json:"opacity,omitempty"`

	// Solid paints
	Color *Color `json:"color,omitempty"`

	// Gradient paints
	GradientStops           []ColorStop `json:"gradientStops,omitempty"`
	GradientHandlePositions []Vec       `json:"gradientHandlePositions,omitempty"`

	// Image paints carry only a reference; pixel data is not reachable
	// from a snapshot.
	ImageRef string `json:"imageRef,omitempty"`
}

// Gradient reports whether the paint is any of the gradient kinds.
func (p Paint) Gradient() bool {
	switch p.Type {
	case PaintGradientLinear, PaintGradientRadial, PaintGradientAngular, PaintGradientDiamond:
		return true
	}
	return false
}

// Effect kinds.
const (
	EffectDropShadow     = "DROP_SHADOW"
	EffectInnerShadow    = "INNER_SHADOW"
	EffectLayerBlur      = "LAYER_BLUR"
	EffectBackgroundBlur = "BACKGROUND_BLUR"
)

// Effect describes one visual effect layer.
type Effect struct {
	Type    string   `json:"type"`
	Visible *bool    `json:"visible,omitempty"`
	Radius  *float64 `json:"radius,omitempty"`
	Spread  *float64 `json:"spread,omitempty"`
	Color   *Color   `json:"color,omitempty"`
	Offset  *Vec     `json:"offset,omitempty"`
}

// TypeStyle is the text style block of a Text node.
type TypeStyle struct {
	FontFamily          string   `json:"fontFamily,omitempty"`
	FontWeight          float64  `json:"fontWeight,omitempty"`
	FontSize            float64  `json:"fontSize,omitempty"`
	TextAlignHorizontal string   `json:"textAlignHorizontal,omitempty"`
	LineHeightPx        *float64 `json:"lineHeightPx,omitempty"`
	LineHeightPercent   *float64 `json:"lineHeightPercent,omitempty"`
	LetterSpacing       *float64 `json:"letterSpacing,omitempty"`
	TextDecoration      string   `json:"textDecoration,omitempty"`
	TextCase            string   `json:"textCase,omitempty"`
	TextAutoResize      string   `json:"textAutoResize,omitempty"`
}

// ComponentPropertyDefinition describes one shared property of a component
// set (variant axis, boolean toggle, text override, instance swap).
type ComponentPropertyDefinition struct {
	Type           string   `json:"type"`
	DefaultValue   any      `json:"defaultValue,omitempty"`
	VariantOptions []string `json:"variantOptions,omitempty"`
}

// Node is one element of the snapshot tree.
type Node struct {
	ID      string   `json:"id,omitempty"`
	Name    string   `json:"name"`
	Type    NodeKind `json:"type"`
	Visible *bool    `json:"visible,omitempty"`
	Opacity *float64 `json:"opacity,omitempty"`

	BlendMode           string `json:"blendMode,omitempty"`
	AbsoluteBoundingBox *Rect  `json:"absoluteBoundingBox,omitempty"`

	// Size is the declared size, used when no bounding box was exported.
	Size *Vec `json:"size,omitempty"`

	Children []*Node `json:"children,omitempty"`

	Fills        []Paint  `json:"fills,omitempty"`
	Strokes      []Paint  `json:"strokes,omitempty"`
	StrokeWeight *float64 `json:"strokeWeight,omitempty"`
	StrokeAlign  string   `json:"strokeAlign,omitempty"`
	Effects      []Effect `json:"effects,omitempty"`

	CornerRadius         *float64    `json:"cornerRadius,omitempty"`
	RectangleCornerRadii *[4]float64 `json:"rectangleCornerRadii,omitempty"` // top-left, top-right, bottom-right, bottom-left

	// Auto-layout container attributes. LayoutMode empty means manual
	// placement.
	LayoutMode            string   `json:"layoutMode,omitempty"`
	PaddingLeft           float64  `json:"paddingLeft,omitempty"`
	PaddingRight          float64  `json:"paddingRight,omitempty"`
	PaddingTop            float64  `json:"paddingTop,omitempty"`
	PaddingBottom         float64  `json:"paddingBottom,omitempty"`
	ItemSpacing           float64  `json:"itemSpacing,omitempty"`
	CounterAxisSpacing    *float64 `json:"counterAxisSpacing,omitempty"`
	PrimaryAxisSizingMode string   `json:"primaryAxisSizingMode,omitempty"`
	CounterAxisSizingMode string   `json:"counterAxisSizingMode,omitempty"`
	PrimaryAxisAlignItems string   `json:"primaryAxisAlignItems,omitempty"`
	CounterAxisAlignItems string   `json:"counterAxisAlignItems,omitempty"`

	// Auto-layout participation attributes of a child.
	LayoutGrow  *float64 `json:"layoutGrow,omitempty"`
	LayoutAlign string   `json:"layoutAlign,omitempty"`

	// Text content and style.
	Characters string     `json:"characters,omitempty"`
	Style      *TypeStyle `json:"style,omitempty"`

	ComponentPropertyDefinitions map[string]ComponentPropertyDefinition `json:"componentPropertyDefinitions,omitempty"`

	// VectorMarkup is raw SVG used as the import fallback for vector-like
	// kinds whose geometry the schema does not carry.
	VectorMarkup string `json:"vectorMarkup,omitempty"`
}

// Count returns the number of nodes in the subtree rooted at n, including n.
func (n *Node) Count() int {
	if n == nil {
		return 0
	}
	total := 1
	for _, c := range n.Children {
		total += c.Count()
	}
	return total
}

// Snapshot is a serialized document: one root node plus export metadata.
type Snapshot struct {
	SchemaVersion int    `json:"schemaVersion,omitempty"`
	Name          string `json:"name,omitempty"`
	Document      *Node  `json:"document"`
}
