// Package host defines the collaborator interfaces the reconstruction engine
// drives: node creation, font loading, vector import, and viewport control.
//
// The real implementation lives inside the editor the plugin runs in; this
// package also ships an in-memory implementation ([NewMemory]) with identical
// semantics, used by the CLI, the API server, and tests. The engine only ever
// sees the interfaces, so the two are interchangeable.
package host

import "context"

// FontName is a loadable (family, style) pair.
type FontName struct {
	Family string `json:"family"`
	Style  string `json:"style"`
}

// Color is an RGB color with components in [0, 1].
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// RGBA is a color with an alpha channel.
type RGBA struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// GradientStop is one stop of a gradient paint.
type GradientStop struct {
	Position float64 `json:"position"`
	Color    RGBA    `json:"color"`
}

// Transform is a 2x3 affine transform in row-major order.
type Transform [2][3]float64

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{{1, 0, 0}, {0, 1, 0}}
}

// Paint is a host-side fill or stroke layer.
type Paint struct {
	Type    string  `json:"type"`
	Visible bool    `json:"visible"`
	Opacity float64 `json:"opacity"`

	Color Color `json:"color,omitempty"`

	GradientStops     []GradientStop `json:"gradientStops,omitempty"`
	GradientTransform Transform      `json:"gradientTransform,omitempty"`
}

// Effect is a host-side visual effect.
type Effect struct {
	Type    string  `json:"type"`
	Visible bool    `json:"visible"`
	Radius  float64 `json:"radius"`
	Spread  float64 `json:"spread,omitempty"`
	Color   RGBA    `json:"color,omitempty"`
	OffsetX float64 `json:"offsetX,omitempty"`
	OffsetY float64 `json:"offsetY,omitempty"`
}

// LineHeight is a text line height in either absolute pixels or percent.
type LineHeight struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"` // "PIXELS" or "PERCENT"
}

// Node is a live node in the host document. Setters never fail: the engine
// validates enum values against their legal sets before assignment, so a
// host implementation can store what it is given.
type Node interface {
	ID() string
	Kind() string
	Name() string

	SetName(name string)
	SetVisible(visible bool)
	SetOpacity(opacity float64)
	SetBlendMode(mode string)

	SetPosition(x, y float64)
	Position() (x, y float64)
	Resize(w, h float64)
	Size() (w, h float64)

	SetFills(fills []Paint)
	SetStrokes(strokes []Paint)
	SetStrokeWeight(weight float64)
	SetStrokeAlign(align string)
	SetEffects(effects []Effect)

	SetCornerRadius(radius float64)
	SetCornerRadii(topLeft, topRight, bottomRight, bottomLeft float64)

	// Auto-layout participation of this node inside an auto-layout parent.
	SetLayoutGrow(grow float64)
	SetLayoutAlign(align string)

	AppendChild(child Node)
	Children() []Node
}

// FrameNode is a container node that can own an auto-layout.
type FrameNode interface {
	Node

	SetLayoutMode(mode string)
	SetPadding(top, right, bottom, left float64)
	SetItemSpacing(spacing float64)
	SetCounterAxisSpacing(spacing float64)
	SetPrimaryAxisSizingMode(mode string)
	SetCounterAxisSizingMode(mode string)
	SetPrimaryAxisAlignItems(align string)
	SetCounterAxisAlignItems(align string)
}

// TextNode is a node carrying styled text. SetCharacters must only be called
// after the node's font has been loaded through the document's FontLoader.
type TextNode interface {
	Node

	SetFontName(name FontName)
	SetCharacters(chars string)
	SetFontSize(size float64)
	SetTextAlignHorizontal(align string)
	SetLineHeight(lh LineHeight)
	SetLetterSpacing(spacing float64)
	SetTextDecoration(decoration string)
	SetTextCase(textCase string)
	SetTextAutoResize(mode string)
}

// Document is the node-creation surface of the host.
type Document interface {
	CreateFrame() FrameNode
	CreateRectangle() Node
	CreateEllipse() Node
	CreateText() TextNode
	CreateComponent() FrameNode

	// Group wraps already-placed children into a new group node under
	// parent. Groups cannot be empty.
	Group(children []Node, parent Node) (Node, error)

	// CombineAsVariants bundles standalone variant containers into one
	// variant group under parent. Requires at least two variants.
	CombineAsVariants(variants []Node, parent Node) (FrameNode, error)

	// ImportVector parses raw vector markup into an unparented node tree.
	ImportVector(markup string) (Node, error)

	// Root is the container new top-level nodes are appended to.
	Root() Node
}

// FontLoader resolves and loads fonts asynchronously.
type FontLoader interface {
	// LoadFont makes the font available for text assignment. It returns an
	// error if the (family, style) pair cannot be resolved.
	LoadFont(ctx context.Context, name FontName) error
}

// Viewport controls what the user currently sees.
type Viewport interface {
	// Center is the current focal point in document coordinates.
	Center() (x, y float64)

	// ScrollAndZoomIntoView frames the given nodes in the viewport and
	// selects them.
	ScrollAndZoomIntoView(ids []string)
}

// Environment bundles the host collaborators the engine consumes.
type Environment struct {
	Doc   Document
	Fonts FontLoader
	View  Viewport
}
