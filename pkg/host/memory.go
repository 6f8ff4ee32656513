package host

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/cris-achiardi/figma-plugins-sub000/pkg/errors"
)

// Memory is an in-memory host environment. It implements Document,
// FontLoader, and Viewport with the same contracts as the real editor:
// groups cannot be empty, variant combination needs two participants, and
// fonts outside the configured set fail to load.
//
// Memory additionally records call counts (GroupCalls, CombineCalls,
// FontLoads) so tests can assert how the engine drove it.
type Memory struct {
	page *MemNode

	// available is the set of loadable fonts. A nil map means every font
	// resolves successfully.
	available map[FontName]bool

	centerX, centerY float64

	// Viewed collects the node IDs passed to ScrollAndZoomIntoView.
	Viewed []string

	GroupCalls   int
	CombineCalls int
	FontLoads    map[FontName]int
}

// MemoryConfig configures an in-memory host.
type MemoryConfig struct {
	// AvailableFonts restricts which fonts load successfully.
	// Leave nil to make every font available.
	AvailableFonts []FontName

	// ViewportX, ViewportY set the viewport focal point.
	ViewportX float64
	ViewportY float64
}

// NewMemory creates an empty in-memory host document.
func NewMemory(cfg MemoryConfig) *Memory {
	m := &Memory{
		page:      newMemNode("PAGE", "Page 1"),
		centerX:   cfg.ViewportX,
		centerY:   cfg.ViewportY,
		FontLoads: make(map[FontName]int),
	}
	if cfg.AvailableFonts != nil {
		m.available = make(map[FontName]bool, len(cfg.AvailableFonts))
		for _, f := range cfg.AvailableFonts {
			m.available[f] = true
		}
	}
	return m
}

// Env bundles the memory host into an Environment.
func (m *Memory) Env() Environment {
	return Environment{Doc: m, Fonts: m, View: m}
}

// Root returns the page node.
func (m *Memory) Root() Node { return m.page }

// CreateFrame creates an unparented frame node.
func (m *Memory) CreateFrame() FrameNode { return newMemNode("FRAME", "Frame") }

// CreateRectangle creates an unparented rectangle node.
func (m *Memory) CreateRectangle() Node { return newMemNode("RECTANGLE", "Rectangle") }

// CreateEllipse creates an unparented ellipse node.
func (m *Memory) CreateEllipse() Node { return newMemNode("ELLIPSE", "Ellipse") }

// CreateText creates an unparented text node.
func (m *Memory) CreateText() TextNode { return newMemNode("TEXT", "Text") }

// CreateComponent creates an unparented component node.
func (m *Memory) CreateComponent() FrameNode { return newMemNode("COMPONENT", "Component") }

// Group wraps children into a new group node under parent.
func (m *Memory) Group(children []Node, parent Node) (Node, error) {
	m.GroupCalls++
	if len(children) == 0 {
		return nil, errors.New(errors.ErrCodeHostRejected, "cannot create a group with no children")
	}
	g := newMemNode("GROUP", "Group")
	for _, c := range children {
		g.AppendChild(c)
	}
	parent.AppendChild(g)
	return g, nil
}

// CombineAsVariants bundles variant containers into one component set.
func (m *Memory) CombineAsVariants(variants []Node, parent Node) (FrameNode, error) {
	m.CombineCalls++
	if len(variants) < 2 {
		return nil, errors.New(errors.ErrCodeHostRejected, "variant combination requires at least 2 components, got %d", len(variants))
	}
	set := newMemNode("COMPONENT_SET", "Component set")
	for _, v := range variants {
		set.AppendChild(v)
	}
	parent.AppendChild(set)
	return set, nil
}

// ImportVector parses vector markup into an unparented wrapper frame with
// one vector child per drawable element. The parser is intentionally
// shallow: it recognizes path, rect, circle, ellipse, polygon, and line
// elements and ignores everything else.
func (m *Memory) ImportVector(markup string) (Node, error) {
	count := 0
	for _, tag := range []string{"<path", "<rect", "<circle", "<ellipse", "<polygon", "<line"} {
		count += strings.Count(markup, tag)
	}
	if count == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "vector markup has no drawable elements")
	}
	wrapper := newMemNode("FRAME", "Vector")
	for i := 0; i < count; i++ {
		v := newMemNode("VECTOR", fmt.Sprintf("Vector %d", i+1))
		wrapper.AppendChild(v)
	}
	return wrapper, nil
}

// LoadFont resolves a font against the configured available set.
func (m *Memory) LoadFont(ctx context.Context, name FontName) error {
	m.FontLoads[name]++
	if m.available == nil || m.available[name] {
		return nil
	}
	return errors.New(errors.ErrCodeFontUnavailable, "font %s %s is not available", name.Family, name.Style)
}

// Center returns the viewport focal point.
func (m *Memory) Center() (x, y float64) { return m.centerX, m.centerY }

// ScrollAndZoomIntoView records the framed node IDs.
func (m *Memory) ScrollAndZoomIntoView(ids []string) {
	m.Viewed = append(m.Viewed, ids...)
}

// =============================================================================
// MemNode - In-Memory Live Node
// =============================================================================

// MemNode is the concrete live node of the memory host. It records every
// property the engine assigns; tests and the exporter read them back.
type MemNode struct {
	id   string
	kind string
	name string

	visible   bool
	opacity   float64
	blendMode string

	x, y, w, h float64

	fills        []Paint
	strokes      []Paint
	strokeWeight float64
	strokeAlign  string
	effects      []Effect

	cornerRadius float64
	cornerRadii  *[4]float64

	layoutMode     string
	paddingTop     float64
	paddingRight   float64
	paddingBottom  float64
	paddingLeft    float64
	itemSpacing    float64
	counterSpacing float64
	primarySizing  string
	counterSizing  string
	primaryAlign   string
	counterAlign   string

	layoutGrow  float64
	layoutAlign string

	font          FontName
	characters    string
	fontSize      float64
	textAlign     string
	lineHeight    LineHeight
	letterSpacing float64
	decoration    string
	textCase      string
	autoResize    string

	parent   *MemNode
	children []Node
}

func newMemNode(kind, name string) *MemNode {
	return &MemNode{
		id:      uuid.NewString(),
		kind:    kind,
		name:    name,
		visible: true,
		opacity: 1,
	}
}

func (n *MemNode) ID() string { return n.id }
func (n *MemNode) Kind() string { return n.kind }
func (n *MemNode) Name() string { return n.name }

func (n *MemNode) SetName(name string) { n.name = name }
func (n *MemNode) SetVisible(visible bool) { n.visible = visible }
func (n *MemNode) SetOpacity(o float64) { n.opacity = o }
func (n *MemNode) SetBlendMode(mode string) { n.blendMode = mode }

func (n *MemNode) SetPosition(x, y float64) { n.x, n.y = x, y }
func (n *MemNode) Position() (x, y float64) { return n.x, n.y }
func (n *MemNode) Resize(w, h float64) { n.w, n.h = w, h }
func (n *MemNode) Size() (w, h float64) { return n.w, n.h }

func (n *MemNode) SetFills(fills []Paint) { n.fills = fills }
func (n *MemNode) SetStrokes(strokes []Paint) { n.strokes = strokes }
func (n *MemNode) SetStrokeWeight(w float64) { n.strokeWeight = w }
func (n *MemNode) SetStrokeAlign(align string) { n.strokeAlign = align }
func (n *MemNode) SetEffects(effects []Effect) { n.effects = effects }

func (n *MemNode) SetCornerRadius(r float64) { n.cornerRadius = r }
func (n *MemNode) SetCornerRadii(tl, tr, br, bl float64) {
	n.cornerRadii = &[4]float64{tl, tr, br, bl}
}

func (n *MemNode) SetLayoutGrow(grow float64) { n.layoutGrow = grow }
func (n *MemNode) SetLayoutAlign(align string) { n.layoutAlign = align }

func (n *MemNode) SetLayoutMode(mode string) { n.layoutMode = mode }
func (n *MemNode) SetPadding(top, right, bottom, left float64) {
	n.paddingTop, n.paddingRight, n.paddingBottom, n.paddingLeft = top, right, bottom, left
}
func (n *MemNode) SetItemSpacing(s float64) { n.itemSpacing = s }
func (n *MemNode) SetCounterAxisSpacing(s float64) { n.counterSpacing = s }
func (n *MemNode) SetPrimaryAxisSizingMode(mode string) { n.primarySizing = mode }
func (n *MemNode) SetCounterAxisSizingMode(mode string) { n.counterSizing = mode }
func (n *MemNode) SetPrimaryAxisAlignItems(align string) { n.primaryAlign = align }
func (n *MemNode) SetCounterAxisAlignItems(align string) { n.counterAlign = align }

func (n *MemNode) SetFontName(f FontName) { n.font = f }
func (n *MemNode) SetCharacters(chars string) { n.characters = chars }
func (n *MemNode) SetFontSize(size float64) { n.fontSize = size }
func (n *MemNode) SetTextAlignHorizontal(a string) { n.textAlign = a }
func (n *MemNode) SetLineHeight(lh LineHeight) { n.lineHeight = lh }
func (n *MemNode) SetLetterSpacing(s float64) { n.letterSpacing = s }
func (n *MemNode) SetTextDecoration(d string) { n.decoration = d }
func (n *MemNode) SetTextCase(c string) { n.textCase = c }
func (n *MemNode) SetTextAutoResize(mode string) { n.autoResize = mode }

// AppendChild attaches child to n, detaching it from its previous parent.
func (n *MemNode) AppendChild(child Node) {
	mc, ok := child.(*MemNode)
	if !ok {
		return
	}
	if mc.parent != nil {
		mc.parent.removeChild(mc)
	}
	mc.parent = n
	n.children = append(n.children, child)
}

// Children returns the ordered children of n.
func (n *MemNode) Children() []Node { return n.children }

func (n *MemNode) removeChild(child *MemNode) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

// Read-side accessors for tests and the exporter.

func (n *MemNode) Visible() bool { return n.visible }
func (n *MemNode) Opacity() float64 { return n.opacity }
func (n *MemNode) BlendMode() string { return n.blendMode }
func (n *MemNode) Fills() []Paint { return n.fills }
func (n *MemNode) Strokes() []Paint { return n.strokes }
func (n *MemNode) Effects() []Effect { return n.effects }
func (n *MemNode) Characters() string { return n.characters }
func (n *MemNode) Font() FontName { return n.font }
func (n *MemNode) LayoutMode() string { return n.layoutMode }
func (n *MemNode) CornerRadius() float64 { return n.cornerRadius }
func (n *MemNode) LayoutGrow() float64 { return n.layoutGrow }
func (n *MemNode) LayoutAlign() string { return n.layoutAlign }
