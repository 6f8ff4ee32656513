package rebuild

import (
	"context"
	"fmt"
	"runtime"

	"github.com/charmbracelet/log"

	"github.com/cris-achiardi/figma-plugins-sub000/pkg/host"
	"github.com/cris-achiardi/figma-plugins-sub000/pkg/observability"
	"github.com/cris-achiardi/figma-plugins-sub000/pkg/snapshot"
)

// buildFunc constructs the live node for one snapshot node under parent.
// parentSn is the snapshot node of the live parent, used for relative
// positioning; it is nil at the root. A nil return means the node produced
// nothing and was skipped.
type buildFunc func(ctx context.Context, sn *snapshot.Node, parent host.Node, parentSn *snapshot.Node) host.Node

// builder holds the call-scoped state of one reconstruction run. A fresh
// builder is created per top-level call, so repeated or interleaved
// invocations never share the yield counter, the font cache, or the
// warnings list.
type builder struct {
	env      host.Environment
	warnings *Warnings
	fonts    *fontCache
	fallback host.FontName
	logger   *log.Logger

	yieldEvery int
	processed  int
	total      int
	onProgress func(message string, percent float64)

	dispatch map[snapshot.NodeKind]buildFunc
}

func newBuilder(env host.Environment, opts Options, total int) *builder {
	b := &builder{
		env:        env,
		warnings:   &Warnings{},
		fonts:      newFontCache(),
		fallback:   opts.FallbackFont,
		logger:     opts.Logger,
		yieldEvery: opts.YieldEvery,
		total:      total,
		onProgress: opts.OnProgress,
	}
	b.dispatch = map[snapshot.NodeKind]buildFunc{
		snapshot.KindFrame:        b.buildFrame,
		snapshot.KindRectangle:    b.buildRectangle,
		snapshot.KindEllipse:      b.buildEllipse,
		snapshot.KindText:         b.buildText,
		snapshot.KindGroup:        b.buildGroup,
		snapshot.KindComponent:    b.buildComponent,
		snapshot.KindComponentSet: b.buildComponentSet,
		snapshot.KindInstance:     b.buildInstance,
		snapshot.KindVector:       b.buildVectorLike,
		snapshot.KindStar:         b.buildVectorLike,
		snapshot.KindPolygon:      b.buildVectorLike,
		snapshot.KindLine:         b.buildVectorLike,
		snapshot.KindBoolean:      b.buildVectorLike,
	}
	return b
}

// buildNode dispatches one snapshot node to its handler. Unknown kinds are
// skipped with a warning; no per-node problem ever propagates as an error.
func (b *builder) buildNode(ctx context.Context, sn *snapshot.Node, parent host.Node, parentSn *snapshot.Node) host.Node {
	b.step(ctx, sn)

	h, ok := b.dispatch[sn.Type]
	if !ok {
		b.warnings.Addf("Unsupported node kind %s: skipped %q", sn.Type, sn.Name)
		observability.Rebuild().OnNodeSkipped(ctx, string(sn.Type))
		return nil
	}
	return h(ctx, sn, parent, parentSn)
}

// step advances the processed-node counter, reports progress, and yields
// control after every yieldEvery nodes so large trees do not starve the
// host's UI thread.
func (b *builder) step(ctx context.Context, sn *snapshot.Node) {
	b.processed++
	if b.onProgress != nil && b.total > 0 {
		pct := float64(b.processed) / float64(b.total) * 100
		if pct > 100 {
			pct = 100
		}
		b.onProgress(fmt.Sprintf("Rebuilding %s", sn.Name), pct)
	}
	if b.yieldEvery > 0 && b.processed%b.yieldEvery == 0 {
		runtime.Gosched()
	}
}

// buildChildren builds and places all children of sn under parent.
func (b *builder) buildChildren(ctx context.Context, sn *snapshot.Node, parent host.Node) {
	for _, child := range sn.Children {
		built := b.buildNode(ctx, child, parent, sn)
		if built != nil {
			placeChild(built, child, sn)
		}
	}
}

// placeChild positions a newly built child. Inside an auto-layout parent
// the child receives layout-participation properties and no manual
// coordinates; otherwise its local position is the difference between its
// own and its parent's original bounding-box origins.
func placeChild(n host.Node, sn, parentSn *snapshot.Node) {
	if parentSn == nil {
		return
	}
	if validLayoutModes[parentSn.LayoutMode] {
		applyLayoutParticipation(n, sn)
		return
	}
	if sn.AbsoluteBoundingBox != nil && parentSn.AbsoluteBoundingBox != nil {
		x, y := relativeOffset(sn.AbsoluteBoundingBox, parentSn.AbsoluteBoundingBox)
		n.SetPosition(x, y)
	}
}

// =============================================================================
// Kind Handlers
// =============================================================================

func (b *builder) buildFrame(ctx context.Context, sn *snapshot.Node, parent host.Node, parentSn *snapshot.Node) host.Node {
	f := b.env.Doc.CreateFrame()
	parent.AppendChild(f)
	b.applyCommon(f, sn)
	applyCorners(f, sn)
	applyLayout(f, sn)
	b.buildChildren(ctx, sn, f)
	return f
}

func (b *builder) buildComponent(ctx context.Context, sn *snapshot.Node, parent host.Node, parentSn *snapshot.Node) host.Node {
	c := b.env.Doc.CreateComponent()
	parent.AppendChild(c)
	b.applyCommon(c, sn)
	applyCorners(c, sn)
	applyLayout(c, sn)
	b.buildChildren(ctx, sn, c)
	return c
}

// buildInstance downgrades an instance to a plain frame. The snapshot
// carries no shared component definition to attach the instance to, so the
// reference cannot be recreated.
func (b *builder) buildInstance(ctx context.Context, sn *snapshot.Node, parent host.Node, parentSn *snapshot.Node) host.Node {
	b.warnings.Addf("Instance %q rebuilt as frame: component reference cannot be recreated", sn.Name)
	return b.buildFrame(ctx, sn, parent, parentSn)
}

func (b *builder) buildRectangle(ctx context.Context, sn *snapshot.Node, parent host.Node, parentSn *snapshot.Node) host.Node {
	r := b.env.Doc.CreateRectangle()
	parent.AppendChild(r)
	b.applyCommon(r, sn)
	applyCorners(r, sn)
	return r
}

func (b *builder) buildEllipse(ctx context.Context, sn *snapshot.Node, parent host.Node, parentSn *snapshot.Node) host.Node {
	e := b.env.Doc.CreateEllipse()
	parent.AppendChild(e)
	b.applyCommon(e, sn)
	return e
}

func (b *builder) buildText(ctx context.Context, sn *snapshot.Node, parent host.Node, parentSn *snapshot.Node) host.Node {
	t := b.env.Doc.CreateText()
	parent.AppendChild(t)
	b.applyCommon(t, sn)
	b.applyText(ctx, t, sn)
	return t
}

// buildVectorLike reconstructs the vector shape kinds. With vector markup
// present the shape goes through the host's vector import; a single-child
// wrapper is flattened into its inner node. Without markup a
// BooleanOperation degrades to a frame (its operands still build as
// children) and every other shape becomes an opaque placeholder rectangle
// sized to the original bounding box.
func (b *builder) buildVectorLike(ctx context.Context, sn *snapshot.Node, parent host.Node, parentSn *snapshot.Node) host.Node {
	if sn.VectorMarkup != "" {
		if n := b.importVector(ctx, sn, parent); n != nil {
			return n
		}
	}

	if sn.Type == snapshot.KindBoolean {
		b.warnings.Addf("Boolean operation %q has no vector markup: rebuilt as frame", sn.Name)
		return b.buildFrame(ctx, sn, parent, parentSn)
	}

	b.warnings.Addf("Vector shape %q has no vector markup: using placeholder rectangle", sn.Name)
	r := b.env.Doc.CreateRectangle()
	parent.AppendChild(r)
	b.applyCommon(r, sn)
	if len(sn.Fills) == 0 {
		r.SetFills([]host.Paint{{
			Type:    snapshot.PaintSolid,
			Visible: true,
			Opacity: 1,
			Color:   host.Color{R: 0.85, G: 0.85, B: 0.85},
		}})
	}
	return r
}

func (b *builder) importVector(ctx context.Context, sn *snapshot.Node, parent host.Node) host.Node {
	imported, err := b.env.Doc.ImportVector(sn.VectorMarkup)
	if err != nil {
		b.warnings.Addf("Vector import failed for %q: %s", sn.Name, err)
		return nil
	}

	// Flatten a single-child wrapper into its inner node.
	if children := imported.Children(); len(children) == 1 {
		imported = children[0]
	}

	parent.AppendChild(imported)
	b.applyCommon(imported, sn)
	return imported
}
