package rebuild

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cris-achiardi/figma-plugins-sub000/pkg/errors"
	"github.com/cris-achiardi/figma-plugins-sub000/pkg/host"
	"github.com/cris-achiardi/figma-plugins-sub000/pkg/observability"
	"github.com/cris-achiardi/figma-plugins-sub000/pkg/snapshot"
)

// DefaultYieldEvery is the number of nodes processed between cooperative
// yields.
const DefaultYieldEvery = 50

// Options configures one reconstruction run. The zero value is usable.
type Options struct {
	// RootLabel renames the reconstructed root node. Empty keeps the
	// snapshot's own root name.
	RootLabel string

	// OnProgress receives a human-readable message and a completion
	// percentage in [0, 100] as nodes are processed. May be nil.
	OnProgress func(message string, percent float64)

	// Logger receives structured progress and summary records. Nil
	// discards them.
	Logger *log.Logger

	// YieldEvery overrides the cooperative-yield cadence. Zero or
	// negative selects DefaultYieldEvery.
	YieldEvery int

	// FallbackFont replaces unresolvable fonts. The zero value selects
	// DefaultFallbackFont.
	FallbackFont host.FontName
}

// Result reports the outcome of a successful reconstruction.
type Result struct {
	// RootNodeID identifies the reconstructed root inside the host
	// document.
	RootNodeID string `json:"rootNodeId"`

	// Warnings lists every recoverable problem encountered, in encounter
	// order. An empty slice means a clean rebuild.
	Warnings []string `json:"warnings"`
}

// Rebuild reconstructs the snapshot's node tree inside the host document
// and centers the result in the viewport.
//
// Only structural defects in the snapshot or a rejected root are fatal.
// Every per-node problem degrades to a warning on the Result, so a single
// broken node never loses the rest of the tree.
func Rebuild(ctx context.Context, env host.Environment, snap *snapshot.Snapshot, opts Options) (*Result, error) {
	if env.Doc == nil || env.Fonts == nil || env.View == nil {
		return nil, errors.New(errors.ErrCodeInvalidOptions, "host environment is incomplete")
	}
	if err := snap.Validate(); err != nil {
		return nil, err
	}

	if opts.YieldEvery <= 0 {
		opts.YieldEvery = DefaultYieldEvery
	}
	if opts.FallbackFont == (host.FontName{}) {
		opts.FallbackFont = DefaultFallbackFont
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	total := snap.Document.Count()
	start := time.Now()
	observability.Rebuild().OnRebuildStart(ctx, total)

	b := newBuilder(env, opts, total)
	root := b.buildNode(ctx, snap.Document, env.Doc.Root(), nil)
	if root == nil {
		err := errors.New(errors.ErrCodeInvalidSnapshot, "root node could not be reconstructed")
		observability.Rebuild().OnRebuildComplete(ctx, total, b.warnings.Len(), time.Since(start), err)
		return nil, err
	}

	if opts.RootLabel != "" {
		root.SetName(opts.RootLabel)
	}

	// Center the rebuilt tree on the current viewport and bring it into
	// view.
	cx, cy := env.View.Center()
	w, h := root.Size()
	root.SetPosition(cx-w/2, cy-h/2)
	env.View.ScrollAndZoomIntoView([]string{root.ID()})

	if opts.OnProgress != nil {
		opts.OnProgress("Done", 100)
	}
	opts.Logger.Info("snapshot rebuilt",
		"nodes", total,
		"warnings", b.warnings.Len(),
		"duration", time.Since(start).Round(time.Millisecond))
	observability.Rebuild().OnRebuildComplete(ctx, total, b.warnings.Len(), time.Since(start), nil)

	warnings := b.warnings.List()
	if warnings == nil {
		warnings = []string{}
	}
	return &Result{RootNodeID: root.ID(), Warnings: warnings}, nil
}
