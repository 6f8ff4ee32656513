package rebuild

import (
	"context"
	"strings"
	"testing"

	"github.com/cris-achiardi/figma-plugins-sub000/pkg/host"
	"github.com/cris-achiardi/figma-plugins-sub000/pkg/snapshot"
)

func variant(name string, bbox *snapshot.Rect) *snapshot.Node {
	return &snapshot.Node{
		Name:                name,
		Type:                snapshot.KindComponent,
		AbsoluteBoundingBox: bbox,
	}
}

func TestRebuildComponentSet(t *testing.T) {
	t.Run("manual placement with known boxes", func(t *testing.T) {
		mem := host.NewMemory(host.MemoryConfig{})
		snap := &snapshot.Snapshot{Document: &snapshot.Node{
			Name:                "Button",
			Type:                snapshot.KindComponentSet,
			AbsoluteBoundingBox: rect(100, 100, 320, 120),
			Children: []*snapshot.Node{
				variant("State=Default", rect(120, 120, 80, 80)),
				variant("State=Hover", rect(220, 120, 80, 80)),
				variant("State=Pressed", rect(320, 120, 80, 80)),
			},
		}}

		res, err := Rebuild(context.Background(), mem.Env(), snap, Options{})
		if err != nil {
			t.Fatalf("Rebuild() error = %v", err)
		}
		if len(res.Warnings) != 0 {
			t.Fatalf("warnings = %v, want none", res.Warnings)
		}
		if mem.CombineCalls != 1 {
			t.Errorf("CombineCalls = %d, want exactly 1", mem.CombineCalls)
		}

		set := childByName(t, mem.Root(), "Button")
		if set.Kind() != "COMPONENT_SET" {
			t.Fatalf("set kind = %q, want COMPONENT_SET", set.Kind())
		}
		if got := len(set.Children()); got != 3 {
			t.Fatalf("set has %d variants, want 3", got)
		}
		if set.LayoutMode() != "NONE" {
			t.Errorf("set layout mode = %q, want NONE", set.LayoutMode())
		}

		// Original spacing preserved, normalized so the first variant sits
		// at the inset.
		wantX := []float64{20, 120, 220}
		for i, c := range set.Children() {
			x, y := c.(*host.MemNode).Position()
			if x != wantX[i] || y != 20 {
				t.Errorf("variant %d position = (%v, %v), want (%v, 20)", i, x, y, wantX[i])
			}
		}
		if w, h := set.Size(); w != 320 || h != 120 {
			t.Errorf("set size = (%v, %v), want (320, 120)", w, h)
		}
	})

	t.Run("horizontal flow without boxes", func(t *testing.T) {
		mem := host.NewMemory(host.MemoryConfig{})
		snap := &snapshot.Snapshot{Document: &snapshot.Node{
			Name:                "Button",
			Type:                snapshot.KindComponentSet,
			AbsoluteBoundingBox: rect(0, 0, 200, 100),
			Children: []*snapshot.Node{
				variant("State=Default", rect(0, 0, 80, 80)),
				variant("State=Hover", nil),
			},
		}}

		res, err := Rebuild(context.Background(), mem.Env(), snap, Options{})
		if err != nil {
			t.Fatalf("Rebuild() error = %v", err)
		}
		var found bool
		for _, w := range res.Warnings {
			if strings.Contains(w, "horizontal flow") {
				found = true
			}
		}
		if !found {
			t.Fatalf("warnings = %v, want a horizontal-flow fallback warning", res.Warnings)
		}

		set := childByName(t, mem.Root(), "Button")
		if set.LayoutMode() != "HORIZONTAL" {
			t.Errorf("set layout mode = %q, want HORIZONTAL", set.LayoutMode())
		}
	})

	t.Run("single variant renamed", func(t *testing.T) {
		mem := host.NewMemory(host.MemoryConfig{})
		snap := &snapshot.Snapshot{Document: &snapshot.Node{
			Name:                "Button",
			Type:                snapshot.KindComponentSet,
			AbsoluteBoundingBox: rect(0, 0, 100, 100),
			Children: []*snapshot.Node{
				variant("State=Default", rect(0, 0, 80, 80)),
			},
		}}

		res, err := Rebuild(context.Background(), mem.Env(), snap, Options{})
		if err != nil {
			t.Fatalf("Rebuild() error = %v", err)
		}
		if len(res.Warnings) != 0 {
			t.Fatalf("warnings = %v, want none", res.Warnings)
		}
		if mem.CombineCalls != 0 {
			t.Errorf("CombineCalls = %d, want 0", mem.CombineCalls)
		}
		only := childByName(t, mem.Root(), "Button")
		if only.Kind() != "COMPONENT" {
			t.Errorf("node kind = %q, want the variant itself (COMPONENT)", only.Kind())
		}
	})

	t.Run("empty set becomes frame", func(t *testing.T) {
		mem := host.NewMemory(host.MemoryConfig{})
		snap := &snapshot.Snapshot{Document: &snapshot.Node{
			Name:                "Button",
			Type:                snapshot.KindComponentSet,
			AbsoluteBoundingBox: rect(0, 0, 100, 100),
		}}

		res, err := Rebuild(context.Background(), mem.Env(), snap, Options{})
		if err != nil {
			t.Fatalf("Rebuild() error = %v", err)
		}
		if mem.CombineCalls != 0 {
			t.Errorf("CombineCalls = %d, want 0", mem.CombineCalls)
		}
		if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "no buildable variants") {
			t.Fatalf("warnings = %v, want one empty-set warning", res.Warnings)
		}
		f := childByName(t, mem.Root(), "Button")
		if f.Kind() != "FRAME" {
			t.Errorf("empty set kind = %q, want FRAME", f.Kind())
		}
	})
}
