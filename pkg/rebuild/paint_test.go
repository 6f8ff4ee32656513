package rebuild

import (
	"math"
	"testing"

	"github.com/cris-achiardi/figma-plugins-sub000/pkg/host"
	"github.com/cris-achiardi/figma-plugins-sub000/pkg/snapshot"
)

func TestGradientTransform(t *testing.T) {
	tests := []struct {
		name string
		a, b snapshot.Vec
		want host.Transform
	}{
		{
			name: "horizontal",
			a:    snapshot.Vec{X: 0, Y: 0.5},
			b:    snapshot.Vec{X: 1, Y: 0.5},
			want: host.Transform{{1, 0, 0}, {0, 1, 0.5}},
		},
		{
			name: "vertical",
			a:    snapshot.Vec{X: 0.5, Y: 0},
			b:    snapshot.Vec{X: 0.5, Y: 1},
			want: host.Transform{{0, 1, 0.5}, {-1, 0, 0}},
		},
		{
			name: "diagonal normalized",
			a:    snapshot.Vec{X: 0, Y: 0},
			b:    snapshot.Vec{X: 3, Y: 4},
			want: host.Transform{{0.6, 0.8, 0}, {-0.8, 0.6, 0}},
		},
		{
			name: "coincident handles keep identity rotation",
			a:    snapshot.Vec{X: 0.5, Y: 0.5},
			b:    snapshot.Vec{X: 0.5, Y: 0.5},
			want: host.Transform{{1, 0, 0.5}, {0, 1, 0.5}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GradientTransform(tt.a, tt.b)
			for r := 0; r < 2; r++ {
				for c := 0; c < 3; c++ {
					if math.Abs(got[r][c]-tt.want[r][c]) > 1e-9 {
						t.Fatalf("GradientTransform()[%d][%d] = %v, want %v", r, c, got[r][c], tt.want[r][c])
					}
				}
			}
		})
	}
}

func TestConvertEffects(t *testing.T) {
	effects := []snapshot.Effect{
		{
			Type:   snapshot.EffectDropShadow,
			Radius: fptr(10),
			Spread: fptr(2),
			Color:  &snapshot.Color{A: 0.5},
			Offset: &snapshot.Vec{X: 0, Y: 4},
		},
		{Type: snapshot.EffectInnerShadow},
		{Type: snapshot.EffectLayerBlur, Visible: bptr(false)},
		{Type: "GLOW"},
	}

	got := convertEffects(effects)
	if len(got) != 3 {
		t.Fatalf("convertEffects() kept %d effects, want 3 (unknown dropped)", len(got))
	}

	drop := got[0]
	if drop.Radius != 10 || drop.Spread != 2 || drop.OffsetY != 4 {
		t.Errorf("drop shadow = %+v, want radius 10, spread 2, offsetY 4", drop)
	}
	if drop.Color.A != 0.5 {
		t.Errorf("drop shadow alpha = %v, want 0.5", drop.Color.A)
	}

	inner := got[1]
	if inner.Radius != defaultEffectRadius {
		t.Errorf("inner shadow radius = %v, want default %v", inner.Radius, float64(defaultEffectRadius))
	}
	if inner.Color.A != 0.25 {
		t.Errorf("inner shadow default alpha = %v, want 0.25", inner.Color.A)
	}

	if got[2].Visible {
		t.Error("hidden blur converted as visible")
	}
}

func TestConvertPaintsOpacityDefaults(t *testing.T) {
	b := &builder{warnings: &Warnings{}}
	paints := []snapshot.Paint{
		{Type: snapshot.PaintSolid, Color: &snapshot.Color{R: 1}},
		{Type: snapshot.PaintSolid, Color: &snapshot.Color{G: 1}, Opacity: fptr(0.3), Visible: bptr(false)},
	}

	got := b.convertPaints(paints, "Node")
	if len(got) != 2 {
		t.Fatalf("convertPaints() kept %d paints, want 2", len(got))
	}
	if !got[0].Visible || got[0].Opacity != 1 {
		t.Errorf("paint 0 = %+v, want visible with opacity 1", got[0])
	}
	if got[1].Visible || got[1].Opacity != 0.3 {
		t.Errorf("paint 1 = %+v, want hidden with opacity 0.3", got[1])
	}
}

func TestConvertGradientStops(t *testing.T) {
	b := &builder{warnings: &Warnings{}}
	paints := []snapshot.Paint{{
		Type: snapshot.PaintGradientLinear,
		GradientStops: []snapshot.ColorStop{
			{Position: 0, Color: snapshot.Color{R: 1, A: 1}},
			{Position: 1, Color: snapshot.Color{B: 1, A: 0.5}},
		},
		GradientHandlePositions: []snapshot.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}},
	}}

	got := b.convertPaints(paints, "Node")
	if len(got) != 1 {
		t.Fatalf("convertPaints() kept %d paints, want 1", len(got))
	}
	g := got[0]
	if len(g.GradientStops) != 2 {
		t.Fatalf("gradient has %d stops, want 2", len(g.GradientStops))
	}
	if g.GradientStops[1].Color.A != 0.5 {
		t.Errorf("stop 1 alpha = %v, want 0.5", g.GradientStops[1].Color.A)
	}
	if g.GradientTransform == (host.Transform{}) {
		t.Error("gradient transform not derived from handles")
	}
}
