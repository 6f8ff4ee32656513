package rebuild

import (
	"math"

	"github.com/cris-achiardi/figma-plugins-sub000/pkg/host"
	"github.com/cris-achiardi/figma-plugins-sub000/pkg/snapshot"
)

// Defaults substituted for missing effect attributes.
const (
	defaultEffectRadius = 4
)

// convertPaints translates serialized fill or stroke descriptors into host
// paints. Image paints are dropped: a snapshot carries only an opaque image
// reference, never pixel data, so there is nothing to reconstruct. One
// warning is recorded per dropped image paint.
func (b *builder) convertPaints(paints []snapshot.Paint, owner string) []host.Paint {
	if len(paints) == 0 {
		return nil
	}
	out := make([]host.Paint, 0, len(paints))
	for _, p := range paints {
		switch {
		case p.Type == snapshot.PaintSolid:
			out = append(out, convertSolid(p))
		case p.Gradient():
			out = append(out, convertGradient(p))
		case p.Type == snapshot.PaintImage:
			b.warnings.Addf("Image fill on %q dropped: no pixel data in snapshot", owner)
		default:
			// Unknown paint kinds are dropped silently; the host could
			// not represent them anyway.
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func convertSolid(p snapshot.Paint) host.Paint {
	out := host.Paint{
		Type:    snapshot.PaintSolid,
		Visible: paintVisible(p),
		Opacity: paintOpacity(p),
	}
	if p.Color != nil {
		out.Color = host.Color{R: p.Color.R, G: p.Color.G, B: p.Color.B}
	}
	return out
}

func convertGradient(p snapshot.Paint) host.Paint {
	out := host.Paint{
		Type:              p.Type,
		Visible:           paintVisible(p),
		Opacity:           paintOpacity(p),
		GradientTransform: host.Identity(),
	}
	for _, s := range p.GradientStops {
		out.GradientStops = append(out.GradientStops, host.GradientStop{
			Position: s.Position,
			Color:    host.RGBA{R: s.Color.R, G: s.Color.G, B: s.Color.B, A: s.Color.A},
		})
	}
	if len(p.GradientHandlePositions) >= 2 {
		out.GradientTransform = GradientTransform(
			p.GradientHandlePositions[0], p.GradientHandlePositions[1])
	}
	return out
}

// GradientTransform derives a 2D affine transform from the first two
// gradient handles. The unit direction vector forms the first basis row,
// its perpendicular the second, and the first handle's coordinates the
// translation.
//
// This is an approximation: the host's native gradient geometry carries a
// third handle encoding non-uniform scale and skew, which a two-handle
// snapshot cannot represent.
func GradientTransform(a, b snapshot.Vec) host.Transform {
	dx := b.X - a.X
	dy := b.Y - a.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		// Degenerate handles: keep the identity rotation, still translate.
		dx, dy = 1, 0
	} else {
		dx /= length
		dy /= length
	}
	return host.Transform{
		{dx, dy, a.X},
		{-dy, dx, a.Y},
	}
}

// convertEffects translates serialized effects, substituting numeric
// defaults for missing radius, spread, and offset. Unrecognized effect
// kinds are dropped silently.
func convertEffects(effects []snapshot.Effect) []host.Effect {
	if len(effects) == 0 {
		return nil
	}
	out := make([]host.Effect, 0, len(effects))
	for _, e := range effects {
		switch e.Type {
		case snapshot.EffectDropShadow, snapshot.EffectInnerShadow:
			he := host.Effect{
				Type:    e.Type,
				Visible: effectVisible(e),
				Radius:  floatOr(e.Radius, defaultEffectRadius),
				Spread:  floatOr(e.Spread, 0),
			}
			if e.Color != nil {
				he.Color = host.RGBA{R: e.Color.R, G: e.Color.G, B: e.Color.B, A: e.Color.A}
			} else {
				he.Color = host.RGBA{A: 0.25}
			}
			if e.Offset != nil {
				he.OffsetX, he.OffsetY = e.Offset.X, e.Offset.Y
			}
			out = append(out, he)
		case snapshot.EffectLayerBlur, snapshot.EffectBackgroundBlur:
			out = append(out, host.Effect{
				Type:    e.Type,
				Visible: effectVisible(e),
				Radius:  floatOr(e.Radius, defaultEffectRadius),
			})
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func paintVisible(p snapshot.Paint) bool {
	return p.Visible == nil || *p.Visible
}

func paintOpacity(p snapshot.Paint) float64 {
	if p.Opacity == nil {
		return 1
	}
	return *p.Opacity
}

func effectVisible(e snapshot.Effect) bool {
	return e.Visible == nil || *e.Visible
}

func floatOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}
