package rebuild

import (
	"context"

	"github.com/cris-achiardi/figma-plugins-sub000/pkg/host"
	"github.com/cris-achiardi/figma-plugins-sub000/pkg/observability"
)

// DefaultFallbackFont is the font every unresolvable (family, style) pair
// degrades to.
var DefaultFallbackFont = host.FontName{Family: "Inter", Style: "Regular"}

// StyleForWeight maps a numeric font weight to a style name using fixed
// buckets.
func StyleForWeight(weight float64) string {
	switch {
	case weight <= 100:
		return "Thin"
	case weight <= 200:
		return "ExtraLight"
	case weight <= 300:
		return "Light"
	case weight <= 400:
		return "Regular"
	case weight <= 500:
		return "Medium"
	case weight <= 600:
		return "SemiBold"
	case weight <= 700:
		return "Bold"
	case weight <= 800:
		return "ExtraBold"
	default:
		return "Black"
	}
}

// fontCache memoizes font resolution for the duration of one reconstruction
// call. It is created fresh per call and never shared, so repeated runs
// against different documents cannot interfere.
type fontCache struct {
	loaded map[host.FontName]bool
	failed map[host.FontName]bool
}

func newFontCache() *fontCache {
	return &fontCache{
		loaded: make(map[host.FontName]bool),
		failed: make(map[host.FontName]bool),
	}
}

// resolveFont loads the font for (family, weight), falling back to the
// configured fallback on failure. Exactly one warning is recorded per
// distinct failed (family, style) pair per call; repeat references hit the
// cache and stay silent.
func (b *builder) resolveFont(ctx context.Context, family string, weight float64) host.FontName {
	name := host.FontName{Family: family, Style: StyleForWeight(weight)}
	if family == "" {
		name = b.fallback
	}

	if b.fonts.loaded[name] {
		return name
	}
	if b.fonts.failed[name] {
		return b.fallbackFont(ctx)
	}

	if err := b.env.Fonts.LoadFont(ctx, name); err != nil {
		b.fonts.failed[name] = true
		b.warnings.Addf("Font %q unavailable - using %s %s",
			name.Family+" "+name.Style, b.fallback.Family, b.fallback.Style)
		observability.Rebuild().OnFontFallback(ctx, name.Family, name.Style)
		return b.fallbackFont(ctx)
	}

	b.fonts.loaded[name] = true
	return name
}

// fallbackFont loads the fallback once per call. A fallback that itself
// fails to load is still returned; text assignment then degrades at the
// host's discretion rather than aborting the node.
func (b *builder) fallbackFont(ctx context.Context) host.FontName {
	if b.fonts.loaded[b.fallback] || b.fonts.failed[b.fallback] {
		return b.fallback
	}
	if err := b.env.Fonts.LoadFont(ctx, b.fallback); err != nil {
		b.fonts.failed[b.fallback] = true
		b.warnings.Addf("Fallback font %s %s unavailable", b.fallback.Family, b.fallback.Style)
		return b.fallback
	}
	b.fonts.loaded[b.fallback] = true
	return b.fallback
}
