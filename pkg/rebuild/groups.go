package rebuild

import (
	"context"

	"github.com/cris-achiardi/figma-plugins-sub000/pkg/host"
	"github.com/cris-achiardi/figma-plugins-sub000/pkg/snapshot"
)

// buildGroup reconstructs a group bottom-up. The host can only create a
// group around nodes that already exist, so the children are built first
// against the group's intended parent and then wrapped. Their offsets are
// computed against the group's own bounding box, which becomes the local
// origin once the wrap happens.
//
// A group whose children all fail to build cannot be created at all and
// is omitted from the tree with one warning.
func (b *builder) buildGroup(ctx context.Context, sn *snapshot.Node, parent host.Node, parentSn *snapshot.Node) host.Node {
	var built []host.Node
	for _, child := range sn.Children {
		n := b.buildNode(ctx, child, parent, sn)
		if n == nil {
			continue
		}
		placeChild(n, child, sn)
		built = append(built, n)
	}

	if len(built) == 0 {
		b.warnings.Addf("Group %q has no buildable children: skipped", sn.Name)
		return nil
	}

	g, err := b.env.Doc.Group(built, parent)
	if err != nil {
		b.warnings.Addf("Grouping failed for %q: %s", sn.Name, err)
		// The children survive as direct siblings under the parent.
		return nil
	}
	applyIdentity(g, sn)
	return g
}
