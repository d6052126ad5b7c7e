package bundle

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/prunelock/internal/core/ports"
)

// NodeID is the unique identifier for the bundle reader Graft node.
const NodeID graft.ID = "adapter.bundle_reader"

func init() {
	graft.Register(graft.Node[ports.BundleReader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{},
		Run: func(_ context.Context) (ports.BundleReader, error) {
			return NewReader(), nil
		},
	})
}
