package git

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/c3pm/internal/core/ports"
)

// NodeID is the unique identifier for the version control Graft node.
const NodeID graft.ID = "adapter.git"

func init() {
	graft.Register(graft.Node[ports.VersionControl]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.VersionControl, error) {
			return New(), nil
		},
	})
}
