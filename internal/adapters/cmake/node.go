package cmake

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/c3pm/internal/core/ports"
)

// NodeID is the unique identifier for the build system Graft node.
const NodeID graft.ID = "adapter.cmake"

func init() {
	graft.Register(graft.Node[ports.BuildSystem]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.BuildSystem, error) {
			return NewRunner(""), nil
		},
	})
}
