package detector

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/c3pm/internal/core/domain"
)

// ToolchainNodeID is the unique identifier for the toolchain Graft node.
const ToolchainNodeID graft.ID = "adapter.detector.toolchain"

func init() {
	graft.Register(graft.Node[domain.Toolchain]{
		ID:        ToolchainNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (domain.Toolchain, error) {
			return DetectToolchain(nil), nil
		},
	})
}
