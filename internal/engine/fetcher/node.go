package fetcher

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/c3pm/internal/adapters/git"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/c3pm/internal/adapters/logger" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/c3pm/internal/core/ports"
)

// NodeID is the unique identifier for the fetcher Graft node.
const NodeID graft.ID = "engine.fetcher"

func init() {
	graft.Register(graft.Node[ports.Fetcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{git.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.Fetcher, error) {
			vcs, err := graft.Dep[ports.VersionControl](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(vcs, log), nil
		},
	})
}
