package resolver

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/c3pm/internal/adapters/config"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/c3pm/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/c3pm/internal/core/ports"
	"go.trai.ch/c3pm/internal/engine/fetcher"
)

// NodeID is the unique identifier for the resolver Graft node.
const NodeID graft.ID = "engine.resolver"

func init() {
	graft.Register(graft.Node[ports.DependencyResolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.ManifestReaderNodeID,
			fetcher.NodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (ports.DependencyResolver, error) {
			manifests, err := graft.Dep[ports.ManifestReader](ctx)
			if err != nil {
				return nil, err
			}

			f, err := graft.Dep[ports.Fetcher](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[*telemetry.OTelTracer](ctx)
			if err != nil {
				return nil, err
			}

			return New(manifests, f, tracer), nil
		},
	})
}
