package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/c3pm/internal/core/ports"
)

const (
	// ManifestReaderNodeID is the unique identifier for the manifest reader Graft node.
	ManifestReaderNodeID graft.ID = "adapter.config.manifest"
	// ProjectStoreNodeID is the unique identifier for the project store Graft node.
	ProjectStoreNodeID graft.ID = "adapter.config.project"
)

func init() {
	graft.Register(graft.Node[ports.ManifestReader]{
		ID:        ManifestReaderNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ManifestReader, error) {
			return NewStore(), nil
		},
	})

	graft.Register(graft.Node[ports.ProjectStore]{
		ID:        ProjectStoreNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ProjectStore, error) {
			return NewStore(), nil
		},
	})
}
