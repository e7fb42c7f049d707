package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/c3pm/internal/adapters/cmake"     //nolint:depguard // Wired in app layer
	"go.trai.ch/c3pm/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/c3pm/internal/adapters/detector"  //nolint:depguard // Wired in app layer
	"go.trai.ch/c3pm/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/c3pm/internal/adapters/git"       //nolint:depguard // Wired in app layer
	"go.trai.ch/c3pm/internal/adapters/linear"    //nolint:depguard // Wired in app layer
	"go.trai.ch/c3pm/internal/adapters/lockfile"  //nolint:depguard // Wired in app layer
	"go.trai.ch/c3pm/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/c3pm/internal/adapters/scaffold"  //nolint:depguard // Wired in app layer
	"go.trai.ch/c3pm/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/c3pm/internal/core/domain"
	"go.trai.ch/c3pm/internal/core/ports"
	"go.trai.ch/c3pm/internal/engine/resolver"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.ProjectStoreNodeID,
			resolver.NodeID,
			lockfile.NodeID,
			git.NodeID,
			cmake.NodeID,
			scaffold.NodeID,
			fs.CollectorNodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
			linear.NodeID,
			detector.ToolchainNodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: a, Logger: log}, nil
		},
	})
}

//nolint:cyclop // one lookup per dependency
func runAppNode(ctx context.Context) (*App, error) {
	projects, err := graft.Dep[ports.ProjectStore](ctx)
	if err != nil {
		return nil, err
	}

	res, err := graft.Dep[ports.DependencyResolver](ctx)
	if err != nil {
		return nil, err
	}

	locks, err := graft.Dep[ports.LockfileStore](ctx)
	if err != nil {
		return nil, err
	}

	vcs, err := graft.Dep[ports.VersionControl](ctx)
	if err != nil {
		return nil, err
	}

	buildSystem, err := graft.Dep[ports.BuildSystem](ctx)
	if err != nil {
		return nil, err
	}

	scaffolder, err := graft.Dep[ports.Scaffolder](ctx)
	if err != nil {
		return nil, err
	}

	artifacts, err := graft.Dep[ports.ArtifactCollector](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[*telemetry.OTelTracer](ctx)
	if err != nil {
		return nil, err
	}

	renderer, err := graft.Dep[ports.Renderer](ctx)
	if err != nil {
		return nil, err
	}

	toolchain, err := graft.Dep[domain.Toolchain](ctx)
	if err != nil {
		return nil, err
	}

	return New(projects, res, locks, vcs, buildSystem, scaffolder, artifacts, log, tracer, renderer, toolchain), nil
}
