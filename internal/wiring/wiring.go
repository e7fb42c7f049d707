// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/c3pm/internal/adapters/cmake"
	_ "go.trai.ch/c3pm/internal/adapters/config"
	_ "go.trai.ch/c3pm/internal/adapters/detector"
	_ "go.trai.ch/c3pm/internal/adapters/fs"
	_ "go.trai.ch/c3pm/internal/adapters/git"
	_ "go.trai.ch/c3pm/internal/adapters/linear"
	_ "go.trai.ch/c3pm/internal/adapters/lockfile"
	_ "go.trai.ch/c3pm/internal/adapters/logger"
	_ "go.trai.ch/c3pm/internal/adapters/scaffold"
	_ "go.trai.ch/c3pm/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/c3pm/internal/app"
	_ "go.trai.ch/c3pm/internal/engine/fetcher"
	_ "go.trai.ch/c3pm/internal/engine/resolver"
)
