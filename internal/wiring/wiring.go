// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/prunelock/internal/adapters/artifacts"
	_ "go.trai.ch/prunelock/internal/adapters/bundle"
	_ "go.trai.ch/prunelock/internal/adapters/config"
	_ "go.trai.ch/prunelock/internal/adapters/esbuild"
	_ "go.trai.ch/prunelock/internal/adapters/lockfile"
	_ "go.trai.ch/prunelock/internal/adapters/logger"
	_ "go.trai.ch/prunelock/internal/adapters/shell"
	_ "go.trai.ch/prunelock/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/prunelock/internal/app"
)
