package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/prunelock/internal/adapters/artifacts" //nolint:depguard // Wired in app layer
	"go.trai.ch/prunelock/internal/adapters/bundle"    //nolint:depguard // Wired in app layer
	"go.trai.ch/prunelock/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/prunelock/internal/adapters/esbuild"   //nolint:depguard // Wired in app layer
	"go.trai.ch/prunelock/internal/adapters/lockfile"  //nolint:depguard // Wired in app layer
	"go.trai.ch/prunelock/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/prunelock/internal/adapters/shell"     //nolint:depguard // Wired in app layer
	"go.trai.ch/prunelock/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/prunelock/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			bundle.NodeID,
			lockfile.NodeID,
			artifacts.NodeID,
			shell.NodeID,
			esbuild.NodeID,
			watcher.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

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

func runAppNode(ctx context.Context) (*App, error) {
	configLoader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	reader, err := graft.Dep[ports.BundleReader](ctx)
	if err != nil {
		return nil, err
	}

	loader, err := graft.Dep[ports.LockfileLoader](ctx)
	if err != nil {
		return nil, err
	}

	writer, err := graft.Dep[ports.ArtifactWriter](ctx)
	if err != nil {
		return nil, err
	}

	executor, err := graft.Dep[ports.Executor](ctx)
	if err != nil {
		return nil, err
	}

	bundler, err := graft.Dep[ports.Bundler](ctx)
	if err != nil {
		return nil, err
	}

	fileWatcher, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(configLoader, reader, loader, writer, executor, bundler, fileWatcher, log), nil
}
