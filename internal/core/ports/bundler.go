package ports

import (
	"context"

	"go.trai.ch/prunelock/internal/core/domain"
)

// BundleHook is invoked once per finished build with the finalized bundle.
// The build is not reported as done until the hook returns.
type BundleHook func(ctx context.Context, bundle domain.Bundle) error

// Bundler runs the host bundler with the prune hook attached.
//
//go:generate mockgen -source=bundler.go -destination=mocks/mock_bundler.go -package=mocks
type Bundler interface {
	// Build bundles spec and calls hook after every successful build.
	// In watch mode it blocks until ctx is canceled.
	Build(ctx context.Context, spec domain.BuildSpec, hook BundleHook) error
}
