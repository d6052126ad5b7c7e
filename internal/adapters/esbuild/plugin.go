// Package esbuild runs esbuild with a plugin that hands every finished bundle to the pruner.
package esbuild

import (
	"context"
	"sync"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/prunelock/internal/adapters/bundle"
	"go.trai.ch/prunelock/internal/core/ports"
)

// PluginName is the name the plugin registers with esbuild.
const PluginName = "prunelock"

// hookState keeps the last hook error so callers get the typed error back
// instead of the flattened esbuild message.
type hookState struct {
	mu  sync.Mutex
	err error
}

func (s *hookState) set(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *hookState) get() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// NewPlugin returns an esbuild plugin that forces metafile generation and calls hook
// from the OnEnd callback of every build without errors.
func NewPlugin(ctx context.Context, hook ports.BundleHook) api.Plugin {
	return newPlugin(ctx, hook, &hookState{})
}

func newPlugin(ctx context.Context, hook ports.BundleHook, state *hookState) api.Plugin {
	return api.Plugin{
		Name: PluginName,
		Setup: func(build api.PluginBuild) {
			build.InitialOptions.Metafile = true

			build.OnEnd(func(result *api.BuildResult) (api.OnEndResult, error) {
				if len(result.Errors) > 0 {
					return api.OnEndResult{}, nil
				}

				err := runHook(ctx, hook, result.Metafile)
				state.set(err)
				if err != nil {
					return api.OnEndResult{
						Errors: []api.Message{{PluginName: PluginName, Text: err.Error()}},
					}, nil
				}
				return api.OnEndResult{}, nil
			})
		},
	}
}

func runHook(ctx context.Context, hook ports.BundleHook, metafile string) error {
	b, err := bundle.ParseMetafile([]byte(metafile))
	if err != nil {
		return err
	}
	return hook(ctx, b)
}
