package esbuild

import (
	"context"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/prunelock/internal/core/domain"
	"go.trai.ch/prunelock/internal/core/ports"
	"go.trai.ch/zerr"
)

// Builder implements ports.Bundler on top of the esbuild Go API.
type Builder struct {
	logLevel api.LogLevel
}

// NewBuilder creates a Builder that lets esbuild print warnings and errors.
func NewBuilder() *Builder {
	return &Builder{logLevel: api.LogLevelWarning}
}

// WithSilentLog stops esbuild from printing to stderr.
func (b *Builder) WithSilentLog() *Builder {
	b.logLevel = api.LogLevelSilent
	return b
}

// Build bundles spec with the prune plugin attached.
func (b *Builder) Build(ctx context.Context, spec domain.BuildSpec, hook ports.BundleHook) error {
	if len(spec.EntryPoints) == 0 {
		return domain.ErrNoEntryPoints
	}

	state := &hookState{}
	opts := b.options(spec)
	opts.Plugins = []api.Plugin{newPlugin(ctx, hook, state)}

	if spec.Watch {
		return b.watch(ctx, opts)
	}

	result := api.Build(opts)
	if err := state.get(); err != nil {
		return err
	}
	return bundlerError(result.Errors)
}

func (b *Builder) options(spec domain.BuildSpec) api.BuildOptions {
	opts := api.BuildOptions{
		EntryPoints:       spec.EntryPoints,
		Outdir:            spec.OutDir,
		AbsWorkingDir:     spec.WorkingDir,
		External:          spec.External,
		Bundle:            true,
		Write:             true,
		Metafile:          true,
		Format:            api.FormatESModule,
		Platform:          api.PlatformBrowser,
		Target:            api.ES2020,
		MinifyWhitespace:  spec.Minify,
		MinifyIdentifiers: spec.Minify,
		MinifySyntax:      spec.Minify,
		LogLevel:          b.logLevel,
		Loader: map[string]api.Loader{
			".js": api.LoaderJSX,
		},
	}
	if spec.Sourcemap {
		opts.Sourcemap = api.SourceMapLinked
	}
	return opts
}

// watch rebuilds on every source change until ctx is canceled. Hook failures
// are reported through the build log and do not stop the watcher.
func (b *Builder) watch(ctx context.Context, opts api.BuildOptions) error {
	buildCtx, ctxErr := api.Context(opts)
	if ctxErr != nil {
		return bundlerError(ctxErr.Errors)
	}
	defer buildCtx.Dispose()

	if err := buildCtx.Watch(api.WatchOptions{}); err != nil {
		return zerr.Wrap(err, domain.ErrWatchFailed.Error())
	}

	<-ctx.Done()
	return nil
}

func bundlerError(messages []api.Message) error {
	if len(messages) == 0 {
		return nil
	}

	texts := make([]string, 0, len(messages))
	for _, msg := range messages {
		text := msg.Text
		if msg.Location != nil {
			text = msg.Location.File + ": " + text
		}
		texts = append(texts, text)
	}
	return zerr.With(zerr.Wrap(domain.ErrBundlerFailed, strings.Join(texts, "\n")), "errors", len(messages))
}
