// Package app implements the application layer for prunelock.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/prunelock/internal/adapters/detector"
	"go.trai.ch/prunelock/internal/adapters/linear"
	"go.trai.ch/prunelock/internal/adapters/telemetry"
	"go.trai.ch/prunelock/internal/adapters/tui"
	"go.trai.ch/prunelock/internal/adapters/watcher"
	"go.trai.ch/prunelock/internal/core/domain"
	"go.trai.ch/prunelock/internal/core/ports"
	"go.trai.ch/prunelock/internal/engine/pruner"
	"go.trai.ch/zerr"
)

const tracerName = "prunelock"

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	reader       ports.BundleReader
	loader       ports.LockfileLoader
	writer       ports.ArtifactWriter
	executor     ports.Executor
	bundler      ports.Bundler
	watcher      ports.Watcher
	logger       ports.Logger

	stdout         io.Writer
	stderr         io.Writer
	debounceWindow time.Duration
}

// New creates a new App instance.
func New(
	configLoader ports.ConfigLoader,
	reader ports.BundleReader,
	loader ports.LockfileLoader,
	writer ports.ArtifactWriter,
	executor ports.Executor,
	bundler ports.Bundler,
	fileWatcher ports.Watcher,
	log ports.Logger,
) *App {
	return &App{
		configLoader:   configLoader,
		reader:         reader,
		loader:         loader,
		writer:         writer,
		executor:       executor,
		bundler:        bundler,
		watcher:        fileWatcher,
		logger:         log,
		stdout:         os.Stdout,
		stderr:         os.Stderr,
		debounceWindow: watcher.DefaultDebounceWindow,
	}
}

// WithOutput redirects stage progress and verification output.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// WithDebounceWindow sets how long watch mode waits for file events to settle.
func (a *App) WithDebounceWindow(window time.Duration) *App {
	a.debounceWindow = window
	return a
}

// PruneOptions configuration for the Prune method.
type PruneOptions struct {
	// Dir is where configuration discovery starts. Empty means the current directory.
	Dir string
	// Overrides are applied on top of the discovered configuration.
	Overrides domain.Config
	// OutputMode is the --output-mode flag value.
	OutputMode string
}

// Prune reads the configured bundle description and writes the pruned artifacts.
func (a *App) Prune(ctx context.Context, opts PruneOptions) error {
	cfg, err := a.resolveConfig(opts.Dir, opts.Overrides)
	if err != nil {
		return err
	}

	bundle, err := a.readBundle(cfg)
	if err != nil {
		return err
	}

	return a.runPipeline(ctx, bundle, cfg, opts.OutputMode)
}

// BuildOptions configuration for the Build method.
type BuildOptions struct {
	PruneOptions
	// Spec describes the esbuild invocation. An empty WorkingDir selects the project root.
	Spec domain.BuildSpec
}

// Build bundles the entry points and prunes the lockfile after every successful build.
// A failed prune fails the build. In watch mode it blocks until ctx is canceled.
func (a *App) Build(ctx context.Context, opts BuildOptions) error {
	cfg, err := a.resolveConfig(opts.Dir, opts.Overrides)
	if err != nil {
		return err
	}

	spec := opts.Spec
	if spec.WorkingDir == "" {
		spec.WorkingDir = cfg.Root
	}

	hook := func(ctx context.Context, bundle domain.Bundle) error {
		return a.runPipeline(ctx, bundle, cfg, opts.OutputMode)
	}

	return a.bundler.Build(ctx, spec, hook)
}

// Watch prunes once and again whenever the bundle description or the lockfile changes.
// Failed runs are logged and watching continues. It returns when ctx is canceled.
func (a *App) Watch(ctx context.Context, opts PruneOptions) error {
	cfg, err := a.resolveConfig(opts.Dir, opts.Overrides)
	if err != nil {
		return err
	}
	if cfg.BundlePath == "" {
		return domain.ErrNoBundleSpecified
	}

	files := []string{cfg.BundlePath, domain.LockfilePath(cfg.Root, cfg.Lockfile)}
	if err := a.watcher.Start(ctx, files); err != nil {
		return err
	}
	defer func() {
		_ = a.watcher.Stop()
	}()

	// A single pending slot keeps at most one run queued behind the active one.
	trigger := make(chan struct{}, 1)
	debouncer := watcher.NewDebouncer(a.debounceWindow, func(_ []string) {
		select {
		case trigger <- struct{}{}:
		default:
		}
	})
	defer debouncer.Stop()

	go func() {
		for event := range a.watcher.Events() {
			debouncer.Add(event.Path)
		}
	}()

	a.logger.Info("watching " + strings.Join(files, ", "))
	a.pruneOnce(ctx, cfg, opts.OutputMode)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-trigger:
			a.pruneOnce(ctx, cfg, opts.OutputMode)
		}
	}
}

func (a *App) pruneOnce(ctx context.Context, cfg domain.Config, outputMode string) {
	bundle, err := a.readBundle(cfg)
	if err == nil {
		err = a.runPipeline(ctx, bundle, cfg, outputMode)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		a.logger.Error(err)
	}
}

func (a *App) resolveConfig(dir string, overrides domain.Config) (domain.Config, error) {
	if dir == "" {
		dir = "."
	}

	cfg, err := a.configLoader.Load(dir)
	if err != nil {
		return domain.Config{}, zerr.Wrap(err, "failed to load configuration")
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return domain.Config{}, zerr.Wrap(err, domain.ErrFailedToGetRoot.Error())
	}
	// OutputDir stays relative to the working directory.
	overrides.Root = resolveAgainst(absDir, overrides.Root)
	overrides.BundlePath = resolveAgainst(absDir, overrides.BundlePath)

	cfg = cfg.Merge(overrides)
	if cfg.Verify && len(cfg.VerifyCommand) == 0 {
		return domain.Config{}, domain.ErrEmptyVerifyCommand
	}
	return cfg, nil
}

// resolveAgainst anchors a relative command line path at dir. Empty paths stay empty
// so that Merge keeps the configured value.
func resolveAgainst(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

func (a *App) readBundle(cfg domain.Config) (domain.Bundle, error) {
	if cfg.BundlePath == "" {
		return nil, domain.ErrNoBundleSpecified
	}
	return a.reader.Read(cfg.BundlePath, cfg.BundleFormat)
}

// runPipeline prunes the lockfile for bundle and logs the outcome.
func (a *App) runPipeline(ctx context.Context, bundle domain.Bundle, cfg domain.Config, outputMode string) error {
	target := pruner.Target{
		Root:         cfg.Root,
		LockfileName: cfg.Lockfile,
		OutputDir:    cfg.OutputDir,
	}
	if cfg.Verify {
		target.VerifyCommand = cfg.VerifyCommand
	}

	res, err := a.runStages(ctx, bundle, target, outputMode)
	if err != nil {
		return err
	}

	outputDir := target.OutputDir
	if outputDir == "" {
		outputDir = domain.DefaultOutputDir
	}
	if res.Unchanged {
		a.logger.Info(fmt.Sprintf("%s is up to date (%s)", outputDir, packageCount(len(res.Keys))))
	} else {
		a.logger.Info(fmt.Sprintf("wrote %s and %s to %s (%s)",
			domain.ManifestFileName, domain.LockfileFileName, outputDir, packageCount(len(res.Keys))))
	}
	return nil
}

// runStages executes the pipeline with stage progress sent to the selected renderer.
// The renderer is stopped before it returns.
func (a *App) runStages(
	ctx context.Context,
	bundle domain.Bundle,
	target pruner.Target,
	outputMode string,
) (pruner.Result, error) {
	renderer := a.newRenderer(outputMode)
	if err := renderer.Start(ctx); err != nil {
		return pruner.Result{}, err
	}
	defer func() {
		_ = renderer.Stop()
	}()

	tp := setupOTel(telemetry.NewBridge(renderer))
	defer func() {
		_ = tp.Shutdown(context.WithoutCancel(ctx))
	}()

	tracer := telemetry.NewOTelTracer(tp.Tracer(tracerName)).WithRenderer(renderer)
	return pruner.NewPipeline(a.loader, a.writer, a.executor, tracer).Run(ctx, bundle, target)
}

func (a *App) newRenderer(outputMode string) ports.Renderer {
	switch detector.ResolveMode(detector.DetectEnvironment(), outputMode) {
	case detector.ModeTUI:
		return tui.NewRenderer(a.stderr)
	case detector.ModeQuiet:
		return linear.NewQuiet()
	default:
		return linear.NewRenderer(a.stdout, a.stderr)
	}
}

// setupOTel configures the OpenTelemetry SDK with the renderer bridge.
func setupOTel(bridge *telemetry.Bridge) *sdktrace.TracerProvider {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(bridge),
	)
	otel.SetTracerProvider(tp)
	return tp
}

func packageCount(n int) string {
	if n == 1 {
		return "1 package"
	}
	return fmt.Sprintf("%d packages", n)
}
