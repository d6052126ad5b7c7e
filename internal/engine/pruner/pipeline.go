package pruner

import (
	"bytes"
	"context"
	"io"
	"strings"

	"go.trai.ch/prunelock/internal/core/domain"
	"go.trai.ch/prunelock/internal/core/ports"
	"go.trai.ch/zerr"
)

// Stage names, in execution order.
const (
	StageCollect   = "collect"
	StageNormalize = "normalize"
	StageLoad      = "load"
	StagePrune     = "prune"
	StageWrite     = "write"
	StageVerify    = "verify"
)

// Target describes where a pipeline run reads from and writes to.
type Target struct {
	// Root is the project root holding the full lockfile.
	Root string
	// LockfileName overrides the lockfile location, relative to Root.
	LockfileName string
	// OutputDir receives the pruned artifacts.
	OutputDir string
	// VerifyCommand, when set, is run inside OutputDir after the artifacts are written.
	VerifyCommand []string
}

// Result is the outcome of a successful pipeline run.
type Result struct {
	Manifest  *domain.Manifest
	Lockfile  *domain.Lockfile
	Keys      []domain.PackageKey
	Unchanged bool
}

// Pipeline runs the collect, normalize, load, prune and write stages for one bundle.
type Pipeline struct {
	loader   ports.LockfileLoader
	writer   ports.ArtifactWriter
	executor ports.Executor
	tracer   ports.Tracer
}

// NewPipeline creates a new Pipeline with the given dependencies.
func NewPipeline(
	loader ports.LockfileLoader,
	writer ports.ArtifactWriter,
	executor ports.Executor,
	tracer ports.Tracer,
) *Pipeline {
	return &Pipeline{
		loader:   loader,
		writer:   writer,
		executor: executor,
		tracer:   tracer,
	}
}

// Stages returns the stage names a run against target executes.
func Stages(target Target) []string {
	stages := []string{StageCollect, StageNormalize, StageLoad, StagePrune, StageWrite}
	if len(target.VerifyCommand) > 0 {
		stages = append(stages, StageVerify)
	}
	return stages
}

// Run executes the pipeline. Nothing is written unless every earlier stage succeeded.
func (p *Pipeline) Run(ctx context.Context, bundle domain.Bundle, target Target) (Result, error) {
	if target.OutputDir == "" {
		target.OutputDir = domain.DefaultOutputDir
	}

	p.tracer.EmitPlan(ctx, Stages(target))

	var (
		res  Result
		ids  map[domain.ModuleID]struct{}
		full *domain.Lockfile
	)

	err := p.runStage(ctx, StageCollect, func(_ context.Context, span ports.Span) error {
		ids = CollectModuleIDs(bundle)
		span.SetAttribute("prunelock.chunks", len(bundle))
		span.SetAttribute("prunelock.modules", len(ids))
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	err = p.runStage(ctx, StageNormalize, func(_ context.Context, span ports.Span) error {
		res.Keys = NormalizeDependencies(ids)
		span.SetAttribute("prunelock.packages", len(res.Keys))
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	err = p.runStage(ctx, StageLoad, func(_ context.Context, span ports.Span) error {
		span.SetAttribute("prunelock.lockfile", domain.LockfilePath(target.Root, target.LockfileName))
		var loadErr error
		full, loadErr = p.loader.Load(target.Root, target.LockfileName)
		return loadErr
	})
	if err != nil {
		return Result{}, err
	}

	err = p.runStage(ctx, StagePrune, func(_ context.Context, span ports.Span) error {
		var pruneErr error
		res.Manifest, res.Lockfile, pruneErr = Prune(full, res.Keys)
		if pruneErr == nil {
			span.SetAttribute("prunelock.dropped", len(full.Packages.Entries)-len(res.Lockfile.Packages.Entries))
		}
		return pruneErr
	})
	if err != nil {
		return Result{}, err
	}

	err = p.runStage(ctx, StageWrite, func(_ context.Context, span ports.Span) error {
		span.SetAttribute("prunelock.output_dir", target.OutputDir)
		var writeErr error
		res.Unchanged, writeErr = p.writer.Write(target.OutputDir, res.Manifest, res.Lockfile)
		if writeErr == nil {
			span.SetAttribute("prunelock.unchanged", res.Unchanged)
		}
		return writeErr
	})
	if err != nil {
		return Result{}, err
	}

	if len(target.VerifyCommand) == 0 {
		return res, nil
	}

	err = p.runStage(ctx, StageVerify, func(ctx context.Context, span ports.Span) error {
		return p.verify(ctx, span, target)
	})
	if err != nil {
		return Result{}, err
	}

	return res, nil
}

// verify runs the package manager against the freshly written artifacts.
// Command output is streamed to the span and kept for the error report.
func (p *Pipeline) verify(ctx context.Context, span ports.Span, target Target) error {
	span.SetAttribute("prunelock.verify_command", strings.Join(target.VerifyCommand, " "))

	var stderr bytes.Buffer
	err := p.executor.Execute(ctx, target.OutputDir, target.VerifyCommand, span, io.MultiWriter(span, &stderr))
	if err != nil {
		wrapped := zerr.Wrap(err, domain.ErrVerifyFailed.Error())
		wrapped = zerr.With(wrapped, "command", strings.Join(target.VerifyCommand, " "))
		if out := strings.TrimSpace(stderr.String()); out != "" {
			wrapped = zerr.With(wrapped, "stderr", out)
		}
		return wrapped
	}
	return nil
}

func (p *Pipeline) runStage(ctx context.Context, name string, fn func(context.Context, ports.Span) error) error {
	ctx, span := p.tracer.Start(ctx, name)
	defer span.End()

	if err := ctx.Err(); err != nil {
		span.RecordError(err)
		return err
	}

	if err := fn(ctx, span); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}
