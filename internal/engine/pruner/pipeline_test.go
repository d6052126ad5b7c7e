package pruner_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/prunelock/internal/core/domain"
	"go.trai.ch/prunelock/internal/core/ports"
	"go.trai.ch/prunelock/internal/core/ports/mocks"
	"go.trai.ch/prunelock/internal/engine/pruner"
	"go.uber.org/mock/gomock"
)

type pipelineTestMocks struct {
	loader   *mocks.MockLockfileLoader
	writer   *mocks.MockArtifactWriter
	executor *mocks.MockExecutor
	tracer   *mocks.MockTracer
	span     *mocks.MockSpan
}

// setupPipelineTest creates a pipeline and common mocks.
func setupPipelineTest(t *testing.T) (*pruner.Pipeline, pipelineTestMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := pipelineTestMocks{
		loader:   mocks.NewMockLockfileLoader(ctrl),
		writer:   mocks.NewMockArtifactWriter(ctrl),
		executor: mocks.NewMockExecutor(ctrl),
		tracer:   mocks.NewMockTracer(ctrl),
		span:     mocks.NewMockSpan(ctrl),
	}

	m.span.EXPECT().End().AnyTimes()
	m.span.EXPECT().RecordError(gomock.Any()).AnyTimes()
	m.span.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()
	m.span.EXPECT().Write(gomock.Any()).DoAndReturn(func(p []byte) (int, error) {
		return len(p), nil
	}).AnyTimes()

	m.tracer.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
			return ctx, m.span
		},
	).AnyTimes()

	return pruner.NewPipeline(m.loader, m.writer, m.executor, m.tracer), m
}

func reactBundle() domain.Bundle {
	return domain.Bundle{
		"assets/index.js": {ModuleIDs: []domain.ModuleID{
			"src/main.jsx",
			"node_modules/react/index.js",
			"node_modules/react/cjs/react.production.min.js",
			"node_modules/react-dom/client.js",
			"node_modules/react-dom/cjs/react-dom.production.min.js",
			"node_modules/scheduler/index.js",
		}},
		"assets/index.css": {},
	}
}

func TestPipeline_Run(t *testing.T) {
	t.Parallel()

	p, m := setupPipelineTest(t)
	target := pruner.Target{Root: "/repo", OutputDir: "/repo/build"}

	m.tracer.EXPECT().EmitPlan(gomock.Any(), []string{
		pruner.StageCollect, pruner.StageNormalize, pruner.StageLoad, pruner.StagePrune, pruner.StageWrite,
	})
	m.loader.EXPECT().Load("/repo", "").Return(fullLockfile(), nil)
	m.writer.EXPECT().Write("/repo/build", gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ string, manifest *domain.Manifest, lockfile *domain.Lockfile) (bool, error) {
			assert.Len(t, manifest.Dependencies, 3)
			assert.Len(t, lockfile.Packages.Entries, 3)
			return false, nil
		},
	)

	res, err := p.Run(context.Background(), reactBundle(), target)
	require.NoError(t, err)

	assert.Equal(t, []domain.PackageKey{
		"node_modules/react",
		"node_modules/react-dom",
		"node_modules/scheduler",
	}, res.Keys)
	assert.Equal(t, map[string]string{
		"react":     "18.2.0",
		"react-dom": "18.2.0",
		"scheduler": "0.23.0",
	}, res.Manifest.Dependencies)
	assert.False(t, res.Unchanged)
}

func TestPipeline_Run_DefaultOutputDir(t *testing.T) {
	t.Parallel()

	p, m := setupPipelineTest(t)

	m.tracer.EXPECT().EmitPlan(gomock.Any(), gomock.Any())
	m.loader.EXPECT().Load(".", "").Return(fullLockfile(), nil)
	m.writer.EXPECT().Write(domain.DefaultOutputDir, gomock.Any(), gomock.Any()).Return(true, nil)

	res, err := p.Run(context.Background(), reactBundle(), pruner.Target{Root: "."})
	require.NoError(t, err)
	assert.True(t, res.Unchanged)
}

func TestPipeline_Run_LoadError(t *testing.T) {
	t.Parallel()

	p, m := setupPipelineTest(t)
	loadErr := errors.Join(domain.ErrLockfileRead, errors.New("no such file"))

	m.tracer.EXPECT().EmitPlan(gomock.Any(), gomock.Any())
	m.loader.EXPECT().Load("/repo", "").Return(nil, loadErr)
	m.writer.EXPECT().Write(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := p.Run(context.Background(), reactBundle(), pruner.Target{Root: "/repo"})
	require.ErrorIs(t, err, domain.ErrLockfileRead)
}

func TestPipeline_Run_MissingDependencyWritesNothing(t *testing.T) {
	t.Parallel()

	p, m := setupPipelineTest(t)
	bundle := domain.Bundle{
		"index.js": {ModuleIDs: []domain.ModuleID{"/repo/node_modules/left-pad/index.js"}},
	}

	m.tracer.EXPECT().EmitPlan(gomock.Any(), gomock.Any())
	m.loader.EXPECT().Load("/repo", "").Return(fullLockfile(), nil)
	m.writer.EXPECT().Write(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := p.Run(context.Background(), bundle, pruner.Target{Root: "/repo"})
	require.ErrorIs(t, err, domain.ErrMissingDependency)
	assert.ErrorContains(t, err, "node_modules/left-pad")
}

func TestPipeline_Run_WriteError(t *testing.T) {
	t.Parallel()

	p, m := setupPipelineTest(t)

	m.tracer.EXPECT().EmitPlan(gomock.Any(), gomock.Any())
	m.loader.EXPECT().Load("/repo", "").Return(fullLockfile(), nil)
	m.writer.EXPECT().Write("build", gomock.Any(), gomock.Any()).Return(false, domain.ErrWrite)

	_, err := p.Run(context.Background(), reactBundle(), pruner.Target{Root: "/repo", OutputDir: "build"})
	require.ErrorIs(t, err, domain.ErrWrite)
}

func TestPipeline_Run_Verify(t *testing.T) {
	t.Parallel()

	p, m := setupPipelineTest(t)
	command := []string{"npm", "ci", "--dry-run"}
	target := pruner.Target{Root: "/repo", OutputDir: "build", VerifyCommand: command}

	m.tracer.EXPECT().EmitPlan(gomock.Any(), []string{
		pruner.StageCollect, pruner.StageNormalize, pruner.StageLoad,
		pruner.StagePrune, pruner.StageWrite, pruner.StageVerify,
	})
	gomock.InOrder(
		m.loader.EXPECT().Load("/repo", "").Return(fullLockfile(), nil),
		m.writer.EXPECT().Write("build", gomock.Any(), gomock.Any()).Return(false, nil),
		m.executor.EXPECT().Execute(gomock.Any(), "build", command, gomock.Any(), gomock.Any()).Return(nil),
	)

	_, err := p.Run(context.Background(), reactBundle(), target)
	require.NoError(t, err)
}

func TestPipeline_Run_VerifyFailed(t *testing.T) {
	t.Parallel()

	p, m := setupPipelineTest(t)
	target := pruner.Target{Root: "/repo", OutputDir: "build", VerifyCommand: []string{"npm", "ci"}}

	m.tracer.EXPECT().EmitPlan(gomock.Any(), gomock.Any())
	m.loader.EXPECT().Load("/repo", "").Return(fullLockfile(), nil)
	m.writer.EXPECT().Write("build", gomock.Any(), gomock.Any()).Return(false, nil)
	m.executor.EXPECT().Execute(gomock.Any(), "build", gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, _ []string, _, stderr io.Writer) error {
			_, _ = stderr.Write([]byte("npm ERR! missing: scheduler@0.23.0\n"))
			return errors.New("exit status 1")
		},
	)

	_, err := p.Run(context.Background(), reactBundle(), target)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrVerifyFailed.Error())
	assert.ErrorContains(t, err, "exit status 1")
}

func TestPipeline_Run_Canceled(t *testing.T) {
	t.Parallel()

	p, m := setupPipelineTest(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m.tracer.EXPECT().EmitPlan(gomock.Any(), gomock.Any())

	_, err := p.Run(ctx, reactBundle(), pruner.Target{Root: "/repo"})
	require.ErrorIs(t, err, context.Canceled)
}

func TestStages(t *testing.T) {
	t.Parallel()

	assert.NotContains(t, pruner.Stages(pruner.Target{}), pruner.StageVerify)
	assert.Contains(t, pruner.Stages(pruner.Target{VerifyCommand: []string{"npm", "ci"}}), pruner.StageVerify)
}
