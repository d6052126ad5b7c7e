package ports

import (
	"context"
	"time"
)

// Renderer is the abstraction for progress output.
// It decouples telemetry collection from presentation, so the same span stream can
// drive any output mode.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Start initializes the renderer.
	Start(ctx context.Context) error

	// Stop flushes any buffered output.
	Stop() error

	// OnPlanEmit is called with the ordered list of stages before the pipeline runs.
	OnPlanEmit(stages []string)

	// OnStageStart is called when a stage begins.
	// spanID: unique identifier for this stage execution
	// parentID: spanID of the parent stage (empty if root)
	OnStageStart(spanID, parentID, name string, startTime time.Time)

	// OnStageLog is called when a stage emits output (verification command output).
	OnStageLog(spanID string, data []byte)

	// OnStageComplete is called when a stage finishes; err is nil on success.
	OnStageComplete(spanID string, endTime time.Time, err error)
}
