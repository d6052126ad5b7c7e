package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/prunelock/internal/core/ports"
)

// Bridge is an sdktrace.SpanProcessor that turns pipeline stage spans into renderer callbacks.
// Spans without a valid context are dropped.
type Bridge struct {
	renderer ports.Renderer
}

// NewBridge returns a Bridge feeding renderer. A nil renderer discards everything.
func NewBridge(renderer ports.Renderer) *Bridge {
	return &Bridge{renderer: renderer}
}

// OnStart reports the stage as started.
func (b *Bridge) OnStart(parent context.Context, s sdktrace.ReadWriteSpan) {
	id, ok := b.stageID(s.SpanContext())
	if !ok {
		return
	}

	var parentID string
	if psc := trace.SpanContextFromContext(parent); psc.IsValid() {
		parentID = psc.SpanID().String()
	}

	b.renderer.OnStageStart(id, parentID, s.Name(), s.StartTime())
}

// OnEnd reports the stage as finished, failed when the span status is Error.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	id, ok := b.stageID(s.SpanContext())
	if !ok {
		return
	}

	b.renderer.OnStageComplete(id, s.EndTime(), stageError(s.Status()))
}

func (b *Bridge) stageID(sc trace.SpanContext) (string, bool) {
	if b.renderer == nil || !sc.IsValid() {
		return "", false
	}
	return sc.SpanID().String(), true
}

func stageError(status sdktrace.Status) error {
	if status.Code != codes.Error {
		return nil
	}
	if status.Description == "" {
		return errors.New("stage failed")
	}
	return errors.New(status.Description)
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}
