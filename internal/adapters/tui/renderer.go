package tui

import (
	"context"
	"io"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/prunelock/internal/ui/output"
)

// Renderer wraps the Bubble Tea program as a ports.Renderer.
// Input is not read, so Ctrl+C reaches the process as SIGINT.
type Renderer struct {
	program *tea.Program
	model   *Model
	errCh   chan error

	mu      sync.Mutex
	started bool
	stopped bool
}

// NewRenderer creates a TUI renderer drawing to w. A nil writer selects os.Stderr.
func NewRenderer(w io.Writer, opts ...tea.ProgramOption) *Renderer {
	if w == nil {
		w = os.Stderr
	}
	lipgloss.SetColorProfile(output.ColorProfile())

	model := NewModel()
	base := []tea.ProgramOption{
		tea.WithOutput(w),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	}

	return &Renderer{
		program: tea.NewProgram(model, append(base, opts...)...),
		model:   model,
		errCh:   make(chan error, 1),
	}
}

// Start launches the program in a background goroutine.
func (r *Renderer) Start(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started {
		return nil
	}
	r.started = true

	go func() {
		_, err := r.program.Run()
		r.errCh <- err
	}()
	return nil
}

// Stop quits the program and waits until the final frame is drawn.
func (r *Renderer) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.started || r.stopped {
		return nil
	}
	r.stopped = true

	r.program.Quit()
	return <-r.errCh
}

// OnPlanEmit forwards the plan to the program.
func (r *Renderer) OnPlanEmit(stages []string) {
	r.program.Send(MsgPlan{Stages: stages})
}

// OnStageStart forwards stage start events to the program.
func (r *Renderer) OnStageStart(spanID, _ /* parentID */, name string, startTime time.Time) {
	r.program.Send(MsgStageStart{
		SpanID:    spanID,
		Name:      name,
		StartTime: startTime,
	})
}

// OnStageLog forwards stage output to the program.
func (r *Renderer) OnStageLog(spanID string, data []byte) {
	r.program.Send(MsgStageLog{
		SpanID: spanID,
		Data:   data,
	})
}

// OnStageComplete forwards stage completion events to the program.
func (r *Renderer) OnStageComplete(spanID string, endTime time.Time, err error) {
	r.program.Send(MsgStageComplete{
		SpanID:  spanID,
		EndTime: endTime,
		Err:     err,
	})
}

// Model returns the underlying model for testing.
func (r *Renderer) Model() *Model {
	return r.model
}
