// Package linear provides a synchronous, line-buffered stage renderer.
package linear

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/prunelock/internal/ui/output"
	"go.trai.ch/prunelock/internal/ui/style"
)

// Renderer implements ports.Renderer with one status line per stage.
// Stage output (the verification command) is written to stdout prefixed with the stage name.
type Renderer struct {
	stdout io.Writer
	stderr io.Writer
	output *termenv.Output

	mu      sync.Mutex
	stages  map[string]*stageState // spanID -> stage state
	buffers map[string]*bytes.Buffer
}

type stageState struct {
	name      string
	startTime time.Time
}

// NewRenderer creates a new Renderer. Nil writers select os.Stdout and os.Stderr.
func NewRenderer(stdout, stderr io.Writer) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	return &Renderer{
		stdout:  stdout,
		stderr:  stderr,
		output:  output.NewWithProfile(stderr, output.ColorProfileANSI),
		stages:  make(map[string]*stageState),
		buffers: make(map[string]*bytes.Buffer),
	}
}

// NewQuiet returns a Renderer that discards everything.
func NewQuiet() *Renderer {
	return NewRenderer(io.Discard, io.Discard)
}

// Start is a no-op; the renderer writes synchronously.
func (r *Renderer) Start(_ context.Context) error {
	return nil
}

// Stop flushes all remaining buffers.
func (r *Renderer) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for spanID := range r.buffers {
		r.flushBufferLocked(spanID)
	}
	return nil
}

// OnPlanEmit prints the planned stages.
func (r *Renderer) OnPlanEmit(stages []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	plan := strings.Join(stages, " "+style.Arrow+" ")
	_, _ = fmt.Fprintf(r.stderr, "%s %s\n",
		r.output.String(fmt.Sprintf("Pruning in %d stage(s):", len(stages))).Faint(), plan)
}

// OnStageStart registers the stage. Nothing is printed until it completes.
func (r *Renderer) OnStageStart(spanID, _ /* parentID */, name string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stages[spanID] = &stageState{
		name:      name,
		startTime: startTime,
	}
	r.buffers[spanID] = new(bytes.Buffer)
}

// OnStageLog buffers data and prints complete lines with the stage prefix.
func (r *Renderer) OnStageLog(spanID string, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stage, ok := r.stages[spanID]
	if !ok {
		return
	}

	buf := r.buffers[spanID]
	buf.Write(data)

	for {
		idx := bytes.IndexByte(buf.Bytes(), '\n')
		if idx < 0 {
			break
		}
		line := buf.Next(idx + 1)
		r.printLineLocked(stage.name, line)
	}
}

// OnStageComplete flushes the remaining output and prints the stage status.
func (r *Renderer) OnStageComplete(spanID string, endTime time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stage, ok := r.stages[spanID]
	if !ok {
		return
	}

	r.flushBufferLocked(spanID)

	duration := endTime.Sub(stage.startTime).Round(time.Millisecond)
	prefix := r.output.String(fmt.Sprintf("[%s]", stage.name)).Faint()

	if err != nil {
		symbol := r.output.String(style.Cross).Foreground(termenv.ANSIRed)
		_, _ = fmt.Fprintf(r.stderr, "%s %s Failed after %v: %v\n", prefix, symbol, duration, err)
	} else {
		symbol := r.output.String(style.Check).Foreground(termenv.ANSIGreen)
		_, _ = fmt.Fprintf(r.stderr, "%s %s Completed in %v\n", prefix, symbol, duration)
	}

	delete(r.stages, spanID)
	delete(r.buffers, spanID)
}

// flushBufferLocked must be called with r.mu held.
func (r *Renderer) flushBufferLocked(spanID string) {
	stage, ok := r.stages[spanID]
	if !ok {
		return
	}

	buf := r.buffers[spanID]
	if buf.Len() > 0 {
		r.printLineLocked(stage.name, buf.Bytes())
		buf.Reset()
	}
}

// printLineLocked must be called with r.mu held.
func (r *Renderer) printLineLocked(stageName string, line []byte) {
	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))
	if len(line) == 0 {
		return
	}
	_, _ = fmt.Fprintf(r.stdout, "[%s] %s\n", stageName, line)
}
