package tui_test

import (
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/prunelock/internal/adapters/tui"
	"go.trai.ch/zerr"
)

func updateModel(m *tui.Model, msg tea.Msg) *tui.Model {
	updated, _ := m.Update(msg)
	return updated.(*tui.Model)
}

func TestModel_Plan(t *testing.T) {
	m := tui.NewModel()
	m = updateModel(m, tui.MsgPlan{Stages: []string{"load", "prune", "write"}})

	require.Len(t, m.Stages, 3)
	for _, node := range m.Stages {
		assert.Equal(t, tui.StatusPending, node.Status)
	}
	assert.Same(t, m.Stages[1], m.StageMap["prune"])
}

func TestModel_StageLifecycle(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	m := tui.NewModel()
	m = updateModel(m, tui.MsgPlan{Stages: []string{"load", "prune"}})
	m = updateModel(m, tui.MsgStageStart{SpanID: "s1", Name: "load", StartTime: start})

	assert.Equal(t, tui.StatusRunning, m.Stages[0].Status)
	assert.Equal(t, tui.StatusPending, m.Stages[1].Status)

	m = updateModel(m, tui.MsgStageComplete{SpanID: "s1", EndTime: start.Add(40 * time.Millisecond)})
	assert.Equal(t, tui.StatusDone, m.Stages[0].Status)
	assert.Equal(t, 40*time.Millisecond, m.Stages[0].Duration)

	m = updateModel(m, tui.MsgStageStart{SpanID: "s2", Name: "prune", StartTime: start})
	m = updateModel(m, tui.MsgStageComplete{SpanID: "s2", EndTime: start, Err: zerr.New("missing dependency")})
	assert.Equal(t, tui.StatusError, m.Stages[1].Status)
	require.Error(t, m.Stages[1].Err)
}

func TestModel_UnplannedStage(t *testing.T) {
	m := tui.NewModel()
	m = updateModel(m, tui.MsgPlan{Stages: []string{"load"}})
	m = updateModel(m, tui.MsgStageStart{SpanID: "s1", Name: "verify", StartTime: time.Now()})

	require.Len(t, m.Stages, 2)
	assert.Equal(t, "verify", m.Stages[1].Name)
	assert.Equal(t, tui.StatusRunning, m.Stages[1].Status)
}

func TestModel_UnknownSpan(t *testing.T) {
	m := tui.NewModel()
	m = updateModel(m, tui.MsgPlan{Stages: []string{"load"}})
	m = updateModel(m, tui.MsgStageLog{SpanID: "nope", Data: []byte("ignored\n")})
	m = updateModel(m, tui.MsgStageComplete{SpanID: "nope", EndTime: time.Now()})

	assert.Empty(t, m.Logs)
	assert.Equal(t, tui.StatusPending, m.Stages[0].Status)
}

func TestModel_LogWindow(t *testing.T) {
	m := tui.NewModel()
	m = updateModel(m, tui.MsgStageStart{SpanID: "s1", Name: "verify", StartTime: time.Now()})

	for i := range tui.MaxLogLines + 3 {
		m = updateModel(m, tui.MsgStageLog{SpanID: "s1", Data: fmt.Appendf(nil, "line %d\n", i)})
	}

	require.Len(t, m.Logs, tui.MaxLogLines)
	assert.Equal(t, "line 3", m.Logs[0])
	assert.Equal(t, fmt.Sprintf("line %d", tui.MaxLogLines+2), m.Logs[tui.MaxLogLines-1])
}

func TestModel_PartialLines(t *testing.T) {
	m := tui.NewModel()
	m = updateModel(m, tui.MsgStageStart{SpanID: "s1", Name: "verify", StartTime: time.Now()})
	m = updateModel(m, tui.MsgStageLog{SpanID: "s1", Data: []byte("added 3 pack")})
	assert.Empty(t, m.Logs)

	m = updateModel(m, tui.MsgStageLog{SpanID: "s1", Data: []byte("ages\r\n\nup to")})
	assert.Equal(t, []string{"added 3 packages"}, m.Logs)

	m = updateModel(m, tui.MsgStageComplete{SpanID: "s1", EndTime: time.Now()})
	assert.Equal(t, []string{"added 3 packages", "up to"}, m.Logs)
}

func TestModel_WindowSize(t *testing.T) {
	m := tui.NewModel()
	m = updateModel(m, tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.Equal(t, 80, m.Width)
	assert.Nil(t, m.Init())
}
