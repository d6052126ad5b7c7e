package tui_test

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/prunelock/internal/adapters/tui"
	"go.trai.ch/zerr"
)

func plainModel(t *testing.T) *tui.Model {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)
	return tui.NewModel()
}

func TestView_Stages(t *testing.T) {
	start := time.Now()

	m := plainModel(t)
	m = updateModel(m, tui.MsgPlan{Stages: []string{"load", "prune", "write"}})
	m = updateModel(m, tui.MsgStageStart{SpanID: "s1", Name: "load", StartTime: start})
	m = updateModel(m, tui.MsgStageComplete{SpanID: "s1", EndTime: start.Add(12 * time.Millisecond)})
	m = updateModel(m, tui.MsgStageStart{SpanID: "s2", Name: "prune", StartTime: start})

	lines := strings.Split(strings.TrimRight(m.View(), "\n"), "\n")

	assert.Len(t, lines, 4)
	assert.Contains(t, lines[0], "prunelock")
	assert.Equal(t, "  ✓ load      12ms", lines[1])
	assert.Equal(t, "  ~ prune     ", lines[2])
	assert.Equal(t, "  · write     ", lines[3])
}

func TestView_ErrorShowsFirstLine(t *testing.T) {
	m := plainModel(t)
	m = updateModel(m, tui.MsgStageStart{SpanID: "s1", Name: "verify", StartTime: time.Now()})
	m = updateModel(m, tui.MsgStageComplete{
		SpanID:  "s1",
		EndTime: time.Now(),
		Err:     zerr.New("lockfile verification failed\nnpm ERR! code EUSAGE"),
	})

	view := m.View()
	assert.Contains(t, view, "  ✗ verify    lockfile verification failed")
	assert.NotContains(t, view, "EUSAGE")
}

func TestView_LogsTruncatedToWidth(t *testing.T) {
	m := plainModel(t)
	m = updateModel(m, tui.MsgStageStart{SpanID: "s1", Name: "verify", StartTime: time.Now()})
	m = updateModel(m, tui.MsgStageLog{SpanID: "s1", Data: []byte(strings.Repeat("x", 50) + "\n")})
	m = updateModel(m, tea.WindowSizeMsg{Width: 20, Height: 10})

	for _, line := range strings.Split(strings.TrimRight(m.View(), "\n"), "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 20)
	}
}
