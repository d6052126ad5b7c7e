package tui

import (
	"fmt"
	"strings"
	"time"

	"go.trai.ch/prunelock/internal/ui/style"
)

const stageNameWidth = 10

// View renders the stage list followed by the most recent stage output.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("prunelock"))
	b.WriteString("\n")

	for _, node := range m.Stages {
		b.WriteString(renderStage(node))
		b.WriteString("\n")
	}

	lineStyle := logStyle
	if m.Width > 0 {
		lineStyle = lineStyle.MaxWidth(m.Width)
	}
	for _, line := range m.Logs {
		b.WriteString(lineStyle.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

func renderStage(node *StageNode) string {
	name := fmt.Sprintf("%-*s", stageNameWidth, node.Name)

	switch node.Status {
	case StatusRunning:
		return stageRunningStyle.Render("  " + style.Tilde + " " + name)
	case StatusDone:
		return stageDoneStyle.Render("  "+style.Check+" "+name) +
			durationStyle.Render(node.Duration.Round(time.Millisecond).String())
	case StatusError:
		line := stageErrorStyle.Render("  " + style.Cross + " " + name)
		if node.Err != nil {
			line += stageErrorStyle.Render(firstLine(node.Err.Error()))
		}
		return line
	default:
		return stagePendingStyle.Render("  " + style.Dot + " " + name)
	}
}

func firstLine(s string) string {
	if before, _, ok := strings.Cut(s, "\n"); ok {
		return before
	}
	return s
}
