package tui

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/prunelock/internal/ui/style"
)

var (
	stagePendingStyle = lipgloss.NewStyle().
				Foreground(style.Muted)

	stageRunningStyle = lipgloss.NewStyle().
				Foreground(style.Accent).
				Bold(true)

	stageDoneStyle = lipgloss.NewStyle().
			Foreground(style.Green)

	stageErrorStyle = lipgloss.NewStyle().
			Foreground(style.Red)

	durationStyle = lipgloss.NewStyle().
			Foreground(style.Muted).
			Faint(true)

	logStyle = lipgloss.NewStyle().
			Foreground(style.Muted).
			PaddingLeft(4)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(style.Accent).
			Foreground(style.White)
)
