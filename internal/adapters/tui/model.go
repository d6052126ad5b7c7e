// Package tui renders pipeline progress as a live, inline stage list.
package tui

import (
	"bytes"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxLogLines is how many trailing output lines stay visible below the stage list.
const MaxLogLines = 8

// StageStatus represents the current state of a stage.
type StageStatus string

const (
	// StatusPending indicates the stage is waiting to start.
	StatusPending StageStatus = "Pending"
	// StatusRunning indicates the stage is currently executing.
	StatusRunning StageStatus = "Running"
	// StatusDone indicates the stage completed successfully.
	StatusDone StageStatus = "Done"
	// StatusError indicates the stage failed.
	StatusError StageStatus = "Error"
)

// StageNode represents a single stage in the list.
type StageNode struct {
	Name      string
	Status    StageStatus
	StartTime time.Time
	Duration  time.Duration
	Err       error
}

// Model represents the TUI state.
type Model struct {
	Stages   []*StageNode
	StageMap map[string]*StageNode
	SpanMap  map[string]*StageNode
	Logs     []string
	Width    int

	partial []byte
}

// NewModel creates an empty Model.
func NewModel() *Model {
	return &Model{
		StageMap: make(map[string]*StageNode),
		SpanMap:  make(map[string]*StageNode),
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width

	case MsgPlan:
		m.Stages = make([]*StageNode, len(msg.Stages))
		m.StageMap = make(map[string]*StageNode, len(msg.Stages))
		m.SpanMap = make(map[string]*StageNode)
		m.Logs = nil
		m.partial = nil
		for i, name := range msg.Stages {
			m.Stages[i] = &StageNode{Name: name, Status: StatusPending}
			m.StageMap[name] = m.Stages[i]
		}

	case MsgStageStart:
		node, ok := m.StageMap[msg.Name]
		if !ok {
			node = &StageNode{Name: msg.Name}
			m.Stages = append(m.Stages, node)
			m.StageMap[msg.Name] = node
		}
		node.Status = StatusRunning
		node.StartTime = msg.StartTime
		m.SpanMap[msg.SpanID] = node

	case MsgStageLog:
		if _, ok := m.SpanMap[msg.SpanID]; ok {
			m.appendLog(msg.Data)
		}

	case MsgStageComplete:
		if node, ok := m.SpanMap[msg.SpanID]; ok {
			node.Duration = msg.EndTime.Sub(node.StartTime)
			node.Err = msg.Err
			if msg.Err != nil {
				node.Status = StatusError
			} else {
				node.Status = StatusDone
			}
			m.flushPartial()
		}
	}

	return m, nil
}

// appendLog splits data into lines and keeps the last MaxLogLines of them.
func (m *Model) appendLog(data []byte) {
	m.partial = append(m.partial, data...)
	for {
		idx := bytes.IndexByte(m.partial, '\n')
		if idx < 0 {
			return
		}
		m.pushLine(m.partial[:idx])
		m.partial = m.partial[idx+1:]
	}
}

func (m *Model) flushPartial() {
	if len(m.partial) > 0 {
		m.pushLine(m.partial)
		m.partial = nil
	}
}

func (m *Model) pushLine(line []byte) {
	line = bytes.TrimRight(line, "\r")
	if len(line) == 0 {
		return
	}
	m.Logs = append(m.Logs, string(line))
	if over := len(m.Logs) - MaxLogLines; over > 0 {
		m.Logs = m.Logs[over:]
	}
}
