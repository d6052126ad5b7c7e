package tui

import "time"

// MsgPlan announces the stages of the upcoming run.
type MsgPlan struct {
	Stages []string
}

// MsgStageStart marks a stage as running.
type MsgStageStart struct {
	SpanID    string
	Name      string
	StartTime time.Time
}

// MsgStageLog carries output written by a stage.
type MsgStageLog struct {
	SpanID string
	Data   []byte
}

// MsgStageComplete marks a stage as finished. Err is nil on success.
type MsgStageComplete struct {
	SpanID  string
	EndTime time.Time
	Err     error
}
