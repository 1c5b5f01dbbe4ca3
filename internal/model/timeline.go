package model

import "time"

// EntryState represents the computed state of a timeline entry.
type EntryState string

const (
	// EntryStateCompleted indicates the stage is behind the order's current stage.
	EntryStateCompleted EntryState = "completed"
	// EntryStateCurrent indicates the stage the order is currently in.
	EntryStateCurrent EntryState = "current"
	// EntryStatePending indicates a stage not yet reached (or a note entry).
	EntryStatePending EntryState = "pending"
)

// CompletionSource represents where a task's completion value came from.
type CompletionSource string

const (
	// CompletionSourceAuto means the value was inferred from observable facts.
	CompletionSourceAuto CompletionSource = "auto"
	// CompletionSourceManual means an operator decided the value.
	CompletionSourceManual CompletionSource = "manual"
)

// TimelineEntry is one derived entry of an order's lifecycle timeline:
// either a catalog stage with its computed state and checklist, or a
// historical note decoded from the note log (StageKey empty, always pending,
// no checklist).
type TimelineEntry struct {
	ID          string
	Title       string
	Description string
	Timestamp   *time.Time
	State       EntryState
	StageKey    string
	Tasks       []TaskView
}

// TaskView is the derived view of one checklist item under a stage.
type TaskView struct {
	ID            string
	Label         string
	Completed     bool
	AutoCompleted bool
	// ManualOverride is nil when no operator decision is stored, in which
	// case Completed equals AutoCompleted.
	ManualOverride *bool
	Source         CompletionSource
}
