package lifecycle

import (
	"fmt"
	"time"

	"github.com/opsdesk/opsdesk/internal/model"
)

// legacyStageStep is the backward offset per stage of distance used when
// synthesizing display timestamps for already-completed stages.
const legacyStageStep = 24 * time.Hour

// BuilderConfig is the configuration for the timeline builder.
type BuilderConfig struct {
	// LegacyStageTimestamps reproduces the historical rendering that
	// backdates completed/current stage entries by a fixed offset per stage
	// of distance from the current one. Those values are display sugar, not
	// recorded transition times; by default non-creation entries carry no
	// timestamp at all.
	LegacyStageTimestamps bool
}

// Builder derives an order's timeline view. It is stateless and safe for
// concurrent use; Build is a pure function of the order snapshot.
type Builder struct {
	legacyTimestamps bool
}

// NewBuilder creates a new timeline builder.
func NewBuilder(cfg BuilderConfig) *Builder {
	return &Builder{legacyTimestamps: cfg.LegacyStageTimestamps}
}

// Build composes the stage catalog, the order's status, its note log and its
// manual overrides into the ordered timeline. The output order is a
// contract: the creation entry first, then the catalog stages in catalog
// order, then one entry per note-log line, oldest first.
func (b *Builder) Build(order model.Order) []model.TimelineEntry {
	currentIdx := CurrentStageIndex(order.Status)

	stages := Stages()
	notes := DecodeNoteLog(order.NoteLog)
	entries := make([]model.TimelineEntry, 0, len(stages)+len(notes))

	// Creation pseudo-stage: always first, always completed, and the only
	// entry whose timestamp is a real recorded time.
	creation := stages[0]
	createdAt := order.CreatedAt
	entries = append(entries, model.TimelineEntry{
		ID:          creation.Key,
		Title:       creation.Title,
		Description: creation.Description,
		Timestamp:   &createdAt,
		State:       model.EntryStateCompleted,
		StageKey:    creation.Key,
	})

	for i, stage := range stages[1:] {
		state := model.EntryStatePending
		switch {
		case i < currentIdx:
			state = model.EntryStateCompleted
		case i == currentIdx:
			state = model.EntryStateCurrent
		}

		entries = append(entries, model.TimelineEntry{
			ID:          stage.Key,
			Title:       stage.Title,
			Description: stage.Description,
			Timestamp:   b.stageTimestamp(order.CreatedAt, state, currentIdx-i),
			State:       state,
			StageKey:    stage.Key,
			Tasks:       buildChecklist(stage.Key, currentIdx, order),
		})
	}

	for i, note := range notes {
		entries = append(entries, model.TimelineEntry{
			ID:          fmt.Sprintf("note-%d", i+1),
			Title:       note.Title,
			Description: note.Body,
			State:       model.EntryStatePending,
		})
	}

	return entries
}

// stageTimestamp synthesizes a display timestamp for a stage entry when
// legacy rendering is enabled. distance is the number of stages between the
// entry and the current one.
func (b *Builder) stageTimestamp(createdAt time.Time, state model.EntryState, distance int) *time.Time {
	if !b.legacyTimestamps || state == model.EntryStatePending {
		return nil
	}

	t := createdAt.Add(-time.Duration(distance) * legacyStageStep)
	return &t
}

func buildChecklist(stageKey string, currentIdx int, order model.Order) []model.TaskView {
	labels := ChecklistLabels(stageKey)
	if len(labels) == 0 {
		return nil
	}

	tasks := make([]model.TaskView, 0, len(labels))
	for _, label := range labels {
		taskID := TaskID(stageKey, label)
		auto := AutoCompleted(stageKey, label, currentIdx, order.Documents)

		task := model.TaskView{
			ID:            taskID,
			Label:         label,
			Completed:     auto,
			AutoCompleted: auto,
			Source:        model.CompletionSourceAuto,
		}

		if override, ok := order.TaskOverrides[taskID]; ok {
			task.Completed = override
			task.ManualOverride = &override
			task.Source = model.CompletionSourceManual
		}

		tasks = append(tasks, task)
	}

	return tasks
}
