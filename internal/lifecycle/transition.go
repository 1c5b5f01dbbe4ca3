package lifecycle

import (
	"strings"
	"time"

	"github.com/opsdesk/opsdesk/internal/model"
)

// TransitionResult is the outcome of applying a status transition to an
// order snapshot. When Changed is false the write was vacuous and nothing
// must be persisted.
type TransitionResult struct {
	Status         string
	NoteLog        string
	RequiresReview bool
	Changed        bool
}

// ApplyTransition computes the new status, note log and review flag for a
// transition request, without touching the order. Rules:
//
//   - The target status is normalized; unknown values degrade to the first
//     actionable stage.
//   - Moving anywhere past the first actionable stage clears the review
//     flag (progressing an order implicitly acknowledges it).
//   - If the normalized target equals the current status, no note text was
//     given and the review flag would not change, the transition is a no-op:
//     identical repeated requests never grow the note log.
func ApplyTransition(order model.Order, targetStatus, note string, actor model.Actor, now time.Time) TransitionResult {
	target := Normalize(targetStatus)
	current := Normalize(order.Status)

	review := order.RequiresReview
	if target.Key != FirstActionable().Key {
		review = false
	}

	if target.Key == current.Key && strings.TrimSpace(note) == "" && review == order.RequiresReview {
		return TransitionResult{
			Status:         order.Status,
			NoteLog:        order.NoteLog,
			RequiresReview: order.RequiresReview,
		}
	}

	return TransitionResult{
		Status:         target.Key,
		NoteLog:        AppendNote(order.NoteLog, target, note, actor, now),
		RequiresReview: review,
		Changed:        true,
	}
}
