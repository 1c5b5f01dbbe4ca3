package lifecycle_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/opsdesk/opsdesk/internal/lifecycle"
	"github.com/opsdesk/opsdesk/internal/model"
)

func TestApplyTransition(t *testing.T) {
	now := time.Date(2026, 3, 5, 14, 30, 0, 0, time.UTC)
	jan := model.Actor{DisplayName: "Jan"}

	tests := map[string]struct {
		order        model.Order
		targetStatus string
		note         string
		expResult    lifecycle.TransitionResult
	}{
		"Moving forward with a note should set status, clear review and log the note": {
			order:        model.Order{Status: "quote", RequiresReview: true},
			targetStatus: "confirmed",
			note:         "Customer called back",
			expResult: lifecycle.TransitionResult{
				Status:         "confirmed",
				NoteLog:        "Status: Confirmed (05.03.2026 14:30)|Customer called back — Jan",
				RequiresReview: false,
				Changed:        true,
			},
		},

		"Moving forward without a note should not grow the log": {
			order:        model.Order{Status: "quote", NoteLog: "existing line"},
			targetStatus: "confirmed",
			expResult: lifecycle.TransitionResult{
				Status:  "confirmed",
				NoteLog: "existing line",
				Changed: true,
			},
		},

		"The same status with no note and no flag change is a no-op": {
			order:        model.Order{Status: "confirmed", NoteLog: "existing line"},
			targetStatus: "confirmed",
			expResult: lifecycle.TransitionResult{
				Status:  "confirmed",
				NoteLog: "existing line",
			},
		},

		"The same status with a note is a real change": {
			order:        model.Order{Status: "confirmed"},
			targetStatus: "confirmed",
			note:         "supplier delay",
			expResult: lifecycle.TransitionResult{
				Status:  "confirmed",
				NoteLog: "Status: Confirmed (05.03.2026 14:30)|supplier delay — Jan",
				Changed: true,
			},
		},

		"The same status with a pending review flag still clears it": {
			order:        model.Order{Status: "confirmed", RequiresReview: true},
			targetStatus: "confirmed",
			expResult: lifecycle.TransitionResult{
				Status:  "confirmed",
				Changed: true,
			},
		},

		"Moving to the first actionable stage keeps the review flag": {
			order:        model.Order{Status: "quote", RequiresReview: true},
			targetStatus: "new",
			expResult: lifecycle.TransitionResult{
				Status:         "new",
				RequiresReview: true,
				Changed:        true,
			},
		},

		"An unknown target degrades to the first actionable stage": {
			order:        model.Order{Status: "quote"},
			targetStatus: "garbage-status",
			expResult: lifecycle.TransitionResult{
				Status:  "new",
				Changed: true,
			},
		},

		"An unknown current status equal to the normalized target is a no-op": {
			order:        model.Order{Status: "some-legacy-value"},
			targetStatus: "new",
			expResult: lifecycle.TransitionResult{
				Status: "some-legacy-value",
			},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got := lifecycle.ApplyTransition(test.order, test.targetStatus, test.note, jan, now)
			assert.Equal(t, test.expResult, got)
		})
	}
}

func TestApplyTransitionIdempotence(t *testing.T) {
	assert := assert.New(t)

	now := time.Date(2026, 3, 5, 14, 30, 0, 0, time.UTC)
	actor := model.Actor{DisplayName: "Ana"}

	order := model.Order{Status: "quote", RequiresReview: true}

	first := lifecycle.ApplyTransition(order, "shipping", "", actor, now)
	assert.True(first.Changed)

	order.Status = first.Status
	order.NoteLog = first.NoteLog
	order.RequiresReview = first.RequiresReview

	// Repeating the identical request against the updated order is free.
	second := lifecycle.ApplyTransition(order, "shipping", "", actor, now.Add(time.Hour))
	assert.False(second.Changed)
	assert.Equal(first.Status, second.Status)
	assert.Equal(first.NoteLog, second.NoteLog)
	assert.Equal(first.RequiresReview, second.RequiresReview)
}
