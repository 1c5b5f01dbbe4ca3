package lifecycle

import (
	"strings"

	"github.com/opsdesk/opsdesk/internal/model"
)

// checklists defines the operator checklist under each stage. Labels are
// operator-facing prose; their task IDs (stage key + label slug) are what
// manual overrides are keyed by, so renaming a label orphans its overrides.
var checklists = map[string][]string{
	"quote":        {"Customer contacted", "Quote sent"},
	"confirmed":    {"Order confirmed with customer", "Advance invoice issued"},
	"production":   {"Materials ordered", "Order packed"},
	"shipping":     {"Shipment sent", "Final invoice issued"},
	"installation": {"Installation scheduled", "Handover protocol signed"},
}

// autoRule is one auto-completion rule. Rules are matched by owning stage
// and a lowercase keyword against the task label, and exactly one of the
// rule fields is set:
//
//   - reachedStage: the task is done once the order's progression is at or
//     past that stage (the work is implied by having moved on).
//   - documentKind: the task is done once a non-cancelled document of that
//     kind exists for the order (requiresFile additionally demands a
//     rendered artifact reference, not just a database row).
//
// The slice is evaluated top to bottom; a label matching no rule falls back
// to "done once its owning stage is completed". Keyword matching is loose on
// purpose (labels are prose, not codes) which makes label edits a known
// fragility, reviewed here in one place.
type autoRule struct {
	stageKey     string
	keyword      string
	reachedStage string
	documentKind string
	requiresFile bool
}

var autoRules = []autoRule{
	{stageKey: "quote", keyword: "quote", documentKind: model.DocumentKindQuote, requiresFile: true},
	{stageKey: "confirmed", keyword: "advance", documentKind: model.DocumentKindProforma},
	{stageKey: "production", keyword: "packed", reachedStage: "shipping"},
	{stageKey: "shipping", keyword: "invoice", documentKind: model.DocumentKindInvoice},
	{stageKey: "shipping", keyword: "sent", reachedStage: "installation"},
}

// ChecklistLabels returns the checklist labels defined under a stage, in
// display order. Stages without a checklist return nil.
func ChecklistLabels(stageKey string) []string {
	return checklists[stageKey]
}

// TaskID returns the stable identifier of a checklist item. Overrides are
// stored under these IDs, so the mapping must not change across reads.
func TaskID(stageKey, label string) string {
	return stageKey + "/" + slugify(label)
}

// KnownTaskID reports whether a task ID refers to a defined checklist item.
func KnownTaskID(taskID string) bool {
	for stageKey, labels := range checklists {
		for _, label := range labels {
			if TaskID(stageKey, label) == taskID {
				return true
			}
		}
	}

	return false
}

// AutoCompleted infers a task's completion from observable facts: the
// order's progression index and the documents issued for it. It is total,
// an unmatched label falls through to the owning stage's completion.
func AutoCompleted(stageKey, label string, currentStageIndex int, documents []model.Document) bool {
	lowered := strings.ToLower(label)
	for _, r := range autoRules {
		if r.stageKey != stageKey || !strings.Contains(lowered, r.keyword) {
			continue
		}

		switch {
		case r.reachedStage != "":
			return currentStageIndex >= ActionableIndex(r.reachedStage)
		case r.documentKind != "":
			return documentIssued(documents, r.documentKind, r.requiresFile)
		}
	}

	// No specific rule: the task is done once its owning stage is behind us.
	idx := ActionableIndex(stageKey)
	return idx >= 0 && idx < currentStageIndex
}

func documentIssued(documents []model.Document, kind string, requiresFile bool) bool {
	for _, d := range documents {
		if d.Cancelled || !strings.EqualFold(d.Kind, kind) {
			continue
		}
		if requiresFile && d.FileRef == "" {
			continue
		}
		return true
	}

	return false
}

func slugify(label string) string {
	var b strings.Builder
	lastDash := true // strip leading dashes.
	for _, r := range strings.ToLower(label) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
