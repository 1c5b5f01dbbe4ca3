package printer

import (
	"encoding/json"
	"io"
	"time"

	"github.com/opsdesk/opsdesk/internal/model"
)

// JSONPrinter prints order information in JSON format.
type JSONPrinter struct {
	writer io.Writer
}

// NewJSONPrinter creates a new JSON printer.
func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{writer: w}
}

// listItem represents an order in the list output (subset of fields).
type listItem struct {
	ID             string    `json:"id"`
	Customer       string    `json:"customer"`
	Kind           string    `json:"kind"`
	Status         string    `json:"status"`
	RequiresReview bool      `json:"requires_review"`
	CreatedAt      time.Time `json:"created_at"`
}

// timelineOutput represents the full timeline output.
type timelineOutput struct {
	OrderID       string          `json:"order_id"`
	Customer      string          `json:"customer"`
	CurrentStatus string          `json:"current_status"`
	Entries       []timelineEntry `json:"entries"`
}

type timelineEntry struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Timestamp   *time.Time `json:"timestamp,omitempty"`
	State       string     `json:"state"`
	StageKey    string     `json:"stage_key,omitempty"`
	Tasks       []taskView `json:"tasks,omitempty"`
}

type taskView struct {
	ID             string `json:"id"`
	Label          string `json:"label"`
	Completed      bool   `json:"completed"`
	AutoCompleted  bool   `json:"auto_completed"`
	ManualOverride *bool  `json:"manual_override,omitempty"`
	Source         string `json:"source"`
}

type documentOutput struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	Kind      string    `json:"kind"`
	Cancelled bool      `json:"cancelled"`
	FileRef   string    `json:"file_ref,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// PrintList prints orders in JSON format.
func (j *JSONPrinter) PrintList(orders []model.Order) error {
	items := make([]listItem, 0, len(orders))
	for _, o := range orders {
		items = append(items, listItem{
			ID:             o.ID,
			Customer:       o.Customer,
			Kind:           o.Kind,
			Status:         o.Status,
			RequiresReview: o.RequiresReview,
			CreatedAt:      o.CreatedAt,
		})
	}

	return j.encode(items)
}

// PrintTimeline prints an order's derived timeline in JSON format.
func (j *JSONPrinter) PrintTimeline(order model.Order, entries []model.TimelineEntry) error {
	out := timelineOutput{
		OrderID:       order.ID,
		Customer:      order.Customer,
		CurrentStatus: order.Status,
		Entries:       make([]timelineEntry, 0, len(entries)),
	}

	for _, e := range entries {
		entry := timelineEntry{
			ID:          e.ID,
			Title:       e.Title,
			Description: e.Description,
			Timestamp:   e.Timestamp,
			State:       string(e.State),
			StageKey:    e.StageKey,
		}
		for _, task := range e.Tasks {
			entry.Tasks = append(entry.Tasks, taskView{
				ID:             task.ID,
				Label:          task.Label,
				Completed:      task.Completed,
				AutoCompleted:  task.AutoCompleted,
				ManualOverride: task.ManualOverride,
				Source:         string(task.Source),
			})
		}
		out.Entries = append(out.Entries, entry)
	}

	return j.encode(out)
}

// PrintDocument prints a recorded document in JSON format.
func (j *JSONPrinter) PrintDocument(doc model.Document) error {
	return j.encode(documentOutput{
		ID:        doc.ID,
		OrderID:   doc.OrderID,
		Kind:      doc.Kind,
		Cancelled: doc.Cancelled,
		FileRef:   doc.FileRef,
		CreatedAt: doc.CreatedAt,
	})
}

// PrintMessage prints a plain message as JSON.
func (j *JSONPrinter) PrintMessage(msg string) error {
	return j.encode(map[string]string{"message": msg})
}

func (j *JSONPrinter) encode(v any) error {
	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
