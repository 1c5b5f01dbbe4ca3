package printer

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/opsdesk/opsdesk/internal/model"
)

// TablePrinter prints order information in a table format.
type TablePrinter struct {
	writer io.Writer
}

// NewTablePrinter creates a new table printer.
func NewTablePrinter(w io.Writer) *TablePrinter {
	return &TablePrinter{writer: w}
}

// PrintList prints orders in a table format.
func (t *TablePrinter) PrintList(orders []model.Order) error {
	if len(orders) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "ID\tCUSTOMER\tKIND\tSTATUS\tREVIEW\tCREATED")

	for _, o := range orders {
		review := ""
		if o.RequiresReview {
			review = "!"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", o.ID, o.Customer, o.Kind, o.Status, review, TimeAgo(o.CreatedAt))
	}

	return nil
}

// PrintTimeline prints an order header followed by its derived timeline,
// one line per entry with its checklist indented underneath.
func (t *TablePrinter) PrintTimeline(order model.Order, entries []model.TimelineEntry) error {
	fmt.Fprintf(t.writer, "Customer:   %s\n", order.Customer)
	fmt.Fprintf(t.writer, "ID:         %s\n", order.ID)
	fmt.Fprintf(t.writer, "Status:     %s\n", order.Status)
	if order.RequiresReview {
		fmt.Fprintf(t.writer, "Review:     required\n")
	}
	fmt.Fprintln(t.writer)

	for _, e := range entries {
		fmt.Fprintf(t.writer, "%s %s", stateMarker(e.State), e.Title)
		if e.Timestamp != nil {
			fmt.Fprintf(t.writer, "  (%s)", FormatTimestamp(*e.Timestamp))
		}
		fmt.Fprintln(t.writer)

		if e.StageKey == "" && e.Description != "" {
			fmt.Fprintf(t.writer, "      %s\n", e.Description)
		}

		for _, task := range e.Tasks {
			fmt.Fprintf(t.writer, "      %s %s%s\n", taskMarker(task.Completed), task.Label, sourceSuffix(task))
		}
	}

	return nil
}

// PrintDocument prints a recorded document.
func (t *TablePrinter) PrintDocument(doc model.Document) error {
	fmt.Fprintf(t.writer, "ID:         %s\n", doc.ID)
	fmt.Fprintf(t.writer, "Order:      %s\n", doc.OrderID)
	fmt.Fprintf(t.writer, "Kind:       %s\n", doc.Kind)
	if doc.FileRef != "" {
		fmt.Fprintf(t.writer, "File:       %s\n", doc.FileRef)
	}
	fmt.Fprintf(t.writer, "Created:    %s\n", FormatTimestamp(doc.CreatedAt))

	return nil
}

// PrintMessage prints a plain message.
func (t *TablePrinter) PrintMessage(msg string) error {
	_, err := fmt.Fprintln(t.writer, msg)
	return err
}

func stateMarker(state model.EntryState) string {
	switch state {
	case model.EntryStateCompleted:
		return "[x]"
	case model.EntryStateCurrent:
		return "[>]"
	default:
		return "[ ]"
	}
}

func taskMarker(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

func sourceSuffix(task model.TaskView) string {
	if task.Source != model.CompletionSourceManual {
		return ""
	}

	var b strings.Builder
	b.WriteString("  (manual")
	if task.ManualOverride != nil && *task.ManualOverride != task.AutoCompleted {
		b.WriteString(", overrides auto")
	}
	b.WriteString(")")
	return b.String()
}
