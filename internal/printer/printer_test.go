package printer_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsdesk/opsdesk/internal/lifecycle"
	"github.com/opsdesk/opsdesk/internal/model"
	"github.com/opsdesk/opsdesk/internal/printer"
)

func orderFixture() model.Order {
	createdAt := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	return model.Order{
		ID:             "01234567890ABCDEFGHIJKLMNOP",
		Customer:       "Kowalski sp. z o.o.",
		Kind:           "installation",
		Status:         "shipping",
		NoteLog:        "a remark",
		RequiresReview: false,
		CreatedAt:      createdAt,
	}
}

func timelineFixture(o model.Order) []model.TimelineEntry {
	return lifecycle.NewBuilder(lifecycle.BuilderConfig{}).Build(o)
}

func TestTablePrinterPrintTimeline(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	o := orderFixture()
	o.TaskOverrides = map[string]bool{lifecycle.TaskID("shipping", "Shipment sent"): true}

	err := p.PrintTimeline(o, timelineFixture(o))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Customer:   Kowalski sp. z o.o.")
	assert.Contains(t, out, "Status:     shipping")
	assert.Contains(t, out, "[x] Order received")
	assert.Contains(t, out, "[>] Shipping")
	assert.Contains(t, out, "[ ] Installation")
	assert.Contains(t, out, "[x] Shipment sent  (manual, overrides auto)")
	assert.Contains(t, out, "a remark")
}

func TestJSONPrinterPrintTimeline(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewJSONPrinter(&buf)

	o := orderFixture()
	err := p.PrintTimeline(o, timelineFixture(o))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"current_status": "shipping"`)
	assert.Contains(t, out, `"state": "current"`)
	assert.Contains(t, out, `"id": "note-1"`)
	assert.Contains(t, out, `"source": "auto"`)
}

func TestTablePrinterPrintList(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	o := orderFixture()
	o.RequiresReview = true
	err := p.PrintList([]model.Order{o})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "CUSTOMER")
	assert.Contains(t, out, "Kowalski sp. z o.o.")
	assert.Contains(t, out, "shipping")
	assert.Contains(t, out, "!")
}

func TestTablePrinterPrintListEmpty(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	require.NoError(t, p.PrintList(nil))
	assert.Empty(t, buf.String())
}

func TestPrintersPrintDocument(t *testing.T) {
	doc := model.Document{
		ID:        "doc-1",
		OrderID:   "01234567890ABCDEFGHIJKLMNOP",
		Kind:      model.DocumentKindInvoice,
		FileRef:   "/files/inv-9.pdf",
		CreatedAt: time.Date(2026, 3, 5, 14, 30, 0, 0, time.UTC),
	}

	var table bytes.Buffer
	require.NoError(t, printer.NewTablePrinter(&table).PrintDocument(doc))
	assert.Contains(t, table.String(), "Kind:       invoice")
	assert.Contains(t, table.String(), "File:       /files/inv-9.pdf")

	var js bytes.Buffer
	require.NoError(t, printer.NewJSONPrinter(&js).PrintDocument(doc))
	assert.Contains(t, js.String(), `"kind": "invoice"`)
}

func TestTablePrinterPrintMessage(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	require.NoError(t, p.PrintMessage("done"))
	assert.Equal(t, "done\n", buf.String())
}
