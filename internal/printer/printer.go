package printer

import "github.com/opsdesk/opsdesk/internal/model"

// Printer knows how to print order information in different formats.
type Printer interface {
	PrintList(orders []model.Order) error
	PrintTimeline(order model.Order, entries []model.TimelineEntry) error
	PrintDocument(doc model.Document) error
	PrintMessage(msg string) error
}
