// Package lifecycle implements the order lifecycle derivation engine: the
// fixed stage catalog, the note-log codec, checklist auto-completion,
// manual override handling, the timeline builder and the status transition
// rules. Everything in this package is pure computation over model types,
// persistence belongs to the callers.
package lifecycle

// Stage is one fixed step of the order lifecycle pipeline.
type Stage struct {
	Key         string
	Title       string
	Description string
}

// CreationStageKey is the pseudo-stage that represents order creation itself.
// It is always the first timeline entry and always completed, it is not a
// reachable order status.
const CreationStageKey = "created"

// catalog is the canonical ordered pipeline. Index 0 is the creation
// pseudo-stage, the rest are the reachable statuses in order. Changing this
// list is a code change, never runtime configuration.
var catalog = []Stage{
	{Key: CreationStageKey, Title: "Order received", Description: "The order was registered in the system."},
	{Key: "new", Title: "New", Description: "Waiting for the back office to pick the order up."},
	{Key: "quote", Title: "Quotation", Description: "Pricing is being prepared and sent to the customer."},
	{Key: "confirmed", Title: "Confirmed", Description: "The customer accepted the quote."},
	{Key: "production", Title: "In preparation", Description: "Goods are being prepared and packed."},
	{Key: "shipping", Title: "Shipping", Description: "The shipment is on its way to the customer."},
	{Key: "installation", Title: "Installation", Description: "On-site installation at the customer."},
	{Key: "done", Title: "Completed", Description: "The order is finished and settled."},
}

// Stages returns the full catalog including the creation pseudo-stage.
// Callers must not mutate the returned slice.
func Stages() []Stage {
	return catalog
}

// ActionableStages returns the reachable stages (the catalog without the
// creation pseudo-stage).
func ActionableStages() []Stage {
	return catalog[1:]
}

// FirstActionable returns the stage new orders start in.
func FirstActionable() Stage {
	return catalog[1]
}

// Normalize maps an arbitrary status string onto a catalog stage. Matching is
// exact (case and whitespace sensitive) against stage keys, anything else
// degrades to the first actionable stage so legacy or foreign values never
// fail a read.
func Normalize(rawStatus string) Stage {
	for _, s := range catalog[1:] {
		if s.Key == rawStatus {
			return s
		}
	}

	return FirstActionable()
}

// ActionableIndex returns the position of a stage key within the actionable
// pipeline, -1 if the key is not a reachable stage.
func ActionableIndex(key string) int {
	for i, s := range catalog[1:] {
		if s.Key == key {
			return i
		}
	}

	return -1
}

// CurrentStageIndex returns the actionable-pipeline index for an order's raw
// status, after normalization. It is always a valid index.
func CurrentStageIndex(rawStatus string) int {
	return ActionableIndex(Normalize(rawStatus).Key)
}
