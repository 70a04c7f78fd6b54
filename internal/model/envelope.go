package model

type EventKind string

const (
	EventCustomer EventKind = "customer"
	EventInvoice  EventKind = "invoice"
	EventRevenue  EventKind = "revenue"
)

// Envelope is a billing event consumed from Kafka by the ingest worker.
// Exactly one of Customer, Invoice or Revenue is set, matching Kind.
type Envelope struct {
	ID       string    `json:"id"` // event ULID
	Kind     EventKind `json:"kind"`
	Customer *Customer `json:"customer,omitempty"`
	Invoice  *Invoice  `json:"invoice,omitempty"`
	Revenue  *Revenue  `json:"revenue,omitempty"`
}
