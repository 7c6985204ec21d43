package ledger

// Event type names as they appear in journals and feeds.
const (
	EventTypeTransfer = "Transfer"
	EventTypeApproval = "Approval"
)

// Event is a notification emitted by a successful ledger operation.
type Event interface {
	// Type returns the event type name.
	Type() string
}

// TransferEvent records a movement of units between accounts. From is nil
// only for the construction event that credits the initial supply.
type TransferEvent struct {
	From  *Identity `json:"from,omitempty"`
	To    *Identity `json:"to,omitempty"`
	Value Amount    `json:"value"`
}

// Type implements Event.
func (TransferEvent) Type() string { return EventTypeTransfer }

// ApprovalEvent records the resulting allowance after a successful
// approve, increase, or decrease.
type ApprovalEvent struct {
	Owner   Identity `json:"owner"`
	Spender Identity `json:"spender"`
	Value   Amount   `json:"value"`
}

// Type implements Event.
func (ApprovalEvent) Type() string { return EventTypeApproval }

// EventSink receives ordered notifications of state changes. Delivery and
// persistence are the sink's responsibility, not the ledger's.
type EventSink interface {
	Emit(Event)
}

// ExecutionContext supplies what the hosting environment knows about the
// current invocation: the authenticated caller identity and which
// identities are programmatic (contract) accounts.
type ExecutionContext interface {
	Caller() Identity
	IsContract(Identity) bool
}

// EventRecorder is an EventSink that collects events in order.
type EventRecorder struct {
	Events []Event
}

// Emit implements EventSink.
func (r *EventRecorder) Emit(e Event) {
	r.Events = append(r.Events, e)
}

// Reset discards all recorded events.
func (r *EventRecorder) Reset() {
	r.Events = r.Events[:0]
}

// NopSink is an EventSink that discards everything.
type NopSink struct{}

// Emit implements EventSink.
func (NopSink) Emit(Event) {}
