package memory

import (
	"context"
	"sync"

	appoutbox "rukorent/internal/app/outbox"
)

// Outbox keeps recorded events in memory when no relay is configured. Records
// can be drained for inspection.
type Outbox struct {
	mu      sync.Mutex
	records []appoutbox.EventRecord
	limit   int
}

// NewOutbox keeps at most limit records, dropping the oldest; limit <= 0 is unbounded.
func NewOutbox(limit int) *Outbox {
	return &Outbox{limit: limit}
}

func (o *Outbox) Add(ctx context.Context, record appoutbox.EventRecord) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.records = append(o.records, record)
	if o.limit > 0 && len(o.records) > o.limit {
		o.records = append([]appoutbox.EventRecord(nil), o.records[len(o.records)-o.limit:]...)
	}
	return nil
}

// Drain returns the buffered records and empties the buffer.
func (o *Outbox) Drain() []appoutbox.EventRecord {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := o.records
	o.records = nil
	return out
}

var _ appoutbox.Outbox = (*Outbox)(nil)
