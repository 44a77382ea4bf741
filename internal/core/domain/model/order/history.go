package order

import (
	"time"

	"laundry/internal/core/domain/model/kernel"
)

// HistoryEntry records one fulfillment status change.
type HistoryEntry struct {
	status  Status
	at      time.Time
	actorID kernel.UUID
}

func NewHistoryEntry(status Status, at time.Time, actorID kernel.UUID) HistoryEntry {
	return HistoryEntry{status: status, at: at.UTC(), actorID: actorID}
}

func (h HistoryEntry) Status() Status       { return h.status }
func (h HistoryEntry) At() time.Time        { return h.at }
func (h HistoryEntry) ActorID() kernel.UUID { return h.actorID }
