package inventory

import (
	"time"
)

// TransactionReason classifies an audit-trail entry.
type TransactionReason string

const (
	ReasonConsumed     TransactionReason = "consumed"
	ReasonDirtyReturn  TransactionReason = "dirty_return"
	ReasonCleanRestock TransactionReason = "clean_restock"
)

// Transaction is one append-only audit entry. Entries are never mutated or
// deleted by this core; retrying a completion appends fresh entries, which is
// a documented limitation rather than a guarantee.
type Transaction struct {
	ID        string
	ItemID    string
	Delta     int
	Reason    TransactionReason
	TaskID    string
	RoomID    string
	Facility  string
	CreatedAt time.Time
}

// StockDelta is the net counter mutation for one item. For a cycle the three
// fields always sum to zero, which is what keeps total assets conserved
// across a completion.
type StockDelta struct {
	ItemID        string
	OnHand        int
	InCirculation int
	InLaundry     int
}

// Ref ties stock mutations and audit entries back to the originating task.
type Ref struct {
	TaskID   string
	RoomID   string
	Facility string
}

// StockDeltas converts a reconciliation result into counter mutations.
// Consumptions deplete on-hand stock. Cycles move the dirty return into
// laundry, draw the clean restock from on-hand, and book the difference
// against circulation, so OnHand + InCirculation + InLaundry is invariant.
func (r Result) StockDeltas() []StockDelta {
	deltas := make([]StockDelta, 0, len(r.Consumed)+len(r.Cycled))
	for _, consumption := range r.Consumed {
		deltas = append(deltas, StockDelta{
			ItemID: consumption.ItemID,
			OnHand: -consumption.Quantity,
		})
	}
	for _, cycle := range r.Cycled {
		deltas = append(deltas, StockDelta{
			ItemID:        cycle.ItemID,
			OnHand:        -cycle.CleanRestock,
			InCirculation: cycle.CleanRestock - cycle.DirtyReturn,
			InLaundry:     cycle.DirtyReturn,
		})
	}
	return deltas
}

// Transactions builds the audit entries for a reconciliation result. newID
// supplies identities so callers control id generation in tests.
func (r Result) Transactions(ref Ref, now time.Time, newID func() string) []Transaction {
	txns := make([]Transaction, 0, len(r.Consumed)+2*len(r.Cycled))
	add := func(itemID string, delta int, reason TransactionReason) {
		txns = append(txns, Transaction{
			ID:        newID(),
			ItemID:    itemID,
			Delta:     delta,
			Reason:    reason,
			TaskID:    ref.TaskID,
			RoomID:    ref.RoomID,
			Facility:  ref.Facility,
			CreatedAt: now,
		})
	}
	for _, consumption := range r.Consumed {
		add(consumption.ItemID, -consumption.Quantity, ReasonConsumed)
	}
	for _, cycle := range r.Cycled {
		add(cycle.ItemID, cycle.DirtyReturn, ReasonDirtyReturn)
		add(cycle.ItemID, -cycle.CleanRestock, ReasonCleanRestock)
	}
	return txns
}
