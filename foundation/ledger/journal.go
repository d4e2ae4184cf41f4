package ledger

import "time"

// Set of record kinds written to the journal.
const (
	KindDeposit  = "deposit"
	KindWithdraw = "withdraw"
	KindReceive  = "receive"
)

// Record represents a single committed mutation in the journal. Replaying
// the records over the genesis balances reproduces the ledger state.
type Record struct {
	Seq       uint64    `json:"seq"`
	Kind      string    `json:"kind"`
	AccountID AccountID `json:"account_id"`
	Amount    uint64    `json:"amount"`
	Balance   uint64    `json:"balance"` // Account balance after the mutation.
	Total     uint64    `json:"total"`   // Ledger total after the mutation.
	TimeStamp uint64    `json:"timestamp"`
}

// newRecord constructs a journal record for a committed mutation.
func newRecord(seq uint64, kind string, accountID AccountID, amount uint64, balance uint64, total uint64) Record {
	return Record{
		Seq:       seq,
		Kind:      kind,
		AccountID: accountID,
		Amount:    amount,
		Balance:   balance,
		Total:     total,
		TimeStamp: uint64(time.Now().UTC().UnixMilli()),
	}
}

// =============================================================================

// Journal interface represents the behavior required to be implemented by
// any package providing support for storing and reading the ledger's
// append-only journal.
type Journal interface {
	Append(record Record) error
	GetRecord(seq uint64) (Record, error)
	ForEach() Iterator
	Close() error
	Reset() error
}

// Iterator interface represents the behavior required to be implemented by
// any package providing support to iterate over the journal records.
type Iterator interface {
	Next() (Record, error)
	Done() bool
}
