package journal

import (
	"errors"
	"fmt"
	"sync"

	"github.com/feliperdao/kipubank/foundation/ledger"
)

// Memory represents the journal implementation for reading and storing
// records in memory using a slice. This implements the ledger.Journal
// interface and is used for tests and ephemeral runs.
type Memory struct {
	mu      sync.RWMutex
	records []ledger.Record
}

// NewMemory constructs a Memory value for use.
func NewMemory() (*Memory, error) {
	return &Memory{}, nil
}

// Close in this implementation has nothing to do since everything
// is in memory.
func (m *Memory) Close() error {
	return nil
}

// Append takes the specified record and stores it in memory.
func (m *Memory) Append(record ledger.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.records)+1 != int(record.Seq) {
		return errors.New("record is out of order")
	}

	m.records = append(m.records, record)

	return nil
}

// GetRecord searches the journal to locate and return the record with the
// specified sequence number.
func (m *Memory) GetRecord(seq uint64) (ledger.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	l := uint64(len(m.records))
	if seq == 0 || seq > l {
		return ledger.Record{}, fmt.Errorf("record %d does not exist", seq)
	}

	return m.records[seq-1], nil
}

// ForEach returns an iterator to walk through all the records in the
// journal starting with sequence number 1.
func (m *Memory) ForEach() ledger.Iterator {
	return &memoryIterator{journal: m, current: 1}
}

// Reset will clear out the in-memory journal.
func (m *Memory) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records = []ledger.Record{}
	return nil
}

// =============================================================================

// memoryIterator represents the iteration implementation for walking
// through the records in memory. This implements the ledger.Iterator
// interface.
type memoryIterator struct {
	journal *Memory // Access to the journal API.
	current uint64  // Current sequence number being iterated over.
	eoj     bool    // Represents the iterator is at the end of the journal.
}

// Next retrieves the next record from the journal.
func (mi *memoryIterator) Next() (ledger.Record, error) {
	if mi.eoj {
		return ledger.Record{}, errors.New("end of journal")
	}

	record, err := mi.journal.GetRecord(mi.current)
	if err != nil {
		mi.eoj = true
	}

	mi.current++

	return record, err
}

// Done returns the end of journal value.
func (mi *memoryIterator) Done() bool {
	return mi.eoj
}
