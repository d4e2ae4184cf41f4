// Package journal implements the ability to read and write the ledger's
// append-only journal to different mediums.
package journal

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/feliperdao/kipubank/foundation/ledger"
)

// Disk represents the journal implementation for reading and storing records
// in an append-only file on disk, one JSON document per line. This implements
// the ledger.Journal interface.
type Disk struct {
	mu   sync.Mutex
	path string
	file *os.File
}

// NewDisk constructs a Disk value for use, creating the journal file if it
// does not exist yet.
func NewDisk(path string) (*Disk, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_RDWR, 0600)
	if err != nil {
		return nil, err
	}

	return &Disk{path: path, file: file}, nil
}

// Close closes the open journal file.
func (d *Disk) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.file.Close()
}

// Append writes the specified record to the end of the journal file.
func (d *Disk) Append(record ledger.Record) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, err := d.file.Write(append(data, '\n')); err != nil {
		return err
	}

	return nil
}

// GetRecord searches the journal on disk to locate and return the record
// with the specified sequence number.
func (d *Disk) GetRecord(seq uint64) (ledger.Record, error) {
	iter := d.ForEach()
	for record, err := iter.Next(); !iter.Done(); record, err = iter.Next() {
		if err != nil {
			return ledger.Record{}, err
		}

		if record.Seq == seq {
			return record, nil
		}
	}

	return ledger.Record{}, fmt.Errorf("record %d does not exist", seq)
}

// ForEach returns an iterator to walk through all the records in the
// journal starting with sequence number 1.
func (d *Disk) ForEach() ledger.Iterator {
	records, err := d.readAll()
	return &diskIterator{records: records, err: err}
}

// Reset will clear out the journal on disk.
func (d *Disk) Reset() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.file.Close(); err != nil {
		return err
	}

	file, err := os.OpenFile(d.path, os.O_CREATE|os.O_TRUNC|os.O_APPEND|os.O_RDWR, 0600)
	if err != nil {
		return err
	}

	d.file = file
	return nil
}

// readAll consumes the journal file from the beginning.
func (d *Disk) readAll() ([]ledger.Record, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	file, err := os.Open(d.path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var records []ledger.Record

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if len(scanner.Bytes()) == 0 {
			continue
		}

		var record ledger.Record
		if err := json.Unmarshal(scanner.Bytes(), &record); err != nil {
			return nil, fmt.Errorf("corrupt journal line: %w", err)
		}

		records = append(records, record)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// =============================================================================

// diskIterator represents the iteration implementation for walking through
// and reading records on disk. This implements the ledger.Iterator interface.
type diskIterator struct {
	records []ledger.Record
	err     error
	current int
	eoj     bool // Represents the iterator is at the end of the journal.
}

// Next retrieves the next record from the journal.
func (di *diskIterator) Next() (ledger.Record, error) {
	if di.eoj {
		return ledger.Record{}, errors.New("end of journal")
	}

	// A read failure is a real error, not the end of the journal. Done
	// keeps reporting false so the caller's error check runs.
	if di.err != nil {
		return ledger.Record{}, di.err
	}

	if di.current >= len(di.records) {
		di.eoj = true
		return ledger.Record{}, errors.New("end of journal")
	}

	record := di.records[di.current]
	di.current++

	return record, nil
}

// Done returns the end of journal value.
func (di *diskIterator) Done() bool {
	return di.eoj
}
