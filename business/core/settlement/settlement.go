// Package settlement provides the transfer collaborator for the bank. It
// represents the boundary to the asset rail: every withdrawal that commits
// is handed over here as a payout instruction on an append-only log that
// downstream settlement tooling consumes.
package settlement

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/feliperdao/kipubank/foundation/ledger"
)

// payout represents a single instruction written to the settlement log.
type payout struct {
	AccountID ledger.AccountID `json:"account_id"`
	Amount    uint64           `json:"amount"`
	TimeStamp uint64           `json:"timestamp"`
}

// Log records payout instructions on disk. This implements the
// ledger.Transferor interface.
type Log struct {
	mu   sync.Mutex
	file *os.File
}

// New constructs a settlement log at the specified path, creating the file
// if it does not exist yet.
func New(path string) (*Log, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_RDWR, 0600)
	if err != nil {
		return nil, err
	}

	return &Log{file: file}, nil
}

// Close closes the open settlement log.
func (sl *Log) Close() error {
	sl.mu.Lock()
	defer sl.mu.Unlock()

	return sl.file.Close()
}

// Transfer writes a payout instruction for the specified account and reports
// a definite success or failure within the calling operation.
func (sl *Log) Transfer(ctx context.Context, accountID ledger.AccountID, amount uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(payout{
		AccountID: accountID,
		Amount:    amount,
		TimeStamp: uint64(time.Now().UTC().UnixMilli()),
	})
	if err != nil {
		return err
	}

	sl.mu.Lock()
	defer sl.mu.Unlock()

	if _, err := sl.file.Write(append(data, '\n')); err != nil {
		return err
	}

	return nil
}
