// Package genesis maintains access to the genesis file that fixes the
// construction parameters of the bank.
package genesis

import (
	"encoding/json"
	"errors"
	"os"
	"time"
)

// Genesis represents the genesis file.
type Genesis struct {
	Date          time.Time         `json:"date"`
	WithdrawLimit uint64            `json:"withdraw_limit"` // The maximum amount a single withdrawal can move.
	BankCap       uint64            `json:"bank_cap"`       // The maximum total funds the bank will hold.
	Balances      map[string]uint64 `json:"balances"`       // Opening balances applied before the journal replay.
}

// Validate checks the construction parameters are usable. Both bounds are
// fixed for the lifetime of the ledger and must be greater than zero.
func (g Genesis) Validate() error {
	if g.WithdrawLimit == 0 {
		return errors.New("withdraw limit must be greater than zero")
	}

	if g.BankCap == 0 {
		return errors.New("bank cap must be greater than zero")
	}

	return nil
}

// =============================================================================

// Load opens and consumes the genesis file.
func Load(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, err
	}

	var genesis Genesis
	if err := json.Unmarshal(content, &genesis); err != nil {
		return Genesis{}, err
	}

	return genesis, nil
}
