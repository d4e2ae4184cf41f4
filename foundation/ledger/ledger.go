// Package ledger implements the core API for the bank and enforces the
// business rules for a bounded ledger: a global cap on the total funds held,
// a per-transaction withdraw limit, and protection against re-entrant
// mutation from the transfer collaborator.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/feliperdao/kipubank/foundation/genesis"
)

// EventHandler defines a function that is called when events occur in the
// processing of ledger operations.
type EventHandler func(v string, args ...any)

// Transferor interface represents the behavior required to be implemented by
// any package providing support for moving the underlying asset out of the
// bank during a withdrawal. Implementations must propagate the provided
// context into any ledger calls they make. The context carries the marker
// that turns a re-entrant mutation into ErrReentrancy; a fresh context would
// queue the call behind the in-flight operation instead.
type Transferor interface {
	Transfer(ctx context.Context, accountID AccountID, amount uint64) error
}

// TransferorFunc is an adapter to allow the use of ordinary functions as
// a transfer collaborator.
type TransferorFunc func(ctx context.Context, accountID AccountID, amount uint64) error

// Transfer implements the Transferor interface.
func (f TransferorFunc) Transfer(ctx context.Context, accountID AccountID, amount uint64) error {
	return f(ctx, accountID, amount)
}

// =============================================================================

// ctxKey represents the type of value for the context key.
type ctxKey int

// inFlightKey marks the context the ledger hands to the transfer collaborator
// while a mutating operation is executing.
const inFlightKey ctxKey = 1

// markInFlight returns a context that identifies calls made from inside the
// transfer step of an in-flight operation.
func markInFlight(ctx context.Context) context.Context {
	return context.WithValue(ctx, inFlightKey, true)
}

// isInFlight reports whether the context carries the in-flight mark.
func isInFlight(ctx context.Context) bool {
	v, ok := ctx.Value(inFlightKey).(bool)
	return ok && v
}

// =============================================================================

// Stats represents the aggregate counters maintained by the ledger.
type Stats struct {
	Total           uint64
	DepositCount    uint64
	WithdrawalCount uint64
	WithdrawLimit   uint64
	BankCap         uint64
	LastSeq         uint64
}

// Config represents the configuration required to construct a ledger.
type Config struct {
	Genesis    genesis.Genesis
	Journal    Journal
	Transferor Transferor
	EvHandler  EventHandler
}

// Ledger manages the account balances for the bank. All mutating operations
// are serialized so at most one deposit or withdrawal is in flight at a time.
type Ledger struct {
	withdrawLimit uint64
	bankCap       uint64
	genesis       genesis.Genesis
	journal       Journal
	transferor    Transferor
	evHandler     EventHandler

	// opMu serializes the mutating operations end to end, including the
	// call to the transfer collaborator. mu guards the state fields below
	// so reads never wait on an in-flight transfer.
	opMu sync.Mutex
	mu   sync.RWMutex

	accounts        map[AccountID]Account
	total           uint64
	depositCount    uint64
	withdrawalCount uint64
	seq             uint64
}

// New constructs a new ledger, applies the genesis balances, and replays the
// journal to rebuild the state of any previous run.
func New(cfg Config) (*Ledger, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	if err := cfg.Genesis.Validate(); err != nil {
		return nil, fmt.Errorf("validating genesis: %w", err)
	}

	if cfg.Journal == nil {
		return nil, errors.New("journal required")
	}

	if cfg.Transferor == nil {
		return nil, errors.New("transferor required")
	}

	l := Ledger{
		withdrawLimit: cfg.Genesis.WithdrawLimit,
		bankCap:       cfg.Genesis.BankCap,
		genesis:       cfg.Genesis,
		journal:       cfg.Journal,
		transferor:    cfg.Transferor,
		evHandler:     ev,
		accounts:      make(map[AccountID]Account),
	}

	// Update the ledger with the opening balance information from genesis.
	if err := l.seedGenesis(); err != nil {
		return nil, err
	}

	// Replay all the journal records from a previous run, if any.
	iter := l.journal.ForEach()
	for record, err := iter.Next(); !iter.Done(); record, err = iter.Next() {
		if err != nil {
			return nil, err
		}

		if err := l.replay(record); err != nil {
			return nil, err
		}
	}

	return &l, nil
}

// Close closes the underlying journal.
func (l *Ledger) Close() error {
	return l.journal.Close()
}

// =============================================================================

// Deposit credits the specified account with the specified amount. The
// deposit is rejected when the amount is zero or when it would push the
// total funds held over the bank cap. Either all effects apply or none do.
func (l *Ledger) Deposit(ctx context.Context, accountID AccountID, amount uint64) error {
	return l.credit(ctx, KindDeposit, accountID, amount)
}

// Receive records an inbound movement of the underlying asset that was not
// routed through an explicit deposit call. It is treated as an implicit
// deposit for the sender and enforces the same bank cap.
func (l *Ledger) Receive(ctx context.Context, accountID AccountID, amount uint64) error {
	return l.credit(ctx, KindReceive, accountID, amount)
}

// credit implements the shared deposit path for the explicit and the
// direct-receive entry points.
func (l *Ledger) credit(ctx context.Context, kind string, accountID AccountID, amount uint64) error {
	if isInFlight(ctx) {
		return ErrReentrancy
	}

	if amount == 0 {
		return ErrInvalidAmount
	}

	l.opMu.Lock()
	defer l.opMu.Unlock()

	// opMu is held, so the state read here stays valid until the
	// effects are applied below.
	account, total := l.read(accountID)

	// The amount is an arbitrary uint64 off the wire, so the cap check
	// must not rely on total+amount. The invariant total <= bankCap holds,
	// which keeps the headroom arithmetic wrap free.
	if headroom := l.bankCap - total; amount > headroom {
		attempted := total + amount
		if attempted < total {
			attempted = math.MaxUint64
		}
		return &CapacityError{Attempted: attempted, Cap: l.bankCap}
	}

	record := newRecord(l.seq+1, kind, accountID, amount, account.Balance+amount, total+amount)

	// The journal append is part of the commit. If it fails no effect
	// is observable.
	if err := l.journal.Append(record); err != nil {
		return fmt.Errorf("journaling %s: %w", kind, err)
	}

	l.mu.Lock()
	{
		account.Balance += amount
		l.accounts[accountID] = account
		l.total += amount
		l.depositCount++
		l.seq++
	}
	l.mu.Unlock()

	l.evHandler("ledger: deposit recorded: kind: %s, account: %s, amount: %d, balance: %d, total: %d", kind, accountID, amount, account.Balance, record.Total)

	return nil
}

// Withdraw debits the specified account by the specified amount and asks the
// transfer collaborator to move the funds out of the bank. The debit is
// committed before the transfer is attempted and restored if the transfer
// reports failure.
func (l *Ledger) Withdraw(ctx context.Context, accountID AccountID, amount uint64) error {
	if isInFlight(ctx) {
		return ErrReentrancy
	}

	if amount == 0 {
		return ErrInvalidAmount
	}

	l.opMu.Lock()
	defer l.opMu.Unlock()

	if amount > l.withdrawLimit {
		return &LimitError{Attempted: amount, Limit: l.withdrawLimit}
	}

	account, _ := l.read(accountID)

	if amount > account.Balance {
		return &InsufficientFundsError{AccountID: accountID, Attempted: amount, Available: account.Balance}
	}

	// Commit the debit before invoking the transfer collaborator so a
	// re-entrant call observes the committed effects, never a partial state.
	l.mu.Lock()
	{
		account.Balance -= amount
		l.accounts[accountID] = account
		l.total -= amount
		l.withdrawalCount++
		l.seq++
	}
	l.mu.Unlock()

	record := newRecord(l.seq, KindWithdraw, accountID, amount, account.Balance, l.total)

	// The state lock is not held across this call. Re-entry is detected
	// through the marked context, concurrent callers queue on opMu.
	if err := l.transferor.Transfer(markInFlight(ctx), accountID, amount); err != nil {

		// Restore the debit so the held funds match the asset that
		// never moved.
		l.mu.Lock()
		{
			account.Balance += amount
			l.accounts[accountID] = account
			l.total += amount
			l.withdrawalCount--
			l.seq--
		}
		l.mu.Unlock()

		return &TransferError{Err: err}
	}

	// The asset has moved, so the debit stands even if journaling fails.
	if err := l.journal.Append(record); err != nil {
		l.evHandler("ledger: ERROR: journaling withdrawal: seq: %d, account: %s: %s", record.Seq, accountID, err)
		return fmt.Errorf("journaling withdrawal: %w", err)
	}

	l.evHandler("ledger: withdrawal recorded: account: %s, amount: %d, balance: %d, total: %d", accountID, amount, account.Balance, record.Total)

	return nil
}

// =============================================================================

// Balance returns the current balance for the specified account, defaulting
// to zero for unknown accounts.
func (l *Ledger) Balance(accountID AccountID) uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.accounts[accountID].Balance
}

// CopyAccounts makes a copy of the current accounts in the ledger.
func (l *Ledger) CopyAccounts() map[AccountID]Account {
	l.mu.RLock()
	defer l.mu.RUnlock()

	accounts := make(map[AccountID]Account, len(l.accounts))
	for accountID, account := range l.accounts {
		accounts[accountID] = account
	}
	return accounts
}

// AccountsByID returns the current accounts sorted by account id for
// stable reporting.
func (l *Ledger) AccountsByID() []Account {
	l.mu.RLock()
	accounts := make([]Account, 0, len(l.accounts))
	for accountID, account := range l.accounts {
		account.AccountID = accountID
		accounts = append(accounts, account)
	}
	l.mu.RUnlock()

	sort.Sort(byAccount(accounts))
	return accounts
}

// Stats returns the aggregate counters maintained by the ledger.
func (l *Ledger) Stats() Stats {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return Stats{
		Total:           l.total,
		DepositCount:    l.depositCount,
		WithdrawalCount: l.withdrawalCount,
		WithdrawLimit:   l.withdrawLimit,
		BankCap:         l.bankCap,
		LastSeq:         l.seq,
	}
}

// Genesis returns a copy of the genesis information.
func (l *Ledger) Genesis() genesis.Genesis {
	return l.genesis
}

// Records returns the journal records, filtered to the specified account
// when one is provided.
func (l *Ledger) Records(accountID AccountID) ([]Record, error) {
	var records []Record

	iter := l.journal.ForEach()
	for record, err := iter.Next(); !iter.Done(); record, err = iter.Next() {
		if err != nil {
			return nil, err
		}

		if accountID != "" && record.AccountID != accountID {
			continue
		}

		records = append(records, record)
	}

	return records, nil
}

// Reset re-initializes the ledger back to the genesis state and truncates
// the journal.
func (l *Ledger) Reset() error {
	l.opMu.Lock()
	defer l.opMu.Unlock()

	if err := l.journal.Reset(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.accounts = make(map[AccountID]Account)
	l.total = 0
	l.depositCount = 0
	l.withdrawalCount = 0
	l.seq = 0

	return l.seedGenesisLocked()
}

// =============================================================================

// read returns the account and the ledger total. The caller must hold opMu
// so the values remain valid until the effects are applied.
func (l *Ledger) read(accountID AccountID) (Account, uint64) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	account, exists := l.accounts[accountID]
	if !exists {
		account = newAccount(accountID, 0)
	}

	return account, l.total
}

// seedGenesis applies the opening balances from the genesis information.
func (l *Ledger) seedGenesis() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.seedGenesisLocked()
}

// seedGenesisLocked applies the opening balances. The caller must hold mu.
func (l *Ledger) seedGenesisLocked() error {
	for accountStr, balance := range l.genesis.Balances {
		accountID, err := ToAccountID(accountStr)
		if err != nil {
			return fmt.Errorf("genesis account %q: %w", accountStr, err)
		}

		// Checked per balance so the running total can never wrap.
		if balance > l.bankCap-l.total {
			return fmt.Errorf("genesis balances exceed bank cap %d", l.bankCap)
		}

		l.accounts[accountID] = newAccount(accountID, balance)
		l.total += balance
	}

	return nil
}

// replay applies a single journal record during construction and validates
// the record is consistent with the rebuilt state.
func (l *Ledger) replay(record Record) error {
	if record.Seq != l.seq+1 {
		return fmt.Errorf("journal out of order, got seq %d, exp %d", record.Seq, l.seq+1)
	}

	account, exists := l.accounts[record.AccountID]
	if !exists {
		account = newAccount(record.AccountID, 0)
	}

	switch record.Kind {
	case KindDeposit, KindReceive:
		if headroom := l.bankCap - l.total; record.Amount > headroom {
			return fmt.Errorf("journal seq %d pushes total over bank cap %d", record.Seq, l.bankCap)
		}
		account.Balance += record.Amount
		l.total += record.Amount
		l.depositCount++

	case KindWithdraw:
		if record.Amount > account.Balance {
			return fmt.Errorf("journal seq %d overdraws account %s, amount %d, balance %d", record.Seq, record.AccountID, record.Amount, account.Balance)
		}
		account.Balance -= record.Amount
		l.total -= record.Amount
		l.withdrawalCount++

	default:
		return fmt.Errorf("journal seq %d has unknown kind %q", record.Seq, record.Kind)
	}

	if account.Balance != record.Balance || l.total != record.Total {
		return fmt.Errorf("journal seq %d inconsistent, balance got %d exp %d, total got %d exp %d", record.Seq, account.Balance, record.Balance, l.total, record.Total)
	}

	l.accounts[record.AccountID] = account
	l.seq = record.Seq

	return nil
}
