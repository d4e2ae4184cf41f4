package ledger_test

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/feliperdao/kipubank/foundation/genesis"
	"github.com/feliperdao/kipubank/foundation/ledger"
	"github.com/feliperdao/kipubank/foundation/ledger/journal"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

// Accounts used across the tests.
const (
	account1 = ledger.AccountID("0xdd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4")
	account2 = ledger.AccountID("0xF01813E4B85e178A83e29B8E7bF26BD830a25f32")
)

// okTransfer reports success for every payout.
var okTransfer = ledger.TransferorFunc(func(ctx context.Context, accountID ledger.AccountID, amount uint64) error {
	return nil
})

// newLedger constructs a ledger over a memory journal for the tests.
func newLedger(t *testing.T, gen genesis.Genesis, trf ledger.Transferor) (*ledger.Ledger, *journal.Memory) {
	jrnl, err := journal.NewMemory()
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct a memory journal: %v", failed, err)
	}

	l, err := ledger.New(ledger.Config{
		Genesis:    gen,
		Journal:    jrnl,
		Transferor: trf,
	})
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct the ledger: %v", failed, err)
	}

	return l, jrnl
}

// =============================================================================

func Test_BoundedOperations(t *testing.T) {
	gen := genesis.Genesis{WithdrawLimit: 10, BankCap: 100}

	t.Log("Given the need to enforce the bank cap and the withdraw limit.")
	{
		t.Logf("\tTest 0:\tWhen handling a deposit and withdrawal sequence.")
		{
			l, _ := newLedger(t, gen, okTransfer)
			ctx := context.Background()

			if err := l.Deposit(ctx, account1, 60); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to deposit 60: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to deposit 60.", success)

			if bal := l.Balance(account1); bal != 60 {
				t.Errorf("\t%s\tTest 0:\tShould have a balance of 60, got %d.", failed, bal)
			} else {
				t.Logf("\t%s\tTest 0:\tShould have a balance of 60.", success)
			}

			err := l.Deposit(ctx, account1, 50)
			var capErr *ledger.CapacityError
			if !errors.As(err, &capErr) {
				t.Fatalf("\t%s\tTest 0:\tShould reject a deposit over the cap, got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould reject a deposit over the cap.", success)

			if capErr.Attempted != 110 || capErr.Cap != 100 {
				t.Errorf("\t%s\tTest 0:\tShould report attempted 110 against cap 100, got %d/%d.", failed, capErr.Attempted, capErr.Cap)
			} else {
				t.Logf("\t%s\tTest 0:\tShould report attempted 110 against cap 100.", success)
			}

			if bal := l.Balance(account1); bal != 60 {
				t.Errorf("\t%s\tTest 0:\tShould keep the balance at 60 after the rejection, got %d.", failed, bal)
			} else {
				t.Logf("\t%s\tTest 0:\tShould keep the balance at 60 after the rejection.", success)
			}

			err = l.Withdraw(ctx, account1, 15)
			var limErr *ledger.LimitError
			if !errors.As(err, &limErr) {
				t.Fatalf("\t%s\tTest 0:\tShould reject a withdrawal over the limit, got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould reject a withdrawal over the limit.", success)

			if err := l.Withdraw(ctx, account1, 10); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to withdraw 10: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to withdraw 10.", success)

			stats := l.Stats()
			if bal := l.Balance(account1); bal != 50 || stats.Total != 50 {
				t.Errorf("\t%s\tTest 0:\tShould end with balance 50 and total 50, got %d/%d.", failed, bal, stats.Total)
			} else {
				t.Logf("\t%s\tTest 0:\tShould end with balance 50 and total 50.", success)
			}

			if stats.DepositCount != 1 || stats.WithdrawalCount != 1 {
				t.Errorf("\t%s\tTest 0:\tShould count 1 deposit and 1 withdrawal, got %d/%d.", failed, stats.DepositCount, stats.WithdrawalCount)
			} else {
				t.Logf("\t%s\tTest 0:\tShould count 1 deposit and 1 withdrawal.", success)
			}
		}
	}
}

func Test_DepositSum(t *testing.T) {
	gen := genesis.Genesis{WithdrawLimit: 10, BankCap: 1000}

	type deposit struct {
		accountID ledger.AccountID
		amount    uint64
	}

	deposits := []deposit{
		{account1, 100},
		{account2, 250},
		{account1, 25},
		{account2, 1},
	}

	t.Log("Given the need to keep the total equal to the sum of the balances.")
	{
		t.Logf("\tTest 0:\tWhen handling a sequence of deposits.")
		{
			l, _ := newLedger(t, gen, okTransfer)
			ctx := context.Background()

			var sum uint64
			for _, dep := range deposits {
				if err := l.Deposit(ctx, dep.accountID, dep.amount); err != nil {
					t.Fatalf("\t%s\tTest 0:\tShould be able to deposit %d: %v", failed, dep.amount, err)
				}
				sum += dep.amount
			}
			t.Logf("\t%s\tTest 0:\tShould be able to apply every deposit.", success)

			stats := l.Stats()
			if stats.Total != sum {
				t.Errorf("\t%s\tTest 0:\tShould have total %d, got %d.", failed, sum, stats.Total)
			} else {
				t.Logf("\t%s\tTest 0:\tShould have total %d.", success, sum)
			}

			var balSum uint64
			for _, account := range l.AccountsByID() {
				balSum += account.Balance
			}
			if balSum != stats.Total {
				t.Errorf("\t%s\tTest 0:\tShould have the balances sum to the total, got %d exp %d.", failed, balSum, stats.Total)
			} else {
				t.Logf("\t%s\tTest 0:\tShould have the balances sum to the total.", success)
			}

			if stats.DepositCount != uint64(len(deposits)) {
				t.Errorf("\t%s\tTest 0:\tShould count %d deposits, got %d.", failed, len(deposits), stats.DepositCount)
			} else {
				t.Logf("\t%s\tTest 0:\tShould count %d deposits.", success, len(deposits))
			}
		}
	}
}

func Test_InsufficientFunds(t *testing.T) {
	gen := genesis.Genesis{WithdrawLimit: 100, BankCap: 1000}

	t.Log("Given the need to reject withdrawals over the account balance.")
	{
		t.Logf("\tTest 0:\tWhen withdrawing more than the balance.")
		{
			l, _ := newLedger(t, gen, okTransfer)
			ctx := context.Background()

			if err := l.Deposit(ctx, account1, 40); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to deposit 40: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to deposit 40.", success)

			err := l.Withdraw(ctx, account1, 50)
			var insErr *ledger.InsufficientFundsError
			if !errors.As(err, &insErr) {
				t.Fatalf("\t%s\tTest 0:\tShould reject the withdrawal, got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould reject the withdrawal.", success)

			if insErr.Attempted != 50 || insErr.Available != 40 {
				t.Errorf("\t%s\tTest 0:\tShould report attempted 50 with 40 available, got %d/%d.", failed, insErr.Attempted, insErr.Available)
			} else {
				t.Logf("\t%s\tTest 0:\tShould report attempted 50 with 40 available.", success)
			}

			if bal := l.Balance(account1); bal != 40 {
				t.Errorf("\t%s\tTest 0:\tShould keep the balance at 40, got %d.", failed, bal)
			} else {
				t.Logf("\t%s\tTest 0:\tShould keep the balance at 40.", success)
			}
		}

		t.Logf("\tTest 1:\tWhen withdrawing from an unknown account.")
		{
			l, _ := newLedger(t, gen, okTransfer)

			err := l.Withdraw(context.Background(), account2, 1)
			var insErr *ledger.InsufficientFundsError
			if !errors.As(err, &insErr) {
				t.Fatalf("\t%s\tTest 1:\tShould reject the withdrawal, got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould reject the withdrawal.", success)

			if bal := l.Balance(account2); bal != 0 {
				t.Errorf("\t%s\tTest 1:\tShould report a zero balance for the unknown account, got %d.", failed, bal)
			} else {
				t.Logf("\t%s\tTest 1:\tShould report a zero balance for the unknown account.", success)
			}
		}
	}
}

func Test_ZeroAmounts(t *testing.T) {
	gen := genesis.Genesis{WithdrawLimit: 10, BankCap: 100}

	t.Log("Given the need to reject zero-amount operations consistently.")
	{
		t.Logf("\tTest 0:\tWhen depositing and withdrawing zero.")
		{
			l, _ := newLedger(t, gen, okTransfer)
			ctx := context.Background()

			if err := l.Deposit(ctx, account1, 0); !errors.Is(err, ledger.ErrInvalidAmount) {
				t.Fatalf("\t%s\tTest 0:\tShould reject a zero deposit, got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould reject a zero deposit.", success)

			if err := l.Withdraw(ctx, account1, 0); !errors.Is(err, ledger.ErrInvalidAmount) {
				t.Fatalf("\t%s\tTest 0:\tShould reject a zero withdrawal, got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould reject a zero withdrawal.", success)

			stats := l.Stats()
			if stats.DepositCount != 0 || stats.WithdrawalCount != 0 {
				t.Errorf("\t%s\tTest 0:\tShould leave both counters at zero, got %d/%d.", failed, stats.DepositCount, stats.WithdrawalCount)
			} else {
				t.Logf("\t%s\tTest 0:\tShould leave both counters at zero.", success)
			}
		}
	}
}

func Test_TransferFailure(t *testing.T) {
	gen := genesis.Genesis{WithdrawLimit: 50, BankCap: 1000}

	t.Log("Given the need to restore the debit when the transfer fails.")
	{
		t.Logf("\tTest 0:\tWhen the transfer collaborator reports failure.")
		{
			badTransfer := ledger.TransferorFunc(func(ctx context.Context, accountID ledger.AccountID, amount uint64) error {
				return errors.New("rail unavailable")
			})

			l, _ := newLedger(t, gen, badTransfer)
			ctx := context.Background()

			if err := l.Deposit(ctx, account1, 100); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to deposit 100: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to deposit 100.", success)

			err := l.Withdraw(ctx, account1, 30)
			var trfErr *ledger.TransferError
			if !errors.As(err, &trfErr) {
				t.Fatalf("\t%s\tTest 0:\tShould fail the withdrawal with a transfer error, got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould fail the withdrawal with a transfer error.", success)

			stats := l.Stats()
			if bal := l.Balance(account1); bal != 100 || stats.Total != 100 {
				t.Errorf("\t%s\tTest 0:\tShould restore balance and total to 100, got %d/%d.", failed, bal, stats.Total)
			} else {
				t.Logf("\t%s\tTest 0:\tShould restore balance and total to 100.", success)
			}

			if stats.WithdrawalCount != 0 {
				t.Errorf("\t%s\tTest 0:\tShould not count the failed withdrawal, got %d.", failed, stats.WithdrawalCount)
			} else {
				t.Logf("\t%s\tTest 0:\tShould not count the failed withdrawal.", success)
			}

			var balSum uint64
			for _, account := range l.AccountsByID() {
				balSum += account.Balance
			}
			if balSum != stats.Total {
				t.Errorf("\t%s\tTest 0:\tShould keep the total equal to the balance sum, got %d exp %d.", failed, stats.Total, balSum)
			} else {
				t.Logf("\t%s\tTest 0:\tShould keep the total equal to the balance sum.", success)
			}
		}
	}
}

func Test_Reentrancy(t *testing.T) {
	gen := genesis.Genesis{WithdrawLimit: 50, BankCap: 1000}

	t.Log("Given the need to reject nested calls made from the transfer step.")
	{
		t.Logf("\tTest 0:\tWhen the transfer collaborator calls back into the ledger.")
		{
			var l *ledger.Ledger
			var nestedDeposit error
			var nestedWithdraw error

			reentrant := ledger.TransferorFunc(func(ctx context.Context, accountID ledger.AccountID, amount uint64) error {
				nestedDeposit = l.Deposit(ctx, accountID, 5)
				nestedWithdraw = l.Withdraw(ctx, accountID, 5)
				return nil
			})

			l, _ = newLedger(t, gen, reentrant)
			ctx := context.Background()

			if err := l.Deposit(ctx, account1, 100); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to deposit 100: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to deposit 100.", success)

			if err := l.Withdraw(ctx, account1, 30); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould complete the outer withdrawal: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould complete the outer withdrawal.", success)

			if !errors.Is(nestedDeposit, ledger.ErrReentrancy) {
				t.Errorf("\t%s\tTest 0:\tShould reject the nested deposit as re-entrant, got %v.", failed, nestedDeposit)
			} else {
				t.Logf("\t%s\tTest 0:\tShould reject the nested deposit as re-entrant.", success)
			}

			if !errors.Is(nestedWithdraw, ledger.ErrReentrancy) {
				t.Errorf("\t%s\tTest 0:\tShould reject the nested withdrawal as re-entrant, got %v.", failed, nestedWithdraw)
			} else {
				t.Logf("\t%s\tTest 0:\tShould reject the nested withdrawal as re-entrant.", success)
			}

			stats := l.Stats()
			if bal := l.Balance(account1); bal != 70 || stats.Total != 70 {
				t.Errorf("\t%s\tTest 0:\tShould keep the committed debit, got balance %d total %d.", failed, bal, stats.Total)
			} else {
				t.Logf("\t%s\tTest 0:\tShould keep the committed debit.", success)
			}
		}
	}
}

func Test_Receive(t *testing.T) {
	gen := genesis.Genesis{WithdrawLimit: 10, BankCap: 100}

	t.Log("Given the need to treat direct receives as implicit deposits.")
	{
		t.Logf("\tTest 0:\tWhen funds arrive outside the explicit deposit call.")
		{
			l, _ := newLedger(t, gen, okTransfer)
			ctx := context.Background()

			if err := l.Receive(ctx, account1, 80); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to receive 80: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to receive 80.", success)

			err := l.Receive(ctx, account2, 30)
			var capErr *ledger.CapacityError
			if !errors.As(err, &capErr) {
				t.Fatalf("\t%s\tTest 0:\tShould enforce the cap on the receive path, got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould enforce the cap on the receive path.", success)

			stats := l.Stats()
			if stats.DepositCount != 1 {
				t.Errorf("\t%s\tTest 0:\tShould count the receive as a deposit, got %d.", failed, stats.DepositCount)
			} else {
				t.Logf("\t%s\tTest 0:\tShould count the receive as a deposit.", success)
			}
		}
	}
}

func Test_JournalReplay(t *testing.T) {
	gen := genesis.Genesis{
		WithdrawLimit: 100,
		BankCap:       10000,
		Balances: map[string]uint64{
			string(account1): 500,
		},
	}

	t.Log("Given the need to rebuild the ledger state from the journal.")
	{
		t.Logf("\tTest 0:\tWhen replaying the journal of a previous run.")
		{
			l, jrnl := newLedger(t, gen, okTransfer)
			ctx := context.Background()

			if err := l.Deposit(ctx, account2, 300); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to deposit 300: %v", failed, err)
			}
			if err := l.Withdraw(ctx, account1, 100); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to withdraw 100: %v", failed, err)
			}
			if err := l.Receive(ctx, account2, 50); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to receive 50: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to apply the mutation sequence.", success)

			l2, err := ledger.New(ledger.Config{
				Genesis:    gen,
				Journal:    jrnl,
				Transferor: okTransfer,
			})
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to construct a ledger over the same journal: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to construct a ledger over the same journal.", success)

			if bal := l2.Balance(account1); bal != 400 {
				t.Errorf("\t%s\tTest 0:\tShould rebuild account1 at 400, got %d.", failed, bal)
			} else {
				t.Logf("\t%s\tTest 0:\tShould rebuild account1 at 400.", success)
			}

			if bal := l2.Balance(account2); bal != 350 {
				t.Errorf("\t%s\tTest 0:\tShould rebuild account2 at 350, got %d.", failed, bal)
			} else {
				t.Logf("\t%s\tTest 0:\tShould rebuild account2 at 350.", success)
			}

			stats := l2.Stats()
			if stats.Total != 750 || stats.DepositCount != 2 || stats.WithdrawalCount != 1 {
				t.Errorf("\t%s\tTest 0:\tShould rebuild total 750 with counters 2/1, got %d and %d/%d.", failed, stats.Total, stats.DepositCount, stats.WithdrawalCount)
			} else {
				t.Logf("\t%s\tTest 0:\tShould rebuild total 750 with counters 2/1.", success)
			}
		}
	}
}

func Test_Reset(t *testing.T) {
	gen := genesis.Genesis{
		WithdrawLimit: 100,
		BankCap:       10000,
		Balances: map[string]uint64{
			string(account1): 500,
		},
	}

	t.Log("Given the need to restore the genesis state on demand.")
	{
		t.Logf("\tTest 0:\tWhen resetting the ledger after mutations.")
		{
			l, _ := newLedger(t, gen, okTransfer)
			ctx := context.Background()

			if err := l.Deposit(ctx, account2, 300); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to deposit 300: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to deposit 300.", success)

			if err := l.Reset(); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to reset the ledger: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to reset the ledger.", success)

			stats := l.Stats()
			if stats.Total != 500 || stats.DepositCount != 0 || stats.WithdrawalCount != 0 {
				t.Errorf("\t%s\tTest 0:\tShould be back at genesis, got total %d counters %d/%d.", failed, stats.Total, stats.DepositCount, stats.WithdrawalCount)
			} else {
				t.Logf("\t%s\tTest 0:\tShould be back at genesis.", success)
			}

			if bal := l.Balance(account2); bal != 0 {
				t.Errorf("\t%s\tTest 0:\tShould drop the deposited account, got %d.", failed, bal)
			} else {
				t.Logf("\t%s\tTest 0:\tShould drop the deposited account.", success)
			}
		}
	}
}

func Test_CapOverflowGuard(t *testing.T) {
	t.Log("Given the need to enforce the bank cap for amounts near the uint64 maximum.")
	{
		t.Logf("\tTest 0:\tWhen depositing an amount that would wrap the total.")
		{
			gen := genesis.Genesis{WithdrawLimit: 10, BankCap: 100}
			l, _ := newLedger(t, gen, okTransfer)
			ctx := context.Background()

			if err := l.Deposit(ctx, account1, 60); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to deposit 60: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to deposit 60.", success)

			err := l.Deposit(ctx, account1, math.MaxUint64-30)
			var capErr *ledger.CapacityError
			if !errors.As(err, &capErr) {
				t.Fatalf("\t%s\tTest 0:\tShould reject a wrapping deposit with a capacity error, got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould reject a wrapping deposit with a capacity error.", success)

			stats := l.Stats()
			if bal := l.Balance(account1); bal != 60 || stats.Total != 60 {
				t.Errorf("\t%s\tTest 0:\tShould keep balance and total at 60, got %d/%d.", failed, bal, stats.Total)
			} else {
				t.Logf("\t%s\tTest 0:\tShould keep balance and total at 60.", success)
			}

			err = l.Receive(ctx, account2, math.MaxUint64)
			if !errors.As(err, &capErr) {
				t.Fatalf("\t%s\tTest 0:\tShould reject a wrapping receive with a capacity error, got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould reject a wrapping receive with a capacity error.", success)
		}

		t.Logf("\tTest 1:\tWhen the genesis balances would wrap the total.")
		{
			gen := genesis.Genesis{
				WithdrawLimit: 10,
				BankCap:       math.MaxUint64,
				Balances: map[string]uint64{
					string(account1): math.MaxUint64,
					string(account2): 100,
				},
			}

			jrnl, err := journal.NewMemory()
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to construct a memory journal: %v", failed, err)
			}

			if _, err := ledger.New(ledger.Config{Genesis: gen, Journal: jrnl, Transferor: okTransfer}); err == nil {
				t.Fatalf("\t%s\tTest 1:\tShould reject genesis balances that wrap the total.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould reject genesis balances that wrap the total.", success)
		}

		t.Logf("\tTest 2:\tWhen a journal record would wrap the total during replay.")
		{
			gen := genesis.Genesis{
				WithdrawLimit: 10,
				BankCap:       1000,
				Balances: map[string]uint64{
					string(account1): 500,
				},
			}

			jrnl, err := journal.NewMemory()
			if err != nil {
				t.Fatalf("\t%s\tTest 2:\tShould be able to construct a memory journal: %v", failed, err)
			}

			// The wrapped balance and total of 100 would satisfy the
			// consistency check if the cap check wrapped too.
			record := ledger.Record{Seq: 1, Kind: ledger.KindDeposit, AccountID: account1, Amount: math.MaxUint64 - 399, Balance: 100, Total: 100}
			if err := jrnl.Append(record); err != nil {
				t.Fatalf("\t%s\tTest 2:\tShould be able to append the record: %v", failed, err)
			}

			if _, err := ledger.New(ledger.Config{Genesis: gen, Journal: jrnl, Transferor: okTransfer}); err == nil {
				t.Fatalf("\t%s\tTest 2:\tShould reject a replayed deposit that wraps the total.", failed)
			}
			t.Logf("\t%s\tTest 2:\tShould reject a replayed deposit that wraps the total.", success)
		}
	}
}

func Test_CorruptJournal(t *testing.T) {
	gen := genesis.Genesis{WithdrawLimit: 10, BankCap: 100}

	t.Log("Given the need to refuse construction over a corrupt journal.")
	{
		t.Logf("\tTest 0:\tWhen the journal file contains an unreadable line.")
		{
			path := filepath.Join(t.TempDir(), "journal.db")
			if err := os.WriteFile(path, []byte("this is not json\n"), 0600); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to write the journal file: %v", failed, err)
			}

			jrnl, err := journal.NewDisk(path)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to open the journal: %v", failed, err)
			}
			defer jrnl.Close()

			if _, err := ledger.New(ledger.Config{Genesis: gen, Journal: jrnl, Transferor: okTransfer}); err == nil {
				t.Fatalf("\t%s\tTest 0:\tShould refuse to construct over a corrupt journal.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould refuse to construct over a corrupt journal.", success)
		}
	}
}
