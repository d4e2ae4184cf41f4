// Package public maintains the group of handlers for public access.
package public

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/feliperdao/kipubank/business/web/errs"
	"github.com/feliperdao/kipubank/foundation/events"
	"github.com/feliperdao/kipubank/foundation/ledger"
	"github.com/feliperdao/kipubank/foundation/nameservice"
	"github.com/feliperdao/kipubank/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handlers manages the set of public bank endpoints.
type Handlers struct {
	Log    *zap.SugaredLogger
	Ledger *ledger.Ledger
	NS     *nameservice.NameService
	WS     websocket.Upgrader
	Evts   *events.Events
}

// Events handles a web socket to provide the ledger notifications to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// Deposit credits the caller's account inside the bank cap.
func (h Handlers) Deposit(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var tx fundsTx
	if err := web.Decode(r, &tx); err != nil {
		return fmt.Errorf("unable to decode payload: %w", err)
	}

	accountID, err := ledger.ToAccountID(tx.AccountID)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	h.Log.Infow("deposit", "traceid", v.TraceID, "account", accountID, "amount", tx.Amount)
	if err := h.Ledger.Deposit(ctx, accountID, tx.Amount); err != nil {
		return trustLedgerError(err)
	}

	resp := txResult{
		Status:  "deposit recorded",
		Account: string(accountID),
		Amount:  tx.Amount,
		Balance: h.Ledger.Balance(accountID),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Receive records an inbound asset movement that was not routed through an
// explicit deposit call as an implicit deposit for the sender.
func (h Handlers) Receive(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var tx fundsTx
	if err := web.Decode(r, &tx); err != nil {
		return fmt.Errorf("unable to decode payload: %w", err)
	}

	accountID, err := ledger.ToAccountID(tx.AccountID)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	h.Log.Infow("receive", "traceid", v.TraceID, "account", accountID, "amount", tx.Amount)
	if err := h.Ledger.Receive(ctx, accountID, tx.Amount); err != nil {
		return trustLedgerError(err)
	}

	resp := txResult{
		Status:  "funds received",
		Account: string(accountID),
		Amount:  tx.Amount,
		Balance: h.Ledger.Balance(accountID),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Withdraw debits the caller's account and hands the funds to the transfer
// collaborator.
func (h Handlers) Withdraw(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var tx fundsTx
	if err := web.Decode(r, &tx); err != nil {
		return fmt.Errorf("unable to decode payload: %w", err)
	}

	accountID, err := ledger.ToAccountID(tx.AccountID)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	h.Log.Infow("withdraw", "traceid", v.TraceID, "account", accountID, "amount", tx.Amount)
	if err := h.Ledger.Withdraw(ctx, accountID, tx.Amount); err != nil {
		return trustLedgerError(err)
	}

	resp := txResult{
		Status:  "withdrawal recorded",
		Account: string(accountID),
		Amount:  tx.Amount,
		Balance: h.Ledger.Balance(accountID),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Genesis returns the construction parameters of the bank.
func (h Handlers) Genesis(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	gen := h.Ledger.Genesis()
	return web.Respond(ctx, w, gen, http.StatusOK)
}

// Balances returns the current balances for all accounts or the one
// specified on the route.
func (h Handlers) Balances(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	account := web.Param(r, "account")

	var accounts []ledger.Account
	switch account {
	case "":
		accounts = h.Ledger.AccountsByID()

	default:
		accountID, err := ledger.ToAccountID(account)
		if err != nil {
			return errs.NewTrusted(err, http.StatusBadRequest)
		}
		accounts = []ledger.Account{{AccountID: accountID, Balance: h.Ledger.Balance(accountID)}}
	}

	acts := make([]actInfo, 0, len(accounts))
	for _, act := range accounts {
		acts = append(acts, actInfo{
			Account: string(act.AccountID),
			Name:    h.NS.Lookup(act.AccountID),
			Balance: act.Balance,
		})
	}

	resp := balances{
		Total:    h.Ledger.Stats().Total,
		Balances: acts,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Stats returns the aggregate counters maintained by the ledger.
func (h Handlers) Stats(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	lstats := h.Ledger.Stats()

	resp := stats{
		Total:           lstats.Total,
		DepositCount:    lstats.DepositCount,
		WithdrawalCount: lstats.WithdrawalCount,
		WithdrawLimit:   lstats.WithdrawLimit,
		BankCap:         lstats.BankCap,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// =============================================================================

// trustLedgerError maps the ledger's domain errors to HTTP status codes so
// the errors middleware can respond with the right one.
func trustLedgerError(err error) error {
	var capErr *ledger.CapacityError
	var limErr *ledger.LimitError
	var insErr *ledger.InsufficientFundsError
	var trfErr *ledger.TransferError

	switch {
	case errors.Is(err, ledger.ErrInvalidAmount):
		return errs.NewTrusted(err, http.StatusBadRequest)

	case errors.As(err, &limErr):
		return errs.NewTrusted(err, http.StatusBadRequest)

	case errors.As(err, &capErr):
		return errs.NewTrusted(err, http.StatusConflict)

	case errors.As(err, &insErr):
		return errs.NewTrusted(err, http.StatusConflict)

	case errors.Is(err, ledger.ErrReentrancy):
		return errs.NewTrusted(err, http.StatusConflict)

	case errors.As(err, &trfErr):
		return errs.NewTrusted(err, http.StatusBadGateway)
	}

	return err
}
