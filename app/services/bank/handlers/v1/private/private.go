// Package private maintains the group of handlers for operational access.
package private

import (
	"context"
	"net/http"

	"github.com/feliperdao/kipubank/business/web/errs"
	"github.com/feliperdao/kipubank/foundation/ledger"
	"github.com/feliperdao/kipubank/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of operational bank endpoints.
type Handlers struct {
	Log    *zap.SugaredLogger
	Ledger *ledger.Ledger
}

// Status returns the construction parameters and the current counters.
func (h Handlers) Status(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	resp := struct {
		Genesis any `json:"genesis"`
		Stats   any `json:"stats"`
	}{
		Genesis: h.Ledger.Genesis(),
		Stats:   h.Ledger.Stats(),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Journal returns the journal records, filtered to the account specified
// on the route when one is provided.
func (h Handlers) Journal(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	account := web.Param(r, "account")

	var accountID ledger.AccountID
	if account != "" {
		var err error
		accountID, err = ledger.ToAccountID(account)
		if err != nil {
			return errs.NewTrusted(err, http.StatusBadRequest)
		}
	}

	records, err := h.Ledger.Records(accountID)
	if err != nil {
		return err
	}

	return web.Respond(ctx, w, records, http.StatusOK)
}

// Reset re-initializes the ledger back to the genesis state.
func (h Handlers) Reset(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.Log.Infow("ledger reset", "traceid", v.TraceID)
	if err := h.Ledger.Reset(); err != nil {
		return err
	}

	resp := struct {
		Status string `json:"status"`
	}{
		Status: "ledger reset to genesis",
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}
