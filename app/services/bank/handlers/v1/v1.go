// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"github.com/feliperdao/kipubank/app/services/bank/handlers/v1/private"
	"github.com/feliperdao/kipubank/app/services/bank/handlers/v1/public"
	"github.com/feliperdao/kipubank/foundation/events"
	"github.com/feliperdao/kipubank/foundation/ledger"
	"github.com/feliperdao/kipubank/foundation/nameservice"
	"github.com/feliperdao/kipubank/foundation/web"
	"go.uber.org/zap"
)

const version = "v1"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log    *zap.SugaredLogger
	Ledger *ledger.Ledger
	NS     *nameservice.NameService
	Evts   *events.Events
}

// PublicRoutes binds all the version 1 public routes.
func PublicRoutes(app *web.App, cfg Config) {
	pbl := public.Handlers{
		Log:    cfg.Log,
		Ledger: cfg.Ledger,
		NS:     cfg.NS,
		Evts:   cfg.Evts,
	}

	app.Handle(http.MethodGet, version, "/events", pbl.Events)
	app.Handle(http.MethodGet, version, "/genesis/list", pbl.Genesis)
	app.Handle(http.MethodGet, version, "/balances/list", pbl.Balances)
	app.Handle(http.MethodGet, version, "/balances/list/:account", pbl.Balances)
	app.Handle(http.MethodGet, version, "/ledger/stats", pbl.Stats)
	app.Handle(http.MethodPost, version, "/funds/deposit", pbl.Deposit)
	app.Handle(http.MethodPost, version, "/funds/receive", pbl.Receive)
	app.Handle(http.MethodPost, version, "/funds/withdraw", pbl.Withdraw)
}

// PrivateRoutes binds all the version 1 private routes.
func PrivateRoutes(app *web.App, cfg Config) {
	prv := private.Handlers{
		Log:    cfg.Log,
		Ledger: cfg.Ledger,
	}

	app.Handle(http.MethodGet, version, "/ledger/status", prv.Status)
	app.Handle(http.MethodGet, version, "/journal/list", prv.Journal)
	app.Handle(http.MethodGet, version, "/journal/list/:account", prv.Journal)
	app.Handle(http.MethodPost, version, "/ledger/reset", prv.Reset)
}
