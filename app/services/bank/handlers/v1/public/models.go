package public

// fundsTx represents a deposit, receive, or withdraw request.
type fundsTx struct {
	AccountID string `json:"account_id" validate:"required"`
	Amount    uint64 `json:"amount" validate:"required"`
}

// actInfo represents the balance information returned for an account.
type actInfo struct {
	Account string `json:"account"`
	Name    string `json:"name"`
	Balance uint64 `json:"balance"`
}

// balances is the response for the balance queries.
type balances struct {
	Total    uint64    `json:"total"`
	Balances []actInfo `json:"balances"`
}

// stats is the response for the ledger counters.
type stats struct {
	Total           uint64 `json:"total"`
	DepositCount    uint64 `json:"deposit_count"`
	WithdrawalCount uint64 `json:"withdrawal_count"`
	WithdrawLimit   uint64 `json:"withdraw_limit"`
	BankCap         uint64 `json:"bank_cap"`
}

// txResult is the response for a successful mutation.
type txResult struct {
	Status  string `json:"status"`
	Account string `json:"account"`
	Amount  uint64 `json:"amount"`
	Balance uint64 `json:"balance"`
}
