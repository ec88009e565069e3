package scenario

// Transaction is a single posted transaction.
type Transaction struct {
	Merchant string  `json:"merchant"`
	AmountUSD float64 `json:"amount_usd"`
	Category string  `json:"category"`
}

// WatchlistEntry is a single tracked ticker/symbol and its latest price.
type WatchlistEntry struct {
	Symbol     string  `json:"symbol"`
	PriceUSD   float64 `json:"price_usd"`
	ChangePct  float64 `json:"change_pct"`
}

// Financial is the per-heartbeat financial payload: the most recent
// transactions, current balance, pending charges, and two watchlists.
type Financial struct {
	RecentTransactions []Transaction    `json:"recent_transactions"`
	AccountBalanceUSD  float64          `json:"account_balance_usd"`
	PendingChargesUSD  float64          `json:"pending_charges_usd"`
	StockWatchlist     []WatchlistEntry `json:"stock_watchlist"`
	CryptoWatchlist    []WatchlistEntry `json:"crypto_watchlist"`
	SpendVsBudget      string           `json:"spend_vs_budget"`
}

// NewFinancial constructs a Financial payload.
func NewFinancial(f Financial) *Financial {
	return &f
}
