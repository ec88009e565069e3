package generator

import (
	"time"

	"github.com/crisisbench/crisisbench/scenario"
)

type scriptedTxn struct {
	offset   time.Duration
	merchant string
	amount   float64
	category string
}

type financialGenerator struct {
	stocks  map[string]float64
	crypto  map[string]float64
	txns    []scriptedTxn
	balance float64
	pending float64
	budget  float64
	spent   float64
	emitted map[int]bool
}

func newFinancialGenerator(rng *RNG) *financialGenerator {
	return &financialGenerator{
		stocks: map[string]float64{"ACME": 142.50 + rng.Float64()*5, "GLBX": 88.10 + rng.Float64()*5},
		crypto: map[string]float64{"BTC": 61000 + rng.Float64()*500, "ETH": 3400 + rng.Float64()*50},
		txns: []scriptedTxn{
			{offset: 7*time.Hour + 5*time.Minute, merchant: "Corner Cafe", amount: 6.75, category: "dining"},
			{offset: 12 * time.Hour, merchant: "Cafe Nomad", amount: 14.20, category: "dining"},
			{offset: 13*time.Hour + 25*time.Minute, merchant: "Gymflow", amount: 49.99, category: "fitness"},
			{offset: 17*time.Hour + 15*time.Minute, merchant: "Metro Transit", amount: 3.50, category: "transit"},
		},
		balance: 4200 + rng.Float64()*300,
		pending: 62.40,
		budget:  2500,
		emitted: map[int]bool{},
	}
}

// Generate consumes exactly four RNG draws per heartbeat (two stock, two
// crypto random-walk steps), regardless of whether the caller will discard
// the result under tier filtering.
func (g *financialGenerator) Generate(sched *PersonSchedule, _ int, ts time.Time) (*scenario.Financial, error) {
	rng := sched.RNG
	prevACME, prevGLBX := g.stocks["ACME"], g.stocks["GLBX"]
	prevBTC, prevETH := g.crypto["BTC"], g.crypto["ETH"]
	g.stocks["ACME"] *= 1 + rng.NormFloat64()*0.001
	g.stocks["GLBX"] *= 1 + rng.NormFloat64()*0.001
	g.crypto["BTC"] *= 1 + rng.NormFloat64()*0.002
	g.crypto["ETH"] *= 1 + rng.NormFloat64()*0.002

	base := sched.Blocks[0].Start.Truncate(24 * time.Hour)
	for i, txn := range g.txns {
		if g.emitted[i] {
			continue
		}
		if ts.Before(base.Add(txn.offset)) {
			continue
		}
		g.emitted[i] = true
		g.balance -= txn.amount
		g.spent += txn.amount
	}

	var recent []scenario.Transaction
	for i := len(g.txns) - 1; i >= 0 && len(recent) < 3; i-- {
		if !g.emitted[i] {
			continue
		}
		t := g.txns[i]
		recent = append([]scenario.Transaction{{Merchant: t.merchant, AmountUSD: t.amount, Category: t.category}}, recent...)
	}

	spendSummary := spendVsBudgetSummary(g.spent, g.budget)

	return scenario.NewFinancial(scenario.Financial{
		RecentTransactions: recent,
		AccountBalanceUSD:  round2(g.balance),
		PendingChargesUSD:  g.pending,
		StockWatchlist: []scenario.WatchlistEntry{
			{Symbol: "ACME", PriceUSD: round2(g.stocks["ACME"]), ChangePct: round2(pctChange(prevACME, g.stocks["ACME"]))},
			{Symbol: "GLBX", PriceUSD: round2(g.stocks["GLBX"]), ChangePct: round2(pctChange(prevGLBX, g.stocks["GLBX"]))},
		},
		CryptoWatchlist: []scenario.WatchlistEntry{
			{Symbol: "BTC", PriceUSD: round2(g.crypto["BTC"]), ChangePct: round2(pctChange(prevBTC, g.crypto["BTC"]))},
			{Symbol: "ETH", PriceUSD: round2(g.crypto["ETH"]), ChangePct: round2(pctChange(prevETH, g.crypto["ETH"]))},
		},
		SpendVsBudget: spendSummary,
	}), nil
}

func spendVsBudgetSummary(spent, budget float64) string {
	if budget <= 0 {
		return "no budget set"
	}
	pct := spent / budget * 100
	if pct < 50 {
		return "well under budget this month"
	}
	if pct < 90 {
		return "on track with budget this month"
	}
	return "approaching monthly budget limit"
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}

// pctChange returns the percent change from prev to cur, e.g. 5 for a
// 5% gain. prev is always a positive seeded price, so no zero-division
// guard is needed.
func pctChange(prev, cur float64) float64 {
	return (cur - prev) / prev * 100
}
