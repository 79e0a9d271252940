package core

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// UncategorizedName buckets rollup entries whose category is missing.
const UncategorizedName = "Uncategorized"

type BalancePoint struct {
	Date    string  `json:"date"`
	Balance float64 `json:"balance"`
}

type WalletBalance struct {
	Name                      string  `json:"name"`
	CurrentBalanceOwnCurrency float64 `json:"currentBalanceOwnCurrency"`
	CurrentBalanceReference   float64 `json:"currentBalanceReference"`
	Currency                  string  `json:"currency"`
}

type CategoryAmount struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// Overview is the aggregated dashboard payload, all monetary values
// normalized into the reference currency.
type Overview struct {
	BalanceHistory       []BalancePoint     `json:"balanceHistory"`
	CurrentBalance       float64            `json:"currentBalance"`
	WalletData           []WalletBalance    `json:"walletData"`
	CurrentMonthExpenses []CategoryAmount   `json:"currentMonthExpenses"`
	CurrentMonthIncome   []CategoryAmount   `json:"currentMonthIncome"`
	ExchangeRates        map[string]float64 `json:"exchangeRates"`
}

// rateFor returns the units-per-reference rate for a currency. A currency
// absent from the map (or with a nonsense rate) falls back to 1 so a stale
// feed degrades the numbers instead of breaking the dashboard.
func rateFor(rates map[string]float64, currency string) decimal.Decimal {
	if currency == ReferenceCurrency {
		return decimal.NewFromInt(1)
	}
	rate, ok := rates[currency]
	if !ok || rate <= 0 {
		return decimal.NewFromInt(1)
	}
	return decimal.NewFromFloat(rate)
}

// Aggregate turns a user's full wallet/transaction set into the normalized
// dashboard overview. It is a total function: empty input yields zero-valued
// output, and a missing rate degrades to a conversion factor of 1.
//
// accountCreatedAt seeds the balance history; now fixes the current-month
// window so the result is reproducible in tests.
func Aggregate(ledgers []WalletLedger, accountCreatedAt, now time.Time, rates map[string]float64) Overview {
	out := Overview{
		BalanceHistory:       []BalancePoint{},
		WalletData:           []WalletBalance{},
		CurrentMonthExpenses: []CategoryAmount{},
		CurrentMonthIncome:   []CategoryAmount{},
		ExchangeRates:        rates,
	}

	// Current balance and per-wallet breakdown, one pass over wallets.
	initialNormalized := decimal.Zero
	currentNormalized := decimal.Zero
	for _, ledger := range ledgers {
		rate := rateFor(rates, ledger.Currency)
		balance := CurrentBalance(ledger.InitialBalance, ledger.Entries)
		normalized := balance.Div(rate)

		initialNormalized = initialNormalized.Add(ledger.InitialBalance.Div(rate))
		currentNormalized = currentNormalized.Add(normalized)

		out.WalletData = append(out.WalletData, WalletBalance{
			Name:                      ledger.Name,
			CurrentBalanceOwnCurrency: balance.InexactFloat64(),
			CurrentBalanceReference:   normalized.InexactFloat64(),
			Currency:                  ledger.Currency,
		})
	}
	out.CurrentBalance = currentNormalized.InexactFloat64()

	// Flatten to a single entry stream ordered by full timestamp.
	type walletEntry struct {
		Entry
		currency string
	}
	var all []walletEntry
	for _, ledger := range ledgers {
		for _, e := range ledger.Entries {
			all = append(all, walletEntry{Entry: e, currency: ledger.Currency})
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		if !all[i].Date.Equal(all[j].Date) {
			return all[i].Date.Before(all[j].Date)
		}
		return all[i].ID < all[j].ID
	})

	// Cumulative history: seed at account creation, one point per distinct
	// calendar date, same-day transactions folded into the date's closing
	// balance. Dates without transactions are not synthesized.
	seedDate := accountCreatedAt.Format("2006-01-02")
	dates := []string{seedDate}
	balances := map[string]decimal.Decimal{seedDate: initialNormalized}
	running := initialNormalized
	for _, e := range all {
		date := e.Date.Format("2006-01-02")
		amount := e.Amount.Div(rateFor(rates, e.currency))
		if _, seen := balances[date]; !seen {
			dates = append(dates, date)
		}
		running = running.Add(amount)
		balances[date] = running
	}
	for _, date := range dates {
		out.BalanceHistory = append(out.BalanceHistory, BalancePoint{
			Date:    date,
			Balance: balances[date].InexactFloat64(),
		})
	}

	// Current-month rollups. Transfers are balance-neutral across the user's
	// net worth and must not show up as income on one wallet and expense on
	// another, so transfer-kind entries are excluded entirely.
	// Entries are stored in UTC, so the month window is UTC as well; a
	// server-local window would misfile entries near the month boundary.
	now = now.UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	nextMonth := monthStart.AddDate(0, 1, 0)
	expenses := map[string]decimal.Decimal{}
	income := map[string]decimal.Decimal{}
	for _, e := range all {
		if e.Date.Before(monthStart) || !e.Date.Before(nextMonth) {
			continue
		}
		if e.CategoryKind == CategoryTransfer {
			continue
		}
		name := e.CategoryName
		if name == "" {
			name = UncategorizedName
		}
		amount := e.Amount.Div(rateFor(rates, e.currency))
		switch {
		case e.Amount.IsNegative():
			expenses[name] = expenses[name].Add(amount)
		case e.Amount.IsPositive():
			income[name] = income[name].Add(amount)
		}
	}
	out.CurrentMonthExpenses = rollup(expenses)
	out.CurrentMonthIncome = rollup(income)

	return out
}

// rollup flattens a category→sum map into name-sorted pairs for stable output.
func rollup(sums map[string]decimal.Decimal) []CategoryAmount {
	names := make([]string, 0, len(sums))
	for name := range sums {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]CategoryAmount, 0, len(names))
	for _, name := range names {
		result = append(result, CategoryAmount{Name: name, Amount: sums[name].InexactFloat64()})
	}
	return result
}
