package accounting

import (
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedBalance applies the natural sign of the account type to raw sums.
// DEBIT-normal (Asset, Expense):                 debit - credit
// CREDIT-normal (Liability, Equity, Income/Rev): credit - debit
func SignedBalance(accountType domain.AccountType, debit, credit decimal.Decimal) decimal.Decimal {
	if accountType.IsDebitNormal() {
		return debit.Sub(credit)
	}
	return credit.Sub(debit)
}

// SumLines returns the raw debit and credit totals of persisted lines.
func SumLines(lines []domain.LedgerLine) (decimal.Decimal, decimal.Decimal) {
	debit, credit := decimal.Zero, decimal.Zero
	for _, l := range lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	return debit, credit
}

// RunningLedger turns lines, already ordered by line id, into ledger rows.
// The running balance is the raw cumulative debit - credit starting at zero,
// independent of the account type.
func RunningLedger(lines []domain.LedgerLine) []domain.LedgerRow {
	rows := make([]domain.LedgerRow, 0, len(lines))
	running := decimal.Zero
	for _, l := range lines {
		running = running.Add(l.Debit).Sub(l.Credit)
		rows = append(rows, domain.LedgerRow{
			EntryID:     l.EntryID,
			Date:        l.Date,
			Description: l.Description,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Balance:     running,
		})
	}
	return rows
}

// TotalsFor returns the totals recorded for an account, or zeros if the
// account has no lines.
func TotalsFor(totals map[int64]domain.AccountTotals, accountID int64) domain.AccountTotals {
	if t, ok := totals[accountID]; ok {
		return t
	}
	return domain.AccountTotals{AccountID: accountID, Debit: decimal.Zero, Credit: decimal.Zero}
}

// IsBalanced reports whether the 2-decimal rounded debit and credit sums match.
func IsBalanced(lines []domain.LineInput) bool {
	debit, credit := domain.Totals(lines)
	return debit.Equal(credit)
}
