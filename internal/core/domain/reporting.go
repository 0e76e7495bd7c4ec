package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// NetIncomeLabel names the synthetic equity row on the balance sheet.
const NetIncomeLabel = "Net Income"

// AccountTotals holds the raw debit and credit sums of one account.
type AccountTotals struct {
	AccountID int64
	Debit     decimal.Decimal
	Credit    decimal.Decimal
}

// TrialBalanceRow represents a single row in a trial balance report.
// Balance is debit minus credit regardless of account type.
type TrialBalanceRow struct {
	AccountID   int64           `json:"accountID"`
	AccountName string          `json:"accountName"`
	AccountCode string          `json:"accountCode"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

// TrialBalance is the per-account debit/credit listing of a book.
type TrialBalance struct {
	Accounts    []TrialBalanceRow `json:"accounts"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
}

// AccountAmount represents an account with its amount on an income statement.
type AccountAmount struct {
	AccountID   int64           `json:"accountID"`
	AccountName string          `json:"accountName"`
	Amount      decimal.Decimal `json:"amount"`
}

// IncomeStatement reports income and expense for a period.
type IncomeStatement struct {
	Income       []AccountAmount `json:"income"`
	Expense      []AccountAmount `json:"expense"`
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	NetIncome    decimal.Decimal `json:"netIncome"`
}

// BalanceSheetRow is one line of a balance sheet section. AccountID is nil
// for the synthetic net income row.
type BalanceSheetRow struct {
	AccountID   *int64          `json:"accountID"`
	AccountName string          `json:"accountName"`
	Balance     decimal.Decimal `json:"balance"`
}

// BalanceSheet represents a balance sheet report.
type BalanceSheet struct {
	Assets           []BalanceSheetRow `json:"assets"`
	Liabilities      []BalanceSheetRow `json:"liabilities"`
	Equity           []BalanceSheetRow `json:"equity"`
	TotalAssets      decimal.Decimal   `json:"totalAssets"`
	TotalLiabilities decimal.Decimal   `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal   `json:"totalEquity"`
}

// LedgerLine is a persisted journal line joined with its entry, as read
// for the general ledger.
type LedgerLine struct {
	LineID      int64
	EntryID     int64
	Date        time.Time
	Description string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
}

// LedgerRow is one line of an account's general ledger with the running
// raw debit minus credit balance.
type LedgerRow struct {
	EntryID     int64           `json:"entryID"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

// Ledger is the general ledger of a single account.
type Ledger struct {
	Account Account     `json:"account"`
	Rows    []LedgerRow `json:"rows"`
}

// AccountBalance is the signed balance of an account.
type AccountBalance struct {
	Account Account         `json:"account"`
	Debit   decimal.Decimal `json:"debit"`
	Credit  decimal.Decimal `json:"credit"`
	Balance decimal.Decimal `json:"balance"`
}
