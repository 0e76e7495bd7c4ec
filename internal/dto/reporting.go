package dto

import (
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DateRangeParams is the optional inclusive date window shared by
// journal listings and reports.
type DateRangeParams struct {
	StartDate string `form:"start_date" binding:"omitempty,ledger_date"`
	EndDate   string `form:"end_date" binding:"omitempty,ledger_date"`
}

// DateRange parses the window. An end before the start is a validation error.
func (p DateRangeParams) DateRange() (domain.DateRange, error) {
	var window domain.DateRange
	parse := func(raw, field string) (*time.Time, error) {
		if raw == "" {
			return nil, nil
		}
		t, err := time.Parse(domain.DateLayout, raw)
		if err != nil {
			return nil, apperrors.NewValidationFailedError(field + " must be formatted as YYYY-MM-DD")
		}
		return &t, nil
	}
	var err error
	if window.From, err = parse(p.StartDate, "start_date"); err != nil {
		return window, err
	}
	if window.To, err = parse(p.EndDate, "end_date"); err != nil {
		return window, err
	}
	if window.From != nil && window.To != nil && window.To.Before(*window.From) {
		return window, apperrors.NewValidationFailedError("end_date must not be before start_date")
	}
	return window, nil
}

// ReportParams defines query parameters for book reports.
type ReportParams struct {
	DateRangeParams
	BookID int64 `form:"book_id" binding:"required,gt=0"`
}

// TrialBalanceRowResponse represents a row in the trial balance report response
type TrialBalanceRowResponse struct {
	AccountID   int64           `json:"account_id"`
	AccountName string          `json:"account_name"`
	AccountCode string          `json:"account_code"`
	AccountType string          `json:"account_type"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

// TrialBalanceResponse represents the trial balance report response
type TrialBalanceResponse struct {
	Accounts    []TrialBalanceRowResponse `json:"accounts"`
	TotalDebit  decimal.Decimal           `json:"total_debit"`
	TotalCredit decimal.Decimal           `json:"total_credit"`
}

// AccountAmountResponse represents an account with its amount on an income statement.
type AccountAmountResponse struct {
	AccountID   int64           `json:"account_id"`
	AccountName string          `json:"account_name"`
	Amount      decimal.Decimal `json:"amount"`
}

// IncomeStatementResponse represents the income statement report response
type IncomeStatementResponse struct {
	Income       []AccountAmountResponse `json:"income"`
	Expense      []AccountAmountResponse `json:"expense"`
	TotalIncome  decimal.Decimal         `json:"total_income"`
	TotalExpense decimal.Decimal         `json:"total_expense"`
	NetIncome    decimal.Decimal         `json:"net_income"`
}

// BalanceSheetRowResponse is one balance sheet line. AccountID is null for net income.
type BalanceSheetRowResponse struct {
	AccountID   *int64          `json:"account_id"`
	AccountName string          `json:"account_name"`
	Balance     decimal.Decimal `json:"balance"`
}

// BalanceSheetResponse represents the balance sheet report response
type BalanceSheetResponse struct {
	Assets           []BalanceSheetRowResponse `json:"assets"`
	Liabilities      []BalanceSheetRowResponse `json:"liabilities"`
	Equity           []BalanceSheetRowResponse `json:"equity"`
	TotalAssets      decimal.Decimal           `json:"total_assets"`
	TotalLiabilities decimal.Decimal           `json:"total_liabilities"`
	TotalEquity      decimal.Decimal           `json:"total_equity"`
}

// LedgerRowResponse is one line of a general ledger with its running balance.
type LedgerRowResponse struct {
	EntryID     int64           `json:"entry_id"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

// LedgerAccountResponse identifies the account a ledger belongs to.
type LedgerAccountResponse struct {
	ID   int64              `json:"id"`
	Name string             `json:"name"`
	Type domain.AccountType `json:"type"`
	Code string             `json:"code"`
}

// LedgerResponse represents the general ledger of one account.
type LedgerResponse struct {
	Account LedgerAccountResponse `json:"account"`
	Ledger  []LedgerRowResponse   `json:"ledger"`
}

// ToTrialBalanceResponse converts a domain trial balance to a DTO response
func ToTrialBalanceResponse(tb *domain.TrialBalance) TrialBalanceResponse {
	rows := make([]TrialBalanceRowResponse, len(tb.Accounts))
	for i, row := range tb.Accounts {
		rows[i] = TrialBalanceRowResponse{
			AccountID:   row.AccountID,
			AccountName: row.AccountName,
			AccountCode: row.AccountCode,
			AccountType: string(row.AccountType),
			Debit:       row.Debit,
			Credit:      row.Credit,
			Balance:     row.Balance,
		}
	}
	return TrialBalanceResponse{Accounts: rows, TotalDebit: tb.TotalDebit, TotalCredit: tb.TotalCredit}
}

func toAccountAmounts(rows []domain.AccountAmount) []AccountAmountResponse {
	res := make([]AccountAmountResponse, len(rows))
	for i, row := range rows {
		res[i] = AccountAmountResponse{AccountID: row.AccountID, AccountName: row.AccountName, Amount: row.Amount}
	}
	return res
}

// ToIncomeStatementResponse converts a domain income statement to a DTO response
func ToIncomeStatementResponse(is *domain.IncomeStatement) IncomeStatementResponse {
	return IncomeStatementResponse{
		Income:       toAccountAmounts(is.Income),
		Expense:      toAccountAmounts(is.Expense),
		TotalIncome:  is.TotalIncome,
		TotalExpense: is.TotalExpense,
		NetIncome:    is.NetIncome,
	}
}

func toBalanceSheetRows(rows []domain.BalanceSheetRow) []BalanceSheetRowResponse {
	res := make([]BalanceSheetRowResponse, len(rows))
	for i, row := range rows {
		res[i] = BalanceSheetRowResponse{AccountID: row.AccountID, AccountName: row.AccountName, Balance: row.Balance}
	}
	return res
}

// ToBalanceSheetResponse converts a domain balance sheet to a DTO response
func ToBalanceSheetResponse(bs *domain.BalanceSheet) BalanceSheetResponse {
	return BalanceSheetResponse{
		Assets:           toBalanceSheetRows(bs.Assets),
		Liabilities:      toBalanceSheetRows(bs.Liabilities),
		Equity:           toBalanceSheetRows(bs.Equity),
		TotalAssets:      bs.TotalAssets,
		TotalLiabilities: bs.TotalLiabilities,
		TotalEquity:      bs.TotalEquity,
	}
}

// ToLedgerResponse converts a domain ledger to a DTO response
func ToLedgerResponse(l *domain.Ledger) LedgerResponse {
	rows := make([]LedgerRowResponse, len(l.Rows))
	for i, row := range l.Rows {
		rows[i] = LedgerRowResponse{
			EntryID:     row.EntryID,
			Date:        row.Date.Format(domain.DateLayout),
			Description: row.Description,
			Debit:       row.Debit,
			Credit:      row.Credit,
			Balance:     row.Balance,
		}
	}
	return LedgerResponse{
		Account: LedgerAccountResponse{
			ID:   l.Account.AccountID,
			Name: l.Account.Name,
			Type: l.Account.AccountType,
			Code: l.Account.Code,
		},
		Ledger: rows,
	}
}
