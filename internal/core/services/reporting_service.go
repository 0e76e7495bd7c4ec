package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

type reportingService struct {
	BaseService
}

// NewReportingService creates the report generator.
func NewReportingService(uow portsrepo.UnitOfWorkFactory) portssvc.ReportingSvcFacade {
	return &reportingService{BaseService: BaseService{uow: uow}}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// bookFigures is everything a report needs, read from a single snapshot.
type bookFigures struct {
	accounts []domain.Account
	totals   map[int64]domain.AccountTotals
}

func (s *reportingService) loadFigures(ctx context.Context, userID string, bookID int64, window domain.DateRange) (*bookFigures, error) {
	figures := &bookFigures{}
	err := s.uow.ReadSnapshot(ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		if _, err := requireBook(ctx, uow, userID, bookID); err != nil {
			return err
		}
		var err error
		if figures.accounts, err = uow.Accounts().ListAccounts(ctx, userID, bookID); err != nil {
			return err
		}
		figures.totals, err = uow.Reporting().AccountTotals(ctx, userID, bookID, window)
		return err
	})
	return figures, err
}

func (f *bookFigures) trialBalance() *domain.TrialBalance {
	tb := &domain.TrialBalance{
		Accounts:    make([]domain.TrialBalanceRow, 0, len(f.accounts)),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for _, acc := range f.accounts {
		t := accounting.TotalsFor(f.totals, acc.AccountID)
		tb.Accounts = append(tb.Accounts, domain.TrialBalanceRow{
			AccountID:   acc.AccountID,
			AccountName: acc.Name,
			AccountCode: acc.Code,
			AccountType: acc.AccountType,
			Debit:       t.Debit,
			Credit:      t.Credit,
			Balance:     t.Debit.Sub(t.Credit),
		})
		tb.TotalDebit = tb.TotalDebit.Add(t.Debit)
		tb.TotalCredit = tb.TotalCredit.Add(t.Credit)
	}
	return tb
}

func (f *bookFigures) incomeStatement() *domain.IncomeStatement {
	is := &domain.IncomeStatement{
		Income:       make([]domain.AccountAmount, 0),
		Expense:      make([]domain.AccountAmount, 0),
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}
	for _, acc := range f.accounts {
		t := accounting.TotalsFor(f.totals, acc.AccountID)
		amount := accounting.SignedBalance(acc.AccountType, t.Debit, t.Credit)
		row := domain.AccountAmount{AccountID: acc.AccountID, AccountName: acc.Name, Amount: amount}
		switch {
		case acc.AccountType.IsIncome():
			is.Income = append(is.Income, row)
			is.TotalIncome = is.TotalIncome.Add(amount)
		case acc.AccountType == domain.Expense:
			is.Expense = append(is.Expense, row)
			is.TotalExpense = is.TotalExpense.Add(amount)
		}
	}
	is.NetIncome = is.TotalIncome.Sub(is.TotalExpense)
	return is
}

func (f *bookFigures) balanceSheet() *domain.BalanceSheet {
	bs := &domain.BalanceSheet{
		Assets:           make([]domain.BalanceSheetRow, 0),
		Liabilities:      make([]domain.BalanceSheetRow, 0),
		Equity:           make([]domain.BalanceSheetRow, 0),
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
	}
	for _, acc := range f.accounts {
		t := accounting.TotalsFor(f.totals, acc.AccountID)
		balance := accounting.SignedBalance(acc.AccountType, t.Debit, t.Credit)
		id := acc.AccountID
		row := domain.BalanceSheetRow{AccountID: &id, AccountName: acc.Name, Balance: balance}
		switch acc.AccountType {
		case domain.Asset:
			bs.Assets = append(bs.Assets, row)
			bs.TotalAssets = bs.TotalAssets.Add(balance)
		case domain.Liability:
			bs.Liabilities = append(bs.Liabilities, row)
			bs.TotalLiabilities = bs.TotalLiabilities.Add(balance)
		case domain.Equity:
			bs.Equity = append(bs.Equity, row)
			bs.TotalEquity = bs.TotalEquity.Add(balance)
		}
	}

	// Net income is a synthetic equity row without an account id.
	netIncome := f.incomeStatement().NetIncome
	bs.Equity = append(bs.Equity, domain.BalanceSheetRow{AccountName: domain.NetIncomeLabel, Balance: netIncome})
	bs.TotalEquity = bs.TotalEquity.Add(netIncome)
	return bs
}

func (s *reportingService) TrialBalance(ctx context.Context, userID string, bookID int64, window domain.DateRange) (*domain.TrialBalance, error) {
	figures, err := s.loadFigures(ctx, userID, bookID, window)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to build trial balance", slog.Int64("book_id", bookID))
		return nil, err
	}
	return figures.trialBalance(), nil
}

func (s *reportingService) IncomeStatement(ctx context.Context, userID string, bookID int64, window domain.DateRange) (*domain.IncomeStatement, error) {
	figures, err := s.loadFigures(ctx, userID, bookID, window)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to build income statement", slog.Int64("book_id", bookID))
		return nil, err
	}
	return figures.incomeStatement(), nil
}

func (s *reportingService) BalanceSheet(ctx context.Context, userID string, bookID int64, window domain.DateRange) (*domain.BalanceSheet, error) {
	figures, err := s.loadFigures(ctx, userID, bookID, window)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to build balance sheet", slog.Int64("book_id", bookID))
		return nil, err
	}
	return figures.balanceSheet(), nil
}
