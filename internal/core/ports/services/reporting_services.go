package services

import (
	"context"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
)

// BalanceSvcFacade computes per-account figures.
type BalanceSvcFacade interface {
	// AccountBalance returns the balance signed by the account type's natural side.
	AccountBalance(ctx context.Context, userID string, accountID int64, window domain.DateRange) (*domain.AccountBalance, error)

	// Ledger returns the account's lines with a raw running debit - credit balance.
	Ledger(ctx context.Context, userID string, accountID int64, window domain.DateRange) (*domain.Ledger, error)
}

// ReportingSvcFacade defines the book-level financial reports.
type ReportingSvcFacade interface {
	TrialBalance(ctx context.Context, userID string, bookID int64, window domain.DateRange) (*domain.TrialBalance, error)
	IncomeStatement(ctx context.Context, userID string, bookID int64, window domain.DateRange) (*domain.IncomeStatement, error)

	// BalanceSheet includes net income as a synthetic equity row.
	BalanceSheet(ctx context.Context, userID string, bookID int64, window domain.DateRange) (*domain.BalanceSheet, error)
}
