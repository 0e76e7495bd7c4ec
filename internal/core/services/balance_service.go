package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_ledger/internal/utils/accounting"
)

type balanceService struct {
	BaseService
}

// NewBalanceService creates the per-account balance calculator.
func NewBalanceService(uow portsrepo.UnitOfWorkFactory) portssvc.BalanceSvcFacade {
	return &balanceService{BaseService: BaseService{uow: uow}}
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

// accountLines loads an owned account and its lines from one snapshot.
func (s *balanceService) accountLines(ctx context.Context, userID string, accountID int64, window domain.DateRange) (*domain.Account, []domain.LedgerLine, error) {
	var account *domain.Account
	var lines []domain.LedgerLine
	err := s.uow.ReadSnapshot(ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		var err error
		if account, err = uow.Accounts().FindAccountByID(ctx, userID, accountID); err != nil {
			return err
		}
		lines, err = uow.Reporting().LedgerLines(ctx, userID, accountID, window)
		return err
	})
	return account, lines, err
}

func (s *balanceService) AccountBalance(ctx context.Context, userID string, accountID int64, window domain.DateRange) (*domain.AccountBalance, error) {
	account, lines, err := s.accountLines(ctx, userID, accountID, window)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to compute account balance", slog.Int64("account_id", accountID))
		return nil, err
	}
	debit, credit := accounting.SumLines(lines)
	return &domain.AccountBalance{
		Account: *account,
		Debit:   debit,
		Credit:  credit,
		Balance: accounting.SignedBalance(account.AccountType, debit, credit),
	}, nil
}

func (s *balanceService) Ledger(ctx context.Context, userID string, accountID int64, window domain.DateRange) (*domain.Ledger, error) {
	account, lines, err := s.accountLines(ctx, userID, accountID, window)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to build ledger", slog.Int64("account_id", accountID))
		return nil, err
	}
	return &domain.Ledger{Account: *account, Rows: accounting.RunningLedger(lines)}, nil
}
