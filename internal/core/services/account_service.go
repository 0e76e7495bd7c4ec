package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
}

// NewAccountService creates the account directory service.
func NewAccountService(uow portsrepo.UnitOfWorkFactory) portssvc.AccountSvcFacade {
	return &accountService{BaseService: BaseService{uow: uow}}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// validateAccountFields checks the fields every account must carry.
func validateAccountFields(acc *domain.Account) error {
	var err error
	if acc.Name, err = requireText("name", acc.Name); err != nil {
		return err
	}
	if acc.Code, err = requireText("code", acc.Code); err != nil {
		return err
	}
	if acc.Category, err = requireText("category", acc.Category); err != nil {
		return err
	}
	if !acc.AccountType.IsValid() {
		return apperrors.NewValidationFailedError(fmt.Sprintf("account_type %q is not one of %v", acc.AccountType, domain.AccountTypes))
	}
	return nil
}

func (s *accountService) GetAccount(ctx context.Context, userID string, accountID int64) (*domain.Account, error) {
	var account *domain.Account
	err := s.uow.ReadSnapshot(ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		var err error
		account, err = uow.Accounts().FindAccountByID(ctx, userID, accountID)
		return err
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to get account", slog.Int64("account_id", accountID))
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, userID string, bookID int64) ([]domain.Account, error) {
	var accounts []domain.Account
	err := s.uow.ReadSnapshot(ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		if _, err := requireBook(ctx, uow, userID, bookID); err != nil {
			return err
		}
		var err error
		accounts, err = uow.Accounts().ListAccounts(ctx, userID, bookID)
		return err
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to list accounts", slog.Int64("book_id", bookID))
		return nil, err
	}
	s.LogDebug(ctx, "Accounts listed", slog.Int64("book_id", bookID), slog.Int("count", len(accounts)))
	return accounts, nil
}

func (s *accountService) CreateAccount(ctx context.Context, userID string, account domain.Account) (*domain.Account, error) {
	account.AccountID = 0
	account.UserID = userID
	if err := validateAccountFields(&account); err != nil {
		return nil, err
	}

	err := s.uow.WithinTx(ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		if _, err := requireBook(ctx, uow, userID, account.BookID); err != nil {
			return err
		}
		if account.ParentID != nil {
			found, err := uow.Accounts().FindAccountsByIDs(ctx, userID, account.BookID, []int64{*account.ParentID})
			if err != nil {
				return err
			}
			if _, ok := found[*account.ParentID]; !ok {
				return apperrors.NewNotFoundError(fmt.Sprintf("parent account %d", *account.ParentID))
			}
		}
		return uow.Accounts().SaveAccount(ctx, &account)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to create account",
			slog.Int64("book_id", account.BookID), slog.String("code", account.Code))
		return nil, err
	}

	s.LogInfo(ctx, "Account created", slog.Int64("account_id", account.AccountID), slog.Int64("book_id", account.BookID))
	return &account, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, userID string, accountID int64, patch domain.AccountPatch) (*domain.Account, error) {
	var updated domain.Account
	err := s.uow.WithinTx(ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		current, err := uow.Accounts().FindAccountByID(ctx, userID, accountID)
		if err != nil {
			return err
		}
		updated = patch.Apply(*current)
		if patch.IsEmpty() {
			return nil
		}
		if err := validateAccountFields(&updated); err != nil {
			return err
		}

		if patch.ParentID != nil && !patch.ClearParent {
			accounts, err := uow.Accounts().ListAccounts(ctx, userID, current.BookID)
			if err != nil {
				return err
			}
			arena := domain.NewAccountArena(accounts)
			if _, ok := arena.Get(*patch.ParentID); !ok {
				return apperrors.NewNotFoundError(fmt.Sprintf("parent account %d", *patch.ParentID))
			}
			if arena.WouldCycle(accountID, *patch.ParentID) {
				return apperrors.NewValidationFailedError(
					fmt.Sprintf("account %d cannot have %d as parent: hierarchy would contain a cycle", accountID, *patch.ParentID))
			}
		}
		return uow.Accounts().UpdateAccount(ctx, updated)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to update account", slog.Int64("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated", slog.Int64("account_id", accountID))
	return &updated, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, userID string, accountID int64) error {
	err := s.uow.WithinTx(ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		account, err := uow.Accounts().FindAccountByID(ctx, userID, accountID)
		if err != nil {
			return err
		}
		used, err := uow.Accounts().AccountHasLines(ctx, accountID)
		if err != nil {
			return err
		}
		if used {
			return apperrors.NewConflictError(fmt.Sprintf("account %d is referenced by journal lines", accountID))
		}

		accounts, err := uow.Accounts().ListAccounts(ctx, userID, account.BookID)
		if err != nil {
			return err
		}
		if children := domain.NewAccountArena(accounts).Children(accountID); len(children) > 0 {
			return apperrors.NewConflictError(fmt.Sprintf("account %d has %d child accounts", accountID, len(children)))
		}
		return uow.Accounts().DeleteAccount(ctx, userID, accountID)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to delete account", slog.Int64("account_id", accountID))
		return err
	}

	s.LogInfo(ctx, "Account deleted", slog.Int64("account_id", accountID))
	return nil
}
