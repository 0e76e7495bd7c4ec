package dto

import (
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	BookID      int64              `json:"book_id" binding:"required,gt=0"`
	Name        string             `json:"name" binding:"required"`
	AccountType domain.AccountType `json:"account_type" binding:"required,account_type"`
	Code        string             `json:"code" binding:"required"`
	Category    string             `json:"category" binding:"required"`
	ParentID    *int64             `json:"parent_id"` // optional, same book only
}

// ToDomain converts the request to a domain.Account.
func (r CreateAccountRequest) ToDomain() domain.Account {
	return domain.Account{
		BookID:      r.BookID,
		Name:        r.Name,
		AccountType: r.AccountType,
		Code:        r.Code,
		Category:    r.Category,
		ParentID:    r.ParentID,
	}
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	Name        *string             `json:"name"`
	AccountType *domain.AccountType `json:"account_type" binding:"omitempty,account_type"`
	Code        *string             `json:"code"`
	Category    *string             `json:"category"`
	ParentID    *int64              `json:"parent_id"`
	ClearParent bool                `json:"clear_parent"` // detach from the current parent
}

// ToPatch converts the request to a domain.AccountPatch.
func (r UpdateAccountRequest) ToPatch() domain.AccountPatch {
	return domain.AccountPatch{
		Name:        r.Name,
		AccountType: r.AccountType,
		Code:        r.Code,
		Category:    r.Category,
		ParentID:    r.ParentID,
		ClearParent: r.ClearParent,
	}
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	BookID int64 `form:"book_id" binding:"required,gt=0"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID   int64              `json:"account_id"`
	BookID      int64              `json:"book_id"`
	Name        string             `json:"name"`
	AccountType domain.AccountType `json:"account_type"`
	Code        string             `json:"code"`
	Category    string             `json:"category"`
	ParentID    *int64             `json:"parent_id"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:   acc.AccountID,
		BookID:      acc.BookID,
		Name:        acc.Name,
		AccountType: acc.AccountType,
		Code:        acc.Code,
		Category:    acc.Category,
		ParentID:    acc.ParentID,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// AccountBalanceResponse defines the data returned for an account balance query.
// Balance is signed by the account's normal side.
type AccountBalanceResponse struct {
	AccountID   int64              `json:"account_id"`
	AccountType domain.AccountType `json:"account_type"`
	Debit       decimal.Decimal    `json:"debit"`
	Credit      decimal.Decimal    `json:"credit"`
	Balance     decimal.Decimal    `json:"balance"`
}

// ToAccountBalanceResponse converts a domain.AccountBalance to its DTO.
func ToAccountBalanceResponse(b *domain.AccountBalance) AccountBalanceResponse {
	return AccountBalanceResponse{
		AccountID:   b.Account.AccountID,
		AccountType: b.Account.AccountType,
		Debit:       b.Debit,
		Credit:      b.Credit,
		Balance:     b.Balance,
	}
}
