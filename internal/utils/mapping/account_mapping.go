package mapping

import (
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	"github.com/SscSPs/bookkeeping_ledger/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:   d.AccountID,
		UserID:      d.UserID,
		BookID:      d.BookID,
		Name:        d.Name,
		AccountType: string(d.AccountType),
		Code:        d.Code,
		Category:    d.Category,
		ParentID:    ToNullInt64(d.ParentID),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:   m.AccountID,
		UserID:      m.UserID,
		BookID:      m.BookID,
		Name:        m.Name,
		AccountType: domain.AccountType(m.AccountType),
		Code:        m.Code,
		Category:    m.Category,
		ParentID:    FromNullInt64(m.ParentID),
	}
}
