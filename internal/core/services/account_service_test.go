package services_test

import (
	"testing"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	ledgerSuite
	userID string
	bookID int64
}

func (s *AccountServiceTestSuite) SetupTest() {
	s.ledgerSuite.SetupTest()
	s.userID, s.bookID = s.signup("alice")
}

func TestAccountServiceSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}

func (s *AccountServiceTestSuite) TestCreateAccount_Validation() {
	_, err := s.svc.Account.CreateAccount(s.ctx, s.userID, domain.Account{
		BookID: s.bookID, Name: "Cash", Code: "1000", Category: "Current", AccountType: "Gold",
	})
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.svc.Account.CreateAccount(s.ctx, s.userID, domain.Account{
		BookID: s.bookID, Code: "1000", Category: "Current", AccountType: domain.Asset,
	})
	s.ErrorIs(err, apperrors.ErrValidation)

	s.account(s.userID, s.bookID, "1000", domain.Asset)
	_, err = s.svc.Account.CreateAccount(s.ctx, s.userID, domain.Account{
		BookID: s.bookID, Name: "Again", Code: "1000", Category: "Current", AccountType: domain.Asset,
	})
	s.ErrorIs(err, apperrors.ErrConflict)

	missing := int64(999)
	_, err = s.svc.Account.CreateAccount(s.ctx, s.userID, domain.Account{
		BookID: s.bookID, Name: "Child", Code: "1001", Category: "Current", AccountType: domain.Asset, ParentID: &missing,
	})
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *AccountServiceTestSuite) TestSameCodeInAnotherBook() {
	s.account(s.userID, s.bookID, "1000", domain.Asset)
	other := s.book(s.userID, "Side business")
	s.account(s.userID, other, "1000", domain.Asset)

	accounts, err := s.svc.Account.ListAccounts(s.ctx, s.userID, other)
	s.Require().NoError(err)
	s.Len(accounts, 1)
}

func (s *AccountServiceTestSuite) TestUpdateAccount_ParentRules() {
	root := s.account(s.userID, s.bookID, "1000", domain.Asset)
	child := s.account(s.userID, s.bookID, "1100", domain.Asset)

	updated, err := s.svc.Account.UpdateAccount(s.ctx, s.userID, child, domain.AccountPatch{ParentID: &root})
	s.Require().NoError(err)
	s.Require().NotNil(updated.ParentID)
	s.Equal(root, *updated.ParentID)

	_, err = s.svc.Account.UpdateAccount(s.ctx, s.userID, root, domain.AccountPatch{ParentID: &child})
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.svc.Account.UpdateAccount(s.ctx, s.userID, root, domain.AccountPatch{ParentID: &root})
	s.ErrorIs(err, apperrors.ErrValidation)

	other := s.book(s.userID, "B2")
	foreign := s.account(s.userID, other, "9000", domain.Asset)
	_, err = s.svc.Account.UpdateAccount(s.ctx, s.userID, child, domain.AccountPatch{ParentID: &foreign})
	s.ErrorIs(err, apperrors.ErrNotFound)

	cleared, err := s.svc.Account.UpdateAccount(s.ctx, s.userID, child, domain.AccountPatch{ClearParent: true})
	s.Require().NoError(err)
	s.Nil(cleared.ParentID)
}

func (s *AccountServiceTestSuite) TestUpdateAccount_Fields() {
	id := s.account(s.userID, s.bookID, "1000", domain.Asset)
	name, kind := "Petty cash", domain.Asset
	updated, err := s.svc.Account.UpdateAccount(s.ctx, s.userID, id, domain.AccountPatch{Name: &name, AccountType: &kind})
	s.Require().NoError(err)
	s.Equal("Petty cash", updated.Name)

	bad := domain.AccountType("Gold")
	_, err = s.svc.Account.UpdateAccount(s.ctx, s.userID, id, domain.AccountPatch{AccountType: &bad})
	s.ErrorIs(err, apperrors.ErrValidation)

	bob, _ := s.signup("bob")
	_, err = s.svc.Account.UpdateAccount(s.ctx, bob, id, domain.AccountPatch{Name: &name})
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *AccountServiceTestSuite) TestDeleteAccount_Rules() {
	root := s.account(s.userID, s.bookID, "1000", domain.Asset)
	child, err := s.svc.Account.CreateAccount(s.ctx, s.userID, domain.Account{
		BookID: s.bookID, Name: "Bank", Code: "1100", Category: "Current", AccountType: domain.Asset, ParentID: &root,
	})
	s.Require().NoError(err)
	sales := s.account(s.userID, s.bookID, "4000", domain.Income)

	s.ErrorIs(s.svc.Account.DeleteAccount(s.ctx, s.userID, root), apperrors.ErrConflict)

	s.post(s.userID, s.bookID, "2024-01-15", debit(child.AccountID, "5"), credit(sales, "5"))
	s.ErrorIs(s.svc.Account.DeleteAccount(s.ctx, s.userID, child.AccountID), apperrors.ErrConflict)

	unused := s.account(s.userID, s.bookID, "3000", domain.Equity)
	s.NoError(s.svc.Account.DeleteAccount(s.ctx, s.userID, unused))
	_, err = s.svc.Account.GetAccount(s.ctx, s.userID, unused)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *AccountServiceTestSuite) TestBookRules() {
	books, err := s.svc.Book.ListBooks(s.ctx, s.userID)
	s.Require().NoError(err)
	s.Require().Len(books, 1)
	s.Equal(domain.DefaultBookName, books[0].Name)

	_, err = s.svc.Book.CreateBook(s.ctx, s.userID, domain.DefaultBookName)
	s.ErrorIs(err, apperrors.ErrConflict)
	_, err = s.svc.Book.CreateBook(s.ctx, s.userID, "   ")
	s.ErrorIs(err, apperrors.ErrValidation)

	bob, _ := s.signup("bob")
	_, err = s.svc.Book.GetBook(s.ctx, bob, s.bookID)
	s.ErrorIs(err, apperrors.ErrNotFound)

	renamed, err := s.svc.Book.RenameBook(s.ctx, s.userID, s.bookID, "Household")
	s.Require().NoError(err)
	s.Equal("Household", renamed.Name)

	s.account(s.userID, s.bookID, "1000", domain.Asset)
	s.ErrorIs(s.svc.Book.DeleteBook(s.ctx, s.userID, s.bookID), apperrors.ErrConflict)

	empty := s.book(s.userID, "Scratch")
	s.NoError(s.svc.Book.DeleteBook(s.ctx, s.userID, empty))
	_, err = s.svc.Book.GetBook(s.ctx, s.userID, empty)
	s.ErrorIs(err, apperrors.ErrNotFound)
}
