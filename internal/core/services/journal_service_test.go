package services_test

import (
	"testing"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type JournalServiceTestSuite struct {
	ledgerSuite
	userID string
	bookID int64
	cash   int64
	sales  int64
}

func (s *JournalServiceTestSuite) SetupTest() {
	s.ledgerSuite.SetupTest()
	s.userID, _ = s.signup("alice")
	s.bookID = s.book(s.userID, "B1")
	s.cash = s.account(s.userID, s.bookID, "1000", domain.Asset)
	s.sales = s.account(s.userID, s.bookID, "4000", domain.Income)
}

func TestJournalServiceSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}

func (s *JournalServiceTestSuite) TestPostEntry_Balanced() {
	entry := s.post(s.userID, s.bookID, "2024-01-15", debit(s.cash, "500"), credit(s.sales, "500"))

	s.Equal(domain.Draft, entry.Status)
	s.Equal(s.bookID, entry.BookID)
	s.Require().Len(entry.Lines, 2)
	s.Equal("1000", entry.Lines[0].AccountCode)
	s.NotZero(entry.Lines[0].LineID)

	stored, err := s.svc.Journal.GetEntry(s.ctx, s.userID, entry.EntryID)
	s.Require().NoError(err)
	s.Equal("2024-01-15", stored.Date.Format(domain.DateLayout))
	s.Len(stored.Lines, 2)
}

func (s *JournalServiceTestSuite) TestPostEntry_UnbalancedWritesNothing() {
	_, err := s.svc.Journal.PostEntry(s.ctx, s.userID, domain.NewEntry{
		BookID: s.bookID, Date: "2024-01-15",
		Lines: []domain.LineInput{debit(s.cash, "500"), credit(s.sales, "400")},
	})
	s.ErrorIs(err, apperrors.ErrUnbalanced)

	page, err := s.svc.Journal.ListEntries(s.ctx, s.userID, s.bookID, domain.DateRange{}, 0, nil)
	s.Require().NoError(err)
	s.Empty(page.Entries)

	tb, err := s.svc.Reporting.TrialBalance(s.ctx, s.userID, s.bookID, domain.DateRange{})
	s.Require().NoError(err)
	s.True(tb.TotalDebit.IsZero())
}

func (s *JournalServiceTestSuite) TestPostEntry_RoundsBeforeBalancing() {
	entry := s.post(s.userID, s.bookID, "2024-01-15",
		debit(s.cash, "100.004"), credit(s.sales, "100"))
	s.True(entry.Lines[0].Debit.Equal(dec("100")))

	_, err := s.svc.Journal.PostEntry(s.ctx, s.userID, domain.NewEntry{
		BookID: s.bookID, Date: "2024-01-15",
		Lines: []domain.LineInput{debit(s.cash, "100.005"), credit(s.sales, "100")},
	})
	s.ErrorIs(err, apperrors.ErrUnbalanced)
}

func (s *JournalServiceTestSuite) TestPostEntry_Validation() {
	cases := []struct {
		name  string
		entry domain.NewEntry
	}{
		{"single line", domain.NewEntry{BookID: s.bookID, Date: "2024-01-15",
			Lines: []domain.LineInput{debit(s.cash, "10")}}},
		{"missing account", domain.NewEntry{BookID: s.bookID, Date: "2024-01-15",
			Lines: []domain.LineInput{
				{Debit: dec("10"), Credit: decimal.Zero},
				credit(s.sales, "10")}}},
		{"negative amount", domain.NewEntry{BookID: s.bookID, Date: "2024-01-15",
			Lines: []domain.LineInput{
				{AccountID: s.cash, Debit: dec("-10"), Credit: decimal.Zero},
				credit(s.sales, "10")}}},
		{"bad date", domain.NewEntry{BookID: s.bookID, Date: "15/01/2024",
			Lines: []domain.LineInput{debit(s.cash, "10"), credit(s.sales, "10")}}},
		{"missing book", domain.NewEntry{Date: "2024-01-15",
			Lines: []domain.LineInput{debit(s.cash, "10"), credit(s.sales, "10")}}},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			_, err := s.svc.Journal.PostEntry(s.ctx, s.userID, tc.entry)
			s.ErrorIs(err, apperrors.ErrValidation)
		})
	}
}

func (s *JournalServiceTestSuite) TestPostEntry_TwoSidedAndZeroLines() {
	// Cash carries both sides; the entry balances at 500 = 500.
	entry := s.post(s.userID, s.bookID, "2024-01-15",
		domain.LineInput{AccountID: s.cash, Debit: dec("500"), Credit: dec("100")},
		credit(s.sales, "400"))
	s.Require().Len(entry.Lines, 2)
	s.True(entry.Lines[0].Credit.Equal(dec("100")))

	withZero := s.post(s.userID, s.bookID, "2024-01-16",
		debit(s.cash, "50"), credit(s.sales, "50"),
		domain.LineInput{AccountID: s.sales, Debit: decimal.Zero, Credit: decimal.Zero})
	s.Len(withZero.Lines, 3)

	bal, err := s.svc.Balance.AccountBalance(s.ctx, s.userID, s.cash, domain.DateRange{})
	s.Require().NoError(err)
	s.True(bal.Balance.Equal(dec("450")), bal.Balance.String())

	tb, err := s.svc.Reporting.TrialBalance(s.ctx, s.userID, s.bookID, domain.DateRange{})
	s.Require().NoError(err)
	s.True(tb.TotalDebit.Equal(tb.TotalCredit))
	s.True(tb.TotalDebit.Equal(dec("550")), tb.TotalDebit.String())
}

func (s *JournalServiceTestSuite) TestPostEntry_AccountFromOtherBook() {
	otherBook := s.book(s.userID, "B2")
	foreign := s.account(s.userID, otherBook, "1000", domain.Asset)

	_, err := s.svc.Journal.PostEntry(s.ctx, s.userID, domain.NewEntry{
		BookID: s.bookID, Date: "2024-01-15",
		Lines: []domain.LineInput{debit(foreign, "10"), credit(s.sales, "10")},
	})
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *JournalServiceTestSuite) TestTenantIsolation() {
	entry := s.post(s.userID, s.bookID, "2024-01-15", debit(s.cash, "10"), credit(s.sales, "10"))
	bob, _ := s.signup("bob")

	_, err := s.svc.Journal.GetEntry(s.ctx, bob, entry.EntryID)
	s.ErrorIs(err, apperrors.ErrNotFound)

	_, err = s.svc.Journal.ListEntries(s.ctx, bob, s.bookID, domain.DateRange{}, 0, nil)
	s.ErrorIs(err, apperrors.ErrNotFound)

	_, err = s.svc.Journal.PostEntry(s.ctx, bob, domain.NewEntry{
		BookID: s.bookID, Date: "2024-01-15",
		Lines: []domain.LineInput{debit(s.cash, "10"), credit(s.sales, "10")},
	})
	s.ErrorIs(err, apperrors.ErrNotFound)

	_, err = s.svc.Journal.SubmitEntry(s.ctx, bob, entry.EntryID)
	s.ErrorIs(err, apperrors.ErrNotFound)

	s.ErrorIs(s.svc.Journal.DeleteEntry(s.ctx, bob, entry.EntryID), apperrors.ErrNotFound)
}

func (s *JournalServiceTestSuite) TestEditEntry_SameLinesKeepsTrialBalance() {
	entry := s.post(s.userID, s.bookID, "2024-01-15", debit(s.cash, "250"), credit(s.sales, "250"))
	before, err := s.svc.Reporting.TrialBalance(s.ctx, s.userID, s.bookID, domain.DateRange{})
	s.Require().NoError(err)

	edited, err := s.svc.Journal.EditEntry(s.ctx, s.userID, entry.EntryID, domain.EntryPatch{
		Lines: []domain.LineInput{debit(s.cash, "250"), credit(s.sales, "250")},
	})
	s.Require().NoError(err)
	s.Len(edited.Lines, 2)

	after, err := s.svc.Reporting.TrialBalance(s.ctx, s.userID, s.bookID, domain.DateRange{})
	s.Require().NoError(err)
	s.Require().Len(after.Accounts, len(before.Accounts))
	for i := range before.Accounts {
		s.True(before.Accounts[i].Balance.Equal(after.Accounts[i].Balance))
	}
}

func (s *JournalServiceTestSuite) TestEditEntry_HeaderAndUnbalancedLines() {
	entry := s.post(s.userID, s.bookID, "2024-01-15", debit(s.cash, "250"), credit(s.sales, "250"))

	date, description := "2024-02-01", "  corrected  "
	edited, err := s.svc.Journal.EditEntry(s.ctx, s.userID, entry.EntryID, domain.EntryPatch{
		Date: &date, Description: &description,
	})
	s.Require().NoError(err)
	s.Equal("2024-02-01", edited.Date.Format(domain.DateLayout))
	s.Equal("corrected", edited.Description)
	s.Len(edited.Lines, 2)

	_, err = s.svc.Journal.EditEntry(s.ctx, s.userID, entry.EntryID, domain.EntryPatch{
		Lines: []domain.LineInput{debit(s.cash, "300"), credit(s.sales, "250")},
	})
	s.ErrorIs(err, apperrors.ErrUnbalanced)

	stored, err := s.svc.Journal.GetEntry(s.ctx, s.userID, entry.EntryID)
	s.Require().NoError(err)
	s.True(stored.Lines[0].Debit.Equal(dec("250")))
}

func (s *JournalServiceTestSuite) TestStatusWorkflow() {
	entry := s.post(s.userID, s.bookID, "2024-01-15", debit(s.cash, "10"), credit(s.sales, "10"))

	_, err := s.svc.Journal.ApproveEntry(s.ctx, s.userID, entry.EntryID)
	s.ErrorIs(err, apperrors.ErrInvalidState)

	submitted, err := s.svc.Journal.SubmitEntry(s.ctx, s.userID, entry.EntryID)
	s.Require().NoError(err)
	s.Equal(domain.Submitted, submitted.Status)

	_, err = s.svc.Journal.SubmitEntry(s.ctx, s.userID, entry.EntryID)
	s.ErrorIs(err, apperrors.ErrInvalidState)

	approved, err := s.svc.Journal.ApproveEntry(s.ctx, s.userID, entry.EntryID)
	s.Require().NoError(err)
	s.Equal(domain.Approved, approved.Status)

	_, err = s.svc.Journal.RejectEntry(s.ctx, s.userID, entry.EntryID)
	s.ErrorIs(err, apperrors.ErrInvalidState)

	other := s.post(s.userID, s.bookID, "2024-01-16", debit(s.cash, "10"), credit(s.sales, "10"))
	_, err = s.svc.Journal.SubmitEntry(s.ctx, s.userID, other.EntryID)
	s.Require().NoError(err)
	rejected, err := s.svc.Journal.RejectEntry(s.ctx, s.userID, other.EntryID)
	s.Require().NoError(err)
	s.Equal(domain.Rejected, rejected.Status)
}

func (s *JournalServiceTestSuite) TestDeleteEntry() {
	entry := s.post(s.userID, s.bookID, "2024-01-15", debit(s.cash, "10"), credit(s.sales, "10"))

	s.Require().NoError(s.svc.Journal.DeleteEntry(s.ctx, s.userID, entry.EntryID))
	_, err := s.svc.Journal.GetEntry(s.ctx, s.userID, entry.EntryID)
	s.ErrorIs(err, apperrors.ErrNotFound)

	// The account has no lines left, so it can go too.
	s.NoError(s.svc.Account.DeleteAccount(s.ctx, s.userID, s.cash))
}

func (s *JournalServiceTestSuite) TestListEntries_Paginates() {
	s.post(s.userID, s.bookID, "2024-01-01", debit(s.cash, "1"), credit(s.sales, "1"))
	s.post(s.userID, s.bookID, "2024-01-03", debit(s.cash, "3"), credit(s.sales, "3"))
	s.post(s.userID, s.bookID, "2024-01-02", debit(s.cash, "2"), credit(s.sales, "2"))
	s.post(s.userID, s.bookID, "2024-01-03", debit(s.cash, "4"), credit(s.sales, "4"))

	var dates []string
	var token *string
	pages := 0
	for {
		page, err := s.svc.Journal.ListEntries(s.ctx, s.userID, s.bookID, domain.DateRange{}, 3, token)
		s.Require().NoError(err)
		pages++
		for _, e := range page.Entries {
			dates = append(dates, e.Date.Format(domain.DateLayout))
		}
		if page.NextToken == nil {
			break
		}
		token = page.NextToken
	}
	s.Equal(2, pages)
	s.Equal([]string{"2024-01-03", "2024-01-03", "2024-01-02", "2024-01-01"}, dates)

	bad := "not-a-token"
	_, err := s.svc.Journal.ListEntries(s.ctx, s.userID, s.bookID, domain.DateRange{}, 3, &bad)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *JournalServiceTestSuite) TestListEntries_DateWindow() {
	s.post(s.userID, s.bookID, "2024-01-01", debit(s.cash, "1"), credit(s.sales, "1"))
	s.post(s.userID, s.bookID, "2024-02-01", debit(s.cash, "2"), credit(s.sales, "2"))

	from := mustDate("2024-01-15")
	page, err := s.svc.Journal.ListEntries(s.ctx, s.userID, s.bookID, domain.DateRange{From: &from}, 0, nil)
	s.Require().NoError(err)
	s.Require().Len(page.Entries, 1)
	s.Equal("2024-02-01", page.Entries[0].Date.Format(domain.DateLayout))
	s.Nil(page.NextToken)
}

func (s *JournalServiceTestSuite) TestAttachments() {
	entry := s.post(s.userID, s.bookID, "2024-01-15", debit(s.cash, "10"), credit(s.sales, "10"))

	_, _, err := s.svc.Journal.GetAttachment(s.ctx, s.userID, entry.EntryID)
	s.ErrorIs(err, apperrors.ErrNotFound)

	attached, err := s.svc.Journal.AttachFile(s.ctx, s.userID, entry.EntryID, "Receipt.PDF", []byte("first"))
	s.Require().NoError(err)
	s.Require().NotNil(attached.Attachment)
	s.Contains(*attached.Attachment, ".pdf")

	_, err = s.svc.Journal.AttachFile(s.ctx, s.userID, entry.EntryID, "receipt.pdf", []byte("second"))
	s.Require().NoError(err)
	s.Equal(1, s.attachments.count())

	_, content, err := s.svc.Journal.GetAttachment(s.ctx, s.userID, entry.EntryID)
	s.Require().NoError(err)
	s.Equal([]byte("second"), content)

	bob, _ := s.signup("bob")
	_, err = s.svc.Journal.AttachFile(s.ctx, bob, entry.EntryID, "x.pdf", []byte("x"))
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.Equal(1, s.attachments.count())

	_, err = s.svc.Journal.AttachFile(s.ctx, s.userID, entry.EntryID, "empty.pdf", nil)
	s.ErrorIs(err, apperrors.ErrValidation)

	s.Require().NoError(s.svc.Journal.DeleteEntry(s.ctx, s.userID, entry.EntryID))
	s.Equal(0, s.attachments.count())
}
