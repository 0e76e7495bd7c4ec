package handlers_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type JournalHandlerTestSuite struct {
	handlerSuite
}

func TestJournalHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(JournalHandlerTestSuite))
}

func (s *JournalHandlerTestSuite) SetupSuite() {
	decimal.MarshalJSONWithoutQuotes = true
}

func (s *JournalHandlerTestSuite) TearDownSuite() {
	decimal.MarshalJSONWithoutQuotes = false
}

func sampleEntry(id int64, status domain.EntryStatus) *domain.JournalEntry {
	return &domain.JournalEntry{
		EntryID:     id,
		UserID:      testUserID,
		BookID:      1,
		Date:        time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Description: "Cash sale",
		Status:      status,
		Lines: []domain.JournalLine{
			{LineID: 1, EntryID: id, AccountID: 10, AccountCode: "1000", Debit: decimal.NewFromInt(500), Credit: decimal.Zero},
			{LineID: 2, EntryID: id, AccountID: 20, AccountCode: "4000", Debit: decimal.Zero, Credit: decimal.NewFromInt(500)},
		},
	}
}

func cashSale() map[string]any {
	return map[string]any{
		"book_id":     1,
		"date":        "2024-03-15",
		"description": "Cash sale",
		"lines": []map[string]any{
			{"account_id": 10, "debit": 500},
			{"account_id": 20, "credit": "500.00"},
		},
	}
}

func (s *JournalHandlerTestSuite) TestPostEntry() {
	s.journal.On("PostEntry", mock.Anything, testUserID, mock.MatchedBy(func(e domain.NewEntry) bool {
		return e.BookID == 1 && e.Date == "2024-03-15" && len(e.Lines) == 2 &&
			e.Lines[0].Debit.Equal(decimal.NewFromInt(500)) && e.Lines[1].Credit.Equal(decimal.NewFromInt(500))
	})).Return(sampleEntry(1, domain.Draft), nil).Once()

	w := s.do(http.MethodPost, "/api/v1/journal", cashSale())

	s.Equal(http.StatusCreated, w.Code, w.Body.String())
	body := s.decode(w)
	s.Equal("2024-03-15", body["date"])
	s.Equal("Draft", body["status"])
	lines := body["lines"].([]any)
	s.Require().Len(lines, 2)
	s.Equal(float64(500), lines[0].(map[string]any)["debit"])
}

func (s *JournalHandlerTestSuite) TestPostEntryUnbalanced() {
	s.journal.On("PostEntry", mock.Anything, testUserID, mock.Anything).
		Return(nil, fmt.Errorf("debits 500.00 do not equal credits 400.00: %w", apperrors.ErrUnbalanced)).Once()

	s.assertError(s.do(http.MethodPost, "/api/v1/journal", cashSale()), http.StatusBadRequest, "unbalanced")
}

func (s *JournalHandlerTestSuite) TestPostEntryBadDate() {
	body := cashSale()
	body["date"] = "15/03/2024"
	s.assertError(s.do(http.MethodPost, "/api/v1/journal", body), http.StatusBadRequest, "invalid_argument")
}

func (s *JournalHandlerTestSuite) TestPostEntryUnknownAccount() {
	s.journal.On("PostEntry", mock.Anything, testUserID, mock.Anything).
		Return(nil, apperrors.NewNotFoundError("account")).Once()

	s.assertError(s.do(http.MethodPost, "/api/v1/journal", cashSale()), http.StatusNotFound, "not_found")
}

func (s *JournalHandlerTestSuite) TestServerErrorsAreHidden() {
	s.journal.On("GetEntry", mock.Anything, testUserID, int64(1)).
		Return(nil, fmt.Errorf("pq: connection reset")).Once()

	w := s.do(http.MethodGet, "/api/v1/journal/1", nil)
	s.assertError(w, http.StatusInternalServerError, "internal")
	s.NotContains(w.Body.String(), "connection reset")
}

func (s *JournalHandlerTestSuite) TestListEntriesPassesPaging() {
	next := "MjAyNC0wMy0xNXwx"
	s.journal.On("ListEntries", mock.Anything, testUserID, int64(1),
		mock.MatchedBy(func(w domain.DateRange) bool {
			return w.From != nil && w.To != nil && w.From.Format(domain.DateLayout) == "2024-01-01"
		}),
		25,
		mock.MatchedBy(func(token *string) bool { return token != nil && *token == next }),
	).Return(&domain.EntryPage{Entries: []domain.JournalEntry{*sampleEntry(3, domain.Draft)}}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/journal?book_id=1&start_date=2024-01-01&end_date=2024-12-31&limit=25&next_token="+next, nil)
	s.Equal(http.StatusOK, w.Code, w.Body.String())
	body := s.decode(w)
	s.Len(body["entries"], 1)
	s.NotContains(body, "next_token")
}

func (s *JournalHandlerTestSuite) TestListEntriesWithoutLimitUsesDefault() {
	s.journal.On("ListEntries", mock.Anything, testUserID, int64(1), domain.DateRange{}, 0, (*string)(nil)).
		Return(&domain.EntryPage{}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/journal?book_id=1", nil)
	s.Equal(http.StatusOK, w.Code, w.Body.String())
}

func (s *JournalHandlerTestSuite) TestListEntriesValidatesQuery() {
	s.assertError(s.do(http.MethodGet, "/api/v1/journal", nil), http.StatusBadRequest, "invalid_argument")
	s.assertError(s.do(http.MethodGet, "/api/v1/journal?book_id=1&limit=0", nil), http.StatusBadRequest, "invalid_argument")
	s.assertError(s.do(http.MethodGet, "/api/v1/journal?book_id=1&limit=501", nil), http.StatusBadRequest, "invalid_argument")
	s.assertError(s.do(http.MethodGet, "/api/v1/journal?book_id=1&limit=-3", nil), http.StatusBadRequest, "invalid_argument")
	s.journal.AssertNotCalled(s.T(), "ListEntries", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *JournalHandlerTestSuite) TestEditEntryReplacesLines() {
	s.journal.On("EditEntry", mock.Anything, testUserID, int64(4), mock.MatchedBy(func(p domain.EntryPatch) bool {
		return p.Date == nil && p.Description != nil && len(p.Lines) == 2
	})).Return(sampleEntry(4, domain.Draft), nil).Once()

	w := s.do(http.MethodPut, "/api/v1/journal/4", map[string]any{
		"description": "Corrected",
		"lines":       cashSale()["lines"],
	})
	s.Equal(http.StatusOK, w.Code, w.Body.String())
}

func (s *JournalHandlerTestSuite) TestStatusWorkflow() {
	s.journal.On("SubmitEntry", mock.Anything, testUserID, int64(2)).Return(sampleEntry(2, domain.Submitted), nil).Once()
	s.journal.On("ApproveEntry", mock.Anything, testUserID, int64(2)).Return(sampleEntry(2, domain.Approved), nil).Once()
	s.journal.On("RejectEntry", mock.Anything, testUserID, int64(2)).
		Return(nil, fmt.Errorf("entry is Approved: %w", apperrors.ErrInvalidState)).Once()

	w := s.do(http.MethodPost, "/api/v1/journal/2/submit", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Equal("Submitted", s.decode(w)["status"])

	w = s.do(http.MethodPost, "/api/v1/journal/2/approve", nil)
	s.Equal("Approved", s.decode(w)["status"])

	s.assertError(s.do(http.MethodPost, "/api/v1/journal/2/reject", nil), http.StatusConflict, "invalid_state")
}

func (s *JournalHandlerTestSuite) TestDeleteEntry() {
	s.journal.On("DeleteEntry", mock.Anything, testUserID, int64(6)).Return(nil).Once()
	s.Equal(http.StatusNoContent, s.do(http.MethodDelete, "/api/v1/journal/6", nil).Code)
}

func (s *JournalHandlerTestSuite) upload(path, filename string, content []byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	s.Require().NoError(err)
	_, err = part.Write(content)
	s.Require().NoError(err)
	s.Require().NoError(mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+s.token)
	return s.serve(req)
}

func (s *JournalHandlerTestSuite) TestUploadAttachment() {
	attached := sampleEntry(7, domain.Draft)
	name := "receipt-7.pdf"
	attached.Attachment = &name
	s.journal.On("AttachFile", mock.Anything, testUserID, int64(7), "receipt.pdf", []byte("%PDF-1.4")).
		Return(attached, nil).Once()

	w := s.upload("/api/v1/journal/7/attachment", "receipt.pdf", []byte("%PDF-1.4"))
	s.Equal(http.StatusOK, w.Code, w.Body.String())
	s.Equal(name, s.decode(w)["attachment"])
}

func (s *JournalHandlerTestSuite) TestUploadAttachmentTooLarge() {
	w := s.upload("/api/v1/journal/7/attachment", "big.bin", []byte(strings.Repeat("x", 17)))
	s.assertError(w, http.StatusRequestEntityTooLarge, "invalid_argument")
}

func (s *JournalHandlerTestSuite) TestUploadAttachmentMissingFile() {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/journal/7/attachment", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)
	s.assertError(s.serve(req), http.StatusBadRequest, "invalid_argument")
}

func (s *JournalHandlerTestSuite) TestDownloadAttachment() {
	s.journal.On("GetAttachment", mock.Anything, testUserID, int64(7)).Return("receipt.pdf", []byte("%PDF-1.4"), nil).Once()
	s.journal.On("GetAttachment", mock.Anything, testUserID, int64(8)).Return("", nil, apperrors.NewNotFoundError("attachment")).Once()

	w := s.do(http.MethodGet, "/api/v1/journal/7/attachment", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Equal("application/pdf", w.Header().Get("Content-Type"))
	s.Contains(w.Header().Get("Content-Disposition"), `filename="receipt.pdf"`)
	s.Equal("%PDF-1.4", w.Body.String())

	s.assertError(s.do(http.MethodGet, "/api/v1/journal/8/attachment", nil), http.StatusNotFound, "not_found")
}
