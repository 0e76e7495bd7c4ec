package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	"github.com/SscSPs/bookkeeping_ledger/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

// --- books ---

type bookRepository struct{ u *unitOfWork }

func (r *bookRepository) FindBookByID(_ context.Context, userID string, bookID int64) (*domain.Book, error) {
	book, ok := r.u.st.books[bookID]
	if !ok || book.UserID != userID {
		return nil, fmt.Errorf("book %d: %w", bookID, apperrors.ErrNotFound)
	}
	return &book, nil
}

func (r *bookRepository) ListBooks(_ context.Context, userID string) ([]domain.Book, error) {
	books := make([]domain.Book, 0)
	for _, b := range r.u.st.books {
		if b.UserID == userID {
			books = append(books, b)
		}
	}
	sort.Slice(books, func(i, j int) bool { return books[i].BookID < books[j].BookID })
	return books, nil
}

func (r *bookRepository) BookHasContents(_ context.Context, bookID int64) (bool, error) {
	for _, a := range r.u.st.accounts {
		if a.BookID == bookID {
			return true, nil
		}
	}
	for _, e := range r.u.st.entries {
		if e.BookID == bookID {
			return true, nil
		}
	}
	return false, nil
}

func (r *bookRepository) nameTaken(userID, name string, except int64) bool {
	for _, b := range r.u.st.books {
		if b.UserID == userID && b.Name == name && b.BookID != except {
			return true
		}
	}
	return false
}

func (r *bookRepository) SaveBook(_ context.Context, book *domain.Book) error {
	if err := r.u.writable(); err != nil {
		return err
	}
	if r.nameTaken(book.UserID, book.Name, 0) {
		return fmt.Errorf("book name %q: %w", book.Name, apperrors.ErrDuplicate)
	}
	r.u.st.nextBookID++
	book.BookID = r.u.st.nextBookID
	book.CreatedAt = time.Now().UTC()
	r.u.st.books[book.BookID] = *book
	return nil
}

func (r *bookRepository) RenameBook(ctx context.Context, userID string, bookID int64, name string) error {
	if err := r.u.writable(); err != nil {
		return err
	}
	book, err := r.FindBookByID(ctx, userID, bookID)
	if err != nil {
		return err
	}
	if r.nameTaken(userID, name, bookID) {
		return fmt.Errorf("book name %q: %w", name, apperrors.ErrDuplicate)
	}
	book.Name = name
	r.u.st.books[bookID] = *book
	return nil
}

func (r *bookRepository) DeleteBook(ctx context.Context, userID string, bookID int64) error {
	if err := r.u.writable(); err != nil {
		return err
	}
	if _, err := r.FindBookByID(ctx, userID, bookID); err != nil {
		return err
	}
	if used, _ := r.BookHasContents(ctx, bookID); used {
		return fmt.Errorf("book %d still has accounts or entries: %w", bookID, apperrors.ErrConflict)
	}
	delete(r.u.st.books, bookID)
	return nil
}

// --- accounts ---

type accountRepository struct{ u *unitOfWork }

func (r *accountRepository) FindAccountByID(_ context.Context, userID string, accountID int64) (*domain.Account, error) {
	acc, ok := r.u.st.accounts[accountID]
	if !ok || acc.UserID != userID {
		return nil, fmt.Errorf("account %d: %w", accountID, apperrors.ErrNotFound)
	}
	return &acc, nil
}

func (r *accountRepository) FindAccountsByIDs(_ context.Context, userID string, bookID int64, accountIDs []int64) (map[int64]domain.Account, error) {
	found := make(map[int64]domain.Account, len(accountIDs))
	for _, id := range accountIDs {
		acc, ok := r.u.st.accounts[id]
		if ok && acc.UserID == userID && acc.BookID == bookID {
			found[id] = acc
		}
	}
	return found, nil
}

func (r *accountRepository) ListAccounts(_ context.Context, userID string, bookID int64) ([]domain.Account, error) {
	accounts := make([]domain.Account, 0)
	for _, a := range r.u.st.accounts {
		if a.UserID == userID && a.BookID == bookID {
			accounts = append(accounts, a)
		}
	}
	sortAccounts(accounts)
	return accounts, nil
}

func (r *accountRepository) AccountHasLines(_ context.Context, accountID int64) (bool, error) {
	for _, l := range r.u.st.lines {
		if l.AccountID == accountID {
			return true, nil
		}
	}
	return false, nil
}

func (r *accountRepository) codeTaken(bookID int64, code string, except int64) bool {
	for _, a := range r.u.st.accounts {
		if a.BookID == bookID && a.Code == code && a.AccountID != except {
			return true
		}
	}
	return false
}

func (r *accountRepository) checkParent(acc domain.Account) error {
	if acc.ParentID == nil {
		return nil
	}
	parent, ok := r.u.st.accounts[*acc.ParentID]
	if !ok || parent.BookID != acc.BookID {
		return fmt.Errorf("parent account %d: %w", *acc.ParentID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *accountRepository) SaveAccount(_ context.Context, account *domain.Account) error {
	if err := r.u.writable(); err != nil {
		return err
	}
	if _, ok := r.u.st.books[account.BookID]; !ok {
		return fmt.Errorf("book %d: %w", account.BookID, apperrors.ErrNotFound)
	}
	if err := r.checkParent(*account); err != nil {
		return err
	}
	if r.codeTaken(account.BookID, account.Code, 0) {
		return fmt.Errorf("account code %q: %w", account.Code, apperrors.ErrDuplicate)
	}
	r.u.st.nextAccountID++
	account.AccountID = r.u.st.nextAccountID
	r.u.st.accounts[account.AccountID] = *account
	return nil
}

func (r *accountRepository) UpdateAccount(_ context.Context, account domain.Account) error {
	if err := r.u.writable(); err != nil {
		return err
	}
	existing, ok := r.u.st.accounts[account.AccountID]
	if !ok || existing.UserID != account.UserID {
		return fmt.Errorf("account %d: %w", account.AccountID, apperrors.ErrNotFound)
	}
	if err := r.checkParent(account); err != nil {
		return err
	}
	if r.codeTaken(existing.BookID, account.Code, account.AccountID) {
		return fmt.Errorf("account code %q: %w", account.Code, apperrors.ErrDuplicate)
	}
	account.BookID = existing.BookID
	r.u.st.accounts[account.AccountID] = account
	return nil
}

func (r *accountRepository) DeleteAccount(ctx context.Context, userID string, accountID int64) error {
	if err := r.u.writable(); err != nil {
		return err
	}
	if _, err := r.FindAccountByID(ctx, userID, accountID); err != nil {
		return err
	}
	if used, _ := r.AccountHasLines(ctx, accountID); used {
		return fmt.Errorf("account %d is referenced by journal lines: %w", accountID, apperrors.ErrConflict)
	}
	for _, a := range r.u.st.accounts {
		if a.ParentID != nil && *a.ParentID == accountID {
			return fmt.Errorf("account %d has child accounts: %w", accountID, apperrors.ErrConflict)
		}
	}
	delete(r.u.st.accounts, accountID)
	return nil
}

func sortAccounts(accounts []domain.Account) {
	sort.Slice(accounts, func(i, j int) bool {
		if accounts[i].Code != accounts[j].Code {
			return accounts[i].Code < accounts[j].Code
		}
		return accounts[i].AccountID < accounts[j].AccountID
	})
}

// --- journal ---

type journalRepository struct{ u *unitOfWork }

func (r *journalRepository) linesOf(entryID int64) []domain.JournalLine {
	lines := make([]domain.JournalLine, 0)
	for _, l := range r.u.st.lines {
		if l.EntryID == entryID {
			if acc, ok := r.u.st.accounts[l.AccountID]; ok {
				l.AccountCode = acc.Code
				l.AccountName = acc.Name
			}
			lines = append(lines, l)
		}
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].LineID < lines[j].LineID })
	return lines
}

func (r *journalRepository) FindEntryByID(_ context.Context, userID string, entryID int64) (*domain.JournalEntry, error) {
	entry, ok := r.u.st.entries[entryID]
	if !ok || entry.UserID != userID {
		return nil, fmt.Errorf("journal entry %d: %w", entryID, apperrors.ErrNotFound)
	}
	entry.Lines = r.linesOf(entryID)
	return &entry, nil
}

// FindEntryForUpdate needs no extra locking: writers already hold the store lock.
func (r *journalRepository) FindEntryForUpdate(ctx context.Context, userID string, entryID int64) (*domain.JournalEntry, error) {
	return r.FindEntryByID(ctx, userID, entryID)
}

func (r *journalRepository) ListEntries(_ context.Context, userID string, bookID int64, filter domain.EntryFilter) ([]domain.JournalEntry, error) {
	entries := make([]domain.JournalEntry, 0)
	for _, e := range r.u.st.entries {
		if e.UserID != userID || e.BookID != bookID || !filter.Contains(e.Date) {
			continue
		}
		if filter.After != nil && !pagination.After(filter.After.Date, filter.After.EntryID, e.Date, e.EntryID) {
			continue
		}
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.After(entries[j].Date)
		}
		return entries[i].EntryID < entries[j].EntryID
	})
	if filter.Limit > 0 && len(entries) > filter.Limit {
		entries = entries[:filter.Limit]
	}
	for i := range entries {
		entries[i].Lines = r.linesOf(entries[i].EntryID)
	}
	return entries, nil
}

func (r *journalRepository) insertLines(entryID int64, lines []domain.JournalLine) ([]domain.JournalLine, error) {
	saved := make([]domain.JournalLine, 0, len(lines))
	for _, l := range lines {
		if _, ok := r.u.st.accounts[l.AccountID]; !ok {
			return nil, fmt.Errorf("account %d: %w", l.AccountID, apperrors.ErrNotFound)
		}
		r.u.st.nextLineID++
		l.LineID = r.u.st.nextLineID
		l.EntryID = entryID
		l.AccountCode, l.AccountName = "", ""
		r.u.st.lines[l.LineID] = l
		saved = append(saved, l)
	}
	return saved, nil
}

func (r *journalRepository) SaveEntry(_ context.Context, entry *domain.JournalEntry) error {
	if err := r.u.writable(); err != nil {
		return err
	}
	if _, ok := r.u.st.books[entry.BookID]; !ok {
		return fmt.Errorf("book %d: %w", entry.BookID, apperrors.ErrNotFound)
	}
	r.u.st.nextEntryID++
	entry.EntryID = r.u.st.nextEntryID
	now := time.Now().UTC()
	entry.CreatedAt, entry.LastUpdatedAt = now, now

	saved, err := r.insertLines(entry.EntryID, entry.Lines)
	if err != nil {
		return err
	}
	header := *entry
	header.Lines = nil
	r.u.st.entries[entry.EntryID] = header
	entry.Lines = saved
	return nil
}

func (r *journalRepository) UpdateEntryHeader(_ context.Context, entry domain.JournalEntry) error {
	if err := r.u.writable(); err != nil {
		return err
	}
	existing, ok := r.u.st.entries[entry.EntryID]
	if !ok {
		return fmt.Errorf("journal entry %d: %w", entry.EntryID, apperrors.ErrNotFound)
	}
	existing.Date = entry.Date
	existing.Description = entry.Description
	existing.Status = entry.Status
	existing.LastUpdatedAt = time.Now().UTC()
	r.u.st.entries[entry.EntryID] = existing
	return nil
}

func (r *journalRepository) ReplaceLines(_ context.Context, entryID int64, lines []domain.JournalLine) ([]domain.JournalLine, error) {
	if err := r.u.writable(); err != nil {
		return nil, err
	}
	for id, l := range r.u.st.lines {
		if l.EntryID == entryID {
			delete(r.u.st.lines, id)
		}
	}
	return r.insertLines(entryID, lines)
}

func (r *journalRepository) DeleteEntry(ctx context.Context, userID string, entryID int64) error {
	if err := r.u.writable(); err != nil {
		return err
	}
	if _, err := r.FindEntryByID(ctx, userID, entryID); err != nil {
		return err
	}
	for id, l := range r.u.st.lines {
		if l.EntryID == entryID {
			delete(r.u.st.lines, id)
		}
	}
	delete(r.u.st.entries, entryID)
	return nil
}

func (r *journalRepository) SetAttachment(_ context.Context, entryID int64, attachment *string) error {
	if err := r.u.writable(); err != nil {
		return err
	}
	existing, ok := r.u.st.entries[entryID]
	if !ok {
		return fmt.Errorf("journal entry %d: %w", entryID, apperrors.ErrNotFound)
	}
	existing.Attachment = attachment
	r.u.st.entries[entryID] = existing
	return nil
}

// --- reporting ---

type reportingRepository struct{ u *unitOfWork }

func (r *reportingRepository) AccountTotals(_ context.Context, userID string, bookID int64, window domain.DateRange) (map[int64]domain.AccountTotals, error) {
	totals := make(map[int64]domain.AccountTotals)
	for _, l := range r.u.st.lines {
		entry, ok := r.u.st.entries[l.EntryID]
		if !ok || entry.UserID != userID || entry.BookID != bookID || !window.Contains(entry.Date) {
			continue
		}
		t, ok := totals[l.AccountID]
		if !ok {
			t = domain.AccountTotals{AccountID: l.AccountID, Debit: decimal.Zero, Credit: decimal.Zero}
		}
		t.Debit = t.Debit.Add(l.Debit)
		t.Credit = t.Credit.Add(l.Credit)
		totals[l.AccountID] = t
	}
	return totals, nil
}

func (r *reportingRepository) LedgerLines(_ context.Context, userID string, accountID int64, window domain.DateRange) ([]domain.LedgerLine, error) {
	out := make([]domain.LedgerLine, 0)
	for _, l := range r.u.st.lines {
		if l.AccountID != accountID {
			continue
		}
		entry, ok := r.u.st.entries[l.EntryID]
		if !ok || entry.UserID != userID || !window.Contains(entry.Date) {
			continue
		}
		out = append(out, domain.LedgerLine{
			LineID:      l.LineID,
			EntryID:     entry.EntryID,
			Date:        entry.Date,
			Description: entry.Description,
			Debit:       l.Debit,
			Credit:      l.Credit,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LineID < out[j].LineID })
	return out, nil
}

// --- users ---

type userRepository struct{ u *unitOfWork }

func (r *userRepository) FindUserByID(_ context.Context, userID string) (*domain.User, error) {
	user, ok := r.u.st.users[userID]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
	}
	return &user, nil
}

func (r *userRepository) FindUserByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.u.st.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user %q: %w", username, apperrors.ErrNotFound)
}

func (r *userRepository) FindUserByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.u.st.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user with email %q: %w", email, apperrors.ErrNotFound)
}

func (r *userRepository) SaveUser(_ context.Context, user domain.User) error {
	if err := r.u.writable(); err != nil {
		return err
	}
	for _, u := range r.u.st.users {
		if u.Username == user.Username || u.Email == user.Email {
			return fmt.Errorf("username or email: %w", apperrors.ErrDuplicate)
		}
	}
	now := time.Now().UTC()
	user.CreatedAt, user.LastUpdatedAt = now, now
	r.u.st.users[user.UserID] = user
	return nil
}

func (r *userRepository) SetGoogleSubject(_ context.Context, userID, subject string) error {
	if err := r.u.writable(); err != nil {
		return err
	}
	user, ok := r.u.st.users[userID]
	if !ok {
		return fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
	}
	user.GoogleSubject = subject
	r.u.st.users[userID] = user
	return nil
}
