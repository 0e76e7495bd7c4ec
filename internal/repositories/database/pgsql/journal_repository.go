package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_ledger/internal/models"
	"github.com/SscSPs/bookkeeping_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

// PgxJournalRepository persists journal entries and their lines.
type PgxJournalRepository struct {
	BaseRepository
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const entryColumns = `entry_id, user_id, book_id, entry_date, description, status, attachment, created_at, last_updated_at`

func scanEntry(row pgx.Row) (domain.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(&m.EntryID, &m.UserID, &m.BookID, &m.EntryDate, &m.Description, &m.Status, &m.Attachment, &m.CreatedAt, &m.LastUpdatedAt)
	if err != nil {
		return domain.JournalEntry{}, err
	}
	return mapping.ToDomainJournalEntry(m), nil
}

func (r *PgxJournalRepository) findEntry(ctx context.Context, userID string, entryID int64, forUpdate bool) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1 AND user_id = $2`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	entry, err := scanEntry(r.q.QueryRow(ctx, query, entryID, userID))
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("journal entry %d", entryID))
	}
	lines, err := r.linesFor(ctx, []int64{entryID})
	if err != nil {
		return nil, err
	}
	entry.Lines = lines[entryID]
	return &entry, nil
}

// FindEntryByID retrieves an entry with its lines.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, userID string, entryID int64) (*domain.JournalEntry, error) {
	return r.findEntry(ctx, userID, entryID, false)
}

// FindEntryForUpdate retrieves an entry and locks its row until the transaction ends.
func (r *PgxJournalRepository) FindEntryForUpdate(ctx context.Context, userID string, entryID int64) (*domain.JournalEntry, error) {
	return r.findEntry(ctx, userID, entryID, true)
}

// linesFor loads the lines of the given entries, joined with account code and name.
func (r *PgxJournalRepository) linesFor(ctx context.Context, entryIDs []int64) (map[int64][]domain.JournalLine, error) {
	out := make(map[int64][]domain.JournalLine, len(entryIDs))
	if len(entryIDs) == 0 {
		return out, nil
	}
	query := `
		SELECT l.line_id, l.entry_id, l.account_id, l.debit, l.credit, a.code, a.name
		FROM journal_lines l
		JOIN accounts a ON a.account_id = l.account_id
		WHERE l.entry_id = ANY($1)
		ORDER BY l.line_id;`
	rows, err := r.q.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, translateError(err, "failed to query journal lines")
	}
	defer rows.Close()

	for rows.Next() {
		var m models.JournalLine
		if err := rows.Scan(&m.LineID, &m.EntryID, &m.AccountID, &m.Debit, &m.Credit, &m.AccountCode, &m.AccountName); err != nil {
			return nil, translateError(err, "failed to scan journal line row")
		}
		out[m.EntryID] = append(out[m.EntryID], mapping.ToDomainJournalLine(m))
	}
	return out, translateError(rows.Err(), "error iterating journal line rows")
}

// ListEntries retrieves entries of a book ordered by date DESC, entry_id ASC.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, userID string, bookID int64, filter domain.EntryFilter) ([]domain.JournalEntry, error) {
	var sb strings.Builder
	args := []any{userID, bookID}
	sb.WriteString(`SELECT ` + entryColumns + ` FROM journal_entries WHERE user_id = $1 AND book_id = $2`)

	if filter.From != nil {
		args = append(args, *filter.From)
		fmt.Fprintf(&sb, ` AND entry_date >= $%d`, len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		fmt.Fprintf(&sb, ` AND entry_date <= $%d`, len(args))
	}
	if filter.After != nil {
		args = append(args, filter.After.Date, filter.After.EntryID)
		fmt.Fprintf(&sb, ` AND (entry_date < $%d OR (entry_date = $%d AND entry_id > $%d))`, len(args)-1, len(args)-1, len(args))
	}
	sb.WriteString(` ORDER BY entry_date DESC, entry_id ASC`)
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		fmt.Fprintf(&sb, ` LIMIT $%d`, len(args))
	}

	rows, err := r.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, translateError(err, "failed to list journal entries")
	}
	defer rows.Close()

	entries := make([]domain.JournalEntry, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, translateError(err, "failed to scan journal entry row")
		}
		entries = append(entries, entry)
		ids = append(ids, entry.EntryID)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err, "error iterating journal entry rows")
	}
	rows.Close()

	lines, err := r.linesFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Lines = lines[entries[i].EntryID]
	}
	return entries, nil
}

// SaveEntry inserts the entry header, then its lines in one batch.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry *domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(*entry)
	query := `
		INSERT INTO journal_entries (user_id, book_id, entry_date, description, status, attachment)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING entry_id, created_at, last_updated_at;`
	err := r.q.QueryRow(ctx, query, m.UserID, m.BookID, m.EntryDate, m.Description, m.Status, m.Attachment).
		Scan(&entry.EntryID, &entry.CreatedAt, &entry.LastUpdatedAt)
	if err != nil {
		return translateError(err, "journal entry")
	}

	saved, err := r.insertLines(ctx, entry.EntryID, entry.Lines)
	if err != nil {
		return err
	}
	entry.Lines = saved
	return nil
}

func (r *PgxJournalRepository) insertLines(ctx context.Context, entryID int64, lines []domain.JournalLine) ([]domain.JournalLine, error) {
	batch := &pgx.Batch{}
	lineQuery := `INSERT INTO journal_lines (entry_id, account_id, debit, credit) VALUES ($1, $2, $3, $4) RETURNING line_id;`
	for _, l := range lines {
		batch.Queue(lineQuery, entryID, l.AccountID, l.Debit, l.Credit)
	}

	br := r.q.SendBatch(ctx, batch)
	saved := make([]domain.JournalLine, len(lines))
	for i, l := range lines {
		l.EntryID = entryID
		if err := br.QueryRow().Scan(&l.LineID); err != nil {
			br.Close()
			return nil, translateError(err, fmt.Sprintf("journal line %d (account %d)", i, l.AccountID))
		}
		saved[i] = l
	}
	if err := br.Close(); err != nil {
		return nil, translateError(err, "failed to close journal line batch")
	}
	return saved, nil
}

// UpdateEntryHeader overwrites the date, description and status of an entry.
func (r *PgxJournalRepository) UpdateEntryHeader(ctx context.Context, entry domain.JournalEntry) error {
	query := `
		UPDATE journal_entries
		SET entry_date = $1, description = $2, status = $3, last_updated_at = NOW()
		WHERE entry_id = $4;`
	tag, err := r.q.Exec(ctx, query, entry.Date, entry.Description, string(entry.Status), entry.EntryID)
	if err != nil {
		return translateError(err, fmt.Sprintf("journal entry %d", entry.EntryID))
	}
	return expectAffected(tag, fmt.Sprintf("journal entry %d", entry.EntryID))
}

// ReplaceLines deletes all lines of the entry and reinserts the new set.
func (r *PgxJournalRepository) ReplaceLines(ctx context.Context, entryID int64, lines []domain.JournalLine) ([]domain.JournalLine, error) {
	if _, err := r.q.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, entryID); err != nil {
		return nil, translateError(err, fmt.Sprintf("lines of journal entry %d", entryID))
	}
	return r.insertLines(ctx, entryID, lines)
}

// DeleteEntry removes an entry; journal_lines cascade.
func (r *PgxJournalRepository) DeleteEntry(ctx context.Context, userID string, entryID int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM journal_entries WHERE entry_id = $1 AND user_id = $2;`, entryID, userID)
	if err != nil {
		return translateError(err, fmt.Sprintf("journal entry %d", entryID))
	}
	return expectAffected(tag, fmt.Sprintf("journal entry %d", entryID))
}

func (r *PgxJournalRepository) SetAttachment(ctx context.Context, entryID int64, attachment *string) error {
	query := `UPDATE journal_entries SET attachment = $1, last_updated_at = NOW() WHERE entry_id = $2;`
	tag, err := r.q.Exec(ctx, query, mapping.ToNullStringPtr(attachment), entryID)
	if err != nil {
		return translateError(err, fmt.Sprintf("journal entry %d", entryID))
	}
	return expectAffected(tag, fmt.Sprintf("journal entry %d", entryID))
}
