package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
)

// PgxReportingRepository runs the aggregate queries behind the reports.
type PgxReportingRepository struct {
	BaseRepository
}

var _ portsrepo.ReportingRepositoryFacade = (*PgxReportingRepository)(nil)

// dateWindow appends entry_date bounds for the optional window.
func dateWindow(sb *strings.Builder, args []any, window domain.DateRange, column string) []any {
	if window.From != nil {
		args = append(args, *window.From)
		fmt.Fprintf(sb, " AND %s >= $%d", column, len(args))
	}
	if window.To != nil {
		args = append(args, *window.To)
		fmt.Fprintf(sb, " AND %s <= $%d", column, len(args))
	}
	return args
}

// AccountTotals sums debits and credits per account of a book.
func (r *PgxReportingRepository) AccountTotals(ctx context.Context, userID string, bookID int64, window domain.DateRange) (map[int64]domain.AccountTotals, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT l.account_id, COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE e.user_id = $1 AND e.book_id = $2`)
	args := dateWindow(&sb, []any{userID, bookID}, window, "e.entry_date")
	sb.WriteString(` GROUP BY l.account_id;`)

	rows, err := r.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, translateError(err, "failed to aggregate account totals")
	}
	defer rows.Close()

	totals := make(map[int64]domain.AccountTotals)
	for rows.Next() {
		var t domain.AccountTotals
		if err := rows.Scan(&t.AccountID, &t.Debit, &t.Credit); err != nil {
			return nil, translateError(err, "failed to scan account totals row")
		}
		totals[t.AccountID] = t
	}
	return totals, translateError(rows.Err(), "error iterating account totals rows")
}

// LedgerLines lists the lines of one account ordered by line id.
func (r *PgxReportingRepository) LedgerLines(ctx context.Context, userID string, accountID int64, window domain.DateRange) ([]domain.LedgerLine, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT l.line_id, e.entry_id, e.entry_date, e.description, l.debit, l.credit
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE l.account_id = $1 AND e.user_id = $2`)
	args := dateWindow(&sb, []any{accountID, userID}, window, "e.entry_date")
	sb.WriteString(` ORDER BY l.line_id;`)

	rows, err := r.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("failed to query ledger of account %d", accountID))
	}
	defer rows.Close()

	lines := make([]domain.LedgerLine, 0)
	for rows.Next() {
		var l domain.LedgerLine
		if err := rows.Scan(&l.LineID, &l.EntryID, &l.Date, &l.Description, &l.Debit, &l.Credit); err != nil {
			return nil, translateError(err, "failed to scan ledger row")
		}
		lines = append(lines, l)
	}
	return lines, translateError(rows.Err(), "error iterating ledger rows")
}
