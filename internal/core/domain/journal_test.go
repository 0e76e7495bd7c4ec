package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEntryStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from domain.EntryStatus
		to   domain.EntryStatus
		want bool
	}{
		{domain.Draft, domain.Submitted, true},
		{domain.Submitted, domain.Approved, true},
		{domain.Submitted, domain.Rejected, true},
		{domain.Draft, domain.Approved, false},
		{domain.Approved, domain.Rejected, false},
		{domain.Rejected, domain.Submitted, false},
		{domain.Submitted, domain.Draft, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestTotals_RoundsEachSum(t *testing.T) {
	lines := []domain.LineInput{
		{AccountID: 1, Debit: decimal.RequireFromString("33.333")},
		{AccountID: 1, Debit: decimal.RequireFromString("33.333")},
		{AccountID: 2, Credit: decimal.RequireFromString("66.67")},
	}
	debit, credit := domain.Totals(lines)
	assert.True(t, debit.Equal(decimal.RequireFromString("66.67")))
	assert.True(t, credit.Equal(decimal.RequireFromString("66.67")))
}

func TestValidateLine(t *testing.T) {
	hundred := decimal.NewFromInt(100)
	assert.NoError(t, domain.ValidateLine(0, domain.LineInput{AccountID: 1, Debit: hundred}))
	assert.Error(t, domain.ValidateLine(0, domain.LineInput{Debit: hundred}))
	assert.NoError(t, domain.ValidateLine(0, domain.LineInput{AccountID: 1}))
	assert.NoError(t, domain.ValidateLine(0, domain.LineInput{AccountID: 1, Debit: hundred, Credit: hundred}))
	assert.Error(t, domain.ValidateLine(0, domain.LineInput{AccountID: 1, Debit: hundred.Neg()}))
	assert.Error(t, domain.ValidateLine(0, domain.LineInput{AccountID: 1, Credit: hundred.Neg()}))
}

func TestDateRange_Contains(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	r := domain.DateRange{From: &from, To: &to}

	assert.True(t, r.Contains(from))
	assert.True(t, r.Contains(to))
	assert.False(t, r.Contains(to.AddDate(0, 0, 1)))
	assert.False(t, r.Contains(from.AddDate(0, 0, -1)))
	assert.True(t, domain.DateRange{}.Contains(from))
}
