package dto

import (
	"testing"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateRangeParams(t *testing.T) {
	tests := []struct {
		name      string
		params    DateRangeParams
		wantFrom  string
		wantTo    string
		wantError bool
	}{
		{name: "open window", params: DateRangeParams{}},
		{name: "both bounds", params: DateRangeParams{StartDate: "2024-01-01", EndDate: "2024-01-31"}, wantFrom: "2024-01-01", wantTo: "2024-01-31"},
		{name: "same day", params: DateRangeParams{StartDate: "2024-01-01", EndDate: "2024-01-01"}, wantFrom: "2024-01-01", wantTo: "2024-01-01"},
		{name: "end before start", params: DateRangeParams{StartDate: "2024-02-01", EndDate: "2024-01-31"}, wantError: true},
		{name: "bad format", params: DateRangeParams{StartDate: "01/02/2024"}, wantError: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window, err := tt.params.DateRange()
			if tt.wantError {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
				return
			}
			require.NoError(t, err)
			if tt.wantFrom == "" {
				assert.Nil(t, window.From)
			} else {
				require.NotNil(t, window.From)
				assert.Equal(t, tt.wantFrom, window.From.Format("2006-01-02"))
			}
			if tt.wantTo == "" {
				assert.Nil(t, window.To)
			} else {
				require.NotNil(t, window.To)
				assert.Equal(t, tt.wantTo, window.To.Format("2006-01-02"))
			}
		})
	}
}
