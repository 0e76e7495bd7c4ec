package domain_test

import (
	"testing"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func int64Ptr(v int64) *int64 { return &v }

func buildArena() *domain.AccountArena {
	// 1 Assets
	// ├── 2 Current Assets
	// │   └── 4 Cash
	// └── 3 Fixed Assets
	return domain.NewAccountArena([]domain.Account{
		{AccountID: 1, Name: "Assets"},
		{AccountID: 2, Name: "Current Assets", ParentID: int64Ptr(1)},
		{AccountID: 3, Name: "Fixed Assets", ParentID: int64Ptr(1)},
		{AccountID: 4, Name: "Cash", ParentID: int64Ptr(2)},
	})
}

func TestAccountArena_ChildrenAndAncestors(t *testing.T) {
	arena := buildArena()

	assert.Equal(t, []int64{2, 3}, arena.Children(1))
	assert.Empty(t, arena.Children(4))
	assert.Equal(t, []int64{2, 1}, arena.Ancestors(4))
	assert.Empty(t, arena.Ancestors(1))

	acc, ok := arena.Get(4)
	assert.True(t, ok)
	assert.Equal(t, "Cash", acc.Name)
	_, ok = arena.Get(99)
	assert.False(t, ok)
}

func TestAccountArena_WouldCycle(t *testing.T) {
	arena := buildArena()

	tests := []struct {
		name      string
		accountID int64
		parentID  int64
		want      bool
	}{
		{"self parent", 2, 2, true},
		{"parent under own descendant", 1, 4, true},
		{"direct child as parent", 2, 4, true},
		{"sibling subtree", 3, 4, false},
		{"move leaf to root", 4, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, arena.WouldCycle(tt.accountID, tt.parentID))
		})
	}
}

func TestAccountArena_AncestorsStopsOnCorruptCycle(t *testing.T) {
	arena := domain.NewAccountArena([]domain.Account{
		{AccountID: 1, ParentID: int64Ptr(2)},
		{AccountID: 2, ParentID: int64Ptr(1)},
	})
	assert.Equal(t, []int64{2}, arena.Ancestors(1))
}

func TestAccountPatch_Apply(t *testing.T) {
	name := "Petty Cash"
	orig := domain.Account{AccountID: 4, Name: "Cash", Code: "1010", Category: "Current Asset", ParentID: int64Ptr(2)}

	patched := domain.AccountPatch{Name: &name}.Apply(orig)
	assert.Equal(t, "Petty Cash", patched.Name)
	assert.Equal(t, "1010", patched.Code)
	assert.Equal(t, int64(2), *patched.ParentID)
	assert.Equal(t, "Cash", orig.Name)

	cleared := domain.AccountPatch{ClearParent: true}.Apply(orig)
	assert.Nil(t, cleared.ParentID)

	assert.True(t, domain.AccountPatch{}.IsEmpty())
	assert.False(t, domain.AccountPatch{ClearParent: true}.IsEmpty())
}

func TestAccountType(t *testing.T) {
	assert.True(t, domain.Asset.IsDebitNormal())
	assert.True(t, domain.Expense.IsDebitNormal())
	assert.False(t, domain.Revenue.IsDebitNormal())
	assert.True(t, domain.Revenue.IsIncome())
	assert.True(t, domain.Income.IsIncome())
	assert.False(t, domain.AccountType("Bank").IsValid())
}
