package mapping

import (
	"testing"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestAccountMapping_ParentRoundTrip(t *testing.T) {
	parent := int64(3)
	withParent := domain.Account{AccountID: 9, BookID: 1, Name: "Cash", AccountType: domain.Asset, Code: "1010", ParentID: &parent}

	model := ToModelAccount(withParent)
	assert.True(t, model.ParentID.Valid)
	assert.Equal(t, int64(3), model.ParentID.Int64)
	assert.Equal(t, "Asset", model.AccountType)
	assert.Equal(t, withParent, ToDomainAccount(model))

	root := ToModelAccount(domain.Account{AccountID: 1})
	assert.False(t, root.ParentID.Valid)
	assert.Nil(t, ToDomainAccount(root).ParentID)
}

func TestNullStringHelpers(t *testing.T) {
	assert.False(t, ToNullString("").Valid)
	assert.True(t, ToNullString("x").Valid)
	assert.Nil(t, FromNullStringPtr(ToNullStringPtr(nil)))
	name := "receipt.pdf"
	assert.Equal(t, "receipt.pdf", *FromNullStringPtr(ToNullStringPtr(&name)))
}
