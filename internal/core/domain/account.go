package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "Asset"
	Liability AccountType = "Liability"
	Equity    AccountType = "Equity"
	Income    AccountType = "Income"
	Revenue   AccountType = "Revenue" // synonym of Income
	Expense   AccountType = "Expense"
)

// AccountTypes lists every accepted account type.
var AccountTypes = []AccountType{Asset, Liability, Equity, Income, Revenue, Expense}

// IsValid reports whether t is a known account type.
func (t AccountType) IsValid() bool {
	for _, known := range AccountTypes {
		if t == known {
			return true
		}
	}
	return false
}

// IsDebitNormal reports whether the natural balance of t is debit minus credit.
func (t AccountType) IsDebitNormal() bool {
	return t == Asset || t == Expense
}

// IsIncome reports whether t contributes to income on the income statement.
func (t AccountType) IsIncome() bool {
	return t == Income || t == Revenue
}

// Account represents an entry in a book's chart of accounts.
type Account struct {
	AccountID   int64       `json:"accountID"`
	UserID      string      `json:"userID"` // owner
	BookID      int64       `json:"bookID"`
	Name        string      `json:"name"`
	AccountType AccountType `json:"accountType"`
	Code        string      `json:"code"` // unique within the book
	Category    string      `json:"category"`
	ParentID    *int64      `json:"parentID,omitempty"` // same book only
}

// AccountPatch lists the account fields an update may touch.
// Nil fields are left unchanged.
type AccountPatch struct {
	Name        *string
	AccountType *AccountType
	Code        *string
	Category    *string
	ParentID    *int64
	ClearParent bool
}

// IsEmpty reports whether the patch changes nothing.
func (p AccountPatch) IsEmpty() bool {
	return p.Name == nil && p.AccountType == nil && p.Code == nil &&
		p.Category == nil && p.ParentID == nil && !p.ClearParent
}

// Apply returns a copy of a with the patch applied.
func (p AccountPatch) Apply(a Account) Account {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.AccountType != nil {
		a.AccountType = *p.AccountType
	}
	if p.Code != nil {
		a.Code = *p.Code
	}
	if p.Category != nil {
		a.Category = *p.Category
	}
	if p.ClearParent {
		a.ParentID = nil
	} else if p.ParentID != nil {
		parent := *p.ParentID
		a.ParentID = &parent
	}
	return a
}
