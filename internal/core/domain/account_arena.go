package domain

import "sort"

// AccountArena indexes the accounts of one book by id. Parent links are
// plain ids into the arena rather than pointers.
type AccountArena struct {
	byID     map[int64]Account
	children map[int64][]int64
}

// NewAccountArena builds an arena from the accounts of a single book.
func NewAccountArena(accounts []Account) *AccountArena {
	arena := &AccountArena{
		byID:     make(map[int64]Account, len(accounts)),
		children: make(map[int64][]int64),
	}
	for _, acc := range accounts {
		arena.byID[acc.AccountID] = acc
	}
	for _, acc := range accounts {
		if acc.ParentID != nil {
			arena.children[*acc.ParentID] = append(arena.children[*acc.ParentID], acc.AccountID)
		}
	}
	for id := range arena.children {
		sort.Slice(arena.children[id], func(i, j int) bool { return arena.children[id][i] < arena.children[id][j] })
	}
	return arena
}

// Get returns the account with the given id.
func (a *AccountArena) Get(id int64) (Account, bool) {
	acc, ok := a.byID[id]
	return acc, ok
}

// Children returns the direct children of id in ascending id order.
func (a *AccountArena) Children(id int64) []int64 {
	return a.children[id]
}

// Ancestors walks parent links upwards from id, nearest first.
// The walk stops if a cycle is encountered.
func (a *AccountArena) Ancestors(id int64) []int64 {
	var out []int64
	seen := map[int64]bool{id: true}
	acc, ok := a.byID[id]
	for ok && acc.ParentID != nil {
		pid := *acc.ParentID
		if seen[pid] {
			break
		}
		seen[pid] = true
		out = append(out, pid)
		acc, ok = a.byID[pid]
	}
	return out
}

// WouldCycle reports whether making parentID the parent of accountID
// would create a cycle, including the self-parent case.
func (a *AccountArena) WouldCycle(accountID, parentID int64) bool {
	if accountID == parentID {
		return true
	}
	for _, ancestor := range a.Ancestors(parentID) {
		if ancestor == accountID {
			return true
		}
	}
	return false
}
