// Package chart loads a chart of accounts from YAML and seeds it into a book.
package chart

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
	"gopkg.in/yaml.v3"
)

// Chart is a book name and the accounts to create in it. Parents are
// referenced by code and must be listed before their children.
type Chart struct {
	Book     string    `yaml:"book"`
	Accounts []Account `yaml:"accounts"`
}

// Account is one chart entry.
type Account struct {
	Code     string             `yaml:"code"`
	Name     string             `yaml:"name"`
	Type     domain.AccountType `yaml:"type"`
	Category string             `yaml:"category"`
	Parent   string             `yaml:"parent,omitempty"`
}

// Result summarizes a Seed run.
type Result struct {
	BookID  int64
	Created int
	Skipped int
}

// Load decodes and checks a chart. Unknown keys are rejected.
func Load(r io.Reader) (*Chart, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var c Chart
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("chart is empty: %w", apperrors.ErrValidation)
		}
		return nil, fmt.Errorf("failed to parse chart: %w: %w", apperrors.ErrValidation, err)
	}
	if c.Book == "" {
		c.Book = domain.DefaultBookName
	}

	seen := make(map[string]bool, len(c.Accounts))
	for i, a := range c.Accounts {
		switch {
		case a.Code == "":
			return nil, fmt.Errorf("account %d: code is required: %w", i, apperrors.ErrValidation)
		case a.Name == "":
			return nil, fmt.Errorf("account %s: name is required: %w", a.Code, apperrors.ErrValidation)
		case !a.Type.IsValid():
			return nil, fmt.Errorf("account %s: unknown type %q: %w", a.Code, a.Type, apperrors.ErrValidation)
		case seen[a.Code]:
			return nil, fmt.Errorf("account %s: duplicate code: %w", a.Code, apperrors.ErrValidation)
		case a.Parent != "" && !seen[a.Parent]:
			return nil, fmt.Errorf("account %s: parent %s must be listed first: %w", a.Code, a.Parent, apperrors.ErrValidation)
		}
		seen[a.Code] = true
	}
	return &c, nil
}

// Seed creates the chart's book if the user has none by that name, then every
// account whose code is not already in it. Existing accounts are left as they are.
func Seed(ctx context.Context, books portssvc.BookSvcFacade, accounts portssvc.AccountSvcFacade, userID string, c *Chart) (*Result, error) {
	bookID, err := resolveBook(ctx, books, userID, c.Book)
	if err != nil {
		return nil, err
	}

	existing, err := accounts.ListAccounts(ctx, userID, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	byCode := make(map[string]int64, len(existing)+len(c.Accounts))
	for _, a := range existing {
		byCode[a.Code] = a.AccountID
	}

	res := &Result{BookID: bookID}
	for _, a := range c.Accounts {
		if _, ok := byCode[a.Code]; ok {
			res.Skipped++
			continue
		}
		acc := domain.Account{
			BookID:      bookID,
			Name:        a.Name,
			AccountType: a.Type,
			Code:        a.Code,
			Category:    a.Category,
		}
		if a.Parent != "" {
			parentID := byCode[a.Parent]
			acc.ParentID = &parentID
		}
		created, err := accounts.CreateAccount(ctx, userID, acc)
		if err != nil {
			return res, fmt.Errorf("failed to create account %s: %w", a.Code, err)
		}
		byCode[a.Code] = created.AccountID
		res.Created++
		slog.Debug("Seeded account", slog.String("code", a.Code), slog.Int64("account_id", created.AccountID))
	}
	return res, nil
}

func resolveBook(ctx context.Context, books portssvc.BookSvcFacade, userID, name string) (int64, error) {
	list, err := books.ListBooks(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to list books: %w", err)
	}
	for _, b := range list {
		if b.Name == name {
			return b.BookID, nil
		}
	}
	book, err := books.CreateBook(ctx, userID, name)
	if err != nil {
		return 0, fmt.Errorf("failed to create book %q: %w", name, err)
	}
	return book.BookID, nil
}
