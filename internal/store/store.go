package store

import (
	"errors"

	"cashcard_system/internal/domain" // Importing domain models
)

// ErrNotFound is returned when no card matches the lookup. A card owned by a
// different principal and a card that does not exist are indistinguishable.
var ErrNotFound = errors.New("cash card not found")

const (
	DefaultPageSize = 20  // Default number of cards per page
	MaxPageSize     = 100 // Upper bound on the page size a caller may request
)

// sortColumns whitelists the fields a caller may sort by.
var sortColumns = map[string]string{
	"id":     "id",
	"amount": "amount",
	"owner":  "owner",
}

// ValidSortField reports whether cards may be sorted by the given field.
func ValidSortField(field string) bool {
	_, ok := sortColumns[field]
	return ok
}

// Page describes one window of an ordered listing.
type Page struct {
	Number int    // 1-based page number
	Size   int    // Number of cards per page
	Sort   string // Sort field: id, amount or owner
	Desc   bool   // Descending order when true
}

// DefaultPage is the listing window used when the caller specifies nothing:
// first page, amount ascending.
func DefaultPage() Page {
	return Page{Number: 1, Size: DefaultPageSize, Sort: "amount"}
}

// Offset returns the number of cards preceding this page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// CashCardStore is the persistence contract for cash cards. The owner-scoped
// variants exist so handlers can pick the scoped or unscoped lookup explicitly
// based on whether a principal is present.
type CashCardStore interface {
	FindByID(id int64) (*domain.CashCard, error)
	FindByIDAndOwner(id int64, owner string) (*domain.CashCard, error)
	ExistsByID(id int64) (bool, error)
	ExistsByIDAndOwner(id int64, owner string) (bool, error)
	FindByOwner(owner string, page Page) ([]domain.CashCard, error)
	Save(card *domain.CashCard) error
	DeleteByID(id int64) error
}
