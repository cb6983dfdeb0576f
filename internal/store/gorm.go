package store

import (
	"errors"

	"cashcard_system/internal/domain" // Importing domain models

	"gorm.io/gorm"        // GORM ORM library
	"gorm.io/gorm/clause" // Upsert clause for Save
)

// GormStore persists cash cards in a relational table through GORM.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps a GORM connection in a CashCardStore.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// FindByID looks a card up by id alone, regardless of owner.
func (s *GormStore) FindByID(id int64) (*domain.CashCard, error) {
	var card domain.CashCard
	if err := s.db.First(&card, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &card, nil
}

// FindByIDAndOwner looks a card up jointly by id and owning principal.
func (s *GormStore) FindByIDAndOwner(id int64, owner string) (*domain.CashCard, error) {
	var card domain.CashCard
	if err := s.db.Where("id = ? AND owner = ?", id, owner).First(&card).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &card, nil
}

// ExistsByID reports whether any card, whoever owns it, has the given id.
func (s *GormStore) ExistsByID(id int64) (bool, error) {
	var count int64
	err := s.db.Model(&domain.CashCard{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// ExistsByIDAndOwner reports whether the principal owns a card with the given id.
func (s *GormStore) ExistsByIDAndOwner(id int64, owner string) (bool, error) {
	var count int64
	err := s.db.Model(&domain.CashCard{}).Where("id = ? AND owner = ?", id, owner).Count(&count).Error
	return count > 0, err
}

// FindByOwner returns one ordered page of the principal's cards.
func (s *GormStore) FindByOwner(owner string, page Page) ([]domain.CashCard, error) {
	var cards []domain.CashCard
	err := s.db.Where("owner = ?", owner).
		Order(orderClause(page)).
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&cards).Error
	return cards, err
}

// Save inserts the card, assigning an id when absent, or overwrites the row
// that already carries its id.
func (s *GormStore) Save(card *domain.CashCard) error {
	return s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(card).Error
}

// DeleteByID removes the card with the given id.
func (s *GormStore) DeleteByID(id int64) error {
	return s.db.Delete(&domain.CashCard{}, id).Error
}

// orderClause maps a Page onto a SQL ORDER BY through the sort whitelist.
func orderClause(page Page) string {
	column, ok := sortColumns[page.Sort]
	if !ok {
		column = "amount"
	}
	if page.Desc {
		return column + " desc, id desc"
	}
	return column + ", id"
}
