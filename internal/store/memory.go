package store

import (
	"sort"
	"sync"

	"cashcard_system/internal/domain" // Importing domain models
)

// MemoryStore keeps cash cards in process memory. It backs the test suite and
// local runs that have no database at hand.
type MemoryStore struct {
	mu     sync.RWMutex
	cards  map[int64]domain.CashCard
	nextID int64
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{cards: make(map[int64]domain.CashCard)}
}

func (s *MemoryStore) FindByID(id int64) (*domain.CashCard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	card, ok := s.cards[id]
	if !ok {
		return nil, ErrNotFound
	}
	card = card.Clone()
	return &card, nil
}

func (s *MemoryStore) FindByIDAndOwner(id int64, owner string) (*domain.CashCard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	card, ok := s.cards[id]
	if !ok || card.Owner == nil || *card.Owner != owner {
		return nil, ErrNotFound
	}
	card = card.Clone()
	return &card, nil
}

func (s *MemoryStore) ExistsByID(id int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.cards[id]
	return ok, nil
}

func (s *MemoryStore) ExistsByIDAndOwner(id int64, owner string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	card, ok := s.cards[id]
	return ok && card.Owner != nil && *card.Owner == owner, nil
}

func (s *MemoryStore) FindByOwner(owner string, page Page) ([]domain.CashCard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var cards []domain.CashCard
	for _, card := range s.cards {
		if card.Owner != nil && *card.Owner == owner {
			cards = append(cards, card.Clone())
		}
	}
	sortCards(cards, page)

	start := page.Offset()
	if start >= len(cards) {
		return nil, nil
	}
	end := start + page.Size
	if end > len(cards) {
		end = len(cards)
	}
	return cards[start:end], nil
}

func (s *MemoryStore) Save(card *domain.CashCard) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if card.ID == nil {
		s.nextID++
		id := s.nextID
		card.ID = &id
	} else if *card.ID > s.nextID {
		// Keep the sequence ahead of client-supplied ids.
		s.nextID = *card.ID
	}
	s.cards[*card.ID] = card.Clone()
	return nil
}

func (s *MemoryStore) DeleteByID(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cards, id)
	return nil
}

// sortCards orders cards by the requested field, id as tie-breaker.
func sortCards(cards []domain.CashCard, page Page) {
	sort.Slice(cards, func(i, j int) bool {
		a, b := cards[i], cards[j]
		if page.Desc {
			a, b = b, a
		}
		switch page.Sort {
		case "id":
			return *a.ID < *b.ID
		case "owner":
			if *a.Owner != *b.Owner {
				return *a.Owner < *b.Owner
			}
			return *a.ID < *b.ID
		default:
			if a.Amount != b.Amount {
				return a.Amount < b.Amount
			}
			return *a.ID < *b.ID
		}
	})
}
