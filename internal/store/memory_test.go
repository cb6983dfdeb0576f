package store_test

import (
	"testing"

	"cashcard_system/internal/domain"
	"cashcard_system/internal/store"

	"github.com/stretchr/testify/require"
)

func card(id int64, amount float64, owner string) *domain.CashCard {
	return &domain.CashCard{ID: &id, Amount: amount, Owner: &owner}
}

func TestMemoryStoreSaveAssignsIDs(t *testing.T) {
	s := store.NewMemoryStore()

	first := &domain.CashCard{Amount: 1.00}
	require.NoError(t, s.Save(first))
	require.NotNil(t, first.ID)

	second := &domain.CashCard{Amount: 2.00}
	require.NoError(t, s.Save(second))
	require.Greater(t, *second.ID, *first.ID)
}

func TestMemoryStoreSequenceSkipsClientIDs(t *testing.T) {
	s := store.NewMemoryStore()
	require.NoError(t, s.Save(card(50, 1.00, "sarah1")))

	next := &domain.CashCard{Amount: 2.00}
	require.NoError(t, s.Save(next))
	require.Equal(t, int64(51), *next.ID)
}

func TestMemoryStoreScopedLookups(t *testing.T) {
	s := store.NewMemoryStore()
	require.NoError(t, s.Save(card(1, 10.00, "sarah1")))

	got, err := s.FindByIDAndOwner(1, "sarah1")
	require.NoError(t, err)
	require.Equal(t, 10.00, got.Amount)

	_, err = s.FindByIDAndOwner(1, "kumar2")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.FindByID(2)
	require.ErrorIs(t, err, store.ErrNotFound)

	unscoped, err := s.FindByID(1)
	require.NoError(t, err)
	require.Equal(t, "sarah1", *unscoped.Owner)

	exists, err := s.ExistsByID(1)
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = s.ExistsByIDAndOwner(1, "kumar2")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestMemoryStoreSaveOverwrites(t *testing.T) {
	s := store.NewMemoryStore()
	require.NoError(t, s.Save(card(1, 10.00, "sarah1")))
	require.NoError(t, s.Save(card(1, 99.00, "sarah1")))

	got, err := s.FindByID(1)
	require.NoError(t, err)
	require.Equal(t, 99.00, got.Amount)

	page, err := s.FindByOwner("sarah1", store.DefaultPage())
	require.NoError(t, err)
	require.Len(t, page, 1)
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	s := store.NewMemoryStore()
	require.NoError(t, s.Save(card(1, 10.00, "sarah1")))

	got, err := s.FindByID(1)
	require.NoError(t, err)
	got.Amount = 0
	*got.Owner = "kumar2"

	again, err := s.FindByID(1)
	require.NoError(t, err)
	require.Equal(t, 10.00, again.Amount)
	require.Equal(t, "sarah1", *again.Owner)
}

func TestMemoryStoreFindByOwnerOrdering(t *testing.T) {
	s := store.NewMemoryStore()
	require.NoError(t, s.Save(card(1, 3.00, "sarah1")))
	require.NoError(t, s.Save(card(2, 1.00, "sarah1")))
	require.NoError(t, s.Save(card(3, 2.00, "sarah1")))
	require.NoError(t, s.Save(card(4, 100.00, "kumar2")))

	amounts := func(cards []domain.CashCard) []float64 {
		out := make([]float64, len(cards))
		for i, c := range cards {
			out[i] = c.Amount
		}
		return out
	}

	page := store.DefaultPage()
	got, err := s.FindByOwner("sarah1", page)
	require.NoError(t, err)
	require.Equal(t, []float64{1.00, 2.00, 3.00}, amounts(got))

	page.Desc = true
	got, err = s.FindByOwner("sarah1", page)
	require.NoError(t, err)
	require.Equal(t, []float64{3.00, 2.00, 1.00}, amounts(got))

	page = store.Page{Number: 1, Size: 10, Sort: "id"}
	got, err = s.FindByOwner("sarah1", page)
	require.NoError(t, err)
	require.Equal(t, int64(1), *got[0].ID)
	require.Equal(t, int64(3), *got[2].ID)
}

func TestMemoryStoreFindByOwnerPaging(t *testing.T) {
	s := store.NewMemoryStore()
	for i := int64(1); i <= 5; i++ {
		require.NoError(t, s.Save(card(i, float64(i), "sarah1")))
	}

	page := store.Page{Number: 2, Size: 2, Sort: "amount"}
	got, err := s.FindByOwner("sarah1", page)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, 3.00, got[0].Amount)

	page.Number = 3
	got, err = s.FindByOwner("sarah1", page)
	require.NoError(t, err)
	require.Len(t, got, 1)

	page.Number = 4
	got, err = s.FindByOwner("sarah1", page)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestMemoryStoreDelete(t *testing.T) {
	s := store.NewMemoryStore()
	require.NoError(t, s.Save(card(1, 10.00, "sarah1")))

	require.NoError(t, s.DeleteByID(1))
	exists, err := s.ExistsByID(1)
	require.NoError(t, err)
	require.False(t, exists)

	// Deleting an absent id is a no-op at this layer
	require.NoError(t, s.DeleteByID(1))
}
