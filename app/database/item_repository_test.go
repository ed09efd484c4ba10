package database

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedItems(t *testing.T, repo *ItemRepository, count int) {
	t.Helper()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 1; i <= count; i++ {
		_, _, err := repo.Create(Item{
			Title:     fmt.Sprintf("Item %02d", i),
			Published: true,
			// Item 01 is the newest
			PubDate: base.Add(-time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}
}

func TestCreateDefaults(t *testing.T) {
	repo := NewItemRepository(newTestDB(t))

	id, guid, err := repo.Create(Item{Title: "Hello", Published: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.NotEmpty(t, guid)

	items, total, err := repo.List(ItemListOptions{})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	assert.Equal(t, "Hello", items[0].Title)
	assert.Equal(t, guid, items[0].GUID)
	assert.True(t, items[0].Published)
	assert.False(t, items[0].PubDate.IsZero())
	assert.False(t, items[0].CreatedAt.IsZero())
}

func TestCreateKeepsSuppliedGUID(t *testing.T) {
	repo := NewItemRepository(newTestDB(t))

	_, guid, err := repo.Create(Item{Title: "Pinned", GUID: "urn:polysend:42", Published: true})
	require.NoError(t, err)
	assert.Equal(t, "urn:polysend:42", guid)
}

func TestCreateDuplicateGUID(t *testing.T) {
	repo := NewItemRepository(newTestDB(t))

	_, _, err := repo.Create(Item{Title: "First", GUID: "dup", Published: true})
	require.NoError(t, err)

	_, _, err = repo.Create(Item{Title: "Second", GUID: "dup", Published: true})
	assert.Error(t, err)
}

func TestListOrderAndPagination(t *testing.T) {
	repo := NewItemRepository(newTestDB(t))
	seedItems(t, repo, 25)

	items, total, err := repo.List(ItemListOptions{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 25, total)
	require.Len(t, items, 10)
	assert.Equal(t, "Item 11", items[0].Title)
	assert.Equal(t, "Item 20", items[9].Title)

	for i := 1; i < len(items); i++ {
		assert.False(t, items[i].PubDate.After(items[i-1].PubDate), "items must be ordered by pub_date desc")
	}
}

func TestListFilters(t *testing.T) {
	repo := NewItemRepository(newTestDB(t))

	_, _, err := repo.Create(Item{Title: "News", Category: "news", Published: true})
	require.NoError(t, err)
	_, _, err = repo.Create(Item{Title: "Draft", Category: "news", Published: false})
	require.NoError(t, err)
	_, _, err = repo.Create(Item{Title: "Release", Category: "release", Published: true})
	require.NoError(t, err)

	items, total, err := repo.List(ItemListOptions{Category: "news"})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, items, 2)

	published := true
	items, total, err = repo.List(ItemListOptions{Category: "news", Published: &published})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "News", items[0].Title)

	unpublished := false
	items, total, err = repo.List(ItemListOptions{Published: &unpublished})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "Draft", items[0].Title)
}

func TestPartialUpdate(t *testing.T) {
	repo := NewItemRepository(newTestDB(t))

	id, _, err := repo.Create(Item{
		Title:       "Original",
		Description: "Body",
		Link:        "https://polysend.io/a",
		Author:      "ops@polysend.io",
		Category:    "news",
		Published:   true,
	})
	require.NoError(t, err)

	before, _, err := repo.List(ItemListOptions{})
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	unpublished := false
	require.NoError(t, repo.Update(id, ItemFields{Published: &unpublished}))

	after, _, err := repo.List(ItemListOptions{})
	require.NoError(t, err)
	require.Len(t, after, 1)

	assert.False(t, after[0].Published)
	assert.Equal(t, "Original", after[0].Title)
	assert.Equal(t, "Body", after[0].Description)
	assert.Equal(t, "https://polysend.io/a", after[0].Link)
	assert.Equal(t, "ops@polysend.io", after[0].Author)
	assert.Equal(t, "news", after[0].Category)
	assert.True(t, after[0].UpdatedAt.After(before[0].UpdatedAt))
}

func TestUpdateEmptyFields(t *testing.T) {
	repo := NewItemRepository(newTestDB(t))

	id, _, err := repo.Create(Item{Title: "Untouched", Published: true})
	require.NoError(t, err)

	err = repo.Update(id, ItemFields{})
	assert.ErrorIs(t, err, ErrEmptyUpdate)
}

func TestUpdateUnknownID(t *testing.T) {
	repo := NewItemRepository(newTestDB(t))

	title := "Ghost"
	err := repo.Update(999, ItemFields{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	repo := NewItemRepository(newTestDB(t))

	id, _, err := repo.Create(Item{Title: "Doomed", Published: true})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(id))

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	assert.ErrorIs(t, repo.Delete(id), ErrNotFound)
}

func TestGetPublished(t *testing.T) {
	repo := NewItemRepository(newTestDB(t))

	_, _, err := repo.Create(Item{Title: "Public", Published: true})
	require.NoError(t, err)
	_, _, err = repo.Create(Item{Title: "Hidden", Published: false})
	require.NoError(t, err)

	items, err := repo.GetPublished("", 20)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Public", items[0].Title)
}
