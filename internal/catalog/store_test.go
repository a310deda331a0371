package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starhub/pkg/models"
)

func TestStoreStartsCold(t *testing.T) {
	store := NewStore()

	for _, cat := range All {
		items, loaded := store.Snapshot(cat)
		assert.False(t, loaded)
		assert.Empty(t, items)
		assert.NotNil(t, items, "results must encode as [], not null")
	}
}

func TestStorePublishIsFinal(t *testing.T) {
	store := NewStore()
	store.Publish(People, namedRecords("Luke Skywalker"))

	items, loaded := store.Snapshot(People)
	require.True(t, loaded)
	require.Len(t, items, 1)
	assert.True(t, store.Loaded(People))
	assert.False(t, store.Loaded(Planets))
}

func TestStorePublishNilBecomesEmpty(t *testing.T) {
	store := NewStore()
	store.Publish(Species, nil)

	items, loaded := store.Snapshot(Species)
	assert.True(t, loaded)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestStoreStatus(t *testing.T) {
	store := NewStore()
	store.Publish(Films, []models.Record{{"id": "4"}, {"id": "5"}})

	status := store.Status()
	require.Len(t, status, len(All))
	assert.Equal(t, EntryStatus{Loaded: true, Count: 2}, status["films"])
	assert.Equal(t, EntryStatus{}, status["people"])
}
