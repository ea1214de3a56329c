package dyndb_test

import (
	"context"
	"testing"

	"github.com/raywall/event-service/dyndb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryClient_CRUD(t *testing.T) {
	t.Parallel()

	client := dyndb.NewMemoryClient("id")
	store := createTestStore(t, client)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, TestItem{ID: "1", Name: "A"}))
	require.NoError(t, store.Put(ctx, TestItem{ID: "1", Name: "B"}))
	assert.Equal(t, 1, client.Len(), "put on the same key must overwrite")

	item, err := store.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "B", item.Name)

	require.NoError(t, store.Update(ctx, "1", map[string]any{"name": "C"}))
	item, err = store.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, TestItem{ID: "1", Name: "C"}, *item)

	require.NoError(t, store.Delete(ctx, "1"))
	_, err = store.Get(ctx, "1")
	assert.ErrorIs(t, err, dyndb.ErrNotFound)
	assert.Equal(t, 0, client.Len())
}

func TestMemoryClient_ScanLimitCountsEvaluatedItems(t *testing.T) {
	t.Parallel()

	store := createTestStore(t, dyndb.NewMemoryClient("id"))
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, TestItem{ID: "1", Name: "A"}))
	require.NoError(t, store.Put(ctx, TestItem{ID: "2", Name: "B"}))
	require.NoError(t, store.Put(ctx, TestItem{ID: "3", Name: "A"}))

	// a primeira página avalia 2 itens mas só um passa no filtro
	items, next, err := store.Scan().Limit(2).FilterEqual("name", "A").Exec(ctx)
	require.NoError(t, err)
	assert.Equal(t, []TestItem{{ID: "1", Name: "A"}}, items)
	require.NotEmpty(t, next)

	items, next, err = store.Scan().Limit(2).FilterEqual("name", "A").StartKey(next).Exec(ctx)
	require.NoError(t, err)
	assert.Equal(t, []TestItem{{ID: "3", Name: "A"}}, items)
	assert.Empty(t, next)
}

func TestMemoryClient_QueryCount(t *testing.T) {
	t.Parallel()

	store := createTestStore(t, dyndb.NewMemoryClient("id"))
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, TestItem{ID: "1", Name: "A"}))

	n, err := store.Query().KeyEqual("id", "1").Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(1), n)

	n, err = store.Query().KeyEqual("id", "2").Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(0), n)
}
