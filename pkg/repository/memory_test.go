package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type note struct {
	ID        string     `bson:"_id,omitempty"`
	Owner     string     `bson:"owner"`
	Body      string     `bson:"body"`
	Tags      []string   `bson:"tags"`
	WrittenAt *time.Time `bson:"writtenAt,omitempty"`
}

func TestMemoryStore_SetGetReplaces(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Set(ctx, "notes", "n1", note{Owner: "ana", Body: "first", Tags: []string{"a"}}, "writtenAt"))
	require.NoError(t, store.Set(ctx, "notes", "n1", note{Owner: "ana", Body: "second"}))

	var got note
	require.NoError(t, store.Get(ctx, "notes", "n1", &got))
	assert.Equal(t, "n1", got.ID)
	assert.Equal(t, "second", got.Body)
	assert.Nil(t, got.Tags)
	assert.Nil(t, got.WrittenAt, "set must replace the whole document")
}

func TestMemoryStore_GetMissing(t *testing.T) {
	var got note
	err := NewMemoryStore().Get(context.Background(), "notes", "nope", &got)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_StampsUseStoreClock(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	require.NoError(t, store.Set(ctx, "notes", "n1", note{Owner: "ana"}, "writtenAt"))

	var got note
	require.NoError(t, store.Get(ctx, "notes", "n1", &got))
	require.NotNil(t, got.WrittenAt)
	assert.True(t, fixed.Equal(*got.WrittenAt))
}

func TestMemoryStore_UpdateMergesAndUpserts(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Set(ctx, "notes", "n1", note{Owner: "ana", Body: "first", Tags: []string{"a"}}))
	require.NoError(t, store.Update(ctx, "notes", "n1", map[string]interface{}{"body": "edited", "meta.color": "red"}, "writtenAt"))

	var got bson.M
	require.NoError(t, store.Get(ctx, "notes", "n1", &got))
	assert.Equal(t, "ana", got["owner"])
	assert.Equal(t, "edited", got["body"])
	assert.Equal(t, bson.A{"a"}, got["tags"])
	assert.Equal(t, bson.M{"color": "red"}, got["meta"])
	assert.NotNil(t, got["writtenAt"])

	require.NoError(t, store.Update(ctx, "notes", "fresh", map[string]interface{}{"body": "created"}))
	var fresh note
	require.NoError(t, store.Get(ctx, "notes", "fresh", &fresh))
	assert.Equal(t, "created", fresh.Body)
}

func TestMemoryStore_DeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Delete(ctx, "notes", "ghost"))
	require.NoError(t, store.Set(ctx, "notes", "n1", note{Owner: "ana"}))
	require.NoError(t, store.Delete(ctx, "notes", "n1"))

	var got note
	assert.ErrorIs(t, store.Get(ctx, "notes", "n1", &got), ErrNotFound)
}

func TestMemoryStore_AddAndFind(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	id1, err := store.Add(ctx, "notes", note{Owner: "ana", Body: "one"})
	require.NoError(t, err)
	id2, err := store.Add(ctx, "notes", note{Owner: "ben", Body: "two"})
	require.NoError(t, err)
	_, err = store.Add(ctx, "notes", note{Owner: "ana", Body: "three"})
	require.NoError(t, err)
	assert.Len(t, id1, 24)
	assert.NotEqual(t, id1, id2)

	var all []note
	require.NoError(t, store.Find(ctx, "notes", &all))
	require.Len(t, all, 3)
	assert.True(t, all[0].ID < all[1].ID && all[1].ID < all[2].ID, "results are ordered by id")

	var anas []note
	require.NoError(t, store.Find(ctx, "notes", &anas, Eq("owner", "ana")))
	require.Len(t, anas, 2)
	for _, n := range anas {
		assert.Equal(t, "ana", n.Owner)
	}

	var none []note
	require.NoError(t, store.Find(ctx, "empty", &none))
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestMemoryStore_FindNumericFilter(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Set(ctx, "counts", "a", bson.M{"n": 3}))
	require.NoError(t, store.Set(ctx, "counts", "b", bson.M{"n": 4}))

	var got []bson.M
	require.NoError(t, store.Find(ctx, "counts", &got, Eq("n", 3)))
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0]["_id"])
}

func TestMemoryStore_FindRejectsNonSlice(t *testing.T) {
	var n note
	err := NewMemoryStore().Find(context.Background(), "notes", &n)
	assert.Error(t, err)
}
