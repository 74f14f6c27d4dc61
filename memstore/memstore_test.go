package memstore

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/keva"
	"github.com/hupe1980/keva/codec"
)

func TestStoreReloadRoundTrip(t *testing.T) {
	client := keva.NewClient(New())
	bucket := client.Bucket("users")

	rec, err := bucket.NewRecord("alice")
	require.NoError(t, err)
	rec.SetData(map[string]any{"email": "alice@example.com"})
	require.NoError(t, rec.AddIndex("email_bin", "alice@example.com"))
	rec.UserMeta["team"] = "core"

	require.NoError(t, rec.Store(context.Background()))
	assert.True(t, rec.Exists())
	assert.NotNil(t, rec.VClock)

	fresh, err := bucket.NewRecord("alice")
	require.NoError(t, err)
	require.NoError(t, fresh.Reload(context.Background()))

	v, err := fresh.Data()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"email": "alice@example.com"}, v)
	assert.True(t, fresh.HasIndex("email_bin", "alice@example.com"))
	assert.Equal(t, "core", fresh.UserMeta["team"])
	assert.True(t, rec.Equal(fresh))
}

func TestServerAssignedKey(t *testing.T) {
	client := keva.NewClient(New())
	bucket := client.Bucket("events")

	rec := bucket.NewRecordWithoutKey()
	rec.SetData("payload")
	require.NoError(t, rec.Store(context.Background()))

	key, ok := rec.Key()
	require.True(t, ok)
	_, err := uuid.Parse(key)
	assert.NoError(t, err)
	assert.Equal(t, 1, client.Transport().(*Store).Len("events"))
}

func TestSiblingsOnConcurrentWrites(t *testing.T) {
	store := New()
	client := keva.NewClient(store)
	bucket := client.Bucket("carts")
	ctx := context.Background()

	// Two writers that never saw each other's version.
	w1, err := bucket.NewRecord("cart-1")
	require.NoError(t, err)
	w1.SetData([]any{"milk"})
	require.NoError(t, w1.Store(ctx))

	w2, err := bucket.NewRecord("cart-1")
	require.NoError(t, err)
	w2.SetData([]any{"eggs"})
	require.NoError(t, w2.Store(ctx))

	reader, err := bucket.NewRecord("cart-1")
	require.NoError(t, err)
	require.NoError(t, reader.Reload(ctx))
	require.True(t, reader.Conflict())
	require.Equal(t, 2, reader.SiblingCount())

	// Merge the siblings and store the resolution.
	merged := map[any]bool{}
	for i := 0; i < reader.SiblingCount(); i++ {
		sib, err := reader.Sibling(ctx, i)
		require.NoError(t, err)
		items, err := sib.Data()
		require.NoError(t, err)
		for _, item := range items.([]any) {
			merged[item] = true
		}
	}
	assert.Equal(t, map[any]bool{"milk": true, "eggs": true}, merged)

	winner, err := reader.Sibling(ctx, 0)
	require.NoError(t, err)
	winner.SetData([]any{"milk", "eggs"})
	require.NoError(t, winner.Store(ctx))

	after, err := bucket.NewRecord("cart-1")
	require.NoError(t, err)
	require.NoError(t, after.Reload(ctx))
	assert.False(t, after.Conflict())

	v, err := after.Data()
	require.NoError(t, err)
	assert.Equal(t, []any{"milk", "eggs"}, v)
}

func TestCausalUpdateDoesNotSibling(t *testing.T) {
	client := keva.NewClient(New())
	bucket := client.Bucket("users")
	ctx := context.Background()

	rec, err := bucket.NewRecord("alice")
	require.NoError(t, err)
	rec.SetData("v1")
	require.NoError(t, rec.Store(ctx))

	// Same record carries the vclock, so the second write descends.
	rec.SetData("v2")
	require.NoError(t, rec.Store(ctx))

	fresh, err := bucket.NewRecord("alice")
	require.NoError(t, err)
	require.NoError(t, fresh.Reload(ctx))
	assert.False(t, fresh.Conflict())

	v, err := fresh.Data()
	require.NoError(t, err)
	assert.Equal(t, "v2", v)
}

func TestLastWriteWins(t *testing.T) {
	client := keva.NewClient(New(WithLastWriteWins(true)))
	bucket := client.Bucket("users")
	ctx := context.Background()

	for _, val := range []string{"first", "second"} {
		rec, err := bucket.NewRecord("alice")
		require.NoError(t, err)
		rec.SetData(val)
		require.NoError(t, rec.Store(ctx))
	}

	fresh, err := bucket.NewRecord("alice")
	require.NoError(t, err)
	require.NoError(t, fresh.Reload(ctx))
	assert.False(t, fresh.Conflict())

	v, err := fresh.Data()
	require.NoError(t, err)
	assert.Equal(t, "second", v)
}

func TestIfNoneMatch(t *testing.T) {
	client := keva.NewClient(New())
	bucket := client.Bucket("users")
	ctx := context.Background()

	rec, err := bucket.NewRecord("alice")
	require.NoError(t, err)
	rec.SetData("v")
	require.NoError(t, rec.Store(ctx, keva.WithIfNoneMatch(true)))

	dup, err := bucket.NewRecord("alice")
	require.NoError(t, err)
	dup.SetData("other")
	assert.ErrorIs(t, dup.Store(ctx, keva.WithIfNoneMatch(true)), ErrKeyExists)
}

func TestReturnBodyFalse(t *testing.T) {
	client := keva.NewClient(New())
	bucket := client.Bucket("users")
	ctx := context.Background()

	rec, err := bucket.NewRecord("alice")
	require.NoError(t, err)
	rec.SetData("v")
	require.NoError(t, rec.Store(ctx, keva.WithReturnBody(false)))

	// Nothing came back, so local state is untouched.
	assert.False(t, rec.Exists())
	assert.Nil(t, rec.VClock)

	fresh, err := bucket.NewRecord("alice")
	require.NoError(t, err)
	require.NoError(t, fresh.Reload(ctx))
	assert.True(t, fresh.Exists())
}

func TestDeleteThenReload(t *testing.T) {
	client := keva.NewClient(New())
	bucket := client.Bucket("users")
	ctx := context.Background()

	rec, err := bucket.NewRecord("alice")
	require.NoError(t, err)
	rec.SetData("v")
	require.NoError(t, rec.Store(ctx))

	require.NoError(t, rec.Delete(ctx))
	assert.False(t, rec.Exists())

	fresh, err := bucket.NewRecord("alice")
	require.NoError(t, err)
	require.NoError(t, fresh.Reload(ctx))
	assert.False(t, fresh.Exists())
}

func TestVTagNotFound(t *testing.T) {
	client := keva.NewClient(New())
	bucket := client.Bucket("users")
	ctx := context.Background()

	rec, err := bucket.NewRecord("alice")
	require.NoError(t, err)
	rec.SetData("v")
	require.NoError(t, rec.Store(ctx))

	fresh, err := bucket.NewRecord("alice")
	require.NoError(t, err)
	assert.ErrorIs(t, fresh.Reload(ctx, keva.WithVTag("no-such-tag")), ErrVTagNotFound)
}

func TestContentEncodingAtRest(t *testing.T) {
	store := New()
	client := keva.NewClient(store)
	bucket := client.Bucket("blobs")
	ctx := context.Background()

	payload := map[string]any{"body": string(make([]byte, 4096))}

	rec, err := bucket.NewRecord("big")
	require.NoError(t, err)
	rec.ContentEncoding = codec.EncodingGzip
	rec.SetData(payload)
	require.NoError(t, rec.Store(ctx))

	// At rest the payload is compressed.
	stored := store.buckets["blobs"]["big"].versions[0].snap.EncodedData
	plain, err := rec.EncodedData()
	require.NoError(t, err)
	assert.Less(t, len(stored), len(plain))

	fresh, err := bucket.NewRecord("big")
	require.NoError(t, err)
	require.NoError(t, fresh.Reload(ctx))
	assert.Equal(t, codec.EncodingGzip, fresh.ContentEncoding)

	v, err := fresh.Data()
	require.NoError(t, err)
	assert.Equal(t, payload, v)
}

func TestConcurrentClients(t *testing.T) {
	client := keva.NewClient(New())
	bucket := client.Bucket("users")

	var g errgroup.Group
	for i := 0; i < 32; i++ {
		key := fmt.Sprintf("user-%d", i)
		g.Go(func() error {
			rec, err := bucket.NewRecord(key)
			if err != nil {
				return err
			}
			rec.SetData(key)
			if err := rec.Store(context.Background()); err != nil {
				return err
			}
			return rec.Reload(context.Background())
		})
	}
	require.NoError(t, g.Wait())

	for i := 0; i < 32; i++ {
		rec, err := bucket.NewRecord(fmt.Sprintf("user-%d", i))
		require.NoError(t, err)
		require.NoError(t, rec.Reload(context.Background()))
		assert.True(t, rec.Exists())
	}
}
