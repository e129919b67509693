package mongo

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/chirper/chirper-api/internal/core/domain"
)

func TestCollectionStore_Integration(t *testing.T) {
	uri := startMongo(t)
	ctx := context.Background()

	t.Run("missing collection is unavailable", func(t *testing.T) {
		s := openTestStore(t, uri)

		_, err := s.Load(ctx, "users")
		require.ErrorIs(t, err, domain.ErrStorageUnavailable)
	})

	t.Run("ensure creates an empty collection", func(t *testing.T) {
		s := openTestStore(t, uri)

		require.NoError(t, s.Ensure(ctx, "users"))
		records, err := s.Load(ctx, "users")
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("replace then load round-trips records", func(t *testing.T) {
		s := openTestStore(t, uri)

		first := []json.RawMessage{
			json.RawMessage(`{"user_id":"0b8c5d4e-8f6a-4c1e-9a7b-2d3e4f5a6b7c","email":"a@x.com","birth_date":null,"password":"abcdefgh"}`),
			json.RawMessage(`{"user_id":"6f1e2d3c-4b5a-4978-8a6b-5c4d3e2f1a0b","email":"b@x.com","birth_date":"1990-04-01","password":"12345678"}`),
		}
		require.NoError(t, s.Replace(ctx, "users", first))

		got, err := s.Load(ctx, "users")
		require.NoError(t, err)
		require.Len(t, got, 2)
		for i := range first {
			assert.JSONEq(t, string(first[i]), string(got[i]))
		}

		second := first[1:]
		require.NoError(t, s.Replace(ctx, "users", second))
		got, err = s.Load(ctx, "users")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.JSONEq(t, string(second[0]), string(got[0]))

		n, err := s.col.CountDocuments(ctx, bson.M{"_id": "users"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("ensure keeps existing records", func(t *testing.T) {
		s := openTestStore(t, uri)

		record := json.RawMessage(`{"tweet_id":"3d2c1b0a-9f8e-4d7c-8b6a-5f4e3d2c1b0a","content":"keep"}`)
		require.NoError(t, s.Replace(ctx, "tweets", []json.RawMessage{record}))
		require.NoError(t, s.Ensure(ctx, "tweets"))

		got, err := s.Load(ctx, "tweets")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.JSONEq(t, string(record), string(got[0]))
	})

	t.Run("collections are independent", func(t *testing.T) {
		s := openTestStore(t, uri)

		require.NoError(t, s.Ensure(ctx, "users"))
		require.NoError(t, s.Replace(ctx, "tweets", []json.RawMessage{json.RawMessage(`{"content":"x"}`)}))

		users, err := s.Load(ctx, "users")
		require.NoError(t, err)
		assert.Empty(t, users)
	})

	t.Run("non-object record is rejected before writing", func(t *testing.T) {
		s := openTestStore(t, uri)
		require.NoError(t, s.Ensure(ctx, "tweets"))

		err := s.Replace(ctx, "tweets", []json.RawMessage{json.RawMessage(`[1]`)})
		require.Error(t, err)

		got, err := s.Load(ctx, "tweets")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("ping and closed client", func(t *testing.T) {
		s, err := Open(ctx, Config{URI: uri, Database: "chirper_ping", Timeout: 30 * time.Second})
		require.NoError(t, err)
		require.NoError(t, s.Ping(ctx))

		require.NoError(t, s.Close(ctx))
		require.ErrorIs(t, s.Ping(ctx), domain.ErrStorageUnavailable)
	})
}

func TestOpen_Unreachable(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping network test in short mode")
	}

	_, err := Open(context.Background(), Config{
		URI:      "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=200",
		Database: "chirper",
		Timeout:  2 * time.Second,
	})
	require.Error(t, err)
}
