package session

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digkill/cinexa/internal/models"
)

func testAccount() models.Account {
	return models.Account{
		ID:           "u1",
		Email:        "ana@example.com",
		DisplayName:  "Ana",
		Plan:         models.PlanPlus,
		Credits:      42,
		PasswordHash: "secret-hash",
		CreatedAt:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	missing, err := store.Get(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	assert.Error(t, store.Put(ctx, Session{Account: testAccount()}))

	token := NewToken()
	require.NoError(t, store.Put(ctx, Session{Token: token, Account: testAccount()}))

	sess, err := store.Get(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, token, sess.Token)
	assert.Equal(t, "u1", sess.AccountID())
	assert.Equal(t, 42, sess.Account.Credits)
	assert.Empty(t, sess.Account.PasswordHash)

	require.NoError(t, store.Delete(ctx, token))
	sess, err = store.Get(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore(time.Hour))

	t.Run("expires", func(t *testing.T) {
		ctx := context.Background()
		store := NewMemoryStore(time.Minute)
		now := time.Now()
		store.now = func() time.Time { return now }

		require.NoError(t, store.Put(ctx, Session{Token: "t", Account: testAccount()}))
		now = now.Add(2 * time.Minute)

		sess, err := store.Get(ctx, "t")
		require.NoError(t, err)
		assert.Nil(t, sess)
	})

	t.Run("put during expiry cleanup survives", func(t *testing.T) {
		ctx := context.Background()
		store := NewMemoryStore(time.Minute)
		base := time.Now()
		now := base
		replaced := false
		store.now = func() time.Time {
			if now.After(base.Add(time.Minute)) && !replaced {
				replaced = true
				fresh := testAccount()
				fresh.Credits = 7
				require.NoError(t, store.Put(ctx, Session{Token: "t", Account: fresh}))
			}
			return now
		}

		require.NoError(t, store.Put(ctx, Session{Token: "t", Account: testAccount()}))
		now = now.Add(2 * time.Minute)

		sess, err := store.Get(ctx, "t")
		require.NoError(t, err)
		require.True(t, replaced)
		require.NotNil(t, sess)
		assert.Equal(t, 7, sess.Account.Credits)

		again, err := store.Get(ctx, "t")
		require.NoError(t, err)
		require.NotNil(t, again)
		assert.Equal(t, 7, again.Account.Credits)
	})
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	store := NewRedisStore(client, time.Hour)
	exerciseStore(t, store)

	t.Run("stores the account json under the prefixed key", func(t *testing.T) {
		ctx := context.Background()
		require.NoError(t, store.Put(ctx, Session{Token: "abc", Account: testAccount()}))

		raw, err := mr.Get(KeyPrefix + "abc")
		require.NoError(t, err)
		var decoded map[string]any
		require.NoError(t, json.Unmarshal([]byte(raw), &decoded))
		assert.Equal(t, "ana@example.com", decoded["email"])
		assert.NotContains(t, decoded, "PasswordHash")
		assert.Equal(t, time.Hour, mr.TTL(KeyPrefix+"abc"))

		mr.FastForward(30 * time.Minute)
		sess, err := store.Get(ctx, "abc")
		require.NoError(t, err)
		require.NotNil(t, sess)
		assert.Equal(t, 30*time.Minute, mr.TTL(KeyPrefix+"abc"))

		mr.FastForward(2 * time.Hour)
		sess, err = store.Get(ctx, "abc")
		require.NoError(t, err)
		assert.Nil(t, sess)
	})
}
