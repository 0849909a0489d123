package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digkill/cinexa/internal/models"
	"github.com/digkill/cinexa/internal/repository"
)

func TestAccountRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository()

	require.NoError(t, repo.Upsert(ctx, &models.Account{ID: "a", Email: "Ana@Example.com", Credits: 3}))
	require.NoError(t, repo.Upsert(ctx, &models.Account{ID: "b", Email: "bo@example.com"}))

	t.Run("email lookup ignores case", func(t *testing.T) {
		a, err := repo.GetByEmail(ctx, "ANA@example.com")
		require.NoError(t, err)
		require.NotNil(t, a)
		assert.Equal(t, "a", a.ID)
		assert.Equal(t, "ana@example.com", a.Email)
	})

	t.Run("duplicate email on another id", func(t *testing.T) {
		err := repo.Upsert(ctx, &models.Account{ID: "c", Email: "ana@example.com"})
		assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
	})

	t.Run("list keeps insertion order", func(t *testing.T) {
		all, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "a", all[0].ID)
		assert.Equal(t, "b", all[1].ID)
	})

	t.Run("credits", func(t *testing.T) {
		assert.ErrorIs(t, repo.AdjustCredits(ctx, "a", -4), repository.ErrInsufficientBalance)
		require.NoError(t, repo.AdjustCredits(ctx, "a", -3))
		assert.ErrorIs(t, repo.AdjustCredits(ctx, "zz", 1), repository.ErrNotFound)

		a, err := repo.Get(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, 0, a.Credits)
	})

	t.Run("apply plan", func(t *testing.T) {
		require.NoError(t, repo.ApplyPlan(ctx, "b", models.PlanPlus, 100))
		b, err := repo.Get(ctx, "b")
		require.NoError(t, err)
		assert.Equal(t, models.PlanPlus, b.Plan)
		assert.Equal(t, 100, b.Credits)

		assert.ErrorIs(t, repo.ApplyPlan(ctx, "zz", models.PlanPlus, 100), repository.ErrNotFound)
		assert.ErrorIs(t, repo.UpdateProfile(ctx, "zz", "Zed", ""), repository.ErrNotFound)

		require.NoError(t, repo.Upsert(ctx, &models.Account{ID: "b", Email: "bo@example.com"}))
	})

	t.Run("returned values are copies", func(t *testing.T) {
		a, err := repo.Get(ctx, "b")
		require.NoError(t, err)
		a.Credits = 1000

		again, err := repo.Get(ctx, "b")
		require.NoError(t, err)
		assert.Equal(t, 0, again.Credits)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "b"))
		b, err := repo.Get(ctx, "b")
		require.NoError(t, err)
		assert.Nil(t, b)
		all, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})
}

func TestGenerationRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewGenerationRepository()
	now := time.Now()

	first := &models.GenerationRecord{ID: "g1", OwnerID: "u1", CreatedAt: now, SEO: &models.SEOMetadata{Tags: []string{"a"}}}
	require.NoError(t, repo.Append(ctx, first))
	require.NoError(t, repo.Append(ctx, &models.GenerationRecord{ID: "g2", OwnerID: "u2", CreatedAt: now}))
	require.NoError(t, repo.Append(ctx, &models.GenerationRecord{ID: "g3", OwnerID: "u1", CreatedAt: now}))

	first.SEO.Tags[0] = "mutated"

	mine, err := repo.ListByOwner(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "g3", mine[0].ID)
	assert.Equal(t, "g1", mine[1].ID)
	assert.Equal(t, "a", mine[1].SEO.Tags[0])

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	require.NoError(t, repo.Delete(ctx, "g2"))
	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := repo.Get(ctx, "g2")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPaymentMethodRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewPaymentMethodRepository()

	require.NoError(t, repo.Upsert(ctx, &models.PaymentMethod{ID: "card", Name: "Card"}))
	require.NoError(t, repo.Upsert(ctx, &models.PaymentMethod{ID: "pix", Name: "Pix"}))
	require.NoError(t, repo.Upsert(ctx, &models.PaymentMethod{ID: "card", Name: "Cards"}))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Cards", list[0].Name)
	assert.Equal(t, "pix", list[1].ID)

	require.NoError(t, repo.Delete(ctx, "card"))
	m, err := repo.Get(ctx, "card")
	require.NoError(t, err)
	assert.Nil(t, m)
}
