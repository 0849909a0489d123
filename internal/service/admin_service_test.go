package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digkill/cinexa/internal/models"
)

func TestAdminService(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewAdminService(f.accounts, f.ledger)

	admin := f.seedAccount(t, "admin", models.PlanPremium, AdminCredits, true)
	user := f.seedAccount(t, "u1", models.PlanPlus, 10, false)
	f.seedAccount(t, "u2", models.PlanFree, 10, false)

	_, err := f.generations.Submit(ctx, user, GenerationRequest{Kind: models.KindImage, Prompt: "x"})
	require.NoError(t, err)

	t.Run("stats", func(t *testing.T) {
		stats, err := svc.Stats(ctx, admin)
		require.NoError(t, err)
		assert.Equal(t, 3, stats.TotalUsers)
		assert.Equal(t, 1, stats.TotalGenerations)
		assert.Equal(t, 99+29, stats.RevenueEstimate)
	})

	t.Run("users", func(t *testing.T) {
		users, err := svc.Users(ctx, admin)
		require.NoError(t, err)
		assert.Len(t, users, 3)
	})

	t.Run("non admins are rejected", func(t *testing.T) {
		_, err := svc.Stats(ctx, user)
		assert.ErrorIs(t, err, ErrForbidden)
		_, err = svc.Users(ctx, user)
		assert.ErrorIs(t, err, ErrForbidden)
	})
}
