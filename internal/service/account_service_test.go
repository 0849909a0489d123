package service

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digkill/cinexa/internal/models"
)

func TestAccountService_SignUp(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a free account", func(t *testing.T) {
		f := newFixture(t)
		account, err := f.accounts.SignUp(ctx, SignUpInput{Email: " Ana@Example.com ", Name: "Ana", Password: "secret"})
		require.NoError(t, err)

		assert.Equal(t, "ana@example.com", account.Email)
		assert.Equal(t, models.PlanFree, account.Plan)
		assert.Equal(t, SignUpCredits, account.Credits)
		assert.False(t, account.IsAdmin)
		assert.NotEqual(t, "secret", account.PasswordHash)
		assert.True(t, strings.HasPrefix(account.AvatarURL, "https://api.dicebear.com/"))
		assert.Equal(t, testNow, account.CreatedAt)
	})

	t.Run("rejects a taken email regardless of case", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.accounts.SignUp(ctx, SignUpInput{Email: "ana@example.com", Name: "Ana", Password: "a"})
		require.NoError(t, err)

		_, err = f.accounts.SignUp(ctx, SignUpInput{Email: "ANA@example.com", Name: "Other", Password: "b"})
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("validates input", func(t *testing.T) {
		f := newFixture(t)
		for _, in := range []SignUpInput{
			{Email: "", Name: "A", Password: "p"},
			{Email: "not-an-email", Name: "A", Password: "p"},
			{Email: "a@b.c", Name: " ", Password: "p"},
			{Email: "a@b.c", Name: "A", Password: ""},
		} {
			_, err := f.accounts.SignUp(ctx, in)
			assert.ErrorIs(t, err, ErrValidation, "%+v", in)
		}
	})
}

func TestAccountService_SignIn(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	created, err := f.accounts.SignUp(ctx, SignUpInput{Email: "bo@example.com", Name: "Bo", Password: "hunter2"})
	require.NoError(t, err)

	account, err := f.accounts.SignIn(ctx, "BO@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, created.ID, account.ID)

	_, err = f.accounts.SignIn(ctx, "bo@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.accounts.SignIn(ctx, "nobody@example.com", "hunter2")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAccountService_EnsureAdmin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	admin, err := f.accounts.EnsureAdmin(ctx, "admin@cinexa.local", "Admin", "pw")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)
	assert.Equal(t, models.PlanPremium, admin.Plan)
	assert.Equal(t, AdminCredits, admin.Credits)

	again, err := f.accounts.EnsureAdmin(ctx, "admin@cinexa.local", "Admin", "pw")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, again.ID)

	all, err := f.accounts.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	signedIn, err := f.accounts.SignIn(ctx, "admin@cinexa.local", "pw")
	require.NoError(t, err)
	assert.True(t, signedIn.IsAdmin)
}

func TestAccountService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedAccount(t, "u1", models.PlanFree, 10, false)

	name := "  New Name "
	account, err := f.accounts.UpdateProfile(ctx, "u1", ProfileUpdate{DisplayName: &name})
	require.NoError(t, err)
	assert.Equal(t, "New Name", account.DisplayName)
	assert.Equal(t, "u1@example.com", account.Email)
	assert.Equal(t, 10, account.Credits)

	avatar := "https://img.test/me.png"
	account, err = f.accounts.UpdateProfile(ctx, "u1", ProfileUpdate{AvatarURL: &avatar})
	require.NoError(t, err)
	assert.Equal(t, avatar, account.AvatarURL)
	assert.Equal(t, "New Name", account.DisplayName)

	blank := " "
	_, err = f.accounts.UpdateProfile(ctx, "u1", ProfileUpdate{DisplayName: &blank})
	assert.ErrorIs(t, err, ErrProfileUpdate)

	_, err = f.accounts.UpdateProfile(ctx, "ghost", ProfileUpdate{DisplayName: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAccountService_Credits(t *testing.T) {
	ctx := context.Background()

	t.Run("debit and credit", func(t *testing.T) {
		f := newFixture(t)
		f.seedAccount(t, "u1", models.PlanFree, 5, false)

		require.NoError(t, f.accounts.Debit(ctx, "u1", 5))
		assert.Equal(t, 0, f.credits(t, "u1"))

		assert.ErrorIs(t, f.accounts.Debit(ctx, "u1", 1), ErrInsufficientCredits)
		assert.ErrorIs(t, f.accounts.Debit(ctx, "u1", -1), ErrValidation)
		assert.ErrorIs(t, f.accounts.Credit(ctx, "u1", -1), ErrValidation)
		assert.ErrorIs(t, f.accounts.Debit(ctx, "ghost", 1), ErrNotFound)

		require.NoError(t, f.accounts.Credit(ctx, "u1", 3))
		assert.Equal(t, 3, f.credits(t, "u1"))
	})

	t.Run("concurrent debits never overdraw", func(t *testing.T) {
		f := newFixture(t)
		f.seedAccount(t, "u1", models.PlanFree, 10, false)

		var (
			wg sync.WaitGroup
			mu sync.Mutex
			ok int
		)
		for i := 0; i < 25; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if f.accounts.Debit(ctx, "u1", 1) == nil {
					mu.Lock()
					ok++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 10, ok)
		assert.Equal(t, 0, f.credits(t, "u1"))
	})
}

func TestAccountService_UpgradePlan(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedAccount(t, "u1", models.PlanFree, 4, false)

	account, err := f.accounts.UpgradePlan(ctx, "u1", models.PlanPlus)
	require.NoError(t, err)
	assert.Equal(t, models.PlanPlus, account.Plan)
	assert.Equal(t, 104, account.Credits)

	_, err = f.accounts.UpgradePlan(ctx, "u1", "GOLD")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.accounts.UpgradePlan(ctx, "ghost", models.PlanPlus)
	assert.ErrorIs(t, err, ErrNotFound)
}
