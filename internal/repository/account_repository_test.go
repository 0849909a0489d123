package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digkill/cinexa/internal/models"
)

var accountRowColumns = []string{"id", "email", "display_name", "plan", "credits", "is_admin", "avatar_url", "password_hash", "created_at"}

func newMock(t *testing.T) (*AccountRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewAccountRepository(db), mock
}

func TestAccountRepository_Get(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		repo, mock := newMock(t)
		mock.ExpectQuery(`SELECT .+ FROM accounts WHERE id = \?`).
			WithArgs("u1").
			WillReturnRows(sqlmock.NewRows(accountRowColumns).
				AddRow("u1", "a@b.c", "Ana", "PLUS", 42, false, "", "hash", created))

		a, err := repo.Get(ctx, "u1")
		require.NoError(t, err)
		require.NotNil(t, a)
		assert.Equal(t, models.PlanPlus, a.Plan)
		assert.Equal(t, 42, a.Credits)
		assert.Equal(t, created, a.CreatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing returns nil", func(t *testing.T) {
		repo, mock := newMock(t)
		mock.ExpectQuery(`SELECT .+ FROM accounts WHERE id = \?`).
			WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows(accountRowColumns))

		a, err := repo.Get(ctx, "ghost")
		require.NoError(t, err)
		assert.Nil(t, a)
	})
}

func TestAccountRepository_Upsert(t *testing.T) {
	ctx := context.Background()
	account := &models.Account{ID: "u1", Email: "Ana@B.c", DisplayName: "Ana", Plan: models.PlanFree, Credits: 10, CreatedAt: time.Now()}

	t.Run("inserts new accounts", func(t *testing.T) {
		repo, mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT 1 FROM accounts WHERE id = \? FOR UPDATE`).
			WithArgs("u1").
			WillReturnRows(sqlmock.NewRows([]string{"1"}))
		mock.ExpectExec(`INSERT INTO accounts`).
			WithArgs("u1", "ana@b.c", "Ana", "FREE", 10, false, "", "", account.CreatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.Upsert(ctx, account))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("updates existing accounts", func(t *testing.T) {
		repo, mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT 1 FROM accounts WHERE id = \? FOR UPDATE`).
			WithArgs("u1").
			WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
		mock.ExpectExec(`UPDATE accounts\s+SET email`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.Upsert(ctx, account))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps duplicate email", func(t *testing.T) {
		repo, mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT 1 FROM accounts`).
			WillReturnRows(sqlmock.NewRows([]string{"1"}))
		mock.ExpectExec(`INSERT INTO accounts`).
			WillReturnError(&mysql.MySQLError{Number: mysqlDuplicateEntry, Message: "Duplicate entry"})
		mock.ExpectRollback()

		assert.ErrorIs(t, repo.Upsert(ctx, account), ErrDuplicateEmail)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAccountRepository_AdjustCredits(t *testing.T) {
	ctx := context.Background()

	t.Run("applies the delta", func(t *testing.T) {
		repo, mock := newMock(t)
		mock.ExpectExec(`UPDATE accounts SET credits = credits \+ \?`).
			WithArgs(-3, "u1", -3).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.AdjustCredits(ctx, "u1", -3))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero delta touches nothing", func(t *testing.T) {
		repo, mock := newMock(t)
		require.NoError(t, repo.AdjustCredits(ctx, "u1", 0))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("refuses to go negative", func(t *testing.T) {
		repo, mock := newMock(t)
		mock.ExpectExec(`UPDATE accounts SET credits`).
			WithArgs(-5, "u1", -5).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT .+ FROM accounts WHERE id = \?`).
			WithArgs("u1").
			WillReturnRows(sqlmock.NewRows(accountRowColumns).
				AddRow("u1", "a@b.c", "Ana", "FREE", 2, false, "", "hash", time.Now()))

		assert.ErrorIs(t, repo.AdjustCredits(ctx, "u1", -5), ErrInsufficientBalance)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown account", func(t *testing.T) {
		repo, mock := newMock(t)
		mock.ExpectExec(`UPDATE accounts SET credits`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT .+ FROM accounts WHERE id = \?`).
			WillReturnRows(sqlmock.NewRows(accountRowColumns))

		assert.ErrorIs(t, repo.AdjustCredits(ctx, "ghost", 1), ErrNotFound)
	})
}

func TestAccountRepository_UpdateProfileAndPlan(t *testing.T) {
	ctx := context.Background()

	t.Run("updates matched rows", func(t *testing.T) {
		repo, mock := newMock(t)
		mock.ExpectExec(`UPDATE accounts SET display_name = \?, avatar_url = NULLIF\(\?, ''\) WHERE id = \?`).
			WithArgs("Ana", "https://img", "u1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE accounts SET plan = \?, credits = credits \+ \? WHERE id = \?`).
			WithArgs("PREMIUM", 500, "u1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.UpdateProfile(ctx, "u1", "Ana", "https://img"))
		require.NoError(t, repo.ApplyPlan(ctx, "u1", models.PlanPremium, 500))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing account", func(t *testing.T) {
		repo, mock := newMock(t)
		mock.ExpectExec(`UPDATE accounts SET display_name`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`UPDATE accounts SET plan`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.UpdateProfile(ctx, "ghost", "Ana", ""), ErrNotFound)
		assert.ErrorIs(t, repo.ApplyPlan(ctx, "ghost", models.PlanPlus, 100), ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
