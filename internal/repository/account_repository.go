package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/digkill/cinexa/internal/models"
)

var (
	ErrDuplicateEmail      = errors.New("email already registered")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrNotFound            = errors.New("record not found")
)

const mysqlDuplicateEntry = 1062

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

const accountColumns = `id, email, display_name, plan, credits, is_admin, COALESCE(avatar_url, ''), password_hash, created_at`

func scanAccount(row interface{ Scan(...any) error }) (*models.Account, error) {
	var a models.Account
	var plan string
	if err := row.Scan(&a.ID, &a.Email, &a.DisplayName, &plan, &a.Credits, &a.IsAdmin, &a.AvatarURL, &a.PasswordHash, &a.CreatedAt); err != nil {
		return nil, err
	}
	a.Plan = models.PlanType(plan)
	return &a, nil
}

func (r *AccountRepository) Get(ctx context.Context, id string) (*models.Account, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id)
	a, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}
	return a, nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE email = ?`, strings.ToLower(email))
	a, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan account by email: %w", err)
	}
	return a, nil
}

func (r *AccountRepository) List(ctx context.Context) ([]models.Account, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account list: %w", err)
		}
		accounts = append(accounts, *a)
	}
	return accounts, rows.Err()
}

// Upsert inserts the account or replaces every mutable column of an existing
// row with the same id. The email must stay unique across ids.
func (r *AccountRepository) Upsert(ctx context.Context, account *models.Account) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM accounts WHERE id = ? FOR UPDATE`, account.ID).Scan(&exists)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		const insert = `
INSERT INTO accounts (id, email, display_name, plan, credits, is_admin, avatar_url, password_hash, created_at)
VALUES (?, ?, ?, ?, ?, ?, NULLIF(?, ''), ?, ?)`
		_, err = tx.ExecContext(ctx, insert, account.ID, strings.ToLower(account.Email), account.DisplayName, string(account.Plan),
			account.Credits, account.IsAdmin, account.AvatarURL, account.PasswordHash, account.CreatedAt)
	case err != nil:
		return fmt.Errorf("lock account: %w", err)
	default:
		const update = `
UPDATE accounts
SET email = ?, display_name = ?, plan = ?, credits = ?, is_admin = ?, avatar_url = NULLIF(?, ''), password_hash = ?
WHERE id = ?`
		_, err = tx.ExecContext(ctx, update, strings.ToLower(account.Email), account.DisplayName, string(account.Plan),
			account.Credits, account.IsAdmin, account.AvatarURL, account.PasswordHash, account.ID)
	}
	if err != nil {
		var myErr *mysql.MySQLError
		if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("upsert account: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit account tx: %w", err)
	}
	return nil
}

func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}

func (r *AccountRepository) UpdateProfile(ctx context.Context, id, displayName, avatarURL string) error {
	const query = `UPDATE accounts SET display_name = ?, avatar_url = NULLIF(?, '') WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, displayName, avatarURL, id)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return requireRow(res)
}

// ApplyPlan switches the plan and adds credits in one statement.
func (r *AccountRepository) ApplyPlan(ctx context.Context, id string, plan models.PlanType, credits int) error {
	const query = `UPDATE accounts SET plan = ?, credits = credits + ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, string(plan), credits, id)
	if err != nil {
		return fmt.Errorf("apply plan: %w", err)
	}
	return requireRow(res)
}

// requireRow maps an update that matched nothing to ErrNotFound. Connect
// enables clientFoundRows, so unchanged rows still count as matched.
func requireRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// AdjustCredits adds delta to the balance in a single conditional update so
// that concurrent debits can never drive it below zero.
func (r *AccountRepository) AdjustCredits(ctx context.Context, id string, delta int) error {
	if delta == 0 {
		return nil
	}
	const query = `
UPDATE accounts SET credits = credits + ?
WHERE id = ? AND credits + ? >= 0`
	res, err := r.db.ExecContext(ctx, query, delta, id, delta)
	if err != nil {
		return fmt.Errorf("adjust credits: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("credits rows affected: %w", err)
	}
	if affected > 0 {
		return nil
	}

	account, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	if account == nil {
		return ErrNotFound
	}
	return ErrInsufficientBalance
}
