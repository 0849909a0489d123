package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/digkill/cinexa/internal/models"
)

type PaymentMethodRepository struct {
	db *sql.DB
}

func NewPaymentMethodRepository(db *sql.DB) *PaymentMethodRepository {
	return &PaymentMethodRepository{db: db}
}

const paymentMethodColumns = `id, name, detail, icon, is_active, COALESCE(bank_name, ''), COALESCE(account_number, ''), COALESCE(beneficiary, '')`

func scanPaymentMethod(row interface{ Scan(...any) error }) (*models.PaymentMethod, error) {
	var m models.PaymentMethod
	if err := row.Scan(&m.ID, &m.Name, &m.Detail, &m.Icon, &m.IsActive, &m.BankName, &m.AccountNumber, &m.Beneficiary); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PaymentMethodRepository) Get(ctx context.Context, id string) (*models.PaymentMethod, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+paymentMethodColumns+` FROM payment_methods WHERE id = ?`, id)
	m, err := scanPaymentMethod(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan payment method: %w", err)
	}
	return m, nil
}

func (r *PaymentMethodRepository) List(ctx context.Context) ([]models.PaymentMethod, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+paymentMethodColumns+` FROM payment_methods ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("list payment methods: %w", err)
	}
	defer rows.Close()

	var methods []models.PaymentMethod
	for rows.Next() {
		m, err := scanPaymentMethod(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment method list: %w", err)
		}
		methods = append(methods, *m)
	}
	return methods, rows.Err()
}

// Upsert keeps the original position of an existing method; new methods are
// appended to the end of the list.
func (r *PaymentMethodRepository) Upsert(ctx context.Context, method *models.PaymentMethod) error {
	const query = `
INSERT INTO payment_methods (id, name, detail, icon, is_active, bank_name, account_number, beneficiary)
VALUES (?, ?, ?, ?, ?, NULLIF(?, ''), NULLIF(?, ''), NULLIF(?, ''))
ON DUPLICATE KEY UPDATE
    name = VALUES(name), detail = VALUES(detail), icon = VALUES(icon), is_active = VALUES(is_active),
    bank_name = VALUES(bank_name), account_number = VALUES(account_number), beneficiary = VALUES(beneficiary)`
	if _, err := r.db.ExecContext(ctx, query, method.ID, method.Name, method.Detail, method.Icon, method.IsActive,
		method.BankName, method.AccountNumber, method.Beneficiary); err != nil {
		return fmt.Errorf("upsert payment method: %w", err)
	}
	return nil
}

func (r *PaymentMethodRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM payment_methods WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete payment method: %w", err)
	}
	return nil
}
