package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"agendamiento/internal/db"
)

type PurchaseRepository struct {
	DB *sql.DB
}

func NewPurchaseRepository(database *sql.DB) *PurchaseRepository {
	return &PurchaseRepository{DB: database}
}

func (r *PurchaseRepository) CreatePurchase(p *db.Purchase) error {
	query := `
		INSERT INTO purchases
		(code, resource_kind, resource_id, rail, currency, amount_usd, amount_charged, status, failure_stage, message, payment_url, user_email, user_phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
		RETURNING id, created_at, updated_at`
	return r.DB.QueryRow(query,
		p.Code,
		p.ResourceKind,
		p.ResourceID,
		p.Rail,
		p.Currency,
		p.AmountUSD,
		p.AmountCharged,
		p.Status,
		p.FailureStage,
		p.Message,
		p.PaymentURL,
		p.UserEmail,
		p.UserPhone,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// UpdateOutcome records how a run ended: final status, the stage it failed
// at (empty on success), the surfaced message and the payment URL if any.
func (r *PurchaseRepository) UpdateOutcome(id int, status, failureStage, message, paymentURL string, amountCharged float64) error {
	query := `
		UPDATE purchases
		SET status = $2, failure_stage = $3, message = $4, payment_url = $5, amount_charged = $6, updated_at = NOW()
		WHERE id = $1`
	_, err := r.DB.Exec(query, id, status, failureStage, message, paymentURL, amountCharged)
	if err != nil {
		return fmt.Errorf("error updating purchase %d outcome: %w", id, err)
	}
	return nil
}

func (r *PurchaseRepository) GetPurchaseByCode(code string) (*db.Purchase, error) {
	var p db.Purchase
	query := `
		SELECT id, code, resource_kind, resource_id, rail, currency, amount_usd, amount_charged, status, failure_stage, message, payment_url, user_email, user_phone, created_at, updated_at
		FROM purchases WHERE code = $1`
	err := r.DB.QueryRow(query, code).Scan(
		&p.ID, &p.Code, &p.ResourceKind, &p.ResourceID, &p.Rail, &p.Currency, &p.AmountUSD, &p.AmountCharged,
		&p.Status, &p.FailureStage, &p.Message, &p.PaymentURL, &p.UserEmail, &p.UserPhone, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("purchase with code '%s' not found: %w", code, err)
		}
		return nil, fmt.Errorf("error querying purchase: %w", err)
	}
	return &p, nil
}

func (r *PurchaseRepository) ListPurchases(status, rail string) ([]db.Purchase, error) {
	query := `
	SELECT id, code, resource_kind, resource_id, rail, currency, amount_usd, amount_charged, status, failure_stage, message, payment_url, user_email, user_phone, created_at, updated_at
	FROM purchases
	WHERE 1=1`
	args := []interface{}{}
	idx := 1

	if status != "" {
		query += " AND status = $" + strconv.Itoa(idx)
		args = append(args, status)
		idx++
	}
	if rail != "" {
		query += " AND rail = $" + strconv.Itoa(idx)
		args = append(args, rail)
		idx++
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var purchases []db.Purchase
	for rows.Next() {
		var p db.Purchase
		err := rows.Scan(
			&p.ID, &p.Code, &p.ResourceKind, &p.ResourceID, &p.Rail, &p.Currency, &p.AmountUSD, &p.AmountCharged,
			&p.Status, &p.FailureStage, &p.Message, &p.PaymentURL, &p.UserEmail, &p.UserPhone, &p.CreatedAt, &p.UpdatedAt,
		)
		if err == nil {
			purchases = append(purchases, p)
		}
	}
	return purchases, nil
}
