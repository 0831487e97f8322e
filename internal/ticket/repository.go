package ticket

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var (
	ErrInsufficientTickets = errors.New("insufficient tickets")
	ErrStudentNotFound     = errors.New("student not found")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) BalanceForStudent(ctx context.Context, studentID int) (int, error) {
	query := `SELECT COALESCE(SUM(quantity), 0) FROM ticket_entries WHERE student_id = $1`

	var balance int
	err := r.db.GetContext(ctx, &balance, query, studentID)
	if err != nil {
		return 0, err
	}

	return balance, nil
}

// BalanceForAccount is the derived account-level view: the sum over every
// entry billed to the parent. There is no stored account counter.
func (r *repository) BalanceForAccount(ctx context.Context, userID int) (int, error) {
	query := `SELECT COALESCE(SUM(quantity), 0) FROM ticket_entries WHERE user_id = $1`

	var balance int
	err := r.db.GetContext(ctx, &balance, query, userID)
	if err != nil {
		return 0, err
	}

	return balance, nil
}

// lockStudentBalance takes a row lock on the student and returns the current
// balance, so concurrent debits serialize.
func lockStudentBalance(ctx context.Context, tx *sqlx.Tx, studentID int) (int, error) {
	var id int
	err := tx.GetContext(ctx, &id, `SELECT id FROM students WHERE id = $1 FOR UPDATE`, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrStudentNotFound
		}
		return 0, err
	}

	var balance int
	err = tx.GetContext(ctx, &balance,
		`SELECT COALESCE(SUM(quantity), 0) FROM ticket_entries WHERE student_id = $1`, studentID)
	if err != nil {
		return 0, err
	}

	return balance, nil
}

func (r *repository) Add(ctx context.Context, studentID, userID, quantity int, reason string) (*Entry, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	balance, err := lockStudentBalance(ctx, tx, studentID)
	if err != nil {
		return nil, err
	}

	if balance+quantity < 0 {
		return nil, ErrInsufficientTickets
	}

	var entry Entry
	err = tx.QueryRowxContext(ctx,
		`INSERT INTO ticket_entries (student_id, user_id, quantity, reason)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, student_id, user_id, quantity, reason, booking_id, payment_id, created_at`,
		studentID, userID, quantity, reason,
	).StructScan(&entry)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &entry, nil
}

// Reset inserts a compensating entry bringing the student's balance to an
// exact target. History stays intact.
func (r *repository) Reset(ctx context.Context, studentID, userID, targetBalance int) (*Entry, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	balance, err := lockStudentBalance(ctx, tx, studentID)
	if err != nil {
		return nil, err
	}

	delta := targetBalance - balance

	var entry Entry
	err = tx.QueryRowxContext(ctx,
		`INSERT INTO ticket_entries (student_id, user_id, quantity, reason)
		 VALUES ($1, $2, $3, 'reset')
		 RETURNING id, student_id, user_id, quantity, reason, booking_id, payment_id, created_at`,
		studentID, userID, delta,
	).StructScan(&entry)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &entry, nil
}

func (r *repository) Purchase(ctx context.Context, p PurchaseParams) (*PaymentTransaction, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := lockStudentBalance(ctx, tx, p.StudentID); err != nil {
		return nil, err
	}

	paymentID := uuid.New().String()

	var payment PaymentTransaction
	err = tx.QueryRowxContext(ctx,
		`INSERT INTO payment_transactions (id, user_id, student_id, amount_cents, ticket_count, provider_order_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, user_id, student_id, amount_cents, ticket_count, provider, provider_order_id, status, created_at`,
		paymentID, p.UserID, p.StudentID, p.AmountCents, p.TicketCount, p.ProviderOrderID,
	).StructScan(&payment)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO ticket_entries (student_id, user_id, quantity, reason, payment_id)
		 VALUES ($1, $2, $3, 'purchase', $4)`,
		p.StudentID, p.UserID, p.TicketCount, paymentID,
	)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &payment, nil
}

func (r *repository) GetEntries(ctx context.Context, userID, limit, offset int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}

	var entries []Entry
	err := r.db.SelectContext(ctx, &entries, `
		SELECT id, student_id, user_id, quantity, reason, booking_id, payment_id, created_at
		FROM ticket_entries
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	return entries, nil
}
