package ticket

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func setupMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	return repo, mock, func() { sqlxDB.Close() }
}

var entryCols = []string{"id", "student_id", "user_id", "quantity", "reason", "booking_id", "payment_id", "created_at"}

func expectStudentLock(mock sqlmock.Sqlmock, studentID, balance int) {
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM students WHERE id = $1 FOR UPDATE")).
		WithArgs(studentID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(studentID))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(SUM(quantity), 0) FROM ticket_entries WHERE student_id = $1")).
		WithArgs(studentID).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(balance))
}

func TestBalanceForStudent(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(SUM(quantity), 0) FROM ticket_entries WHERE student_id = $1")).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(3))

	balance, err := repo.BalanceForStudent(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, 3, balance)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddCredit(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()

	mock.ExpectBegin()
	expectStudentLock(mock, 5, 0)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO ticket_entries (student_id, user_id, quantity, reason) VALUES ($1, $2, $3, $4) RETURNING id, student_id, user_id, quantity, reason, booking_id, payment_id, created_at")).
		WithArgs(5, 1, 4, "topup").
		WillReturnRows(sqlmock.NewRows(entryCols).AddRow(20, 5, 1, 4, "topup", nil, nil, now))
	mock.ExpectCommit()

	entry, err := repo.Add(context.Background(), 5, 1, 4, "topup")
	require.NoError(t, err)
	require.Equal(t, 4, entry.Quantity)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddDebitRejectedWhenInsufficient(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectBegin()
	expectStudentLock(mock, 5, 0)
	mock.ExpectRollback()

	_, err := repo.Add(context.Background(), 5, 1, -1, "booking")
	require.ErrorIs(t, err, ErrInsufficientTickets)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddUnknownStudent(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM students WHERE id = $1 FOR UPDATE")).
		WithArgs(404).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := repo.Add(context.Background(), 404, 1, 1, "topup")
	require.ErrorIs(t, err, ErrStudentNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResetInsertsCompensatingEntry(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()

	mock.ExpectBegin()
	expectStudentLock(mock, 5, 7)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO ticket_entries (student_id, user_id, quantity, reason) VALUES ($1, $2, $3, 'reset') RETURNING id, student_id, user_id, quantity, reason, booking_id, payment_id, created_at")).
		WithArgs(5, 1, -5).
		WillReturnRows(sqlmock.NewRows(entryCols).AddRow(21, 5, 1, -5, "reset", nil, nil, now))
	mock.ExpectCommit()

	entry, err := repo.Reset(context.Background(), 5, 1, 2)
	require.NoError(t, err)
	require.Equal(t, -5, entry.Quantity)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPurchase(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()
	paymentCols := []string{"id", "user_id", "student_id", "amount_cents", "ticket_count", "provider", "provider_order_id", "status", "created_at"}

	mock.ExpectBegin()
	expectStudentLock(mock, 5, 0)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO payment_transactions (id, user_id, student_id, amount_cents, ticket_count, provider_order_id) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, user_id, student_id, amount_cents, ticket_count, provider, provider_order_id, status, created_at")).
		WithArgs(sqlmock.AnyArg(), 1, 5, int64(440000), 4, "PAYPAL-ORDER-123").
		WillReturnRows(sqlmock.NewRows(paymentCols).
			AddRow("9a2f1b7e-0000-0000-0000-000000000000", 1, 5, int64(440000), 4, "paypal", "PAYPAL-ORDER-123", "captured", now))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO ticket_entries (student_id, user_id, quantity, reason, payment_id) VALUES ($1, $2, $3, 'purchase', $4)")).
		WithArgs(5, 1, 4, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	payment, err := repo.Purchase(context.Background(), PurchaseParams{
		UserID:          1,
		StudentID:       5,
		AmountCents:     440000,
		TicketCount:     4,
		ProviderOrderID: "PAYPAL-ORDER-123",
	})
	require.NoError(t, err)
	require.Equal(t, "paypal", payment.Provider)
	require.Equal(t, 4, payment.TicketCount)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetEntriesDefaultLimit(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, student_id, user_id, quantity, reason, booking_id, payment_id, created_at FROM ticket_entries WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3")).
		WithArgs(1, 50, 0).
		WillReturnRows(sqlmock.NewRows(entryCols).
			AddRow(20, 5, 1, 4, "topup", nil, nil, now).
			AddRow(21, 5, 1, -1, "booking", 30, nil, now))

	entries, err := repo.GetEntries(context.Background(), 1, 0, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "booking", entries[1].Reason)

	require.NoError(t, mock.ExpectationsWereMet())
}
