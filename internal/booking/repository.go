package booking

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var (
	ErrShiftNotFound                     = errors.New("shift not found")
	ErrShiftUnavailable                  = errors.New("shift unavailable")
	ErrDuplicateBooking                  = errors.New("duplicate booking for student, date and time slot")
	ErrInsufficientTickets               = errors.New("insufficient tickets")
	ErrBookingNotFoundOrAlreadyCancelled = errors.New("booking not found or already cancelled")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

type shiftRow struct {
	ID          int    `db:"id"`
	TutorID     int    `db:"tutor_id"`
	Date        string `db:"date"`
	TimeSlot    string `db:"time_slot"`
	IsAvailable bool   `db:"is_available"`
}

// Reserve runs the whole booking sequence in one transaction: shift
// validation, duplicate check, ticket balance guard, shift flip, booking
// insert and ticket debit. A failure at any step leaves no partial writes.
func (r *repository) Reserve(ctx context.Context, p ReserveParams) (*Booking, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var shift shiftRow
	err = tx.GetContext(ctx, &shift, `
		SELECT id, tutor_id, date::text AS date, time_slot, is_available
		FROM tutor_shifts
		WHERE id = $1
		FOR UPDATE
	`, p.ShiftID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShiftNotFound
		}
		return nil, err
	}

	if shift.TutorID != p.TutorID || !shift.IsAvailable {
		return nil, ErrShiftUnavailable
	}

	var duplicate bool
	err = tx.GetContext(ctx, &duplicate, `
		SELECT EXISTS(
			SELECT 1 FROM bookings
			WHERE student_id = $1 AND date = $2 AND time_slot = $3 AND status = 'confirmed'
		)
	`, p.StudentID, shift.Date, shift.TimeSlot)
	if err != nil {
		return nil, err
	}
	if duplicate {
		return nil, ErrDuplicateBooking
	}

	var balance int
	err = tx.GetContext(ctx, &balance,
		`SELECT COALESCE(SUM(quantity), 0) FROM ticket_entries WHERE student_id = $1`, p.StudentID)
	if err != nil {
		return nil, err
	}
	if balance < 1 {
		return nil, ErrInsufficientTickets
	}

	// CAS on the availability flag so two concurrent requests for the same
	// shift cannot both reserve it.
	result, err := tx.ExecContext(ctx,
		`UPDATE tutor_shifts SET is_available = FALSE WHERE id = $1 AND is_available = TRUE`, p.ShiftID)
	if err != nil {
		return nil, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rowsAffected == 0 {
		return nil, ErrShiftUnavailable
	}

	var booking Booking
	err = tx.QueryRowxContext(ctx, `
		INSERT INTO bookings (user_id, student_id, tutor_id, shift_id, date, time_slot, subject, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 'confirmed')
		RETURNING id, user_id, student_id, tutor_id, shift_id, date::text AS date, time_slot, subject, status, created_at
	`, p.UserID, p.StudentID, p.TutorID, p.ShiftID, shift.Date, shift.TimeSlot, p.Subject).StructScan(&booking)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO ticket_entries (student_id, user_id, quantity, reason, booking_id)
		VALUES ($1, $2, -1, 'booking', $3)
	`, p.StudentID, p.UserID, booking.ID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &booking, nil
}

// CancelWithRefund flips the booking to cancelled, credits one ticket back
// and re-opens the shift, all in one transaction. The row is kept for audit.
func (r *repository) CancelWithRefund(ctx context.Context, bookingID int) (*Booking, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var booking Booking
	err = tx.QueryRowxContext(ctx, `
		UPDATE bookings
		SET status = 'cancelled'
		WHERE id = $1 AND status = 'confirmed'
		RETURNING id, user_id, student_id, tutor_id, shift_id, date::text AS date, time_slot, subject, status, created_at
	`, bookingID).StructScan(&booking)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFoundOrAlreadyCancelled
		}
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO ticket_entries (student_id, user_id, quantity, reason, booking_id)
		VALUES ($1, $2, 1, 'refund', $3)
	`, booking.StudentID, booking.UserID, booking.ID)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE tutor_shifts SET is_available = TRUE WHERE id = $1`, booking.ShiftID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &booking, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Booking, error) {
	query := `
		SELECT id, user_id, student_id, tutor_id, shift_id, date::text AS date, time_slot, subject, status, created_at
		FROM bookings
		WHERE id = $1
	`

	var booking Booking
	err := r.db.GetContext(ctx, &booking, query, id)
	if err != nil {
		return nil, err
	}

	return &booking, nil
}

func (r *repository) GetDetailByID(ctx context.Context, id int) (*BookingWithDetails, error) {
	query := `
		SELECT
			b.id,
			b.user_id,
			b.student_id,
			b.tutor_id,
			b.shift_id,
			b.date::text AS date,
			b.time_slot,
			b.subject,
			b.status,
			b.created_at,
			s.name AS student_name,
			t.name AS tutor_name,
			COALESCE(lr.status, 'pending') AS report_status,
			COALESCE(lr.content, '') AS report_content
		FROM bookings b
		JOIN students s ON b.student_id = s.id
		JOIN tutors t ON b.tutor_id = t.id
		LEFT JOIN lesson_reports lr ON lr.booking_id = b.id
		WHERE b.id = $1
	`

	var booking BookingWithDetails
	err := r.db.GetContext(ctx, &booking, query, id)
	if err != nil {
		return nil, err
	}

	return &booking, nil
}

func (r *repository) GetByUser(ctx context.Context, userID int) ([]BookingWithDetails, error) {
	query := `
		SELECT
			b.id,
			b.user_id,
			b.student_id,
			b.tutor_id,
			b.shift_id,
			b.date::text AS date,
			b.time_slot,
			b.subject,
			b.status,
			b.created_at,
			s.name AS student_name,
			t.name AS tutor_name,
			COALESCE(lr.status, 'pending') AS report_status,
			COALESCE(lr.content, '') AS report_content
		FROM bookings b
		JOIN students s ON b.student_id = s.id
		JOIN tutors t ON b.tutor_id = t.id
		LEFT JOIN lesson_reports lr ON lr.booking_id = b.id
		WHERE b.user_id = $1
		ORDER BY b.date DESC, b.time_slot ASC
	`

	var bookings []BookingWithDetails
	err := r.db.SelectContext(ctx, &bookings, query, userID)
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) SaveReport(ctx context.Context, bookingID int, content string) error {
	query := `
		INSERT INTO lesson_reports (booking_id, status, content)
		VALUES ($1, 'completed', $2)
		ON CONFLICT (booking_id)
		DO UPDATE SET status = 'completed', content = EXCLUDED.content, updated_at = NOW()
	`

	_, err := r.db.ExecContext(ctx, query, bookingID, content)
	return err
}
