package tutor

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

var shiftCols = []string{"id", "tutor_id", "date", "time_slot", "subject_tag", "is_available", "created_at"}

func TestUpsertShift(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	ctx := context.Background()
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO tutor_shifts (tutor_id, date, time_slot, subject_tag, is_available) VALUES ($1, $2, $3, $4, $5) ON CONFLICT (tutor_id, date, time_slot) DO UPDATE SET subject_tag = EXCLUDED.subject_tag, is_available = EXCLUDED.is_available RETURNING id, tutor_id, date::text AS date, time_slot, subject_tag, is_available, created_at")).
		WithArgs(2, "2025-05-01", "16:00-17:30", "middle:math", true).
		WillReturnRows(sqlmock.NewRows(shiftCols).AddRow(9, 2, "2025-05-01", "16:00-17:30", "middle:math", true, now))

	shift, err := repo.UpsertShift(ctx, 2, "2025-05-01", "16:00-17:30", "middle:math", true)
	require.NoError(t, err)
	require.Equal(t, 9, shift.ID)
	require.True(t, shift.IsAvailable)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetShiftByID(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	ctx := context.Background()
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, tutor_id, date::text AS date, time_slot, subject_tag, is_available, created_at FROM tutor_shifts WHERE id = $1")).
		WithArgs(9).
		WillReturnRows(sqlmock.NewRows(shiftCols).AddRow(9, 2, "2025-05-01", "16:00-17:30", "middle:math", false, now))

	shift, err := repo.GetShiftByID(ctx, 9)
	require.NoError(t, err)
	require.Equal(t, "2025-05-01", shift.Date)
	require.False(t, shift.IsAvailable)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindOpenShifts(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	ctx := context.Background()
	now := time.Now()

	cols := append(append([]string{}, shiftCols...), "tutor_name", "tutor_subjects")

	mock.ExpectQuery(regexp.QuoteMeta("WHERE s.date = $1 AND s.time_slot = $2 AND s.is_available = TRUE")).
		WithArgs("2025-05-01", "16:00-17:30").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(9, 2, "2025-05-01", "16:00-17:30", "middle:math", true, now, "Sato", "middle:math,high:math").
			AddRow(11, 3, "2025-05-01", "16:00-17:30", "", true, now, "Tanaka", "elementary:science"))

	shifts, err := repo.FindOpenShifts(ctx, "2025-05-01", "16:00-17:30")
	require.NoError(t, err)
	require.Len(t, shifts, 2)
	require.Equal(t, "Sato", shifts[0].TutorName)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTutorByUserID(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	ctx := context.Background()
	now := time.Now()
	userID := 4

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, name, subjects, created_at FROM tutors WHERE user_id = $1")).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "subjects", "created_at"}).
			AddRow(2, userID, "Sato", "middle:math", now))

	tutor, err := repo.GetTutorByUserID(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, 2, tutor.ID)
	require.NotNil(t, tutor.UserID)
	require.Equal(t, userID, *tutor.UserID)

	require.NoError(t, mock.ExpectationsWereMet())
}
