package student

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

func TestCreateAndGetStudent(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	ctx := context.Background()
	now := time.Now()
	cols := []string{"id", "user_id", "name", "school_level", "created_at"}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO students (user_id, name, school_level) VALUES ($1, $2, $3) RETURNING id, user_id, name, school_level, created_at")).
		WithArgs(1, "Aiko", "elementary").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(5, 1, "Aiko", "elementary", now))

	s, err := repo.Create(ctx, 1, "Aiko", "elementary")
	require.NoError(t, err)
	require.Equal(t, 5, s.ID)
	require.Equal(t, "elementary", s.SchoolLevel)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, name, school_level, created_at FROM students WHERE id = $1")).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(5, 1, "Aiko", "elementary", now))

	got, err := repo.GetByID(ctx, 5)
	require.NoError(t, err)
	require.Equal(t, 1, got.UserID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByUser(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	ctx := context.Background()
	now := time.Now()
	cols := []string{"id", "user_id", "name", "school_level", "created_at"}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, name, school_level, created_at FROM students WHERE user_id = $1 ORDER BY created_at ASC")).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(5, 1, "Aiko", "elementary", now).
			AddRow(6, 1, "Kenta", "middle", now))

	students, err := repo.GetByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, students, 2)
	require.Equal(t, "Kenta", students[1].Name)

	require.NoError(t, mock.ExpectationsWereMet())
}
