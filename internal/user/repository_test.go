package user

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

	closer := func() {
		sqlxDB.Close()
	}

	return repo, mock, closer
}

func TestCreateAndFindUser(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	ctx := context.Background()
	now := time.Now()

	userCols := []string{"id", "name", "email", "password_hash", "role", "created_at"}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users (name, email, password_hash, role) VALUES ($1, $2, $3, $4) RETURNING id, name, email, password_hash, role, created_at")).
		WithArgs("Parent One", "parent@example.com", "hash", "parent").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(1, "Parent One", "parent@example.com", "hash", "parent", now))

	u, err := repo.Create(ctx, "Parent One", "parent@example.com", "hash", "parent")
	require.NoError(t, err)
	require.Equal(t, 1, u.ID)
	require.Equal(t, "parent", u.Role)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, email, password_hash, role, created_at FROM users WHERE email = $1")).
		WithArgs("parent@example.com").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(1, "Parent One", "parent@example.com", "hash", "parent", now))

	got, err := repo.FindByEmail(ctx, "parent@example.com")
	require.NoError(t, err)
	require.Equal(t, 1, got.ID)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, email, password_hash, role, created_at FROM users WHERE id = $1")).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(1, "Parent One", "parent@example.com", "hash", "parent", now))

	got, err = repo.FindByID(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "parent@example.com", got.Email)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEmailExists(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)")).
		WithArgs("taken@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.EmailExists(ctx, "taken@example.com")
	require.NoError(t, err)
	require.True(t, exists)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)")).
		WithArgs("free@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	exists, err = repo.EmailExists(ctx, "free@example.com")
	require.NoError(t, err)
	require.False(t, exists)

	require.NoError(t, mock.ExpectationsWereMet())
}
