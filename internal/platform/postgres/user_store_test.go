package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/draftwise/draftwise-api/internal/domain"
	"github.com/draftwise/draftwise-api/internal/store"
)

func TestUserStoreCreateHashesPassword(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	user, err := domain.NewUser("writer@example.com", "a-long-enough-password")
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO users").
		WillReturnResult(sqlmock.NewResult(0, 1))

	s := NewPostgresUserStore(db, bcrypt.MinCost, nil)
	require.NoError(t, s.Create(context.Background(), user))

	assert.Empty(t, user.Password, "plaintext password must be cleared after hashing")
	assert.NoError(t,
		bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte("a-long-enough-password")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStoreCreateDuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	user, err := domain.NewUser("writer@example.com", "a-long-enough-password")
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	s := NewPostgresUserStore(db, bcrypt.MinCost, nil)
	err = s.Create(context.Background(), user)

	assert.ErrorIs(t, err, store.ErrEmailExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStoreGetByEmailNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
		WithArgs("missing@example.com").
		WillReturnError(sql.ErrNoRows)

	s := NewPostgresUserStore(db, bcrypt.MinCost, nil)
	_, err = s.GetByEmail(context.Background(), "missing@example.com")

	assert.ErrorIs(t, err, store.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStoreGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	user, err := domain.NewUser("writer@example.com", "a-long-enough-password")
	require.NoError(t, err)
	user.HashedPassword = "$2a$04$fakefakefakefakefakefake"

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WithArgs(user.ID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "hashed_password", "created_at", "updated_at"}).
			AddRow(user.ID, user.Email, user.HashedPassword, user.CreatedAt, user.UpdatedAt))

	s := NewPostgresUserStore(db, bcrypt.MinCost, nil)
	got, err := s.GetByID(context.Background(), user.ID)

	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)
	assert.Empty(t, got.Password)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStoreDeleteNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectExec("DELETE FROM users").
		WillReturnResult(sqlmock.NewResult(0, 0))

	s := NewPostgresUserStore(db, bcrypt.MinCost, nil)
	err = s.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, store.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
