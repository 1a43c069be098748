package store

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-brainstorm/internal/logger"
	"github.com/MKhiriev/go-brainstorm/models"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userColumns = []string{"user_id", "email", "name", "password_hash", "created_at"}

func TestCreateUser_Success(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, logger.Nop())
	now := time.Now()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("ann@example.com", "Ann", "hash").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(1, "ann@example.com", "Ann", "hash", now))

	created, err := repo.CreateUser(testContext(), models.User{Email: "ann@example.com", Name: "Ann", PasswordHash: "hash"})

	require.NoError(t, err)
	assert.Equal(t, int64(1), created.UserID)
	assert.Equal(t, "ann@example.com", created.Email)
	assert.Equal(t, now, created.CreatedAt)
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, logger.Nop())

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(testContext(), models.User{Email: "ann@example.com"})

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestCreateUser_UnexpectedError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, logger.Nop())

	mock.ExpectQuery("INSERT INTO users").WillReturnError(errors.New("conn reset"))

	_, err := repo.CreateUser(testContext(), models.User{Email: "ann@example.com"})

	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestFindUserByEmail(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db, logger.Nop())

		mock.ExpectQuery("SELECT user_id, email, name, password_hash, created_at").
			WithArgs("ann@example.com").
			WillReturnRows(sqlmock.NewRows(userColumns).AddRow(3, "ann@example.com", "Ann", "hash", time.Now()))

		user, err := repo.FindUserByEmail(testContext(), "ann@example.com")

		require.NoError(t, err)
		assert.Equal(t, int64(3), user.UserID)
		assert.Equal(t, "hash", user.PasswordHash)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db, logger.Nop())

		mock.ExpectQuery("SELECT user_id").
			WithArgs("nobody@example.com").
			WillReturnRows(sqlmock.NewRows(userColumns))

		_, err := repo.FindUserByEmail(testContext(), "nobody@example.com")

		assert.ErrorIs(t, err, ErrNoUserWasFound)
	})

	t.Run("db error", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db, logger.Nop())

		mock.ExpectQuery("SELECT user_id").WillReturnError(errors.New("boom"))

		_, err := repo.FindUserByEmail(testContext(), "ann@example.com")

		assert.ErrorIs(t, err, ErrExecutingQuery)
	})
}
