package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-brainstorm/internal/config"
	"github.com/MKhiriev/go-brainstorm/internal/logger"
	"github.com/MKhiriev/go-brainstorm/internal/store"
	"github.com/MKhiriev/go-brainstorm/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(repo store.UserRepository) AuthService {
	svc := NewAuthService(repo, config.App{
		TokenSignKey:  "sign-key",
		TokenIssuer:   "go-brainstorm",
		TokenDuration: time.Hour,
	}, logger.Nop())
	svc.(*authService).hashCost = bcrypt.MinCost
	return svc
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

// ─────────────────────────────────────────────
// RegisterUser
// ─────────────────────────────────────────────

func TestRegisterUser_HashesPasswordAndNormalizesEmail(t *testing.T) {
	var stored models.User
	repo := &mockUserRepository{
		createFn: func(_ context.Context, user models.User) (models.User, error) {
			stored = user
			user.UserID = 42
			return user, nil
		},
	}
	svc := newTestAuthService(repo)

	user, err := svc.RegisterUser(context.Background(), models.User{
		Email:    "  Ann@Example.com ",
		Name:     "Ann",
		Password: "correct horse",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), user.UserID)
	assert.Equal(t, "ann@example.com", stored.Email)
	assert.Empty(t, stored.Password, "plaintext password must not reach the repository")
	require.NotEmpty(t, stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("correct horse")))
}

func TestRegisterUser_EmptyFields_ReturnsInvalidData(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{})

	_, err := svc.RegisterUser(context.Background(), models.User{Email: "", Password: "password"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.RegisterUser(context.Background(), models.User{Email: "a@b.c", Password: ""})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestRegisterUser_DuplicateEmail_WrapsStoreError(t *testing.T) {
	repo := &mockUserRepository{
		createFn: func(context.Context, models.User) (models.User, error) {
			return models.User{}, store.ErrEmailAlreadyExists
		},
	}
	svc := newTestAuthService(repo)

	_, err := svc.RegisterUser(context.Background(), models.User{Email: "a@b.c", Password: "password1"})

	assert.ErrorIs(t, err, store.ErrEmailAlreadyExists)
}

// ─────────────────────────────────────────────
// Login
// ─────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	hash := hashed(t, "password1")
	repo := &mockUserRepository{
		findByEmailFn: func(_ context.Context, email string) (models.User, error) {
			assert.Equal(t, "ann@example.com", email)
			return models.User{UserID: 7, Email: email, PasswordHash: hash}, nil
		},
	}
	svc := newTestAuthService(repo)

	user, err := svc.Login(context.Background(), models.User{Email: "ANN@example.com", Password: "password1"})

	require.NoError(t, err)
	assert.Equal(t, int64(7), user.UserID)
	assert.Empty(t, user.PasswordHash)
}

func TestLogin_WrongPassword(t *testing.T) {
	hash := hashed(t, "password1")
	repo := &mockUserRepository{
		findByEmailFn: func(context.Context, string) (models.User, error) {
			return models.User{UserID: 7, PasswordHash: hash}, nil
		},
	}
	svc := newTestAuthService(repo)

	_, err := svc.Login(context.Background(), models.User{Email: "a@b.c", Password: "password2"})

	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestLogin_UnknownEmail_LooksLikeWrongPassword(t *testing.T) {
	repo := &mockUserRepository{
		findByEmailFn: func(context.Context, string) (models.User, error) {
			return models.User{}, store.ErrNoUserWasFound
		},
	}
	svc := newTestAuthService(repo)

	_, err := svc.Login(context.Background(), models.User{Email: "a@b.c", Password: "password1"})

	assert.ErrorIs(t, err, ErrWrongPassword)
	assert.NotErrorIs(t, err, store.ErrNoUserWasFound)
}

func TestLogin_RepositoryFailure_IsWrapped(t *testing.T) {
	dbErr := errors.New("connection reset")
	repo := &mockUserRepository{
		findByEmailFn: func(context.Context, string) (models.User, error) {
			return models.User{}, dbErr
		},
	}
	svc := newTestAuthService(repo)

	_, err := svc.Login(context.Background(), models.User{Email: "a@b.c", Password: "password1"})

	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, ErrWrongPassword)
}

// ─────────────────────────────────────────────
// CreateToken / ParseToken
// ─────────────────────────────────────────────

func TestCreateAndParseToken_RoundTrip(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{})

	token, err := svc.CreateToken(context.Background(), models.User{UserID: 99})
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	parsed, err := svc.ParseToken(context.Background(), token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, int64(99), parsed.UserID)
}

func TestParseToken_Invalid(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{})

	_, err := svc.ParseToken(context.Background(), "not-a-jwt")

	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestParseToken_OtherIssuer(t *testing.T) {
	other := NewAuthService(&mockUserRepository{}, config.App{
		TokenSignKey:  "sign-key",
		TokenIssuer:   "someone-else",
		TokenDuration: time.Hour,
	}, logger.Nop())
	token, err := other.CreateToken(context.Background(), models.User{UserID: 1})
	require.NoError(t, err)

	_, err = newTestAuthService(&mockUserRepository{}).ParseToken(context.Background(), token.SignedString)

	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}
