package service

import (
	"context"
	"testing"
	"time"

	"egym/plan-service/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const authTestSecret = "auth-test-secret"

func newAuthService(userRepo repository.UserRepository) AuthService {
	return NewAuthService(userRepo, authTestSecret, time.Hour)
}

func TestRegisterStoresHashedPassword(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newAuthService(userRepo)

	user, err := svc.Register(context.Background(), "Alex", "alex@example.com", "hunter2secret")
	require.NoError(t, err)
	require.NotNil(t, user)

	// The returned object never carries the hash.
	assert.Empty(t, user.PasswordHash)

	// The stored record carries a bcrypt hash, not the plaintext.
	stored, err := userRepo.GetByEmail(context.Background(), "alex@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, stored.PasswordHash)
	assert.NotEqual(t, "hunter2secret", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("hunter2secret")))
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newAuthService(userRepo)

	_, err := svc.Register(context.Background(), "Alex", "alex@example.com", "hunter2secret")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "Other Alex", "alex@example.com", "different-pass")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestRegisterMapsInsertRaceToDuplicate(t *testing.T) {
	// The existence check passes but the unique index rejects the insert.
	userRepo := newFakeUserRepo()
	userRepo.createErr = repository.ErrDuplicateEmail
	svc := newAuthService(userRepo)

	_, err := svc.Register(context.Background(), "Alex", "alex@example.com", "hunter2secret")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestRegisterRejectsEmptyFields(t *testing.T) {
	svc := newAuthService(newFakeUserRepo())

	_, err := svc.Register(context.Background(), "", "alex@example.com", "hunter2secret")
	assert.Error(t, err)
	_, err = svc.Register(context.Background(), "Alex", "", "hunter2secret")
	assert.Error(t, err)
	_, err = svc.Register(context.Background(), "Alex", "alex@example.com", "")
	assert.Error(t, err)
}

func TestLoginIssuesTokenForValidCredentials(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newAuthService(userRepo)

	registered, err := svc.Register(context.Background(), "Alex", "alex@example.com", "hunter2secret")
	require.NoError(t, err)

	token, user, err := svc.Login(context.Background(), "alex@example.com", "hunter2secret")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, registered.ID, user.ID)
	assert.Empty(t, user.PasswordHash)

	// The token verifies against the service secret and carries the user ID.
	claims := &jwtClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(tok *jwt.Token) (interface{}, error) {
		return []byte(authTestSecret), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, registered.ID.Hex(), claims.UserID)
	assert.Equal(t, registered.ID.Hex(), claims.Subject)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc := newAuthService(newFakeUserRepo())

	_, err := svc.Register(context.Background(), "Alex", "alex@example.com", "hunter2secret")
	require.NoError(t, err)

	token, user, err := svc.Login(context.Background(), "alex@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
	assert.Empty(t, token)
	assert.Nil(t, user)
}

func TestLoginRejectsUnknownEmail(t *testing.T) {
	svc := newAuthService(newFakeUserRepo())

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "whatever-pass")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}
