package services

import (
	"context"
	"testing"
	"time"

	"job-tracker-api/internal/models"
	"job-tracker-api/internal/transport/dto"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newUserService(t *testing.T, env *testEnv, revoked *memoryRevocations) *userService {
	t.Helper()
	var svc UserService
	if revoked == nil {
		svc = NewUserService(env.users, nil, NewValidator(), testSecret, time.Hour)
	} else {
		svc = NewUserService(env.users, revoked, NewValidator(), testSecret, time.Hour)
	}
	us := svc.(*userService)
	us.now = env.clock.Now
	return us
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	svc := newUserService(t, env, nil)
	ctx := context.Background()

	resp, err := svc.Register(ctx, &dto.RegisterRequest{
		FullName: " Jane Doe ",
		Email:    "Jane@Example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "jane@example.com", resp.User.Email)
	assert.Equal(t, "Jane Doe", resp.User.FullName)
	assert.Equal(t, models.RoleApplicant, resp.User.Role)
	assert.NotEqual(t, "secret123", resp.User.PasswordHash)

	claims, err := svc.VerifyToken(ctx, resp.Token)
	require.NoError(t, err)
	userID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, userID)
	assert.Equal(t, models.RoleApplicant, claims.Role)

	login, err := svc.Login(ctx, &dto.LoginRequest{Email: "JANE@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)

	me, err := svc.Me(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", me.Email)

	_, err = svc.Register(ctx, &dto.RegisterRequest{FullName: "Other", Email: "jane@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRegister_Validation(t *testing.T) {
	env := newTestEnv(t)
	svc := newUserService(t, env, nil)

	tests := []struct {
		name      string
		req       dto.RegisterRequest
		wantField string
	}{
		{"missing name", dto.RegisterRequest{Email: "a@b.co", Password: "secret123"}, "fullName"},
		{"bad email", dto.RegisterRequest{FullName: "A", Email: "nope", Password: "secret123"}, "email"},
		{"short password", dto.RegisterRequest{FullName: "A", Email: "a@b.co", Password: "123"}, "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), &tt.req)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantField, vErr.Field)
		})
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	env := newTestEnv(t)
	svc := newUserService(t, env, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{FullName: "Jane", Email: "jane@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "jane@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "ghost@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyToken_Rejects(t *testing.T) {
	env := newTestEnv(t)
	svc := newUserService(t, env, nil)
	ctx := context.Background()

	resp, err := svc.Register(ctx, &dto.RegisterRequest{FullName: "Jane", Email: "jane@example.com", Password: "secret123"})
	require.NoError(t, err)

	t.Run("expired", func(t *testing.T) {
		expired := newUserService(t, env, nil)
		expired.now = func() time.Time { return env.clock.Now().Add(2 * time.Hour) }
		_, err := expired.VerifyToken(ctx, resp.Token)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := newUserService(t, env, nil)
		other.jwtSecret = []byte("another-secret")
		_, err := other.VerifyToken(ctx, resp.Token)
		assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
	})

	t.Run("subject is not a user id", func(t *testing.T) {
		token := signTestToken(t, jwt.RegisteredClaims{
			Subject:   "not-a-uuid",
			ExpiresAt: jwt.NewNumericDate(env.clock.Now().Add(time.Hour)),
		})
		_, err := svc.VerifyToken(ctx, token)
		assert.ErrorIs(t, err, jwt.ErrTokenInvalidSubject)
	})

	t.Run("missing expiry", func(t *testing.T) {
		token := signTestToken(t, jwt.RegisteredClaims{Subject: uuid.NewString()})
		_, err := svc.VerifyToken(ctx, token)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.VerifyToken(ctx, "not.a.token")
		assert.Error(t, err)
	})
}

func signTestToken(t *testing.T, registered jwt.RegisteredClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &SessionClaims{
		Role:             models.RoleApplicant,
		RegisteredClaims: registered,
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func TestLogout_RevokesToken(t *testing.T) {
	env := newTestEnv(t)
	revoked := &memoryRevocations{}
	svc := newUserService(t, env, revoked)
	ctx := context.Background()

	resp, err := svc.Register(ctx, &dto.RegisterRequest{FullName: "Jane", Email: "jane@example.com", Password: "secret123"})
	require.NoError(t, err)

	claims, err := svc.VerifyToken(ctx, resp.Token)
	require.NoError(t, err)

	env.clock.Advance(15 * time.Minute)
	require.NoError(t, svc.Logout(ctx, claims))
	assert.Equal(t, 45*time.Minute, revoked.revoked[claims.ID])

	_, err = svc.VerifyToken(ctx, resp.Token)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestEnsureAdmin(t *testing.T) {
	env := newTestEnv(t)
	svc := newUserService(t, env, nil)
	ctx := context.Background()

	require.NoError(t, svc.EnsureAdmin(ctx, "Admin@Example.com", "admin-pass", "Admin"))
	require.NoError(t, svc.EnsureAdmin(ctx, "admin@example.com", "other-pass", "Admin"))

	resp, err := svc.Login(ctx, &dto.LoginRequest{Email: "admin@example.com", Password: "admin-pass"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, resp.User.Role)

	claims, err := svc.VerifyToken(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}
