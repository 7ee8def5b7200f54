package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"marketplace-api/internal/models"
	"marketplace-api/internal/repository"
	"marketplace-api/internal/token"
)

func newAuthService(t *testing.T) (AuthService, repository.UserRepository) {
	t.Helper()
	users := repository.NewMemoryUserRepo()
	tm := token.NewManager("test-access", "test-refresh", time.Minute, time.Hour)
	svc := NewAuthService(users, tm, bcrypt.MinCost, zap.NewNop().Sugar())
	return svc, users
}

func register(t *testing.T, svc AuthService, email string, role models.Role) *models.User {
	t.Helper()
	u, err := svc.Register(context.Background(), RegisterInput{
		Email:     email,
		Password:  "secret1",
		FirstName: "A",
		LastName:  "B",
		Role:      role,
	})
	require.NoError(t, err)
	return u
}

func TestRegisterReturnsSanitizedUser(t *testing.T) {
	svc, _ := newAuthService(t)

	u := register(t, svc, "a@x.com", models.RoleVendor)
	assert.Equal(t, "a@x.com", u.Email)
	assert.Equal(t, models.RoleVendor, u.Role)
	assert.Empty(t, u.PasswordHash)
	assert.Nil(t, u.RefreshTokens)
	assert.False(t, u.ID.IsZero())
}

func TestRegisterNormalizesEmail(t *testing.T) {
	svc, _ := newAuthService(t)

	u := register(t, svc, "  MiXeD@X.CoM ", models.RoleCustomer)
	assert.Equal(t, "mixed@x.com", u.Email)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(t)

	register(t, svc, "a@x.com", models.RoleCustomer)
	_, err := svc.Register(context.Background(), RegisterInput{
		Email: "a@x.com", Password: "secret1", FirstName: "A", LastName: "B", Role: models.RoleVendor,
	})
	assert.ErrorIs(t, err, ErrDuplicateUser)
}

func TestRegisterSecondAdminRejected(t *testing.T) {
	svc, _ := newAuthService(t)

	register(t, svc, "admin@x.com", models.RoleAdmin)
	_, err := svc.Register(context.Background(), RegisterInput{
		Email: "other@x.com", Password: "secret1", FirstName: "A", LastName: "B", Role: models.RoleAdmin,
	})
	assert.ErrorIs(t, err, ErrAdminLimit)
}

func TestLoginSuccessIssuesTokensAndPersistsRefresh(t *testing.T) {
	svc, users := newAuthService(t)
	reg := register(t, svc, "a@x.com", models.RoleVendor)

	u, tokens, err := svc.Login(context.Background(), "a@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, reg.ID, u.ID)
	assert.Empty(t, u.PasswordHash)
	require.NotNil(t, tokens)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	stored, err := users.FindByID(context.Background(), u.ID)
	require.NoError(t, err)
	require.Len(t, stored.RefreshTokens, 1)
	assert.Equal(t, tokens.RefreshToken, stored.RefreshTokens[0].Token)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newAuthService(t)
	register(t, svc, "a@x.com", models.RoleCustomer)

	_, _, errWrongPassword := svc.Login(context.Background(), "a@x.com", "not-it")
	_, _, errUnknownEmail := svc.Login(context.Background(), "nobody@x.com", "secret1")

	assert.ErrorIs(t, errWrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknownEmail, ErrInvalidCredentials)
	assert.Equal(t, errWrongPassword, errUnknownEmail)
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, users := newAuthService(t)
	u := register(t, svc, "a@x.com", models.RoleCustomer)
	_, tokens, err := svc.Login(context.Background(), "a@x.com", "secret1")
	require.NoError(t, err)

	fresh, err := svc.Refresh(context.Background(), tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, tokens.RefreshToken, fresh.RefreshToken)

	// Old token is gone from the set, the new one is there.
	stored, err := users.FindByID(context.Background(), u.ID)
	require.NoError(t, err)
	require.Len(t, stored.RefreshTokens, 1)
	assert.Equal(t, fresh.RefreshToken, stored.RefreshTokens[0].Token)

	// Reuse of the rotated token fails even though it has not expired.
	_, err = svc.Refresh(context.Background(), tokens.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRefreshRejectsGarbage(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Refresh(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRefreshRejectsUnknownSubject(t *testing.T) {
	svc, _ := newAuthService(t)
	// Token signed with the right secret but whose user was never created.
	tm := token.NewManager("test-access", "test-refresh", time.Minute, time.Hour)
	orphan, err := tm.IssueRefresh("64b0c0ffee0c0ffee0c0ffee")
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), orphan)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestLogoutIsIdempotentAndRevokes(t *testing.T) {
	svc, _ := newAuthService(t)
	register(t, svc, "a@x.com", models.RoleCustomer)
	_, tokens, err := svc.Login(context.Background(), "a@x.com", "secret1")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), tokens.RefreshToken))
	// A second logout with the same (now absent) token still succeeds.
	require.NoError(t, svc.Logout(context.Background(), tokens.RefreshToken))
	// Garbage succeeds too.
	require.NoError(t, svc.Logout(context.Background(), "garbage"))

	// The revoked token can no longer refresh.
	_, err = svc.Refresh(context.Background(), tokens.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestListUsersIsSanitized(t *testing.T) {
	svc, _ := newAuthService(t)
	register(t, svc, "a@x.com", models.RoleCustomer)
	register(t, svc, "b@x.com", models.RoleVendor)
	_, _, err := svc.Login(context.Background(), "a@x.com", "secret1")
	require.NoError(t, err)

	users, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	for _, u := range users {
		assert.Empty(t, u.PasswordHash)
		assert.Nil(t, u.RefreshTokens)
	}
}
