package auth_test

import (
	"testing"
	"time"

	"dispatch/internal/auth"
	"dispatch/internal/core/domain/model/account"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUser(t *testing.T, role account.Role) *account.User {
	t.Helper()
	user, err := account.NewUser(kernel.NewUUID(), "Jane", "jane@example.com", "s3cret", role)
	require.NoError(t, err)
	return user
}

func TestTokenService_SignAndValidate(t *testing.T) {
	service := auth.NewTokenService("test-secret", time.Hour, "dispatch")
	user := newTestUser(t, account.RoleDelivery)

	token, err := service.Sign(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.Validate(token)
	require.NoError(t, err)

	assert.Equal(t, user.ID().String(), claims.UserID)
	assert.Equal(t, "delivery", claims.Role)
	assert.Equal(t, "dispatch", claims.Issuer)

	userID, err := claims.UserUUID()
	require.NoError(t, err)
	assert.True(t, userID.IsEqual(user.ID()))

	role, err := claims.AccountRole()
	require.NoError(t, err)
	assert.Equal(t, account.RoleDelivery, role)
}

func TestTokenService_Validate_WrongSecret(t *testing.T) {
	signer := auth.NewTokenService("secret-one", time.Hour, "dispatch")
	verifier := auth.NewTokenService("secret-two", time.Hour, "dispatch")

	token, err := signer.Sign(newTestUser(t, account.RoleCustomer))
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	require.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenService_Validate_ExpiredToken(t *testing.T) {
	service := auth.NewTokenService("test-secret", -time.Minute, "dispatch")

	token, err := service.Sign(newTestUser(t, account.RoleCustomer))
	require.NoError(t, err)

	_, err = service.Validate(token)
	require.ErrorIs(t, err, auth.ErrExpiredToken)
}

func TestTokenService_Validate_Garbage(t *testing.T) {
	service := auth.NewTokenService("test-secret", time.Hour, "dispatch")

	_, err := service.Validate("not-a-token")
	require.ErrorIs(t, err, auth.ErrInvalidToken)
}
