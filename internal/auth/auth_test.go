package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abubakkersiddiqq/taskflow/internal/auth"
	"github.com/abubakkersiddiqq/taskflow/tests/testutil"
)

func newTestService(t *testing.T) *auth.Service {
	t.Helper()
	s := testutil.NewTestStore(t)
	return auth.NewService(s, "test-secret", time.Hour)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, token, err := svc.Register(ctx, "Alice", "Alice@Example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "Alice", user.Name)
	// Email is normalized before storage.
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEqual(t, "hunter22", user.PasswordHash)

	t.Run("login with mixed-case email succeeds", func(t *testing.T) {
		got, token, err := svc.Login(ctx, "ALICE@example.COM", "hunter22")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("wrong password and unknown email fail identically", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "alice@example.com", "wrong")
		wrongPassword := err
		_, _, err = svc.Login(ctx, "nobody@example.com", "hunter22")
		unknownEmail := err

		assert.ErrorIs(t, wrongPassword, auth.ErrInvalidCredentials)
		assert.ErrorIs(t, unknownEmail, auth.ErrInvalidCredentials)
	})

	t.Run("duplicate registration is rejected", func(t *testing.T) {
		_, _, err := svc.Register(ctx, "Alice2", "alice@example.com", "hunter22")
		assert.ErrorIs(t, err, auth.ErrEmailTaken)
	})
}

func TestRegister_Validation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	var inputErr *auth.InputError

	_, _, err := svc.Register(ctx, "", "a@example.com", "hunter22")
	require.ErrorAs(t, err, &inputErr)

	_, _, err = svc.Register(ctx, "Alice", "", "hunter22")
	require.ErrorAs(t, err, &inputErr)

	_, _, err = svc.Register(ctx, "Alice", "a@example.com", "short")
	require.ErrorAs(t, err, &inputErr)
}

func TestTokenRoundTrip(t *testing.T) {
	svc := newTestService(t)

	token, err := svc.IssueToken("user-123")
	require.NoError(t, err)

	subject, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", subject)

	t.Run("garbage token is rejected", func(t *testing.T) {
		_, err := svc.ParseToken("not.a.token")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("token signed with a different secret is rejected", func(t *testing.T) {
		other := auth.NewService(testutil.NewTestStore(t), "other-secret", time.Hour)
		foreign, err := other.IssueToken("user-123")
		require.NoError(t, err)

		_, err = svc.ParseToken(foreign)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		expired := auth.NewService(testutil.NewTestStore(t), "test-secret", -time.Minute)
		token, err := expired.IssueToken("user-123")
		require.NoError(t, err)

		_, err = svc.ParseToken(token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}

func TestUpdateProfile(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, _, err := svc.Register(ctx, "Alice", "alice@example.com", "hunter22")
	require.NoError(t, err)

	name := "Alice B"
	password := "correct horse"
	updated, err := svc.UpdateProfile(ctx, user.ID, auth.ProfileUpdate{
		Name:     &name,
		Password: &password,
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice B", updated.Name)
	assert.Equal(t, "alice@example.com", updated.Email)

	// The new password works; the old one no longer does.
	_, _, err = svc.Login(ctx, "alice@example.com", "correct horse")
	require.NoError(t, err)
	_, _, err = svc.Login(ctx, "alice@example.com", "hunter22")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}
