package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepUp_PasswordOnlyWithoutTwoFactor(t *testing.T) {
	env := newServiceEnv(t)
	user := env.seedUser(t, "alice@example.com", "s3cret-pw", false)
	ctx := context.Background()

	require.NoError(t, env.stepUp.Authorize(ctx, user, "s3cret-pw", ""))
	assert.ErrorIs(t, env.stepUp.Authorize(ctx, user, "wrong", ""), ErrInvalidCredentials)
}

func TestStepUp_TwoFactorNeedsGrant(t *testing.T) {
	env := newServiceEnv(t)
	user := env.seedUser(t, "alice@example.com", "s3cret-pw", true)
	ctx := context.Background()

	// correct password alone is not enough once 2FA is on
	assert.ErrorIs(t, env.stepUp.Authorize(ctx, user, "s3cret-pw", ""), ErrConfirmationRequired)

	require.NoError(t, env.stepUp.Begin(ctx, user))
	grant, err := env.stepUp.Confirm(ctx, user, env.emails.lastCode())
	require.NoError(t, err)

	require.NoError(t, env.stepUp.Authorize(ctx, user, "s3cret-pw", grant))

	// one grant covers one operation
	assert.ErrorIs(t, env.stepUp.Authorize(ctx, user, "s3cret-pw", grant), ErrConfirmationRequired)
}

func TestStepUp_WrongPasswordDoesNotSpendGrant(t *testing.T) {
	env := newServiceEnv(t)
	user := env.seedUser(t, "alice@example.com", "s3cret-pw", true)
	ctx := context.Background()

	require.NoError(t, env.stepUp.Begin(ctx, user))
	grant, err := env.stepUp.Confirm(ctx, user, env.emails.lastCode())
	require.NoError(t, err)

	assert.ErrorIs(t, env.stepUp.Authorize(ctx, user, "wrong", grant), ErrInvalidCredentials)
	require.NoError(t, env.stepUp.Authorize(ctx, user, "s3cret-pw", grant))
}

func TestStepUp_GrantExpires(t *testing.T) {
	env := newServiceEnv(t)
	user := env.seedUser(t, "alice@example.com", "s3cret-pw", true)
	ctx := context.Background()

	require.NoError(t, env.stepUp.Begin(ctx, user))
	grant, err := env.stepUp.Confirm(ctx, user, env.emails.lastCode())
	require.NoError(t, err)

	env.mr.FastForward(6 * time.Minute)
	assert.ErrorIs(t, env.stepUp.Authorize(ctx, user, "s3cret-pw", grant), ErrConfirmationRequired)
}

func TestStepUp_Cancel(t *testing.T) {
	env := newServiceEnv(t)
	user := env.seedUser(t, "alice@example.com", "s3cret-pw", true)
	ctx := context.Background()

	require.NoError(t, env.stepUp.Begin(ctx, user))
	code := env.emails.lastCode()
	require.NoError(t, env.stepUp.Cancel(ctx, user))

	_, err := env.stepUp.Confirm(ctx, user, code)
	assert.ErrorIs(t, err, ErrCodeNotFound)
}

func TestProfile_ChangePasswordBehindGate(t *testing.T) {
	env := newServiceEnv(t)
	user := env.seedUser(t, "alice@example.com", "old-pw", true)
	ctx := context.Background()

	err := env.profile.ChangePassword(ctx, user, "old-pw", "", "new-pw")
	assert.ErrorIs(t, err, ErrConfirmationRequired)

	require.NoError(t, env.stepUp.Begin(ctx, user))
	grant, err := env.stepUp.Confirm(ctx, user, env.emails.lastCode())
	require.NoError(t, err)

	require.NoError(t, env.profile.ChangePassword(ctx, user, "old-pw", grant, "new-pw"))

	res, err := env.auth.Login(ctx, "alice@example.com", "new-pw")
	require.NoError(t, err)
	assert.True(t, res.TwoFactorRequired)
}

func TestProfile_ToggleTwoFactor(t *testing.T) {
	env := newServiceEnv(t)
	user := env.seedUser(t, "alice@example.com", "s3cret-pw", false)
	ctx := context.Background()

	// enabling 2FA on a password-only account needs just the password
	require.NoError(t, env.profile.SetTwoFactor(ctx, user, "s3cret-pw", "", true))
	updated, err := env.profile.Get(user.ID)
	require.NoError(t, err)
	assert.True(t, updated.TwoFactorEnabled)

	// disabling it again requires the full step-up
	err = env.profile.SetTwoFactor(ctx, updated, "s3cret-pw", "", false)
	assert.ErrorIs(t, err, ErrConfirmationRequired)

	require.NoError(t, env.stepUp.Begin(ctx, updated))
	grant, err := env.stepUp.Confirm(ctx, updated, env.emails.lastCode())
	require.NoError(t, err)
	require.NoError(t, env.profile.SetTwoFactor(ctx, updated, "s3cret-pw", grant, false))

	updated, err = env.profile.Get(user.ID)
	require.NoError(t, err)
	assert.False(t, updated.TwoFactorEnabled)
}

func TestProfile_DeleteAccount(t *testing.T) {
	env := newServiceEnv(t)
	user := env.seedUser(t, "alice@example.com", "s3cret-pw", false)
	ctx := context.Background()

	require.NoError(t, env.profile.DeleteAccount(ctx, user, "s3cret-pw", ""))
	_, err := env.profile.Get(user.ID)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestProfile_UpdateName(t *testing.T) {
	env := newServiceEnv(t)
	user := env.seedUser(t, "alice@example.com", "s3cret-pw", false)

	require.NoError(t, env.profile.UpdateName(user.ID, "  New Name  "))
	updated, err := env.profile.Get(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
}
