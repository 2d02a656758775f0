package services

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"galleria/internal/config"
	"galleria/internal/models"
	"galleria/internal/stores"
)

// serviceEnv wires the full service graph against in-memory backends:
// miniredis for the flow stores, map-backed fakes for SQL.
type serviceEnv struct {
	mr *miniredis.Miniredis

	users      *memUserRepo
	challenges *memChallengeRepo
	emails     *fakeEmailService

	verification *verificationService
	auth         AuthService
	registration RegistrationService
	reset        PasswordResetService
	stepUp       StepUpService
	profile      ProfileService

	pending *stores.PendingRegistrationStore
	logins  *stores.LoginChallengeStore
	grants  *stores.GrantStore
}

func newServiceEnv(t *testing.T) *serviceEnv {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	env := &serviceEnv{
		mr:         mr,
		users:      newMemUserRepo(),
		challenges: newMemChallengeRepo(),
		emails:     &fakeEmailService{},
		pending:    stores.NewPendingRegistrationStore(rdb),
		logins:     stores.NewLoginChallengeStore(rdb),
		grants:     stores.NewGrantStore(rdb),
	}

	env.verification = NewVerificationService(env.challenges, env.emails, config.OTPConfig{
		Digits:         6,
		TTL:            10 * time.Minute,
		ResendInterval: time.Minute,
		MaxAttempts:    5,
	}).(*verificationService)

	env.auth = NewAuthService(env.users, env.logins, env.verification,
		"test-secret", 15*time.Minute, 30*24*time.Hour, 10*time.Minute)
	env.registration = NewRegistrationService(env.users, env.pending, env.verification,
		env.auth, env.emails, 30*time.Minute)
	env.reset = NewPasswordResetService(env.users, env.grants, env.verification,
		env.auth, 10*time.Minute)
	env.stepUp = NewStepUpService(env.grants, env.verification, 5*time.Minute)
	env.profile = NewProfileService(env.users, env.auth, env.stepUp)

	return env
}

// seedUser registers a verified account directly, bypassing the sign-up flow.
func (e *serviceEnv) seedUser(t *testing.T, email, password string, twoFactor bool) *models.User {
	t.Helper()
	hash, err := e.auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	now := time.Now()
	u := &models.User{
		Name:             "Seeded User",
		Email:            email,
		PasswordHash:     hash,
		IsVerified:       true,
		VerifiedAt:       &now,
		TwoFactorEnabled: twoFactor,
	}
	if err := e.users.Create(u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}
