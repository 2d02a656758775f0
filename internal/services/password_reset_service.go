package services

import (
	"context"
	"log"
	"strings"
	"time"

	"galleria/internal/models"
	"galleria/internal/repositories"
	"galleria/internal/stores"
)

// PasswordResetService: a verified reset code unlocks exactly one password
// change, carried by a single-use grant.
type PasswordResetService interface {
	Request(ctx context.Context, email string) error
	Verify(ctx context.Context, email, code string) (string, error)
	Resend(ctx context.Context, email string) error
	Complete(ctx context.Context, email, grantToken, newPassword string) error
}

type passwordResetService struct {
	users        repositories.UserRepository
	grants       *stores.GrantStore
	verification VerificationService
	auth         AuthService

	grantTTL time.Duration
}

func NewPasswordResetService(
	users repositories.UserRepository,
	grants *stores.GrantStore,
	verification VerificationService,
	auth AuthService,
	grantTTL time.Duration,
) PasswordResetService {
	return &passwordResetService{
		users:        users,
		grants:       grants,
		verification: verification,
		auth:         auth,
		grantTTL:     grantTTL,
	}
}

func (s *passwordResetService) Request(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		// don't leak existence
		log.Printf("[password-reset] request for unknown address %q", email)
		return nil
	}
	return s.verification.Issue(user.Email, models.PurposePasswordReset)
}

func (s *passwordResetService) Verify(ctx context.Context, email, code string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrCodeNotFound
	}
	if err := s.verification.Verify(user.Email, models.PurposePasswordReset, code); err != nil {
		return "", err
	}
	return s.grants.Issue(ctx, user.ID, stores.GrantPasswordChange, s.grantTTL)
}

func (s *passwordResetService) Resend(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		log.Printf("[password-reset] resend for unknown address %q", email)
		return nil
	}
	return s.verification.Resend(user.Email, models.PurposePasswordReset)
}

func (s *passwordResetService) Complete(ctx context.Context, email, grantToken, newPassword string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrConfirmationRequired
	}

	ok, err := s.grants.Consume(ctx, user.ID, stores.GrantPasswordChange, grantToken)
	if err != nil {
		return err
	}
	if !ok {
		return ErrConfirmationRequired
	}

	hash, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(user.ID, hash); err != nil {
		return err
	}
	// existing sessions die with the old password
	if err := s.users.ClearRefresh(user.ID); err != nil {
		log.Printf("[password-reset] refresh revoke failed user_id=%d: %v", user.ID, err)
	}
	log.Printf("[password-reset] completed user_id=%d", user.ID)
	return nil
}
