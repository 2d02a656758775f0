package services

import (
	"context"
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"galleria/internal/models"
	"galleria/internal/stores"
)

// StepUpService guards sensitive mutations. Accounts without 2FA re-enter
// their password; accounts with 2FA additionally spend a confirmation grant
// obtained by verifying a step-up code. One grant covers one operation.
type StepUpService interface {
	Begin(ctx context.Context, user *models.User) error
	Confirm(ctx context.Context, user *models.User, code string) (string, error)
	Resend(ctx context.Context, user *models.User) error
	Cancel(ctx context.Context, user *models.User) error
	Authorize(ctx context.Context, user *models.User, currentPassword, grantToken string) error
}

type stepUpService struct {
	grants       *stores.GrantStore
	verification VerificationService
	grantTTL     time.Duration
}

func NewStepUpService(grants *stores.GrantStore, verification VerificationService, grantTTL time.Duration) StepUpService {
	return &stepUpService{
		grants:       grants,
		verification: verification,
		grantTTL:     grantTTL,
	}
}

func (s *stepUpService) Begin(ctx context.Context, user *models.User) error {
	return s.verification.Issue(user.Email, models.PurposeStepUp)
}

func (s *stepUpService) Confirm(ctx context.Context, user *models.User, code string) (string, error) {
	if err := s.verification.Verify(user.Email, models.PurposeStepUp, code); err != nil {
		return "", err
	}
	token, err := s.grants.Issue(ctx, user.ID, stores.GrantStepUp, s.grantTTL)
	if err != nil {
		return "", err
	}
	log.Printf("[step-up] confirmed user_id=%d", user.ID)
	return token, nil
}

func (s *stepUpService) Resend(ctx context.Context, user *models.User) error {
	return s.verification.Resend(user.Email, models.PurposeStepUp)
}

func (s *stepUpService) Cancel(ctx context.Context, user *models.User) error {
	return s.verification.Cancel(user.Email, models.PurposeStepUp)
}

func (s *stepUpService) Authorize(ctx context.Context, user *models.User, currentPassword, grantToken string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(strings.TrimSpace(currentPassword))); err != nil {
		return ErrInvalidCredentials
	}
	if !user.TwoFactorEnabled {
		return nil
	}
	if grantToken == "" {
		return ErrConfirmationRequired
	}
	ok, err := s.grants.Consume(ctx, user.ID, stores.GrantStepUp, grantToken)
	if err != nil {
		return err
	}
	if !ok {
		return ErrConfirmationRequired
	}
	return nil
}
