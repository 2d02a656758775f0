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

// RegistrationService drives sign-up: the submission waits outside the users
// table until its code is confirmed, so abandoned registrations never occupy
// a durable account row.
type RegistrationService interface {
	Start(ctx context.Context, name, email, password string) error
	VerifyEmail(ctx context.Context, email, code string) (*models.User, *TokenPair, error)
	Resend(ctx context.Context, email string) error
	Cancel(ctx context.Context, email string) error
}

type registrationService struct {
	users        repositories.UserRepository
	pending      *stores.PendingRegistrationStore
	verification VerificationService
	auth         AuthService
	emails       EmailService

	pendingTTL time.Duration
}

func NewRegistrationService(
	users repositories.UserRepository,
	pending *stores.PendingRegistrationStore,
	verification VerificationService,
	auth AuthService,
	emails EmailService,
	pendingTTL time.Duration,
) RegistrationService {
	return &registrationService{
		users:        users,
		pending:      pending,
		verification: verification,
		auth:         auth,
		emails:       emails,
		pendingTTL:   pendingTTL,
	}
}

func (s *registrationService) Start(ctx context.Context, name, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := s.users.GetByEmail(email)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrEmailTaken
	}

	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return err
	}
	p := &models.PendingRegistration{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	// re-submitting overwrites the previous pending sign-up
	if err := s.pending.Save(ctx, p, s.pendingTTL); err != nil {
		return err
	}
	return s.verification.Issue(email, models.PurposeRegistration)
}

func (s *registrationService) VerifyEmail(ctx context.Context, email, code string) (*models.User, *TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	p, err := s.pending.Get(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	if p == nil {
		return nil, nil, ErrCodeNotFound
	}

	if err := s.verification.Verify(email, models.PurposeRegistration, code); err != nil {
		return nil, nil, err
	}

	now := time.Now()
	user := &models.User{
		Name:         p.Name,
		Email:        email,
		PasswordHash: p.PasswordHash,
		IsVerified:   true,
		VerifiedAt:   &now,
	}
	if err := s.users.Create(user); err != nil {
		return nil, nil, err
	}
	if err := s.pending.Delete(ctx, email); err != nil {
		log.Printf("[register][verify] pending cleanup failed email=%s: %v", email, err)
	}
	if err := s.emails.SendWelcomeEmail(user.Email, user.Name); err != nil {
		log.Printf("[register][verify] welcome email failed email=%s: %v", email, err)
	}

	tokens, err := s.auth.IssueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	log.Printf("[register][verify] account created user_id=%d", user.ID)
	return user, tokens, nil
}

func (s *registrationService) Resend(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := s.users.GetByEmail(email)
	if err != nil {
		return err
	}
	if existing != nil && existing.IsVerified {
		// idempotent no-op, surfaced as success with a flag
		return ErrAlreadyVerified
	}

	p, err := s.pending.Get(ctx, email)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrCodeNotFound
	}
	return s.verification.Resend(email, models.PurposeRegistration)
}

func (s *registrationService) Cancel(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := s.pending.Delete(ctx, email); err != nil {
		return err
	}
	return s.verification.Cancel(email, models.PurposeRegistration)
}
