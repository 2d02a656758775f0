package services

import (
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"galleria/internal/config"
	"galleria/internal/models"
	"galleria/internal/repositories"
	"galleria/internal/utils"
)

// VerificationService runs the one-time-code lifecycle: issue, verify, resend,
// cancel. A code lives in exactly one (address, purpose) slot; issuing again
// for the same slot discards the old code. Delivery failures never roll back
// an issued code — the remedy is always a resend.
type VerificationService interface {
	Issue(address string, purpose models.Purpose) error
	Verify(address string, purpose models.Purpose, code string) error
	Resend(address string, purpose models.Purpose) error
	Cancel(address string, purpose models.Purpose) error
}

type verificationService struct {
	repo   repositories.ChallengeRepository
	emails EmailService
	cfg    config.OTPConfig

	now func() time.Time
}

func NewVerificationService(repo repositories.ChallengeRepository, emails EmailService, cfg config.OTPConfig) VerificationService {
	return &verificationService{
		repo:   repo,
		emails: emails,
		cfg:    cfg,
		now:    time.Now,
	}
}

func normalizeAddress(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

func (s *verificationService) Issue(address string, purpose models.Purpose) error {
	address = normalizeAddress(address)

	code, err := utils.NewNumericCode(s.cfg.Digits)
	if err != nil {
		return err
	}
	hashBytes, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	sentAt := s.now()
	ch := &models.Challenge{
		Address:   address,
		Purpose:   purpose,
		CodeHash:  string(hashBytes),
		SentAt:    sentAt,
		ExpiresAt: sentAt.Add(s.cfg.TTL),
	}
	if err := s.repo.Upsert(ch); err != nil {
		return err
	}

	// fire-and-forget: the code is stored either way
	if err := s.emails.SendVerificationCode(address, purpose, code); err != nil {
		log.Printf("[verify][issue] dispatch failed address=%s purpose=%s: %v", address, purpose, err)
	}
	log.Printf("[verify][issue] address=%s purpose=%s", address, purpose)
	return nil
}

func (s *verificationService) Verify(address string, purpose models.Purpose, code string) error {
	address = normalizeAddress(address)

	ch, err := s.repo.Get(address, purpose)
	if err != nil {
		return err
	}
	if ch == nil {
		return ErrCodeNotFound
	}
	if s.now().After(ch.ExpiresAt) {
		// stale code is cleared so the caller is forced to re-issue
		if err := s.repo.Delete(address, purpose); err != nil {
			return err
		}
		return ErrCodeExpired
	}

	if err := bcrypt.CompareHashAndPassword([]byte(ch.CodeHash), []byte(strings.TrimSpace(code))); err != nil {
		attempts, incErr := s.repo.IncrementAttempts(address, purpose)
		if incErr != nil {
			return incErr
		}
		if attempts >= s.cfg.MaxAttempts {
			if delErr := s.repo.Delete(address, purpose); delErr != nil {
				return delErr
			}
			return ErrTooManyAttempts
		}
		return ErrCodeMismatch
	}

	// compare-and-clear: only one concurrent verification can win this
	consumed, err := s.repo.Consume(address, purpose, ch.CodeHash)
	if err != nil {
		return err
	}
	if !consumed {
		return ErrCodeNotFound
	}
	log.Printf("[verify][ok] address=%s purpose=%s", address, purpose)
	return nil
}

func (s *verificationService) Resend(address string, purpose models.Purpose) error {
	address = normalizeAddress(address)

	ch, err := s.repo.Get(address, purpose)
	if err != nil {
		return err
	}
	if ch != nil {
		elapsed := s.now().Sub(ch.SentAt)
		if elapsed < s.cfg.ResendInterval {
			return &ThrottledError{RetryAfter: s.cfg.ResendInterval - elapsed}
		}
	}
	return s.Issue(address, purpose)
}

func (s *verificationService) Cancel(address string, purpose models.Purpose) error {
	return s.repo.Delete(normalizeAddress(address), purpose)
}
