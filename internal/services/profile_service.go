package services

import (
	"context"
	"log"
	"strings"

	"galleria/internal/models"
	"galleria/internal/repositories"
)

// ProfileService handles the account holder's own record. Every mutating
// operation except the display name runs behind the step-up gate.
type ProfileService interface {
	Get(userID int) (*models.User, error)
	UpdateName(userID int, name string) error
	ChangePassword(ctx context.Context, user *models.User, currentPassword, grantToken, newPassword string) error
	SetTwoFactor(ctx context.Context, user *models.User, currentPassword, grantToken string, enabled bool) error
	DeleteAccount(ctx context.Context, user *models.User, currentPassword, grantToken string) error
}

type profileService struct {
	users  repositories.UserRepository
	auth   AuthService
	stepUp StepUpService
}

func NewProfileService(users repositories.UserRepository, auth AuthService, stepUp StepUpService) ProfileService {
	return &profileService{users: users, auth: auth, stepUp: stepUp}
}

func (s *profileService) Get(userID int) (*models.User, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrAccountNotFound
	}
	return user, nil
}

func (s *profileService) UpdateName(userID int, name string) error {
	name = strings.TrimSpace(name)
	return s.users.UpdateName(userID, name)
}

func (s *profileService) ChangePassword(ctx context.Context, user *models.User, currentPassword, grantToken, newPassword string) error {
	if err := s.stepUp.Authorize(ctx, user, currentPassword, grantToken); err != nil {
		return err
	}
	hash, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(user.ID, hash); err != nil {
		return err
	}
	log.Printf("[profile] password changed user_id=%d", user.ID)
	return nil
}

func (s *profileService) SetTwoFactor(ctx context.Context, user *models.User, currentPassword, grantToken string, enabled bool) error {
	if err := s.stepUp.Authorize(ctx, user, currentPassword, grantToken); err != nil {
		return err
	}
	if err := s.users.SetTwoFactor(user.ID, enabled); err != nil {
		return err
	}
	log.Printf("[profile] two_factor_enabled=%t user_id=%d", enabled, user.ID)
	return nil
}

func (s *profileService) DeleteAccount(ctx context.Context, user *models.User, currentPassword, grantToken string) error {
	if err := s.stepUp.Authorize(ctx, user, currentPassword, grantToken); err != nil {
		return err
	}
	if err := s.users.Delete(user.ID); err != nil {
		return err
	}
	log.Printf("[profile] account deleted user_id=%d", user.ID)
	return nil
}
