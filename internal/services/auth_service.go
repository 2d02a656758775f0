package services

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"galleria/internal/middleware"
	"galleria/internal/models"
	"galleria/internal/repositories"
	"galleria/internal/stores"
	"galleria/internal/utils"
)

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// LoginResult is either an established session (Tokens set) or a parked login
// waiting on the second factor (TwoFactorRequired with the continuation token).
type LoginResult struct {
	User              *models.User
	Tokens            *TokenPair
	TwoFactorRequired bool
	LoginToken        string
}

type AuthService interface {
	HashPassword(password string) (string, error)
	IssueTokens(user *models.User) (*TokenPair, error)

	Login(ctx context.Context, email, password string) (*LoginResult, error)
	CompleteTwoFactor(ctx context.Context, loginToken, code string) (*models.User, *TokenPair, error)
	ResendTwoFactor(ctx context.Context, loginToken string) error
	Refresh(refreshToken string) (*TokenPair, error)
	Logout(userID int) error
}

type authService struct {
	users        repositories.UserRepository
	logins       *stores.LoginChallengeStore
	verification VerificationService

	jwtSecret  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	// how long a password-verified login may wait on its second factor
	challengeTTL time.Duration
}

func NewAuthService(
	users repositories.UserRepository,
	logins *stores.LoginChallengeStore,
	verification VerificationService,
	jwtSecret string,
	accessTTL, refreshTTL, challengeTTL time.Duration,
) AuthService {
	return &authService{
		users:        users,
		logins:       logins,
		verification: verification,
		jwtSecret:    []byte(jwtSecret),
		accessTTL:    accessTTL,
		refreshTTL:   refreshTTL,
		challengeTTL: challengeTTL,
	}
}

func (s *authService) HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (s *authService) IssueTokens(user *models.User) (*TokenPair, error) {
	claims := &middleware.Claims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.accessTTL)),
		},
	}
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	refresh, err := utils.NewOpaqueToken(32)
	if err != nil {
		return nil, err
	}
	if err := s.users.UpdateRefresh(user.ID, refresh, time.Now().Add(s.refreshTTL)); err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil || strings.TrimSpace(user.PasswordHash) == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(strings.TrimSpace(password))); err != nil {
		return nil, ErrInvalidCredentials
	}

	if user.TwoFactorEnabled {
		token, err := s.logins.Create(ctx, user.ID, s.challengeTTL)
		if err != nil {
			return nil, err
		}
		if err := s.verification.Issue(user.Email, models.PurposeLogin2FA); err != nil {
			return nil, err
		}
		log.Printf("[auth][login] 2fa challenge issued user_id=%d", user.ID)
		return &LoginResult{User: user, TwoFactorRequired: true, LoginToken: token}, nil
	}

	tokens, err := s.IssueTokens(user)
	if err != nil {
		return nil, err
	}
	log.Printf("[auth][login] success user_id=%d", user.ID)
	return &LoginResult{User: user, Tokens: tokens}, nil
}

func (s *authService) CompleteTwoFactor(ctx context.Context, loginToken, code string) (*models.User, *TokenPair, error) {
	userID, err := s.logins.Peek(ctx, loginToken)
	if err != nil {
		return nil, nil, err
	}
	if userID == 0 {
		return nil, nil, ErrCodeNotFound
	}
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrAccountNotFound
	}

	if err := s.verification.Verify(user.Email, models.PurposeLogin2FA, code); err != nil {
		return nil, nil, err
	}

	// single completion per parked login
	if consumed, err := s.logins.Consume(ctx, loginToken); err != nil {
		return nil, nil, err
	} else if consumed == 0 {
		return nil, nil, ErrCodeNotFound
	}

	tokens, err := s.IssueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	log.Printf("[auth][2fa] completed user_id=%d", user.ID)
	return user, tokens, nil
}

func (s *authService) ResendTwoFactor(ctx context.Context, loginToken string) error {
	userID, err := s.logins.Peek(ctx, loginToken)
	if err != nil {
		return err
	}
	if userID == 0 {
		return ErrCodeNotFound
	}
	user, err := s.users.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrAccountNotFound
	}
	return s.verification.Resend(user.Email, models.PurposeLogin2FA)
}

func (s *authService) Refresh(refreshToken string) (*TokenPair, error) {
	old := strings.TrimSpace(refreshToken)
	user, err := s.users.GetByRefreshToken(old)
	if err != nil {
		return nil, err
	}
	if user == nil || user.RefreshToken == nil || user.RefreshExpiresAt == nil || user.RefreshRevoked {
		return nil, ErrInvalidCredentials
	}
	if time.Now().After(*user.RefreshExpiresAt) {
		return nil, ErrInvalidCredentials
	}

	newRT, err := utils.NewOpaqueToken(32)
	if err != nil {
		return nil, err
	}
	rotated, err := s.users.RotateRefresh(old, newRT, time.Now().Add(s.refreshTTL))
	if err != nil || rotated == nil {
		return nil, ErrInvalidCredentials
	}

	claims := &middleware.Claims{
		UserID: rotated.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.accessTTL)),
		},
	}
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: newRT}, nil
}

func (s *authService) Logout(userID int) error {
	return s.users.ClearRefresh(userID)
}
