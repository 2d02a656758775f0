package services

import (
	"errors"
	"sync"
	"time"

	"galleria/internal/models"
)

// in-memory ChallengeRepository with the same atomicity contract as the SQL
// one: Consume only succeeds while the row still holds the given hash.
type memChallengeRepo struct {
	mu   sync.Mutex
	rows map[string]*models.Challenge
}

func newMemChallengeRepo() *memChallengeRepo {
	return &memChallengeRepo{rows: make(map[string]*models.Challenge)}
}

func challengeKey(address string, purpose models.Purpose) string {
	return address + "|" + string(purpose)
}

func (r *memChallengeRepo) Upsert(ch *models.Challenge) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *ch
	r.rows[challengeKey(ch.Address, ch.Purpose)] = &cp
	return nil
}

func (r *memChallengeRepo) Get(address string, purpose models.Purpose) (*models.Challenge, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ch, ok := r.rows[challengeKey(address, purpose)]
	if !ok {
		return nil, nil
	}
	cp := *ch
	return &cp, nil
}

func (r *memChallengeRepo) Consume(address string, purpose models.Purpose, codeHash string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := challengeKey(address, purpose)
	ch, ok := r.rows[key]
	if !ok || ch.CodeHash != codeHash {
		return false, nil
	}
	delete(r.rows, key)
	return true, nil
}

func (r *memChallengeRepo) IncrementAttempts(address string, purpose models.Purpose) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ch, ok := r.rows[challengeKey(address, purpose)]
	if !ok {
		return 0, errors.New("no row")
	}
	ch.Attempts++
	return ch.Attempts, nil
}

func (r *memChallengeRepo) Delete(address string, purpose models.Purpose) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, challengeKey(address, purpose))
	return nil
}

func (r *memChallengeRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

type sentEmail struct {
	Address string
	Purpose models.Purpose
	Code    string
}

type fakeEmailService struct {
	mu       sync.Mutex
	sent     []sentEmail
	welcomed []string
	failSend bool
}

func (f *fakeEmailService) SendVerificationCode(email string, purpose models.Purpose, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSend {
		return errors.New("smtp down")
	}
	f.sent = append(f.sent, sentEmail{Address: email, Purpose: purpose, Code: code})
	return nil
}

func (f *fakeEmailService) SendWelcomeEmail(email, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.welcomed = append(f.welcomed, email)
	return nil
}

func (f *fakeEmailService) lastCode() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return ""
	}
	return f.sent[len(f.sent)-1].Code
}

func (f *fakeEmailService) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

// in-memory UserRepository
type memUserRepo struct {
	mu     sync.Mutex
	nextID int
	byID   map[int]*models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{nextID: 1, byID: make(map[int]*models.User)}
}

func (r *memUserRepo) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == user.Email {
			return errors.New("duplicate email")
		}
	}
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	r.nextID++
	cp := *user
	r.byID[user.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(id int) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) UpdateName(userID int, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[userID]; ok {
		u.Name = name
	}
	return nil
}

func (r *memUserRepo) UpdatePassword(userID int, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[userID]; ok {
		u.PasswordHash = passwordHash
	}
	return nil
}

func (r *memUserRepo) SetTwoFactor(userID int, enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[userID]; ok {
		u.TwoFactorEnabled = enabled
	}
	return nil
}

func (r *memUserRepo) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}

func (r *memUserRepo) UpdateRefresh(userID int, token string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[userID]; ok {
		u.RefreshToken = &token
		u.RefreshExpiresAt = &expiresAt
		u.RefreshRevoked = false
	}
	return nil
}

func (r *memUserRepo) RotateRefresh(oldToken, newToken string, newExpiresAt time.Time) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.RefreshToken != nil && *u.RefreshToken == oldToken && !u.RefreshRevoked {
			u.RefreshToken = &newToken
			u.RefreshExpiresAt = &newExpiresAt
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) ClearRefresh(userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[userID]; ok {
		u.RefreshToken = nil
		u.RefreshExpiresAt = nil
		u.RefreshRevoked = true
	}
	return nil
}

func (r *memUserRepo) GetByRefreshToken(token string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.RefreshToken != nil && *u.RefreshToken == token {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}
