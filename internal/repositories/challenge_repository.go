package repositories

import (
	"database/sql"
	"fmt"

	"galleria/internal/models"
)

// ChallengeRepository keeps at most one outstanding code per (address, purpose).
// Issue is last-writer-wins; Consume is compare-and-clear so two concurrent
// verifications cannot both spend the same code.
type ChallengeRepository interface {
	Upsert(ch *models.Challenge) error
	Get(address string, purpose models.Purpose) (*models.Challenge, error)
	Consume(address string, purpose models.Purpose, codeHash string) (bool, error)
	IncrementAttempts(address string, purpose models.Purpose) (int, error)
	Delete(address string, purpose models.Purpose) error
}

type challengeRepository struct {
	DB *sql.DB
}

func NewChallengeRepository(db *sql.DB) ChallengeRepository {
	return &challengeRepository{DB: db}
}

func (r *challengeRepository) Upsert(ch *models.Challenge) error {
	const q = `
		INSERT INTO challenges (address, purpose, code_hash, sent_at, expires_at, attempts)
		VALUES ($1, $2, $3, $4, $5, 0)
		ON CONFLICT (address, purpose)
		DO UPDATE SET code_hash=EXCLUDED.code_hash, sent_at=EXCLUDED.sent_at,
		              expires_at=EXCLUDED.expires_at, attempts=0
	`
	if _, err := r.DB.Exec(q, ch.Address, ch.Purpose, ch.CodeHash, ch.SentAt, ch.ExpiresAt); err != nil {
		return fmt.Errorf("challenge upsert: %w", err)
	}
	return nil
}

func (r *challengeRepository) Get(address string, purpose models.Purpose) (*models.Challenge, error) {
	const q = `
		SELECT address, purpose, code_hash, sent_at, expires_at, attempts
		FROM challenges
		WHERE address = $1 AND purpose = $2
	`
	var ch models.Challenge
	err := r.DB.QueryRow(q, address, purpose).Scan(
		&ch.Address, &ch.Purpose, &ch.CodeHash, &ch.SentAt, &ch.ExpiresAt, &ch.Attempts,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("challenge get: %w", err)
	}
	return &ch, nil
}

// Consume deletes the row only if it still holds the hash the caller verified
// against. A false return means another request consumed it first.
func (r *challengeRepository) Consume(address string, purpose models.Purpose, codeHash string) (bool, error) {
	const q = `
		DELETE FROM challenges
		WHERE address = $1 AND purpose = $2 AND code_hash = $3
	`
	res, err := r.DB.Exec(q, address, purpose, codeHash)
	if err != nil {
		return false, fmt.Errorf("challenge consume: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *challengeRepository) IncrementAttempts(address string, purpose models.Purpose) (int, error) {
	const q = `
		UPDATE challenges
		SET attempts = attempts + 1
		WHERE address = $1 AND purpose = $2
		RETURNING attempts
	`
	var attempts int
	if err := r.DB.QueryRow(q, address, purpose).Scan(&attempts); err != nil {
		return 0, fmt.Errorf("challenge increment attempts: %w", err)
	}
	return attempts, nil
}

func (r *challengeRepository) Delete(address string, purpose models.Purpose) error {
	if _, err := r.DB.Exec(`DELETE FROM challenges WHERE address=$1 AND purpose=$2`, address, purpose); err != nil {
		return fmt.Errorf("challenge delete: %w", err)
	}
	return nil
}
