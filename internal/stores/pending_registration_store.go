// Package stores holds short-lived flow state in Redis: pending sign-ups,
// logins parked on a second factor, and single-use grants. Everything here
// expires on its own; nothing is durable.
package stores

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"galleria/internal/models"
)

const pendingRegistrationPrefix = "galleria:pending-reg:"

type PendingRegistrationStore struct {
	rdb *redis.Client
}

func NewPendingRegistrationStore(rdb *redis.Client) *PendingRegistrationStore {
	return &PendingRegistrationStore{rdb: rdb}
}

func pendingKey(email string) string {
	return pendingRegistrationPrefix + strings.ToLower(email)
}

// Save overwrites any previous pending sign-up for the same address.
func (s *PendingRegistrationStore) Save(ctx context.Context, p *models.PendingRegistration, ttl time.Duration) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("pending registration encode: %w", err)
	}
	if err := s.rdb.Set(ctx, pendingKey(p.Email), raw, ttl).Err(); err != nil {
		return fmt.Errorf("pending registration save: %w", err)
	}
	return nil
}

func (s *PendingRegistrationStore) Get(ctx context.Context, email string) (*models.PendingRegistration, error) {
	raw, err := s.rdb.Get(ctx, pendingKey(email)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("pending registration get: %w", err)
	}
	var p models.PendingRegistration
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("pending registration decode: %w", err)
	}
	return &p, nil
}

func (s *PendingRegistrationStore) Delete(ctx context.Context, email string) error {
	return s.rdb.Del(ctx, pendingKey(email)).Err()
}
