package stores

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"galleria/internal/utils"
)

type GrantKind string

const (
	// GrantPasswordChange unlocks exactly one password change after a
	// password-reset code was verified.
	GrantPasswordChange GrantKind = "password_change"
	// GrantStepUp permits exactly one sensitive operation after a step-up
	// confirmation code was verified.
	GrantStepUp GrantKind = "step_up"
)

// GrantStore issues bounded, single-use permissions. Consume is a GETDEL, so
// a grant spent by one request is gone for every concurrent one.
type GrantStore struct {
	rdb *redis.Client
}

func NewGrantStore(rdb *redis.Client) *GrantStore {
	return &GrantStore{rdb: rdb}
}

func grantKey(kind GrantKind, token string) string {
	return "galleria:grant:" + string(kind) + ":" + token
}

func (s *GrantStore) Issue(ctx context.Context, userID int, kind GrantKind, ttl time.Duration) (string, error) {
	token, err := utils.NewOpaqueToken(32)
	if err != nil {
		return "", err
	}
	if err := s.rdb.Set(ctx, grantKey(kind, token), strconv.Itoa(userID), ttl).Err(); err != nil {
		return "", fmt.Errorf("grant issue: %w", err)
	}
	return token, nil
}

// Consume spends the grant. It returns false when the token is unknown,
// expired, already spent, or belongs to a different user.
func (s *GrantStore) Consume(ctx context.Context, userID int, kind GrantKind, token string) (bool, error) {
	raw, err := s.rdb.GetDel(ctx, grantKey(kind, token)).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("grant consume: %w", err)
	}
	owner, err := strconv.Atoi(raw)
	if err != nil {
		return false, err
	}
	return owner == userID, nil
}
