package stores

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const loginChallengePrefix = "galleria:login-2fa:"

// LoginChallengeStore parks a password-verified login while the second factor
// is outstanding. The opaque token is what the client holds between steps.
type LoginChallengeStore struct {
	rdb *redis.Client
}

func NewLoginChallengeStore(rdb *redis.Client) *LoginChallengeStore {
	return &LoginChallengeStore{rdb: rdb}
}

func (s *LoginChallengeStore) Create(ctx context.Context, userID int, ttl time.Duration) (string, error) {
	token := uuid.NewString()
	key := loginChallengePrefix + token
	if err := s.rdb.Set(ctx, key, strconv.Itoa(userID), ttl).Err(); err != nil {
		return "", fmt.Errorf("login challenge create: %w", err)
	}
	return token, nil
}

// Peek returns the parked user without consuming the token (used for resends
// and for looking up the address before code verification). Returns 0 when
// the token is unknown or expired.
func (s *LoginChallengeStore) Peek(ctx context.Context, token string) (int, error) {
	raw, err := s.rdb.Get(ctx, loginChallengePrefix+token).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, fmt.Errorf("login challenge peek: %w", err)
	}
	return strconv.Atoi(raw)
}

// Consume atomically removes the token so a completed login cannot be replayed.
func (s *LoginChallengeStore) Consume(ctx context.Context, token string) (int, error) {
	raw, err := s.rdb.GetDel(ctx, loginChallengePrefix+token).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, fmt.Errorf("login challenge consume: %w", err)
	}
	return strconv.Atoi(raw)
}
