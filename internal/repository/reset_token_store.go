package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ResetTokenStore keeps password-reset tokens in Redis. The TTL is the
// expiry and GETDEL makes consumption single-use without extra bookkeeping.
type ResetTokenStore struct {
	rdb *redis.Client
}

func NewResetTokenStore(rdb *redis.Client) *ResetTokenStore {
	return &ResetTokenStore{rdb: rdb}
}

func resetKey(token string) string {
	return "pwreset:" + token
}

func (s *ResetTokenStore) Put(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	return s.rdb.Set(ctx, resetKey(token), userID, ttl).Err()
}

// Take consumes the token atomically. A second Take with the same token
// returns ErrNotFound, as does an expired or unknown one.
func (s *ResetTokenStore) Take(ctx context.Context, token string) (int64, error) {
	v, err := s.rdb.GetDel(ctx, resetKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(v, 10, 64)
}
