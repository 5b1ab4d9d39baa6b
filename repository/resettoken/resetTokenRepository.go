// Package resettoken stores single-use password reset tokens.
package resettoken

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrInvalidToken indicates the token is unknown, expired or already used.
var ErrInvalidToken = errors.New("invalid or expired reset token")

type Store interface {
	Save(ctx context.Context, token string, userID int64, ttl time.Duration) error
	// Consume returns the user id and invalidates the token.
	Consume(ctx context.Context, token string) (int64, error)
}

// digest is the stored form of a token.
func digest(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}

type memoryEntry struct {
	userID int64
	expiry time.Time
}

// MemoryStore keeps tokens in process memory.
type MemoryStore struct {
	mu     sync.Mutex
	tokens map[string]memoryEntry
	now    func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tokens: make(map[string]memoryEntry), now: time.Now}
}

// Save also drops every expired token still held.
func (s *MemoryStore) Save(_ context.Context, token string, userID int64, ttl time.Duration) error {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	for k, e := range s.tokens {
		if now.After(e.expiry) {
			delete(s.tokens, k)
		}
	}
	s.tokens[digest(token)] = memoryEntry{userID: userID, expiry: now.Add(ttl)}
	return nil
}

func (s *MemoryStore) Consume(_ context.Context, token string) (int64, error) {
	key := digest(token)

	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.tokens[key]
	delete(s.tokens, key)
	if !ok || s.now().After(e.expiry) {
		return 0, ErrInvalidToken
	}
	return e.userID, nil
}

// RedisStore keeps tokens in Redis with native key expiry.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, keyPrefix: "bookrental:reset"}
}

func (s *RedisStore) key(token string) string { return s.keyPrefix + ":" + digest(token) }

func (s *RedisStore) Save(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	return s.client.Set(ctx, s.key(token), strconv.FormatInt(userID, 10), ttl).Err()
}

func (s *RedisStore) Consume(ctx context.Context, token string) (int64, error) {
	raw, err := s.client.GetDel(ctx, s.key(token)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrInvalidToken
	}
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return id, nil
}
