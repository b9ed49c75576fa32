package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNotFound indicates the token matches no live session — never issued,
// destroyed, or expired past its TTL.
var ErrNotFound = errors.New("session: not found")

// Session is the server-side record identifying an authenticated caller.
// The raw token exists only in the client's cookie; Redis keys are derived
// from its hash, so a leaked dump never exposes usable tokens.
type Session struct {
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// Connect dials Redis and verifies the connection before returning.
func Connect(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("session: failed to connect to redis: %w", err)
	}

	return client, nil
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

// Create opens a session for userID and returns the raw token to hand to the
// client.
func (s *Store) Create(ctx context.Context, userID int64) (string, error) {
	token := uuid.New()

	data, err := json.Marshal(Session{
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return "", fmt.Errorf("session: marshal: %w", err)
	}

	if err := s.client.Set(ctx, keyFor(token), data, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("session: create: %w", err)
	}

	return token.String(), nil
}

// Get resolves a raw token to its session record, or ErrNotFound.
func (s *Store) Get(ctx context.Context, token string) (*Session, error) {
	uid, err := uuid.Parse(token)
	if err != nil {
		return nil, ErrNotFound
	}

	data, err := s.client.Get(ctx, keyFor(uid)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("session: get: %w", err)
	}

	var sess Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, fmt.Errorf("session: unmarshal: %w", err)
	}

	return &sess, nil
}

// Destroy removes the session for token. Destroying an unknown token is not
// an error, so logout stays idempotent.
func (s *Store) Destroy(ctx context.Context, token string) error {
	uid, err := uuid.Parse(token)
	if err != nil {
		return nil
	}

	if err := s.client.Del(ctx, keyFor(uid)).Err(); err != nil {
		return fmt.Errorf("session: destroy: %w", err)
	}

	return nil
}

func keyFor(token uuid.UUID) string {
	hash := sha256.Sum256(token[:])
	return "session:" + hex.EncodeToString(hash[:])
}
