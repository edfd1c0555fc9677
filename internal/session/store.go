package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Session is everything the frontend remembers about a signed-in viewer:
// the backend bearer token, the role decoded from it, and a display name.
// It exists from login until logout or the first rejected credential.
type Session struct {
	Token    string `json:"token"`
	Role     string `json:"role"`
	Username string `json:"username"`
}

// Flash is a one-shot notification banner carried across a redirect.
type Flash struct {
	Message string `json:"message"`
	Kind    string `json:"kind"` // "success" or "error"
}

// Store keeps sessions in Redis keyed by an opaque id carried in a cookie.
// It is the only reader/writer of session state in the application.
type Store struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// Connect configures a Redis client using the supplied URL.
func Connect(url string) (*redis.Client, error) {
	if url == "" {
		return nil, fmt.Errorf("redis url must not be empty")
	}

	options, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(options)

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("unable to connect to redis: %w", err)
	}

	return client, nil
}

// NewStore builds a session store with the given lifetime.
func NewStore(rdb *redis.Client, ttl time.Duration, logger zerolog.Logger) *Store {
	return &Store{
		rdb:    rdb,
		ttl:    ttl,
		logger: logger.With().Str("component", "session_store").Logger(),
	}
}

func sessionKey(id string) string {
	return "session:" + id
}

func flashKey(id string) string {
	return "flash:" + id
}

// Create persists a new session and returns its id.
func (s *Store) Create(ctx context.Context, sess Session) (string, error) {
	payload, err := json.Marshal(sess)
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}

	id := uuid.NewString()
	if err := s.rdb.Set(ctx, sessionKey(id), payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	return id, nil
}

// Get loads a session by id. The second return value reports whether a live
// session exists; an expired or unknown id is not an error.
func (s *Store) Get(ctx context.Context, id string) (Session, bool, error) {
	if id == "" {
		return Session{}, false, nil
	}

	payload, err := s.rdb.Get(ctx, sessionKey(id)).Result()
	if err == redis.Nil {
		return Session{}, false, nil
	}
	if err != nil {
		return Session{}, false, fmt.Errorf("load session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal([]byte(payload), &sess); err != nil {
		s.logger.Warn().Str("session_id", id).Msg("discarding undecodable session")
		_ = s.rdb.Del(ctx, sessionKey(id)).Err()
		return Session{}, false, nil
	}

	return sess, true, nil
}

// Destroy removes a session and any pending flash. Destroying a session that
// no longer exists is a no-op.
func (s *Store) Destroy(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.rdb.Del(ctx, sessionKey(id), flashKey(id)).Err()
}

// PutFlash stores the next notification banner for a session.
func (s *Store) PutFlash(ctx context.Context, id string, flash Flash) error {
	payload, err := json.Marshal(flash)
	if err != nil {
		return fmt.Errorf("marshal flash: %w", err)
	}
	return s.rdb.Set(ctx, flashKey(id), payload, s.ttl).Err()
}

// PopFlash returns and clears the pending banner, if any.
func (s *Store) PopFlash(ctx context.Context, id string) (Flash, bool) {
	if id == "" {
		return Flash{}, false
	}

	payload, err := s.rdb.GetDel(ctx, flashKey(id)).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read flash")
		}
		return Flash{}, false
	}

	var flash Flash
	if err := json.Unmarshal([]byte(payload), &flash); err != nil {
		return Flash{}, false
	}
	return flash, true
}
