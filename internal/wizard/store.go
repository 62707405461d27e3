package wizard

// store.go persists wizard sessions so that a reload resumes the
// in-progress wizard.  The stored format is simply the JSON
// serialization of the Session value.

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "sync"
    "time"

    "github.com/redis/go-redis/v9"
)

// ErrSessionNotFound is returned when no session exists for the given
// organizer and id.
var ErrSessionNotFound = errors.New("wizard session not found")

// SessionStore loads and saves wizard sessions.  Implementations must
// round-trip the session exactly: current step, completed steps and
// all staged entity lists.
type SessionStore interface {
    Load(ctx context.Context, organizerID uint64, id string) (*Session, error)
    Save(ctx context.Context, s *Session) error
    Delete(ctx context.Context, organizerID uint64, id string) error
}

// sessionKey builds the fixed key a session is stored under.
func sessionKey(organizerID uint64, id string) string {
    return fmt.Sprintf("wizard:session:%d:%s", organizerID, id)
}

// RedisStore keeps sessions in Redis with a TTL so abandoned wizards
// expire on their own.
type RedisStore struct {
    rdb *redis.Client
    ttl time.Duration
}

// NewRedisStore constructs a RedisStore.  TTL values <= 0 disable
// expiry.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
    return &RedisStore{rdb: rdb, ttl: ttl}
}

// Load fetches and decodes a session, mapping a Redis miss onto
// ErrSessionNotFound.
func (st *RedisStore) Load(ctx context.Context, organizerID uint64, id string) (*Session, error) {
    raw, err := st.rdb.Get(ctx, sessionKey(organizerID, id)).Bytes()
    if err != nil {
        if errors.Is(err, redis.Nil) {
            return nil, ErrSessionNotFound
        }
        return nil, err
    }
    var s Session
    if err := json.Unmarshal(raw, &s); err != nil {
        return nil, fmt.Errorf("decode session: %w", err)
    }
    return &s, nil
}

// Save serializes the session under its fixed key.
func (st *RedisStore) Save(ctx context.Context, s *Session) error {
    raw, err := json.Marshal(s)
    if err != nil {
        return fmt.Errorf("encode session: %w", err)
    }
    return st.rdb.Set(ctx, sessionKey(s.OrganizerID, s.ID), raw, st.ttl).Err()
}

// Delete removes the session; deleting a missing session is not an
// error (reset is idempotent).
func (st *RedisStore) Delete(ctx context.Context, organizerID uint64, id string) error {
    return st.rdb.Del(ctx, sessionKey(organizerID, id)).Err()
}

// MemoryStore is an in-process SessionStore used in tests and as a
// fallback when Redis is unavailable at startup.  It stores the same
// JSON bytes Redis would, so serialization bugs surface in tests too.
type MemoryStore struct {
    mu sync.RWMutex
    m  map[string][]byte
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
    return &MemoryStore{m: map[string][]byte{}}
}

// Load decodes the stored JSON for the session, if any.
func (st *MemoryStore) Load(ctx context.Context, organizerID uint64, id string) (*Session, error) {
    st.mu.RLock()
    raw, ok := st.m[sessionKey(organizerID, id)]
    st.mu.RUnlock()
    if !ok {
        return nil, ErrSessionNotFound
    }
    var s Session
    if err := json.Unmarshal(raw, &s); err != nil {
        return nil, fmt.Errorf("decode session: %w", err)
    }
    return &s, nil
}

// Save serializes the session into the map.
func (st *MemoryStore) Save(ctx context.Context, s *Session) error {
    raw, err := json.Marshal(s)
    if err != nil {
        return fmt.Errorf("encode session: %w", err)
    }
    st.mu.Lock()
    st.m[sessionKey(s.OrganizerID, s.ID)] = raw
    st.mu.Unlock()
    return nil
}

// Delete removes the session from the map.
func (st *MemoryStore) Delete(ctx context.Context, organizerID uint64, id string) error {
    st.mu.Lock()
    delete(st.m, sessionKey(organizerID, id))
    st.mu.Unlock()
    return nil
}
