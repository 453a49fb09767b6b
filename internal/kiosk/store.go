package kiosk

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore persists kiosk sessions between requests. Load reports
// found=false for unknown or expired sessions; callers treat that as a
// fresh session in search mode, which is also what gives reloads their
// always-reset behavior.
type SessionStore interface {
	Load(ctx context.Context, id string) (State, bool, error)
	Save(ctx context.Context, id string, s State) error
	Delete(ctx context.Context, id string) error
}

// NewStore returns a Redis-backed store, or the in-process store when no
// Redis client is available.
func NewStore(rdb *redis.Client, ttl time.Duration) SessionStore {
	if rdb != nil {
		return &RedisStore{rdb: rdb, ttl: ttl}
	}
	return NewMemoryStore(ttl)
}

// RedisStore keeps sessions as JSON values with a TTL, so abandoned kiosk
// sessions expire on their own.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func sessionKey(id string) string { return "kiosk:session:" + id }

func (r *RedisStore) Load(ctx context.Context, id string) (State, bool, error) {
	raw, err := r.rdb.Get(ctx, sessionKey(id)).Bytes()
	if err == redis.Nil {
		return State{}, false, nil
	}
	if err != nil {
		return State{}, false, err
	}
	var s State
	if err := json.Unmarshal(raw, &s); err != nil {
		return State{}, false, err
	}
	return s, true, nil
}

func (r *RedisStore) Save(ctx context.Context, id string, s State) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, sessionKey(id), raw, r.ttl).Err()
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	return r.rdb.Del(ctx, sessionKey(id)).Err()
}

// MemoryStore is the single-process fallback used in dev and tests.
type MemoryStore struct {
	mu  sync.Mutex
	m   map[string]memoryEntry
	ttl time.Duration
}

type memoryEntry struct {
	state State
	exp   time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{m: make(map[string]memoryEntry), ttl: ttl}
}

func (ms *MemoryStore) Load(_ context.Context, id string) (State, bool, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	e, ok := ms.m[id]
	if !ok || time.Now().After(e.exp) {
		delete(ms.m, id)
		return State{}, false, nil
	}
	return e.state, true, nil
}

func (ms *MemoryStore) Save(_ context.Context, id string, s State) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.m[id] = memoryEntry{state: s, exp: time.Now().Add(ms.ttl)}
	return nil
}

func (ms *MemoryStore) Delete(_ context.Context, id string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	delete(ms.m, id)
	return nil
}
