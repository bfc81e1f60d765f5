// Package redis stores responses of idempotent requests so that a retried request with
// the same Idempotency-Key gets the original response instead of running twice.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultTTL is how long a completed response is remembered.
const DefaultTTL = 24 * time.Hour

// DefaultPendingTTL bounds how long a claimed key blocks duplicates when its owner
// never completes or releases it.
const DefaultPendingTTL = 30 * time.Second

const (
	keyPrefix     = "idempotency:"
	pendingMarker = "pending"
)

// State is the outcome of Begin.
type State int

const (
	// Started means the caller owns the key and must Complete or Release it.
	Started State = iota
	// InProgress means another request with the same key is still running.
	InProgress
	// Completed means a response was stored and must be replayed.
	Completed
)

// Response is a stored HTTP response.
type Response struct {
	Status      int    `json:"status"`
	ContentType string `json:"contentType"`
	Body        []byte `json:"body"`
}

type IdempotencyStore struct {
	client     redis.Cmdable
	ttl        time.Duration
	pendingTTL time.Duration
}

// NewIdempotencyStore keeps completed responses for ttl. Non-positive values fall back
// to the defaults.
func NewIdempotencyStore(client redis.Cmdable, ttl, pendingTTL time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if pendingTTL <= 0 {
		pendingTTL = DefaultPendingTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl, pendingTTL: pendingTTL}
}

// Begin claims key with SET NX for the pending TTL. When the key is already taken it
// reports whether the earlier request is still running or has a stored response.
func (s *IdempotencyStore) Begin(ctx context.Context, key string) (State, *Response, error) {
	claimed, err := s.client.SetNX(ctx, keyPrefix+key, pendingMarker, s.pendingTTL).Result()
	if err != nil {
		return 0, nil, fmt.Errorf("claim idempotency key: %w", err)
	}
	if claimed {
		return Started, nil, nil
	}

	raw, err := s.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		// expired between SETNX and GET
		return InProgress, nil, nil
	}
	if err != nil {
		return 0, nil, fmt.Errorf("load idempotency key: %w", err)
	}
	if string(raw) == pendingMarker {
		return InProgress, nil, nil
	}

	var resp Response
	if err = json.Unmarshal(raw, &resp); err != nil {
		return 0, nil, fmt.Errorf("decode stored response: %w", err)
	}
	return Completed, &resp, nil
}

// Complete stores the response for the rest of the key's lifetime.
func (s *IdempotencyStore) Complete(ctx context.Context, key string, resp Response) error {
	payload, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, keyPrefix+key, payload, s.ttl).Err()
}

// Release forgets key so the request may be retried, used when it failed without a
// response worth replaying.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, keyPrefix+key).Err()
}
