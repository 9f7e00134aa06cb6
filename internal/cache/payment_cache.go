// Package cache keeps a short-lived record of completed payment codes in
// Redis so that webhook retries can be answered without touching the ledger.
// The database stays authoritative; a miss or a Redis failure falls through
// to the normal lookup.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	keyPrefix = "appledger:paycode:"

	// DefaultTTL covers the retry window of the payment provider.
	DefaultTTL = 24 * time.Hour
)

// Completion is what is remembered about a completed payment request.
type Completion struct {
	EntryID    string `json:"entry_id"`
	ExternalID string `json:"external_id"`
}

// PaymentCache maps verification codes to the bank transaction that
// completed them. A nil *PaymentCache is valid and caches nothing.
type PaymentCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPaymentCache wraps client. It returns nil when client is nil so callers
// can pass the result of an optional connection straight through.
func NewPaymentCache(client *redis.Client, ttl time.Duration) *PaymentCache {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &PaymentCache{client: client, ttl: ttl}
}

// RememberCompletion records that code was completed.
func (c *PaymentCache) RememberCompletion(ctx context.Context, code string, completion Completion) error {
	if c == nil {
		return nil
	}
	data, err := json.Marshal(completion)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, keyPrefix+code, string(data), c.ttl).Err()
}

// CompletedBy returns the cached completion of code, if any.
func (c *PaymentCache) CompletedBy(ctx context.Context, code string) (*Completion, error) {
	if c == nil {
		return nil, nil
	}
	raw, err := c.client.Get(ctx, keyPrefix+code).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var completion Completion
	if err := json.Unmarshal([]byte(raw), &completion); err != nil {
		return nil, err
	}
	return &completion, nil
}

// Forget drops the cached completion for code.
func (c *PaymentCache) Forget(ctx context.Context, code string) error {
	if c == nil {
		return nil
	}
	return c.client.Del(ctx, keyPrefix+code).Err()
}
