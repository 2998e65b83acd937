// Package testutil holds the shared test doubles: an in-memory cache, a
// recording notifier and mocks for the spreadsheet service.
package testutil

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"timekeeper/entity"
)

// Logger returns a logger that discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// FakeCache is an in-memory stand-in for the redis storage. It honors the
// cache contract: writing an empty map deletes the key, a missing key reads
// back as an empty map. TTLs are recorded but never enforced.
type FakeCache struct {
	mu   sync.Mutex
	data map[string]map[string]any
	ttls map[string]time.Duration
}

func NewFakeCache() *FakeCache {
	return &FakeCache{
		data: make(map[string]map[string]any),
		ttls: make(map[string]time.Duration),
	}
}

func (c *FakeCache) GetData(_ context.Context, key string) (map[string]any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data[key], nil
}

func (c *FakeCache) SetData(_ context.Context, key string, data map[string]any, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(data) == 0 {
		delete(c.data, key)
		delete(c.ttls, key)
		return nil
	}
	c.data[key] = data
	c.ttls[key] = ttl
	return nil
}

func (c *FakeCache) DelKeys(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.data, key)
		delete(c.ttls, key)
	}
	return nil
}

// Has reports whether a key is present.
func (c *FakeCache) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}

// TTL returns the ttl recorded for a key.
func (c *FakeCache) TTL(key string) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ttls[key]
}

// RecordingNotifier collects every notification instead of sending it.
type RecordingNotifier struct {
	mu       sync.Mutex
	Messages []string
}

func (n *RecordingNotifier) Notify(_ context.Context, message string, user *entity.User) error {
	if !user.HasSession() {
		return nil
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Messages = append(n.Messages, message)
	return nil
}

// Last returns the most recent notification, or "".
func (n *RecordingNotifier) Last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.Messages) == 0 {
		return ""
	}
	return n.Messages[len(n.Messages)-1]
}
