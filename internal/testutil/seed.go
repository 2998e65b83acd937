package testutil

import (
	"context"
	"testing"

	"timekeeper/internal/storage"
)

// Seed stores one entity in the fake cache under the given key.
func Seed(t *testing.T, cache *FakeCache, key string, v any) {
	t.Helper()
	data, err := storage.Encode(v)
	if err != nil {
		t.Fatalf("encoding seed for %s: %v", key, err)
	}
	if err := cache.SetData(context.Background(), key, data, 0); err != nil {
		t.Fatalf("seeding %s: %v", key, err)
	}
}

// SeedList stores a slice of entities the way handbook lists are cached.
func SeedList[T any](t *testing.T, cache *FakeCache, key string, items []T) {
	t.Helper()
	data, err := storage.EncodeList(key, items)
	if err != nil {
		t.Fatalf("encoding seed list for %s: %v", key, err)
	}
	if err := cache.SetData(context.Background(), key, data, 0); err != nil {
		t.Fatalf("seeding %s: %v", key, err)
	}
}
