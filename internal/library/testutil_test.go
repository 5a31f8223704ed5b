package library

import (
	"testing"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// ptr is a helper to create pointer to value
func ptr[T any](v T) *T {
	return &v
}
