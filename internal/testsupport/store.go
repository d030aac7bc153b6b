package testsupport

import (
	"testing"

	"backline/internal/config"
	"backline/internal/equipment"
	"backline/internal/logging"
	"backline/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	s, err := store.Open(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
	})
	return s
}

// MustOpenRepository opens a SQLite-backed equipment repository.
func MustOpenRepository(t testing.TB, cfg *config.Config) *equipment.Repository {
	t.Helper()
	return equipment.NewRepository(MustOpenStore(t, cfg), logging.NewNop())
}
