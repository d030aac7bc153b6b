package store_test

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"

	"backline/internal/logging"
	"backline/internal/store"
	"backline/internal/testsupport"
)

type record struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestGetReportsAbsentCollection(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	s := testsupport.MustOpenStore(t, cfg)

	fallback := []record{{ID: "default"}}
	found, err := s.Get(context.Background(), "members", &fallback)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if found {
		t.Fatal("expected collection to be absent")
	}
	if len(fallback) != 1 || fallback[0].ID != "default" {
		t.Fatalf("expected default to be untouched, got %#v", fallback)
	}
}

func TestSetThenGetRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	s := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	if err := store.SaveList(ctx, s, "members", []record{{ID: "a", Name: "Ana"}, {ID: "b", Name: "Bo"}}); err != nil {
		t.Fatalf("SaveList: %v", err)
	}
	got, err := store.LoadList[record](ctx, s, "members")
	if err != nil {
		t.Fatalf("LoadList: %v", err)
	}
	if len(got) != 2 || got[1].Name != "Bo" {
		t.Fatalf("unexpected records %#v", got)
	}

	names, err := s.Collections(ctx)
	if err != nil {
		t.Fatalf("Collections: %v", err)
	}
	if len(names) != 1 || names[0] != "members" {
		t.Fatalf("unexpected collections %v", names)
	}

	if err := s.Delete(ctx, "members"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got, err = store.LoadList[record](ctx, s, "members")
	if err != nil {
		t.Fatalf("LoadList after delete: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestReopenKeepsData(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	ctx := context.Background()

	first, err := store.Open(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := first.Set(ctx, "pa", []record{{ID: "desk"}}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	first.Close()

	second := testsupport.MustOpenStore(t, cfg)
	got, err := store.LoadList[record](ctx, second, "pa")
	if err != nil {
		t.Fatalf("LoadList: %v", err)
	}
	if len(got) != 1 || got[0].ID != "desk" {
		t.Fatalf("unexpected records after reopen %#v", got)
	}
}

func TestMutateRollsBackOnError(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	s := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	if err := store.SaveList(ctx, s, "mics", []record{{ID: "sm58"}}); err != nil {
		t.Fatalf("SaveList: %v", err)
	}
	boom := errors.New("boom")
	err := s.Mutate(ctx, func(rw store.ReadWriter) error {
		if err := store.SaveList(ctx, rw, "mics", []record{}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	got, err := store.LoadList[record](ctx, s, "mics")
	if err != nil {
		t.Fatalf("LoadList: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected rollback to keep original record, got %#v", got)
	}
}

func TestMutateSerializesReadModifyWrite(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	s := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	const writers = 8
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- s.Mutate(ctx, func(rw store.ReadWriter) error {
				items, err := store.LoadList[record](ctx, rw, "counter")
				if err != nil {
					return err
				}
				items = append(items, record{ID: string(rune('a' + i))})
				return store.SaveList(ctx, rw, "counter", items)
			})
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("Mutate: %v", err)
		}
	}

	got, err := store.LoadList[record](ctx, s, "counter")
	if err != nil {
		t.Fatalf("LoadList: %v", err)
	}
	if len(got) != writers {
		t.Fatalf("expected %d records, lost updates: got %d", writers, len(got))
	}
}

func TestMemoryMutatePublishesOnlyOnSuccess(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	if err := m.Mutate(ctx, func(rw store.ReadWriter) error {
		return store.SaveList(ctx, rw, "members", []record{{ID: "x"}})
	}); err != nil {
		t.Fatalf("Mutate: %v", err)
	}
	_ = m.Mutate(ctx, func(rw store.ReadWriter) error {
		_ = store.SaveList(ctx, rw, "members", []record{})
		return errors.New("abort")
	})

	got, err := store.LoadList[record](ctx, m, "members")
	if err != nil {
		t.Fatalf("LoadList: %v", err)
	}
	if len(got) != 1 || got[0].ID != "x" {
		t.Fatalf("unexpected memory contents %#v", got)
	}
}

func TestOpenRejectsNewerSchema(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	first, err := store.Open(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	first.Close()

	db, err := sql.Open("sqlite", cfg.StorePath())
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	if _, err := db.Exec("PRAGMA user_version = 99"); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	db.Close()

	if _, err := store.Open(cfg, logging.NewNop()); !errors.Is(err, store.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}
