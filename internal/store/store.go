package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"backline/internal/config"
	"backline/internal/logging"
)

// Reader loads a collection into dst. found is false when the collection has
// never been written; dst is left untouched so it keeps the caller's default.
type Reader interface {
	Get(ctx context.Context, collection string, dst any) (found bool, err error)
}

// Writer replaces a collection with v.
type Writer interface {
	Set(ctx context.Context, collection string, v any) error
}

// ReadWriter is the record store capability consumed by the repositories.
type ReadWriter interface {
	Reader
	Writer
}

// Mutator runs read-modify-write sequences atomically.
type Mutator interface {
	ReadWriter
	Mutate(ctx context.Context, fn func(ReadWriter) error) error
}

// Store manages collection persistence backed by SQLite.
type Store struct {
	db     *sql.DB
	path   string
	lock   *flock.Flock
	mu     sync.Mutex
	logger *slog.Logger
}

var _ Mutator = (*Store)(nil)

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
	lockRetryDelay          = 25 * time.Millisecond
)

// Open initializes or connects to the record store in cfg.Paths.DataDir.
func Open(cfg *config.Config, logger *slog.Logger) (*Store, error) {
	if cfg == nil {
		return nil, errors.New("store requires config")
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.StorePath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	s := &Store{
		db:     db,
		path:   dbPath,
		lock:   flock.New(cfg.LockPath()),
		logger: logging.NewComponentLogger(logger, "store"),
	}
	if err := s.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get decodes the named collection into dst.
func (s *Store) Get(ctx context.Context, collection string, dst any) (bool, error) {
	return get(ensureContext(ctx), s.db, collection, dst)
}

// Set replaces the named collection with the JSON encoding of v.
func (s *Store) Set(ctx context.Context, collection string, v any) error {
	ctx = ensureContext(ctx)
	if err := retryOnBusy(ctx, func() error { return set(ctx, s.db, collection, v) }); err != nil {
		return err
	}
	s.logger.Debug("collection saved", logging.String(logging.FieldCollection, collection))
	return nil
}

// Delete removes a collection entirely.
func (s *Store) Delete(ctx context.Context, collection string) error {
	ctx = ensureContext(ctx)
	return retryOnBusy(ctx, func() error {
		_, err := s.db.ExecContext(ctx, "DELETE FROM collections WHERE name = ?", collection)
		if err != nil {
			return fmt.Errorf("delete collection %s: %w", collection, err)
		}
		return nil
	})
}

// Collections lists stored collection names in alphabetical order.
func (s *Store) Collections(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx), "SELECT name FROM collections ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan collection name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Mutate runs fn inside a transaction while holding the data directory lock.
// The transaction commits only when fn returns nil.
func (s *Store) Mutate(ctx context.Context, fn func(ReadWriter) error) error {
	ctx = ensureContext(ctx)

	// flock handles are not reentrant across goroutines of one process.
	s.mu.Lock()
	defer s.mu.Unlock()

	locked, err := s.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("acquire store lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("acquire store lock: %s is held by another process", s.lock.Path())
	}
	defer func() {
		if err := s.lock.Unlock(); err != nil {
			s.logger.Warn("release store lock failed", logging.Error(err))
		}
	}()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(&Tx{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// Tx is the ReadWriter handed to Mutate callbacks.
type Tx struct {
	tx *sql.Tx
}

// Get decodes the named collection inside the transaction.
func (t *Tx) Get(ctx context.Context, collection string, dst any) (bool, error) {
	return get(ensureContext(ctx), t.tx, collection, dst)
}

// Set replaces the named collection inside the transaction.
func (t *Tx) Set(ctx context.Context, collection string, v any) error {
	return set(ensureContext(ctx), t.tx, collection, v)
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func get(ctx context.Context, q querier, collection string, dst any) (bool, error) {
	if strings.TrimSpace(collection) == "" {
		return false, errors.New("collection name required")
	}
	var data string
	err := q.QueryRowContext(ctx, "SELECT data FROM collections WHERE name = ?", collection).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read collection %s: %w", collection, err)
	}
	if err := json.Unmarshal([]byte(data), dst); err != nil {
		return false, fmt.Errorf("decode collection %s: %w", collection, err)
	}
	return true, nil
}

func set(ctx context.Context, q querier, collection string, v any) error {
	if strings.TrimSpace(collection) == "" {
		return errors.New("collection name required")
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", collection, err)
	}
	_, err = q.ExecContext(ctx,
		`INSERT INTO collections (name, data, updated_at) VALUES (?, ?, ?)
         ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		collection,
		string(data),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("write collection %s: %w", collection, err)
	}
	return nil
}

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}
