package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/minderapp/minder/internal/logger"
	_ "modernc.org/sqlite"
)

// Names of the shared stores
const (
	UsersStore      = "users"
	FailedSigninLog = "failed_signin_log"
)

// ErrUnknownStore is returned when a query names a store that was never opened
var ErrUnknownStore = errors.New("no such store")

// initScripts maps each named store to the script that creates its tables
var initScripts = map[string]string{
	UsersStore:      initUsersStore,
	FailedSigninLog: initFailedSigninLog,
}

// Manager owns the connections to the named sqlite stores and the per-user
// reminder stores. Per-user stores are created lazily on first access, one
// database file per user id. All access goes through database/sql, whose
// connection pool provides the synchronization the stores need.
type Manager struct {
	dir string

	mu    sync.Mutex
	conns map[string]*sql.DB
}

// Open connects to the named stores under dir and runs their initialization
// scripts. Any failure here is fatal to startup: running with a missing
// store is worse than not running.
func Open(dir string, names ...string) (*Manager, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	m := &Manager{
		dir:   dir,
		conns: make(map[string]*sql.DB),
	}

	for _, name := range names {
		db, err := m.open(filepath.Join(dir, name+".sqlite"))
		if err != nil {
			m.Close()
			return nil, fmt.Errorf("failed to open store %q: %w", name, err)
		}
		if script, ok := initScripts[name]; ok {
			if _, err := db.Exec(script); err != nil {
				db.Close()
				m.Close()
				return nil, fmt.Errorf("failed to initialize store %q: %w", name, err)
			}
		}
		m.conns[name] = db
		logger.Info("Connected to store", logger.F("store", name))
	}

	return m, nil
}

// open connects to a single sqlite file
func (m *Manager) open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	// sqlite allows one writer; a single pooled connection per store keeps
	// concurrent requests from tripping over SQLITE_BUSY
	db.SetMaxOpenConns(1)
	return db, nil
}

// Exec runs a statement against a named store. The result is committed on
// success. Failures are logged with the query name and target store and
// returned; callers treat them as "operation did not happen".
func (m *Manager) Exec(store, queryName, query string, args ...any) error {
	db, err := m.named(store)
	if err != nil {
		logger.Error("Unable to perform query - store not available",
			logger.F("query", queryName), logger.F("store", store))
		return err
	}

	if _, err := db.Exec(query, args...); err != nil {
		logger.Error("Query failed",
			logger.F("query", queryName), logger.F("store", store), logger.F("error", err))
		return fmt.Errorf("query %q on store %q: %w", queryName, store, err)
	}

	logger.Debug("Query performed", logger.F("query", queryName), logger.F("store", store))
	return nil
}

// Query runs a parametric query against a named store and returns the result
// rows, or an error if the store is unknown or the query failed.
func (m *Manager) Query(store, queryName, query string, args ...any) (*sql.Rows, error) {
	db, err := m.named(store)
	if err != nil {
		logger.Error("Unable to perform query - store not available",
			logger.F("query", queryName), logger.F("store", store))
		return nil, err
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		logger.Error("Query failed",
			logger.F("query", queryName), logger.F("store", store), logger.F("error", err))
		return nil, fmt.Errorf("query %q on store %q: %w", queryName, store, err)
	}

	logger.Debug("Query performed", logger.F("query", queryName), logger.F("store", store))
	return rows, nil
}

// UserExec runs a statement against a user's reminder store, pruning expired
// reminders first
func (m *Manager) UserExec(userID, queryName, query string, args ...any) error {
	db, err := m.userStore(userID)
	if err != nil {
		logger.Error("Unable to access reminder store",
			logger.F("user", userID), logger.F("query", queryName))
		return err
	}

	if _, err := db.Exec(pruneExpiredReminders); err != nil {
		logger.Error("Expired reminder prune failed",
			logger.F("user", userID), logger.F("error", err))
		return fmt.Errorf("expiry prune for user %q: %w", userID, err)
	}

	if _, err := db.Exec(query, args...); err != nil {
		logger.Error("Reminder query failed",
			logger.F("user", userID), logger.F("query", queryName), logger.F("error", err))
		return fmt.Errorf("query %q on reminder store for user %q: %w", queryName, userID, err)
	}

	logger.Debug("Reminder query performed",
		logger.F("user", userID), logger.F("query", queryName))
	return nil
}

// UserQuery runs a query against a user's reminder store, pruning expired
// reminders first
func (m *Manager) UserQuery(userID, queryName, query string, args ...any) (*sql.Rows, error) {
	db, err := m.userStore(userID)
	if err != nil {
		logger.Error("Unable to access reminder store",
			logger.F("user", userID), logger.F("query", queryName))
		return nil, err
	}

	if _, err := db.Exec(pruneExpiredReminders); err != nil {
		logger.Error("Expired reminder prune failed",
			logger.F("user", userID), logger.F("error", err))
		return nil, fmt.Errorf("expiry prune for user %q: %w", userID, err)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		logger.Error("Reminder query failed",
			logger.F("user", userID), logger.F("query", queryName), logger.F("error", err))
		return nil, fmt.Errorf("query %q on reminder store for user %q: %w", queryName, userID, err)
	}

	logger.Debug("Reminder query performed",
		logger.F("user", userID), logger.F("query", queryName))
	return rows, nil
}

// named returns the connection for a named store
func (m *Manager) named(store string) (*sql.DB, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	db, ok := m.conns[store]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStore, store)
	}
	return db, nil
}

// userStore returns the connection for a user's reminder store, creating the
// database file and its tables on first access
func (m *Manager) userStore(userID string) (*sql.DB, error) {
	key := "user:" + userID

	m.mu.Lock()
	defer m.mu.Unlock()

	if db, ok := m.conns[key]; ok {
		return db, nil
	}

	db, err := m.open(filepath.Join(m.dir, userID+".sqlite"))
	if err != nil {
		return nil, fmt.Errorf("failed to open reminder store for user %q: %w", userID, err)
	}
	if _, err := db.Exec(initReminderStore); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize reminder store for user %q: %w", userID, err)
	}

	m.conns[key] = db
	logger.Info("Connected to reminder store", logger.F("user", userID))
	return db, nil
}

// Close closes every open store connection
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var firstErr error
	for name, db := range m.conns {
		if err := db.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(m.conns, name)
	}
	return firstErr
}
