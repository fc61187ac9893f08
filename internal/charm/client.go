// ABOUTME: Charm KV storage engine for workouts and exercises.
// ABOUTME: Provides thread-safe initialization, ID sequences, and automatic cloud sync.
package charm

import (
	"bytes"
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"sync"

	"github.com/charmbracelet/charm/client"
	"github.com/charmbracelet/charm/kv"
	"github.com/dgraph-io/badger/v3"
	"github.com/harperreed/fitness/internal/models"
	"github.com/harperreed/fitness/internal/storage"
)

const (
	DBName           = "fitness"
	defaultCharmHost = "charm.2389.dev"

	WorkoutPrefix  = "workout:"
	ExercisePrefix = "exercise:"
	workoutSeqKey  = "seq:workout"
	exerciseSeqKey = "seq:exercise"
)

// ErrReadOnly is returned for writes while another process holds the database lock.
var ErrReadOnly = errors.New("cannot write: database is locked by another process (MCP server?)")

// kvStore is the subset of *kv.KV the engine uses.
type kvStore interface {
	Get(key []byte) ([]byte, error)
	Set(key, value []byte) error
	Delete(key []byte) error
	Keys() ([][]byte, error)
	Sync() error
	Reset() error
	Close() error
	IsReadOnly() bool
}

// Store implements storage.Backend on a Charm KV database.
type Store struct {
	kv       kvStore
	autoSync bool
	mu       sync.RWMutex
}

var _ storage.Backend = (*Store)(nil)

// Open opens the fitness KV database, falling back to read-only mode when
// another process holds the lock, and pulls remote data once.
func Open() (*Store, error) {
	if os.Getenv("CHARM_HOST") == "" {
		if err := os.Setenv("CHARM_HOST", defaultCharmHost); err != nil {
			return nil, fmt.Errorf("set charm host: %w", err)
		}
	}

	db, err := kv.OpenWithDefaultsFallback(DBName)
	if err != nil {
		return nil, fmt.Errorf("open charm kv: %w", err)
	}

	s := NewStore(db)
	if !db.IsReadOnly() {
		_ = db.Sync()
	}
	return s, nil
}

// NewStore wraps an open KV database. Auto-sync is enabled.
func NewStore(db kvStore) *Store {
	return &Store{kv: db, autoSync: true}
}

// Workouts returns the workout store view.
func (s *Store) Workouts() storage.WorkoutStore {
	return kvWorkouts{s}
}

// Exercises returns the exercise store view.
func (s *Store) Exercises() storage.ExerciseStore {
	return kvExercises{s}
}

// Close closes the KV database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.kv != nil {
		return s.kv.Close()
	}
	return nil
}

// IsReadOnly returns true if the database is open in read-only mode.
// This happens when another process (like an MCP server) holds the lock.
func (s *Store) IsReadOnly() bool {
	return s.kv.IsReadOnly()
}

// Sync synchronizes local state with Charm Cloud.
func (s *Store) Sync() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.kv.IsReadOnly() {
		return nil
	}
	return s.kv.Sync()
}

// SetAutoSync enables or disables automatic sync after writes.
func (s *Store) SetAutoSync(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.autoSync = enabled
}

// Reset wipes local data and rebuilds from Charm Cloud.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.kv.IsReadOnly() {
		return ErrReadOnly
	}
	return s.kv.Reset()
}

// ID returns the Charm user ID for the current account.
func ID() (string, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", fmt.Errorf("create charm client: %w", err)
	}
	return cc.ID()
}

// syncIfEnabled must be called with s.mu held.
func (s *Store) syncIfEnabled() {
	if s.autoSync && !s.kv.IsReadOnly() {
		_ = s.kv.Sync()
	}
}

// writable must be called with s.mu held.
func (s *Store) writable(op string) error {
	if s.kv.IsReadOnly() {
		return models.DatabaseError(op, ErrReadOnly)
	}
	return nil
}

// nextID increments and returns the counter under seqKey. Must be called with s.mu held.
// Counters are per device until synced, so two offline writers can draw the same ID.
func (s *Store) nextID(seqKey string) (int64, error) {
	var current int64
	data, err := s.kv.Get([]byte(seqKey))
	switch {
	case errors.Is(err, badger.ErrKeyNotFound):
	case err != nil:
		return 0, err
	default:
		current, err = strconv.ParseInt(string(data), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parse %s: %w", seqKey, err)
		}
	}

	current++
	if err := s.kv.Set([]byte(seqKey), []byte(strconv.FormatInt(current, 10))); err != nil {
		return 0, err
	}
	return current, nil
}

// get decodes the value at key into out. It reports false when the key is absent.
func (s *Store) get(key string, out any) (bool, error) {
	data, err := s.kv.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return true, nil
}

// put encodes v as JSON and stores it under key.
func (s *Store) put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return s.kv.Set([]byte(key), data)
}

// listByPrefix decodes every value whose key starts with prefix.
func listByPrefix[T any](s *Store, prefix string) ([]T, error) {
	keys, err := s.kv.Keys()
	if err != nil {
		return nil, err
	}

	prefixBytes := []byte(prefix)
	var results []T
	for _, key := range keys {
		if !bytes.HasPrefix(key, prefixBytes) {
			continue
		}
		val, err := s.kv.Get(key)
		if err != nil {
			return nil, err
		}
		var rec T
		if err := json.Unmarshal(val, &rec); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", key, err)
		}
		results = append(results, rec)
	}
	return results, nil
}

func workoutKey(id int64) string {
	return WorkoutPrefix + strconv.FormatInt(id, 10)
}

func exerciseKey(id int64) string {
	return ExercisePrefix + strconv.FormatInt(id, 10)
}

func sortByID[T any](records []T, id func(T) int64) {
	slices.SortFunc(records, func(a, b T) int {
		return cmp.Compare(id(a), id(b))
	})
}
