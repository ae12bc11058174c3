package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/hyperjump/patristica/internal/models"
	"go.uber.org/zap"
)

var (
	// ErrSnapshotNotFound is returned by Load when no snapshot has been published.
	ErrSnapshotNotFound = errors.New("snapshot not found")
	// ErrSnapshotLocked is returned when another writer holds the publish lock.
	ErrSnapshotLocked = errors.New("snapshot is being published by another process")
)

// lockRetryDelay is the pause between publish lock attempts.
const lockRetryDelay = 200 * time.Millisecond

// SnapshotStore publishes and loads the lookup snapshot at a fixed path.
// Writers serialize on "<path>.lock"; readers never lock.
type SnapshotStore struct {
	path        string
	lockTimeout time.Duration
	logger      *zap.Logger
}

// NewSnapshotStore returns a store for path. logger may be nil.
func NewSnapshotStore(path string, lockTimeout time.Duration, logger *zap.Logger) *SnapshotStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SnapshotStore{path: path, lockTimeout: lockTimeout, logger: logger}
}

// Path returns the snapshot location.
func (s *SnapshotStore) Path() string {
	return s.path
}

// LockPath returns the publish lock location.
func (s *SnapshotStore) LockPath() string {
	return s.path + ".lock"
}

// Write publishes lookup. The file is indented with one space, keeps bucket
// order and caps entry text; it replaces the previous snapshot atomically.
func (s *SnapshotStore) Write(ctx context.Context, lookup *models.Lookup) error {
	if lookup == nil {
		return errors.New("write snapshot: nil lookup")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}
	unlock, err := s.acquireLock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	if err := WriteJSON(s.path, lookup, " "); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	s.logger.Info("snapshot published",
		zap.String("path", s.path),
		zap.Int("chapters", lookup.Len()),
		zap.Int("entries", lookup.EntryCount()),
	)
	return nil
}

// Load reads the published snapshot.
func (s *SnapshotStore) Load() (*models.Lookup, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", s.path, ErrSnapshotNotFound)
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	lookup := models.NewLookup()
	if err := lookup.UnmarshalJSON(data); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", s.path, err)
	}
	return lookup, nil
}

// acquireLock polls the publish lock until it is held, the timeout passes or ctx ends.
func (s *SnapshotStore) acquireLock(ctx context.Context) (func(), error) {
	l := flock.New(s.LockPath())
	deadline := time.Now().Add(s.lockTimeout)
	for {
		locked, err := l.TryLock()
		if err != nil {
			return nil, fmt.Errorf("cannot acquire snapshot lock: %w", err)
		}
		if locked {
			return func() { _ = l.Unlock() }, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w (lock: %s)", ErrSnapshotLocked, s.LockPath())
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockRetryDelay):
		}
	}
}
