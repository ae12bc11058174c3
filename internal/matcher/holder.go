package matcher

import (
	"sync/atomic"
	"time"

	"github.com/hyperjump/patristica/internal/models"
	"go.uber.org/zap"
)

// SnapshotLoader loads a published lookup.
type SnapshotLoader interface {
	Load() (*models.Lookup, error)
}

type loaded struct {
	lookup *models.Lookup
	at     time.Time
}

// Holder serves the current lookup to concurrent readers. Reload swaps in a
// freshly loaded snapshot; readers keep whichever lookup they already obtained.
type Holder struct {
	source  SnapshotLoader
	current atomic.Pointer[loaded]
	logger  *zap.Logger
}

// NewHolder returns an empty holder backed by source. logger may be nil.
func NewHolder(source SnapshotLoader, logger *zap.Logger) *Holder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Holder{source: source, logger: logger}
}

// Lookup returns the current lookup, or nil before the first successful load.
func (h *Holder) Lookup() *models.Lookup {
	if cur := h.current.Load(); cur != nil {
		return cur.lookup
	}
	return nil
}

// LoadedAt returns when the current lookup was loaded; zero before the first load.
func (h *Holder) LoadedAt() time.Time {
	if cur := h.current.Load(); cur != nil {
		return cur.at
	}
	return time.Time{}
}

// Set installs lookup directly.
func (h *Holder) Set(lookup *models.Lookup) {
	h.current.Store(&loaded{lookup: lookup, at: time.Now()})
}

// Reload loads the snapshot and swaps it in. On failure the previous lookup stays.
func (h *Holder) Reload() error {
	lookup, err := h.source.Load()
	if err != nil {
		h.logger.Warn("snapshot reload failed", zap.Error(err))
		return err
	}
	h.Set(lookup)
	h.logger.Info("snapshot loaded",
		zap.Int("chapters", lookup.Len()),
		zap.Int("entries", lookup.EntryCount()),
	)
	return nil
}
