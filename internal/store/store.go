// Package store holds completed analyses and the audit trail for the lifetime
// of the process. Results live in memory only, matching the service contract
// that a restart starts a clean slate.
package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Gugan3007/nexus-prime/api/schemas"
)

// MemoryStore is the in-memory implementation of schemas.Store. It preserves
// insertion order for listing and is safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	order []string
	items map[string]*schemas.VendorAnalysis
	audit []schemas.AuditEntry
	log   *zap.Logger
}

var _ schemas.Store = (*MemoryStore)(nil)

// NewMemory creates an empty store.
func NewMemory(logger *zap.Logger) *MemoryStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MemoryStore{
		items: make(map[string]*schemas.VendorAnalysis),
		log:   logger.Named("store"),
	}
}

// Save records an analysis under id. Overwriting an existing id keeps its
// original insertion position.
func (s *MemoryStore) Save(id string, analysis *schemas.VendorAnalysis) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.items[id]; !exists {
		s.order = append(s.order, id)
	}
	s.items[id] = analysis
	s.log.Debug("Analysis stored", zap.String("id", id), zap.Int("total", len(s.items)))
}

// Get returns the analysis stored under id.
func (s *MemoryStore) Get(id string) (*schemas.VendorAnalysis, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.items[id]
	return a, ok
}

// List returns all stored analyses in insertion order.
func (s *MemoryStore) List() []schemas.StoredAnalysis {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot(s.order)
}

// Recent returns up to n of the most recently inserted analyses, oldest
// first.
func (s *MemoryStore) Recent(n int) []schemas.StoredAnalysis {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n <= 0 {
		return []schemas.StoredAnalysis{}
	}
	start := len(s.order) - n
	if start < 0 {
		start = 0
	}
	return s.snapshot(s.order[start:])
}

// snapshot copies the selected ids into result rows. Callers must hold at
// least the read lock.
func (s *MemoryStore) snapshot(ids []string) []schemas.StoredAnalysis {
	out := make([]schemas.StoredAnalysis, 0, len(ids))
	for _, id := range ids {
		out = append(out, schemas.StoredAnalysis{ID: id, Analysis: s.items[id]})
	}
	return out
}

// Count reports the number of stored analyses.
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// AppendAudit records an audit entry with a fresh id and UTC timestamp.
func (s *MemoryStore) AppendAudit(action, details string) {
	entry := schemas.AuditEntry{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Action:    action,
		Details:   details,
	}
	s.mu.Lock()
	s.audit = append(s.audit, entry)
	s.mu.Unlock()
	s.log.Debug("Audit entry recorded", zap.String("action", action), zap.String("details", details))
}

// Audit returns the audit trail, newest first.
func (s *MemoryStore) Audit() []schemas.AuditEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]schemas.AuditEntry, len(s.audit))
	for i, entry := range s.audit {
		out[len(s.audit)-1-i] = entry
	}
	return out
}

// AuditCount reports the number of audit entries.
func (s *MemoryStore) AuditCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.audit)
}

// Clear drops all analyses and the audit trail.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = nil
	s.items = make(map[string]*schemas.VendorAnalysis)
	s.audit = nil
	s.log.Info("Store cleared")
}
