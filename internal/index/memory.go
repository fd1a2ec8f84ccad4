package index

import (
	"sort"
	"sync"
	"time"

	"github.com/MrSnakeDoc/rolewithai/internal/domain"
)

// LedgerIndex provides in-memory storage of every user's tracked applications.
// It is the primary copy; Redis only persists it across restarts.
// Entries are stored and returned by value so callers never share state.
type LedgerIndex struct {
	mu        sync.RWMutex
	ledgers   map[string]map[string]domain.TrackedApplication // user -> ID -> entry
	lastSweep time.Time                                       // Timestamp of last automation sweep
	lastSync  time.Time                                       // Timestamp of last bulk load
}

// NewLedgerIndex creates a new ledger index
func NewLedgerIndex() *LedgerIndex {
	return &LedgerIndex{
		ledgers: make(map[string]map[string]domain.TrackedApplication),
	}
}

// ReplaceAll replaces every ledger in the index
func (idx *LedgerIndex) ReplaceAll(ledgers map[string][]domain.TrackedApplication) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	// Clear and rebuild
	idx.ledgers = make(map[string]map[string]domain.TrackedApplication, len(ledgers))
	for user, entries := range ledgers {
		m := make(map[string]domain.TrackedApplication, len(entries))
		for _, e := range entries {
			m[e.ID] = e.Clone()
		}
		idx.ledgers[user] = m
	}
	idx.lastSync = time.Now()
}

// Put adds or updates a single entry
func (idx *LedgerIndex) Put(userID string, entry domain.TrackedApplication) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	m, ok := idx.ledgers[userID]
	if !ok {
		m = make(map[string]domain.TrackedApplication)
		idx.ledgers[userID] = m
	}
	m[entry.ID] = entry.Clone()
}

// Get retrieves an entry by user and ID
func (idx *LedgerIndex) Get(userID, id string) (domain.TrackedApplication, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	e, ok := idx.ledgers[userID][id]
	if !ok {
		return domain.TrackedApplication{}, false
	}
	return e.Clone(), true
}

// List returns a user's entries, most recent application first
func (idx *LedgerIndex) List(userID string) []domain.TrackedApplication {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return sortedCopy(idx.ledgers[userID])
}

// Delete removes an entry and reports whether it existed
func (idx *LedgerIndex) Delete(userID, id string) bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	m := idx.ledgers[userID]
	if _, ok := m[id]; !ok {
		return false
	}
	delete(m, id)
	if len(m) == 0 {
		delete(idx.ledgers, userID)
	}
	return true
}

// Snapshot returns a copy of every ledger
func (idx *LedgerIndex) Snapshot() map[string][]domain.TrackedApplication {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	out := make(map[string][]domain.TrackedApplication, len(idx.ledgers))
	for user, m := range idx.ledgers {
		out[user] = sortedCopy(m)
	}
	return out
}

// Count returns the number of entries across all ledgers
func (idx *LedgerIndex) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	n := 0
	for _, m := range idx.ledgers {
		n += len(m)
	}
	return n
}

// Users returns the number of ledgers
func (idx *LedgerIndex) Users() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.ledgers)
}

// MarkSwept records the completion time of an automation sweep
func (idx *LedgerIndex) MarkSwept(t time.Time) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.lastSweep = t
}

// GetLastSweep returns the timestamp of the last automation sweep
func (idx *LedgerIndex) GetLastSweep() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastSweep
}

// GetLastSync returns the timestamp of the last bulk load
func (idx *LedgerIndex) GetLastSync() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastSync
}

func sortedCopy(m map[string]domain.TrackedApplication) []domain.TrackedApplication {
	out := make([]domain.TrackedApplication, 0, len(m))
	for _, e := range m {
		out = append(out, e.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].ID < out[j].ID
	})
	return out
}
