package archive

import (
	"context"
	"errors"
	"sort"
	"sync"
)

var (
	// ErrConcurrentModification is returned when another writer committed
	// the same version first.
	ErrConcurrentModification = errors.New("archive: concurrent modification detected")

	// ErrNoRuns is returned when an experiment has no committed runs.
	ErrNoRuns = errors.New("archive: no runs")
)

// Entry is one committed version of an experiment's run pointer.
type Entry struct {
	Experiment string `json:"experiment"`
	Version    uint64 `json:"version"`
	Key        string `json:"key"`
}

// Registry records which report is the latest for each experiment.
type Registry interface {
	// Latest returns the highest committed version, or ErrNoRuns.
	Latest(ctx context.Context, experiment string) (Entry, error)
	// Commit stores e only if e.Version does not exist yet.
	// Otherwise it returns ErrConcurrentModification.
	Commit(ctx context.Context, e Entry) error
	// History returns up to limit entries, newest first. limit <= 0 means all.
	History(ctx context.Context, experiment string, limit int) ([]Entry, error)
}

// MemoryRegistry is an in-memory Registry.
type MemoryRegistry struct {
	mu      sync.RWMutex
	entries map[string]map[uint64]Entry
}

// NewMemoryRegistry creates an empty registry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{entries: make(map[string]map[uint64]Entry)}
}

func (r *MemoryRegistry) Latest(_ context.Context, experiment string) (Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var (
		latest Entry
		found  bool
	)
	for v, e := range r.entries[experiment] {
		if !found || v > latest.Version {
			latest, found = e, true
		}
	}
	if !found {
		return Entry{}, ErrNoRuns
	}
	return latest, nil
}

func (r *MemoryRegistry) Commit(_ context.Context, e Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	versions, ok := r.entries[e.Experiment]
	if !ok {
		versions = make(map[uint64]Entry)
		r.entries[e.Experiment] = versions
	}
	if _, exists := versions[e.Version]; exists {
		return ErrConcurrentModification
	}
	versions[e.Version] = e
	return nil
}

func (r *MemoryRegistry) History(_ context.Context, experiment string, limit int) ([]Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry, 0, len(r.entries[experiment]))
	for _, e := range r.entries[experiment] {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version > out[j].Version })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
