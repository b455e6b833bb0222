// Package ghostdagdatastore stores each block's computed GhostdagData,
// staged then committed the way daglabs-btcd's own
// domain/consensus/datastructures/ghostdagdatastore does, backed by a
// bounded LRU (spec §5: "The GhostdagData cache is a bounded LRU keyed by
// block hash; it is populated only after the store commit of the
// corresponding block").
package ghostdagdatastore

import (
	"sync"

	"github.com/dgraph-io/ristretto"

	"github.com/tos-network/tos-sub008/domain/consensus/model/externalapi"
	"github.com/tos-network/tos-sub008/internal/consensuserrors"
)

// defaultCacheCost is the cost every cache entry is charged; GhostdagData
// is small and roughly uniform in size, so a flat per-entry cost lets
// MaxCost act as a simple entry-count bound.
const defaultCacheCost = 1

// Store holds GhostdagData keyed by block hash: a staging map for the
// in-flight block application plus a bounded LRU for committed data.
type Store struct {
	mu      sync.Mutex
	staging map[externalapi.Hash]*externalapi.GhostdagData
	cache   *ristretto.Cache
}

// New constructs a Store whose committed-data cache holds roughly
// maxEntries GhostdagData records.
func New(maxEntries int64) (*Store, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: maxEntries * 10,
		MaxCost:     maxEntries,
		BufferItems: 64,
	})
	if err != nil {
		return nil, consensuserrors.Wrap(consensuserrors.KindFatal, "StorageFailure", "constructing ghostdag data cache", err)
	}
	return &Store{
		staging: make(map[externalapi.Hash]*externalapi.GhostdagData),
		cache:   cache,
	}, nil
}

// Stage records data for blockHash, pending Commit.
func (s *Store) Stage(blockHash *externalapi.Hash, data *externalapi.GhostdagData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.staging[*blockHash] = data.Clone()
}

// IsStaged reports whether any record is pending commit.
func (s *Store) IsStaged() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.staging) != 0
}

// Discard drops every staged record uncommitted.
func (s *Store) Discard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.staging = make(map[externalapi.Hash]*externalapi.GhostdagData)
}

// Commit moves every staged record into the cache, then clears staging.
func (s *Store) Commit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for hash, data := range s.staging {
		s.cache.Set(hash[:], data, defaultCacheCost)
	}
	s.cache.Wait()
	s.staging = make(map[externalapi.Hash]*externalapi.GhostdagData)
}

// Get returns blockHash's GhostdagData, checking staged data first, then
// the committed cache. Evicted or never-staged hashes report ok=false; a
// real deployment backs the cache with a persistent store and falls
// through to it here, but that storage engine is an external collaborator
// (spec §6) this package only assumes, never vendors.
func (s *Store) Get(blockHash *externalapi.Hash) (data *externalapi.GhostdagData, ok bool) {
	s.mu.Lock()
	if staged, found := s.staging[*blockHash]; found {
		s.mu.Unlock()
		return staged.Clone(), true
	}
	s.mu.Unlock()

	value, found := s.cache.Get(blockHash[:])
	if !found {
		return nil, false
	}
	cached, ok := value.(*externalapi.GhostdagData)
	if !ok {
		return nil, false
	}
	return cached.Clone(), true
}

// Invalidate evicts blockHash's cached GhostdagData, used when a reorg
// repairs or supersedes a previously committed record (spec §4.F: "All
// caches... MUST be invalidated or repaired; stale cache entries below or
// across the reorg point are a correctness bug, not a performance bug").
func (s *Store) Invalidate(blockHash *externalapi.Hash) {
	s.cache.Del(blockHash[:])
}
