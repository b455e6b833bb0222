package modelfakes

import (
	"sync"

	"github.com/tos-network/tos-sub008/domain/consensus/model"
	"github.com/tos-network/tos-sub008/domain/consensus/model/externalapi"
)

type versionedEntry struct {
	value uint64
	t     externalapi.TopoHeight
}

// VersionedStore is an in-memory model.VersionedStore backed by an
// unsorted slice of versions per account, scanned in full on every read
// and delete. It models the same chained history
// as domain/consensus/datastructures/versionedstore but without that
// package's pointer-healing bookkeeping, since a test fake only needs
// correct reads, not the production store's O(1) current-pointer
// invariant.
type VersionedStore struct {
	mu       sync.Mutex
	versions map[externalapi.Hash][]versionedEntry
}

var _ model.VersionedStore = (*VersionedStore)(nil)

// NewVersionedStore constructs an empty in-memory VersionedStore.
func NewVersionedStore() *VersionedStore {
	return &VersionedStore{versions: make(map[externalapi.Hash][]versionedEntry)}
}

// ReadAt returns the latest version at or before topoheight t.
func (s *VersionedStore) ReadAt(account externalapi.Hash, t externalapi.TopoHeight) (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.versions[account]
	var best *versionedEntry
	for i := range entries {
		if entries[i].t <= t && (best == nil || entries[i].t > best.t) {
			best = &entries[i]
		}
	}
	if best == nil {
		return 0, false
	}
	return best.value, true
}

// WriteAt records a new version for account at topoheight t.
func (s *VersionedStore) WriteAt(account externalapi.Hash, t externalapi.TopoHeight, value uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.versions[account] = append(s.versions[account], versionedEntry{value: value, t: t})
}

// DeleteAt removes account's version at exactly topoheight t.
func (s *VersionedStore) DeleteAt(account externalapi.Hash, t externalapi.TopoHeight) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.versions[account] = removeAt(s.versions[account], t)
}

// DeleteAbove removes every account's versions above topoheight t.
func (s *VersionedStore) DeleteAbove(t externalapi.TopoHeight) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for account, entries := range s.versions {
		kept := entries[:0]
		for _, e := range entries {
			if e.t <= t {
				kept = append(kept, e)
			}
		}
		s.versions[account] = kept
	}
}

// DeleteBelowKeepLast prunes every account's versions strictly below t,
// always keeping the latest version at or below t.
func (s *VersionedStore) DeleteBelowKeepLast(t externalapi.TopoHeight) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for account, entries := range s.versions {
		var latestBelow *versionedEntry
		for i := range entries {
			if entries[i].t <= t && (latestBelow == nil || entries[i].t > latestBelow.t) {
				latestBelow = &entries[i]
			}
		}
		kept := entries[:0]
		for _, e := range entries {
			if e.t > t || (latestBelow != nil && e.t == latestBelow.t) {
				kept = append(kept, e)
			}
		}
		s.versions[account] = kept
	}
}

func removeAt(entries []versionedEntry, t externalapi.TopoHeight) []versionedEntry {
	kept := entries[:0]
	for _, e := range entries {
		if e.t != t {
			kept = append(kept, e)
		}
	}
	return kept
}
