// Package versionedstore implements the chained-history versioned record
// (spec §4.E): for each key, a per-topoheight chain of versions linked
// backward to the previous topoheight that touched the key, with a
// pointer naming the most recent version. Balances and nonces are both
// instances of the identical scheme ("nonces follow the identical scheme
// with a u64 payload", spec §4.E), so this package is generic over the
// key and value types and domain/consensus/datastructures/accountstore and
// noncestore are thin instantiations over it.
//
// This mirrors the staging-map-then-commit shape
// daglabs-btcd/domain/consensus/datastructures/ghostdagdatastore uses for
// its own per-hash cache, generalized from one in-memory map to a full
// backward-linked chain per key, since a versioned record needs history,
// not just a latest value.
package versionedstore

import (
	"sync"

	"github.com/tos-network/tos-sub008/domain/consensus/model/externalapi"
)

// entry is one version in a key's history chain.
type entry[V any] struct {
	value    V
	previous externalapi.OptionalTopoHeight
}

// Store is a versioned-chain store keyed by K, holding values of type V.
// All operations are safe for concurrent use; spec §5 calls for writes to
// hold a column-family write lock for a block's state transition while
// reads stay wait-free at a snapshot — a single RWMutex gives readers that
// wait-free behaviour relative to each other, at the cost of serializing
// against the one writer, which is the lock spec §5 already requires.
type Store[K comparable, V any] struct {
	mu       sync.RWMutex
	pointers map[K]externalapi.TopoHeight
	versions map[K]map[externalapi.TopoHeight]entry[V]
}

// New constructs an empty Store.
func New[K comparable, V any]() *Store[K, V] {
	return &Store[K, V]{
		pointers: make(map[K]externalapi.TopoHeight),
		versions: make(map[K]map[externalapi.TopoHeight]entry[V]),
	}
}

// ReadAt follows the chain from key's pointer backwards and returns the
// first version with topoheight ≤ t (spec §4.E "read at topoheight T").
func (s *Store[K, V]) ReadAt(key K, t externalapi.TopoHeight) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var zero V
	pointer, ok := s.pointers[key]
	if !ok {
		return zero, false
	}

	cur := pointer
	for {
		e, ok := s.versions[key][cur]
		if !ok {
			return zero, false
		}
		if cur <= t {
			return e.value, true
		}
		if !e.previous.Present {
			return zero, false
		}
		cur = e.previous.Value
	}
}

// WriteAt creates a new version at t linking back to the current pointer,
// then advances the pointer to t (spec §4.E "write at topoheight T").
func (s *Store[K, V]) WriteAt(key K, t externalapi.TopoHeight, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeAtLocked(key, t, value)
}

func (s *Store[K, V]) writeAtLocked(key K, t externalapi.TopoHeight, value V) {
	previous := externalapi.None()
	if pointer, ok := s.pointers[key]; ok {
		previous = externalapi.Some(pointer)
	}
	if s.versions[key] == nil {
		s.versions[key] = make(map[externalapi.TopoHeight]entry[V])
	}
	s.versions[key][t] = entry[V]{value: value, previous: previous}
	s.pointers[key] = t
}

// Pointer returns the topoheight of key's most recent version, if any.
func (s *Store[K, V]) Pointer(key K) (externalapi.TopoHeight, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.pointers[key]
	return t, ok
}

// DeleteAt rolls back a single block's version of key at topoheight t
// (spec §4.E "delete at topoheight T"): if the pointer still names t, it
// moves to t's previous link, or — if that link is absent or names a
// version no longer stored — to the next earlier version discovered by
// scanning the column backward (pointer healing); only once no earlier
// version exists is the pointer removed.
func (s *Store[K, V]) DeleteAt(key K, t externalapi.TopoHeight) {
	s.mu.Lock()
	defer s.mu.Unlock()

	chain := s.versions[key]
	e, ok := chain[t]
	if !ok {
		return
	}

	if s.pointers[key] == t {
		if _, prevStored := chain[e.previous.Value]; e.previous.Present && prevStored {
			s.pointers[key] = e.previous.Value
		} else if healed, ok := s.latestBelowLocked(key, t); ok {
			s.pointers[key] = healed
		} else {
			delete(s.pointers, key)
		}
	}

	delete(chain, t)
	if len(chain) == 0 {
		delete(s.versions, key)
	}
}

// latestBelowLocked scans key's remaining versions for the greatest
// topoheight strictly below t. Caller holds s.mu.
func (s *Store[K, V]) latestBelowLocked(key K, t externalapi.TopoHeight) (externalapi.TopoHeight, bool) {
	best := externalapi.TopoHeight(0)
	found := false
	for th := range s.versions[key] {
		if th == t {
			continue
		}
		if th < t && (!found || th > best) {
			best, found = th, true
		}
	}
	return best, found
}

// DeleteAbove rolls back every version above topoheight t across every
// key (spec §4.E "delete above topoheight T"): for each key whose pointer
// exceeds t, walk the chain backward deleting versions until one ≤ t is
// found or the chain bottoms out, then apply the same pointer-healing
// rule as DeleteAt before the pointer is finally set (or removed).
func (s *Store[K, V]) DeleteAbove(t externalapi.TopoHeight) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, pointer := range s.pointers {
		if pointer <= t {
			continue
		}
		chain := s.versions[key]
		cur := pointer
		healed := externalapi.TopoHeight(0)
		healedFound := false
		for {
			e, ok := chain[cur]
			if !ok {
				break
			}
			delete(chain, cur)
			if !e.previous.Present {
				break
			}
			cur = e.previous.Value
			if cur <= t {
				healed, healedFound = cur, true
				break
			}
		}
		if healedFound {
			if _, stillExists := chain[healed]; !stillExists {
				healedFound = false
			}
		}
		if !healedFound {
			healed, healedFound = s.latestBelowLocked(key, t+1)
		}
		if healedFound {
			s.pointers[key] = healed
			continue
		}
		delete(s.pointers, key)
		if len(chain) == 0 {
			delete(s.versions, key)
		}
	}
}

// DeleteBelowKeepLast prunes history below topoheight t while preserving
// every read at or above t (spec §4.E "delete below topoheight T,
// keep_last"): for each key with a version below t, the first version at
// or above t has its previous link severed to None, then every version
// below t for that key is removed.
func (s *Store[K, V]) DeleteBelowKeepLast(t externalapi.TopoHeight) {
	s.mu.Lock()
	defer s.mu.Unlock()

	keysWithHistoryBelow := make([]K, 0)
	for key, chain := range s.versions {
		for th := range chain {
			if th < t {
				keysWithHistoryBelow = append(keysWithHistoryBelow, key)
				break
			}
		}
	}

	for _, key := range keysWithHistoryBelow {
		pointer, ok := s.pointers[key]
		if !ok {
			continue
		}
		chain := s.versions[key]

		cur := pointer
		firstAtOrAbove := externalapi.TopoHeight(0)
		found := false
		for {
			e, ok := chain[cur]
			if !ok {
				break
			}
			if cur >= t {
				firstAtOrAbove, found = cur, true
			}
			if !e.previous.Present || e.previous.Value < t {
				break
			}
			cur = e.previous.Value
		}

		// If no version ≥ t exists, the whole chain sits below t; the head
		// (pointer) is then itself the severing point, since it is the
		// version every future read at ≥ t would still need to find.
		severAt := firstAtOrAbove
		if !found {
			severAt = pointer
		}
		e := chain[severAt]
		e.previous = externalapi.None()
		chain[severAt] = e

		for th := range chain {
			if th < t && th != severAt {
				delete(chain, th)
			}
		}
	}
}
