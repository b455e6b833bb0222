// Package modelfakes provides in-memory implementations of
// domain/consensus/model's capability interfaces, for use wherever a
// component needs a DagStore, VersionedStore, or MessageTransport and the
// caller has no production KV engine or peer transport wired up (spec §9
// "each can be implemented against either a production KV engine or an
// in-memory test fake").
package modelfakes

import (
	"math/big"
	"sync"

	"github.com/tos-network/tos-sub008/domain/consensus/model"
	"github.com/tos-network/tos-sub008/domain/consensus/model/externalapi"
)

type dagEntry struct {
	parents, children []*externalapi.Hash
	data              *externalapi.GhostdagData
	ownWork           *big.Int
}

// DagStore is an in-memory model.DagStore.
type DagStore struct {
	mu      sync.Mutex
	staged  map[externalapi.Hash]*dagEntry
	entries map[externalapi.Hash]*dagEntry
}

var _ model.DagStore = (*DagStore)(nil)

// NewDagStore constructs an empty in-memory DagStore.
func NewDagStore() *DagStore {
	return &DagStore{
		staged:  make(map[externalapi.Hash]*dagEntry),
		entries: make(map[externalapi.Hash]*dagEntry),
	}
}

func (s *DagStore) entryFor(hash *externalapi.Hash) *dagEntry {
	if e, ok := s.staged[*hash]; ok {
		return e
	}
	e, ok := s.entries[*hash]
	if !ok {
		return nil
	}
	clone := *e
	return &clone
}

// StageRelations records blockHash's parents pending Commit.
func (s *DagStore) StageRelations(blockHash *externalapi.Hash, parents []*externalapi.Hash) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.stagedEntry(blockHash)
	e.parents = externalapi.CloneHashes(parents)
	for _, parent := range parents {
		pe := s.stagedEntry(parent)
		pe.children = append(pe.children, blockHash.Clone())
	}
}

func (s *DagStore) stagedEntry(hash *externalapi.Hash) *dagEntry {
	if e, ok := s.staged[*hash]; ok {
		return e
	}
	e := s.entryFor(hash)
	if e == nil {
		e = &dagEntry{}
	}
	s.staged[*hash] = e
	return e
}

// StageGhostdagData records blockHash's GhostdagData pending Commit.
func (s *DagStore) StageGhostdagData(blockHash *externalapi.Hash, data *externalapi.GhostdagData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stagedEntry(blockHash).data = data
}

// Commit persists every staged entry.
func (s *DagStore) Commit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for hash, e := range s.staged {
		s.entries[hash] = e
	}
	s.staged = make(map[externalapi.Hash]*dagEntry)
	return nil
}

// Discard drops every staged entry.
func (s *DagStore) Discard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.staged = make(map[externalapi.Hash]*dagEntry)
}

// Relations returns blockHash's committed-or-staged parent/child sets.
func (s *DagStore) Relations(blockHash *externalapi.Hash) (parents, children []*externalapi.Hash, found bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entryFor(blockHash)
	if e == nil {
		return nil, nil, false
	}
	return externalapi.CloneHashes(e.parents), externalapi.CloneHashes(e.children), true
}

// GhostdagData returns blockHash's committed-or-staged GhostdagData.
func (s *DagStore) GhostdagData(blockHash *externalapi.Hash) (*externalapi.GhostdagData, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entryFor(blockHash)
	if e == nil || e.data == nil {
		return nil, false
	}
	return e.data.Clone(), true
}

// OwnWork returns blockHash's recorded header-derived work, if any.
func (s *DagStore) OwnWork(blockHash *externalapi.Hash) (*big.Int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entryFor(blockHash)
	if e == nil || e.ownWork == nil {
		return nil, false
	}
	return new(big.Int).Set(e.ownWork), true
}
