// Package blockrelationstore records each block's direct DAG parents and
// children, the raw adjacency dagtopologymanager queries sit on top of.
// Grounded on daglabs-btcd's model.BlockRelationStore /
// domain/consensus/processes/dagtopologymanager usage of it, generalized
// from a database-backed store to an in-memory one since this module's
// storage engine is an external collaborator (spec §6), not vendored here.
package blockrelationstore

import (
	"sync"

	"github.com/tos-network/tos-sub008/domain/consensus/model/externalapi"
)

// BlockRelations is one block's direct parent and child set.
type BlockRelations struct {
	Parents  []*externalapi.Hash
	Children []*externalapi.Hash
}

// Clone returns a deep copy of r.
func (r *BlockRelations) Clone() *BlockRelations {
	return &BlockRelations{
		Parents:  externalapi.CloneHashes(r.Parents),
		Children: externalapi.CloneHashes(r.Children),
	}
}

// Store maps a block hash to its BlockRelations.
type Store struct {
	mu      sync.RWMutex
	staging map[externalapi.Hash]*BlockRelations
	data    map[externalapi.Hash]*BlockRelations
}

// New constructs an empty Store.
func New() *Store {
	return &Store{
		staging: make(map[externalapi.Hash]*BlockRelations),
		data:    make(map[externalapi.Hash]*BlockRelations),
	}
}

// Stage records relations for blockHash, pending Commit.
func (s *Store) Stage(blockHash *externalapi.Hash, relations *BlockRelations) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.staging[*blockHash] = relations.Clone()
}

// IsStaged reports whether any relation is pending commit.
func (s *Store) IsStaged() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.staging) != 0
}

// Discard drops every staged relation uncommitted.
func (s *Store) Discard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.staging = make(map[externalapi.Hash]*BlockRelations)
}

// Commit moves every staged relation into the committed set.
func (s *Store) Commit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for hash, relations := range s.staging {
		s.data[hash] = relations
	}
	s.staging = make(map[externalapi.Hash]*BlockRelations)
}

// Get returns blockHash's relations, checking staged data first.
func (s *Store) Get(blockHash *externalapi.Hash) (*BlockRelations, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if relations, ok := s.staging[*blockHash]; ok {
		return relations.Clone(), true
	}
	if relations, ok := s.data[*blockHash]; ok {
		return relations.Clone(), true
	}
	return nil, false
}

// AppendChild records child as one of parent's children, committed
// immediately (children links are derived bookkeeping, not part of the
// block's own staged relation record).
func (s *Store) AppendChild(parent, child *externalapi.Hash) {
	s.mu.Lock()
	defer s.mu.Unlock()
	relations, ok := s.data[*parent]
	if !ok {
		relations = &BlockRelations{}
		s.data[*parent] = relations
	}
	relations.Children = append(relations.Children, child.Clone())
}
