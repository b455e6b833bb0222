// Package dagtopologymanager answers DAG-adjacency and ancestry queries,
// layering the cheap direct-relation lookups over blockrelationstore and
// the O(log n) ancestry test over reachabilitymanager. Grounded on
// daglabs-btcd/domain/consensus/processes/dagtopologymanager/dagtopologymanager.go,
// generalized from its database-backed blockRelationStore to this module's
// in-memory one.
package dagtopologymanager

import (
	"github.com/tos-network/tos-sub008/domain/consensus/datastructures/blockrelationstore"
	"github.com/tos-network/tos-sub008/domain/consensus/model/externalapi"
	"github.com/tos-network/tos-sub008/domain/consensus/processes/reachabilitymanager"
)

// Manager exposes DAG adjacency and ancestry queries.
type Manager struct {
	relations    *blockrelationstore.Store
	reachability *reachabilitymanager.Manager
	selectedTip  map[externalapi.Hash]*externalapi.Hash // block -> its selected parent
}

// New constructs a Manager over the given relation store and reachability
// tree.
func New(relations *blockrelationstore.Store, reachability *reachabilitymanager.Manager) *Manager {
	return &Manager{
		relations:    relations,
		reachability: reachability,
		selectedTip:  make(map[externalapi.Hash]*externalapi.Hash),
	}
}

// SetSelectedParent records blockHash's selected parent, used by
// IsInSelectedParentChainOf to walk the selected chain.
func (dtm *Manager) SetSelectedParent(blockHash, selectedParent *externalapi.Hash) {
	dtm.selectedTip[*blockHash] = selectedParent.Clone()
}

// Parents returns blockHash's direct DAG parents.
func (dtm *Manager) Parents(blockHash *externalapi.Hash) ([]*externalapi.Hash, error) {
	relations, ok := dtm.relations.Get(blockHash)
	if !ok {
		return nil, &UnknownBlockError{Hash: *blockHash}
	}
	return relations.Parents, nil
}

// Children returns blockHash's direct DAG children.
func (dtm *Manager) Children(blockHash *externalapi.Hash) ([]*externalapi.Hash, error) {
	relations, ok := dtm.relations.Get(blockHash)
	if !ok {
		return nil, &UnknownBlockError{Hash: *blockHash}
	}
	return relations.Children, nil
}

// IsParentOf reports whether a is a direct DAG parent of b.
func (dtm *Manager) IsParentOf(a, b *externalapi.Hash) (bool, error) {
	relations, ok := dtm.relations.Get(b)
	if !ok {
		return false, &UnknownBlockError{Hash: *b}
	}
	return isHashInSlice(a, relations.Parents), nil
}

// IsChildOf reports whether a is a direct DAG child of b.
func (dtm *Manager) IsChildOf(a, b *externalapi.Hash) (bool, error) {
	relations, ok := dtm.relations.Get(b)
	if !ok {
		return false, &UnknownBlockError{Hash: *b}
	}
	return isHashInSlice(a, relations.Children), nil
}

// IsAncestorOf reports whether a is a DAG ancestor of b.
func (dtm *Manager) IsAncestorOf(a, b *externalapi.Hash) (bool, error) {
	return dtm.reachability.IsDAGAncestorOf(a, b)
}

// IsDescendantOf reports whether a is a DAG descendant of b.
func (dtm *Manager) IsDescendantOf(a, b *externalapi.Hash) (bool, error) {
	return dtm.reachability.IsDAGAncestorOf(b, a)
}

// IsAncestorOfAny reports whether blockHash is an ancestor of at least one
// of potentialDescendants.
func (dtm *Manager) IsAncestorOfAny(blockHash *externalapi.Hash, potentialDescendants []*externalapi.Hash) (bool, error) {
	for _, descendant := range potentialDescendants {
		isAncestor, err := dtm.IsAncestorOf(blockHash, descendant)
		if err != nil {
			return false, err
		}
		if isAncestor {
			return true, nil
		}
	}
	return false, nil
}

// IsInSelectedParentChainOf reports whether a lies on b's selected-parent
// chain, walking SetSelectedParent links back from b.
func (dtm *Manager) IsInSelectedParentChainOf(a, b *externalapi.Hash) (bool, error) {
	for current := b; current != nil; {
		if *current == *a {
			return true, nil
		}
		next, ok := dtm.selectedTip[*current]
		if !ok {
			return false, nil
		}
		current = next
	}
	return false, nil
}

// AreParentsPairwiseNonReachable reports whether no parent in the set is a
// DAG ancestor of another, the admission check spec §4.F requires of a new
// block's declared parent tips ("verify_non_reachability(tips)").
func (dtm *Manager) AreParentsPairwiseNonReachable(parents []*externalapi.Hash) (bool, error) {
	for i, a := range parents {
		for j, b := range parents {
			if i == j {
				continue
			}
			isAncestor, err := dtm.IsAncestorOf(a, b)
			if err != nil {
				return false, err
			}
			if isAncestor {
				return false, nil
			}
		}
	}
	return true, nil
}

func isHashInSlice(hash *externalapi.Hash, hashes []*externalapi.Hash) bool {
	for _, h := range hashes {
		if *h == *hash {
			return true
		}
	}
	return false
}

// UnknownBlockError reports a topology query against an unregistered hash.
type UnknownBlockError struct {
	Hash externalapi.Hash
}

func (e *UnknownBlockError) Error() string {
	return "dagtopologymanager: unknown block " + e.Hash.String()
}
