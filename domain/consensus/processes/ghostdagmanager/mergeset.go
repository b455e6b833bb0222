package ghostdagmanager

import (
	"sort"

	"github.com/tos-network/tos-sub008/domain/consensus/model/externalapi"
)

// topologyQuerier is the subset of dagtopologymanager.Manager this package
// needs, kept as an interface so tests can fake the DAG shape directly.
type topologyQuerier interface {
	Parents(blockHash *externalapi.Hash) ([]*externalapi.Hash, error)
	IsAncestorOf(a, b *externalapi.Hash) (bool, error)
}

// mergeSet returns the set of ancestors of the new block that are not
// ancestors of selectedParent, in an undetermined order (sortMergeSet
// fixes the order afterward). Ported from
// daglabs-btcd/domain/consensus/processes/ghostdagmanager/mergeset.go's
// BFS, generalized to this module's externalapi.Hash.
func mergeSet(topology topologyQuerier, selectedParent *externalapi.Hash, blockParents []*externalapi.Hash) ([]*externalapi.Hash, error) {
	mergeSetMap := make(map[externalapi.Hash]struct{})
	mergeSetSlice := make([]*externalapi.Hash, 0)
	selectedParentPast := make(map[externalapi.Hash]struct{})
	var queue []*externalapi.Hash

	for _, parent := range blockParents {
		if parent.Equal(selectedParent) {
			continue
		}
		mergeSetMap[*parent] = struct{}{}
		mergeSetSlice = append(mergeSetSlice, parent)
		queue = append(queue, parent)
	}

	for len(queue) > 0 {
		var current *externalapi.Hash
		current, queue = queue[0], queue[1:]
		currentParents, err := topology.Parents(current)
		if err != nil {
			return nil, err
		}
		for _, parent := range currentParents {
			if _, ok := mergeSetMap[*parent]; ok {
				continue
			}
			if _, ok := selectedParentPast[*parent]; ok {
				continue
			}
			isAncestorOfSelectedParent, err := topology.IsAncestorOf(parent, selectedParent)
			if err != nil {
				return nil, err
			}
			if isAncestorOfSelectedParent {
				selectedParentPast[*parent] = struct{}{}
				continue
			}
			mergeSetMap[*parent] = struct{}{}
			mergeSetSlice = append(mergeSetSlice, parent)
			queue = append(queue, parent)
		}
	}

	if err := sortMergeSet(topology, mergeSetSlice); err != nil {
		return nil, err
	}
	return mergeSetSlice, nil
}

// sortMergeSet orders the mergeset topologically (ancestors first), ties
// broken by hash byte order. It uses sort.Slice as the teacher's
// mergeset.go does, but compares by ancestry rather than by blue work.
func sortMergeSet(topology topologyQuerier, mergeSetSlice []*externalapi.Hash) error {
	var sortErr error
	sort.Slice(mergeSetSlice, func(i, j int) bool {
		if sortErr != nil {
			return false
		}
		a, b := mergeSetSlice[i], mergeSetSlice[j]
		isAncestor, err := topology.IsAncestorOf(a, b)
		if err != nil {
			sortErr = err
			return false
		}
		if isAncestor {
			return true
		}
		isDescendant, err := topology.IsAncestorOf(b, a)
		if err != nil {
			sortErr = err
			return false
		}
		if isDescendant {
			return false
		}
		return externalapi.Less(a, b)
	})
	return sortErr
}
