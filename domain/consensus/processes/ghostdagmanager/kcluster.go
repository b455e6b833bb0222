package ghostdagmanager

import "github.com/tos-network/tos-sub008/domain/consensus/model/externalapi"

// classify splits mergeSetSlice (already in topological order) into blues
// and reds under the K-cluster bound (spec §4.F step 3), and returns the
// per-blue anticone-size map. selectedParent is always blue and always
// first.
//
// Ported from daglabs-btcd/blockdag/ghostdag.go's ghostdag(), the only
// place in the retrieval pack implementing the K-cluster loop itself:
// for each candidate, walk the new block's selected-parent chain from
// itself backward, scoring the candidate's anticone against each chain
// block's own blue set, stopping early once the candidate is found in a
// chain block's past (everything further back is then also in its past).
// Generalized from that file's mutable blockNode fields to pure inputs,
// and from its DAG-wide isAncestorOf helper to topologyQuerier.IsAncestorOf.
func classify(topology topologyQuerier, k uint32, selectedParent *externalapi.Hash, mergeSetSlice []*externalapi.Hash, dataOf func(*externalapi.Hash) (*externalapi.GhostdagData, error)) (blues, reds []*externalapi.Hash, anticoneSizes map[externalapi.Hash]uint16, err error) {
	blues = []*externalapi.Hash{selectedParent}
	anticoneSizes = map[externalapi.Hash]uint16{*selectedParent: 0}

	for _, candidate := range mergeSetSlice {
		candidateAnticoneSizes := make(map[externalapi.Hash]uint16)
		var candidateAnticoneSize uint32
		possiblyBlue := true

		chainBlock := selectedParent
		isNewBlockItself := true
		for possiblyBlue {
			if !isNewBlockItself {
				isAncestor, err := topology.IsAncestorOf(chainBlock, candidate)
				if err != nil {
					return nil, nil, nil, err
				}
				if isAncestor {
					break
				}
			}
			isNewBlockItself = false

			var chainBlockBlues []*externalapi.Hash
			if chainBlock.Equal(selectedParent) {
				chainBlockBlues = blues
			} else {
				chainBlockData, err := dataOf(chainBlock)
				if err != nil {
					return nil, nil, nil, err
				}
				chainBlockBlues = chainBlockData.MergeSetBlues
			}

			for _, blue := range chainBlockBlues {
				if !blue.Equal(chainBlock) {
					isAncestor, err := topology.IsAncestorOf(blue, candidate)
					if err != nil {
						return nil, nil, nil, err
					}
					if isAncestor {
						continue
					}
				}

				blueAnticoneSize, err := anticoneSizeOf(blue, selectedParent, anticoneSizes, dataOf)
				if err != nil {
					return nil, nil, nil, err
				}
				candidateAnticoneSizes[*blue] = blueAnticoneSize
				candidateAnticoneSize++

				if candidateAnticoneSize > k || blueAnticoneSize == uint16(k) {
					possiblyBlue = false
					break
				}
			}

			if !possiblyBlue {
				break
			}

			chainBlockData, err := dataOf(chainBlock)
			if err != nil {
				return nil, nil, nil, err
			}
			if chainBlockData.SelectedParent == nil {
				break // reached genesis
			}
			chainBlock = chainBlockData.SelectedParent
		}

		if possiblyBlue {
			blues = append(blues, candidate)
			anticoneSizes[*candidate] = uint16(candidateAnticoneSize)
			for blue, size := range candidateAnticoneSizes {
				anticoneSizes[blue] = size + 1
			}
			if uint32(len(blues)) == k+1 {
				continue
			}
		} else {
			reds = append(reds, candidate)
		}
	}

	return blues, reds, anticoneSizes, nil
}

// anticoneSizeOf resolves blue's anticone size within the tentative blue
// set being built for the new block: if blue is the selected parent or was
// already scored this round, the in-progress map has it; otherwise it was
// scored by an earlier block on the selected chain and lives in that
// block's committed GhostdagData.
func anticoneSizeOf(blue, selectedParent *externalapi.Hash, inProgress map[externalapi.Hash]uint16, dataOf func(*externalapi.Hash) (*externalapi.GhostdagData, error)) (uint16, error) {
	if size, ok := inProgress[*blue]; ok {
		return size, nil
	}
	selectedParentData, err := dataOf(selectedParent)
	if err != nil {
		return 0, err
	}
	if size, ok := selectedParentData.BluesAnticoneSizes[*blue]; ok {
		return size, nil
	}
	return 0, &UnknownBlueAnticoneSizeError{Hash: *blue}
}

// UnknownBlueAnticoneSizeError reports a blue whose anticone size could not
// be resolved from either the in-progress classification or the selected
// parent's committed GhostdagData.
type UnknownBlueAnticoneSizeError struct {
	Hash externalapi.Hash
}

func (e *UnknownBlueAnticoneSizeError) Error() string {
	return "ghostdagmanager: blue anticone size unknown for " + e.Hash.String()
}
