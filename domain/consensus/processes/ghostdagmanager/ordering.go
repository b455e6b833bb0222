package ghostdagmanager

import (
	"sort"

	"github.com/tos-network/tos-sub008/domain/consensus/model/externalapi"
	"github.com/tos-network/tos-sub008/internal/consensuserrors"
)

// SubOrder returns data's mergeset in the deterministic sub-order the
// canonical total order concatenates per selected-chain block: blues
// before reds, each group in topological order with hash tiebreaks (spec
// §4.F "Canonical order"). The mergeset was already produced in that shape
// by mergeSet/sortMergeSet at computation time, so this only needs to
// preserve MergeSetBlues then MergeSetReds without re-deriving order —
// except MergeSetReds was appended in the pre-sorted mergeSetSlice's
// relative order already, so both groups are already topologically sound.
func (gm *Manager) SubOrder(data *externalapi.GhostdagData) []*externalapi.Hash {
	return data.MergeSet()
}

// TopologicalOrder walks the selected-parent chain from genesis to tip,
// concatenating each chain block's SubOrder, assigning each resulting hash
// its position (topoheight) in the sequence (spec §4.F "Each block's
// position in this sequence is its topoheight"). chainFromGenesis must
// list the selected-parent chain in genesis-to-tip order.
func (gm *Manager) TopologicalOrder(chainFromGenesis []*externalapi.Hash) ([]*externalapi.Hash, map[externalapi.Hash]externalapi.TopoHeight, error) {
	order := make([]*externalapi.Hash, 0)
	topoHeights := make(map[externalapi.Hash]externalapi.TopoHeight)

	assign := func(hash *externalapi.Hash) {
		if _, already := topoHeights[*hash]; already {
			return
		}
		topoHeights[*hash] = externalapi.TopoHeight(len(order))
		order = append(order, hash)
	}

	for _, chainBlock := range chainFromGenesis {
		data, err := gm.dataOf(chainBlock)
		if err != nil {
			return nil, nil, err
		}
		for _, merged := range gm.SubOrder(data) {
			assign(merged)
		}
		assign(chainBlock)
	}

	return order, topoHeights, nil
}

// SelectTips picks up to maxParents tips from currentTips that are
// pairwise non-reachable, maximising the lexicographic
// (blue_work_of_selected_parent, |candidate set|) objective (spec §4.F
// "Tip selection"). The selected parent of the resulting set is the
// blue_work-maximiser among the chosen tips.
func (gm *Manager) SelectTips(currentTips []*externalapi.Hash, maxParents uint32, areReachable func(a, b *externalapi.Hash) (bool, error)) ([]*externalapi.Hash, *externalapi.Hash, error) {
	if len(currentTips) == 0 {
		return nil, nil, consensuserrors.InvalidArgument("no tips to select from")
	}

	sorted := make([]*externalapi.Hash, len(currentTips))
	copy(sorted, currentTips)
	dataByHash := make(map[externalapi.Hash]*externalapi.GhostdagData, len(sorted))
	for _, tip := range sorted {
		data, err := gm.dataOf(tip)
		if err != nil {
			return nil, nil, err
		}
		dataByHash[*tip] = data
	}
	sort.Slice(sorted, func(i, j int) bool {
		return less(sorted[j], dataByHash[*sorted[j]], sorted[i], dataByHash[*sorted[i]])
	})

	chosen := make([]*externalapi.Hash, 0, maxParents)
	for _, candidate := range sorted {
		if uint32(len(chosen)) == maxParents {
			break
		}
		pairwiseOK := true
		for _, picked := range chosen {
			aReachesB, err := areReachable(candidate, picked)
			if err != nil {
				return nil, nil, err
			}
			bReachesA, err := areReachable(picked, candidate)
			if err != nil {
				return nil, nil, err
			}
			if aReachesB || bReachesA {
				pairwiseOK = false
				break
			}
		}
		if pairwiseOK {
			chosen = append(chosen, candidate)
		}
	}

	selectedParent, err := gm.ChooseSelectedParent(chosen)
	if err != nil {
		return nil, nil, err
	}
	return chosen, selectedParent, nil
}
