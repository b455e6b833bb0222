package ghostdagmanager

import "github.com/tos-network/tos-sub008/domain/consensus/model/externalapi"

// less reports whether a's GhostdagData ranks below b's: lower blue_work
// first, blue_work ties broken by hash byte order (spec §4.F step 1).
// Ported from daglabs-btcd/domain/consensus/processes/ghostdagmanager/compare.go's
// Less, generalized to take data directly rather than re-fetching it.
func less(aHash *externalapi.Hash, aData *externalapi.GhostdagData, bHash *externalapi.Hash, bData *externalapi.GhostdagData) bool {
	switch aData.BlueWork.Cmp(bData.BlueWork) {
	case -1:
		return true
	case 1:
		return false
	default:
		return externalapi.Less(aHash, bHash)
	}
}

// chooseSelectedParent returns the blue_work-maximising (then
// hash-maximising) hash among candidates, by GHOSTDAG's argmax rule.
func chooseSelectedParent(candidates []*externalapi.Hash, dataOf func(*externalapi.Hash) (*externalapi.GhostdagData, error)) (*externalapi.Hash, error) {
	selected := candidates[0]
	selectedData, err := dataOf(selected)
	if err != nil {
		return nil, err
	}
	for _, candidate := range candidates[1:] {
		candidateData, err := dataOf(candidate)
		if err != nil {
			return nil, err
		}
		if less(selected, selectedData, candidate, candidateData) {
			selected, selectedData = candidate, candidateData
		}
	}
	return selected, nil
}
