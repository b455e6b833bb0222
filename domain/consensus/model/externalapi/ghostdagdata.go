package externalapi

import "math/big"

// GhostdagData is the per-block output of the GHOSTDAG engine (spec §3,
// §4.F). BlueWork is carried as a big.Int the way
// domain/consensus/processes/ghostdagmanager/compare.go compares it
// (`BlueWork().Cmp(...)`); the spec's u192 bound is enforced by callers
// that encode it to a fixed-width wire form, not by the in-memory type.
type GhostdagData struct {
	BlueScore          uint64
	BlueWork           *big.Int
	SelectedParent     *Hash
	MergeSetBlues      []*Hash
	MergeSetReds       []*Hash
	BluesAnticoneSizes map[Hash]uint16
}

// NewGhostdagData builds a GhostdagData, defensively cloning every slice
// and map argument so the store and the caller never alias mutable state.
func NewGhostdagData(blueScore uint64, blueWork *big.Int, selectedParent *Hash,
	mergeSetBlues, mergeSetReds []*Hash, bluesAnticoneSizes map[Hash]uint16) *GhostdagData {

	clonedSizes := make(map[Hash]uint16, len(bluesAnticoneSizes))
	for h, size := range bluesAnticoneSizes {
		clonedSizes[h] = size
	}

	return &GhostdagData{
		BlueScore:          blueScore,
		BlueWork:           new(big.Int).Set(blueWork),
		SelectedParent:     selectedParent.Clone(),
		MergeSetBlues:      CloneHashes(mergeSetBlues),
		MergeSetReds:       CloneHashes(mergeSetReds),
		BluesAnticoneSizes: clonedSizes,
	}
}

// Clone returns a deep copy of gd.
func (gd *GhostdagData) Clone() *GhostdagData {
	if gd == nil {
		return nil
	}
	return NewGhostdagData(gd.BlueScore, gd.BlueWork, gd.SelectedParent, gd.MergeSetBlues, gd.MergeSetReds, gd.BluesAnticoneSizes)
}

// MergeSet returns blues followed by reds, the order mergeset-size-limit
// enforcement (spec §4.F invariant 6) counts against.
func (gd *GhostdagData) MergeSet() []*Hash {
	merged := make([]*Hash, 0, len(gd.MergeSetBlues)+len(gd.MergeSetReds))
	merged = append(merged, gd.MergeSetBlues...)
	merged = append(merged, gd.MergeSetReds...)
	return merged
}

// IsBlue reports whether hash is in gd's blue mergeset.
func (gd *GhostdagData) IsBlue(hash *Hash) bool {
	for _, blue := range gd.MergeSetBlues {
		if blue.Equal(hash) {
			return true
		}
	}
	return false
}
