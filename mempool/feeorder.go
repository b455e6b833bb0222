package mempool

import "sort"

// feeRatePerKB computes spec §4.G's fee-rate-per-KB metric using integer
// arithmetic: fee / max(1, size/1024), falling back to the raw fee for
// sub-KB transactions to avoid a divide-by-zero.
func feeRatePerKB(fee uint64, size uint32) uint64 {
	kb := uint64(size) / 1024
	if kb == 0 {
		return fee
	}
	return fee / kb
}

// feeOrderEntry is one pool entry tracked for block-template ordering.
type feeOrderEntry struct {
	hash        entryHash
	feeRate     uint64
	insertOrder uint64
}

// feeOrder keeps pool entries sorted by non-increasing fee rate, with ties
// broken by stable insertion order (spec §4.G: "Transactions are retrieved
// in non-increasing fee-rate with stable insertion-order for ties"). A
// plain sorted slice is used rather than a heap since block templating
// reads the whole ordering at once and mutations (insert/remove) are rare
// relative to reads.
type feeOrder struct {
	entries []feeOrderEntry
	nextSeq uint64
}

func newFeeOrder() *feeOrder {
	return &feeOrder{}
}

func (fo *feeOrder) insert(hash entryHash, feeRate uint64) {
	entry := feeOrderEntry{hash: hash, feeRate: feeRate, insertOrder: fo.nextSeq}
	fo.nextSeq++
	i := sort.Search(len(fo.entries), func(i int) bool {
		e := fo.entries[i]
		if e.feeRate != feeRate {
			return e.feeRate < feeRate
		}
		return e.insertOrder > entry.insertOrder
	})
	fo.entries = append(fo.entries, feeOrderEntry{})
	copy(fo.entries[i+1:], fo.entries[i:])
	fo.entries[i] = entry
}

func (fo *feeOrder) remove(hash entryHash) {
	for i, e := range fo.entries {
		if e.hash == hash {
			fo.entries = append(fo.entries[:i], fo.entries[i+1:]...)
			return
		}
	}
}

// ordered returns pool entry hashes from highest to lowest fee rate.
func (fo *feeOrder) ordered() []entryHash {
	out := make([]entryHash, len(fo.entries))
	for i := range fo.entries {
		out[i] = fo.entries[i].hash
	}
	return out
}
