// Package externalapi holds the data model shared across the consensus
// core: hashes, topological heights, block headers, GhostdagData,
// versioned balances, and the transaction payload union. It carries no
// business logic of its own, following daglabs-btcd's
// domain/consensus/model/externalapi convention of a dependency-light
// struct package that every process package imports.
package externalapi

import (
	"bytes"
	"encoding/hex"
	"sort"
)

// HashSize is the number of bytes in a Hash.
const HashSize = 32

// Hash is a 32-byte opaque block or transaction identifier. It is
// total-ordered for tie-breaking and byte-comparable (spec §3).
type Hash [HashSize]byte

// String returns the hexadecimal encoding of the hash.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// Clone returns a copy of h, or nil if h is nil.
func (h *Hash) Clone() *Hash {
	if h == nil {
		return nil
	}
	clone := *h
	return &clone
}

// Equal reports whether h equals other. Two nil hashes are equal; a nil
// and non-nil hash are not.
func (h *Hash) Equal(other *Hash) bool {
	if h == nil || other == nil {
		return h == other
	}
	return *h == *other
}

// Less reports whether h sorts before other under byte-order comparison,
// the canonical hash tiebreak spec §4.F's selected-parent rule and
// mergeset sort both rely on.
func Less(h, other *Hash) bool {
	return bytes.Compare(h[:], other[:]) < 0
}

// HashesEqual reports whether two hash slices contain the same hashes in
// the same order.
func HashesEqual(a, b []*Hash) bool {
	if len(a) != len(b) {
		return false
	}
	for i, h := range a {
		if !h.Equal(b[i]) {
			return false
		}
	}
	return true
}

// CloneHashes returns a deep copy of hashes.
func CloneHashes(hashes []*Hash) []*Hash {
	clone := make([]*Hash, len(hashes))
	for i, h := range hashes {
		clone[i] = h.Clone()
	}
	return clone
}

// SortHashes sorts hashes in place by byte order.
func SortHashes(hashes []*Hash) {
	sort.Slice(hashes, func(i, j int) bool { return Less(hashes[i], hashes[j]) })
}
