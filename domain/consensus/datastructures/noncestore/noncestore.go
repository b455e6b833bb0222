// Package noncestore instantiates versionedstore for per-account nonce
// history: "nonces follow the identical scheme with a u64 payload"
// (spec §4.E).
package noncestore

import (
	"github.com/tos-network/tos-sub008/domain/consensus/datastructures/versionedstore"
	"github.com/tos-network/tos-sub008/domain/consensus/model/externalapi"
)

// Store is the versioned nonce history, keyed by account.
type Store struct {
	chain *versionedstore.Store[externalapi.Hash, externalapi.VersionedNonce]
}

// New constructs an empty nonce Store.
func New() *Store {
	return &Store{chain: versionedstore.New[externalapi.Hash, externalapi.VersionedNonce]()}
}

// ReadAt returns the account's nonce as of topoheight t.
func (s *Store) ReadAt(account externalapi.Hash, t externalapi.TopoHeight) (externalapi.Nonce, bool) {
	v, ok := s.chain.ReadAt(account, t)
	if !ok {
		return 0, false
	}
	return v.Value, true
}

// WriteAt records a new nonce version for account at topoheight t.
func (s *Store) WriteAt(account externalapi.Hash, t externalapi.TopoHeight, nonce externalapi.Nonce) {
	previous := externalapi.None()
	if pointer, ok := s.chain.Pointer(account); ok {
		previous = externalapi.Some(pointer)
	}
	s.chain.WriteAt(account, t, externalapi.VersionedNonce{Value: nonce, PreviousTopoHeight: previous})
}

// DeleteAt rolls back account's version at topoheight t.
func (s *Store) DeleteAt(account externalapi.Hash, t externalapi.TopoHeight) {
	s.chain.DeleteAt(account, t)
}

// DeleteAbove rolls back every account's versions above topoheight t.
func (s *Store) DeleteAbove(t externalapi.TopoHeight) {
	s.chain.DeleteAbove(t)
}

// DeleteBelowKeepLast prunes nonce history below topoheight t.
func (s *Store) DeleteBelowKeepLast(t externalapi.TopoHeight) {
	s.chain.DeleteBelowKeepLast(t)
}
