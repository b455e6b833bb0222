package model

import "github.com/tos-network/tos-sub008/domain/consensus/model/externalapi"

// VersionedStore represents the chained-history storage boundary backing
// balances and nonces (spec §4.E). modelfakes.VersionedStore implements
// it; `accountstore` and `noncestore` are built on the generic
// `versionedstore` package rather than this interface.
type VersionedStore interface {
	ReadAt(account externalapi.Hash, t externalapi.TopoHeight) (value uint64, found bool)
	WriteAt(account externalapi.Hash, t externalapi.TopoHeight, value uint64)
	DeleteAt(account externalapi.Hash, t externalapi.TopoHeight)
	DeleteAbove(t externalapi.TopoHeight)
	DeleteBelowKeepLast(t externalapi.TopoHeight)
}
