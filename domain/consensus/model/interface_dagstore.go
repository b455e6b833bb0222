// Package model defines the narrow capability interfaces consensus
// components are wired against (spec §9 "Dynamic dispatch"), so that each
// can be backed by either a production KV engine or an in-memory test
// fake without the component itself changing.
package model

import (
	"math/big"

	"github.com/tos-network/tos-sub008/domain/consensus/model/externalapi"
)

// DagStore represents a store of GHOSTDAG block relations and ordering
// data. modelfakes.DagStore implements it; `ghostdagmanager` and
// `dagtopologymanager` use the concrete `blockrelationstore` and
// `ghostdagdatastore` types rather than this interface.
type DagStore interface {
	StageRelations(blockHash *externalapi.Hash, parents []*externalapi.Hash)
	StageGhostdagData(blockHash *externalapi.Hash, data *externalapi.GhostdagData)
	Commit() error
	Discard()
	Relations(blockHash *externalapi.Hash) (parents, children []*externalapi.Hash, found bool)
	GhostdagData(blockHash *externalapi.Hash) (*externalapi.GhostdagData, bool)
	OwnWork(blockHash *externalapi.Hash) (*big.Int, bool)
}
