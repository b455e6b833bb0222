// Package ghostdagmanager computes each block's GhostdagData: selected
// parent, mergeset, K-cluster blue/red classification, blue score, and
// blue work (spec §4.F). Grounded on daglabs-btcd's
// domain/consensus/processes/ghostdagmanager (compare.go, mergeset.go) for
// the newer architecture's shape, and blockdag/ghostdag.go for the
// K-cluster loop itself, which only survives in the legacy tree.
package ghostdagmanager

import (
	"math/big"

	"github.com/tos-network/tos-sub008/domain/consensus/datastructures/blockrelationstore"
	"github.com/tos-network/tos-sub008/domain/consensus/datastructures/ghostdagdatastore"
	"github.com/tos-network/tos-sub008/domain/consensus/model/externalapi"
	"github.com/tos-network/tos-sub008/domain/consensus/processes/dagtopologymanager"
	"github.com/tos-network/tos-sub008/domain/consensus/processes/reachabilitymanager"
	"github.com/tos-network/tos-sub008/internal/consensuserrors"
	"github.com/tos-network/tos-sub008/internal/logs"
)

var log = logs.Logger(logs.SubsystemTags.GDAG)

// Manager computes and stores GhostdagData for each admitted block.
type Manager struct {
	k                 uint32
	mergeSetSizeLimit uint32

	relations    *blockrelationstore.Store
	topology     *dagtopologymanager.Manager
	reachability *reachabilitymanager.Manager
	dataStore    *ghostdagdatastore.Store
}

// New constructs a Manager. k and mergeSetSizeLimit come from the active
// network's BPS-derived config/bps.Params.
func New(k, mergeSetSizeLimit uint32, relations *blockrelationstore.Store, topology *dagtopologymanager.Manager, reachability *reachabilitymanager.Manager, dataStore *ghostdagdatastore.Store) *Manager {
	return &Manager{
		k:                 k,
		mergeSetSizeLimit: mergeSetSizeLimit,
		relations:         relations,
		topology:          topology,
		reachability:      reachability,
		dataStore:         dataStore,
	}
}

// AddGenesis registers the DAG's first block with no selected parent,
// seeding its BlueWork with its own header-derived work. Blue work
// accumulates along the selected-parent chain only (spec §4.F step 5:
// blue_work(B) = blue_work(selected_parent) + work(B)); mergeset
// membership outside the selected parent affects blue_score, not
// blue_work. Without this seed the first non-genesis block's blue_work
// would start from zero instead of genesis's own work.
func (gm *Manager) AddGenesis(genesis *externalapi.Hash, work *big.Int) {
	gm.reachability.AddGenesis(genesis)
	gm.relations.Stage(genesis, &blockrelationstore.BlockRelations{})
	gm.relations.Commit()
	data := externalapi.NewGhostdagData(0, work, nil, nil, nil, nil)
	gm.dataStore.Stage(genesis, data)
	gm.dataStore.Commit()
}

func (gm *Manager) dataOf(hash *externalapi.Hash) (*externalapi.GhostdagData, error) {
	data, ok := gm.dataStore.Get(hash)
	if !ok {
		return nil, consensuserrors.InvariantViolated("ghostdag data missing for " + hash.String())
	}
	return data, nil
}

// BuildGhostdagData computes blockHash's GhostdagData from its parent set
// and work (spec §4.F steps 1-6), staging the block's relations and data
// but not committing them — the caller commits once the rest of the
// block's validation passes.
func (gm *Manager) BuildGhostdagData(blockHash *externalapi.Hash, parents []*externalapi.Hash, work *big.Int) (*externalapi.GhostdagData, error) {
	if len(parents) == 0 {
		return nil, consensuserrors.InvalidBlock("non-genesis block must declare at least one parent")
	}

	selectedParent, err := chooseSelectedParent(parents, gm.dataOf)
	if err != nil {
		return nil, err
	}

	mergeSetSlice, err := mergeSet(gm.topology, selectedParent, parents)
	if err != nil {
		return nil, err
	}

	blues, reds, anticoneSizes, err := classify(gm.topology, gm.k, selectedParent, mergeSetSlice, gm.dataOf)
	if err != nil {
		return nil, err
	}

	if uint32(len(blues)+len(reds)) > gm.mergeSetSizeLimit {
		return nil, consensuserrors.MergesetTooLarge("mergeset exceeds configured size limit")
	}

	selectedParentData, err := gm.dataOf(selectedParent)
	if err != nil {
		return nil, err
	}

	blueScore := selectedParentData.BlueScore + uint64(len(blues))

	// blue_work(B) = blue_work(selected_parent) + work(B) (spec §4.F step
	// 5): blue work tracks cumulative proof-of-work along the
	// selected-parent chain, the same way blue_score tracks mergeset
	// inclusion along it. A block's mergeset blues outside its selected
	// parent widen blue_score but contribute no extra weight here, since
	// their own work was already folded into blue_work when they in turn
	// extended their own selected-parent chain.
	blueWork := new(big.Int).Add(selectedParentData.BlueWork, work)

	// mergeset_blues must list selected_parent first (spec §3's
	// GhostdagData invariant); blues already has that shape since classify
	// seeds it with []Hash{selectedParent}.
	data := externalapi.NewGhostdagData(blueScore, blueWork, selectedParent, blues, reds, anticoneSizes)
	log.Debugf("computed ghostdag data for %s: blue_score=%d blues=%d reds=%d", blockHash, blueScore, len(blues), len(reds))

	gm.relations.Stage(blockHash, &blockrelationstore.BlockRelations{Parents: externalapi.CloneHashes(parents)})
	for _, parent := range parents {
		gm.relations.AppendChild(parent, blockHash)
	}
	gm.dataStore.Stage(blockHash, data)

	return data, nil
}

// Commit persists blockHash's staged relation and GhostdagData, adds it to
// the reachability tree, and records its selected-parent-chain membership.
func (gm *Manager) Commit(blockHash *externalapi.Hash, data *externalapi.GhostdagData) error {
	mergeParents := data.MergeSet()
	if err := gm.reachability.AddBlock(blockHash, data.SelectedParent, mergeParents); err != nil {
		return err
	}
	gm.topology.SetSelectedParent(blockHash, data.SelectedParent)
	gm.relations.Commit()
	gm.dataStore.Commit()
	return nil
}

// Discard drops blockHash's staged relation and data, used when a
// later validation step rejects the block.
func (gm *Manager) Discard() {
	gm.relations.Discard()
	gm.dataStore.Discard()
}

// ChooseSelectedParent exposes the blue_work-maximising tip among
// candidates, used by tip selection (spec §4.F "The selected parent of the
// new block is the blue_work-maximiser among the chosen tips").
func (gm *Manager) ChooseSelectedParent(candidates []*externalapi.Hash) (*externalapi.Hash, error) {
	return chooseSelectedParent(candidates, gm.dataOf)
}

// GhostdagDataByHash returns a committed or staged block's GhostdagData.
func (gm *Manager) GhostdagDataByHash(hash *externalapi.Hash) (*externalapi.GhostdagData, error) {
	return gm.dataOf(hash)
}
