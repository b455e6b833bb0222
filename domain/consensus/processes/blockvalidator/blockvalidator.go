// Package blockvalidator checks a block's header and applies its
// transactions in canonical order (spec §4.H "For each block"). Grounded
// on daglabs-btcd's domain/consensus/processes/blockvalidator's
// "exposes a set of validation classes" shape, generalized from this
// module's PoW/parent/timestamp/VRF checks rather than the teacher's
// difficulty-adjustment and UTXO acceptance checks.
package blockvalidator

import (
	"github.com/tos-network/tos-sub008/crypto/elgamal"
	"github.com/tos-network/tos-sub008/crypto/vrf"
	"github.com/tos-network/tos-sub008/domain/consensus/datastructures/accountstore"
	"github.com/tos-network/tos-sub008/domain/consensus/model/externalapi"
	"github.com/tos-network/tos-sub008/domain/consensus/processes/dagtopologymanager"
	"github.com/tos-network/tos-sub008/domain/consensus/processes/ghostdagmanager"
	"github.com/tos-network/tos-sub008/domain/consensus/processes/transactionvalidator"
	"github.com/tos-network/tos-sub008/internal/consensuserrors"
	"github.com/tos-network/tos-sub008/internal/logs"
)

var log = logs.Logger(logs.SubsystemTags.VALD)

// Validator checks block-level invariants and applies a validated block's
// transactions to the versioned account store.
type Validator struct {
	chainID uint64

	maxTimestampSkewMillis int64

	topology   *dagtopologymanager.Manager
	ghostdag   *ghostdagmanager.Manager
	txvalidate *transactionvalidator.Validator
	accounts   *accountstore.Store
}

// New constructs a Validator.
func New(chainID uint64, maxTimestampSkewMillis int64, topology *dagtopologymanager.Manager,
	ghostdag *ghostdagmanager.Manager, txvalidate *transactionvalidator.Validator, accounts *accountstore.Store) *Validator {

	return &Validator{
		chainID:                chainID,
		maxTimestampSkewMillis: maxTimestampSkewMillis,
		topology:               topology,
		ghostdag:               ghostdag,
		txvalidate:             txvalidate,
		accounts:               accounts,
	}
}

// ValidateParents checks spec §4.H "verify parent tips are non-reachable"
// (spec §4.F invariant 6).
func (v *Validator) ValidateParents(header *externalapi.BlockHeader) error {
	if len(header.ParentTips) == 0 {
		return consensuserrors.InvalidBlock("block declares no parents")
	}
	if len(header.ParentTips) > externalapi.MaxBlockParents {
		return consensuserrors.InvalidBlock("block declares more parents than the configured maximum")
	}
	ok, err := v.topology.AreParentsPairwiseNonReachable(header.ParentTips)
	if err != nil {
		return err
	}
	if !ok {
		return consensuserrors.PastConeOverlap("block parents are not pairwise non-reachable")
	}
	return nil
}

// ValidateTimestamp checks spec §4.H: timestamp must be ≥ the selected
// parent's timestamp and not in the future beyond the configured skew
// tolerance.
func (v *Validator) ValidateTimestamp(header *externalapi.BlockHeader, selectedParentTimestamp, nowMillis int64) error {
	if header.Timestamp < selectedParentTimestamp {
		return consensuserrors.TimestampOutOfBounds("block timestamp precedes selected parent's timestamp")
	}
	if header.Timestamp > nowMillis+v.maxTimestampSkewMillis {
		return consensuserrors.TimestampOutOfBounds("block timestamp is too far in the future")
	}
	return nil
}

// ValidateVRFBinding checks spec §4.H "verify VRF binding" (spec §4.D):
// the block's VRF attestation binds its public key to the miner identity
// and chain id, and its deterministic output is reproducible from the
// attestation's proof.
func (v *Validator) ValidateVRFBinding(header *externalapi.BlockHeader, blockPreHash []byte) error {
	minerPub, err := elgamal.DecodePublicKey(header.MinerIdentity[:])
	if err != nil {
		return consensuserrors.VrfVerification("miner identity does not decode: " + err.Error())
	}
	vrfPub, err := elgamal.DecodePublicKey(header.VRF.PublicKey[:])
	if err != nil {
		return consensuserrors.VrfVerification("VRF public key does not decode: " + err.Error())
	}
	proof, err := vrf.DecodeProof(header.VRF.Proof[:])
	if err != nil {
		return consensuserrors.VrfVerification("VRF proof does not decode: " + err.Error())
	}
	binding, err := vrf.DecodeBindingSignature(header.VRF.BindingSignature[:])
	if err != nil {
		return consensuserrors.VrfVerification("VRF binding signature does not decode: " + err.Error())
	}

	att := &vrf.Attestation{VRFPublicKey: vrfPub, Proof: proof, BindingSignature: binding}
	if _, err := vrf.VerifyAttestation(minerPub, v.chainID, blockPreHash, header.MinerIdentity[:], att); err != nil {
		return consensuserrors.VrfVerification("VRF attestation verification failed: " + err.Error())
	}
	return nil
}

// ApplyTransactions applies block's transactions in canonical sub-order
// (spec §4.H "apply transactions in the canonical sub-order") and commits
// the resulting versioned-store versions keyed by topoHeight. applyOne
// performs the per-transaction checks (steps 1-6) and the actual
// nonce/balance CAS for a given transaction; it is supplied by the caller
// because applying a transaction also requires decoding
// payload-specific credits this package does not own.
func (v *Validator) ApplyTransactions(block *externalapi.Block, topoHeight externalapi.TopoHeight,
	applyOne func(tx *externalapi.Transaction, t externalapi.TopoHeight) error) error {

	for _, tx := range block.Transactions {
		if err := applyOne(tx, topoHeight); err != nil {
			return err
		}
	}
	log.Debugf("applied %d transactions at topoheight %d", len(block.Transactions), topoHeight)
	return nil
}
