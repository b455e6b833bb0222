// Package transactionvalidator checks a single transaction's structural,
// cryptographic, and account-state validity (spec §4.H steps 1-6).
// Grounded on daglabs-btcd's
// domain/consensus/processes/transactionvalidator's "exposes a set of
// validation classes" shape, generalized from script/mass/coinbase checks
// to this module's nonce-and-ciphertext checks.
package transactionvalidator

import (
	"github.com/tos-network/tos-sub008/crypto/elgamal"
	"github.com/tos-network/tos-sub008/crypto/schnorr"
	"github.com/tos-network/tos-sub008/crypto/zkproof"
	"github.com/tos-network/tos-sub008/domain/consensus/datastructures/accountstore"
	"github.com/tos-network/tos-sub008/domain/consensus/model/externalapi"
	"github.com/tos-network/tos-sub008/internal/consensuserrors"
	"github.com/tos-network/tos-sub008/internal/logs"
)

var log = logs.Logger(logs.SubsystemTags.VALD)

// Validator checks transactions against structural rules, signatures,
// confidential-transfer proofs, and the versioned account store.
type Validator struct {
	accounts *accountstore.Store

	// recencyWindow bounds how many topoheights behind the current tip a
	// transaction's ReferenceBlock may be (spec §4.H step 2).
	recencyWindow uint64

	// maxTimestampSkewMillis bounds how far into the future a block's
	// timestamp may be relative to the validating node's clock
	// (spec §5 "Cancellation and timeouts" / §4.H block timestamp check).
	maxTimestampSkewMillis int64
}

// New constructs a Validator. recencyWindow and maxTimestampSkewMillis come
// from the active network's configuration.
func New(accounts *accountstore.Store, recencyWindow uint64, maxTimestampSkewMillis int64) *Validator {
	return &Validator{
		accounts:               accounts,
		recencyWindow:          recencyWindow,
		maxTimestampSkewMillis: maxTimestampSkewMillis,
	}
}

// ValidateStructure performs the structural checks of spec §4.H step 1: a
// payload is present, the serialized size is nonzero, a reference block is
// set, and the payload-type-specific fields are populated. Transaction has
// no version field, and the fee and nonce values are not checked here. It
// has no access to chain state and can run before a transaction is
// admitted to the mempool.
func (v *Validator) ValidateStructure(tx *externalapi.Transaction) error {
	if tx.Payload == nil {
		return consensuserrors.InvalidTransaction("transaction has no payload")
	}
	if tx.SerializedSize() == 0 {
		return consensuserrors.InvalidTransaction("transaction has zero serialized size")
	}
	if tx.ReferenceBlock == nil {
		return consensuserrors.InvalidTransaction("transaction has no reference block")
	}

	switch payload := tx.Payload.(type) {
	case *externalapi.TransferPayload:
		hasPlaintext := payload.PlaintextAmount != 0
		hasEncrypted := payload.EncryptedTransfer != nil
		if hasPlaintext == hasEncrypted {
			return consensuserrors.InvalidTransaction("transfer must set exactly one of PlaintextAmount or EncryptedTransfer")
		}
	case *externalapi.ShieldPayload:
		if payload.Ciphertext == nil {
			return consensuserrors.InvalidTransaction("shield payload missing ciphertext")
		}
	case *externalapi.UnshieldPayload:
		if payload.Amount == 0 {
			return consensuserrors.InvalidTransaction("unshield amount must be nonzero")
		}
	case *externalapi.RegisterNamePayload:
		if payload.Name == "" {
			return consensuserrors.InvalidTransaction("register-name payload has empty name")
		}
	case *externalapi.EscrowCreatePayload:
		if payload.Amount == 0 {
			return consensuserrors.InvalidTransaction("escrow-create amount must be nonzero")
		}
	}
	return nil
}

// ValidateReferenceBlockRecency checks spec §4.H step 2: the transaction's
// reference topoheight must fall within recencyWindow of currentTip.
func (v *Validator) ValidateReferenceBlockRecency(referenceTopoHeight, currentTip externalapi.TopoHeight) error {
	if referenceTopoHeight > currentTip {
		return consensuserrors.InvalidTransaction("reference block is ahead of current tip")
	}
	if uint64(currentTip-referenceTopoHeight) > v.recencyWindow {
		return consensuserrors.InvalidTransaction("reference block has fallen outside the recency window")
	}
	return nil
}

// ValidateSignature checks spec §4.H step 3: a Schnorr-over-Ristretto
// signature over the transaction's signing preimage.
func (v *Validator) ValidateSignature(tx *externalapi.Transaction, signingPreimage []byte) error {
	pub, err := elgamal.DecodePublicKey(tx.Sender[:])
	if err != nil {
		return consensuserrors.Unauthorized("transaction sender key does not decode: " + err.Error())
	}
	sig, err := schnorr.Decode(tx.Signature[:])
	if err != nil {
		return consensuserrors.Unauthorized("transaction signature does not decode: " + err.Error())
	}
	if err := schnorr.Verify(pub, signingPreimage, sig); err != nil {
		return consensuserrors.Unauthorized("transaction signature verification failed: " + err.Error())
	}
	return nil
}

// ValidateEncryptedTransferProofs checks spec §4.H step 4 for a
// TransferPayload's confidential branch: the ciphertext-validity proof.
// The range proof and sender-side non-negativity proof are produced by an
// external Bulletproof-style primitive treated as a black box (spec §4.H
// step 4) and are out of this validator's scope; callers pass their
// verification result in rangeProofOK.
func (v *Validator) ValidateEncryptedTransferProofs(senderPub, recipientPub *elgamal.PublicKey,
	ct *elgamal.TransferCiphertext, proof *zkproof.CiphertextValidityProof, rangeProofOK bool) error {

	if !rangeProofOK {
		return consensuserrors.ProofVerification("range proof failed for confidential transfer")
	}
	if err := zkproof.VerifyCiphertextValidity(senderPub, recipientPub, ct, proof); err != nil {
		return consensuserrors.ProofVerification("ciphertext validity proof failed: " + err.Error())
	}
	return nil
}

// ValidateShieldProof checks spec §4.H step 5: a ShieldPayload's
// shield-commitment proof.
func (v *Validator) ValidateShieldProof(recipient *elgamal.PublicKey, amount uint64,
	ct *elgamal.Ciphertext, proof *zkproof.ShieldProof) error {

	if err := zkproof.VerifyShield(recipient, amount, ct, proof); err != nil {
		return consensuserrors.ProofVerification("shield proof failed: " + err.Error())
	}
	return nil
}

// ApplyNonceAndBalance performs spec §4.H step 6: the atomic nonce-and-
// balance compare-and-swap against the versioned account store. debitAsset
// and debitAmount identify the single asset and amount the transaction
// spends; payload-specific credits (recipient balance, shielded balance,
// escrow holdings) are applied by the caller via accountstore.ApplyCredit
// after this succeeds.
func (v *Validator) ApplyNonceAndBalance(account externalapi.Hash, debitAsset externalapi.Asset,
	parent, t externalapi.TopoHeight, expectedNonce externalapi.Nonce, debitAmount uint64) error {

	return v.accounts.ApplyDebit(account, debitAsset, parent, t, expectedNonce, debitAmount)
}
