package vrf

import "github.com/tos-network/tos-sub008/crypto/elgamal"

// Attestation bundles everything a block header carries for VRF
// verification: the VRF proof over the block, the declared VRF public key,
// and the binding signature tying that key to the miner and chain.
type Attestation struct {
	VRFPublicKey     *elgamal.PublicKey
	Proof            *Proof
	BindingSignature *BindingSignature
}

// VerifyAttestation performs the combined check spec §4.D requires of a
// block: the VRF proof must verify under the declared VRF key and the
// block's (blockPreHash, minerIdentity), and the binding signature must
// verify under the claimed miner's identity key over
// (chainID, VRFPublicKey, blockPreHash). Both must hold or verification
// fails; chain_id participates only in the binding check, never in the
// VRF output.
func VerifyAttestation(minerIdentityPub *elgamal.PublicKey, chainID uint64, blockPreHash, minerIdentity []byte, att *Attestation) (Output, error) {
	output, err := Verify(att.VRFPublicKey, blockPreHash, minerIdentity, att.Proof)
	if err != nil {
		return Output{}, err
	}
	if err := VerifyBinding(minerIdentityPub, chainID, att.VRFPublicKey, blockPreHash, att.BindingSignature); err != nil {
		return Output{}, err
	}
	return output, nil
}
