// Package vrf implements the per-block verifiable random function and its
// accompanying miner-binding signature (spec §4.D): a Schnorr-on-Ristretto
// VRF whose input excludes the chain id, paired with a conventional Schnorr
// signature over chain_id||vrf_public_key||block_pre_hash that ties the VRF
// key to both the miner and the chain.
package vrf

import "github.com/tos-network/tos-sub008/internal/consensuserrors"

// ErrVrfVerification is returned when a VRF proof does not verify against
// its claimed public key and input.
func ErrVrfVerification(msg string) error {
	return consensuserrors.VrfVerification(msg)
}

// ErrBindingMismatch is returned when the binding signature does not
// verify against the declared miner identity.
func ErrBindingMismatch(msg string) error {
	return consensuserrors.VrfVerification("binding: " + msg)
}
