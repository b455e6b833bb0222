// Package zkproof implements the non-interactive sigma protocols that
// accompany confidential transfers: the shield-commitment proof and the
// ciphertext-validity proof (spec §4.C), both Fiat-Shamir transformed over
// a domain-separated transcript built on crypto/elgamal's ristretto255
// group machinery.
package zkproof

import "github.com/tos-network/tos-sub008/internal/consensuserrors"

// ErrProofVerification is returned for any algebraic inconsistency in a
// shield-commitment or ciphertext-validity proof. Tampered proofs, wrong
// amounts, and wrong keys all surface this same error; there is no
// distinguishing side channel between failure causes.
func ErrProofVerification(msg string) error {
	return consensuserrors.ProofVerification(msg)
}

// ErrLegacyFormatRejected is returned when the 128-byte ciphertext-validity
// format is presented without the compatibility flag, or when it is
// presented at all through an entry point that does not accept it.
func ErrLegacyFormatRejected(msg string) error {
	return consensuserrors.ProofVerification("legacy format rejected: " + msg)
}
