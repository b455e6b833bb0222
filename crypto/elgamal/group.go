// Package elgamal implements the twisted-ElGamal confidential-balance
// primitive over ristretto255 (spec §4.B): key generation, encryption, and
// the homomorphic add/sub that the encrypted-balance versioned store (§4.E)
// and the ZK proofs (§4.C) build on.
//
// The group is github.com/gtank/ristretto255, the same constant-time
// Ristretto-over-Curve25519 implementation the wider retrieval pack pulls in
// for account-model chains (luxfi-consensus, Jason-chen-taiwan-arcSignv2).
package elgamal

import (
	"crypto/sha512"

	"github.com/gtank/ristretto255"
)

// hDomainTag is the domain-separation tag hashed to derive the second base
// point H. G is the group's standard basepoint, reachable through
// ristretto255.Element.ScalarBaseMult; H must be a point nobody knows the
// discrete log of relative to G, so it is derived independently by hashing
// a fixed tag to a uniform 64-byte string and mapping it onto the curve.
const hDomainTag = "tos-sub008/elgamal/H/v1"

// basePointH is computed once at package init and reused for every
// commitment; it never changes for the lifetime of the process.
var basePointH = deriveH()

// BasePointH returns the Pedersen commitment base point H.
func BasePointH() *ristretto255.Element { return basePointH }

func deriveH() *ristretto255.Element {
	digest := sha512.Sum512([]byte(hDomainTag))
	return ristretto255.NewElement().FromUniformBytes(digest[:])
}

// newScalarFromWideBytes maps a 64-byte uniform string onto a scalar via
// ristretto255's built-in wide reduction, the same technique used to turn
// a SHA-512 transcript digest into a Fiat-Shamir challenge in crypto/zkproof.
func newScalarFromWideBytes(wide []byte) *ristretto255.Scalar {
	return ristretto255.NewScalar().FromUniformBytes(wide)
}
