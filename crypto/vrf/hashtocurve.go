package vrf

import (
	"crypto/sha512"

	"github.com/gtank/ristretto255"
)

// hashToCurveLabel domain-separates VRF input derivation from every other
// use of FromUniformBytes in this module.
const hashToCurveLabel = "tos-sub008/vrf/hash-to-curve/v1"

// hashToCurve maps blockPreHash||minerIdentity onto a ristretto255 element,
// the VRF's per-block input point. Chain id is deliberately never mixed in
// here: spec §4.D requires the VRF output to be chain-independent, with
// chain binding carried entirely by the separate binding signature.
func hashToCurve(blockPreHash, minerIdentity []byte) *ristretto255.Element {
	h := sha512.New()
	h.Write([]byte(hashToCurveLabel))
	h.Write(blockPreHash)
	h.Write(minerIdentity)
	return ristretto255.NewElement().FromUniformBytes(h.Sum(nil))
}
