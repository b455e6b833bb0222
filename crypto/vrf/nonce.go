package vrf

import (
	"io"

	"github.com/gtank/ristretto255"
)

// randomScalar draws a uniformly random sigma-protocol nonce, mirroring
// crypto/zkproof's helper of the same shape.
func randomScalar(rnd io.Reader) (*ristretto255.Scalar, error) {
	var wide [64]byte
	if _, err := io.ReadFull(rnd, wide[:]); err != nil {
		return nil, err
	}
	return ristretto255.NewScalar().FromUniformBytes(wide[:]), nil
}
