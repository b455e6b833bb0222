package zkproof

import (
	"io"

	"github.com/gtank/ristretto255"
)

// randomScalar draws a uniformly random sigma-protocol nonce, reading 64
// bytes of entropy and reducing via wide-bytes the same way group.go's
// newScalarFromWideBytes does in crypto/elgamal.
func randomScalar(rnd io.Reader) (*ristretto255.Scalar, error) {
	var wide [64]byte
	if _, err := io.ReadFull(rnd, wide[:]); err != nil {
		return nil, err
	}
	return ristretto255.NewScalar().FromUniformBytes(wide[:]), nil
}
