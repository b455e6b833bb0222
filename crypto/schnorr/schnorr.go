// Package schnorr implements plain Schnorr signatures over ristretto255,
// the same construction crypto/vrf uses for its miner-binding signature,
// generalized here to sign an arbitrary message rather than one fixed
// transcript shape. Transactions are authorized with it (spec §4.H:
// "Schnorr-over-Ristretto signature verification").
package schnorr

import (
	"crypto/rand"
	"errors"
	"io"

	"github.com/gtank/ristretto255"

	"github.com/tos-network/tos-sub008/crypto/elgamal"
)

// signatureLabel domain-separates transaction signatures from every other
// Chaum-Pedersen-shaped transcript in this module (shield proofs, VRF
// proofs, the VRF binding signature).
const signatureLabel = "tos-sub008/schnorr/signature/v1"

// Size is the fixed wire size: one compressed point and one scalar, 32
// bytes each.
const Size = 64

// ErrInvalidSignature is returned when a signature fails to verify or
// decode.
var ErrInvalidSignature = errors.New("schnorr: invalid signature")

// Signature is a Schnorr signature over an arbitrary message.
type Signature struct {
	R *ristretto255.Element
	S *ristretto255.Scalar
}

func randomScalar(rnd io.Reader) (*ristretto255.Scalar, error) {
	var buf [64]byte
	if _, err := io.ReadFull(rnd, buf[:]); err != nil {
		return nil, err
	}
	return ristretto255.NewScalar().FromUniformBytes(buf[:]), nil
}

// Sign produces a Signature over message under priv.
func Sign(rnd io.Reader, priv *elgamal.PrivateKey, message []byte) (*Signature, error) {
	k, err := randomScalar(rnd)
	if err != nil {
		return nil, err
	}
	r := ristretto255.NewElement().ScalarBaseMult(k)

	c := challenge(priv.PublicKey(), message, r)
	s := ristretto255.NewScalar().Add(k, ristretto255.NewScalar().Multiply(c, priv.Scalar()))

	return &Signature{R: r, S: s}, nil
}

// SignDefault draws its nonce from crypto/rand.
func SignDefault(priv *elgamal.PrivateKey, message []byte) (*Signature, error) {
	return Sign(rand.Reader, priv, message)
}

// Verify checks sig against pub and message.
func Verify(pub *elgamal.PublicKey, message []byte, sig *Signature) error {
	if sig == nil || sig.R == nil || sig.S == nil {
		return ErrInvalidSignature
	}
	c := challenge(pub, message, sig.R)

	lhs := ristretto255.NewElement().ScalarBaseMult(sig.S)
	rhs := ristretto255.NewElement().Add(sig.R, ristretto255.NewElement().ScalarMult(c, pub.Element()))
	if lhs.Equal(rhs) != 1 {
		return ErrInvalidSignature
	}
	return nil
}

func challenge(pub *elgamal.PublicKey, message []byte, r *ristretto255.Element) *ristretto255.Scalar {
	return elgamal.TranscriptChallenge(signatureLabel, pub.Encode(), message, r.Encode(nil))
}

// Encode returns the fixed 64-byte wire form: R || s.
func (sig *Signature) Encode() []byte {
	out := make([]byte, 0, Size)
	out = sig.R.Encode(out)
	out = sig.S.Encode(out)
	return out
}

// Decode decompresses a 64-byte encoding produced by Encode.
func Decode(encoded []byte) (*Signature, error) {
	if len(encoded) != Size {
		return nil, ErrInvalidSignature
	}
	r := ristretto255.NewElement()
	if err := r.Decode(encoded[:32]); err != nil {
		return nil, ErrInvalidSignature
	}
	s := ristretto255.NewScalar()
	if err := s.Decode(encoded[32:]); err != nil {
		return nil, ErrInvalidSignature
	}
	return &Signature{R: r, S: s}, nil
}
