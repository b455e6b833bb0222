package zkproof

import (
	"crypto/rand"
	"encoding/binary"
	"io"

	"github.com/gtank/ristretto255"

	"github.com/tos-network/tos-sub008/crypto/elgamal"
)

// shieldLabel domain-separates the shield-commitment transcript from every
// other proof type (spec §4.C transcript discipline).
const shieldLabel = "tos-sub008/zkproof/shield/v1"

// ShieldProofSize is the fixed wire size: two compressed points and one
// scalar, 32 bytes each.
const ShieldProofSize = 96

// ShieldProof proves that a newly-shielded commitment/handle pair encodes
// exactly a publicly-revealed amount under the recipient's public key,
// without revealing the opening. It is a Chaum-Pedersen equality-of-discrete
// log proof: the opening r satisfies both C-v*H = r*G and D = r*P, and the
// proof shows the same r without exposing it.
type ShieldProof struct {
	YH *ristretto255.Element
	YP *ristretto255.Element
	Z  *ristretto255.Scalar
}

// ProveShield builds a ShieldProof for a ciphertext the caller already
// constructed via elgamal.Encrypt, given the opening used to build it.
func ProveShield(rnd io.Reader, recipient *elgamal.PublicKey, amount uint64, opening *elgamal.Opening, ct *elgamal.Ciphertext) (*ShieldProof, error) {
	k, err := randomScalar(rnd)
	if err != nil {
		return nil, err
	}

	yH := ristretto255.NewElement().ScalarBaseMult(k)
	yP := ristretto255.NewElement().ScalarMult(k, recipient.Element())

	c := shieldChallenge(recipient, amount, ct, yH, yP)
	z := ristretto255.NewScalar().Add(k, ristretto255.NewScalar().Multiply(c, opening.R))

	return &ShieldProof{YH: yH, YP: yP, Z: z}, nil
}

// ProveShieldDefault draws its nonce from crypto/rand.
func ProveShieldDefault(recipient *elgamal.PublicKey, amount uint64, opening *elgamal.Opening, ct *elgamal.Ciphertext) (*ShieldProof, error) {
	return ProveShield(rand.Reader, recipient, amount, opening, ct)
}

// VerifyShield checks a ShieldProof against the public commitment/handle
// pair, the recipient key, and the publicly-revealed amount. The two group
// equations are evaluated with fixed-cost scalar/point operations only; no
// vartime multiscalar path is used.
func VerifyShield(recipient *elgamal.PublicKey, amount uint64, ct *elgamal.Ciphertext, proof *ShieldProof) error {
	c := shieldChallenge(recipient, amount, ct, proof.YH, proof.YP)

	lhs1 := ristretto255.NewElement().ScalarBaseMult(proof.Z)
	vH := ristretto255.NewElement().ScalarMult(elgamal.ValueScalar(amount), elgamal.BasePointH())
	diff := ristretto255.NewElement().Subtract(ct.Commitment, vH)
	rhs1 := ristretto255.NewElement().Add(proof.YH, ristretto255.NewElement().ScalarMult(c, diff))
	if lhs1.Equal(rhs1) != 1 {
		return ErrProofVerification("commitment relation mismatch")
	}

	lhs2 := ristretto255.NewElement().ScalarMult(proof.Z, recipient.Element())
	rhs2 := ristretto255.NewElement().Add(proof.YP, ristretto255.NewElement().ScalarMult(c, ct.Handle))
	if lhs2.Equal(rhs2) != 1 {
		return ErrProofVerification("handle relation mismatch")
	}

	return nil
}

func shieldChallenge(recipient *elgamal.PublicKey, amount uint64, ct *elgamal.Ciphertext, yH, yP *ristretto255.Element) *ristretto255.Scalar {
	var amountBuf [8]byte
	binary.LittleEndian.PutUint64(amountBuf[:], amount)
	return elgamal.TranscriptChallenge(shieldLabel,
		recipient.Encode(),
		amountBuf[:],
		ct.Commitment.Encode(nil),
		ct.Handle.Encode(nil),
		yH.Encode(nil),
		yP.Encode(nil),
	)
}

// Encode returns the fixed 96-byte wire form: Y_H || Y_P || z.
func (p *ShieldProof) Encode() []byte {
	out := make([]byte, 0, ShieldProofSize)
	out = p.YH.Encode(out)
	out = p.YP.Encode(out)
	out = p.Z.Encode(out)
	return out
}

// DecodeShieldProof decompresses a 96-byte encoding produced by Encode.
func DecodeShieldProof(encoded []byte) (*ShieldProof, error) {
	if len(encoded) != ShieldProofSize {
		return nil, ErrProofVerification("shield proof must be exactly 96 bytes")
	}
	yH := ristretto255.NewElement()
	if err := yH.Decode(encoded[:32]); err != nil {
		return nil, ErrProofVerification("Y_H: " + err.Error())
	}
	yP := ristretto255.NewElement()
	if err := yP.Decode(encoded[32:64]); err != nil {
		return nil, ErrProofVerification("Y_P: " + err.Error())
	}
	z := ristretto255.NewScalar()
	if err := z.Decode(encoded[64:]); err != nil {
		return nil, ErrProofVerification("z: " + err.Error())
	}
	return &ShieldProof{YH: yH, YP: yP, Z: z}, nil
}
