package vrf

import (
	"crypto/rand"
	"crypto/sha512"
	"io"

	"github.com/gtank/ristretto255"

	"github.com/tos-network/tos-sub008/crypto/elgamal"
)

// vrfLabel domain-separates the VRF proof transcript. The VRF keypair
// lives in the same ristretto255 group crypto/elgamal uses, so
// elgamal.PrivateKey / elgamal.PublicKey double as the VRF key types; a
// miner's VRF key and identity key are simply two independent instances of
// the same type.
const vrfLabel = "tos-sub008/vrf/prove/v1"

// outputLabel domain-separates output derivation from the proof transcript
// so that Gamma's encoding can never collide with a challenge input.
const outputLabel = "tos-sub008/vrf/output/v1"

// ProofSize is the fixed wire size: Gamma, Y_G, Y_H (one compressed point
// each) and z (one scalar), 32 bytes each.
const ProofSize = 128

// Output is the 32-byte deterministic VRF output.
type Output [32]byte

// Proof is a Chaum-Pedersen equality-of-discrete-log proof that Gamma =
// x*H (the VRF evaluation) for the same secret x whose public key is
// X = x*G, without revealing x. The nonce k behind Y_G/Y_H is fresh per
// call, so two proofs for the same input differ while both verify and
// yield the same Output.
type Proof struct {
	Gamma *ristretto255.Element
	YG    *ristretto255.Element
	YH    *ristretto255.Element
	Z     *ristretto255.Scalar
}

// Prove evaluates the VRF on hash_to_curve(blockPreHash||minerIdentity)
// under priv, returning the deterministic output and a proof of correct
// evaluation. chain_id is deliberately not an input here (spec §4.D); it
// only ever appears in the accompanying binding signature.
func Prove(rnd io.Reader, priv *elgamal.PrivateKey, blockPreHash, minerIdentity []byte) (Output, *Proof, error) {
	h := hashToCurve(blockPreHash, minerIdentity)
	gamma := ristretto255.NewElement().ScalarMult(priv.Scalar(), h)

	k, err := randomScalar(rnd)
	if err != nil {
		return Output{}, nil, err
	}
	yg := ristretto255.NewElement().ScalarBaseMult(k)
	yh := ristretto255.NewElement().ScalarMult(k, h)

	pub := priv.PublicKey()
	c := proveChallenge(pub, h, gamma, yg, yh)
	z := ristretto255.NewScalar().Add(k, ristretto255.NewScalar().Multiply(c, priv.Scalar()))

	return deriveOutput(gamma), &Proof{Gamma: gamma, YG: yg, YH: yh, Z: z}, nil
}

// ProveDefault draws its nonce from crypto/rand.
func ProveDefault(priv *elgamal.PrivateKey, blockPreHash, minerIdentity []byte) (Output, *Proof, error) {
	return Prove(rand.Reader, priv, blockPreHash, minerIdentity)
}

// Verify checks proof against pub and the declared (blockPreHash,
// minerIdentity) input, returning the VRF output on success. Any algebraic
// inconsistency fails with ErrVrfVerification; there is no byte-level
// output comparison to bypass since the output is derived from the
// verified Gamma, not taken as an input.
func Verify(pub *elgamal.PublicKey, blockPreHash, minerIdentity []byte, proof *Proof) (Output, error) {
	h := hashToCurve(blockPreHash, minerIdentity)
	c := proveChallenge(pub, h, proof.Gamma, proof.YG, proof.YH)

	lhs1 := ristretto255.NewElement().ScalarBaseMult(proof.Z)
	rhs1 := ristretto255.NewElement().Add(proof.YG, ristretto255.NewElement().ScalarMult(c, pub.Element()))
	if lhs1.Equal(rhs1) != 1 {
		return Output{}, ErrVrfVerification("public-key relation mismatch")
	}

	lhs2 := ristretto255.NewElement().ScalarMult(proof.Z, h)
	rhs2 := ristretto255.NewElement().Add(proof.YH, ristretto255.NewElement().ScalarMult(c, proof.Gamma))
	if lhs2.Equal(rhs2) != 1 {
		return Output{}, ErrVrfVerification("input relation mismatch")
	}

	return deriveOutput(proof.Gamma), nil
}

func proveChallenge(pub *elgamal.PublicKey, h, gamma, yg, yh *ristretto255.Element) *ristretto255.Scalar {
	return elgamal.TranscriptChallenge(vrfLabel,
		pub.Encode(),
		h.Encode(nil),
		gamma.Encode(nil),
		yg.Encode(nil),
		yh.Encode(nil),
	)
}

func deriveOutput(gamma *ristretto255.Element) Output {
	digest := sha512.Sum512(append([]byte(outputLabel), gamma.Encode(nil)...))
	var out Output
	copy(out[:], digest[:32])
	return out
}

// Encode returns the fixed 128-byte wire form: Gamma || Y_G || Y_H || z.
func (p *Proof) Encode() []byte {
	out := make([]byte, 0, ProofSize)
	out = p.Gamma.Encode(out)
	out = p.YG.Encode(out)
	out = p.YH.Encode(out)
	out = p.Z.Encode(out)
	return out
}

// DecodeProof decompresses a 128-byte encoding produced by Encode.
func DecodeProof(encoded []byte) (*Proof, error) {
	if len(encoded) != ProofSize {
		return nil, ErrVrfVerification("vrf proof must be exactly 128 bytes")
	}
	gamma := ristretto255.NewElement()
	if err := gamma.Decode(encoded[:32]); err != nil {
		return nil, ErrVrfVerification("Gamma: " + err.Error())
	}
	yg := ristretto255.NewElement()
	if err := yg.Decode(encoded[32:64]); err != nil {
		return nil, ErrVrfVerification("Y_G: " + err.Error())
	}
	yh := ristretto255.NewElement()
	if err := yh.Decode(encoded[64:96]); err != nil {
		return nil, ErrVrfVerification("Y_H: " + err.Error())
	}
	z := ristretto255.NewScalar()
	if err := z.Decode(encoded[96:]); err != nil {
		return nil, ErrVrfVerification("z: " + err.Error())
	}
	return &Proof{Gamma: gamma, YG: yg, YH: yh, Z: z}, nil
}
