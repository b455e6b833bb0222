package vrf

import (
	"crypto/rand"
	"encoding/binary"
	"io"

	"github.com/gtank/ristretto255"

	"github.com/tos-network/tos-sub008/crypto/elgamal"
)

// bindingLabel domain-separates the binding signature transcript from the
// VRF proof transcript; the two must never be confusable even though both
// are built over the same group with the same challenge machinery.
const bindingLabel = "tos-sub008/vrf/binding/v1"

// BindingSignatureSize is the fixed wire size: one compressed point and one
// scalar, 32 bytes each.
const BindingSignatureSize = 64

// BindingSignature is a plain Schnorr signature over
// chain_id||vrf_public_key||block_pre_hash, signed by the miner's identity
// key. It ties a VRF key to one miner and one chain, preventing a VRF
// keypair minted on one chain from being replayed as another miner's on a
// different chain (spec §4.D).
type BindingSignature struct {
	R *ristretto255.Element
	S *ristretto255.Scalar
}

// Sign produces a BindingSignature for vrfPub over (chainID, blockPreHash),
// signed by identityPriv.
func Sign(rnd io.Reader, identityPriv *elgamal.PrivateKey, chainID uint64, vrfPub *elgamal.PublicKey, blockPreHash []byte) (*BindingSignature, error) {
	k, err := randomScalar(rnd)
	if err != nil {
		return nil, err
	}
	r := ristretto255.NewElement().ScalarBaseMult(k)

	identityPub := identityPriv.PublicKey()
	c := bindingChallenge(identityPub, chainID, vrfPub, blockPreHash, r)
	s := ristretto255.NewScalar().Add(k, ristretto255.NewScalar().Multiply(c, identityPriv.Scalar()))

	return &BindingSignature{R: r, S: s}, nil
}

// SignDefault draws its nonce from crypto/rand.
func SignDefault(identityPriv *elgamal.PrivateKey, chainID uint64, vrfPub *elgamal.PublicKey, blockPreHash []byte) (*BindingSignature, error) {
	return Sign(rand.Reader, identityPriv, chainID, vrfPub, blockPreHash)
}

// VerifyBinding checks sig against the declared miner identity key,
// chainID, vrfPub, and blockPreHash. A mismatch on any of those four
// inputs fails verification identically (spec §4.D: "verification fails if
// the VRF proof is invalid or the binding signature does not match the
// declared miner").
func VerifyBinding(identityPub *elgamal.PublicKey, chainID uint64, vrfPub *elgamal.PublicKey, blockPreHash []byte, sig *BindingSignature) error {
	c := bindingChallenge(identityPub, chainID, vrfPub, blockPreHash, sig.R)

	lhs := ristretto255.NewElement().ScalarBaseMult(sig.S)
	rhs := ristretto255.NewElement().Add(sig.R, ristretto255.NewElement().ScalarMult(c, identityPub.Element()))
	if lhs.Equal(rhs) != 1 {
		return ErrBindingMismatch("signature does not match declared miner")
	}
	return nil
}

func bindingChallenge(identityPub *elgamal.PublicKey, chainID uint64, vrfPub *elgamal.PublicKey, blockPreHash []byte, r *ristretto255.Element) *ristretto255.Scalar {
	var chainIDBuf [8]byte
	binary.LittleEndian.PutUint64(chainIDBuf[:], chainID)
	return elgamal.TranscriptChallenge(bindingLabel,
		identityPub.Encode(),
		chainIDBuf[:],
		vrfPub.Encode(),
		blockPreHash,
		r.Encode(nil),
	)
}

// Encode returns the fixed 64-byte wire form: R || s.
func (sig *BindingSignature) Encode() []byte {
	out := make([]byte, 0, BindingSignatureSize)
	out = sig.R.Encode(out)
	out = sig.S.Encode(out)
	return out
}

// DecodeBindingSignature decompresses a 64-byte encoding produced by Encode.
func DecodeBindingSignature(encoded []byte) (*BindingSignature, error) {
	if len(encoded) != BindingSignatureSize {
		return nil, ErrBindingMismatch("binding signature must be exactly 64 bytes")
	}
	r := ristretto255.NewElement()
	if err := r.Decode(encoded[:32]); err != nil {
		return nil, ErrBindingMismatch("R: " + err.Error())
	}
	s := ristretto255.NewScalar()
	if err := s.Decode(encoded[32:]); err != nil {
		return nil, ErrBindingMismatch("s: " + err.Error())
	}
	return &BindingSignature{R: r, S: s}, nil
}
