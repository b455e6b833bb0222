package zkproof

import (
	"crypto/rand"
	"io"

	"github.com/gtank/ristretto255"

	"github.com/tos-network/tos-sub008/crypto/elgamal"
)

// ciphertextValidityLabel domain-separates this proof from every other
// proof type (spec §4.C transcript discipline).
const ciphertextValidityLabel = "tos-sub008/zkproof/ciphertext-validity/v1"

// CiphertextValidityProofSize is the current wire size: three compressed
// points and two scalars, 32 bytes each.
const CiphertextValidityProofSize = 160

// legacyCiphertextValidityProofSize is the pre-Y_2 format, rejected on
// current consensus versions unless explicitly allowed.
const legacyCiphertextValidityProofSize = 128

// CiphertextValidityProof proves an elgamal.TransferCiphertext encodes the
// same amount v under both the sender's and the recipient's public keys,
// for one shared opening r, without revealing v.
type CiphertextValidityProof struct {
	Y0 *ristretto255.Element
	Y1 *ristretto255.Element
	Y2 *ristretto255.Element
	Zr *ristretto255.Scalar
	Zx *ristretto255.Scalar
}

// LegacyCiphertextValidityProof is the pre-Y_2 format: it proves the
// commitment/sender-handle relation only, with no binding to the recipient
// key at all. Spec §9 notes this as "not supported by current TOS"; kept
// here only so a caller that explicitly opts in can still decode and
// reject (or, in a compatibility window, verify) proofs built by older
// tooling or test harnesses.
type LegacyCiphertextValidityProof struct {
	Y0 *ristretto255.Element
	Y1 *ristretto255.Element
	Zr *ristretto255.Scalar
	Zx *ristretto255.Scalar
}

// ProveCiphertextValidity builds a CiphertextValidityProof for a
// TransferCiphertext the caller already constructed via
// elgamal.EncryptTransfer, given the opening and amount used to build it.
func ProveCiphertextValidity(rnd io.Reader, senderPub, recipientPub *elgamal.PublicKey, amount uint64, opening *elgamal.Opening, ct *elgamal.TransferCiphertext) (*CiphertextValidityProof, error) {
	kr, err := randomScalar(rnd)
	if err != nil {
		return nil, err
	}
	kx, err := randomScalar(rnd)
	if err != nil {
		return nil, err
	}

	y0 := ristretto255.NewElement().Add(
		ristretto255.NewElement().ScalarMult(kx, elgamal.BasePointH()),
		ristretto255.NewElement().ScalarBaseMult(kr),
	)
	y1 := ristretto255.NewElement().ScalarMult(kr, senderPub.Element())
	y2 := ristretto255.NewElement().ScalarMult(kr, recipientPub.Element())

	c := ciphertextValidityChallenge(senderPub, recipientPub, ct, y0, y1, y2)

	zr := ristretto255.NewScalar().Add(kr, ristretto255.NewScalar().Multiply(c, opening.R))
	zx := ristretto255.NewScalar().Add(kx, ristretto255.NewScalar().Multiply(c, elgamal.ValueScalar(amount)))

	return &CiphertextValidityProof{Y0: y0, Y1: y1, Y2: y2, Zr: zr, Zx: zx}, nil
}

// ProveCiphertextValidityDefault draws its nonces from crypto/rand.
func ProveCiphertextValidityDefault(senderPub, recipientPub *elgamal.PublicKey, amount uint64, opening *elgamal.Opening, ct *elgamal.TransferCiphertext) (*CiphertextValidityProof, error) {
	return ProveCiphertextValidity(rand.Reader, senderPub, recipientPub, amount, opening, ct)
}

// VerifyCiphertextValidity checks a CiphertextValidityProof against the
// public TransferCiphertext and both parties' public keys.
func VerifyCiphertextValidity(senderPub, recipientPub *elgamal.PublicKey, ct *elgamal.TransferCiphertext, proof *CiphertextValidityProof) error {
	c := ciphertextValidityChallenge(senderPub, recipientPub, ct, proof.Y0, proof.Y1, proof.Y2)

	lhs0 := ristretto255.NewElement().Add(
		ristretto255.NewElement().ScalarMult(proof.Zx, elgamal.BasePointH()),
		ristretto255.NewElement().ScalarBaseMult(proof.Zr),
	)
	rhs0 := ristretto255.NewElement().Add(proof.Y0, ristretto255.NewElement().ScalarMult(c, ct.Commitment))
	if lhs0.Equal(rhs0) != 1 {
		return ErrProofVerification("commitment relation mismatch")
	}

	lhs1 := ristretto255.NewElement().ScalarMult(proof.Zr, senderPub.Element())
	rhs1 := ristretto255.NewElement().Add(proof.Y1, ristretto255.NewElement().ScalarMult(c, ct.SenderHandle))
	if lhs1.Equal(rhs1) != 1 {
		return ErrProofVerification("sender handle relation mismatch")
	}

	lhs2 := ristretto255.NewElement().ScalarMult(proof.Zr, recipientPub.Element())
	rhs2 := ristretto255.NewElement().Add(proof.Y2, ristretto255.NewElement().ScalarMult(c, ct.RecipientHandle))
	if lhs2.Equal(rhs2) != 1 {
		return ErrProofVerification("recipient handle relation mismatch")
	}

	return nil
}

// VerifyLegacyCiphertextValidity checks a LegacyCiphertextValidityProof
// against the commitment and sender handle only; it makes no statement
// about the recipient handle at all, which is exactly why the format is
// rejected on current consensus versions.
func VerifyLegacyCiphertextValidity(senderPub *elgamal.PublicKey, ct *elgamal.TransferCiphertext, proof *LegacyCiphertextValidityProof) error {
	c := elgamal.TranscriptChallenge(ciphertextValidityLabel,
		senderPub.Encode(),
		ct.Commitment.Encode(nil),
		ct.SenderHandle.Encode(nil),
		proof.Y0.Encode(nil),
		proof.Y1.Encode(nil),
	)

	lhs0 := ristretto255.NewElement().Add(
		ristretto255.NewElement().ScalarMult(proof.Zx, elgamal.BasePointH()),
		ristretto255.NewElement().ScalarBaseMult(proof.Zr),
	)
	rhs0 := ristretto255.NewElement().Add(proof.Y0, ristretto255.NewElement().ScalarMult(c, ct.Commitment))
	if lhs0.Equal(rhs0) != 1 {
		return ErrProofVerification("commitment relation mismatch")
	}

	lhs1 := ristretto255.NewElement().ScalarMult(proof.Zr, senderPub.Element())
	rhs1 := ristretto255.NewElement().Add(proof.Y1, ristretto255.NewElement().ScalarMult(c, ct.SenderHandle))
	if lhs1.Equal(rhs1) != 1 {
		return ErrProofVerification("sender handle relation mismatch")
	}

	return nil
}

func ciphertextValidityChallenge(senderPub, recipientPub *elgamal.PublicKey, ct *elgamal.TransferCiphertext, y0, y1, y2 *ristretto255.Element) *ristretto255.Scalar {
	return elgamal.TranscriptChallenge(ciphertextValidityLabel,
		senderPub.Encode(),
		recipientPub.Encode(),
		ct.Commitment.Encode(nil),
		ct.SenderHandle.Encode(nil),
		ct.RecipientHandle.Encode(nil),
		y0.Encode(nil),
		y1.Encode(nil),
		y2.Encode(nil),
	)
}

// Encode returns the fixed 160-byte wire form: Y_0 || Y_1 || Y_2 || z_r || z_x.
func (p *CiphertextValidityProof) Encode() []byte {
	out := make([]byte, 0, CiphertextValidityProofSize)
	out = p.Y0.Encode(out)
	out = p.Y1.Encode(out)
	out = p.Y2.Encode(out)
	out = p.Zr.Encode(out)
	out = p.Zx.Encode(out)
	return out
}

// DecodeCiphertextValidityProof decompresses the current 160-byte format.
// A 128-byte legacy encoding is rejected here unconditionally; callers that
// must accept it go through DecodeLegacyCiphertextValidityProof instead,
// which requires an explicit opt-in.
func DecodeCiphertextValidityProof(encoded []byte) (*CiphertextValidityProof, error) {
	if len(encoded) == legacyCiphertextValidityProofSize {
		return nil, ErrLegacyFormatRejected("160-byte format required")
	}
	if len(encoded) != CiphertextValidityProofSize {
		return nil, ErrProofVerification("ciphertext validity proof has unrecognized length")
	}
	y0 := ristretto255.NewElement()
	if err := y0.Decode(encoded[:32]); err != nil {
		return nil, ErrProofVerification("Y_0: " + err.Error())
	}
	y1 := ristretto255.NewElement()
	if err := y1.Decode(encoded[32:64]); err != nil {
		return nil, ErrProofVerification("Y_1: " + err.Error())
	}
	y2 := ristretto255.NewElement()
	if err := y2.Decode(encoded[64:96]); err != nil {
		return nil, ErrProofVerification("Y_2: " + err.Error())
	}
	zr := ristretto255.NewScalar()
	if err := zr.Decode(encoded[96:128]); err != nil {
		return nil, ErrProofVerification("z_r: " + err.Error())
	}
	zx := ristretto255.NewScalar()
	if err := zx.Decode(encoded[128:]); err != nil {
		return nil, ErrProofVerification("z_x: " + err.Error())
	}
	return &CiphertextValidityProof{Y0: y0, Y1: y1, Y2: y2, Zr: zr, Zx: zx}, nil
}

// DecodeLegacyCiphertextValidityProof decompresses the 128-byte pre-Y_2
// format. allowLegacy must be true or the call fails with
// ErrLegacyFormatRejected regardless of the byte length presented; spec §9
// treats this format as rejected on current consensus versions unless a
// compatibility flag is explicitly passed.
func DecodeLegacyCiphertextValidityProof(encoded []byte, allowLegacy bool) (*LegacyCiphertextValidityProof, error) {
	if !allowLegacy {
		return nil, ErrLegacyFormatRejected("compatibility flag not set")
	}
	if len(encoded) != legacyCiphertextValidityProofSize {
		return nil, ErrProofVerification("legacy ciphertext validity proof must be exactly 128 bytes")
	}
	y0 := ristretto255.NewElement()
	if err := y0.Decode(encoded[:32]); err != nil {
		return nil, ErrProofVerification("Y_0: " + err.Error())
	}
	y1 := ristretto255.NewElement()
	if err := y1.Decode(encoded[32:64]); err != nil {
		return nil, ErrProofVerification("Y_1: " + err.Error())
	}
	zr := ristretto255.NewScalar()
	if err := zr.Decode(encoded[64:96]); err != nil {
		return nil, ErrProofVerification("z_r: " + err.Error())
	}
	zx := ristretto255.NewScalar()
	if err := zx.Decode(encoded[96:]); err != nil {
		return nil, ErrProofVerification("z_x: " + err.Error())
	}
	return &LegacyCiphertextValidityProof{Y0: y0, Y1: y1, Zr: zr, Zx: zx}, nil
}
