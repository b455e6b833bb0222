package elgamal

import (
	"crypto/rand"
	"io"

	"github.com/gtank/ristretto255"
)

// Ciphertext is the twisted-ElGamal pair (C, D): a Pedersen commitment to
// the amount and a decrypt handle bound to one recipient public key.
// Homomorphically additive in both coordinates (spec §4.B).
type Ciphertext struct {
	Commitment *ristretto255.Element // C = v*H + r*G
	Handle     *ristretto255.Element // D = r*P
}

// Opening is the randomness used to build a Ciphertext; callers that need
// to prove statements about the ciphertext (shield-commitment, ciphertext
// validity) keep it around, everyone else discards it after encryption.
type Opening struct {
	R *ristretto255.Scalar
}

// NewOpening draws a fresh random opening scalar from rnd.
func NewOpening(rnd io.Reader) (*Opening, error) {
	var wide [64]byte
	if _, err := io.ReadFull(rnd, wide[:]); err != nil {
		return nil, err
	}
	return &Opening{R: newScalarFromWideBytes(wide[:])}, nil
}

// Commit computes the Pedersen commitment C = v*H + r*G for amount v under
// opening r.
func Commit(amount uint64, opening *Opening) *ristretto255.Element {
	vScalar := scalarFromUint64(amount)
	vH := ristretto255.NewElement().ScalarMult(vScalar, basePointH)
	rG := ristretto255.NewElement().ScalarBaseMult(opening.R)
	return ristretto255.NewElement().Add(vH, rG)
}

// Handle computes the decrypt handle D = r*P for recipient pub under
// opening r.
func Handle(pub *PublicKey, opening *Opening) *ristretto255.Element {
	return ristretto255.NewElement().ScalarMult(opening.R, pub.point)
}

// Encrypt builds a fresh Ciphertext encrypting amount under recipient pub,
// drawing a new opening from rnd, and returns both the ciphertext and the
// opening (the caller needs the opening to build the accompanying ZK proof).
func Encrypt(pub *PublicKey, amount uint64, rnd io.Reader) (*Ciphertext, *Opening, error) {
	opening, err := NewOpening(rnd)
	if err != nil {
		return nil, nil, err
	}
	return &Ciphertext{
		Commitment: Commit(amount, opening),
		Handle:     Handle(pub, opening),
	}, opening, nil
}

// EncryptDefault encrypts using crypto/rand.
func EncryptDefault(pub *PublicKey, amount uint64) (*Ciphertext, *Opening, error) {
	return Encrypt(pub, amount, rand.Reader)
}

// Add returns the homomorphic sum of two ciphertexts encrypted under the
// same public key: Dec(Enc(a)+Enc(b)) = a+b (spec §8 invariant 10).
func Add(a, b *Ciphertext) *Ciphertext {
	return &Ciphertext{
		Commitment: ristretto255.NewElement().Add(a.Commitment, b.Commitment),
		Handle:     ristretto255.NewElement().Add(a.Handle, b.Handle),
	}
}

// Subtract returns the homomorphic difference a-b.
func Subtract(a, b *Ciphertext) *Ciphertext {
	return &Ciphertext{
		Commitment: ristretto255.NewElement().Subtract(a.Commitment, b.Commitment),
		Handle:     ristretto255.NewElement().Subtract(a.Handle, b.Handle),
	}
}

// DecryptToPoint computes C - s*D = v*H, the undecoded plaintext point.
// Callers recover v via a Decoder (decode.go); DecryptToPoint alone never
// fails, decoding is where range/overflow errors surface.
func DecryptToPoint(priv *PrivateKey, ct *Ciphertext) *ristretto255.Element {
	sD := ristretto255.NewElement().ScalarMult(priv.scalar, ct.Handle)
	return ristretto255.NewElement().Subtract(ct.Commitment, sD)
}

// Encode returns the 64-byte wire/disk form: commitment || handle, each
// compressed to 32 bytes.
func (ct *Ciphertext) Encode() []byte {
	out := make([]byte, 0, 64)
	out = ct.Commitment.Encode(out)
	out = ct.Handle.Encode(out)
	return out
}

// DecodeCiphertext decompresses a 64-byte encoding produced by Encode.
func DecodeCiphertext(encoded []byte) (*Ciphertext, error) {
	if len(encoded) != 64 {
		return nil, ErrDecompression("ciphertext must be exactly 64 bytes")
	}
	c := ristretto255.NewElement()
	if err := c.Decode(encoded[:32]); err != nil {
		return nil, ErrDecompression("commitment: " + err.Error())
	}
	d := ristretto255.NewElement()
	if err := d.Decode(encoded[32:]); err != nil {
		return nil, ErrDecompression("handle: " + err.Error())
	}
	return &Ciphertext{Commitment: c, Handle: d}, nil
}

// ValueScalar exposes the amount-to-scalar encoding Commit uses, for callers
// in crypto/zkproof that need to recompute v*H independently while verifying
// a proof about a commitment.
func ValueScalar(v uint64) *ristretto255.Scalar { return scalarFromUint64(v) }

func scalarFromUint64(v uint64) *ristretto255.Scalar {
	var buf [32]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(v >> (8 * i))
	}
	s := ristretto255.NewScalar()
	if err := s.Decode(buf[:]); err != nil {
		// buf is a valid canonical scalar encoding (top bytes zero, value < L)
		// for any uint64, so Decode cannot fail here.
		panic(err)
	}
	return s
}
