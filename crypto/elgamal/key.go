package elgamal

import (
	"crypto/rand"
	"crypto/sha512"
	"io"

	"github.com/gtank/ristretto255"
)

// weakKeyThreshold is 2^32; private scalars below it are rejected (spec
// §4.B). A real, uniformly-random 252-bit scalar lands below this threshold
// with negligible probability, so the rejection loop in GenerateKey almost
// never iterates more than once; the check exists to reject deliberately
// weak keys, not to handle an expected case.
var weakKeyThreshold = ristretto255.NewScalar()

func init() {
	// 2^32 as a little-endian 32-byte scalar encoding: byte 4 set, rest zero.
	buf := make([]byte, 32)
	buf[4] = 1
	if err := weakKeyThreshold.Decode(buf); err != nil {
		panic(err)
	}
}

// PrivateKey is a twisted-ElGamal signing/decryption scalar.
type PrivateKey struct {
	scalar *ristretto255.Scalar
}

// PublicKey is P = s*G, standard (not inverted) construction.
type PublicKey struct {
	point *ristretto255.Element
}

// GenerateKey draws a private scalar from rnd, looping until it passes the
// weak-key check (s != 0 and s >= 2^32).
func GenerateKey(rnd io.Reader) (*PrivateKey, error) {
	for {
		var wide [64]byte
		if _, err := io.ReadFull(rnd, wide[:]); err != nil {
			return nil, err
		}
		s := newScalarFromWideBytes(wide[:])
		if isWeakScalar(s) {
			continue
		}
		return &PrivateKey{scalar: s}, nil
	}
}

// GenerateKeyDefault draws a private key using crypto/rand.
func GenerateKeyDefault() (*PrivateKey, error) {
	return GenerateKey(rand.Reader)
}

// NewPrivateKeyFromScalar validates and wraps an already-derived scalar
// (e.g. decoded from storage or a wire message).
func NewPrivateKeyFromScalar(encoded []byte) (*PrivateKey, error) {
	s := ristretto255.NewScalar()
	if err := s.Decode(encoded); err != nil {
		return nil, ErrDecompression(err.Error())
	}
	if isWeakScalar(s) {
		return nil, ErrInvalidKey("scalar is zero or below 2^32")
	}
	return &PrivateKey{scalar: s}, nil
}

func isWeakScalar(s *ristretto255.Scalar) bool {
	if s.Equal(ristretto255.NewScalar()) == 1 {
		return true
	}
	return scalarLessThan(s, weakKeyThreshold)
}

// scalarLessThan reports whether s < other, comparing the canonical little-endian
// scalar encodings as unsigned big-endian-reversed integers. ristretto255
// does not expose an ordering primitive directly, so this compares the
// encoded bytes from most to least significant.
func scalarLessThan(s, other *ristretto255.Scalar) bool {
	a := s.Encode(nil)
	b := other.Encode(nil)
	for i := len(a) - 1; i >= 0; i-- {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// Encode returns the canonical 32-byte scalar encoding.
func (priv *PrivateKey) Encode() []byte { return priv.scalar.Encode(nil) }

// PublicKey derives P = s*G.
func (priv *PrivateKey) PublicKey() *PublicKey {
	return &PublicKey{point: ristretto255.NewElement().ScalarBaseMult(priv.scalar)}
}

// Scalar exposes the raw scalar for use by the zkproof and vrf packages,
// which operate on the same group but need the secret directly.
func (priv *PrivateKey) Scalar() *ristretto255.Scalar { return priv.scalar }

// Encode returns the canonical 32-byte compressed point encoding.
func (pub *PublicKey) Encode() []byte { return pub.point.Encode(nil) }

// Element exposes the raw point for use by zkproof/vrf verifiers.
func (pub *PublicKey) Element() *ristretto255.Element { return pub.point }

// DecodePublicKey decompresses a 32-byte Ristretto encoding into a PublicKey,
// rejecting encodings that are not valid points on the curve.
func DecodePublicKey(encoded []byte) (*PublicKey, error) {
	p := ristretto255.NewElement()
	if err := p.Decode(encoded); err != nil {
		return nil, ErrDecompression(err.Error())
	}
	return &PublicKey{point: p}, nil
}

// transcriptScalar hashes label||parts into a scalar via wide reduction; it
// is the shared building block zkproof's Fiat-Shamir challenges are built
// from, kept here because it depends on the same group machinery.
func transcriptScalar(label string, parts ...[]byte) *ristretto255.Scalar {
	h := sha512.New()
	h.Write([]byte(label))
	for _, p := range parts {
		h.Write(p)
	}
	return newScalarFromWideBytes(h.Sum(nil))
}

// TranscriptChallenge is the exported form of transcriptScalar, used by
// crypto/zkproof to derive Fiat-Shamir challenges over a domain-separated
// label and a fixed-order sequence of public transcript elements.
func TranscriptChallenge(label string, parts ...[]byte) *ristretto255.Scalar {
	return transcriptScalar(label, parts...)
}
