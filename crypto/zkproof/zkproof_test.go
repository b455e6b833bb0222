package zkproof

import (
	"crypto/rand"
	"testing"

	"github.com/gtank/ristretto255"

	"github.com/tos-network/tos-sub008/crypto/elgamal"
)

func mustKey(t *testing.T) *elgamal.PrivateKey {
	t.Helper()
	priv, err := elgamal.GenerateKeyDefault()
	if err != nil {
		t.Fatalf("GenerateKeyDefault: %s", err)
	}
	return priv
}

func TestShieldProofRoundTrip(t *testing.T) {
	recipient := mustKey(t).PublicKey()
	ct, opening, err := elgamal.EncryptDefault(recipient, 10)
	if err != nil {
		t.Fatalf("EncryptDefault: %s", err)
	}

	proof, err := ProveShieldDefault(recipient, 10, opening, ct)
	if err != nil {
		t.Fatalf("ProveShieldDefault: %s", err)
	}

	if err := VerifyShield(recipient, 10, ct, proof); err != nil {
		t.Fatalf("VerifyShield: %s", err)
	}
}

func TestShieldProofRejectsWrongAmount(t *testing.T) {
	recipient := mustKey(t).PublicKey()
	ct, opening, _ := elgamal.EncryptDefault(recipient, 10)
	proof, _ := ProveShieldDefault(recipient, 10, opening, ct)

	if err := VerifyShield(recipient, 11, ct, proof); err == nil {
		t.Fatal("expected wrong declared amount to fail verification")
	}
}

func TestShieldProofRejectsWrongKey(t *testing.T) {
	recipient := mustKey(t).PublicKey()
	other := mustKey(t).PublicKey()
	ct, opening, _ := elgamal.EncryptDefault(recipient, 10)
	proof, _ := ProveShieldDefault(recipient, 10, opening, ct)

	if err := VerifyShield(other, 10, ct, proof); err == nil {
		t.Fatal("expected wrong recipient key to fail verification")
	}
}

func TestShieldProofRejectsTamperedScalar(t *testing.T) {
	recipient := mustKey(t).PublicKey()
	ct, opening, _ := elgamal.EncryptDefault(recipient, 10)
	proof, _ := ProveShieldDefault(recipient, 10, opening, ct)

	encoded := proof.Encode()
	encoded[64] ^= 0xFF
	tampered, err := DecodeShieldProof(encoded)
	if err != nil {
		// Flipping a bit in z can also produce a non-canonical scalar
		// encoding; either rejection path is a correct outcome.
		return
	}
	if err := VerifyShield(recipient, 10, ct, tampered); err == nil {
		t.Fatal("expected tampered proof to fail verification")
	}
}

func TestShieldProofEncodeDecodeRoundTrip(t *testing.T) {
	recipient := mustKey(t).PublicKey()
	ct, opening, _ := elgamal.EncryptDefault(recipient, 10)
	proof, _ := ProveShieldDefault(recipient, 10, opening, ct)

	encoded := proof.Encode()
	if len(encoded) != ShieldProofSize {
		t.Fatalf("Encode() length = %d, want %d", len(encoded), ShieldProofSize)
	}

	decoded, err := DecodeShieldProof(encoded)
	if err != nil {
		t.Fatalf("DecodeShieldProof: %s", err)
	}
	if err := VerifyShield(recipient, 10, ct, decoded); err != nil {
		t.Fatalf("VerifyShield(decoded): %s", err)
	}
}

func TestCiphertextValidityProofRoundTrip(t *testing.T) {
	sender := mustKey(t).PublicKey()
	recipient := mustKey(t).PublicKey()

	ct, opening, err := elgamal.EncryptTransferDefault(sender, recipient, 42)
	if err != nil {
		t.Fatalf("EncryptTransferDefault: %s", err)
	}

	proof, err := ProveCiphertextValidityDefault(sender, recipient, 42, opening, ct)
	if err != nil {
		t.Fatalf("ProveCiphertextValidityDefault: %s", err)
	}

	if err := VerifyCiphertextValidity(sender, recipient, ct, proof); err != nil {
		t.Fatalf("VerifyCiphertextValidity: %s", err)
	}
}

func TestCiphertextValidityProofRejectsSwappedKeys(t *testing.T) {
	sender := mustKey(t).PublicKey()
	recipient := mustKey(t).PublicKey()
	ct, opening, _ := elgamal.EncryptTransferDefault(sender, recipient, 42)
	proof, _ := ProveCiphertextValidityDefault(sender, recipient, 42, opening, ct)

	if err := VerifyCiphertextValidity(recipient, sender, ct, proof); err == nil {
		t.Fatal("expected swapped sender/recipient keys to fail verification")
	}
}

func TestCiphertextValidityProofEncodeDecodeRoundTrip(t *testing.T) {
	sender := mustKey(t).PublicKey()
	recipient := mustKey(t).PublicKey()
	ct, opening, _ := elgamal.EncryptTransferDefault(sender, recipient, 7)
	proof, _ := ProveCiphertextValidityDefault(sender, recipient, 7, opening, ct)

	encoded := proof.Encode()
	if len(encoded) != CiphertextValidityProofSize {
		t.Fatalf("Encode() length = %d, want %d", len(encoded), CiphertextValidityProofSize)
	}

	decoded, err := DecodeCiphertextValidityProof(encoded)
	if err != nil {
		t.Fatalf("DecodeCiphertextValidityProof: %s", err)
	}
	if err := VerifyCiphertextValidity(sender, recipient, ct, decoded); err != nil {
		t.Fatalf("VerifyCiphertextValidity(decoded): %s", err)
	}
}

func TestCiphertextValidityProofRejectsLegacyLengthByDefault(t *testing.T) {
	legacy := make([]byte, legacyCiphertextValidityProofSize)
	if _, err := DecodeCiphertextValidityProof(legacy); err == nil {
		t.Fatal("expected 128-byte legacy format to be rejected by the current-format decoder")
	}
	if _, err := DecodeLegacyCiphertextValidityProof(legacy, false); err == nil {
		t.Fatal("expected legacy decode to fail without the compatibility flag")
	}
}

func TestLegacyCiphertextValidityProofRoundTripWithFlag(t *testing.T) {
	sender := mustKey(t).PublicKey()
	recipient := mustKey(t).PublicKey()
	ct, opening, _ := elgamal.EncryptTransferDefault(sender, recipient, 5)

	// A legacy proof's challenge covers only the sender key, commitment,
	// sender handle, Y_0 and Y_1, so it is built directly here: a
	// current-format proof's challenge also covers the recipient side and
	// would not verify under the legacy transcript.
	kr, err := randomScalar(rand.Reader)
	if err != nil {
		t.Fatalf("randomScalar: %s", err)
	}
	kx, err := randomScalar(rand.Reader)
	if err != nil {
		t.Fatalf("randomScalar: %s", err)
	}
	y0 := ristretto255.NewElement().Add(
		ristretto255.NewElement().ScalarMult(kx, elgamal.BasePointH()),
		ristretto255.NewElement().ScalarBaseMult(kr),
	)
	y1 := ristretto255.NewElement().ScalarMult(kr, sender.Element())
	c := elgamal.TranscriptChallenge(ciphertextValidityLabel,
		sender.Encode(),
		ct.Commitment.Encode(nil),
		ct.SenderHandle.Encode(nil),
		y0.Encode(nil),
		y1.Encode(nil),
	)
	legacy := &LegacyCiphertextValidityProof{
		Y0: y0,
		Y1: y1,
		Zr: ristretto255.NewScalar().Add(kr, ristretto255.NewScalar().Multiply(c, opening.R)),
		Zx: ristretto255.NewScalar().Add(kx, ristretto255.NewScalar().Multiply(c, elgamal.ValueScalar(5))),
	}

	encoded := make([]byte, 0, legacyCiphertextValidityProofSize)
	encoded = legacy.Y0.Encode(encoded)
	encoded = legacy.Y1.Encode(encoded)
	encoded = legacy.Zr.Encode(encoded)
	encoded = legacy.Zx.Encode(encoded)

	decoded, err := DecodeLegacyCiphertextValidityProof(encoded, true)
	if err != nil {
		t.Fatalf("DecodeLegacyCiphertextValidityProof: %s", err)
	}
	if err := VerifyLegacyCiphertextValidity(sender, ct, decoded); err != nil {
		t.Fatalf("VerifyLegacyCiphertextValidity: %s", err)
	}
}
