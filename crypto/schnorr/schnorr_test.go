package schnorr

import (
	"testing"

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

func TestSignVerifyRoundTrip(t *testing.T) {
	priv := mustKey(t)
	message := []byte("transfer 10 UNO to account X at nonce 4")

	sig, err := SignDefault(priv, message)
	if err != nil {
		t.Fatalf("SignDefault: %s", err)
	}
	if err := Verify(priv.PublicKey(), message, sig); err != nil {
		t.Fatalf("Verify: %s", err)
	}
}

func TestVerifyRejectsTamperedMessage(t *testing.T) {
	priv := mustKey(t)
	sig, err := SignDefault(priv, []byte("original message"))
	if err != nil {
		t.Fatalf("SignDefault: %s", err)
	}
	if err := Verify(priv.PublicKey(), []byte("tampered message"), sig); err == nil {
		t.Fatal("expected verification to fail against a tampered message")
	}
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	priv := mustKey(t)
	other := mustKey(t)
	message := []byte("message")

	sig, err := SignDefault(priv, message)
	if err != nil {
		t.Fatalf("SignDefault: %s", err)
	}
	if err := Verify(other.PublicKey(), message, sig); err == nil {
		t.Fatal("expected verification to fail against the wrong public key")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	priv := mustKey(t)
	message := []byte("message")

	sig, err := SignDefault(priv, message)
	if err != nil {
		t.Fatalf("SignDefault: %s", err)
	}

	decoded, err := Decode(sig.Encode())
	if err != nil {
		t.Fatalf("Decode: %s", err)
	}
	if err := Verify(priv.PublicKey(), message, decoded); err != nil {
		t.Fatalf("Verify(decoded): %s", err)
	}
}

func TestDecodeRejectsWrongLength(t *testing.T) {
	if _, err := Decode(make([]byte, Size-1)); err == nil {
		t.Fatal("expected Decode to reject a short input")
	}
}
