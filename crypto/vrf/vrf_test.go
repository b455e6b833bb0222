package vrf

import (
	"bytes"
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

func TestProveVerifyRoundTrip(t *testing.T) {
	priv := mustKey(t)
	blockPreHash := []byte("block-pre-hash")
	minerIdentity := []byte("miner-identity")

	output, proof, err := ProveDefault(priv, blockPreHash, minerIdentity)
	if err != nil {
		t.Fatalf("ProveDefault: %s", err)
	}

	got, err := Verify(priv.PublicKey(), blockPreHash, minerIdentity, proof)
	if err != nil {
		t.Fatalf("Verify: %s", err)
	}
	if got != output {
		t.Fatal("verified output does not match proved output")
	}
}

func TestOutputDeterministicAcrossProofs(t *testing.T) {
	priv := mustKey(t)
	blockPreHash := []byte("block-pre-hash")
	minerIdentity := []byte("miner-identity")

	out1, proof1, _ := ProveDefault(priv, blockPreHash, minerIdentity)
	out2, proof2, _ := ProveDefault(priv, blockPreHash, minerIdentity)

	if out1 != out2 {
		t.Fatal("VRF output must be deterministic in secret and input")
	}
	if bytes.Equal(proof1.Encode(), proof2.Encode()) {
		t.Fatal("two proofs for the same input should differ (fresh nonce), both still verifying")
	}

	if _, err := Verify(priv.PublicKey(), blockPreHash, minerIdentity, proof1); err != nil {
		t.Fatalf("Verify(proof1): %s", err)
	}
	if _, err := Verify(priv.PublicKey(), blockPreHash, minerIdentity, proof2); err != nil {
		t.Fatalf("Verify(proof2): %s", err)
	}
}

func TestOutputChangesWithInput(t *testing.T) {
	priv := mustKey(t)
	out1, _, _ := ProveDefault(priv, []byte("block-a"), []byte("miner"))
	out2, _, _ := ProveDefault(priv, []byte("block-b"), []byte("miner"))
	if out1 == out2 {
		t.Fatal("changing block_pre_hash should change the VRF output")
	}
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	priv := mustKey(t)
	other := mustKey(t)
	blockPreHash := []byte("block-pre-hash")
	minerIdentity := []byte("miner-identity")

	_, proof, _ := ProveDefault(priv, blockPreHash, minerIdentity)
	if _, err := Verify(other.PublicKey(), blockPreHash, minerIdentity, proof); err == nil {
		t.Fatal("expected verification under the wrong public key to fail")
	}
}

func TestProofEncodeDecodeRoundTrip(t *testing.T) {
	priv := mustKey(t)
	_, proof, _ := ProveDefault(priv, []byte("x"), []byte("y"))

	encoded := proof.Encode()
	if len(encoded) != ProofSize {
		t.Fatalf("Encode() length = %d, want %d", len(encoded), ProofSize)
	}
	decoded, err := DecodeProof(encoded)
	if err != nil {
		t.Fatalf("DecodeProof: %s", err)
	}
	if _, err := Verify(priv.PublicKey(), []byte("x"), []byte("y"), decoded); err != nil {
		t.Fatalf("Verify(decoded): %s", err)
	}
}

func TestBindingSignatureRoundTrip(t *testing.T) {
	identity := mustKey(t)
	vrfKey := mustKey(t)
	blockPreHash := []byte("block-pre-hash")

	sig, err := SignDefault(identity, 7, vrfKey.PublicKey(), blockPreHash)
	if err != nil {
		t.Fatalf("SignDefault: %s", err)
	}
	if err := VerifyBinding(identity.PublicKey(), 7, vrfKey.PublicKey(), blockPreHash, sig); err != nil {
		t.Fatalf("VerifyBinding: %s", err)
	}
}

func TestBindingSignatureChainIDDoesNotAffectVRFOutput(t *testing.T) {
	priv := mustKey(t)
	blockPreHash := []byte("block-pre-hash")
	minerIdentity := []byte("miner-identity")

	out, _, _ := ProveDefault(priv, blockPreHash, minerIdentity)

	identity := mustKey(t)
	sigA, _ := SignDefault(identity, 1, priv.PublicKey(), blockPreHash)
	sigB, _ := SignDefault(identity, 2, priv.PublicKey(), blockPreHash)

	if err := VerifyBinding(identity.PublicKey(), 1, priv.PublicKey(), blockPreHash, sigA); err != nil {
		t.Fatalf("VerifyBinding(chain 1): %s", err)
	}
	if err := VerifyBinding(identity.PublicKey(), 2, priv.PublicKey(), blockPreHash, sigB); err != nil {
		t.Fatalf("VerifyBinding(chain 2): %s", err)
	}
	if err := VerifyBinding(identity.PublicKey(), 2, priv.PublicKey(), blockPreHash, sigA); err == nil {
		t.Fatal("binding signature for chain 1 must not verify against chain 2")
	}

	out2, _, _ := ProveDefault(priv, blockPreHash, minerIdentity)
	if out != out2 {
		t.Fatal("VRF output must not depend on chain id at all")
	}
}

func TestVerifyAttestationCombinesBothChecks(t *testing.T) {
	vrfKey := mustKey(t)
	identity := mustKey(t)
	blockPreHash := []byte("block-pre-hash")
	minerIdentity := []byte("miner-identity")

	_, proof, _ := ProveDefault(vrfKey, blockPreHash, minerIdentity)
	sig, _ := SignDefault(identity, 42, vrfKey.PublicKey(), blockPreHash)

	att := &Attestation{VRFPublicKey: vrfKey.PublicKey(), Proof: proof, BindingSignature: sig}
	if _, err := VerifyAttestation(identity.PublicKey(), 42, blockPreHash, minerIdentity, att); err != nil {
		t.Fatalf("VerifyAttestation: %s", err)
	}

	wrongMiner := mustKey(t)
	if _, err := VerifyAttestation(wrongMiner.PublicKey(), 42, blockPreHash, minerIdentity, att); err == nil {
		t.Fatal("expected attestation to fail against a miner identity it was not bound to")
	}
}
