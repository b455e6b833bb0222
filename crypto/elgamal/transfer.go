package elgamal

import (
	"crypto/rand"
	"io"

	"github.com/gtank/ristretto255"
)

// TransferCiphertext is a twisted-ElGamal ciphertext with two decrypt
// handles sharing one commitment: the sender needs to recover its own
// outgoing amount from its pending balance just as the recipient needs to
// recover the incoming amount, both from the same (v, r) pair. The
// ciphertext-validity proof in crypto/zkproof proves this sharing without
// revealing v.
type TransferCiphertext struct {
	Commitment      *ristretto255.Element // C = v*H + r*G
	SenderHandle    *ristretto255.Element // D_s = r*P_s
	RecipientHandle *ristretto255.Element // D_r = r*P_r
}

// EncryptTransfer builds a TransferCiphertext for amount under a single
// fresh opening, so that both senderPub and recipientPub can recover it
// from their own handle via DecryptSenderSide / DecryptRecipientSide.
func EncryptTransfer(senderPub, recipientPub *PublicKey, amount uint64, rnd io.Reader) (*TransferCiphertext, *Opening, error) {
	opening, err := NewOpening(rnd)
	if err != nil {
		return nil, nil, err
	}
	return &TransferCiphertext{
		Commitment:      Commit(amount, opening),
		SenderHandle:    Handle(senderPub, opening),
		RecipientHandle: Handle(recipientPub, opening),
	}, opening, nil
}

// EncryptTransferDefault encrypts using crypto/rand.
func EncryptTransferDefault(senderPub, recipientPub *PublicKey, amount uint64) (*TransferCiphertext, *Opening, error) {
	return EncryptTransfer(senderPub, recipientPub, amount, rand.Reader)
}

// DecryptSenderSide recovers v*H using the sender's private key and handle.
func (ct *TransferCiphertext) DecryptSenderSide(priv *PrivateKey) *ristretto255.Element {
	sD := ristretto255.NewElement().ScalarMult(priv.scalar, ct.SenderHandle)
	return ristretto255.NewElement().Subtract(ct.Commitment, sD)
}

// DecryptRecipientSide recovers v*H using the recipient's private key and handle.
func (ct *TransferCiphertext) DecryptRecipientSide(priv *PrivateKey) *ristretto255.Element {
	sD := ristretto255.NewElement().ScalarMult(priv.scalar, ct.RecipientHandle)
	return ristretto255.NewElement().Subtract(ct.Commitment, sD)
}

// Encode returns the 96-byte wire form: commitment || sender handle ||
// recipient handle, each compressed to 32 bytes.
func (ct *TransferCiphertext) Encode() []byte {
	out := make([]byte, 0, 96)
	out = ct.Commitment.Encode(out)
	out = ct.SenderHandle.Encode(out)
	out = ct.RecipientHandle.Encode(out)
	return out
}

// DecodeTransferCiphertext decompresses a 96-byte encoding produced by Encode.
func DecodeTransferCiphertext(encoded []byte) (*TransferCiphertext, error) {
	if len(encoded) != 96 {
		return nil, ErrDecompression("transfer ciphertext must be exactly 96 bytes")
	}
	c := ristretto255.NewElement()
	if err := c.Decode(encoded[:32]); err != nil {
		return nil, ErrDecompression("commitment: " + err.Error())
	}
	ds := ristretto255.NewElement()
	if err := ds.Decode(encoded[32:64]); err != nil {
		return nil, ErrDecompression("sender handle: " + err.Error())
	}
	dr := ristretto255.NewElement()
	if err := dr.Decode(encoded[64:]); err != nil {
		return nil, ErrDecompression("recipient handle: " + err.Error())
	}
	return &TransferCiphertext{Commitment: c, SenderHandle: ds, RecipientHandle: dr}, nil
}
