package externalapi

// Transaction is a single signed state transition: a sender spending one
// nonce to apply payload, anchored to a recent block so stale transactions
// cannot be replayed indefinitely (spec §4.H step 2).
type Transaction struct {
	Sender    [32]byte // compressed Ristretto public key of the sending account
	Nonce     Nonce
	Payload   TransactionPayload
	Signature [64]byte // schnorr.Signature.Encode() over the transaction's signing preimage

	// ReferenceBlock is the block hash the sender attested as a recent tip
	// when building this transaction; transactionvalidator's
	// ValidateReferenceBlockRecency rejects it once the reference falls
	// outside the configured recency window measured in topoheight
	// (spec §4.H step 2).
	ReferenceBlock *Hash

	// FeePerByte is the fee rate the sender is willing to pay, in the
	// native asset's smallest unit per byte of serialized size. The
	// mempool sorts candidates by fee per KB, computed from Fee() and the
	// serialized size (spec §4.G).
	FeePerByte uint64

	// size caches SerializedSize's result once computed; zero means unset.
	size uint32
}

// SerializedSize returns the transaction's wire size in bytes, computing it
// once and caching the result. Computing this precisely requires the wire
// codec; callers that already know the encoded length (e.g. after decoding
// one off the wire) should use SetSerializedSize instead of re-deriving it.
func (t *Transaction) SerializedSize() uint32 {
	return t.size
}

// SetSerializedSize records tx's known encoded length, typically set by the
// decoder immediately after deserializing a transaction off the wire.
func (t *Transaction) SetSerializedSize(size uint32) {
	t.size = size
}

// Fee returns the total fee this transaction pays, derived from its
// per-byte rate and its serialized size.
func (t *Transaction) Fee() uint64 {
	return t.FeePerByte * uint64(t.SerializedSize())
}
