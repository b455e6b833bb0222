package externalapi

import "math/big"

// MaxBlockParents bounds the number of parent tips a header may declare.
// The effective per-network bound is config/bps.Params.MaxBlockParents,
// which is always ≤ this constant; it exists here only to size the
// header's parent slice sanely before BPS params are known.
const MaxBlockParents = 16

// VRFData carries a block's verifiable-random-function attestation (spec
// §3): a 32-byte deterministic output, a 128-byte proof, the 32-byte VRF
// public key that produced it, and a 64-byte binding signature tying that
// key to the miner and chain. Encoded forms only; crypto/vrf owns
// decoding and verification.
type VRFData struct {
	Output           [32]byte
	Proof            [128]byte
	PublicKey        [32]byte
	BindingSignature [64]byte
}

// BlockHeader is a block's identifying metadata, excluding its
// transactions. Invariant: ParentTips are pairwise non-reachable
// (spec §4.F); enforcement lives in the blockvalidator, not here.
type BlockHeader struct {
	ParentTips    []*Hash
	MinerIdentity [32]byte // compressed Ristretto public key of the miner's identity key
	Timestamp     int64    // unix milliseconds
	Nonce         uint64   // proof-of-work nonce
	Target        [32]byte // big-endian PoW difficulty target; see Work()
	PayloadHash   *Hash    // hash of the block's transaction payload
	VRF           VRFData
}

// Work derives this header's contribution to blue_work: floor(2^256 /
// (target + 1)) (spec §4.F step 5), computed as a big-endian integer over
// Target.
func (h *BlockHeader) Work() *big.Int {
	target := new(big.Int).SetBytes(h.Target[:])
	denominator := new(big.Int).Add(target, big.NewInt(1))
	numerator := new(big.Int).Lsh(big.NewInt(1), 256)
	return new(big.Int).Div(numerator, denominator)
}

// Clone returns a deep copy of h.
func (h *BlockHeader) Clone() *BlockHeader {
	clone := *h
	clone.ParentTips = CloneHashes(h.ParentTips)
	clone.PayloadHash = h.PayloadHash.Clone()
	return &clone
}

// Block is a header paired with its ordered transactions.
type Block struct {
	Header       *BlockHeader
	Transactions []*Transaction
}
