// Package bps derives every consensus constant (GHOSTDAG K, mergeset size,
// finality depth, pruning depth, coinbase maturity) from a single
// blocks-per-second target, the way the teacher's dagconfig package derives
// an entire network Params value from one set of hand-picked knobs.
//
// Unlike the teacher, which hand-picks K per network, K here is itself
// derived from BPS via calcK, and only BPS values present in the vetted
// lookup table are accepted — an unsupported BPS is rejected by Derive
// before any Params value is built, the closest Go gets to the spec's
// "fails at compile time" requirement without code generation.
package bps

import (
	"math"

	"github.com/pkg/errors"
)

// Params mirrors the teacher's dagconfig.Params in spirit: one struct that
// fully parameterises the engine, selected once at startup and threaded
// through by reference from then on.
type Params struct {
	// BPS is the target blocks per second this Params was derived from.
	BPS int

	// K is the GHOSTDAG anticone-size bound.
	K uint32

	// TargetBlockTimeMillis is 1000 / BPS.
	TargetBlockTimeMillis uint64

	// MaxBlockParents is clamp(K/2, 10, 16).
	MaxBlockParents uint32

	// MergeSetSizeLimit is clamp(2K, 180, 512).
	MergeSetSizeLimit uint32

	// FinalityDepth is BPS * 100 blocks.
	FinalityDepth uint64

	// PruningDepth is FinalityDepth * 2.
	PruningDepth uint64

	// CoinbaseMaturity is BPS * 100 blocks.
	CoinbaseMaturity uint64

	// Network names which environment this Params was derived for
	// ("mainnet", "testnet", "devnet" per spec §6's "one directory per
	// network" layout).
	Network string

	// SkipBlockTemplateTxsVerification mirrors the daemon's
	// skip_block_template_txs_verification knob (spec §9). Guarded here at
	// config load and again by mempool.Pool at template-collection time,
	// per spec §9's explicit "enforce at both" instruction.
	SkipBlockTemplateTxsVerification bool
}

// NetworkConfig selects a network name and the skip-verification knob
// supplied at config load, ahead of BPS derivation.
type NetworkConfig struct {
	Network                          string
	SkipBlockTemplateTxsVerification bool
}

// poissonFailureProbability (delta) is the fixed target false-positive rate
// for the K-cluster bound, spec §4.A.
const poissonFailureProbability = 1e-3

// anticoneBaseRate and anticoneGrowthExponent fit x = 2*D*lambda to the two
// network-measured anchor points in spec §4.A (1 BPS -> K=10, 10 BPS ->
// K=124): above 1 BPS, blocks carry proportionally more transactions, so
// the effective propagation delay D grows super-linearly with the block
// rate rather than staying fixed. This is the offline derivation kaspad's
// own K table is built from, reproduced here only for calcK's self-check.
const anticoneBaseRate = 3.0
const anticoneGrowthExponent = 1.491

// anticoneParameter returns x, the Poisson rate calcK bounds.
func anticoneParameter(targetBPS int) float64 {
	return anticoneBaseRate * math.Pow(float64(targetBPS), anticoneGrowthExponent)
}

// vettedK is the pre-computed lookup table spec §4.A requires: only BPS
// values listed here are accepted by Derive. Values were produced offline by
// calcK(anticoneParameter(bps), poissonFailureProbability) and are
// cross-checked by TestVettedTableMatchesCalcK.
var vettedK = map[int]uint32{
	1:  10,
	2:  19,
	4:  40,
	5:  52,
	8:  93,
	10: 124,
}

// calcK computes the smallest K such that P(Poisson(x) > K) < delta, by
// accumulating the Poisson CDF term by term until it crosses 1-delta. This
// is an offline derivation tool (spec §4.A); production code must go through
// the vetted table in Derive, never call this on a consensus path.
func calcK(x, delta float64) uint32 {
	term := math.Exp(-x)
	sigma := term
	for k := uint32(0); ; k++ {
		if 1-sigma < delta {
			return k
		}
		k64 := float64(k + 1)
		term *= x / k64
		sigma += term
	}
}

// Derive builds a Params for the given BPS and network, rejecting any BPS
// absent from the vetted table and rejecting
// SkipBlockTemplateTxsVerification on mainnet (spec §9's first of two
// required enforcement points; mempool.Pool enforces the second at
// template-collection time).
func Derive(targetBPS int, network NetworkConfig) (*Params, error) {
	k, ok := vettedK[targetBPS]
	if !ok {
		return nil, errors.Errorf("bps: %d blocks/sec has no vetted GHOSTDAG K; add it to vettedK after running calcK offline", targetBPS)
	}
	if network.Network == "mainnet" && network.SkipBlockTemplateTxsVerification {
		return nil, errors.New("bps: skip_block_template_txs_verification is not permitted on mainnet")
	}

	finality := uint64(targetBPS) * 100

	return &Params{
		BPS:                              targetBPS,
		K:                                k,
		TargetBlockTimeMillis:            uint64(1000 / targetBPS),
		MaxBlockParents:                  clampU32(k/2, 10, 16),
		MergeSetSizeLimit:                clampU32(2*k, 180, 512),
		FinalityDepth:                    finality,
		PruningDepth:                     finality * 2,
		CoinbaseMaturity:                 finality,
		Network:                          network.Network,
		SkipBlockTemplateTxsVerification: network.SkipBlockTemplateTxsVerification,
	}, nil
}

// MustDerive is Derive but panics on an unsupported BPS or a rejected
// network/skip-verification combination. Call it exactly once at process
// start from the chosen network's static BPS constant — the panic there
// plays the role spec §4.A assigns to a compile-time failure.
func MustDerive(targetBPS int, network NetworkConfig) *Params {
	params, err := Derive(targetBPS, network)
	if err != nil {
		panic(err)
	}
	return params
}

func clampU32(v, lo, hi uint32) uint32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
