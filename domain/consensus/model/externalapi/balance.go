package externalapi

import "github.com/tos-network/tos-sub008/crypto/elgamal"

// Nonce is a per-account monotonic counter (spec §3).
type Nonce uint64

// VersionedNonce is one version in an account's nonce history chain
// (spec §4.E): the value written at a topoheight, linked back to the
// topoheight of the previous version.
type VersionedNonce struct {
	Value              Nonce
	PreviousTopoHeight OptionalTopoHeight
}

// BalanceTag marks which side of a versioned delta produced an encrypted
// balance snapshot, letting a sender chain several in-flight transactions'
// pending ciphertexts independently of the final balance the next block's
// readers see (spec §3, §4.E).
type BalanceTag int

const (
	// BalanceTagInput marks a version produced by consuming (debiting) a balance.
	BalanceTagInput BalanceTag = iota
	// BalanceTagOutput marks a version produced by crediting a balance.
	BalanceTagOutput
	// BalanceTagBoth marks a version produced by both a debit and a credit
	// landing at the same topoheight.
	BalanceTagBoth
)

// VersionedBalance is one version in a plaintext (account, asset) balance
// history chain.
type VersionedBalance struct {
	Value              uint64
	PreviousTopoHeight OptionalTopoHeight
}

// VersionedEncryptedBalance is one version in an encrypted (UNO) balance
// history chain. Value is an ElGamal ciphertext; PendingOutput is the
// optional in-flight output ciphertext a same-block follow-up transaction
// chains onto before it is folded into the next version's Value.
type VersionedEncryptedBalance struct {
	Value              *elgamal.CiphertextCache
	PendingOutput      *elgamal.CiphertextCache // nil when no pending output is carried
	Tag                BalanceTag
	PreviousTopoHeight OptionalTopoHeight
}
