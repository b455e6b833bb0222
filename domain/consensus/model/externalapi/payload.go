package externalapi

import "github.com/tos-network/tos-sub008/crypto/elgamal"

// Opcode identifies a transaction payload's variant. Values are the wire-
// compatibility contract (spec §9, design note "Polymorphic proof types"):
// stable once assigned, and a new variant is only backward compatible if
// it claims a previously-unused opcode.
type Opcode uint8

// Opcode values below 19 and above 20 are this module's own assignment;
// spec §9 pins only Shield=19 and Unshield=20 and leaves the rest
// unspecified, so 1-2 and 21-27 are chosen here and are stable only within
// this module, not inherited from any external wire format.
const (
	OpcodeTransfer        Opcode = 1
	OpcodeRegisterName    Opcode = 2
	OpcodeShield          Opcode = 19
	OpcodeUnshield        Opcode = 20
	OpcodeEscrowCreate    Opcode = 21
	OpcodeEscrowRelease   Opcode = 22
	OpcodeEscrowRefund    Opcode = 23
	OpcodeEscrowChallenge Opcode = 24
	OpcodeEscrowDispute   Opcode = 25
	OpcodeEscrowAppeal    Opcode = 26
	OpcodeEscrowVerdict   Opcode = 27
)

// TransactionPayload is the tagged-union interface every payload variant
// implements; the Opcode is the variant's stable wire tag.
type TransactionPayload interface {
	Opcode() Opcode
}

// TransferPayload moves value between two accounts. Exactly one of
// PlaintextAmount or EncryptedTransfer is populated, matching whether the
// transfer is a plaintext (TOS) or confidential (UNO) transfer.
type TransferPayload struct {
	Asset     Asset
	Recipient [32]byte

	// PlaintextAmount is used for ordinary (non-confidential) transfers.
	PlaintextAmount uint64

	// EncryptedTransfer is used for confidential transfers. Its
	// ciphertext-validity proof is not carried in this struct; the
	// validator takes it as a separate argument (spec §4.H step 4).
	EncryptedTransfer *elgamal.TransferCiphertext
}

func (*TransferPayload) Opcode() Opcode { return OpcodeTransfer }

// ShieldPayload converts a plaintext amount into a fresh encrypted
// balance, proved with a shield-commitment proof (spec §4.H step 5).
type ShieldPayload struct {
	Asset      Asset
	Amount     uint64 // revealed publicly; the proof attests the ciphertext below encodes it
	Ciphertext *elgamal.Ciphertext
}

func (*ShieldPayload) Opcode() Opcode { return OpcodeShield }

// UnshieldPayload converts an encrypted balance back into a plaintext
// amount, revealing the amount and debiting the encrypted balance.
type UnshieldPayload struct {
	Asset  Asset
	Amount uint64
}

func (*UnshieldPayload) Opcode() Opcode { return OpcodeUnshield }

// RegisterNamePayload binds a human-readable name to the sending account.
type RegisterNamePayload struct {
	Name string
}

func (*RegisterNamePayload) Opcode() Opcode { return OpcodeRegisterName }

// EscrowCreatePayload opens an escrow holding Amount of Asset for
// Counterparty, releasable only through a matching escrow lifecycle
// transaction.
type EscrowCreatePayload struct {
	EscrowID     [32]byte
	Asset        Asset
	Amount       uint64
	Counterparty [32]byte
	Deadline     int64 // unix milliseconds
}

func (*EscrowCreatePayload) Opcode() Opcode { return OpcodeEscrowCreate }

// EscrowReleasePayload releases an escrow's funds to its counterparty.
type EscrowReleasePayload struct {
	EscrowID [32]byte
}

func (*EscrowReleasePayload) Opcode() Opcode { return OpcodeEscrowRelease }

// EscrowRefundPayload returns an escrow's funds to its creator, valid only
// after the escrow's deadline has passed.
type EscrowRefundPayload struct {
	EscrowID [32]byte
}

func (*EscrowRefundPayload) Opcode() Opcode { return OpcodeEscrowRefund }

// EscrowChallengePayload disputes a pending release or refund, freezing
// the escrow pending EscrowDisputePayload/EscrowAppealPayload/EscrowVerdictPayload.
type EscrowChallengePayload struct {
	EscrowID [32]byte
	Reason   string
}

func (*EscrowChallengePayload) Opcode() Opcode { return OpcodeEscrowChallenge }

// EscrowDisputePayload escalates a challenged escrow to arbitration.
type EscrowDisputePayload struct {
	EscrowID [32]byte
	Evidence []byte
}

func (*EscrowDisputePayload) Opcode() Opcode { return OpcodeEscrowDispute }

// EscrowAppealPayload appeals an arbitrated escrow verdict.
type EscrowAppealPayload struct {
	EscrowID [32]byte
	Evidence []byte
}

func (*EscrowAppealPayload) Opcode() Opcode { return OpcodeEscrowAppeal }

// EscrowVerdictPayload records an arbitrator's final, binding disposition
// of a disputed escrow.
type EscrowVerdictPayload struct {
	EscrowID              [32]byte
	ReleaseToCounterparty bool
}

func (*EscrowVerdictPayload) Opcode() Opcode { return OpcodeEscrowVerdict }
