// Package consensuserrors defines the error taxonomy shared by every
// consensus-core component, grouped by what the caller is expected to do
// about them (retry, discard, ban the peer, or halt).
package consensuserrors

import "github.com/pkg/errors"

// Kind groups errors by caller-visible handling policy.
type Kind int

const (
	// KindUser marks input errors recoverable at the source: the caller
	// made a mistake, nothing is retried automatically.
	KindUser Kind = iota
	// KindTransport marks errors eligible for bounded, backed-off retry.
	KindTransport
	// KindProtocol marks peer-fault violations: log, penalize, discard.
	KindProtocol
	// KindResource marks backpressure/capacity errors.
	KindResource
	// KindFatal marks corruption: the caller must stop and not proceed.
	KindFatal
)

func (k Kind) String() string {
	switch k {
	case KindUser:
		return "user"
	case KindTransport:
		return "transport"
	case KindProtocol:
		return "protocol"
	case KindResource:
		return "resource"
	case KindFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// ConsensusError is the concrete error type returned across the consensus
// core. Code is a stable machine-readable identifier (spec §7's error
// names); Kind drives retry/ban/halt policy; the wrapped cause, if any,
// carries the underlying detail via github.com/pkg/errors.
type ConsensusError struct {
	Kind    Kind
	Code    string
	Message string
	cause   error
}

func (e *ConsensusError) Error() string {
	if e.cause != nil {
		return e.Code + ": " + e.Message + ": " + e.cause.Error()
	}
	return e.Code + ": " + e.Message
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As.
func (e *ConsensusError) Unwrap() error { return e.cause }

// New constructs a ConsensusError with no wrapped cause.
func New(kind Kind, code, message string) *ConsensusError {
	return &ConsensusError{Kind: kind, Code: code, Message: message}
}

// Wrap constructs a ConsensusError wrapping cause via pkg/errors, preserving
// its stack trace the way the teacher wraps storage and validation failures.
func Wrap(kind Kind, code, message string, cause error) *ConsensusError {
	return &ConsensusError{Kind: kind, Code: code, Message: message, cause: errors.Wrap(cause, message)}
}

// IsRetryable reports whether a transport error should be retried, applying
// spec §7's non-retryable substrings policy to the error's own message.
func IsRetryable(err error) bool {
	var ce *ConsensusError
	if !errors.As(err, &ce) {
		return false
	}
	if ce.Kind != KindTransport {
		return false
	}
	for _, substr := range nonRetryableSubstrings {
		if containsFold(ce.Message, substr) {
			return false
		}
	}
	return true
}

var nonRetryableSubstrings = []string{"invalid", "malformed", "unauthorized", "forbidden"}

func containsFold(s, substr string) bool {
	sl, subl := []rune(toLower(s)), []rune(toLower(substr))
	if len(subl) == 0 || len(subl) > len(sl) {
		return len(subl) == 0
	}
	for i := 0; i+len(subl) <= len(sl); i++ {
		match := true
		for j := range subl {
			if sl[i+j] != subl[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func toLower(s string) string {
	out := []rune(s)
	for i, r := range out {
		if r >= 'A' && r <= 'Z' {
			out[i] = r + ('a' - 'A')
		}
	}
	return string(out)
}

// Sentinel constructors, one per spec §7 error name. Each call site wraps
// these with Wrap when a lower-level cause is available.

// User/input errors.
func InvalidArgument(msg string) *ConsensusError   { return New(KindUser, "InvalidArgument", msg) }
func MalformedBytes(msg string) *ConsensusError    { return New(KindUser, "MalformedBytes", msg) }
func UnknownAccount(msg string) *ConsensusError    { return New(KindUser, "UnknownAccount", msg) }
func NonceGap(msg string) *ConsensusError          { return New(KindUser, "NonceGap", msg) }
func DuplicateNonce(msg string) *ConsensusError    { return New(KindUser, "DuplicateNonce", msg) }
func InsufficientBalance(msg string) *ConsensusError {
	return New(KindUser, "InsufficientBalance", msg)
}
func ProofVerification(msg string) *ConsensusError { return New(KindUser, "ProofVerification", msg) }
func Unauthorized(msg string) *ConsensusError      { return New(KindUser, "Unauthorized", msg) }

// Transport errors.
func Timeout(msg string) *ConsensusError { return New(KindTransport, "Timeout", msg) }
func Connect(msg string) *ConsensusError { return New(KindTransport, "Connect", msg) }
func RPCError(msg string) *ConsensusError { return New(KindTransport, "RpcError", msg) }

// Protocol violations.
func InvalidBlock(msg string) *ConsensusError       { return New(KindProtocol, "InvalidBlock", msg) }
func InvalidTransaction(msg string) *ConsensusError { return New(KindProtocol, "InvalidTransaction", msg) }
func PastConeOverlap(msg string) *ConsensusError    { return New(KindProtocol, "PastConeOverlap", msg) }
func MergesetTooLarge(msg string) *ConsensusError   { return New(KindProtocol, "MergesetTooLarge", msg) }
func VrfVerification(msg string) *ConsensusError    { return New(KindProtocol, "VrfVerification", msg) }
func TimestampOutOfBounds(msg string) *ConsensusError {
	return New(KindProtocol, "TimestampOutOfBounds", msg)
}

// Resource errors.
func PoolFull(msg string) *ConsensusError { return New(KindResource, "PoolFull", msg) }
func ObjectRequestConcurrencyExceeded(msg string) *ConsensusError {
	return New(KindResource, "ObjectRequestConcurrencyExceeded", msg)
}

// Corruption/fatal errors.
func CorruptedData(msg string) *ConsensusError    { return New(KindFatal, "CorruptedData", msg) }
func StorageFailure(msg string) *ConsensusError   { return New(KindFatal, "StorageFailure", msg) }
func InvariantViolated(msg string) *ConsensusError { return New(KindFatal, "InvariantViolated", msg) }
