package elgamal

import "github.com/tos-network/tos-sub008/internal/consensuserrors"

// Sentinel errors for the primitive's documented failure modes (spec §4.B).

// ErrInvalidKey is returned when a private scalar is zero or weak (s < 2^32).
func ErrInvalidKey(msg string) error {
	return consensuserrors.InvalidArgument("InvalidKey: " + msg)
}

// ErrDecompression is returned when a compressed point is not a valid
// Ristretto encoding.
func ErrDecompression(msg string) error {
	return consensuserrors.MalformedBytes("Decompression: " + msg)
}

// ErrOverflow is returned by Decoder.Decode when a point does not decode to
// an amount in [0, MaximumSupply]. The homomorphic Add and Subtract perform
// no range check and never return it.
func ErrOverflow(msg string) error {
	return consensuserrors.InvalidArgument("Overflow: " + msg)
}
