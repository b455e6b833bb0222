package externalapi

// Asset identifies what a balance denominates. The zero value is the
// distinguished native-coin asset (spec §3); every other value names a
// token registered elsewhere in the system.
type Asset [32]byte

// NativeAsset is the distinguished zero-value asset identifier for the
// chain's native coin.
var NativeAsset = Asset{}

// IsNative reports whether a is the native-coin asset.
func (a Asset) IsNative() bool { return a == NativeAsset }
