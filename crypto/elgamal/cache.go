package elgamal

import "sync"

// CiphertextCache wraps the compressed on-disk/wire form of a Ciphertext and
// lazily decompresses it into group elements on first arithmetic use, so
// that reading a versioned balance back out of storage (§4.E) doesn't pay
// for a Ristretto decode unless the value is actually used in a homomorphic
// operation.
type CiphertextCache struct {
	mu       sync.Mutex
	encoded  []byte
	resolved *Ciphertext
}

// NewCiphertextCache wraps an already-encoded ciphertext without decoding
// it yet.
func NewCiphertextCache(encoded []byte) *CiphertextCache {
	return &CiphertextCache{encoded: append([]byte(nil), encoded...)}
}

// NewCiphertextCacheFromValue wraps an already-decompressed ciphertext,
// deferring the encoding until Encoded is called.
func NewCiphertextCacheFromValue(ct *Ciphertext) *CiphertextCache {
	return &CiphertextCache{resolved: ct}
}

// Ciphertext returns the decompressed ciphertext, decoding it on first call.
func (c *CiphertextCache) Ciphertext() (*Ciphertext, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.resolved != nil {
		return c.resolved, nil
	}
	ct, err := DecodeCiphertext(c.encoded)
	if err != nil {
		return nil, err
	}
	c.resolved = ct
	return ct, nil
}

// Encoded returns the compressed form, encoding it on first call if the
// cache was constructed from a decompressed value.
func (c *CiphertextCache) Encoded() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.encoded != nil {
		return append([]byte(nil), c.encoded...)
	}
	c.encoded = c.resolved.Encode()
	return append([]byte(nil), c.encoded...)
}
