package mempool

import (
	"fmt"

	"github.com/tos-network/tos-sub008/domain/consensus/model/externalapi"
	"github.com/tos-network/tos-sub008/internal/consensuserrors"
)

// senderCache tracks one sender's pending nonces as a contiguous
// [min, max] window plus the ordered transaction hash for each nonce in
// it (spec §4.G: "an account-cache tracks (min_nonce, max_nonce, ordered
// list of tx hashes by nonce)").
type senderCache struct {
	hasEntries bool
	min, max   externalapi.Nonce
	byNonce    map[externalapi.Nonce]*externalapi.Hash
}

func newSenderCache() *senderCache {
	return &senderCache{byNonce: make(map[externalapi.Nonce]*externalapi.Hash)}
}

// nextNonce returns the nonce the sender's next transaction must use.
func (c *senderCache) nextNonce() externalapi.Nonce {
	if !c.hasEntries {
		return 0
	}
	return c.max + 1
}

// hasNonce reports whether nonce already has a pending transaction.
func (c *senderCache) hasNonce(nonce externalapi.Nonce) bool {
	return c.hasEntries && c.min <= nonce && nonce <= c.max
}

// insert admits a transaction at nonce, enforcing spec §4.G's ordering
// rules: the first insertion sets min=max=nonce; every later insertion
// must extend the window by exactly one.
func (c *senderCache) insert(nonce externalapi.Nonce, txHash *externalapi.Hash) error {
	if !c.hasEntries {
		c.min, c.max = nonce, nonce
		c.byNonce[nonce] = txHash
		c.hasEntries = true
		return nil
	}
	if c.hasNonce(nonce) {
		return consensuserrors.DuplicateNonce(fmt.Sprintf("nonce %d already pending", nonce))
	}
	if nonce != c.max+1 {
		return consensuserrors.NonceGap(fmt.Sprintf("expected nonce %d, got %d", c.max+1, nonce))
	}
	c.max = nonce
	c.byNonce[nonce] = txHash
	return nil
}

// removeBelow drops every pending nonce strictly below chainNonce and
// advances min to chainNonce (spec §4.G "On block application,
// remove_below(chain_nonce) drops the prefix whose nonces are now
// consumed; the cache's min advances to chain_nonce"). It returns the
// removed transaction hashes.
func (c *senderCache) removeBelow(chainNonce externalapi.Nonce) []*externalapi.Hash {
	if !c.hasEntries {
		return nil
	}
	removed := make([]*externalapi.Hash, 0)
	for nonce := c.min; nonce < chainNonce && nonce <= c.max; nonce++ {
		if hash, ok := c.byNonce[nonce]; ok {
			removed = append(removed, hash)
			delete(c.byNonce, nonce)
		}
	}
	if chainNonce > c.max {
		c.hasEntries = false
		c.min, c.max = 0, 0
		return removed
	}
	c.min = chainNonce
	return removed
}

// isEmpty reports whether the cache holds no pending transaction.
func (c *senderCache) isEmpty() bool {
	return !c.hasEntries
}

// count returns the number of pending transactions held for this sender.
func (c *senderCache) count() int {
	return len(c.byNonce)
}
