// Package mempool orders pending transactions by account nonce and fee
// rate (spec §4.G). Unlike daglabs-btcd's UTXO-based
// domain/miningmanager/mempool, admission here tracks one nonce window per
// sender rather than spent outpoints, but keeps the teacher's shape: a
// guarded pool struct, a bounded orphan set, and capacity limits that fail
// closed with a dedicated pool-full error.
package mempool

import (
	"sync"

	"github.com/tos-network/tos-sub008/domain/consensus/model/externalapi"
	"github.com/tos-network/tos-sub008/internal/consensuserrors"
	"github.com/tos-network/tos-sub008/internal/logs"
)

var log = logs.Logger(logs.SubsystemTags.MPLX)

type entryHash = externalapi.Hash

// Config bounds the pool's memory footprint (spec §4.G "Mempool size,
// orphaned-transaction set, and per-sender pending counts are all capped").
type Config struct {
	MaximumTransactionCount int
	MaximumOrphanCount      int
	MaximumPerSenderCount   int

	// Network is the active network name, used only to enforce the
	// mainnet guard on skip_block_template_txs_verification below — this
	// is the second of spec §9's two required enforcement points, the
	// first being config/bps.Derive at config load.
	Network string
}

type poolEntry struct {
	tx      *externalapi.Transaction
	hash    externalapi.Hash
	feeRate uint64
}

// Pool is the account-nonce-ordered mempool. One senderCache per sender
// tracks its pending nonce window; feeOrder ranks every admitted
// transaction for block templating; orphans holds transactions whose nonce
// does not yet extend their sender's window.
type Pool struct {
	config Config

	mu       sync.Mutex
	bySender map[externalapi.Hash]*senderCache
	entries  map[externalapi.Hash]*poolEntry
	order    *feeOrder
	orphans  *orphanPool
}

// New constructs an empty Pool.
func New(config Config) *Pool {
	p := &Pool{
		config:   config,
		bySender: make(map[externalapi.Hash]*senderCache),
		entries:  make(map[externalapi.Hash]*poolEntry),
		order:    newFeeOrder(),
	}
	p.orphans = newOrphanPool(p)
	return p
}

func senderKey(sender [32]byte) externalapi.Hash {
	return externalapi.Hash(sender)
}

func (p *Pool) cacheFor(sender externalapi.Hash) *senderCache {
	c, ok := p.bySender[sender]
	if !ok {
		c = newSenderCache()
		p.bySender[sender] = c
	}
	return c
}

// NextNonce returns the nonce sender's next transaction must use, given its
// currently pending transactions (spec §4.G next_nonce()).
func (p *Pool) NextNonce(sender [32]byte, chainNonce externalapi.Nonce) externalapi.Nonce {
	p.mu.Lock()
	defer p.mu.Unlock()
	c, ok := p.bySender[senderKey(sender)]
	if !ok || c.isEmpty() {
		return chainNonce
	}
	return c.nextNonce()
}

// HasNonce reports whether sender already has a pending transaction at
// nonce (spec §4.G has_nonce()).
func (p *Pool) HasNonce(sender [32]byte, nonce externalapi.Nonce) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	c, ok := p.bySender[senderKey(sender)]
	return ok && c.hasNonce(nonce)
}

// AddTransaction admits tx into the pool, or into the orphan set if its
// nonce does not extend the sender's current pending window. hash is the
// transaction's content hash, computed by the caller's wire codec.
func (p *Pool) AddTransaction(tx *externalapi.Transaction, hash externalapi.Hash) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.entries) >= p.config.MaximumTransactionCount {
		return consensuserrors.PoolFull("mempool is at capacity")
	}

	sender := senderKey(tx.Sender)
	cache := p.cacheFor(sender)

	if p.config.MaximumPerSenderCount > 0 && cache.count() >= p.config.MaximumPerSenderCount {
		return consensuserrors.PoolFull("sender has too many pending transactions")
	}

	if cache.hasEntries && tx.Nonce != cache.nextNonce() {
		if tx.Nonce <= cache.max {
			return consensuserrors.DuplicateNonce("nonce already pending or below sender's pending window")
		}
		return p.orphans.add(tx, hash)
	}
	if !cache.hasEntries && tx.Nonce != 0 {
		// Gap against the account's on-chain nonce is checked by the
		// validator before admission; here the pool only knows its own
		// window, which is empty, so any nonzero nonce on a cold sender is
		// treated as a potential orphan pending re-check.
		return p.orphans.add(tx, hash)
	}

	if err := cache.insert(tx.Nonce, &hash); err != nil {
		return err
	}
	p.insertEntry(tx, hash)
	p.promoteOrphans(sender)
	return nil
}

func (p *Pool) insertEntry(tx *externalapi.Transaction, hash externalapi.Hash) {
	rate := feeRatePerKB(tx.Fee(), tx.SerializedSize())
	p.entries[hash] = &poolEntry{tx: tx, hash: hash, feeRate: rate}
	p.order.insert(hash, rate)
}

// promoteOrphans moves any orphan transactions for sender into the pool
// once the sender's window has advanced to cover their nonce.
func (p *Pool) promoteOrphans(sender externalapi.Hash) {
	for {
		tx, hash, ok := p.orphans.takeReady(sender, p.cacheFor(sender).nextNonce())
		if !ok {
			return
		}
		cache := p.cacheFor(sender)
		if err := cache.insert(tx.Nonce, &hash); err != nil {
			log.Warnf("dropping orphan %s on promotion: %s", hash, err)
			continue
		}
		p.insertEntry(tx, hash)
	}
}

// RemoveTransaction evicts hash from the pool, wherever it is held.
func (p *Pool) RemoveTransaction(hash externalapi.Hash) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.removeEntryLocked(hash)
	p.orphans.remove(hash)
}

func (p *Pool) removeEntryLocked(hash externalapi.Hash) {
	entry, ok := p.entries[hash]
	if !ok {
		return
	}
	delete(p.entries, hash)
	p.order.remove(hash)
	sender := senderKey(entry.tx.Sender)
	if cache, ok := p.bySender[sender]; ok && cache.isEmpty() {
		delete(p.bySender, sender)
	}
}

// RemoveBelow advances sender's pending window past chainNonce, evicting
// every now-consumed transaction (spec §4.G remove_below()).
func (p *Pool) RemoveBelow(sender [32]byte, chainNonce externalapi.Nonce) {
	p.mu.Lock()
	defer p.mu.Unlock()
	key := senderKey(sender)
	cache, ok := p.bySender[key]
	if !ok {
		return
	}
	for _, hash := range cache.removeBelow(chainNonce) {
		delete(p.entries, *hash)
		p.order.remove(*hash)
	}
	if cache.isEmpty() {
		delete(p.bySender, key)
	}
}

// CollectForTemplate returns up to maxCount pending transactions in
// non-increasing fee-rate order for block templating (spec §4.G).
// skipVerification requests that the template's transactions bypass
// re-verification when the template is itself proposed as a block; spec
// §9 requires this knob be rejected on mainnet at both config load
// (config/bps.Derive) and here, so a caller that somehow obtained a true
// value on a mainnet pool is refused rather than silently honored.
func (p *Pool) CollectForTemplate(maxCount int, skipVerification bool) ([]*externalapi.Transaction, error) {
	if skipVerification && p.config.Network == "mainnet" {
		return nil, consensuserrors.Unauthorized("skip_block_template_txs_verification is not permitted on mainnet")
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	ordered := p.order.ordered()
	if maxCount >= 0 && len(ordered) > maxCount {
		ordered = ordered[:maxCount]
	}
	out := make([]*externalapi.Transaction, 0, len(ordered))
	for _, hash := range ordered {
		if entry, ok := p.entries[hash]; ok {
			out = append(out, entry.tx)
		}
	}
	return out, nil
}

// Count returns the number of non-orphan transactions currently pooled.
func (p *Pool) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.entries)
}
