package mempool

import (
	"github.com/tos-network/tos-sub008/domain/consensus/model/externalapi"
	"github.com/tos-network/tos-sub008/internal/consensuserrors"
)

type orphanEntry struct {
	tx   *externalapi.Transaction
	hash externalapi.Hash
}

// orphanPool holds transactions whose nonce doesn't yet extend their
// sender's pending window, grounded on daglabs-btcd's orphan_pool.go shape
// (a capped map plus a by-key index), adapted from previous-outpoint
// indexing to per-sender nonce indexing since this mempool has no UTXOs.
type orphanPool struct {
	pool       *Pool
	allOrphans map[externalapi.Hash]*orphanEntry
	bySender   map[externalapi.Hash]map[externalapi.Nonce]externalapi.Hash
	insertSeq  []externalapi.Hash
}

func newOrphanPool(p *Pool) *orphanPool {
	return &orphanPool{
		pool:       p,
		allOrphans: make(map[externalapi.Hash]*orphanEntry),
		bySender:   make(map[externalapi.Hash]map[externalapi.Nonce]externalapi.Hash),
	}
}

// add admits tx as an orphan, evicting the oldest orphan if the pool is at
// capacity (spec §4.G caps; daglabs-btcd's maybeAddOrphan eviction loop).
func (op *orphanPool) add(tx *externalapi.Transaction, hash externalapi.Hash) error {
	if op.pool.config.MaximumOrphanCount <= 0 {
		return consensuserrors.PoolFull("orphan pool disabled")
	}
	if _, exists := op.allOrphans[hash]; exists {
		return nil
	}
	for len(op.allOrphans) >= op.pool.config.MaximumOrphanCount {
		if !op.evictOldest() {
			return consensuserrors.PoolFull("orphan pool is at capacity")
		}
	}

	sender := senderKey(tx.Sender)
	op.allOrphans[hash] = &orphanEntry{tx: tx, hash: hash}
	byNonce, ok := op.bySender[sender]
	if !ok {
		byNonce = make(map[externalapi.Nonce]externalapi.Hash)
		op.bySender[sender] = byNonce
	}
	byNonce[tx.Nonce] = hash
	op.insertSeq = append(op.insertSeq, hash)
	return nil
}

func (op *orphanPool) evictOldest() bool {
	for len(op.insertSeq) > 0 {
		hash := op.insertSeq[0]
		op.insertSeq = op.insertSeq[1:]
		if _, ok := op.allOrphans[hash]; ok {
			op.remove(hash)
			return true
		}
	}
	return false
}

// remove drops hash from the orphan pool, a no-op if it isn't present.
func (op *orphanPool) remove(hash externalapi.Hash) {
	entry, ok := op.allOrphans[hash]
	if !ok {
		return
	}
	delete(op.allOrphans, hash)
	sender := senderKey(entry.tx.Sender)
	if byNonce, ok := op.bySender[sender]; ok {
		delete(byNonce, entry.tx.Nonce)
		if len(byNonce) == 0 {
			delete(op.bySender, sender)
		}
	}
}

// takeReady removes and returns the orphan for sender at exactly
// wantNonce, if one is pending.
func (op *orphanPool) takeReady(sender externalapi.Hash, wantNonce externalapi.Nonce) (*externalapi.Transaction, externalapi.Hash, bool) {
	byNonce, ok := op.bySender[sender]
	if !ok {
		return nil, externalapi.Hash{}, false
	}
	hash, ok := byNonce[wantNonce]
	if !ok {
		return nil, externalapi.Hash{}, false
	}
	entry := op.allOrphans[hash]
	op.remove(hash)
	return entry.tx, hash, true
}

// count returns the number of pending orphan transactions.
func (op *orphanPool) count() int {
	return len(op.allOrphans)
}
