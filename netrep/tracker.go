// Package netrep tracks per-peer reputation for the message-passing
// transport the consensus core consumes (spec §6 "Peer reputation").
// Retrieval pack coverage for the transport layer itself is thin
// (daglabs-btcd's addrmgr/peer packages are present only as filtered
// stubs), so this package follows this module's own mutex-guarded-map
// idiom for small bounded in-memory state (see accountstore,
// versionedstore) rather than borrowing transport-specific shapes.
package netrep

import "sync"

const (
	// failToBanEvery is how many accumulated failures trigger a temp ban
	// (one every N failures, not just the Nth).
	failToBanEvery = 3
	// tempBanSeconds is how long a temp ban imposed by failToBanEvery lasts.
	tempBanSeconds = 60
	// disconnectThreshold is the fail-count at which a peer is disconnected.
	disconnectThreshold = 50
	// resetAfterSeconds is how long a peer must be inactive before its
	// fail-count resets to zero.
	resetAfterSeconds = 1800
	// backoffUnitSeconds scales reconnect backoff: fail_count * backoffUnitSeconds.
	backoffUnitSeconds = 900
)

// PeerID identifies a peer for reputation tracking. The transport adapter
// supplies whatever stable identifier it uses (address, node id).
type PeerID string

type peerState struct {
	failCount      uint8
	whitelisted    bool
	lastActivity   int64
	tempBanUntil   int64
	tempBanPresent bool
	disconnected   bool
}

// Tracker records fail-counts, temp bans, and disconnects for a population
// of peers, keyed by PeerID. All timestamps are caller-supplied unix
// seconds so the tracker itself stays free of wall-clock reads.
type Tracker struct {
	mu    sync.Mutex
	peers map[PeerID]*peerState
}

// New constructs an empty Tracker.
func New() *Tracker {
	return &Tracker{peers: make(map[PeerID]*peerState)}
}

func (t *Tracker) stateFor(id PeerID) *peerState {
	s, ok := t.peers[id]
	if !ok {
		s = &peerState{}
		t.peers[id] = s
	}
	return s
}

// Whitelist marks a peer as exempt from fail-count accounting.
func (t *Tracker) Whitelist(id PeerID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stateFor(id).whitelisted = true
}

// RecordSuccess resets a peer's inactivity clock without affecting its
// fail-count; spec §6's reset-on-inactivity is driven by RecordFailure /
// IsFailCountStale observing elapsed time since the last activity instead.
func (t *Tracker) RecordSuccess(id PeerID, now int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stateFor(id).lastActivity = now
}

// RecordFailure increments id's fail-count (saturating at 255), applies a
// temp ban every failToBanEvery failures, and flags disconnect once
// disconnectThreshold is reached. Whitelisted peers are exempt and this is
// a no-op for them. If more than resetAfterSeconds have elapsed since the
// peer's last recorded activity, the fail-count resets to zero before the
// new failure is counted.
func (t *Tracker) RecordFailure(id PeerID, now int64) (disconnect bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.stateFor(id)
	if s.whitelisted {
		return false
	}

	if s.lastActivity != 0 && now-s.lastActivity >= resetAfterSeconds {
		s.failCount = 0
		s.tempBanPresent = false
	}
	s.lastActivity = now

	if s.failCount < 255 {
		s.failCount++
	}
	if s.failCount%failToBanEvery == 0 {
		s.tempBanPresent = true
		s.tempBanUntil = now + tempBanSeconds
	}
	if s.failCount >= disconnectThreshold {
		s.disconnected = true
	}
	return s.disconnected
}

// IsTempBanned reports whether id is under an active temp ban at time now.
func (t *Tracker) IsTempBanned(id PeerID, now int64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.peers[id]
	if !ok || !s.tempBanPresent {
		return false
	}
	return now < s.tempBanUntil
}

// IsDisconnected reports whether id has crossed disconnectThreshold.
func (t *Tracker) IsDisconnected(id PeerID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.peers[id]
	return ok && s.disconnected
}

// ReconnectBackoffSeconds returns the backoff interval before id may be
// retried, per spec §6's fail_count * 900s rule.
func (t *Tracker) ReconnectBackoffSeconds(id PeerID) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.peers[id]
	if !ok {
		return 0
	}
	return int64(s.failCount) * backoffUnitSeconds
}

// FailCount returns id's current fail-count.
func (t *Tracker) FailCount(id PeerID) uint8 {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.peers[id]
	if !ok {
		return 0
	}
	return s.failCount
}
