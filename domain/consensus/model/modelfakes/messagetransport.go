package modelfakes

import (
	"sync"

	"github.com/tos-network/tos-sub008/domain/consensus/model"
)

// sentMessage records one outbound call for assertions in tests that wire
// a MessageTransport fake.
type sentMessage struct {
	kind string
	to   model.PeerID
	body interface{}
}

// MessageTransport is an in-memory model.MessageTransport that records
// every send instead of putting anything on the wire, and tracks reported
// faults per peer so a caller can assert on reputation-relevant behavior
// without a real netrep.Tracker wired in.
type MessageTransport struct {
	mu     sync.Mutex
	sent   []sentMessage
	faults map[model.PeerID][]error
	peers  []model.PeerID
}

var _ model.MessageTransport = (*MessageTransport)(nil)

// NewMessageTransport constructs an in-memory MessageTransport with the
// given connected peer set.
func NewMessageTransport(peers ...model.PeerID) *MessageTransport {
	return &MessageTransport{
		faults: make(map[model.PeerID][]error),
		peers:  peers,
	}
}

func (t *MessageTransport) record(kind string, to model.PeerID, body interface{}) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sent = append(t.sent, sentMessage{kind: kind, to: to, body: body})
}

// SendPing records a Ping sent to to.
func (t *MessageTransport) SendPing(to model.PeerID, ping *model.Ping) error {
	t.record("ping", to, ping)
	return nil
}

// SendBlockAnnounce records a BlockAnnounce sent to to.
func (t *MessageTransport) SendBlockAnnounce(to model.PeerID, announce *model.BlockAnnounce) error {
	t.record("block_announce", to, announce)
	return nil
}

// SendObjectRequest records an ObjectRequest sent to to.
func (t *MessageTransport) SendObjectRequest(to model.PeerID, request *model.ObjectRequest) error {
	t.record("object_request", to, request)
	return nil
}

// SendObjectResponse records an ObjectResponse sent to to.
func (t *MessageTransport) SendObjectResponse(to model.PeerID, response *model.ObjectResponse) error {
	t.record("object_response", to, response)
	return nil
}

// Broadcast records a BlockAnnounce sent to every connected peer except
// exclude.
func (t *MessageTransport) Broadcast(exclude model.PeerID, announce *model.BlockAnnounce) error {
	for _, peer := range t.peers {
		if peer == exclude {
			continue
		}
		t.record("block_announce", peer, announce)
	}
	return nil
}

// ReportFault records reason against peer for later inspection.
func (t *MessageTransport) ReportFault(peer model.PeerID, reason error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.faults[peer] = append(t.faults[peer], reason)
}

// Sent returns the number of messages recorded of the given kind sent to
// peer ("ping", "block_announce", "object_request", "object_response").
func (t *MessageTransport) Sent(kind string, peer model.PeerID) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	count := 0
	for _, m := range t.sent {
		if m.kind == kind && m.to == peer {
			count++
		}
	}
	return count
}

// Faults returns the faults reported against peer, in report order.
func (t *MessageTransport) Faults(peer model.PeerID) []error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]error(nil), t.faults[peer]...)
}
