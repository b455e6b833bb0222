package model

import "github.com/tos-network/tos-sub008/domain/consensus/model/externalapi"

// PeerID identifies a peer on the transport.
type PeerID string

// Ping carries gossip and sync-progress information (spec §6 "Required
// messages"): up to 16 gossiped peer addresses, the sender's pruned
// topoheight, and its cumulative difficulty.
type Ping struct {
	GossipPeers      []PeerID
	PrunedTopoHeight externalapi.TopoHeight
	CumulativeWork   []byte
}

// BlockAnnounce carries only the announced block's header hash; the full
// block is fetched separately via ObjectRequest/ObjectResponse.
type BlockAnnounce struct {
	BlockHash *externalapi.Hash
}

// ObjectRequest asks a peer for the block identified by Hash.
type ObjectRequest struct {
	Hash *externalapi.Hash
}

// ObjectResponse carries a requested block back to the requester.
type ObjectResponse struct {
	Block *externalapi.Block
}

// MessageTransport represents the length-prefixed, message-typed
// peer-to-peer transport the consensus core consumes (spec §6 "Peer
// transport (consumed)"). The core never frames or discovers peers
// itself; it only sends/receives over this boundary and reports peer
// faults back through it so reputation accounting (`netrep.Tracker`) can
// act on them.
type MessageTransport interface {
	SendPing(to PeerID, ping *Ping) error
	SendBlockAnnounce(to PeerID, announce *BlockAnnounce) error
	SendObjectRequest(to PeerID, request *ObjectRequest) error
	SendObjectResponse(to PeerID, response *ObjectResponse) error

	// Broadcast retransmits an announcement to every connected peer
	// except exclude (spec §6 "Retransmit to all peers except the
	// source").
	Broadcast(exclude PeerID, announce *BlockAnnounce) error

	// ReportFault lets a consumer flag a protocol violation against a
	// peer so the transport's reputation hook can penalize it.
	ReportFault(peer PeerID, reason error)
}
