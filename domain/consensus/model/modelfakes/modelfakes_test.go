package modelfakes

import (
	"math/big"
	"testing"

	"github.com/tos-network/tos-sub008/domain/consensus/model"
	"github.com/tos-network/tos-sub008/domain/consensus/model/externalapi"
)

func hashFromByte(b byte) *externalapi.Hash {
	var h externalapi.Hash
	h[0] = b
	return &h
}

func TestDagStoreStageCommitDiscard(t *testing.T) {
	s := NewDagStore()
	genesis := hashFromByte(1)
	child := hashFromByte(2)

	s.StageRelations(child, []*externalapi.Hash{genesis})
	data := externalapi.NewGhostdagData(1, big.NewInt(5), genesis, nil, nil, nil)
	s.StageGhostdagData(child, data)

	if _, _, found := s.Relations(genesis); !found {
		t.Fatal("staged relations should be visible before Commit")
	}

	if err := s.Commit(); err != nil {
		t.Fatalf("Commit: %s", err)
	}

	parents, _, found := s.Relations(child)
	if !found || len(parents) != 1 || !parents[0].Equal(genesis) {
		t.Fatalf("Relations(child) after commit = %v, %v, want [genesis]", parents, found)
	}
	_, children, found := s.Relations(genesis)
	if !found || len(children) != 1 || !children[0].Equal(child) {
		t.Fatalf("Relations(genesis) after commit children = %v, %v, want [child]", children, found)
	}

	got, found := s.GhostdagData(child)
	if !found || got.BlueScore != 1 {
		t.Fatalf("GhostdagData(child) = %v, %v, want BlueScore=1", got, found)
	}
}

func TestDagStoreDiscardDropsStaged(t *testing.T) {
	s := NewDagStore()
	hash := hashFromByte(1)
	s.StageRelations(hash, nil)
	s.Discard()

	if _, _, found := s.Relations(hash); found {
		t.Fatal("discarded relations should not be visible")
	}
}

func TestVersionedStoreReadWriteDelete(t *testing.T) {
	s := NewVersionedStore()
	var account externalapi.Hash
	account[0] = 1

	s.WriteAt(account, 10, 100)
	s.WriteAt(account, 20, 200)

	value, ok := s.ReadAt(account, 15)
	if !ok || value != 100 {
		t.Fatalf("ReadAt(account, 15) = (%d, %v), want (100, true)", value, ok)
	}

	s.DeleteAt(account, 20)
	value, ok = s.ReadAt(account, 20)
	if !ok || value != 100 {
		t.Fatalf("ReadAt(account, 20) after delete = (%d, %v), want (100, true)", value, ok)
	}
}

func TestVersionedStoreDeleteBelowKeepLast(t *testing.T) {
	s := NewVersionedStore()
	var account externalapi.Hash
	account[0] = 1

	s.WriteAt(account, 10, 100)
	s.WriteAt(account, 20, 200)
	s.WriteAt(account, 30, 300)

	s.DeleteBelowKeepLast(25)

	if _, ok := s.ReadAt(account, 15); ok {
		t.Error("version at 10 should have been pruned")
	}
	value, ok := s.ReadAt(account, 30)
	if !ok || value != 300 {
		t.Errorf("ReadAt(account, 30) after prune = (%d, %v), want (300, true)", value, ok)
	}
}

func TestMessageTransportBroadcastExcludesSource(t *testing.T) {
	tr := NewMessageTransport("a", "b", "c")
	announce := &model.BlockAnnounce{BlockHash: hashFromByte(1)}

	if err := tr.Broadcast("a", announce); err != nil {
		t.Fatalf("Broadcast: %s", err)
	}

	if tr.Sent("block_announce", "a") != 0 {
		t.Fatal("broadcast should not resend to the excluded source")
	}
	if tr.Sent("block_announce", "b") != 1 || tr.Sent("block_announce", "c") != 1 {
		t.Fatal("broadcast should reach every other connected peer")
	}
}

func TestMessageTransportReportFault(t *testing.T) {
	tr := NewMessageTransport("a")
	tr.ReportFault("a", errInvalidBlock)

	faults := tr.Faults("a")
	if len(faults) != 1 || faults[0] != errInvalidBlock {
		t.Fatalf("Faults(a) = %v, want [errInvalidBlock]", faults)
	}
}

var errInvalidBlock = fakeError("invalid block")

type fakeError string

func (e fakeError) Error() string { return string(e) }
