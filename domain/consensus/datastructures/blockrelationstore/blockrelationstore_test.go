package blockrelationstore

import (
	"testing"

	"github.com/tos-network/tos-sub008/domain/consensus/model/externalapi"
)

func hashFromByte(b byte) *externalapi.Hash {
	var h externalapi.Hash
	h[0] = b
	return &h
}

func TestStageCommitRoundTrip(t *testing.T) {
	s := New()
	genesis := hashFromByte(1)
	s.Stage(genesis, &BlockRelations{})

	if _, ok := s.Get(genesis); !ok {
		t.Fatal("staged relations should be visible to Get before Commit")
	}
	if !s.IsStaged() {
		t.Fatal("IsStaged() should report true while a relation is pending")
	}

	s.Commit()
	if s.IsStaged() {
		t.Fatal("IsStaged() should report false after Commit")
	}
	if _, ok := s.Get(genesis); !ok {
		t.Fatal("committed relations should remain visible to Get")
	}
}

func TestDiscardDropsStagedRelations(t *testing.T) {
	s := New()
	a := hashFromByte(2)
	s.Stage(a, &BlockRelations{})
	s.Discard()

	if _, ok := s.Get(a); ok {
		t.Fatal("discarded relations should not be visible")
	}
}

func TestAppendChild(t *testing.T) {
	s := New()
	parent := hashFromByte(1)
	s.Stage(parent, &BlockRelations{})
	s.Commit()

	child := hashFromByte(2)
	s.AppendChild(parent, child)

	relations, ok := s.Get(parent)
	if !ok {
		t.Fatal("expected parent's relations to exist")
	}
	if len(relations.Children) != 1 || !relations.Children[0].Equal(child) {
		t.Fatalf("Children = %v, want [%s]", relations.Children, child)
	}
}

func TestGetReturnsIndependentClone(t *testing.T) {
	s := New()
	hash := hashFromByte(1)
	s.Stage(hash, &BlockRelations{Parents: []*externalapi.Hash{hashFromByte(2)}})
	s.Commit()

	relations, ok := s.Get(hash)
	if !ok {
		t.Fatal("expected relations to exist")
	}
	relations.Parents[0][0] = 99

	relationsAgain, _ := s.Get(hash)
	if relationsAgain.Parents[0][0] == 99 {
		t.Fatal("mutating a returned BlockRelations should not affect the store's copy")
	}
}
