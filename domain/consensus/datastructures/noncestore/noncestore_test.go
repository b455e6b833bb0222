package noncestore

import (
	"testing"

	"github.com/tos-network/tos-sub008/domain/consensus/model/externalapi"
)

func account(b byte) externalapi.Hash {
	var h externalapi.Hash
	h[0] = b
	return h
}

func TestWriteAtAndReadAt(t *testing.T) {
	s := New()
	acc := account(1)

	s.WriteAt(acc, 10, 1)
	s.WriteAt(acc, 20, 2)

	nonce, ok := s.ReadAt(acc, 15)
	if !ok || nonce != 1 {
		t.Fatalf("ReadAt(acc, 15) = (%d, %v), want (1, true)", nonce, ok)
	}
	nonce, ok = s.ReadAt(acc, 20)
	if !ok || nonce != 2 {
		t.Fatalf("ReadAt(acc, 20) = (%d, %v), want (2, true)", nonce, ok)
	}
	if _, ok := s.ReadAt(acc, 5); ok {
		t.Fatal("ReadAt before the earliest version should report not found")
	}
}

func TestDeleteAtRollsBackToPriorVersion(t *testing.T) {
	s := New()
	acc := account(1)

	s.WriteAt(acc, 10, 1)
	s.WriteAt(acc, 20, 2)
	s.WriteAt(acc, 30, 3)

	s.DeleteAt(acc, 30)
	nonce, ok := s.ReadAt(acc, 30)
	if !ok || nonce != 2 {
		t.Fatalf("ReadAt(acc, 30) after rollback = (%d, %v), want (2, true)", nonce, ok)
	}
}

func TestDeleteAboveRollsBackEveryAccount(t *testing.T) {
	s := New()
	a := account(1)
	b := account(2)

	s.WriteAt(a, 10, 1)
	s.WriteAt(a, 20, 2)
	s.WriteAt(b, 10, 5)
	s.WriteAt(b, 20, 6)

	s.DeleteAbove(15)

	nonce, ok := s.ReadAt(a, 20)
	if !ok || nonce != 1 {
		t.Fatalf("account a after DeleteAbove(15) = (%d, %v), want (1, true)", nonce, ok)
	}
	nonce, ok = s.ReadAt(b, 20)
	if !ok || nonce != 5 {
		t.Fatalf("account b after DeleteAbove(15) = (%d, %v), want (5, true)", nonce, ok)
	}
}

func TestDeleteBelowKeepLastPrunesHistory(t *testing.T) {
	s := New()
	acc := account(1)

	s.WriteAt(acc, 10, 1)
	s.WriteAt(acc, 20, 2)
	s.WriteAt(acc, 30, 3)

	s.DeleteBelowKeepLast(25)

	if _, ok := s.ReadAt(acc, 10); ok {
		t.Error("version at 10 should have been pruned")
	}
	nonce, ok := s.ReadAt(acc, 30)
	if !ok || nonce != 3 {
		t.Errorf("ReadAt(acc, 30) after prune = (%d, %v), want (3, true)", nonce, ok)
	}
}
