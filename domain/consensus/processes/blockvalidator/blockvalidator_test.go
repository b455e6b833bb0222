package blockvalidator

import (
	"testing"

	"github.com/tos-network/tos-sub008/crypto/elgamal"
	"github.com/tos-network/tos-sub008/crypto/vrf"
	"github.com/tos-network/tos-sub008/domain/consensus/datastructures/accountstore"
	"github.com/tos-network/tos-sub008/domain/consensus/datastructures/blockrelationstore"
	"github.com/tos-network/tos-sub008/domain/consensus/datastructures/ghostdagdatastore"
	"github.com/tos-network/tos-sub008/domain/consensus/model/externalapi"
	"github.com/tos-network/tos-sub008/domain/consensus/processes/dagtopologymanager"
	"github.com/tos-network/tos-sub008/domain/consensus/processes/ghostdagmanager"
	"github.com/tos-network/tos-sub008/domain/consensus/processes/reachabilitymanager"
	"github.com/tos-network/tos-sub008/domain/consensus/processes/transactionvalidator"
)

func hashFromByte(b byte) *externalapi.Hash {
	var h externalapi.Hash
	h[0] = b
	return &h
}

func newTestValidator(t *testing.T) (*Validator, *dagtopologymanager.Manager, *blockrelationstore.Store, *reachabilitymanager.Manager) {
	t.Helper()
	relations := blockrelationstore.New()
	reachability := reachabilitymanager.New()
	topology := dagtopologymanager.New(relations, reachability)
	dataStore, err := ghostdagdatastore.New(100)
	if err != nil {
		t.Fatalf("ghostdagdatastore.New: %s", err)
	}
	ghostdag := ghostdagmanager.New(10, 180, relations, topology, reachability, dataStore)
	accounts := accountstore.New()
	txvalidate := transactionvalidator.New(accounts, 100, 5000)
	v := New(1, 5000, topology, ghostdag, txvalidate, accounts)
	return v, topology, relations, reachability
}

func TestValidateParentsRejectsReachablePair(t *testing.T) {
	v, _, relations, reachability := newTestValidator(t)
	genesis := hashFromByte(1)
	reachability.AddGenesis(genesis)
	relations.Stage(genesis, &blockrelationstore.BlockRelations{})
	relations.Commit()

	a := hashFromByte(2)
	relations.Stage(a, &blockrelationstore.BlockRelations{Parents: []*externalapi.Hash{genesis}})
	relations.Commit()
	if err := reachability.AddBlock(a, genesis, nil); err != nil {
		t.Fatal(err)
	}

	header := &externalapi.BlockHeader{ParentTips: []*externalapi.Hash{genesis, a}}
	if err := v.ValidateParents(header); err == nil {
		t.Fatal("expected reachable parent pair to be rejected")
	}
}

func TestValidateParentsAcceptsSiblings(t *testing.T) {
	v, _, relations, reachability := newTestValidator(t)
	genesis := hashFromByte(1)
	reachability.AddGenesis(genesis)
	relations.Stage(genesis, &blockrelationstore.BlockRelations{})
	relations.Commit()

	a := hashFromByte(2)
	relations.Stage(a, &blockrelationstore.BlockRelations{Parents: []*externalapi.Hash{genesis}})
	relations.Commit()
	if err := reachability.AddBlock(a, genesis, nil); err != nil {
		t.Fatal(err)
	}
	b := hashFromByte(3)
	relations.Stage(b, &blockrelationstore.BlockRelations{Parents: []*externalapi.Hash{genesis}})
	relations.Commit()
	if err := reachability.AddBlock(b, genesis, nil); err != nil {
		t.Fatal(err)
	}

	header := &externalapi.BlockHeader{ParentTips: []*externalapi.Hash{a, b}}
	if err := v.ValidateParents(header); err != nil {
		t.Fatalf("expected pairwise non-reachable siblings to be accepted: %s", err)
	}
}

func TestValidateParentsRejectsEmpty(t *testing.T) {
	v, _, _, _ := newTestValidator(t)
	header := &externalapi.BlockHeader{}
	if err := v.ValidateParents(header); err == nil {
		t.Fatal("expected a block with no parents to be rejected")
	}
}

func TestValidateTimestamp(t *testing.T) {
	v, _, _, _ := newTestValidator(t)

	header := &externalapi.BlockHeader{Timestamp: 1000}
	if err := v.ValidateTimestamp(header, 1000, 1000); err != nil {
		t.Fatalf("timestamp equal to parent's should be admissible: %s", err)
	}
	if err := v.ValidateTimestamp(header, 1001, 1000); err == nil {
		t.Fatal("timestamp strictly less than parent's should be rejected")
	}

	header.Timestamp = 20000
	if err := v.ValidateTimestamp(header, 0, 1000); err == nil {
		t.Fatal("timestamp too far in the future should be rejected")
	}
}

func TestValidateVRFBindingRoundTrip(t *testing.T) {
	v, _, _, _ := newTestValidator(t)

	minerPriv, err := elgamal.GenerateKeyDefault()
	if err != nil {
		t.Fatalf("GenerateKeyDefault: %s", err)
	}
	vrfPriv, err := elgamal.GenerateKeyDefault()
	if err != nil {
		t.Fatalf("GenerateKeyDefault: %s", err)
	}

	blockPreHash := []byte("block-pre-hash")
	var minerIdentity [32]byte
	copy(minerIdentity[:], minerPriv.PublicKey().Encode())

	_, proof, err := vrf.ProveDefault(vrfPriv, blockPreHash, minerIdentity[:])
	if err != nil {
		t.Fatalf("ProveDefault: %s", err)
	}
	binding, err := vrf.SignDefault(minerPriv, v.chainID, vrfPriv.PublicKey(), blockPreHash)
	if err != nil {
		t.Fatalf("SignDefault: %s", err)
	}

	header := &externalapi.BlockHeader{MinerIdentity: minerIdentity}
	copy(header.VRF.PublicKey[:], vrfPriv.PublicKey().Encode())
	copy(header.VRF.Proof[:], proof.Encode())
	copy(header.VRF.BindingSignature[:], binding.Encode())

	if err := v.ValidateVRFBinding(header, blockPreHash); err != nil {
		t.Fatalf("ValidateVRFBinding: %s", err)
	}

	if err := v.ValidateVRFBinding(header, []byte("different-pre-hash")); err == nil {
		t.Fatal("expected verification to fail against a different block pre-hash")
	}
}
