package accountstore

import (
	"testing"

	"github.com/tos-network/tos-sub008/domain/consensus/model/externalapi"
)

func TestApplyDebitAdvancesNonceAndBalance(t *testing.T) {
	s := New()
	var account externalapi.Hash
	account[0] = 1
	var asset externalapi.Asset
	asset[0] = 9

	s.WriteBalanceAt(account, asset, 0, 1000)

	if err := s.ApplyDebit(account, asset, 0, 1, 0, 300); err != nil {
		t.Fatalf("ApplyDebit: %s", err)
	}

	balance, ok := s.ReadBalanceAt(account, asset, 1)
	if !ok || balance != 700 {
		t.Fatalf("balance after debit = (%d, %v), want (700, true)", balance, ok)
	}
	nonce, ok := s.ReadNonceAt(account, 1)
	if !ok || nonce != 1 {
		t.Fatalf("nonce after debit = (%d, %v), want (1, true)", nonce, ok)
	}
}

func TestApplyDebitRejectsWrongNonce(t *testing.T) {
	s := New()
	var account externalapi.Hash
	account[0] = 1
	var asset externalapi.Asset
	asset[0] = 9
	s.WriteBalanceAt(account, asset, 0, 1000)

	if err := s.ApplyDebit(account, asset, 0, 1, 5, 100); err == nil {
		t.Fatal("expected ApplyDebit to reject a mismatched expected nonce")
	}
}

func TestApplyDebitRejectsInsufficientBalance(t *testing.T) {
	s := New()
	var account externalapi.Hash
	account[0] = 1
	var asset externalapi.Asset
	asset[0] = 9
	s.WriteBalanceAt(account, asset, 0, 50)

	if err := s.ApplyDebit(account, asset, 0, 1, 0, 100); err == nil {
		t.Fatal("expected ApplyDebit to reject a debit exceeding the balance")
	}
}

func TestApplyCreditIncreasesBalance(t *testing.T) {
	s := New()
	var account externalapi.Hash
	account[0] = 2
	var asset externalapi.Asset
	asset[0] = 9
	s.WriteBalanceAt(account, asset, 0, 100)

	s.ApplyCredit(account, asset, 0, 1, 50)

	balance, ok := s.ReadBalanceAt(account, asset, 1)
	if !ok || balance != 150 {
		t.Fatalf("balance after credit = (%d, %v), want (150, true)", balance, ok)
	}
}
