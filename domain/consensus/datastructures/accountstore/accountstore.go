// Package accountstore instantiates versionedstore for per-(account, asset)
// balance history, in both its plaintext (TOS) and confidential (UNO) forms
// (spec §3, §4.E), and exposes the single compare-and-swap primitive spec
// §4.H step 6 requires for applying a transaction's nonce bump and balance
// debit as one atomic operation.
package accountstore

import (
	"fmt"
	"sync"

	"github.com/tos-network/tos-sub008/domain/consensus/datastructures/noncestore"
	"github.com/tos-network/tos-sub008/domain/consensus/datastructures/versionedstore"
	"github.com/tos-network/tos-sub008/domain/consensus/model/externalapi"
)

// Key addresses one (account, asset) balance column.
type Key struct {
	Account externalapi.Hash
	Asset   externalapi.Asset
}

// Store holds both the plaintext and encrypted balance chains, plus the
// nonce chain, so that ApplyDebit can enforce spec §4.H step 6's atomicity
// requirement across nonce and balance together: "the store MUST expose a
// single compare-and-swap primitive per (account, asset, topoheight)... A
// non-atomic check-then-write here admits double-spend."
type Store struct {
	// mu serialises ApplyDebit and ApplyCredit so each read-check-write
	// sequence runs without another one interleaving.
	mu sync.Mutex

	plain     *versionedstore.Store[Key, externalapi.VersionedBalance]
	encrypted *versionedstore.Store[Key, externalapi.VersionedEncryptedBalance]
	nonces    *noncestore.Store
}

// New constructs an empty account Store.
func New() *Store {
	return &Store{
		plain:     versionedstore.New[Key, externalapi.VersionedBalance](),
		encrypted: versionedstore.New[Key, externalapi.VersionedEncryptedBalance](),
		nonces:    noncestore.New(),
	}
}

// ReadBalanceAt returns account's plaintext balance in asset as of t.
func (s *Store) ReadBalanceAt(account externalapi.Hash, asset externalapi.Asset, t externalapi.TopoHeight) (uint64, bool) {
	v, ok := s.plain.ReadAt(Key{account, asset}, t)
	if !ok {
		return 0, false
	}
	return v.Value, true
}

// WriteBalanceAt records a new plaintext balance version.
func (s *Store) WriteBalanceAt(account externalapi.Hash, asset externalapi.Asset, t externalapi.TopoHeight, value uint64) {
	key := Key{account, asset}
	previous := externalapi.None()
	if pointer, ok := s.plain.Pointer(key); ok {
		previous = externalapi.Some(pointer)
	}
	s.plain.WriteAt(key, t, externalapi.VersionedBalance{Value: value, PreviousTopoHeight: previous})
}

// ReadEncryptedBalanceAt returns account's encrypted balance in asset as of t.
func (s *Store) ReadEncryptedBalanceAt(account externalapi.Hash, asset externalapi.Asset, t externalapi.TopoHeight) (externalapi.VersionedEncryptedBalance, bool) {
	return s.encrypted.ReadAt(Key{account, asset}, t)
}

// WriteEncryptedBalanceAt records a new encrypted balance version.
func (s *Store) WriteEncryptedBalanceAt(account externalapi.Hash, asset externalapi.Asset, t externalapi.TopoHeight, value externalapi.VersionedEncryptedBalance) {
	key := Key{account, asset}
	if pointer, ok := s.encrypted.Pointer(key); ok {
		value.PreviousTopoHeight = externalapi.Some(pointer)
	} else {
		value.PreviousTopoHeight = externalapi.None()
	}
	s.encrypted.WriteAt(key, t, value)
}

// ReadNonceAt returns account's nonce as of t.
func (s *Store) ReadNonceAt(account externalapi.Hash, t externalapi.TopoHeight) (externalapi.Nonce, bool) {
	return s.nonces.ReadAt(account, t)
}

// DeleteAt rolls back both balance chains and the nonce chain's versions at
// topoheight t (single-block rollback, spec §4.E).
func (s *Store) DeleteAt(t externalapi.TopoHeight, account externalapi.Hash, assets ...externalapi.Asset) {
	for _, asset := range assets {
		key := Key{account, asset}
		s.plain.DeleteAt(key, t)
		s.encrypted.DeleteAt(key, t)
	}
	s.nonces.DeleteAt(account, t)
}

// DeleteAbove rolls back every column above topoheight t.
func (s *Store) DeleteAbove(t externalapi.TopoHeight) {
	s.plain.DeleteAbove(t)
	s.encrypted.DeleteAbove(t)
	s.nonces.DeleteAbove(t)
}

// DeleteBelowKeepLast prunes every column's history below topoheight t.
func (s *Store) DeleteBelowKeepLast(t externalapi.TopoHeight) {
	s.plain.DeleteBelowKeepLast(t)
	s.encrypted.DeleteBelowKeepLast(t)
	s.nonces.DeleteBelowKeepLast(t)
}

// InsufficientBalanceError reports a debit that would drive a plaintext
// balance negative.
type InsufficientBalanceError struct {
	Account externalapi.Hash
	Asset   externalapi.Asset
	Balance uint64
	Debit   uint64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("account %s: balance %d insufficient for debit %d", e.Account, e.Balance, e.Debit)
}

// NonceMismatchError reports a nonce that does not match the account's
// current nonce at the time of application.
type NonceMismatchError struct {
	Account  externalapi.Hash
	Expected externalapi.Nonce
	Got      externalapi.Nonce
}

func (e *NonceMismatchError) Error() string {
	return fmt.Sprintf("account %s: expected nonce %d, got %d", e.Account, e.Expected, e.Got)
}

// ApplyDebit is the spec §4.H step 6 compare-and-swap primitive: it checks
// that account's nonce at the parent topoheight equals expectedNonce and
// that its plaintext balance in asset is at least amount, and if both hold,
// atomically bumps the nonce to expectedNonce+1 and writes the debited
// balance, both at topoheight t. Neither write is made unless both
// checks pass, and both checks and both writes happen under the Store's
// own mutex, so no other ApplyDebit or ApplyCredit interleaves with them.
func (s *Store) ApplyDebit(account externalapi.Hash, asset externalapi.Asset, parent, t externalapi.TopoHeight, expectedNonce externalapi.Nonce, amount uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	currentNonce, _ := s.nonces.ReadAt(account, parent)
	if currentNonce != expectedNonce {
		return &NonceMismatchError{Account: account, Expected: expectedNonce, Got: currentNonce}
	}

	balance, _ := s.ReadBalanceAt(account, asset, parent)
	if balance < amount {
		return &InsufficientBalanceError{Account: account, Asset: asset, Balance: balance, Debit: amount}
	}

	s.nonces.WriteAt(account, t, expectedNonce+1)
	s.WriteBalanceAt(account, asset, t, balance-amount)
	return nil
}

// ApplyCredit writes a plaintext balance increase for account in asset at
// topoheight t. Credits never touch the nonce: only the paying side of a
// transfer consumes one (spec §3).
func (s *Store) ApplyCredit(account externalapi.Hash, asset externalapi.Asset, parent, t externalapi.TopoHeight, amount uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	balance, _ := s.ReadBalanceAt(account, asset, parent)
	s.WriteBalanceAt(account, asset, t, balance+amount)
}
