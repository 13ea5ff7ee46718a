package mempool

import (
	"crypto/ed25519"
	"testing"

	"github.com/nullcasino/corechain/internal/codec"
)

func signedTx(t *testing.T, priv ed25519.PrivateKey, nonce uint64) codec.Transaction {
	return signedTxAmount(t, priv, nonce, nonce+1)
}

func signedTxAmount(t *testing.T, priv ed25519.PrivateKey, nonce, amount uint64) codec.Transaction {
	t.Helper()
	pub := priv.Public().(ed25519.PublicKey)
	tx := codec.Transaction{
		Public: pub,
		Nonce:  nonce,
		Instruction: codec.Instruction{
			Tag:    codec.InstrCasinoDeposit,
			Amount: amount,
		},
	}
	tx.Sign(priv)
	return tx
}

func newKey(t *testing.T) ed25519.PrivateKey {
	t.Helper()
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return priv
}

func TestAddRejectsDuplicateDigestAndNonce(t *testing.T) {
	m := New()
	priv := newKey(t)
	tx := signedTx(t, priv, 0)

	if err := m.Add(tx); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := m.Add(tx); err != ErrDuplicateTx {
		t.Fatalf("expected ErrDuplicateTx, got %v", err)
	}

	// Same account and nonce, different payload: distinct digest, but the
	// (account, nonce) slot is already taken and first wins.
	other := signedTxAmount(t, priv, 0, 999)
	if err := m.Add(other); err != ErrDuplicateNonce {
		t.Fatalf("expected ErrDuplicateNonce, got %v", err)
	}
	if m.Len() != 1 {
		t.Fatalf("expected 1 tracked tx, got %d", m.Len())
	}
}

func TestNextDrainsRoundRobinBySmallestNonce(t *testing.T) {
	m := New()
	a := newKey(t)
	b := newKey(t)

	for _, tx := range []codec.Transaction{
		signedTx(t, a, 0), signedTx(t, a, 1),
		signedTx(t, b, 0), signedTx(t, b, 1),
	} {
		if err := m.Add(tx); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	var order []string
	for i := 0; i < 4; i++ {
		tx, ok := m.Next()
		if !ok {
			t.Fatalf("expected a transaction at step %d", i)
		}
		order = append(order, string(tx.Public))
	}
	if order[0] == order[1] || order[2] == order[3] {
		t.Fatalf("expected round-robin interleaving, got %v", order)
	}
	if _, ok := m.Next(); ok {
		t.Fatalf("expected pool drained")
	}
}

func TestRetainDropsBelowMinNonce(t *testing.T) {
	m := New()
	a := newKey(t)
	for _, n := range []uint64{0, 1, 2} {
		if err := m.Add(signedTx(t, a, n)); err != nil {
			t.Fatalf("add nonce %d: %v", n, err)
		}
	}

	m.Retain(a.Public().(ed25519.PublicKey), 2)
	if m.Len() != 1 {
		t.Fatalf("expected 1 remaining tx after retain, got %d", m.Len())
	}
	tx, ok := m.Next()
	if !ok || tx.Nonce != 2 {
		t.Fatalf("expected nonce 2 survives retain, got %+v ok=%v", tx, ok)
	}
}

func TestBacklogOverflowDropsLargestNonce(t *testing.T) {
	m := New()
	a := newKey(t)
	for n := uint64(0); n < MaxBacklog; n++ {
		if err := m.Add(signedTx(t, a, n)); err != nil {
			t.Fatalf("add nonce %d: %v", n, err)
		}
	}
	if err := m.Add(signedTx(t, a, MaxBacklog)); err != nil {
		t.Fatalf("overflow add: %v", err)
	}
	if m.Len() != MaxBacklog {
		t.Fatalf("expected backlog capped at %d, got %d", MaxBacklog, m.Len())
	}

	// Draining in order must never surface the dropped largest-nonce entry.
	var last uint64
	for i := 0; i < MaxBacklog; i++ {
		tx, ok := m.Next()
		if !ok {
			t.Fatalf("expected tx at step %d", i)
		}
		if i > 0 && tx.Nonce < last {
			t.Fatalf("expected ascending nonce order, got %d after %d", tx.Nonce, last)
		}
		last = tx.Nonce
	}
	if last == MaxBacklog {
		t.Fatalf("expected the newest overflowing nonce %d to have been dropped", MaxBacklog)
	}
}
