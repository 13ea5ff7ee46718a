package driver

import (
	"crypto/ed25519"
	"testing"

	"github.com/nullcasino/corechain/internal/authstore"
	"github.com/nullcasino/corechain/internal/codec"
	"github.com/nullcasino/corechain/internal/mempool"
)

func registerTx(t *testing.T, priv ed25519.PrivateKey, nonce uint64, name string) codec.Transaction {
	t.Helper()
	tx := codec.Transaction{
		Public: priv.Public().(ed25519.PublicKey),
		Nonce:  nonce,
		Instruction: codec.Instruction{
			Tag:  codec.InstrCasinoRegister,
			Name: name,
		},
	}
	tx.Sign(priv)
	return tx
}

func TestExecuteBlockRegistersPlayerAndCommitsEvents(t *testing.T) {
	state := authstore.NewKeyedStore()
	events := authstore.NewKeylessStore()
	mp := mempool.New()

	_, priv, _ := ed25519.GenerateKey(nil)
	if err := mp.Add(registerTx(t, priv, 0, "alice")); err != nil {
		t.Fatalf("mempool add: %v", err)
	}

	d := NewDriver(state, events, mp, []byte("node-1"))
	result, err := d.ExecuteBlock(1, codec.Seed{View: 1})
	if err != nil {
		t.Fatalf("ExecuteBlock: %v", err)
	}
	if result.StateEndOp != 3 {
		// Account(nonce) write + CasinoPlayer write + CasinoLeaderboard write
		t.Fatalf("expected 3 state ops, got %d", result.StateEndOp)
	}
	if result.EventsEndOp == 0 {
		t.Fatalf("expected events appended")
	}

	pub := priv.Public().(ed25519.PublicKey)
	raw, ok := state.Get(codec.CasinoPlayerKey(pub).Hash())
	if !ok {
		t.Fatalf("expected player record committed to state")
	}
	player, err := codec.DecodePlayer(codec.NewReader(raw))
	if err != nil {
		t.Fatalf("decode player: %v", err)
	}
	if player.Name != "alice" || player.Chips != codec.InitialChips {
		t.Fatalf("unexpected player %+v", player)
	}

	if next, ok := result.ProcessedNonces[string(pub)]; !ok || next != 1 {
		t.Fatalf("expected next nonce 1, got %d ok=%v", next, ok)
	}
	if mp.Len() != 0 {
		t.Fatalf("expected mempool drained and retained empty, got %d", mp.Len())
	}
}

func TestExecuteRejectsNonAdjacentHeight(t *testing.T) {
	state := authstore.NewKeyedStore()
	events := authstore.NewKeylessStore()
	state.Commit(codec.Commit{Height: 5, Start: 0})

	if _, err := Execute(state, events, nil, 10, codec.Seed{View: 1}, nil); err != ErrHeightNotAdjacent {
		t.Fatalf("expected ErrHeightNotAdjacent, got %v", err)
	}
}

func TestExecuteSkipsTransactionsFailingPrepare(t *testing.T) {
	state := authstore.NewKeyedStore()
	events := authstore.NewKeylessStore()

	_, priv, _ := ed25519.GenerateKey(nil)
	badNonce := registerTx(t, priv, 5, "bob") // expected nonce is 0, not 5

	result, err := Execute(state, events, nil, 1, codec.Seed{View: 1}, []codec.Transaction{badNonce})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(result.ProcessedNonces) != 0 {
		t.Fatalf("expected no nonces processed, got %v", result.ProcessedNonces)
	}
	if _, ok := state.Get(codec.CasinoPlayerKey(priv.Public().(ed25519.PublicKey)).Hash()); ok {
		t.Fatalf("expected no player written for a tx that failed prepare")
	}
}
