package games

import (
	"testing"

	"github.com/nullcasino/corechain/internal/cards"
)

func newHiLoSession(bet uint64) *GameSession {
	return &GameSession{ID: 1, GameType: GameHiLo, Bet: bet}
}

func TestHiLoImmediateCashoutAtOneX(t *testing.T) {
	session := newHiLoSession(100)
	rng := cards.NewGameRng([]byte("seed"), 1, 0)
	if res := Init(session, rng); res.Kind != ResultContinue {
		t.Fatalf("expected continue after init, got %v", res.Kind)
	}
	res, err := ProcessMove(session, []byte{2}, rng)
	if err != nil {
		t.Fatalf("cashout: %v", err)
	}
	if res.Kind != ResultWin || res.Amount != session.Bet {
		t.Fatalf("expected Win(%d) on immediate cashout, got %v/%d", session.Bet, res.Kind, res.Amount)
	}
	if !session.IsComplete {
		t.Fatal("expected session complete after cashout")
	}
}

func TestHiLoGuessHigherOnKingIsInvalidMove(t *testing.T) {
	session := newHiLoSession(100)
	rng := cards.NewGameRng([]byte("seed"), 1, 0)
	Init(session, rng)
	session.StateBlob = hiloSerializeState(cards.Card(12), hiloBaseMultiplier) // rank_low 13 = King
	if _, err := ProcessMove(session, []byte{0}, rng); err != ErrInvalidMove {
		t.Fatalf("expected ErrInvalidMove guessing higher on a King, got %v", err)
	}
}

func TestHiLoGuessLowerOnAceIsInvalidMove(t *testing.T) {
	session := newHiLoSession(100)
	rng := cards.NewGameRng([]byte("seed"), 1, 0)
	Init(session, rng)
	session.StateBlob = hiloSerializeState(cards.Card(0), hiloBaseMultiplier) // rank_low 1 = Ace
	if _, err := ProcessMove(session, []byte{1}, rng); err != ErrInvalidMove {
		t.Fatalf("expected ErrInvalidMove guessing lower on an Ace, got %v", err)
	}
}

func TestHiLoMultiplierFairOdds(t *testing.T) {
	// rank 7 (mid-deck), higher: wins = 13-7 = 6, multiplier = 13*10000/6 = 21666
	if m := hiloMultiplier(7, true); m != 21666 {
		t.Fatalf("expected 21666, got %d", m)
	}
	// rank 7, lower: wins = 7-1 = 6, same multiplier by symmetry
	if m := hiloMultiplier(7, false); m != 21666 {
		t.Fatalf("expected 21666, got %d", m)
	}
}

func TestHiLoInvalidPayload(t *testing.T) {
	session := newHiLoSession(100)
	rng := cards.NewGameRng([]byte("seed"), 1, 0)
	Init(session, rng)
	if _, err := ProcessMove(session, []byte{9}, rng); err != ErrInvalidPayload {
		t.Fatalf("expected ErrInvalidPayload, got %v", err)
	}
}

func TestHiLoStateRoundTrip(t *testing.T) {
	blob := hiloSerializeState(cards.Card(17), 54321)
	card, accumulator, ok := hiloParseState(blob)
	if !ok || card != cards.Card(17) || accumulator != 54321 {
		t.Fatalf("round-trip mismatch: card=%v accumulator=%d ok=%v", card, accumulator, ok)
	}
}
