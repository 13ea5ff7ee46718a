package games

import (
	"testing"

	"github.com/nullcasino/corechain/internal/cards"
)

func newBlackjackSession(bet uint64) *GameSession {
	return &GameSession{ID: 1, GameType: GameBlackjack, Bet: bet}
}

func TestBlackjackHandValueSoftAce(t *testing.T) {
	hand := []cards.Card{cards.Card(0), cards.Card(5)} // Ace, 6 (both clubs: suit irrelevant to value)
	if v := handValue(hand); v != 17 {
		t.Fatalf("expected soft 17, got %d", v)
	}
}

func TestBlackjackHandValueBustsCountsAceLow(t *testing.T) {
	hand := []cards.Card{cards.Card(0), cards.Card(8), cards.Card(4)} // Ace, 9, 5
	if v := handValue(hand); v != 15 {
		t.Fatalf("expected ace to drop to 1 avoiding bust, got %d", v)
	}
}

func TestBlackjackStandSettlesHand(t *testing.T) {
	session := newBlackjackSession(100)
	rng := cards.NewGameRng([]byte("seed"), 1, 0)
	if res := Init(session, rng); res.Kind != ResultContinue {
		t.Fatalf("expected continue after init, got %v", res.Kind)
	}
	res, err := ProcessMove(session, []byte{1}, rng)
	if err != nil {
		t.Fatalf("stand: %v", err)
	}
	if !session.IsComplete {
		t.Fatal("expected session complete after stand")
	}
	if res.Kind != ResultWin && res.Kind != ResultLoss && res.Kind != ResultPush {
		t.Fatalf("expected terminal result, got %v", res.Kind)
	}
}

func TestBlackjackDoubleRequiresTwoCards(t *testing.T) {
	session := newBlackjackSession(100)
	rng := cards.NewGameRng([]byte("seed2"), 2, 0)
	Init(session, rng)
	if _, err := ProcessMove(session, []byte{0}, rng); err != nil {
		t.Fatalf("hit: %v", err)
	}
	if session.IsComplete {
		t.Skip("hand busted on draw, double-after-hit scenario not reachable this seed")
	}
	if _, err := ProcessMove(session, []byte{2}, rng); err != ErrInvalidMove {
		t.Fatalf("expected ErrInvalidMove doubling after a hit, got %v", err)
	}
}

func TestBlackjackMoveAfterCompleteRejected(t *testing.T) {
	session := newBlackjackSession(100)
	rng := cards.NewGameRng([]byte("seed3"), 3, 0)
	Init(session, rng)
	if _, err := ProcessMove(session, []byte{1}, rng); err != nil {
		t.Fatalf("stand: %v", err)
	}
	if _, err := ProcessMove(session, []byte{0}, rng); err != ErrGameAlreadyComplete {
		t.Fatalf("expected ErrGameAlreadyComplete, got %v", err)
	}
}

func TestBlackjackInvalidPayload(t *testing.T) {
	session := newBlackjackSession(100)
	rng := cards.NewGameRng([]byte("seed4"), 4, 0)
	Init(session, rng)
	if _, err := ProcessMove(session, []byte{9}, rng); err != ErrInvalidPayload {
		t.Fatalf("expected ErrInvalidPayload, got %v", err)
	}
}
